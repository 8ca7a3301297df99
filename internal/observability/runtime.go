package observability

import (
	"context"
	"fmt"

	"github.com/riskibarqy/bowling-league/internal/config"
	"github.com/riskibarqy/bowling-league/internal/platform/logging"
	"go.uber.org/multierr"
)

type stopFunc func(context.Context) error

type component struct {
	name string
	stop stopFunc
}

type starter struct {
	name  string
	start func(config.Config, *logging.Logger) (stopFunc, error)
}

// Runtime owns the optional tracing, profiling and debug listeners of a
// running process. Components stop in reverse start order.
type Runtime struct {
	logger     *logging.Logger
	components []component
}

// Start brings up every enabled component. When one fails, the ones already
// running are stopped before the error is returned.
func Start(cfg config.Config, logger *logging.Logger) (*Runtime, error) {
	if logger == nil {
		logger = logging.Default()
	}
	rt := &Runtime{logger: logger.Named("observability")}

	starters := []starter{
		{name: "tracing", start: startTracing},
		{name: "profiling", start: startProfiling},
		{name: "debug-server", start: startDebugServer},
	}
	for _, s := range starters {
		stop, err := s.start(cfg, rt.logger)
		if err != nil {
			startErr := fmt.Errorf("start %s: %w", s.name, err)
			return nil, multierr.Append(startErr, rt.Shutdown(context.Background()))
		}
		if stop == nil {
			continue
		}
		rt.components = append(rt.components, component{name: s.name, stop: stop})
	}
	return rt, nil
}

// Enabled lists the components that are running.
func (r *Runtime) Enabled() []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.components))
	for _, c := range r.components {
		names = append(names, c.name)
	}
	return names
}

// Shutdown stops every running component and reports every failure.
func (r *Runtime) Shutdown(ctx context.Context) error {
	if r == nil {
		return nil
	}

	var err error
	for i := len(r.components) - 1; i >= 0; i-- {
		c := r.components[i]
		if stopErr := c.stop(ctx); stopErr != nil {
			err = multierr.Append(err, fmt.Errorf("stop %s: %w", c.name, stopErr))
			continue
		}
		r.logger.Debug("observability component stopped", "component", c.name)
	}
	r.components = nil
	return err
}
