package observability

import (
	"context"
	"fmt"

	"github.com/grafana/pyroscope-go"
	"github.com/riskibarqy/bowling-league/internal/config"
	"github.com/riskibarqy/bowling-league/internal/platform/logging"
)

// profilerLogger routes profiler diagnostics through the service logger.
type profilerLogger struct {
	logger *logging.Logger
}

func (p profilerLogger) Infof(format string, args ...interface{}) {
	p.logger.Debug(fmt.Sprintf(format, args...))
}

func (p profilerLogger) Debugf(format string, args ...interface{}) {
	p.logger.Debug(fmt.Sprintf(format, args...))
}

func (p profilerLogger) Errorf(format string, args ...interface{}) {
	p.logger.Error(fmt.Sprintf(format, args...))
}

// profileTypes always covers CPU and allocations. Goroutine and mutex
// profiles only say something when decoration fans out across workers.
func profileTypes(cfg config.Config) []pyroscope.ProfileType {
	types := []pyroscope.ProfileType{
		pyroscope.ProfileCPU,
		pyroscope.ProfileAllocObjects,
		pyroscope.ProfileAllocSpace,
		pyroscope.ProfileInuseSpace,
	}
	if cfg.DecorateWorkers > 1 {
		types = append(types, pyroscope.ProfileGoroutines, pyroscope.ProfileMutexDuration)
	}
	return types
}

func startProfiling(cfg config.Config, logger *logging.Logger) (stopFunc, error) {
	if !cfg.PyroscopeEnabled {
		logger.Info("continuous profiling disabled")
		return nil, nil
	}

	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName:   cfg.PyroscopeAppName,
		ServerAddress:     cfg.PyroscopeServerAddress,
		AuthToken:         cfg.PyroscopeAuthToken,
		BasicAuthUser:     cfg.PyroscopeBasicAuthUser,
		BasicAuthPassword: cfg.PyroscopeBasicAuthPassword,
		UploadRate:        cfg.PyroscopeUploadRate,
		Logger:            profilerLogger{logger: logger.Named("pyroscope")},
		Tags: map[string]string{
			"env":     cfg.AppEnv,
			"service": cfg.ServiceName,
			"version": cfg.ServiceVersion,
		},
		ProfileTypes: profileTypes(cfg),
	})
	if err != nil {
		return nil, err
	}
	logger.Info("continuous profiling enabled", "server_address", cfg.PyroscopeServerAddress, "application", cfg.PyroscopeAppName)

	return func(context.Context) error { return profiler.Stop() }, nil
}
