package httpapi

import (
	"net/http"

	"github.com/riskibarqy/bowling-league/internal/platform/logging"
)

// NewRouter mounts the league API behind tracing, request logging, CORS and
// panic recovery, outermost first.
func NewRouter(
	handler *Handler,
	logger *logging.Logger,
	swaggerEnabled bool,
	corsAllowedOrigins []string,
) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}
	logger = logger.Named("http")

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, swaggerEnabled)
	registerLeagueRoutes(mux, handler)

	return chain(mux,
		requestTracing(),
		requestLogging(logger),
		cors(corsAllowedOrigins),
		recoverPanic(logger),
	)
}

func recoverPanic(logger *logging.Logger) middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.ErrorContext(r.Context(), "panic recovered", "panic", rec, "method", r.Method, "path", r.URL.Path)
					writeInternalError(w)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
