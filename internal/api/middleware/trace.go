package middleware

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/storyforge-api/internal/api/shared"
	"github.com/phrazzld/storyforge-api/internal/platform/logger"
)

// TraceMiddleware adds a trace ID to the request context, echoes it in the
// X-Trace-ID response header and stores a request-scoped logger carrying it.
// It should be applied early so every later handler sees the trace ID.
func TraceMiddleware(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := shared.SetTraceID(r.Context())
			traceID := shared.GetTraceID(ctx)

			log := base.With(slog.String("trace_id", traceID))
			ctx = logger.WithLogger(ctx, log)

			w.Header().Set(shared.TraceIDHeader, traceID)

			log.Debug("request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
