package middleware

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/datingapp/request-fabric/internal/platform/ctxutil"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

// RequestLogging emits one structured log line per request, grounded on
// the teacher's logging.go (method, path, status, duration, trace/
// correlation ids).
func RequestLogging(logger *zap.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			if logger == nil {
				return
			}
			logger.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", rec.status),
				zap.Duration("duration", time.Since(start)),
				zap.String("trace_id", ctxutil.TraceIDFromContext(r.Context())),
				zap.String("correlation_id", ctxutil.CorrelationIDFromContext(r.Context())),
			)
		})
	}
}
