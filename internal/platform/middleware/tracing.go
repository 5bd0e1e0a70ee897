package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/datingapp/request-fabric/internal/platform/ctxutil"
	"github.com/datingapp/request-fabric/internal/platform/envelope"
)

const (
	HeaderTraceID      = "X-Trace-ID"
	HeaderSpanID       = "X-Span-ID"
	HeaderParentSpanID = "X-Parent-Span-ID"
)

// Tracing opens an OTel span per request and dual-propagates identity via
// both the W3C traceparent (handled by otelhttp upstream of this layer in
// the gateway) and the fabric's own X-Trace-ID/X-Span-ID/X-Parent-Span-ID
// headers, per spec's header contract. Grounded on the teacher's otel.go.
func Tracing(tracer trace.Tracer) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			parentSpan := r.Header.Get(HeaderSpanID)

			var span trace.Span
			if tracer != nil {
				ctx, span = tracer.Start(ctx, r.Method+" "+r.URL.Path)
				defer span.End()
			}

			traceID := r.Header.Get(HeaderTraceID)
			if traceID == "" {
				traceID = uuid.NewString()
			}
			spanID := uuid.NewString()

			ctx = ctxutil.WithTraceID(ctx, traceID)
			ctx = ctxutil.WithSpanID(ctx, spanID)
			ctx = envelope.WithRequest(ctx, envelope.Request{
				TraceID:      traceID,
				SpanID:       spanID,
				ParentSpanID: parentSpan,
				Method:       r.Method,
				Path:         r.URL.Path,
				StartedAt:    time.Now(),
			})

			w.Header().Set(HeaderTraceID, traceID)
			w.Header().Set(HeaderSpanID, spanID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
