package middleware

import "net/http"

var mutatingMethods = map[string]bool{
	http.MethodPost: true, http.MethodPut: true, http.MethodPatch: true, http.MethodDelete: true,
}

// AuditLog records one entry per authenticated mutating request. A nil
// sink disables the layer (e.g. for read-only internal services).
func AuditLog(sink AuditSink) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			if sink == nil || !mutatingMethods[r.Method] {
				return
			}
			principal, _ := principalFromRequest(r)
			sink.Record(r.Context(), principal, r.Method, r.URL.Path, rec.status)
		})
	}
}
