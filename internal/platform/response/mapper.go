package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/datingapp/request-fabric/internal/domainerr"
	"github.com/datingapp/request-fabric/internal/platform/ctxutil"
)

// JSON writes v as the Data field of an envelope with the given status.
func JSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	traceID := ctxutil.TraceIDFromContext(r.Context())
	write(w, status, Success(data, traceID))
}

// Error maps err to the fabric's error catalog and writes the uniform
// error envelope, mirroring the teacher's MapError/HandleErrorCtx pair.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	traceID := ctxutil.TraceIDFromContext(r.Context())
	var de *domainerr.Error
	if errors.As(err, &de) {
		write(w, domainerr.HTTPStatus(de.Code),
			FailureWithDetails(string(de.Code), de.Message, de.Hint, de.Details, de.RetryAfter, traceID))
		return
	}
	write(w, http.StatusInternalServerError,
		Failure(string(domainerr.CodeInternal), "internal server error", "", traceID))
}

func write(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}
