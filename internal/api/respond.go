package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"employee-api/internal/apperr"
)

type errorBody struct {
	Error   string            `json:"error"`
	Code    string            `json:"code"`
	Details map[string]string `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError maps err onto its HTTP status. 5xx causes are logged, never
// echoed to the caller.
func (h *Handlers) respondError(w http.ResponseWriter, r *http.Request, err error) {
	aerr := apperr.Ensure(err)
	status := aerr.HTTPStatus()

	if aerr.Kind == apperr.KindRateLimited && aerr.RetryAfter > 0 {
		secs := int((aerr.RetryAfter + time.Second - 1) / time.Second)
		w.Header().Set("Retry-After", strconv.Itoa(secs))
	}
	if status >= http.StatusInternalServerError {
		h.log.Error("request failed",
			"request_id", middleware.GetReqID(r.Context()),
			"path", r.URL.Path,
			"code", aerr.Code(),
			"error", err.Error(),
		)
	}

	respondJSON(w, status, errorBody{Error: aerr.Message, Code: aerr.Code(), Details: aerr.Fields})
}
