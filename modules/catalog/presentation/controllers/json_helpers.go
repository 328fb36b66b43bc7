package controllers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/eisenhub/catalog/pkg/composables"
	"github.com/eisenhub/catalog/pkg/serrors"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Headers are already out when encoding fails; the client simply sees a
	// truncated body.
	_ = json.NewEncoder(w).Encode(v)
}

// writeError responds with a coded error body. The underlying error is logged
// server-side only; clients get the stable code, the message and the request
// id to correlate with server logs.
func writeError(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	if err != nil {
		composables.UseLogger(r.Context()).WithError(err).Error(message)
	}
	body := serrors.NewError(statusCode(status), message, "")
	if requestID := composables.UseRequestID(r.Context()); requestID != "" {
		body = serrors.WithDetails(body, requestID)
	}
	writeJSON(w, status, body)
}

func statusCode(status int) string {
	return strings.ReplaceAll(strings.ToUpper(http.StatusText(status)), " ", "_")
}
