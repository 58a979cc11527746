package httptransport

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	pkgerrors "session-server/pkg/errors"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// errorResponse is the JSON envelope for every error: a human-readable
// message, plus the itemized rule violations for validation failures.
type errorResponse struct {
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

// writeError translates a service error into its HTTP response. Anything
// without a code is an unclassified failure and stays generic.
func writeError(w http.ResponseWriter, err error) {
	var se pkgerrors.ServiceError
	if !stderrors.As(err, &se) {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Message: "Internal server error"})
		return
	}
	writeJSON(w, pkgerrors.ToHTTPStatus(se.Code), errorResponse{
		Message: se.Message,
		Errors:  se.Details,
	})
}
