// Package shared centralizes JSON response writing and domain-error
// translation so handlers never map codes to statuses individually.
package shared

import (
	"encoding/json"
	"errors"
	"net/http"

	dErrors "warishd/pkg/domain-errors"
)

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
	// RemainingIDs is populated only for cascade failures, so an operator
	// knows exactly which records still exist.
	RemainingIDs []string `json:"remaining_ids,omitempty"`
	DeletedIDs   []string `json:"deleted_ids,omitempty"`
}

// WriteJSON writes a JSON body with the given status.
func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// WriteError translates a coded domain error into an HTTP response.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	resp := ErrorResponse{Error: err.Error(), Code: string(code)}

	var cascade *dErrors.CascadeError
	if errors.As(err, &cascade) {
		resp.RemainingIDs = cascade.RemainingIDs
		resp.DeletedIDs = cascade.DeletedIDs
	}

	WriteJSON(w, statusFor(code), resp)
}

func statusFor(code dErrors.Code) int {
	switch code {
	case dErrors.CodeValidation, dErrors.CodeBadRequest, dErrors.CodeInvalidInput:
		return http.StatusBadRequest
	case dErrors.CodeGatingViolation:
		return http.StatusUnprocessableEntity
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	case dErrors.CodeConflict:
		return http.StatusConflict
	case dErrors.CodeCascadeFailure:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
