package core

import (
	"errors"
	"net/http"
)

// Error kinds reported by the pipeline and its collaborators. Callers
// match them with errors.Is.
var (
	ErrFetchFailure      = errors.New("fetch failure")
	ErrValidationFailure = errors.New("validation failure")
	ErrParseFailure      = errors.New("parse failure")
	ErrAssistantFailure  = errors.New("assistant failure")
)

// StatusFor maps an error kind to the conventional HTTP status class.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidationFailure):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
