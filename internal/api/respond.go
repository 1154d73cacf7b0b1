package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/alexanderramin/taskboard/internal/repository"
	"github.com/alexanderramin/taskboard/internal/service"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

// writeError translates service and repository errors into the structured
// error responses of the API: field-level validation maps for 400, detail
// objects for 401/403/404.
func writeError(w http.ResponseWriter, err error) {
	if ve, ok := service.AsValidationError(err); ok {
		writeJSON(w, http.StatusBadRequest, ve.Fields)
		return
	}
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		writeDetail(w, http.StatusUnauthorized, "Authentication credentials were not provided.")
	case errors.Is(err, service.ErrForbidden):
		writeDetail(w, http.StatusForbidden, "You do not have permission to perform this action.")
	case errors.Is(err, service.ErrInvalidCredentials):
		writeJSON(w, http.StatusBadRequest, map[string][]string{
			"non_field_errors": {"Unable to log in with provided credentials."},
		})
	case errors.Is(err, repository.ErrNotFound):
		writeDetail(w, http.StatusNotFound, "Not found.")
	default:
		writeDetail(w, http.StatusInternalServerError, "Internal server error.")
	}
}

// decodeJSON decodes a request body, rejecting unknown fields.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func badRequest(w http.ResponseWriter, field, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string][]string{field: {msg}})
}
