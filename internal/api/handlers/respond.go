package handlers

import (
	"net/http"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/randytsao24/tripmate/internal/logging"
	"github.com/randytsao24/tripmate/internal/validation"
)

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logging.Error().Err(err).Msg("encode JSON response")
	}
}

// writeError maps rejected input to 400 and everything else to 500
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	if validation.IsValidationError(err) {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":   "Invalid request",
			"message": err.Error(),
		})
		return
	}

	logging.Ctx(r.Context()).Error().Err(err).
		Str("path", r.URL.Path).
		Msg("request failed")
	writeJSON(w, http.StatusInternalServerError, map[string]any{
		"error":   "Internal server error",
		"message": err.Error(),
	})
}

// decodeBody reads a JSON request body into dst. Malformed JSON is a validation error.
func decodeBody(r *http.Request, dst any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return validation.Fieldf("body", "request body must be valid JSON: %v", err)
	}
	return nil
}

// parseIntQueryParam returns defaultVal when the parameter is absent and a
// validation error when it is present but not an integer
func parseIntQueryParam(r *http.Request, name string, defaultVal int) (int, error) {
	str := r.URL.Query().Get(name)
	if str == "" {
		return defaultVal, nil
	}

	val, err := strconv.Atoi(str)
	if err != nil {
		return 0, validation.Fieldf(name, "%s must be an integer, got %q", name, str)
	}
	return val, nil
}
