package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/mirrorme/mirrord/internal/logger"
)

// Helper for JSON responses
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Failed to marshal response"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// Helper for error responses
func respondWithError(w http.ResponseWriter, code int, message string, err error) {
	if err != nil && code >= 500 {
		logger.Error("HTTP %d: %s: %v", code, message, err)
	}

	respondWithJSON(w, code, map[string]string{"error": message})
}

// userIDParam extracts the required user_id query parameter.
func userIDParam(r *http.Request) (string, bool) {
	userID := r.URL.Query().Get("user_id")
	return userID, userID != ""
}

// daysBackParam returns the days_back query parameter, or def when absent
// or unparseable.
func daysBackParam(r *http.Request, def int) int {
	raw := r.URL.Query().Get("days_back")
	if raw == "" {
		return def
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days < 1 {
		return def
	}
	return days
}

// intParam returns the named query parameter as an int, 0 when absent or
// unparseable.
func intParam(r *http.Request, name string) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// boolParam returns the named query parameter parsed as a bool, false when
// absent or unparseable.
func boolParam(r *http.Request, name string) bool {
	v, err := strconv.ParseBool(r.URL.Query().Get(name))
	return err == nil && v
}
