package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

/*
WriteJSON writes value as a JSON response body with the given status.
*/
func WriteJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(value); err != nil {
		slog.Error("error writing JSON response", "error", err)
	}
}

/*
WriteMessage writes the standard `{"message": ...}` envelope.
*/
func WriteMessage(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, map[string]string{"message": message})
}
