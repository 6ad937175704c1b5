package handlers

import (
	"encoding/json"
	"net/http"
)

// ErrorEnvelope is the GraphQL error envelope used for transport-level
// failures (bad method, unreadable body): data is absent, errors carry one
// message each, matching the shape resolvers produce.
type ErrorEnvelope struct {
	Errors []ErrorMessage `json:"errors"`
}

// ErrorMessage is a single entry in the errors array.
type ErrorMessage struct {
	Message string `json:"message"`
}

// respondError sends an error envelope.
func respondError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorEnvelope{Errors: []ErrorMessage{{Message: message}}})
}
