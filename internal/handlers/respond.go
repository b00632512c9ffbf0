package handlers

import (
	"encoding/json"
	"log"
	"net/http"
)

// errorResponse is the JSON body for every failed request
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// respondJSON writes a JSON response with the given status
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// respondError writes a JSON error response. code is a stable
// machine-readable identifier; message is for humans. Internal detail
// goes to the log, never to the client.
func respondError(w http.ResponseWriter, status int, code, message string, err error) {
	if err != nil {
		log.Printf("%s: %v", message, err)
	}
	respondJSON(w, status, errorResponse{Error: code, Message: message})
}
