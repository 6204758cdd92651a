package handlers

import (
	"encoding/json"
	"net/http"
)

// NewRootHandler returns an HTTP handler for the service greeting.
// @Summary Service greeting
// @Description Returns a fixed greeting payload.
// @Tags service
// @Produce json
// @Success 200 {string} string "Hello from Backend app!"
// @Router / [get]
func NewRootHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode("Hello from Backend app!")
	}
}
