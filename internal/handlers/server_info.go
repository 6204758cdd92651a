package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/usersvc/usersvc/internal/models"
)

// ServerInfoProvider defines the interface that the metadata facade
// must implement.
type ServerInfoProvider interface {
	GetServerInfo(ctx context.Context) models.ServerInfo
}

// NewServerInfoHandler returns an HTTP handler reporting instance
// identity. Metadata failures degrade to "unknown" fields, so the
// response is always 200.
// @Summary Server info
// @Description Returns instance id, availability zone, hostname, and a fresh timestamp.
// @Tags service
// @Produce json
// @Success 200 {object} models.ServerInfo "Instance metadata"
// @Router /server-info [get]
func NewServerInfoHandler(provider ServerInfoProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		info := provider.GetServerInfo(r.Context())

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(info)
	}
}
