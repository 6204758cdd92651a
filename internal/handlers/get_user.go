package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/usersvc/usersvc/internal/logger"
	"github.com/usersvc/usersvc/internal/models"
	"github.com/usersvc/usersvc/internal/services"
)

// UserGetter defines the interface that the service must implement.
type UserGetter interface {
	Get(ctx context.Context, id int64) (*models.User, error)
}

// GetUserErrorResponse represents an error response for fetching a user
// swagger:model GetUserErrorResponse
type GetUserErrorResponse struct {
	// Error message
	// default: User not found
	Error string `json:"error"`
}

// NewGetUserHandler returns an HTTP handler fetching one user by id.
// @Summary Get user by id
// @Description Returns the user with the given id.
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.User "User"
// @Failure 404 {object} handlers.GetUserErrorResponse "User not found"
// @Failure 500 {object} handlers.GetUserErrorResponse "Database error"
// @Failure 503 {object} handlers.GetUserErrorResponse "Database unavailable"
// @Router /api/users/{id} [get]
func NewGetUserHandler(svc UserGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		id, err := userIDParam(r)
		if err != nil {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(GetUserErrorResponse{
				Error: "User not found",
			})
			return
		}

		user, err := svc.Get(r.Context(), id)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUserNotFound):
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(GetUserErrorResponse{
					Error: "User not found",
				})
			case errors.Is(err, services.ErrStoreUnavailable):
				w.WriteHeader(http.StatusServiceUnavailable)
				json.NewEncoder(w).Encode(GetUserErrorResponse{
					Error: "Database unavailable",
				})
			default:
				logger.Log.Errorw("failed to get user", "id", id, "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(GetUserErrorResponse{
					Error: "Database error",
				})
			}
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(user)
	}
}
