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

// UserLister defines the interface that the service must implement.
type UserLister interface {
	List(ctx context.Context) ([]models.User, error)
}

// ListUsersErrorResponse represents an error response for listing users
// swagger:model ListUsersErrorResponse
type ListUsersErrorResponse struct {
	// Error message
	// default: Database error
	Error string `json:"error"`
}

// NewListUsersHandler returns an HTTP handler listing all users.
// @Summary List users
// @Description Returns all users, possibly an empty array.
// @Tags users
// @Produce json
// @Success 200 {array} models.User "All users"
// @Failure 500 {object} handlers.ListUsersErrorResponse "Database error"
// @Failure 503 {object} handlers.ListUsersErrorResponse "Database unavailable"
// @Router /api/users [get]
func NewListUsersHandler(svc UserLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := svc.List(r.Context())
		if err != nil {
			w.Header().Set("Content-Type", "application/json")
			if errors.Is(err, services.ErrStoreUnavailable) {
				w.WriteHeader(http.StatusServiceUnavailable)
				json.NewEncoder(w).Encode(ListUsersErrorResponse{
					Error: "Database unavailable",
				})
				return
			}
			logger.Log.Errorw("failed to list users", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(ListUsersErrorResponse{
				Error: "Database error",
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(users)
	}
}
