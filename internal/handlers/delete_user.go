package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/usersvc/usersvc/internal/logger"
	"github.com/usersvc/usersvc/internal/services"
)

// UserDeleter defines the interface that the service must implement.
type UserDeleter interface {
	Delete(ctx context.Context, id int64) error
}

// DeleteUserErrorResponse represents an error response for deleting a user
// swagger:model DeleteUserErrorResponse
type DeleteUserErrorResponse struct {
	// Error message
	// default: User not found
	Error string `json:"error"`
}

// NewDeleteUserHandler returns an HTTP handler deleting a user.
// @Summary Delete user
// @Description Removes the user with the given id.
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 204 "User deleted"
// @Failure 404 {object} handlers.DeleteUserErrorResponse "User not found"
// @Failure 500 {object} handlers.DeleteUserErrorResponse "Database error"
// @Failure 503 {object} handlers.DeleteUserErrorResponse "Database unavailable"
// @Router /api/users/{id} [delete]
func NewDeleteUserHandler(svc UserDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := userIDParam(r)
		if err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(DeleteUserErrorResponse{
				Error: "User not found",
			})
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			w.Header().Set("Content-Type", "application/json")
			switch {
			case errors.Is(err, services.ErrUserNotFound):
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(DeleteUserErrorResponse{
					Error: "User not found",
				})
			case errors.Is(err, services.ErrStoreUnavailable):
				w.WriteHeader(http.StatusServiceUnavailable)
				json.NewEncoder(w).Encode(DeleteUserErrorResponse{
					Error: "Database unavailable",
				})
			default:
				logger.Log.Errorw("failed to delete user", "id", id, "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(DeleteUserErrorResponse{
					Error: "Database error",
				})
			}
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
