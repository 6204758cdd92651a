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

// UserUpdater defines the interface that the service must implement.
type UserUpdater interface {
	Update(ctx context.Context, id int64, name, email string) (*models.User, error)
}

// UpdateUserRequest represents the JSON body for updating a user
// swagger:model UpdateUserRequest
type UpdateUserRequest struct {
	// Name
	// required: true
	Name string `json:"name"`

	// Email
	// required: true
	Email string `json:"email"`
}

// UpdateUserResponse represents the updated user
// swagger:model UpdateUserResponse
type UpdateUserResponse struct {
	// Id of the updated user
	ID int64 `json:"id"`

	// Name
	Name string `json:"name"`

	// Email
	Email string `json:"email"`
}

// UpdateUserErrorResponse represents an error response for updating a user
// swagger:model UpdateUserErrorResponse
type UpdateUserErrorResponse struct {
	// Error message
	// default: User not found
	Error string `json:"error"`
}

// NewUpdateUserHandler returns an HTTP handler updating name and email
// of an existing user.
// @Summary Update user
// @Description Rewrites name and email of the user with the given id.
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param updateUserRequest body handlers.UpdateUserRequest true "New name and email"
// @Success 200 {object} handlers.UpdateUserResponse "Updated user"
// @Failure 400 {object} handlers.UpdateUserErrorResponse "Name and email are required"
// @Failure 404 {object} handlers.UpdateUserErrorResponse "User not found"
// @Failure 409 {object} handlers.UpdateUserErrorResponse "Email already exists"
// @Failure 500 {object} handlers.UpdateUserErrorResponse "Database error"
// @Failure 503 {object} handlers.UpdateUserErrorResponse "Database unavailable"
// @Router /api/users/{id} [put]
func NewUpdateUserHandler(svc UserUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		id, err := userIDParam(r)
		if err != nil {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(UpdateUserErrorResponse{
				Error: "User not found",
			})
			return
		}

		var req UpdateUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" || req.Email == "" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(UpdateUserErrorResponse{
				Error: "Name and email are required",
			})
			return
		}

		user, err := svc.Update(r.Context(), id, req.Name, req.Email)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUserNotFound):
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(UpdateUserErrorResponse{
					Error: "User not found",
				})
			case errors.Is(err, services.ErrEmailAlreadyExists):
				w.WriteHeader(http.StatusConflict)
				json.NewEncoder(w).Encode(UpdateUserErrorResponse{
					Error: "Email already exists",
				})
			case errors.Is(err, services.ErrStoreUnavailable):
				w.WriteHeader(http.StatusServiceUnavailable)
				json.NewEncoder(w).Encode(UpdateUserErrorResponse{
					Error: "Database unavailable",
				})
			default:
				logger.Log.Errorw("failed to update user", "id", id, "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(UpdateUserErrorResponse{
					Error: "Database error",
				})
			}
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(UpdateUserResponse{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
		})
	}
}
