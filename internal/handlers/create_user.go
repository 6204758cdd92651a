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

// UserCreator defines the interface that the service must implement.
type UserCreator interface {
	Create(ctx context.Context, name, email string) (*models.User, error)
}

// CreateUserRequest represents the JSON body for creating a user
// swagger:model CreateUserRequest
type CreateUserRequest struct {
	// Name
	// required: true
	// default: Ada Lovelace
	Name string `json:"name"`

	// Email
	// required: true
	// default: ada@example.com
	Email string `json:"email"`
}

// CreateUserResponse represents the created user
// swagger:model CreateUserResponse
type CreateUserResponse struct {
	// Assigned id
	ID int64 `json:"id"`

	// Name
	Name string `json:"name"`

	// Email
	Email string `json:"email"`
}

// CreateUserErrorResponse represents an error response for creating a user
// swagger:model CreateUserErrorResponse
type CreateUserErrorResponse struct {
	// Error message
	// default: Name and email are required
	Error string `json:"error"`
}

// NewCreateUserHandler returns an HTTP handler creating a user.
// @Summary Create user
// @Description Stores a new user. Name and email are required; email must be unique.
// @Tags users
// @Accept json
// @Produce json
// @Param createUserRequest body handlers.CreateUserRequest true "User to create"
// @Success 201 {object} handlers.CreateUserResponse "Created user"
// @Failure 400 {object} handlers.CreateUserErrorResponse "Name and email are required"
// @Failure 409 {object} handlers.CreateUserErrorResponse "Email already exists"
// @Failure 500 {object} handlers.CreateUserErrorResponse "Database error"
// @Failure 503 {object} handlers.CreateUserErrorResponse "Database unavailable"
// @Router /api/users [post]
func NewCreateUserHandler(svc UserCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		var req CreateUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" || req.Email == "" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(CreateUserErrorResponse{
				Error: "Name and email are required",
			})
			return
		}

		user, err := svc.Create(r.Context(), req.Name, req.Email)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrEmailAlreadyExists):
				w.WriteHeader(http.StatusConflict)
				json.NewEncoder(w).Encode(CreateUserErrorResponse{
					Error: "Email already exists",
				})
			case errors.Is(err, services.ErrStoreUnavailable):
				w.WriteHeader(http.StatusServiceUnavailable)
				json.NewEncoder(w).Encode(CreateUserErrorResponse{
					Error: "Database unavailable",
				})
			default:
				logger.Log.Errorw("failed to create user", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(CreateUserErrorResponse{
					Error: "Database error",
				})
			}
			return
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(CreateUserResponse{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
		})
	}
}
