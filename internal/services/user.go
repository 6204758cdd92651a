package services

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"net"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/usersvc/usersvc/internal/logger"
	"github.com/usersvc/usersvc/internal/models"
	"github.com/usersvc/usersvc/internal/repositories"
)

// Error variables
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrStoreUnavailable   = errors.New("store unavailable")
)

// UserReader defines read-only operations for users.
type UserReader interface {
	List(ctx context.Context) ([]models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Create(ctx context.Context, name, email string) (*models.User, error)
	Update(ctx context.Context, id int64, name, email string) (*models.User, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// UserService orchestrates the user CRUD operations.
type UserService struct {
	reader UserReader
	writer UserWriter
}

// NewUserService creates a new UserService instance.
func NewUserService(reader UserReader, writer UserWriter) *UserService {
	return &UserService{
		reader: reader,
		writer: writer,
	}
}

// List returns all users.
func (svc *UserService) List(ctx context.Context) ([]models.User, error) {
	users, err := svc.reader.List(ctx)
	if err != nil {
		logger.Log.Errorw("failed to list users", "err", err)
		return nil, classify(err)
	}
	return users, nil
}

// Get returns the user with the given id.
func (svc *UserService) Get(ctx context.Context, id int64) (*models.User, error) {
	user, err := svc.reader.GetByID(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to get user", "id", id, "err", err)
		return nil, classify(err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// Create stores a new user and returns the created record.
func (svc *UserService) Create(ctx context.Context, name, email string) (*models.User, error) {
	user, err := svc.writer.Create(ctx, name, email)
	if err != nil {
		if errors.Is(err, repositories.ErrEmailExists) {
			logger.Log.Errorw("duplicate email on create", "email", email)
			return nil, ErrEmailAlreadyExists
		}
		logger.Log.Errorw("failed to create user", "err", err)
		return nil, classify(err)
	}
	return user, nil
}

// Update rewrites name and email of an existing user.
func (svc *UserService) Update(ctx context.Context, id int64, name, email string) (*models.User, error) {
	user, err := svc.writer.Update(ctx, id, name, email)
	if err != nil {
		if errors.Is(err, repositories.ErrEmailExists) {
			logger.Log.Errorw("duplicate email on update", "id", id, "email", email)
			return nil, ErrEmailAlreadyExists
		}
		logger.Log.Errorw("failed to update user", "id", id, "err", err)
		return nil, classify(err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// Delete removes the user with the given id.
func (svc *UserService) Delete(ctx context.Context, id int64) error {
	deleted, err := svc.writer.Delete(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to delete user", "id", id, "err", err)
		return classify(err)
	}
	if !deleted {
		return ErrUserNotFound
	}
	return nil
}

// classify maps connection-class driver failures to ErrStoreUnavailable
// and passes everything else through unchanged.
func classify(err error) error {
	if isConnectionError(err) {
		return ErrStoreUnavailable
	}
	return err
}

func isConnectionError(err error) bool {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return true
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
