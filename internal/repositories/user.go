package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/usersvc/usersvc/internal/logger"
	"github.com/usersvc/usersvc/internal/models"
)

// ErrEmailExists is returned when an insert or update hits the unique
// constraint on users.email.
var ErrEmailExists = errors.New("email already exists")

// UserReadRepository serves the read-only user queries.
type UserReadRepository struct {
	db *sqlx.DB
}

func NewUserReadRepository(db *sqlx.DB) *UserReadRepository {
	return &UserReadRepository{db: db}
}

// List returns all users. An empty table yields an empty slice, not an
// error. No ordering is guaranteed.
func (r *UserReadRepository) List(ctx context.Context) ([]models.User, error) {
	const query = `
		SELECT id, name, email, created_at
		FROM users
	`

	users := make([]models.User, 0)
	err := r.db.SelectContext(ctx, &users, query)

	logger.Log.Infow("executed query",
		"query", strings.Join(strings.Fields(query), " "),
		"rows", len(users),
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	return users, nil
}

// GetByID returns the user with the given id, or nil when no row matches.
func (r *UserReadRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	const query = `
		SELECT id, name, email, created_at
		FROM users
		WHERE id = $1
	`

	var user models.User
	err := r.db.GetContext(ctx, &user, query, id)

	logger.Log.Infow("executed query",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{id},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UserWriteRepository serves the mutating user statements.
type UserWriteRepository struct {
	db *sqlx.DB
}

func NewUserWriteRepository(db *sqlx.DB) *UserWriteRepository {
	return &UserWriteRepository{db: db}
}

// Create inserts a user and returns the stored row with the id and
// created_at the store assigned.
func (r *UserWriteRepository) Create(ctx context.Context, name, email string) (*models.User, error) {
	const query = `
		INSERT INTO users (name, email)
		VALUES ($1, $2)
		RETURNING id, name, email, created_at
	`

	var user models.User
	err := r.db.GetContext(ctx, &user, query, name, email)

	logger.Log.Infow("executed query",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{name, email},
		"error", err,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailExists
		}
		return nil, err
	}
	return &user, nil
}

// Update rewrites name and email of the user with the given id and
// returns the resulting row. A nil result without error means no row
// matched the id.
func (r *UserWriteRepository) Update(ctx context.Context, id int64, name, email string) (*models.User, error) {
	const query = `
		UPDATE users
		SET name = $1, email = $2
		WHERE id = $3
		RETURNING id, name, email, created_at
	`

	var user models.User
	err := r.db.GetContext(ctx, &user, query, name, email, id)

	logger.Log.Infow("executed query",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{name, email, id},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailExists
		}
		return nil, err
	}
	return &user, nil
}

// Delete removes the user with the given id and reports whether a row
// was actually removed.
func (r *UserWriteRepository) Delete(ctx context.Context, id int64) (bool, error) {
	const query = `
		DELETE FROM users
		WHERE id = $1
	`

	res, err := r.db.ExecContext(ctx, query, id)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow("executed query",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{id},
		"result", rowsAffected,
		"error", err,
	)

	if err != nil {
		return false, err
	}
	return rowsAffected > 0, nil
}

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
