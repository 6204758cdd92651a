package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return sqlx.NewDb(db, "sqlmock"), mock
}

func TestUserReadRepository_List(t *testing.T) {
	createdAt := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("rows", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery("SELECT id, name, email, created_at").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "created_at"}).
				AddRow(int64(1), "John Doe", "john@example.com", createdAt).
				AddRow(int64(2), "Jane Smith", "jane@example.com", createdAt))

		repo := NewUserReadRepository(db)
		users, err := repo.List(context.Background())
		assert.NoError(t, err)
		assert.Len(t, users, 2)
		assert.Equal(t, "John Doe", users[0].Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty table yields empty slice", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery("SELECT id, name, email, created_at").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "created_at"}))

		repo := NewUserReadRepository(db)
		users, err := repo.List(context.Background())
		assert.NoError(t, err)
		assert.NotNil(t, users)
		assert.Empty(t, users)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserReadRepository_GetByID(t *testing.T) {
	createdAt := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery("SELECT id, name, email, created_at").
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "created_at"}).
				AddRow(int64(1), "John Doe", "john@example.com", createdAt))

		repo := NewUserReadRepository(db)
		user, err := repo.GetByID(context.Background(), 1)
		assert.NoError(t, err)
		assert.NotNil(t, user)
		assert.Equal(t, "john@example.com", user.Email)
		assert.Equal(t, createdAt, user.CreatedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("absent row is nil, not error", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery("SELECT id, name, email, created_at").
			WithArgs(int64(999999)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "created_at"}))

		repo := NewUserReadRepository(db)
		user, err := repo.GetByID(context.Background(), 999999)
		assert.NoError(t, err)
		assert.Nil(t, user)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserWriteRepository_Create(t *testing.T) {
	createdAt := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery("INSERT INTO users").
			WithArgs("Ada Lovelace", "ada@example.com").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "created_at"}).
				AddRow(int64(4), "Ada Lovelace", "ada@example.com", createdAt))

		repo := NewUserWriteRepository(db)
		user, err := repo.Create(context.Background(), "Ada Lovelace", "ada@example.com")
		assert.NoError(t, err)
		assert.Equal(t, int64(4), user.ID)
		assert.Equal(t, createdAt, user.CreatedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique violation maps to ErrEmailExists", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery("INSERT INTO users").
			WithArgs("Ada Lovelace", "john@example.com").
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

		repo := NewUserWriteRepository(db)
		user, err := repo.Create(context.Background(), "Ada Lovelace", "john@example.com")
		assert.ErrorIs(t, err, ErrEmailExists)
		assert.Nil(t, user)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserWriteRepository_Update(t *testing.T) {
	createdAt := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery("UPDATE users").
			WithArgs("Ada King", "ada@example.com", int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "created_at"}).
				AddRow(int64(1), "Ada King", "ada@example.com", createdAt))

		repo := NewUserWriteRepository(db)
		user, err := repo.Update(context.Background(), 1, "Ada King", "ada@example.com")
		assert.NoError(t, err)
		assert.Equal(t, "Ada King", user.Name)
		// created_at survives the update untouched.
		assert.Equal(t, createdAt, user.CreatedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("absent row is nil, not error", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery("UPDATE users").
			WithArgs("Ada King", "ada@example.com", int64(999999)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "created_at"}))

		repo := NewUserWriteRepository(db)
		user, err := repo.Update(context.Background(), 999999, "Ada King", "ada@example.com")
		assert.NoError(t, err)
		assert.Nil(t, user)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique violation maps to ErrEmailExists", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery("UPDATE users").
			WithArgs("Ada King", "jane@example.com", int64(1)).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

		repo := NewUserWriteRepository(db)
		user, err := repo.Update(context.Background(), 1, "Ada King", "jane@example.com")
		assert.ErrorIs(t, err, ErrEmailExists)
		assert.Nil(t, user)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserWriteRepository_Delete(t *testing.T) {
	t.Run("row removed", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec("DELETE FROM users").
			WithArgs(int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewUserWriteRepository(db)
		deleted, err := repo.Delete(context.Background(), 1)
		assert.NoError(t, err)
		assert.True(t, deleted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("absent row is false, not error", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec("DELETE FROM users").
			WithArgs(int64(999999)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewUserWriteRepository(db)
		deleted, err := repo.Delete(context.Background(), 999999)
		assert.NoError(t, err)
		assert.False(t, deleted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
