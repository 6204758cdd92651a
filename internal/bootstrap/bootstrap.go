package bootstrap

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jmoiron/sqlx"

	"github.com/usersvc/usersvc/internal/logger"
)

// Schema of the users table. Safe to apply on every startup.
const createUsersTable = `
CREATE TABLE IF NOT EXISTS users (
	id         BIGSERIAL PRIMARY KEY,
	name       VARCHAR(100) NOT NULL,
	email      VARCHAR(100) NOT NULL UNIQUE,
	created_at TIMESTAMP NOT NULL DEFAULT NOW()
)`

// Idempotent seed: conflicts on email are ignored.
const seedUsers = `
INSERT INTO users (name, email) VALUES
	('John Doe', 'john@example.com'),
	('Jane Smith', 'jane@example.com'),
	('Bob Johnson', 'bob@example.com')
ON CONFLICT (email) DO NOTHING`

// Setup ensures the target database, the users table, and the seed rows
// exist, then returns an open connection pool to the target database.
// Every step must succeed; a returned error means the service must not
// start serving.
func Setup(ctx context.Context, host string, port int, user, password, dbName string, maxOpenConns, maxIdleConns int) (*sqlx.DB, error) {
	// The target database may not exist yet, so the first connection
	// goes to the maintenance database.
	adminDSN := fmt.Sprintf("postgres://%s:%s@%s:%d/postgres?sslmode=disable",
		user, password, host, port)

	adminDB, err := sqlx.ConnectContext(ctx, "pgx", adminDSN)
	if err != nil {
		return nil, fmt.Errorf("connect to maintenance database: %w", err)
	}

	if err := EnsureDatabase(ctx, adminDB, dbName); err != nil {
		adminDB.Close()
		return nil, err
	}
	if err := adminDB.Close(); err != nil {
		return nil, fmt.Errorf("close maintenance connection: %w", err)
	}

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		user, password, host, port, dbName)

	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect to database %s: %w", dbName, err)
	}
	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database %s: %w", dbName, err)
	}

	if err := EnsureSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	if err := SeedUsers(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// EnsureDatabase creates the named database when it does not exist yet.
// Postgres has no CREATE DATABASE IF NOT EXISTS, so existence is checked
// first; the create statement cannot take a bound parameter, hence the
// sanitized identifier.
func EnsureDatabase(ctx context.Context, db *sqlx.DB, name string) error {
	var exists bool
	err := db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = $1)`, name)
	if err != nil {
		return fmt.Errorf("check database %s exists: %w", name, err)
	}
	if exists {
		logger.Log.Infow("database already exists", "database", name)
		return nil
	}

	stmt := "CREATE DATABASE " + pgx.Identifier{name}.Sanitize()
	if _, err := db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("create database %s: %w", name, err)
	}
	logger.Log.Infow("database created", "database", name)
	return nil
}

// EnsureSchema creates the users table when absent.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, createUsersTable); err != nil {
		return fmt.Errorf("create users table: %w", err)
	}
	logger.Log.Info("users table ready")
	return nil
}

// SeedUsers inserts the three sample users, skipping any email that is
// already present.
func SeedUsers(ctx context.Context, db *sqlx.DB) error {
	res, err := db.ExecContext(ctx, seedUsers)
	if err != nil {
		return fmt.Errorf("seed users: %w", err)
	}
	inserted, _ := res.RowsAffected()
	logger.Log.Infow("seed users applied", "inserted", inserted)
	return nil
}
