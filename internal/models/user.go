package models

import "time"

// User represents a row of the users table.
type User struct {
	ID        int64     `json:"id" db:"id"`                 // Primary key, assigned by the store
	Name      string    `json:"name" db:"name"`             // Display name
	Email     string    `json:"email" db:"email"`           // Unique email
	CreatedAt time.Time `json:"created_at" db:"created_at"` // Creation timestamp, immutable
}
