// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is a registered account. Immutable after creation.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
