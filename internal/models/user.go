package models

import (
	"time"

	"github.com/google/uuid"
)

// User is the account that owns journal entries. Only the id ever reaches the entry tiers.
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	IsActive     bool      `json:"is_active"`
}
