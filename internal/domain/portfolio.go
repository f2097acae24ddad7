package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Portfolio represents a user-owned grouping of asset positions.
// The positions themselves are Holding rows supplied by the repository;
// the portfolio entity carries only identity and ownership.
type Portfolio struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Validate ensures the portfolio adheres to domain rules
// Returns an error if validation fails
func (p *Portfolio) Validate() error {
	if p.Name == "" {
		return errors.New("portfolio name cannot be empty")
	}
	if p.UserID == uuid.Nil {
		return errors.New("portfolio must belong to a user")
	}
	return nil
}
