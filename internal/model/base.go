package model

import (
	"time"
)

// Base contains common fields for all models
type Base struct {
	ID        int64     `json:"id" db:"id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

func (b *Base) EntityID() int64 {
	return b.ID
}

func (b *Base) SetEntityID(id int64) {
	b.ID = id
}

// Stamp records modification time, setting the creation time on first use.
func (b *Base) Stamp(now time.Time) {
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now
}
