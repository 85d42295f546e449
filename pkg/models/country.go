package models

import (
	"time"

	"github.com/google/uuid"
)

// Country is a catalog country. IsoCode is the two-letter ISO 3166-1 code and
// is unique among all rows, deleted or not.
type Country struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	IsoCode   string    `json:"iso_code"`
	Deleted   bool      `json:"deleted"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsDeleted reports the lifecycle state of the row.
func (c *Country) IsDeleted() bool { return c.Deleted }

// Key returns the row's unique identifier.
func (c *Country) Key() uuid.UUID { return c.ID }
