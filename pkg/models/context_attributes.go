package models

import (
	"time"

	"github.com/google/uuid"
)

// Sales channel values for pricing contexts.
const (
	ChannelWeb    = "web"
	ChannelMobile = "mobile"
	ChannelAgent  = "agent"
	ChannelNDC    = "ndc"
)

// ContextAttributes captures the circumstances a price offer was quoted under:
// the city pair, cabin and sales channel. Every price offer log references
// exactly one row of this table.
type ContextAttributes struct {
	ID           uuid.UUID `json:"id"`
	Origin       string    `json:"origin"`
	Destination  string    `json:"destination"`
	CabinClass   string    `json:"cabin_class"`
	SalesChannel string    `json:"sales_channel"`
	Deleted      bool      `json:"deleted"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (c *ContextAttributes) IsDeleted() bool { return c.Deleted }

func (c *ContextAttributes) Key() uuid.UUID { return c.ID }
