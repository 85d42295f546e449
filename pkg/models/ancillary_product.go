package models

import (
	"time"

	"github.com/google/uuid"
)

// AncillaryProduct is a sellable extra (bag, seat, lounge pass) that a price
// offer can quote instead of a fare.
type AncillaryProduct struct {
	ID        uuid.UUID `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Deleted   bool      `json:"deleted"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *AncillaryProduct) IsDeleted() bool { return p.Deleted }

func (p *AncillaryProduct) Key() uuid.UUID { return p.ID }
