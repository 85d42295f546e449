package models

import (
	"time"

	"github.com/google/uuid"
)

// Airline is a carrier operating in the catalog. IataCode is the two-letter
// IATA designator, unique among all rows. CountryID references the country of
// registration; the target must be active at creation time, but is not
// re-checked afterwards.
type Airline struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	IataCode  string    `json:"iata_code"`
	CountryID uuid.UUID `json:"country_id"`
	Deleted   bool      `json:"deleted"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Airline) IsDeleted() bool { return a.Deleted }

func (a *Airline) Key() uuid.UUID { return a.ID }
