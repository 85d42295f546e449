package models

import (
	"time"

	"github.com/google/uuid"
)

// Aircraft is a single airframe in an airline's fleet, keyed by its unique
// tail number.
type Aircraft struct {
	ID         uuid.UUID `json:"id"`
	TailNumber string    `json:"tail_number"`
	Model      string    `json:"model"`
	AirlineID  uuid.UUID `json:"airline_id"`
	Deleted    bool      `json:"deleted"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (a *Aircraft) IsDeleted() bool { return a.Deleted }

func (a *Aircraft) Key() uuid.UUID { return a.ID }
