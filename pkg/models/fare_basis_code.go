package models

import (
	"time"

	"github.com/google/uuid"
)

// FareBasisCode is a published fare code belonging to an airline, e.g. "YLX14".
// Code is unique among all rows.
type FareBasisCode struct {
	ID          uuid.UUID `json:"id"`
	Code        string    `json:"code"`
	Description string    `json:"description"`
	AirlineID   uuid.UUID `json:"airline_id"`
	Deleted     bool      `json:"deleted"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (f *FareBasisCode) IsDeleted() bool { return f.Deleted }

func (f *FareBasisCode) Key() uuid.UUID { return f.ID }
