package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an account on the admin backend.
type User struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	DisplayName string     `json:"display_name"`
	UserType    string     `json:"user_type"` // 'admin', 'carrier_agent', 'analyst'
	AirlineID   *uuid.UUID `json:"airline_id,omitempty"`
	Deleted     bool       `json:"deleted"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (u *User) IsDeleted() bool { return u.Deleted }

func (u *User) Key() uuid.UUID { return u.ID }

// User type constants.
const (
	UserTypeAdmin        = "admin"
	UserTypeCarrierAgent = "carrier_agent"
	UserTypeAnalyst      = "analyst"
)

// ValidUserTypes contains all valid user type values.
var ValidUserTypes = []string{UserTypeAdmin, UserTypeCarrierAgent, UserTypeAnalyst}

// IsValidUserType checks if the given user type is valid.
func IsValidUserType(userType string) bool {
	for _, t := range ValidUserTypes {
		if t == userType {
			return true
		}
	}
	return false
}
