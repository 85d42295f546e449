package models

// UserProfile is the sealed set of per-type profile shapes returned by the
// profile lookup. The dispatch over User.UserType is a single switch with an
// explicit default, so an unrecognized type surfaces as a typed failure
// instead of silently falling through.
type UserProfile interface {
	isUserProfile()
}

// AdminProfile is the profile shape for platform administrators.
type AdminProfile struct {
	User User `json:"user"`
}

// CarrierAgentProfile is the profile shape for airline staff. Airline is
// fetched including deleted rows so an agent of a since-deleted carrier still
// resolves.
type CarrierAgentProfile struct {
	User    User     `json:"user"`
	Airline *Airline `json:"airline,omitempty"`
}

// AnalystProfile is the profile shape for pricing analysts.
type AnalystProfile struct {
	User User `json:"user"`
}

func (AdminProfile) isUserProfile()        {}
func (CarrierAgentProfile) isUserProfile() {}
func (AnalystProfile) isUserProfile()      {}
