package model

import "time"

// DonorProfile is a donor's self-maintained profile. At most one exists per
// email. Response shaping (stripping the owner email from the owner's own
// view) happens in the handler DTOs, not here.
type DonorProfile struct {
	Email        string     `json:"email"`
	Name         string     `json:"name,omitempty"`
	BloodGroup   string     `json:"bloodGroup,omitempty"`
	Location     string     `json:"location,omitempty"`
	Phone        string     `json:"phone,omitempty"`
	Active       bool       `json:"active"`
	LastDonation *time.Time `json:"lastDonation,omitempty"`
	UpdatedAt    time.Time  `json:"-"`
}

// ProfilePatch is a partial update to a donor profile. Nil fields are left
// untouched by the merge; set fields win last-write at field granularity.
type ProfilePatch struct {
	Name         *string
	BloodGroup   *string
	Location     *string
	Phone        *string
	Active       *bool
	LastDonation *time.Time
}

// IsEmpty reports whether the patch carries no fields at all.
func (p *ProfilePatch) IsEmpty() bool {
	return p.Name == nil &&
		p.BloodGroup == nil &&
		p.Location == nil &&
		p.Phone == nil &&
		p.Active == nil &&
		p.LastDonation == nil
}
