// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import (
	"time"

	"github.com/roktodan/roktodan/internal/model"
)

// TokenRequest represents the request body for minting an identity token.
type TokenRequest struct {
	Email string `json:"email"`
}

// TokenResponse carries a freshly minted token.
type TokenResponse struct {
	Token string `json:"token"`
}

// RegisterRequest represents the request body for registering an identity.
// Role is deliberately absent: roles are granted through the admin surface,
// never self-assigned at registration.
type RegisterRequest struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// UserResponse represents an identity in API responses.
type UserResponse struct {
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// ProfilePatchRequest is the allow-list of updatable donation-profile
// fields. Decoding with DisallowUnknownFields rejects anything else, so
// clients cannot smuggle arbitrary fields (or another owner's email) into
// the stored document.
type ProfilePatchRequest struct {
	Name         *string    `json:"name,omitempty"`
	BloodGroup   *string    `json:"bloodGroup,omitempty"`
	Location     *string    `json:"location,omitempty"`
	Phone        *string    `json:"phone,omitempty"`
	Active       *bool      `json:"active,omitempty"`
	LastDonation *time.Time `json:"lastDonation,omitempty"`
}

// ToPatch converts the request into a model patch.
func (r *ProfilePatchRequest) ToPatch() *model.ProfilePatch {
	return &model.ProfilePatch{
		Name:         r.Name,
		BloodGroup:   r.BloodGroup,
		Location:     r.Location,
		Phone:        r.Phone,
		Active:       r.Active,
		LastDonation: r.LastDonation,
	}
}

// ActiveRequest toggles only the active flag of a donation profile.
type ActiveRequest struct {
	Active *bool `json:"active"`
}

// ProfileResponse is the owner's view of their donation profile. The owning
// email is stripped: the caller already knows whose profile it is.
type ProfileResponse struct {
	Name         string     `json:"name,omitempty"`
	BloodGroup   string     `json:"bloodGroup,omitempty"`
	Location     string     `json:"location,omitempty"`
	Phone        string     `json:"phone,omitempty"`
	Active       *bool      `json:"active,omitempty"`
	LastDonation *time.Time `json:"lastDonation,omitempty"`
}

// ToProfileResponse converts a DonorProfile to the owner's stripped view.
// A nil profile maps to an empty object.
func ToProfileResponse(p *model.DonorProfile) *ProfileResponse {
	if p == nil {
		return &ProfileResponse{}
	}
	active := p.Active
	return &ProfileResponse{
		Name:         p.Name,
		BloodGroup:   p.BloodGroup,
		Location:     p.Location,
		Phone:        p.Phone,
		Active:       &active,
		LastDonation: p.LastDonation,
	}
}

// DonorResponse is the public view of a donor profile in search results.
// Contact details stay visible so seekers can reach the donor.
type DonorResponse struct {
	Email        string     `json:"email"`
	Name         string     `json:"name,omitempty"`
	BloodGroup   string     `json:"bloodGroup"`
	Location     string     `json:"location,omitempty"`
	Phone        string     `json:"phone,omitempty"`
	Active       bool       `json:"active"`
	LastDonation *time.Time `json:"lastDonation,omitempty"`
}

// DonorsResponse is the result of a donor search: the filtered matches plus
// the unfiltered total number of profiles in the store.
type DonorsResponse struct {
	Donars      []DonorResponse `json:"donars"`
	DonarsCount int64           `json:"donarsCount"`
}

// ToDonorsResponse converts search results to the wire shape.
func ToDonorsResponse(profiles []*model.DonorProfile, total int64) *DonorsResponse {
	donors := make([]DonorResponse, 0, len(profiles))
	for _, p := range profiles {
		donors = append(donors, DonorResponse{
			Email:        p.Email,
			Name:         p.Name,
			BloodGroup:   p.BloodGroup,
			Location:     p.Location,
			Phone:        p.Phone,
			Active:       p.Active,
			LastDonation: p.LastDonation,
		})
	}
	return &DonorsResponse{
		Donars:      donors,
		DonarsCount: total,
	}
}

// CreateRequestRequest represents the body for posting a blood request. Any
// client-supplied email is ignored; the owner comes from the access guard.
type CreateRequestRequest struct {
	PatientName string     `json:"patientName,omitempty"`
	BloodGroup  string     `json:"bloodGroup"`
	Units       int        `json:"units,omitempty"`
	Hospital    string     `json:"hospital,omitempty"`
	Location    string     `json:"location,omitempty"`
	NeededBy    *time.Time `json:"neededBy,omitempty"`
	Message     string     `json:"message,omitempty"`
}

// DeleteResponse reports the effect of a conditional delete. A miss is a
// zero-effect success, mirroring the store's acknowledgment.
type DeleteResponse struct {
	Deleted bool `json:"deleted"`
}

// RoleRequest represents the body for an admin role grant.
type RoleRequest struct {
	Role string `json:"role"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}
