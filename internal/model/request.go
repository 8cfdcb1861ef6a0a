package model

import "time"

// BloodRequest is a plea for donors. The owning email is assigned by the
// server from the authenticated identity and is the only deletion scope.
type BloodRequest struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	PatientName string     `json:"patientName,omitempty"`
	BloodGroup  string     `json:"bloodGroup"`
	Units       int        `json:"units,omitempty"`
	Hospital    string     `json:"hospital,omitempty"`
	Location    string     `json:"location,omitempty"`
	NeededBy    *time.Time `json:"neededBy,omitempty"`
	Message     string     `json:"message,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}
