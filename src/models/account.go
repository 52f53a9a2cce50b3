package models

import "time"

// Role identifies the access level of an account
type Role string

const (
	// RoleLead is the default role for dashboard users
	RoleLead Role = "lead"
	// RoleChairperson identifies the club chairperson
	RoleChairperson Role = "chairperson"
	// RoleViceChairperson identifies the club vice chairperson
	RoleViceChairperson Role = "vice_chairperson"
	// RoleAdmin grants full access to every dashboard section
	RoleAdmin Role = "admin"
)

// ValidRole reports whether r is one of the known roles
func ValidRole(r Role) bool {
	switch r {
	case RoleLead, RoleChairperson, RoleViceChairperson, RoleAdmin:
		return true
	}
	return false
}

// Account represents a dashboard user account
type Account struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username"`
	PasswordHash   string    `json:"-"` // never expose
	Role           Role      `json:"role"`
	CanViewReviews bool      `json:"canViewReviews"`
	CreatedAt      time.Time `json:"createdAt"`
}
