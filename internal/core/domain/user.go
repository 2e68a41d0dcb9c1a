package domain

import "time"

// Role is the platform role carried in the token's "role" claim.
type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleContractor Role = "CONTRACTOR"
	// RoleFallback is assigned when a token yields no identity.
	RoleFallback Role = "user"
)

// Known reports whether r is one of the roles the platform issues.
func (r Role) Known() bool {
	return r == RoleAdmin || r == RoleContractor
}

// User is the identity attached to a session.
type User struct {
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// Account is a credential record held by the sandbox auth service.
type Account struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
