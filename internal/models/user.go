package models

// Role values returned by /api/auth/me.
const (
	RoleAdmin      = "ADMIN"
	RoleManager    = "MANAGER"
	RoleSupervisor = "SUPERVISOR"
	RoleEmployee   = "EMPLOYEE"
)

// User is an account of the fleet API.
type User struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Role  string `json:"role"`
}

// DisplayName prefers the name and falls back to the email.
func (u User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}

// IsEmployee reports whether the user only has crew access.
func (u User) IsEmployee() bool {
	return u.Role == RoleEmployee
}

// CanManageUsers reports whether the user management screens apply.
// The server enforces access; this only decides what the console offers.
func (u User) CanManageUsers() bool {
	switch u.Role {
	case RoleSupervisor, RoleManager, RoleAdmin:
		return true
	}
	return false
}
