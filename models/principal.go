// models/principal.go
package models

// Role is the closed set of account roles.
type Role string

const (
	RoleHR       Role = "hr"
	RoleEmployee Role = "employee"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleHR || r == RoleEmployee
}

// Principal is the authenticated caller, decoded once at the HTTP boundary
// and passed into workflow calls. Business logic never re-parses raw claims.
type Principal struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
}
