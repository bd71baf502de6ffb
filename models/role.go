package models

// Role is the closed set of account roles. It is stored as a plain string
// column; anything outside these four values is rejected at the edges.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleClient Role = "client"
	RoleStaff  Role = "staff"
	RoleDriver Role = "driver"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleClient, RoleStaff, RoleDriver:
		return true
	}
	return false
}

// Can is the single capability check backing route-level authorization.
// Staff share fleet management and reservation oversight with admin;
// user management, car deletion, reservation status updates and driver
// assignment stay admin-only. Cancel routes are reachable for staff but
// the handler scopes the fetch to the caller's own rows.
func (r Role) Can(resource string, action string) bool {
	if r == RoleAdmin {
		return true
	}
	if r != RoleStaff {
		return false
	}
	switch resource {
	case "cars":
		return action == "read" || action == "create" || action == "update"
	case "reservations":
		return action == "read" || action == "cancel"
	case "users":
		return action == "read"
	}
	return false
}
