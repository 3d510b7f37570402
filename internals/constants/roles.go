package constants

const (
	RoleAdmin   = "admin"
	RoleStudent = "student"
)

// AllowedRoles guards registration input; admins are only created by
// other admins or seeding.
var AllowedRoles = []string{RoleAdmin, RoleStudent}
