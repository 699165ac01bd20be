package authz

const (
	RoleAdmin      = "admin"
	RoleInstructor = "instructor"
	RoleStudent    = "student"
)

// ProtectedPrefixes maps each role-specific section of the portal to the
// role required to enter it.
var ProtectedPrefixes = map[string]string{
	"/admin":      RoleAdmin,
	"/instructor": RoleInstructor,
	"/student":    RoleStudent,
}

func IsValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleInstructor, RoleStudent:
		return true
	}
	return false
}
