package domain

// Role is the caller's role as verified by the identity gateway. The core
// never derives it from ambient request state; it is parsed once at the
// HTTP boundary and checked there.
type Role string

const (
	RoleRider    Role = "rider"
	RoleOperator Role = "vehicle-operator"
	RoleAdmin    Role = "fleet-admin"
)

// ParseRole maps the gateway-supplied role header to the enum.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleRider, RoleOperator, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

// Identity is the verified (subject, role) pair the gateway attaches to
// every request.
type Identity struct {
	SubjectID string
	Role      Role
}
