package identity

import (
	"github.com/circlepe/backend/internal/domain/shared"
)

// Role is the sole authorization input. There is no row-level or
// field-level restriction: admin may mutate, viewer may only read.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleViewer Role = "viewer"
)

// DefaultRole is assumed when a profile lookup fails or returns nothing
const DefaultRole = RoleViewer

// CanCreateResident reports whether the role may create residents
func (r Role) CanCreateResident() bool {
	return r == RoleAdmin
}

// CanEditResident reports whether the role may edit residents
func (r Role) CanEditResident() bool {
	return r == RoleAdmin
}

// CanDeleteResident reports whether the role may delete residents
func (r Role) CanDeleteResident() bool {
	return r == RoleAdmin
}

// CanCreateProperty reports whether the role may create properties
func (r Role) CanCreateProperty() bool {
	return r == RoleAdmin
}

// CanEditProperty reports whether the role may edit properties
func (r Role) CanEditProperty() bool {
	return r == RoleAdmin
}

// CanDeleteProperty reports whether the role may delete properties
func (r Role) CanDeleteProperty() bool {
	return r == RoleAdmin
}

// CanViewData reports whether the role may read portfolio data
func (r Role) CanViewData() bool {
	return r == RoleAdmin || r == RoleViewer
}

// IsAdmin reports whether the role is the admin role
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// ParseRole validates a raw role string, falling back to the default
// least-privileged role for unknown values
func ParseRole(raw string) Role {
	switch Role(raw) {
	case RoleAdmin:
		return RoleAdmin
	case RoleViewer:
		return RoleViewer
	default:
		return DefaultRole
	}
}

func validateRole(r Role) error {
	switch r {
	case RoleAdmin, RoleViewer:
		return nil
	default:
		return shared.NewDomainError("INVALID_ROLE", "Role must be 'admin' or 'viewer'")
	}
}
