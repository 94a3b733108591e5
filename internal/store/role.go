package store

import "github.com/corporativo/sdu/pkg/errors"

// Role identifies which slot of the pipeline a cached file feeds.
type Role string

// The four source roles the pipeline consumes.
const (
	RoleUbicacion Role = "ubicacion"
	RoleCorreo    Role = "correo"
	RoleTelefono  Role = "telefono"
	RoleRelacion  Role = "relacion"
)

// Roles lists every valid role in pipeline order.
func Roles() []Role {
	return []Role{RoleUbicacion, RoleCorreo, RoleTelefono, RoleRelacion}
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleUbicacion, RoleCorreo, RoleTelefono, RoleRelacion:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }

// ParseRole validates a role string from user input.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", errors.NewValidationError("role", "unknown role: "+s)
	}
	return r, nil
}
