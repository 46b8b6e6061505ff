package entity

import "time"

// Role rol de un usuario. Conjunto cerrado.
type Role string

// Roles válidos para User.
const (
	RoleAdmin      Role = "ADMIN"
	RoleSupervisor Role = "SUPERVISOR"
	RoleEmployee   Role = "EMPLOYEE"
)

// Valid indica si el rol pertenece al conjunto cerrado.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleSupervisor, RoleEmployee:
		return true
	}
	return false
}

// User representa un empleado del sistema con sus puestos asignados.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string // bcrypt hash, nunca sale del repositorio hacia la API
	Role         Role
	PositionIDs  []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasPosition indica si el usuario está asignado al puesto.
func (u *User) HasPosition(positionID string) bool {
	for _, id := range u.PositionIDs {
		if id == positionID {
			return true
		}
	}
	return false
}

// UserPatch cambios parciales de un usuario. nil = sin cambio.
// PositionIDs no nil reemplaza el conjunto completo.
type UserPatch struct {
	Name         *string
	Email        *string
	Role         *Role
	PasswordHash *string
	PositionIDs  *[]string
}

// DedupIDs elimina IDs duplicados y vacíos conservando el orden.
func DedupIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
