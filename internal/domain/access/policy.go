// Package access reúne las decisiones de autorización: predicados de rol,
// capacidades por operación, visibilidad por puesto y campos editables.
// Funciones puras: no hacen I/O ni devuelven errores. El servicio traduce un
// "false" en domain.ErrForbidden.
package access

import "github.com/jhoicas/Turnos-api/internal/domain/entity"

// Claim identidad verificada de quien hace la petición.
type Claim struct {
	UserID      string
	Email       string
	Role        entity.Role
	PositionIDs []string
}

// HasPosition indica si el puesto está entre los asignados al claim.
func (c Claim) HasPosition(positionID string) bool {
	for _, id := range c.PositionIDs {
		if id == positionID {
			return true
		}
	}
	return false
}

// IsAdmin ADMIN ignora la restricción por puesto.
func IsAdmin(role entity.Role) bool {
	return role == entity.RoleAdmin
}

// IsSupervisorOrAdmin roles con privilegios ampliados de acción.
func IsSupervisorOrAdmin(role entity.Role) bool {
	return role == entity.RoleAdmin || role == entity.RoleSupervisor
}

// CanAccessPosition ADMIN accede a todo; el resto solo a sus puestos.
func CanAccessPosition(userPositionIDs []string, targetPositionID string, role entity.Role) bool {
	if IsAdmin(role) {
		return true
	}
	for _, id := range userPositionIDs {
		if id == targetPositionID {
			return true
		}
	}
	return false
}

// FilterVisibleTasks ADMIN ve todas las tareas. SUPERVISOR y EMPLOYEE solo
// las de sus puestos: el rol de supervisor amplía acciones, no visibilidad.
func FilterVisibleTasks(tasks []*entity.Task, c Claim) []*entity.Task {
	if IsAdmin(c.Role) {
		return tasks
	}
	out := make([]*entity.Task, 0, len(tasks))
	for _, t := range tasks {
		if c.HasPosition(t.PositionID) {
			out = append(out, t)
		}
	}
	return out
}

// FilterVisiblePositions ADMIN ve todos los puestos; el resto solo los suyos.
func FilterVisiblePositions(positions []*entity.Position, c Claim) []*entity.Position {
	if IsAdmin(c.Role) {
		return positions
	}
	out := make([]*entity.Position, 0, len(positions))
	for _, p := range positions {
		if c.HasPosition(p.ID) {
			out = append(out, p)
		}
	}
	return out
}

// FilterVisibleUsers ADMIN ve todos; el resto los que comparten algún puesto.
func FilterVisibleUsers(users []*entity.User, c Claim) []*entity.User {
	if IsAdmin(c.Role) {
		return users
	}
	out := make([]*entity.User, 0, len(users))
	for _, u := range users {
		for _, pid := range u.PositionIDs {
			if c.HasPosition(pid) {
				out = append(out, u)
				break
			}
		}
	}
	return out
}

func CanCreateTask(role entity.Role) bool        { return IsAdmin(role) }
func CanUpdateTaskDetails(role entity.Role) bool { return IsAdmin(role) }
func CanDuplicateTask(role entity.Role) bool     { return IsAdmin(role) }
func CanDeleteTask(role entity.Role) bool        { return IsAdmin(role) }

// CanMarkTaskComplete ADMIN y SUPERVISOR siempre; EMPLOYEE solo en sus puestos.
func CanMarkTaskComplete(t *entity.Task, c Claim) bool {
	if IsSupervisorOrAdmin(c.Role) {
		return true
	}
	return c.HasPosition(t.PositionID)
}

func CanCreateCardRecord(role entity.Role) bool { return IsSupervisorOrAdmin(role) }
func CanViewAllUsers(role entity.Role) bool     { return IsAdmin(role) }
func CanManageUsers(role entity.Role) bool      { return IsAdmin(role) }
func CanManagePositions(role entity.Role) bool  { return IsAdmin(role) }

// CanViewUser ADMIN ve a cualquiera; el resto solo a sí mismo.
func CanViewUser(c Claim, targetUserID string) bool {
	return IsAdmin(c.Role) || c.UserID == targetUserID
}

// VisiblePositionIDs nil significa sin restricción (ADMIN).
func VisiblePositionIDs(c Claim) []string {
	if IsAdmin(c.Role) {
		return nil
	}
	if c.PositionIDs == nil {
		return []string{}
	}
	return c.PositionIDs
}
