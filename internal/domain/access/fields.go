package access

import (
	"sort"

	"github.com/jhoicas/Turnos-api/internal/domain/entity"
)

// Operation operación sobre tareas con payload parcial.
type Operation string

const (
	OpTaskUpdate Operation = "task.update"
)

// Campos del payload de actualización de tareas.
const (
	FieldTitle         = "title"
	FieldDescription   = "description"
	FieldStatus        = "status"
	FieldDueDate       = "dueDate"
	FieldPositionID    = "positionId"
	FieldShift         = "shift"
	FieldCompletedByID = "completedById"
	FieldCompletedLate = "completedLate"
)

// Campos de solo lectura que el cliente suele reenviar tal cual los recibió.
const (
	FieldID        = "id"
	FieldCreatedAt = "createdAt"
	FieldUpdatedAt = "updatedAt"
)

type fieldSet map[string]struct{}

func newFieldSet(fields ...string) fieldSet {
	s := make(fieldSet, len(fields))
	for _, f := range fields {
		s[f] = struct{}{}
	}
	return s
}

var readOnlyFields = newFieldSet(FieldID, FieldCreatedAt, FieldUpdatedAt)

// allowedFields tabla rol × operación → campos permitidos.
var allowedFields = map[Operation]map[entity.Role]fieldSet{
	OpTaskUpdate: {
		entity.RoleAdmin: newFieldSet(
			FieldTitle, FieldDescription, FieldStatus, FieldDueDate,
			FieldPositionID, FieldShift, FieldCompletedByID, FieldCompletedLate,
		),
		entity.RoleSupervisor: newFieldSet(FieldStatus, FieldCompletedByID),
		entity.RoleEmployee:   newFieldSet(FieldStatus, FieldCompletedByID),
	},
}

// AllowedFields devuelve los campos que role puede enviar en op, ordenados.
func AllowedFields(op Operation, role entity.Role) []string {
	set := allowedFields[op][role]
	out := make([]string, 0, len(set))
	for f := range set {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// IsReadOnlyField indica si f es un campo que nadie puede escribir (id, fechas de auditoría).
func IsReadOnlyField(f string) bool {
	_, ok := readOnlyFields[f]
	return ok
}

// FieldsAllowed indica si todos los campos están permitidos para role en op.
// Si alguno no lo está devuelve false y el primer campo rechazado.
func FieldsAllowed(op Operation, role entity.Role, fields []string) (bool, string) {
	set := allowedFields[op][role]
	for _, f := range fields {
		if _, ok := set[f]; !ok {
			return false, f
		}
	}
	return true, ""
}
