package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Turnos-api/internal/application/dto"
	"github.com/jhoicas/Turnos-api/internal/application/task"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// TaskHandler tareas de turno.
type TaskHandler struct {
	svc      *task.Service
	exporter task.Exporter
}

// NewTaskHandler construye el handler.
func NewTaskHandler(svc *task.Service, exporter task.Exporter) *TaskHandler {
	return &TaskHandler{svc: svc, exporter: exporter}
}

// List godoc
// @Summary      Listar tareas
// @Description  Devuelve las tareas visibles con los puestos y usuarios del actor.
// @Tags         tasks
// @Security     Bearer
// @Produce      json
// @Param        positionId  query     string  false  "Puesto"
// @Param        status      query     string  false  "PENDING | OVERDUE | COMPLETED"
// @Param        shift       query     string  false  "MORNING | AFTERNOON | NIGHT"
// @Param        startDate   query     string  false  "YYYY-MM-DD"
// @Param        endDate     query     string  false  "YYYY-MM-DD"
// @Success      200         {object}  dto.TaskListResponse
// @Failure      400         {object}  dto.ErrorResponse
// @Router       /api/tasks [get]
func (h *TaskHandler) List(c *fiber.Ctx) error {
	var in dto.TaskListQuery
	if err := c.QueryParser(&in); err != nil {
		return fail(c, errBadQuery)
	}
	q, err := h.svc.ParseQuery(in)
	if err != nil {
		return fail(c, err)
	}
	out, err := h.svc.List(c.Context(), GetClaim(c), q)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar tareas a Excel
// @Tags         tasks
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        positionId  query  string  false  "Puesto"
// @Param        status      query  string  false  "PENDING | OVERDUE | COMPLETED"
// @Param        shift       query  string  false  "MORNING | AFTERNOON | NIGHT"
// @Param        startDate   query  string  false  "YYYY-MM-DD"
// @Param        endDate     query  string  false  "YYYY-MM-DD"
// @Success      200  {file}    file
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/tasks/export [get]
func (h *TaskHandler) Export(c *fiber.Ctx) error {
	var in dto.TaskListQuery
	if err := c.QueryParser(&in); err != nil {
		return fail(c, errBadQuery)
	}
	q, err := h.svc.ParseQuery(in)
	if err != nil {
		return fail(c, err)
	}
	buf, err := h.svc.Export(c.Context(), GetClaim(c), q, h.exporter)
	if err != nil {
		return fail(c, err)
	}
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="tareas.xlsx"`)
	return c.Send(buf.Bytes())
}

// Get godoc
// @Summary      Obtener tarea
// @Tags         tasks
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la tarea"
// @Success      200  {object}  dto.TaskResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/tasks/{id} [get]
func (h *TaskHandler) Get(c *fiber.Ctx) error {
	out, err := h.svc.Get(c.Context(), GetClaim(c), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear tarea
// @Description  La tarea nace PENDING.
// @Tags         tasks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateTaskRequest  true  "Tarea"
// @Success      201   {object}  dto.TaskResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/tasks [post]
func (h *TaskHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTaskRequest
	if err := bindAndValidate(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.svc.Create(c.Context(), GetClaim(c), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar tarea
// @Description  ADMIN cambia cualquier campo editable e ignora id, createdAt y updatedAt. Otros roles solo envían status y completedById; cualquier otro campo rechaza toda la petición.
// @Tags         tasks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string  true  "ID de la tarea"
// @Param        body  body      object  true  "Campos a cambiar"
// @Success      200   {object}  dto.TaskResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/tasks/{id} [patch]
func (h *TaskHandler) Update(c *fiber.Ctx) error {
	fields, err := task.ParseRawFields(c.Body())
	if err != nil {
		return fail(c, err)
	}
	out, err := h.svc.Update(c.Context(), GetClaim(c), c.Params("id"), fields)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Duplicate godoc
// @Summary      Duplicar tarea
// @Tags         tasks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                    true  "ID de la tarea"
// @Param        body  body      dto.DuplicateTaskRequest  true  "Nueva fecha límite"
// @Success      201   {object}  dto.TaskResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/tasks/{id}/duplicate [post]
func (h *TaskHandler) Duplicate(c *fiber.Ctx) error {
	var in dto.DuplicateTaskRequest
	if err := bindAndValidate(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.svc.Duplicate(c.Context(), GetClaim(c), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Delete godoc
// @Summary      Eliminar tarea
// @Tags         tasks
// @Security     Bearer
// @Param        id   path  string  true  "ID de la tarea"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/tasks/{id} [delete]
func (h *TaskHandler) Delete(c *fiber.Ctx) error {
	if err := h.svc.Delete(c.Context(), GetClaim(c), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
