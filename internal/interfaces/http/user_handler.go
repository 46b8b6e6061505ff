package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Turnos-api/internal/application/dto"
	"github.com/jhoicas/Turnos-api/internal/application/usecase"
)

// UserHandler usuarios y puestos de trabajo.
type UserHandler struct {
	uc *usecase.UserUseCase
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *usecase.UserUseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

// List godoc
// @Summary      Listar usuarios
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.UserResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), GetClaim(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener usuario
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del usuario"
// @Success      200  {object}  dto.UserResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{id} [get]
func (h *UserHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), GetClaim(c), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear usuario
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateUserRequest  true  "Datos del usuario"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/users [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := bindAndValidate(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.uc.Create(c.Context(), GetClaim(c), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar usuario
// @Description  positionIds, si se envía, reemplaza el conjunto de puestos.
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                 true  "ID del usuario"
// @Param        body  body      dto.UpdateUserRequest  true  "Cambios"
// @Success      200   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/users/{id} [patch]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateUserRequest
	if err := bindAndValidate(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.uc.Update(c.Context(), GetClaim(c), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar usuario
// @Tags         users
// @Security     Bearer
// @Param        id   path  string  true  "ID del usuario"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/users/{id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetClaim(c), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListPositions godoc
// @Summary      Listar puestos
// @Tags         positions
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.PositionResponse
// @Router       /api/positions [get]
func (h *UserHandler) ListPositions(c *fiber.Ctx) error {
	out, err := h.uc.ListPositions(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// CreatePosition godoc
// @Summary      Crear puesto
// @Tags         positions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreatePositionRequest  true  "Puesto"
// @Success      201   {object}  dto.PositionResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/positions [post]
func (h *UserHandler) CreatePosition(c *fiber.Ctx) error {
	var in dto.CreatePositionRequest
	if err := bindAndValidate(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.uc.CreatePosition(c.Context(), GetClaim(c), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// RenamePosition godoc
// @Summary      Renombrar puesto
// @Tags         positions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      string                     true  "ID del puesto"
// @Param        body  body      dto.UpdatePositionRequest  true  "Nuevo nombre"
// @Success      200   {object}  dto.PositionResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/positions/{id} [patch]
func (h *UserHandler) RenamePosition(c *fiber.Ctx) error {
	var in dto.UpdatePositionRequest
	if err := bindAndValidate(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.uc.RenamePosition(c.Context(), GetClaim(c), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// ListPositionUsers godoc
// @Summary      Usuarios asignados a un puesto
// @Tags         positions
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del puesto"
// @Success      200  {array}   dto.UserResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/positions/{id}/users [get]
func (h *UserHandler) ListPositionUsers(c *fiber.Ctx) error {
	out, err := h.uc.ListPositionUsers(c.Context(), GetClaim(c), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}
