package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Turnos-api/internal/application/dto"
	"github.com/jhoicas/Turnos-api/internal/application/usecase"
)

// ClosureHandler cierres de caja.
type ClosureHandler struct {
	uc *usecase.ClosureUseCase
}

// NewClosureHandler construye el handler.
func NewClosureHandler(uc *usecase.ClosureUseCase) *ClosureHandler {
	return &ClosureHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar cierre de caja
// @Description  Calcula total contado, descuadre y clasificación (normal, leve, critico).
// @Tags         closures
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateClosureRequest  true  "Arqueo"
// @Success      201   {object}  dto.ClosureResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/closures [post]
func (h *ClosureHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateClosureRequest
	if err := bindAndValidate(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.uc.Create(c.Context(), GetClaim(c), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar cierres de caja
// @Tags         closures
// @Security     Bearer
// @Produce      json
// @Param        positionId  query     string  false  "Puesto"
// @Param        startDate   query     string  false  "YYYY-MM-DD"
// @Param        endDate     query     string  false  "YYYY-MM-DD"
// @Success      200         {array}   dto.ClosureResponse
// @Router       /api/closures [get]
func (h *ClosureHandler) List(c *fiber.Ctx) error {
	var q dto.ClosureQuery
	if err := c.QueryParser(&q); err != nil {
		return fail(c, errBadQuery)
	}
	out, err := h.uc.List(c.Context(), GetClaim(c), q)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener cierre de caja
// @Tags         closures
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del cierre"
// @Success      200  {object}  dto.ClosureResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/closures/{id} [get]
func (h *ClosureHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), GetClaim(c), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// PDF godoc
// @Summary      Justificante del cierre en PDF
// @Tags         closures
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path      string  true  "ID del cierre"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/closures/{id}/pdf [get]
func (h *ClosureHandler) PDF(c *fiber.Ctx) error {
	id := c.Params("id")
	pdf, err := h.uc.PDF(c.Context(), GetClaim(c), id)
	if err != nil {
		return fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="cierre-%s.pdf"`, id))
	return c.Send(pdf)
}
