package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Turnos-api/internal/application/dto"
	"github.com/jhoicas/Turnos-api/internal/application/usecase"
)

// CardRecordHandler contadores de tarjetas de fidelización.
type CardRecordHandler struct {
	uc *usecase.CardRecordUseCase
}

// NewCardRecordHandler construye el handler.
func NewCardRecordHandler(uc *usecase.CardRecordUseCase) *CardRecordHandler {
	return &CardRecordHandler{uc: uc}
}

// Upsert godoc
// @Summary      Registrar contador de tarjetas
// @Description  Sobrescribe el contador existente de (usuario, puesto, tipo).
// @Tags         card-records
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CardRecordRequest  true  "Contador"
// @Success      200   {object}  dto.CardRecordResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/card-records [post]
func (h *CardRecordHandler) Upsert(c *fiber.Ctx) error {
	var in dto.CardRecordRequest
	if err := bindAndValidate(c, &in); err != nil {
		return fail(c, err)
	}
	out, err := h.uc.Upsert(c.Context(), GetClaim(c), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar contadores de tarjetas
// @Tags         card-records
// @Security     Bearer
// @Produce      json
// @Param        positionId  query     string  false  "Puesto"
// @Param        userId      query     string  false  "Usuario"
// @Success      200         {array}   dto.CardRecordResponse
// @Router       /api/card-records [get]
func (h *CardRecordHandler) List(c *fiber.Ctx) error {
	var q dto.CardRecordQuery
	if err := c.QueryParser(&q); err != nil {
		return fail(c, errBadQuery)
	}
	out, err := h.uc.List(c.Context(), GetClaim(c), q)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Totales por tipo de tarjeta
// @Tags         card-records
// @Security     Bearer
// @Produce      json
// @Param        positionId  query     string  false  "Puesto"
// @Success      200         {object}  dto.CardSummaryResponse
// @Router       /api/card-records/summary [get]
func (h *CardRecordHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.Context(), GetClaim(c), c.Query("positionId"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}
