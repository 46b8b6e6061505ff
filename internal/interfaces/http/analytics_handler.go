package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Turnos-api/internal/application/analytics"
	"github.com/jhoicas/Turnos-api/internal/application/dto"
)

// AnalyticsHandler ranking de empleados y resumen por puesto.
type AnalyticsHandler struct {
	uc *analytics.UseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(uc *analytics.UseCase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// Ranking godoc
// @Summary      Ranking de empleados
// @Description  Tareas completadas por empleado desde el inicio del período.
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        period  query     string  false  "day | week | month"  default(week)
// @Success      200     {object}  dto.RankingResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/analytics/ranking [get]
func (h *AnalyticsHandler) Ranking(c *fiber.Ctx) error {
	var q dto.RankingQuery
	if err := c.QueryParser(&q); err != nil {
		return fail(c, errBadQuery)
	}
	out, err := h.uc.Ranking(c.Context(), q.Period)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Positions godoc
// @Summary      Resumen de tareas por puesto
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        startDate  query     string  false  "YYYY-MM-DD"
// @Param        endDate    query     string  false  "YYYY-MM-DD"
// @Success      200        {array}   dto.PositionSummaryDTO
// @Router       /api/analytics/positions [get]
func (h *AnalyticsHandler) Positions(c *fiber.Ctx) error {
	var q dto.PositionSummaryQuery
	if err := c.QueryParser(&q); err != nil {
		return fail(c, errBadQuery)
	}
	out, err := h.uc.PositionsSummary(c.Context(), GetClaim(c), q)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}
