package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Turnos-api/internal/application/dates"
	"github.com/jhoicas/Turnos-api/internal/application/dto"
	"github.com/jhoicas/Turnos-api/internal/domain"
	"github.com/jhoicas/Turnos-api/internal/domain/access"
	"github.com/jhoicas/Turnos-api/internal/domain/entity"
	"github.com/jhoicas/Turnos-api/internal/domain/repository"
	"github.com/jhoicas/Turnos-api/pkg/logger"
)

// ClosureUseCase cierres de caja: arqueo por denominaciones y descuadre.
type ClosureUseCase struct {
	closures  repository.ClosureRepository
	positions repository.PositionRepository
	users     repository.UserRepository
	renderer  ClosureRenderer
	loc       *time.Location
	log       *logger.Logger
}

// NewClosureUseCase construye el caso de uso. loc fija el día calendario del cierre.
func NewClosureUseCase(
	closures repository.ClosureRepository,
	positions repository.PositionRepository,
	users repository.UserRepository,
	renderer ClosureRenderer,
	loc *time.Location,
	log *logger.Logger,
) *ClosureUseCase {
	return &ClosureUseCase{closures: closures, positions: positions, users: users, renderer: renderer, loc: loc, log: log}
}

// Create registra el cierre del actor. Un descuadre crítico exige notas.
func (uc *ClosureUseCase) Create(ctx context.Context, claim access.Claim, in dto.CreateClosureRequest) (*dto.ClosureResponse, error) {
	positionID := strings.TrimSpace(in.PositionID)
	shift := entity.Shift(strings.ToUpper(strings.TrimSpace(in.Shift)))
	if positionID == "" || in.Date == "" || len(in.Denominations) == 0 {
		return nil, fmt.Errorf("positionId, shift, date y denominations son requeridos: %w", domain.ErrInvalidInput)
	}
	if !shift.Valid() {
		return nil, fmt.Errorf("shift %q: %w", in.Shift, domain.ErrInvalidInput)
	}
	if !access.CanAccessPosition(claim.PositionIDs, positionID, claim.Role) {
		return nil, fmt.Errorf("puesto %s fuera de los asignados: %w", positionID, domain.ErrForbidden)
	}
	day, err := dates.ParseDay(in.Date, uc.loc)
	if err != nil {
		return nil, fmt.Errorf("date: %w", err)
	}
	if in.ExpectedTotal.IsNegative() {
		return nil, fmt.Errorf("expectedTotal no puede ser negativo: %w", domain.ErrInvalidInput)
	}
	denoms, err := mergeDenominations(in.Denominations)
	if err != nil {
		return nil, err
	}

	c := &entity.Closure{
		UserID:        claim.UserID,
		PositionID:    positionID,
		Shift:         shift,
		Date:          calendarDate(day),
		Denominations: denoms,
		ExpectedTotal: in.ExpectedTotal,
		Notes:         strings.TrimSpace(in.Notes),
	}
	c.Reconcile()
	if c.Classification == entity.ClosureCritico && c.Notes == "" {
		return nil, fmt.Errorf("descuadre crítico de %s: las notas son obligatorias: %w", c.Difference.StringFixed(2), domain.ErrInvalidInput)
	}
	if err := uc.closures.Create(ctx, c); err != nil {
		return nil, err
	}
	ev := uc.log.Info()
	if c.Classification != entity.ClosureNormal {
		ev = uc.log.Warn()
	}
	ev.Str("closure_id", c.ID).
		Str("position_id", c.PositionID).
		Str("difference", c.Difference.StringFixed(2)).
		Str("classification", c.Classification).
		Str("by", claim.UserID).
		Msg("cierre de caja registrado")
	resp := dto.NewClosureResponse(c)
	return &resp, nil
}

// Get un cierre con su desglose, si el actor accede a su puesto.
func (uc *ClosureUseCase) Get(ctx context.Context, claim access.Claim, id string) (*dto.ClosureResponse, error) {
	c, err := uc.load(ctx, claim, id)
	if err != nil {
		return nil, err
	}
	resp := dto.NewClosureResponse(c)
	return &resp, nil
}

// List cierres visibles, más recientes primero. Fechas inclusivas (YYYY-MM-DD).
func (uc *ClosureUseCase) List(ctx context.Context, claim access.Claim, q dto.ClosureQuery) ([]dto.ClosureResponse, error) {
	start, end, err := dates.Range(q.StartDate, q.EndDate, uc.loc)
	if err != nil {
		return nil, err
	}
	f := entity.ClosureFilter{
		PositionID:  strings.TrimSpace(q.PositionID),
		PositionIDs: access.VisiblePositionIDs(claim),
	}
	if start != nil {
		d := calendarDate(*start)
		f.StartDate = &d
	}
	if end != nil {
		d := calendarDate(*end)
		f.EndDate = &d
	}
	list, err := uc.closures.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClosureResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.NewClosureResponse(c))
	}
	return out, nil
}

// PDF justificante del cierre.
func (uc *ClosureUseCase) PDF(ctx context.Context, claim access.Claim, id string) ([]byte, error) {
	c, err := uc.load(ctx, claim, id)
	if err != nil {
		return nil, err
	}
	positionName := c.PositionID
	if p, err := uc.positions.GetByID(ctx, c.PositionID); err == nil {
		positionName = p.Name
	}
	userName := "-"
	if c.UserID != "" {
		if u, err := uc.users.GetByID(ctx, c.UserID); err == nil {
			userName = u.Name
		}
	}
	out, err := uc.renderer.RenderClosure(c, positionName, userName, uc.loc)
	if err != nil {
		return nil, fmt.Errorf("generar PDF del cierre %s: %w", id, err)
	}
	return out, nil
}

func (uc *ClosureUseCase) load(ctx context.Context, claim access.Claim, id string) (*entity.Closure, error) {
	c, err := uc.closures.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.CanAccessPosition(claim.PositionIDs, c.PositionID, claim.Role) {
		return nil, fmt.Errorf("cierre %s fuera de los puestos asignados: %w", id, domain.ErrForbidden)
	}
	return c, nil
}

// mergeDenominations valida y suma las cantidades de valores repetidos.
func mergeDenominations(in []dto.DenominationDTO) ([]entity.Denomination, error) {
	byValue := make(map[string]int, len(in))
	values := make(map[string]decimal.Decimal, len(in))
	for _, d := range in {
		if !d.Value.IsPositive() {
			return nil, fmt.Errorf("denominación %s: el valor debe ser positivo: %w", d.Value.String(), domain.ErrInvalidInput)
		}
		if d.Count < 0 {
			return nil, fmt.Errorf("denominación %s: cantidad negativa: %w", d.Value.String(), domain.ErrInvalidInput)
		}
		key := d.Value.StringFixed(2)
		byValue[key] += d.Count
		values[key] = d.Value.Round(2)
	}
	out := make([]entity.Denomination, 0, len(byValue))
	for key, count := range byValue {
		out = append(out, entity.Denomination{Value: values[key], Count: count})
	}
	entity.SortDenominations(out)
	return out, nil
}

// calendarDate día calendario como medianoche UTC (columna DATE).
func calendarDate(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
}
