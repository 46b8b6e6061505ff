package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/Turnos-api/internal/application/dto"
	"github.com/jhoicas/Turnos-api/internal/domain"
	"github.com/jhoicas/Turnos-api/internal/domain/access"
	"github.com/jhoicas/Turnos-api/internal/domain/entity"
	"github.com/jhoicas/Turnos-api/internal/domain/repository"
	"github.com/jhoicas/Turnos-api/pkg/logger"
)

// CardRecordUseCase contadores de tarjetas captadas por usuario y puesto.
type CardRecordUseCase struct {
	tx    TxRunner
	cards repository.CardRecordRepository
	log   *logger.Logger
}

// NewCardRecordUseCase construye el caso de uso.
func NewCardRecordUseCase(tx TxRunner, cards repository.CardRecordRepository, log *logger.Logger) *CardRecordUseCase {
	return &CardRecordUseCase{tx: tx, cards: cards, log: log}
}

// Upsert crea o sobrescribe el contador de (usuario, puesto, tipo).
// userId vacío es el propio actor. La comprobación del usuario y la escritura
// van en la misma transacción.
func (uc *CardRecordUseCase) Upsert(ctx context.Context, claim access.Claim, in dto.CardRecordRequest) (*dto.CardRecordResponse, error) {
	if !access.CanCreateCardRecord(claim.Role) {
		return nil, fmt.Errorf("registrar tarjetas: %w", domain.ErrForbidden)
	}
	cardType := entity.CardType(strings.ToUpper(strings.TrimSpace(in.CardType)))
	positionID := strings.TrimSpace(in.PositionID)
	if positionID == "" || in.Count == nil {
		return nil, fmt.Errorf("positionId, cardType y count son requeridos: %w", domain.ErrInvalidInput)
	}
	if !cardType.Valid() {
		return nil, fmt.Errorf("cardType %q: %w", in.CardType, domain.ErrInvalidInput)
	}
	if *in.Count < 0 {
		return nil, fmt.Errorf("count no puede ser negativo: %w", domain.ErrInvalidInput)
	}
	if !access.CanAccessPosition(claim.PositionIDs, positionID, claim.Role) {
		return nil, fmt.Errorf("puesto %s fuera de los asignados: %w", positionID, domain.ErrForbidden)
	}
	userID := strings.TrimSpace(in.UserID)
	if userID == "" {
		userID = claim.UserID
	}

	var saved *entity.CardRecord
	err := uc.tx.RunCards(ctx, func(userRepo repository.UserRepository, cardRepo repository.CardRecordRepository) error {
		u, err := userRepo.GetByID(ctx, userID)
		if err != nil {
			if isNotFound(err) {
				return fmt.Errorf("usuario %s: %w", userID, domain.ErrInvalidReference)
			}
			return err
		}
		if u.Role != entity.RoleAdmin && !u.HasPosition(positionID) {
			return fmt.Errorf("el usuario %s no está asignado al puesto %s: %w", userID, positionID, domain.ErrInvalidInput)
		}
		saved, err = cardRepo.Upsert(ctx, &entity.CardRecord{
			UserID:     userID,
			PositionID: positionID,
			CardType:   cardType,
			Count:      *in.Count,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.log.Debug().
		Str("user_id", saved.UserID).
		Str("position_id", saved.PositionID).
		Str("card_type", string(saved.CardType)).
		Int("count", saved.Count).
		Msg("contador de tarjetas guardado")
	resp := dto.NewCardRecordResponse(saved)
	return &resp, nil
}

// List ADMIN ve todos los contadores; el resto solo los de sus puestos.
func (uc *CardRecordUseCase) List(ctx context.Context, claim access.Claim, q dto.CardRecordQuery) ([]dto.CardRecordResponse, error) {
	records, err := uc.list(ctx, claim, q.PositionID, q.UserID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CardRecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, dto.NewCardRecordResponse(r))
	}
	return out, nil
}

// Summary totales por tipo de tarjeta sobre los contadores visibles.
func (uc *CardRecordUseCase) Summary(ctx context.Context, claim access.Claim, positionID string) (*dto.CardSummaryResponse, error) {
	records, err := uc.list(ctx, claim, positionID, "")
	if err != nil {
		return nil, err
	}
	byType := make(map[entity.CardType]int, len(entity.CardTypes))
	total := 0
	for _, r := range records {
		byType[r.CardType] += r.Count
		total += r.Count
	}
	out := &dto.CardSummaryResponse{PositionID: positionID, Total: total}
	for _, ct := range entity.CardTypes {
		out.Totals = append(out.Totals, dto.CardTypeTotal{CardType: string(ct), Count: byType[ct]})
	}
	return out, nil
}

func (uc *CardRecordUseCase) list(ctx context.Context, claim access.Claim, positionID, userID string) ([]*entity.CardRecord, error) {
	return uc.cards.List(ctx, entity.CardRecordFilter{
		UserID:      strings.TrimSpace(userID),
		PositionID:  strings.TrimSpace(positionID),
		PositionIDs: access.VisiblePositionIDs(claim),
	})
}
