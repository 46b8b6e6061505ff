package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Turnos-api/internal/application/dto"
	"github.com/jhoicas/Turnos-api/internal/domain"
	"github.com/jhoicas/Turnos-api/internal/domain/entity"
	"github.com/jhoicas/Turnos-api/internal/testutil/memrepo"
	"github.com/jhoicas/Turnos-api/pkg/logger"
)

func intp(n int) *int { return &n }

func newCardUseCase(st *memrepo.Store) *CardRecordUseCase {
	return NewCardRecordUseCase(st, st.CardRecords, logger.Nop())
}

func TestCardRecordUseCase_SobrescribeNoSuma(t *testing.T) {
	st := newStore()
	uc := newCardUseCase(st)
	req := dto.CardRecordRequest{PositionID: "tienda", CardType: "MOEVE_PRO", Count: intp(3)}

	first, err := uc.Upsert(context.Background(), superClaim, req)
	require.NoError(t, err)
	assert.Equal(t, "u-sup", first.UserID)
	assert.Equal(t, 3, first.Count)

	req.Count = intp(5)
	second, err := uc.Upsert(context.Background(), superClaim, req)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 5, second.Count)
	assert.Equal(t, 1, st.CardRecords.Count())
}

func TestCardRecordUseCase_Permisos(t *testing.T) {
	st := newStore()
	uc := newCardUseCase(st)

	_, err := uc.Upsert(context.Background(), employeeClaim,
		dto.CardRecordRequest{PositionID: "pista", CardType: "MOEVE_GOW", Count: intp(1)})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.Upsert(context.Background(), superClaim,
		dto.CardRecordRequest{PositionID: "pista", CardType: "MOEVE_GOW", Count: intp(1)})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.Upsert(context.Background(), adminClaim,
		dto.CardRecordRequest{UserID: "u-emp", PositionID: "pista", CardType: "MOEVE_GOW", Count: intp(2)})
	assert.NoError(t, err)
}

func TestCardRecordUseCase_Validaciones(t *testing.T) {
	st := newStore()
	uc := newCardUseCase(st)

	cases := []struct {
		name string
		req  dto.CardRecordRequest
		want error
	}{
		{"tipo desconocido", dto.CardRecordRequest{PositionID: "tienda", CardType: "VISA", Count: intp(1)}, domain.ErrInvalidInput},
		{"count negativo", dto.CardRecordRequest{PositionID: "tienda", CardType: "MOEVE_PRO", Count: intp(-1)}, domain.ErrInvalidInput},
		{"sin count", dto.CardRecordRequest{PositionID: "tienda", CardType: "MOEVE_PRO"}, domain.ErrInvalidInput},
		{"usuario inexistente", dto.CardRecordRequest{UserID: "nope", PositionID: "tienda", CardType: "MOEVE_PRO", Count: intp(1)}, domain.ErrInvalidReference},
		{"usuario de otro puesto", dto.CardRecordRequest{UserID: "u-emp", PositionID: "tienda", CardType: "MOEVE_PRO", Count: intp(1)}, domain.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Upsert(context.Background(), superClaim, tc.req)
			assert.ErrorIs(t, err, tc.want)
		})
	}
	assert.Equal(t, 0, st.CardRecords.Count())
}

func TestCardRecordUseCase_ListYResumenPorVisibilidad(t *testing.T) {
	st := newStore()
	uc := newCardUseCase(st)
	ctx := context.Background()

	_, err := uc.Upsert(ctx, adminClaim, dto.CardRecordRequest{UserID: "u-emp", PositionID: "pista", CardType: "MOEVE_PRO", Count: intp(4)})
	require.NoError(t, err)
	_, err = uc.Upsert(ctx, adminClaim, dto.CardRecordRequest{UserID: "u-sup", PositionID: "tienda", CardType: "MOEVE_PRO", Count: intp(2)})
	require.NoError(t, err)
	_, err = uc.Upsert(ctx, adminClaim, dto.CardRecordRequest{UserID: "u-sup", PositionID: "tienda", CardType: "MOEVE_GOW", Count: intp(7)})
	require.NoError(t, err)

	all, err := uc.List(ctx, adminClaim, dto.CardRecordQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	mine, err := uc.List(ctx, superClaim, dto.CardRecordQuery{})
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	foreign, err := uc.List(ctx, superClaim, dto.CardRecordQuery{PositionID: "pista"})
	require.NoError(t, err)
	assert.Empty(t, foreign)

	sum, err := uc.Summary(ctx, superClaim, "")
	require.NoError(t, err)
	assert.Equal(t, 9, sum.Total)
	require.Len(t, sum.Totals, len(entity.CardTypes))
	got := map[string]int{}
	for _, tt := range sum.Totals {
		got[tt.CardType] = tt.Count
	}
	assert.Equal(t, 2, got["MOEVE_PRO"])
	assert.Equal(t, 7, got["MOEVE_GOW"])
	assert.Equal(t, 0, got["MOEVE_GOW_BANKINTER"])
}
