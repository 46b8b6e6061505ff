package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Turnos-api/internal/application/dto"
	"github.com/jhoicas/Turnos-api/internal/domain"
	"github.com/jhoicas/Turnos-api/internal/domain/entity"
	"github.com/jhoicas/Turnos-api/internal/testutil/memrepo"
	"github.com/jhoicas/Turnos-api/pkg/logger"
)

type fakeRenderer struct {
	closure  *entity.Closure
	position string
	user     string
}

func (f *fakeRenderer) RenderClosure(c *entity.Closure, positionName, userName string, _ *time.Location) ([]byte, error) {
	f.closure, f.position, f.user = c, positionName, userName
	return []byte("%PDF-fake"), nil
}

func newClosureUseCase(st *memrepo.Store, r ClosureRenderer) *ClosureUseCase {
	loc, _ := time.LoadLocation("Europe/Madrid")
	return NewClosureUseCase(st.Closures, st.Positions, st.Users, r, loc, logger.Nop())
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func closureReq(expected string, denoms ...dto.DenominationDTO) dto.CreateClosureRequest {
	return dto.CreateClosureRequest{
		PositionID:    "tienda",
		Shift:         "NIGHT",
		Date:          "2026-03-10",
		ExpectedTotal: dec(expected),
		Denominations: denoms,
	}
}

func TestClosureUseCase_CuadraYAgrupaDenominaciones(t *testing.T) {
	st := newStore()
	uc := newClosureUseCase(st, &fakeRenderer{})

	resp, err := uc.Create(context.Background(), superClaim, closureReq("170",
		dto.DenominationDTO{Value: dec("50"), Count: 2},
		dto.DenominationDTO{Value: dec("20"), Count: 3},
		dto.DenominationDTO{Value: dec("0.5"), Count: 10},
		dto.DenominationDTO{Value: dec("50.00"), Count: 0},
		dto.DenominationDTO{Value: dec("5"), Count: 1},
	))
	require.NoError(t, err)

	assert.True(t, resp.CountedTotal.Equal(dec("170")), resp.CountedTotal.String())
	assert.True(t, resp.Difference.IsZero())
	assert.Equal(t, entity.ClosureNormal, resp.Classification)
	assert.Equal(t, "2026-03-10", resp.Date)
	assert.Equal(t, "u-sup", resp.UserID)
	require.Len(t, resp.Denominations, 4)
	assert.True(t, resp.Denominations[0].Value.Equal(dec("50")))
	assert.Equal(t, 2, resp.Denominations[0].Count)
	assert.True(t, resp.Denominations[3].Value.Equal(dec("0.5")))
}

func TestClosureUseCase_Clasificacion(t *testing.T) {
	cases := []struct {
		counted string
		want    string
	}{
		{"99", entity.ClosureNormal},
		{"97", entity.ClosureAdvertencia},
		{"105", entity.ClosureAdvertencia},
		{"90", entity.ClosureCritico},
	}
	for _, tc := range cases {
		t.Run(tc.counted, func(t *testing.T) {
			st := newStore()
			uc := newClosureUseCase(st, &fakeRenderer{})
			req := closureReq("100", dto.DenominationDTO{Value: dec(tc.counted), Count: 1})
			req.Notes = "revisado"
			resp, err := uc.Create(context.Background(), superClaim, req)
			require.NoError(t, err)
			assert.Equal(t, tc.want, resp.Classification)
		})
	}
}

func TestClosureUseCase_CriticoSinNotas(t *testing.T) {
	st := newStore()
	uc := newClosureUseCase(st, &fakeRenderer{})

	_, err := uc.Create(context.Background(), superClaim, closureReq("100", dto.DenominationDTO{Value: dec("50"), Count: 1}))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestClosureUseCase_Validaciones(t *testing.T) {
	st := newStore()
	uc := newClosureUseCase(st, &fakeRenderer{})
	ok := dto.DenominationDTO{Value: dec("10"), Count: 1}

	_, err := uc.Create(context.Background(), employeeClaim, closureReq("10", ok))
	assert.ErrorIs(t, err, domain.ErrForbidden, "tienda no es de la empleada")

	_, err = uc.Create(context.Background(), superClaim, closureReq("10", dto.DenominationDTO{Value: dec("0"), Count: 1}))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(context.Background(), superClaim, closureReq("10", dto.DenominationDTO{Value: dec("10"), Count: -1}))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(context.Background(), superClaim, closureReq("-1", ok))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	bad := closureReq("10", ok)
	bad.Date = "ayer"
	_, err = uc.Create(context.Background(), superClaim, bad)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(context.Background(), superClaim, closureReq("10"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestClosureUseCase_GetListYPDF(t *testing.T) {
	st := newStore()
	r := &fakeRenderer{}
	uc := newClosureUseCase(st, r)
	ctx := context.Background()

	created, err := uc.Create(ctx, superClaim, closureReq("10", dto.DenominationDTO{Value: dec("10"), Count: 1}))
	require.NoError(t, err)

	other := closureReq("20", dto.DenominationDTO{Value: dec("20"), Count: 1})
	other.PositionID = "caja"
	other.Date = "2026-03-01"
	_, err = uc.Create(ctx, adminClaim, other)
	require.NoError(t, err)

	got, err := uc.Get(ctx, superClaim, created.ID)
	require.NoError(t, err)
	assert.Len(t, got.Denominations, 1)

	_, err = uc.Get(ctx, employeeClaim, created.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.Get(ctx, adminClaim, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	visible, err := uc.List(ctx, superClaim, dto.ClosureQuery{})
	require.NoError(t, err)
	assert.Len(t, visible, 1)

	all, err := uc.List(ctx, adminClaim, dto.ClosureQuery{StartDate: "2026-03-05", EndDate: "2026-03-10"})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, created.ID, all[0].ID)

	pdf, err := uc.PDF(ctx, superClaim, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-fake", string(pdf))
	assert.Equal(t, "Tienda", r.position)
	assert.Equal(t, "Sara", r.user)
}
