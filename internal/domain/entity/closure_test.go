package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Turnos-api/internal/domain/entity"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCountDenominations(t *testing.T) {
	ds := []entity.Denomination{
		{Value: d("50"), Count: 2},
		{Value: d("0.20"), Count: 7},
		{Value: d("5"), Count: 0},
	}
	assert.True(t, d("101.40").Equal(entity.CountDenominations(ds)))
}

func TestClassifyDifference(t *testing.T) {
	cases := []struct {
		dif, esperado, want string
	}{
		{"0", "1000", entity.ClosureNormal},
		{"-10", "1000", entity.ClosureNormal},
		{"10.01", "1000", entity.ClosureAdvertencia},
		{"-50", "1000", entity.ClosureAdvertencia},
		{"50.01", "1000", entity.ClosureCritico},
		{"0", "0", entity.ClosureNormal},
		{"0.01", "0", entity.ClosureCritico},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, entity.ClassifyDifference(d(tc.dif), d(tc.esperado)), "dif=%s esperado=%s", tc.dif, tc.esperado)
	}
}

func TestClosureReconcile(t *testing.T) {
	c := &entity.Closure{
		ExpectedTotal: d("200"),
		Denominations: []entity.Denomination{{Value: d("20"), Count: 9}, {Value: d("1"), Count: 5}},
	}
	c.Reconcile()

	assert.True(t, d("185").Equal(c.CountedTotal))
	assert.True(t, d("-15").Equal(c.Difference))
	assert.Equal(t, entity.ClosureCritico, c.Classification)
}

func TestSortDenominations(t *testing.T) {
	ds := []entity.Denomination{{Value: d("1")}, {Value: d("50")}, {Value: d("0.5")}}
	entity.SortDenominations(ds)
	assert.True(t, d("50").Equal(ds[0].Value))
	assert.True(t, d("0.5").Equal(ds[2].Value))
}
