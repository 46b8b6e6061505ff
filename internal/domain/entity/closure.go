package entity

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Clasificación del descuadre de caja.
const (
	ClosureNormal      = "normal"
	ClosureAdvertencia = "advertencia"
	ClosureCritico     = "critico"
)

// Denomination billete o moneda contada en el cierre.
type Denomination struct {
	Value decimal.Decimal
	Count int
}

// Closure cierre de caja de un puesto y turno.
type Closure struct {
	ID             string
	UserID         string
	PositionID     string
	Shift          Shift
	Date           time.Time
	Denominations  []Denomination
	CountedTotal   decimal.Decimal
	ExpectedTotal  decimal.Decimal
	Difference     decimal.Decimal
	Classification string
	Notes          string
	CreatedAt      time.Time
}

// CountDenominations suma valor × cantidad.
func CountDenominations(ds []Denomination) decimal.Decimal {
	total := decimal.Zero
	for _, d := range ds {
		total = total.Add(d.Value.Mul(decimal.NewFromInt(int64(d.Count))))
	}
	return total
}

// SortDenominations ordena de mayor a menor valor.
func SortDenominations(ds []Denomination) {
	sort.SliceStable(ds, func(i, j int) bool { return ds[i].Value.GreaterThan(ds[j].Value) })
}

// ClassifyDifference clasifica el descuadre respecto al esperado:
// |dif|/esperado ≤ 1% normal, ≤ 5% advertencia, resto crítico.
// Con esperado 0 solo un descuadre 0 es normal.
func ClassifyDifference(difference, expected decimal.Decimal) string {
	if expected.IsZero() {
		if difference.IsZero() {
			return ClosureNormal
		}
		return ClosureCritico
	}
	pct := difference.Div(expected.Abs()).Mul(decimal.NewFromInt(100)).Abs()
	switch {
	case pct.LessThanOrEqual(decimal.NewFromInt(1)):
		return ClosureNormal
	case pct.LessThanOrEqual(decimal.NewFromInt(5)):
		return ClosureAdvertencia
	default:
		return ClosureCritico
	}
}

// Reconcile calcula contado, diferencia y clasificación.
func (c *Closure) Reconcile() {
	c.CountedTotal = CountDenominations(c.Denominations)
	c.Difference = c.CountedTotal.Sub(c.ExpectedTotal)
	c.Classification = ClassifyDifference(c.Difference, c.ExpectedTotal)
}

// ClosureFilter filtros de listado de cierres.
type ClosureFilter struct {
	PositionID  string
	PositionIDs []string // restringe a estos puestos si no es nil
	StartDate   *time.Time
	EndDate     *time.Time
}
