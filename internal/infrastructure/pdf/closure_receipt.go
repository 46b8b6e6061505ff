// Package pdf genera el justificante del cierre de caja.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Cierre de caja + puesto │ Fecha + turno            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESPONSABLE / CLASIFICACIÓN                                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Valor | Cantidad | Subtotal                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Contado / Esperado / Descuadre                     │
//	│  NOTAS + QR con el id del cierre                             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Turnos-api/internal/application/usecase"
	"github.com/jhoicas/Turnos-api/internal/domain/entity"
)

var _ usecase.ClosureRenderer = (*ClosureReceipt)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWarn    = &props.Color{Red: 191, Green: 120, Blue: 0}
	colorDanger  = &props.Color{Red: 176, Green: 0, Blue: 32}
)

var shiftLabels = map[entity.Shift]string{
	entity.ShiftMorning:   "Mañana",
	entity.ShiftAfternoon: "Tarde",
	entity.ShiftNight:     "Noche",
}

// ClosureReceipt genera el PDF del cierre con Maroto v2.
type ClosureReceipt struct {
	author string
}

// NewClosureReceipt construye el generador. author aparece en los metadatos del PDF.
func NewClosureReceipt(author string) *ClosureReceipt { return &ClosureReceipt{author: author} }

// RenderClosure genera el PDF y devuelve sus bytes.
func (g *ClosureReceipt) RenderClosure(c *entity.Closure, positionName, userName string, loc *time.Location) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).WithRightMargin(15).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Cierre de caja", true).
		WithAuthor(g.author, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(c, positionName))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(responsibleRow(c, userName, loc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range denominationRows(c.Denominations) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(c))
	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(c))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(c *entity.Closure, positionName string) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New("CIERRE DE CAJA", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Puesto: "+positionName, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New(c.Date.Format("02/01/2006"), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 1,
			}),
			text.New("Turno: "+shiftLabel(c.Shift), props.Text{
				Size: 9, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func responsibleRow(c *entity.Closure, userName string, loc *time.Location) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New("RESPONSABLE", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(userName, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
		),
		col.New(4).Add(
			text.New(strings.ToUpper(c.Classification), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: classificationColor(c.Classification), Top: 1,
			}),
			text.New("Registrado "+c.CreatedAt.In(loc).Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 7, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2,
		}))
	}
	return row.New(8).Add(
		h("Valor", 4, align.Left),
		h("Cantidad", 4, align.Center),
		h("Subtotal", 4, align.Right),
	)
}

func denominationRows(ds []entity.Denomination) []core.Row {
	result := make([]core.Row, 0, len(ds))
	for _, d := range ds {
		if d.Count == 0 {
			continue
		}
		subtotal := d.Value.Mul(decimal.NewFromInt(int64(d.Count)))
		result = append(result, row.New(6).Add(
			col.New(4).Add(text.New(formatMoney(d.Value), props.Text{Size: 8, Top: 1})),
			col.New(4).Add(text.New(fmt.Sprintf("%d", d.Count), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(4).Add(text.New(formatMoney(subtotal), props.Text{Size: 8, Align: align.Right, Top: 1})),
		))
	}
	return result
}

func totalsRow(c *entity.Closure) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string, color *props.Color) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Color: color})
	}
	return row.New(16).Add(
		col.New(6),
		col.New(3).Add(
			label("Contado:"),
			label("Esperado:"),
			label("Descuadre:"),
		),
		col.New(3).Add(
			value(formatMoney(c.CountedTotal), nil),
			value(formatMoney(c.ExpectedTotal), nil),
			value(formatMoney(c.Difference), classificationColor(c.Classification)),
		),
	)
}

func footerRow(c *entity.Closure) core.Row {
	notes := c.Notes
	if notes == "" {
		notes = "Sin observaciones."
	}
	return row.New(35).Add(
		col.New(9).Add(
			text.New("NOTAS", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(notes, props.Text{Size: 8, Top: 6, Color: colorGray}),
		),
		col.New(3).Add(code.NewQr(c.ID, props.Rect{Percent: 90, Center: true})),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func shiftLabel(s entity.Shift) string {
	if l, ok := shiftLabels[s]; ok {
		return l
	}
	return string(s)
}

func classificationColor(c string) *props.Color {
	switch c {
	case entity.ClosureAdvertencia:
		return colorWarn
	case entity.ClosureCritico:
		return colorDanger
	}
	return colorPrimary
}

// formatMoney formato español con dos decimales: 1234.5 → "1.234,50 €".
func formatMoney(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, ch := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, ch)
	}
	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	return sign + string(buf) + "," + frac + " €"
}
