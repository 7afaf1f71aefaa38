// Package pdf genera el reporte PDF del inventario de la bodega.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título                    │  Fecha de generación    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Vino | Productor | Añada | Tipo | País | Cant | ... │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Botellas / Valor estimado                         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
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

	"github.com/jhoicas/vin/internal/application/dto"
	"github.com/jhoicas/vin/internal/application/ports"
)

var _ ports.CollectionReportGenerator = (*MarotoReportGenerator)(nil)

// Fallback para valores nulos.
const missing = "—"

// ── Paleta de colores ──

var (
	colorPrimary = &props.Color{Red: 114, Green: 27, Blue: 48}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoReportGenerator implementa CollectionReportGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateCollectionReport genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateCollectionReport(_ context.Context, report dto.CollectionReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle(report.Title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	if len(report.Wines) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("No wines match the selected filters.", props.Text{Size: 9, Align: align.Center, Top: 2, Color: colorGray}),
		)))
	}
	for _, r := range tableRows(report.Wines) {
		m.AddRows(r)
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(report))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ──

func headerRow(report dto.CollectionReport) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(report.Title, props.Text{Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1}),
		),
		col.New(4).Add(
			text.New("Generated "+report.GeneratedAt.Format("2006-01-02 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 4, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Wine", 3, align.Left),
		h("Producer", 2, align.Left),
		h("Vintage", 1, align.Center),
		h("Type", 1, align.Left),
		h("Country", 1, align.Left),
		h("Qty", 1, align.Center),
		h("Price", 1, align.Right),
		h("Window", 2, align.Center),
	)
}

func tableRows(wines []dto.WineResponse) []core.Row {
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	out := make([]core.Row, 0, len(wines))
	for _, w := range wines {
		out = append(out, row.New(7).Add(
			cell(w.Name, 3, align.Left),
			cell(orMissing(w.Producer), 2, align.Left),
			cell(intOrMissing(w.Vintage), 1, align.Center),
			cell(orMissing(w.Type), 1, align.Left),
			cell(orMissing(w.Country), 1, align.Left),
			cell(intOrMissing(w.Quantity), 1, align.Center),
			cell(priceOrMissing(w.PurchasePrice), 1, align.Right),
			cell(window(w), 2, align.Center),
		))
	}
	return out
}

func totalsRow(report dto.CollectionReport) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	return row.New(14).Add(
		col.New(6),
		col.New(3).Add(
			label("Wines: "),
			text.New("Bottles: ", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 4}),
			text.New("Estimated value: ", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 8}),
		),
		col.New(3).Add(
			value(strconv.Itoa(len(report.Wines)), 0),
			value(strconv.Itoa(report.TotalBottles), 4),
			value("$"+formatMoney(EstimatedValue(report.Wines)), 8),
		),
	)
}

// ── helpers ──

// EstimatedValue suma precio de compra × cantidad de los vinos con ambos datos.
func EstimatedValue(wines []dto.WineResponse) decimal.Decimal {
	total := decimal.Zero
	for _, w := range wines {
		if w.PurchasePrice != nil && w.Quantity != nil {
			total = total.Add(w.PurchasePrice.Mul(decimal.NewFromInt(int64(*w.Quantity))))
		}
	}
	return total
}

func orMissing(s *string) string {
	if s == nil || *s == "" {
		return missing
	}
	return *s
}

func intOrMissing(n *int) string {
	if n == nil {
		return missing
	}
	return strconv.Itoa(*n)
}

func priceOrMissing(d *decimal.Decimal) string {
	if d == nil {
		return missing
	}
	return "$" + formatMoney(*d)
}

func window(w dto.WineResponse) string {
	if w.DrinkAfterDate == nil && w.DrinkBeforeDate == nil {
		return missing
	}
	after, before := missing, missing
	if w.DrinkAfterDate != nil {
		after = w.DrinkAfterDate.String()
	}
	if w.DrinkBeforeDate != nil {
		before = w.DrinkBeforeDate.String()
	}
	return after + " to " + before
}

// formatMoney formatea con 2 decimales y comas de miles.
// Ej: 1234567.5 → "1,234,567.50"
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, frac, _ := strings.Cut(s, ".")
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	out := string(buf) + "." + frac
	if neg {
		out = "-" + out
	}
	return out
}
