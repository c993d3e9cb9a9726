// Package pdf genera el reporte PDF del inventario filtrado del dashboard.
//
// Layout de la página A4 (apaisada):
//
//	┌──────────────────────────────────────────────────────────────┐
//	│  HEADER: Impilo Stock Management  │  Fecha + filtros         │
//	│  ──────────────────────────────────────────────────────────  │
//	│  RESUMEN: ítems | críticos | advertencia | valor total        │
//	│  ──────────────────────────────────────────────────────────  │
//	│  TABLA: ID | Ítem | Categoría | Cant. | Vence | Centro | Est. │
//	│  ──────────────────────────────────────────────────────────  │
//	│  FOOTER: QR al dashboard + leyenda                            │
//	└──────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/impilo-stock/internal/application/dashboard"
	"github.com/jhoicas/impilo-stock/internal/domain/entity"
	"github.com/jhoicas/impilo-stock/pkg/format"
)

var _ dashboard.ReportGenerator = (*MarotoReportGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary  = &props.Color{Red: 15, Green: 82, Blue: 70}
	colorGray     = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorCritical = &props.Color{Red: 200, Green: 40, Blue: 40}
	colorWarning  = &props.Color{Red: 200, Green: 120, Blue: 0}
	colorNormal   = &props.Color{Red: 30, Green: 130, Blue: 60}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa dashboard.ReportGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateInventoryPDF genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateInventoryPDF(_ context.Context, r dashboard.InventoryReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle("Impilo inventory report", true).
		WithAuthor("Impilo Stock Management", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(r.Items)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRows(r)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(r dashboard.InventoryReport) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New("Impilo Stock Management", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Inventory report", props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("Generated "+r.GeneratedAt.Format("02 Jan 2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New(filtersLabel(r.Filters), props.Text{
				Size: 8, Align: align.Right, Top: 8,
			}),
		),
	)
}

func summaryRow(r dashboard.InventoryReport) core.Row {
	cell := func(label, value string, c *props.Color) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Top: 1, Align: align.Center}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 11, Color: c, Top: 5, Align: align.Center}),
		)
	}
	return row.New(14).Add(
		cell("Items", format.Int(r.Summary.Total), colorPrimary),
		cell("Critical", format.Int(r.Summary.Critical), colorCritical),
		cell("Warning", format.Int(r.Summary.Warning), colorWarning),
		cell("Stock value", format.Money(r.Summary.Value), colorPrimary),
	)
}

type column struct {
	label string
	size  int
	align align.Type
}

var columns = []column{
	{"ID", 1, align.Left},
	{"Item", 3, align.Left},
	{"Category", 1, align.Left},
	{"Quantity", 1, align.Right},
	{"Expiry", 1, align.Center},
	{"Location", 3, align.Left},
	{"Province", 1, align.Left},
	{"Status", 1, align.Center},
}

func tableHeaderRow() core.Row {
	cols := make([]core.Col, 0, len(columns))
	for _, c := range columns {
		cols = append(cols, col.New(c.size).Add(text.New(c.label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: c.align, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).Add(cols...)
}

func tableRows(items []entity.InventoryItem) []core.Row {
	out := make([]core.Row, 0, len(items))
	for _, it := range items {
		expiry := "N/A"
		if it.ExpiryDate != nil {
			expiry = it.ExpiryDate.String()
		}
		status := it.Status()
		values := []string{
			it.ID, it.Name, it.Category.Label(), format.Quantity(it.Quantity, it.Unit),
			expiry, it.Location, it.Province, strings.ToUpper(string(status)),
		}
		cols := make([]core.Col, 0, len(columns))
		for i, c := range columns {
			p := props.Text{Size: 7.5, Align: c.align, Top: 1, Left: 1, Right: 1}
			if c.label == "Status" {
				p.Style = fontstyle.Bold
				p.Color = statusColor(status)
			}
			cols = append(cols, col.New(c.size).Add(text.New(values[i], p)))
		}
		out = append(out, row.New(6).Add(cols...))
	}
	if len(out) == 0 {
		out = append(out, row.New(10).Add(col.New(12).Add(
			text.New("No items match the selected filters.", props.Text{
				Size: 9, Align: align.Center, Color: colorGray, Top: 3,
			}),
		)))
	}
	return out
}

func footerRows(r dashboard.InventoryReport) []core.Row {
	legend := "Status: CRITICAL at or below minimum level, WARNING at or below reorder level."
	if r.DashboardURL == "" {
		return []core.Row{row.New(8).Add(col.New(12).Add(
			text.New(legend, props.Text{Size: 6.5, Color: colorGray, Top: 2}),
		))}
	}
	return []core.Row{row.New(30).Add(
		col.New(2).Add(code.NewQr(r.DashboardURL, props.Rect{Percent: 90, Center: true})),
		col.New(10).Add(
			text.New("Scan to open the live inventory dashboard.", props.Text{Size: 8, Top: 4, Left: 3, Color: colorGray}),
			text.New(r.DashboardURL, props.Text{Size: 7, Top: 10, Left: 3, Color: colorPrimary}),
			text.New(legend, props.Text{Size: 6.5, Top: 18, Left: 3, Color: colorGray}),
		),
	)}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func statusColor(s entity.StockStatus) *props.Color {
	switch s {
	case entity.StatusCritical:
		return colorCritical
	case entity.StatusWarning:
		return colorWarning
	}
	return colorNormal
}

func filtersLabel(f dashboard.InventoryFilter) string {
	var parts []string
	if f.Category != "" {
		parts = append(parts, "category="+string(f.Category))
	}
	if f.Status != "" {
		parts = append(parts, "status="+string(f.Status))
	}
	if f.Province != "" {
		parts = append(parts, "province="+f.Province)
	}
	if f.Search != "" {
		parts = append(parts, fmt.Sprintf("search=%q", f.Search))
	}
	if len(parts) == 0 {
		return "All items"
	}
	return strings.Join(parts, "  ·  ")
}
