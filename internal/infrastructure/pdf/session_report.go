// Package pdf implementa el resumen imprimible de una sesión de conteo.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Taller + título  │  Sesión + Fechas                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: contados / pendientes / avance                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA CONTADOS: Categoría | Ítem | Stock | Hora conteo      │
//	│  TABLA PENDIENTES: Categoría | Ítem | Stock previo           │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

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

	"github.com/tojem/stock-taker-api/internal/application/stocktake"
	"github.com/tojem/stock-taker-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 170, Green: 40, Blue: 20}
)

var _ stocktake.SessionReportGenerator = (*MarotoSessionReport)(nil)

// MarotoSessionReport implementa stocktake.SessionReportGenerator usando Maroto v2.
type MarotoSessionReport struct{}

// NewMarotoSessionReport construye el generador.
func NewMarotoSessionReport() *MarotoSessionReport { return &MarotoSessionReport{} }

// Generate genera el PDF del resumen de sesión y devuelve sus bytes.
func (g *MarotoSessionReport) Generate(
	session entity.StockTakeSession,
	counted, remaining []entity.InventoryItem,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Resumen de Toma de Inventario", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(session))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(len(counted), len(remaining)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitleRow(fmt.Sprintf("ÍTEMS CONTADOS (%d)", len(counted)), colorPrimary))
	m.AddRows(countedHeaderRow())
	for _, r := range countedRows(counted) {
		m.AddRows(r)
	}

	if len(remaining) > 0 {
		m.AddRows(line.NewRow(3))
		m.AddRows(sectionTitleRow(fmt.Sprintf("ÍTEMS PENDIENTES (%d)", len(remaining)), colorAlert))
		m.AddRows(remainingHeaderRow())
		for _, r := range remainingRows(remaining) {
			m.AddRows(r)
		}
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título del taller (izq) y datos de la sesión (der).
func headerRow(session entity.StockTakeSession) core.Row {
	inicio := session.StartedAt.Format("02/01/2006 15:04")
	fin := "en curso"
	if session.CompletedAt != nil {
		fin = session.CompletedAt.Format("02/01/2006 15:04")
	}

	return row.New(18).Add(
		col.New(7).Add(
			text.New("TOJEM TALLER", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Resumen de toma de inventario", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Sesión "+session.ID, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 1,
			}),
			text.New("Inicio: "+inicio, props.Text{
				Size: 8, Align: align.Right, Top: 7, Color: colorGray,
			}),
			text.New("Fin: "+fin, props.Text{
				Size: 8, Align: align.Right, Top: 12, Color: colorGray,
			}),
			text.New("Operario: "+session.StartedBy, props.Text{
				Size: 8, Align: align.Right, Top: 17, Color: colorGray,
			}),
		),
	)
}

// summaryRow: contadores de avance de la sesión.
func summaryRow(counted, remaining int) core.Row {
	total := counted + remaining
	progress := 0.0
	if total > 0 {
		progress = float64(counted) / float64(total) * 100
	}

	cell := func(label, value string, c *props.Color) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{Size: 8, Align: align.Center, Top: 1, Color: colorGray}),
			text.New(value, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Center, Top: 6, Color: c,
			}),
		)
	}
	return row.New(14).Add(
		cell("Contados", fmt.Sprintf("%d de %d", counted, total), colorPrimary),
		cell("Pendientes", fmt.Sprintf("%d", remaining), colorAlert),
		cell("Avance", fmt.Sprintf("%.0f%%", progress), colorPrimary),
	)
}

func sectionTitleRow(title string, c *props.Color) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 9, Color: c, Top: 2}),
	))
}

func countedHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(7).Add(
		h("Categoría", 3, align.Left),
		h("Ítem", 5, align.Left),
		h("Stock", 2, align.Right),
		h("Hora conteo", 2, align.Right),
	)
}

// countedRows: una fila por ítem contado en la sesión.
func countedRows(items []entity.InventoryItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		hora := "—"
		if it.LastCountedAt != nil {
			hora = it.LastCountedAt.Format("15:04")
		}
		result = append(result, row.New(6).Add(
			col.New(3).Add(text.New(it.Category, props.Text{Size: 8, Top: 1, Left: 1, Color: colorGray})),
			col.New(5).Add(text.New(it.Name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(fmt.Sprintf("%d", it.CurrentStock), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
			col.New(2).Add(text.New(hora, props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1, Color: colorGray,
			})),
		))
	}
	return result
}

func remainingHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(7).Add(
		h("Categoría", 3, align.Left),
		h("Ítem", 6, align.Left),
		h("Stock previo", 3, align.Right),
	)
}

// remainingRows: una fila por ítem sin contar, con el stock previo como referencia.
func remainingRows(items []entity.InventoryItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(6).Add(
			col.New(3).Add(text.New(it.Category, props.Text{Size: 8, Top: 1, Left: 1, Color: colorGray})),
			col.New(6).Add(text.New(it.Name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(fmt.Sprintf("%d", it.CurrentStock), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
		))
	}
	return result
}
