// Reporte de inventario en PDF (Maroto v2).
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título + fecha de generación                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: ítems / unidades / bajo stock / valuación          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: top ítems por valor                                  │
//	│  TABLA: ítems bajo mínimo                                    │
//	└─────────────────────────────────────────────────────────────┘
package export

import (
	"fmt"
	"time"

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

	"github.com/tu-usuario/stock-control/internal/domain/entity"
	"github.com/tu-usuario/stock-control/internal/domain/repository"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	pdfPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	pdfGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// InventoryReport agrupa los datos que el PDF renderiza.
type InventoryReport struct {
	GeneratedAt time.Time
	Summary     *repository.DashboardSummary
	TopItems    []repository.ItemValueRow
	LowStock    []*entity.Item
}

// InventoryPDF genera el PDF del reporte de inventario y devuelve sus bytes.
func InventoryPDF(report InventoryReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Inventario", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report.GeneratedAt))
	m.AddRows(line.NewRow(2, props.Line{Color: pdfPrimary, Thickness: 0.5}))
	if report.Summary != nil {
		m.AddRows(summaryRow(report.Summary))
		m.AddRows(line.NewRow(2, props.Line{Color: pdfGray, Thickness: 0.3}))
	}
	m.AddRows(sectionTitle("Top ítems por valor en stock"))
	m.AddRows(topItemsHeader())
	for _, it := range report.TopItems {
		m.AddRows(topItemRow(it))
	}
	m.AddRows(sectionTitle("Ítems bajo el mínimo"))
	m.AddRows(lowStockHeader())
	for _, it := range report.LowStock {
		m.AddRows(lowStockRow(it))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generar PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(generatedAt time.Time) core.Row {
	return row.New(12).Add(
		text.NewCol(8, "Reporte de Inventario", props.Text{
			Size: 16, Style: fontstyle.Bold, Color: pdfPrimary,
		}),
		text.NewCol(4, generatedAt.Format("2006-01-02 15:04"), props.Text{
			Size: 9, Align: align.Right, Color: pdfGray, Top: 4,
		}),
	)
}

func summaryRow(s *repository.DashboardSummary) core.Row {
	return row.New(10).Add(
		summaryCol("Ítems", fmt.Sprintf("%d", s.TotalItems)),
		summaryCol("Unidades", fmt.Sprintf("%d", s.TotalQuantity)),
		summaryCol("Bajo stock", fmt.Sprintf("%d", s.LowStockCount)),
		summaryCol("Agotados", fmt.Sprintf("%d", s.OutOfStock)),
		summaryCol("Valuación", s.TotalValuation.StringFixed(2)),
	)
}

func summaryCol(label, value string) core.Col {
	c := col.New(2)
	c.Add(
		text.New(label, props.Text{Size: 7, Color: pdfGray}),
		text.New(value, props.Text{Size: 11, Style: fontstyle.Bold, Top: 4}),
	)
	return c
}

func sectionTitle(title string) core.Row {
	return row.New(9).Add(
		text.NewCol(12, title, props.Text{
			Size: 11, Style: fontstyle.Bold, Color: pdfPrimary, Top: 2,
		}),
	)
}

func topItemsHeader() core.Row {
	return row.New(6).Add(
		text.NewCol(5, "Ítem", boldCell()),
		text.NewCol(2, "Barcode", boldCell()),
		text.NewCol(1, "Cant", boldCellRight()),
		text.NewCol(2, "P.Unit", boldCellRight()),
		text.NewCol(2, "Valor", boldCellRight()),
	)
}

func topItemRow(it repository.ItemValueRow) core.Row {
	return row.New(5).Add(
		text.NewCol(5, it.Name, cell()),
		text.NewCol(2, it.Barcode, cell()),
		text.NewCol(1, fmt.Sprintf("%d", it.Quantity), cellRight()),
		text.NewCol(2, it.UnitPrice.StringFixed(2), cellRight()),
		text.NewCol(2, it.TotalValue.StringFixed(2), cellRight()),
	)
}

func lowStockHeader() core.Row {
	return row.New(6).Add(
		text.NewCol(6, "Ítem", boldCell()),
		text.NewCol(2, "Cant", boldCellRight()),
		text.NewCol(2, "Mínimo", boldCellRight()),
		text.NewCol(2, "Estado", boldCell()),
	)
}

func lowStockRow(it *entity.Item) core.Row {
	return row.New(5).Add(
		text.NewCol(6, it.Name, cell()),
		text.NewCol(2, fmt.Sprintf("%d", it.Quantity), cellRight()),
		text.NewCol(2, fmt.Sprintf("%d", it.MinQuantity), cellRight()),
		text.NewCol(2, it.Status, cell()),
	)
}

func cell() props.Text      { return props.Text{Size: 8} }
func cellRight() props.Text { return props.Text{Size: 8, Align: align.Right} }
func boldCell() props.Text  { return props.Text{Size: 8, Style: fontstyle.Bold} }
func boldCellRight() props.Text {
	return props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Right}
}
