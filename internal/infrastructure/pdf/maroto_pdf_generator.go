// Package pdf implementa el colaborador de impresión: pinta la vista previa del
// borrador como PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: INVOICE                 │  #Número + Fecha          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FROM: empresa          │  BILL TO: cliente                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: # | Descripción | Cant. | Precio | Importe           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / Tax (si > 0) / Total                    │
//	│  NOTAS (si hay)                                              │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
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

	"github.com/jhoicas/invoice-draft/internal/application/preview"
)

var _ preview.Printer = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 102, Green: 126, Blue: 234}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa preview.Printer usando Maroto v2.
type MarotoPDFGenerator struct {
	title string
}

// NewMarotoPDFGenerator construye el generador; title va a los metadatos del PDF.
func NewMarotoPDFGenerator(title string) *MarotoPDFGenerator {
	if title == "" {
		title = "Invoice"
	}
	return &MarotoPDFGenerator{title: title}
}

// Render genera el PDF de la vista previa y devuelve sus bytes.
func (g *MarotoPDFGenerator) Render(ctx context.Context, v preview.View) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(g.title+" "+v.InvoiceNumber, true).
		WithAuthor(v.From.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(v))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partiesRow(v.From, v.BillTo))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(v.Rows)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRows(v)...)

	if v.ShowNotes {
		m.AddRows(line.NewRow(3))
		m.AddRows(notesRows(v.Notes)...)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y número + fecha (der).
func headerRow(v preview.View) core.Row {
	return row.New(18).Add(
		col.New(6).Add(
			text.New("INVOICE", props.Text{
				Style: fontstyle.Bold, Size: 18, Color: colorPrimary, Top: 2,
			}),
		),
		col.New(6).Add(
			text.New("#"+v.InvoiceNumber, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 3,
			}),
			text.New("Date: "+v.Date, props.Text{
				Size: 8, Align: align.Right, Top: 10, Color: colorGray,
			}),
		),
	)
}

// partiesRow: bloque From (izq) y Bill To (der).
func partiesRow(from, billTo preview.PartyView) core.Row {
	block := func(title string, p preview.PartyView, a align.Type) []core.Component {
		return []core.Component{
			text.New(title, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1, Align: a}),
			text.New(p.Name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6, Align: a}),
			text.New(p.Address, props.Text{Size: 8, Top: 12, Color: colorGray, Align: a}),
			text.New(p.Phone, props.Text{Size: 8, Top: 16, Color: colorGray, Align: a}),
		}
	}
	return row.New(22).Add(
		col.New(6).Add(block("FROM", from, align.Left)...),
		col.New(6).Add(block("BILL TO", billTo, align.Right)...),
	)
}

// tableHeaderRow: cabecera de la tabla con fondo del color primario.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("#", 1, align.Center),
		h("Description", 5, align.Left),
		h("Qty", 2, align.Center),
		h("Price", 2, align.Right),
		h("Amount", 2, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableRows: una fila por línea del borrador.
func tableRows(rows []preview.RowView) []core.Row {
	result := make([]core.Row, 0, len(rows))
	for _, r := range rows {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(fmt.Sprint(r.Number), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(5).Add(text.New(r.Description, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New(r.Quantity, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(r.Price, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(r.Amount, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

// totalsRows: subtotal, impuesto (solo si tax > 0) y total, alineados a la derecha.
func totalsRows(v preview.View) []core.Row {
	line := func(label, value string, grand bool) core.Row {
		p := props.Text{Size: 9, Align: align.Right, Right: 1, Top: 1}
		if grand {
			p.Style = fontstyle.Bold
			p.Size = 11
			p.Color = colorPrimary
		}
		lp := p
		lp.Style = fontstyle.Bold
		lp.Right = 2
		return row.New(7).Add(
			col.New(6),
			col.New(3).Add(text.New(label, lp)),
			col.New(3).Add(text.New(value, p)),
		)
	}
	rows := []core.Row{line("Subtotal:", v.Subtotal, false)}
	if v.ShowTax {
		rows = append(rows, line(fmt.Sprintf("Tax (%s%%):", v.TaxPercent), v.TaxAmount, false))
	}
	return append(rows, line("Total:", v.Total, true))
}

// notesRows: bloque de notas.
func notesRows(notes string) []core.Row {
	return []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("Notes", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
		)),
		row.New(12).Add(col.New(12).Add(
			text.New(notes, props.Text{Size: 8, Color: colorGray, Top: 1}),
		)),
	}
}
