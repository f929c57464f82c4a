package preview_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invoice-draft/internal/application/preview"
	"github.com/jhoicas/invoice-draft/internal/domain/entity"
)

type fakePrinter struct {
	got  preview.View
	err  error
	doc  []byte
	hits int
}

func (p *fakePrinter) Render(_ context.Context, v preview.View) ([]byte, error) {
	p.hits++
	p.got = v
	return p.doc, p.err
}

func sampleDraft() entity.InvoiceDraft {
	return entity.InvoiceDraft{
		InvoiceNumber: "INV-1710498600000",
		Date:          "2024-03-15",
		CompanyName:   "ACME",
		Items: []entity.LineItem{
			{ID: "1", Description: "Horas", Quantity: 2, Price: 10},
			{ID: "2", Description: "Licencia", Quantity: 1, Price: 5},
		},
		Tax: 10,
	}
}

func TestBuild_EjemploDeReferencia(t *testing.T) {
	uc := preview.NewUseCase(&fakePrinter{}, preview.Config{})
	v := uc.Build(sampleDraft())

	assert.Equal(t, "INV-1710498600000", v.InvoiceNumber)
	assert.Equal(t, "3/15/2024", v.Date)
	require.Len(t, v.Rows, 2)
	assert.Equal(t, preview.RowView{Number: 1, Description: "Horas", Quantity: "2", Price: "$10.00", Amount: "$20.00"}, v.Rows[0])
	assert.Equal(t, 2, v.Rows[1].Number)
	assert.Equal(t, "$25.00", v.Subtotal)
	assert.True(t, v.ShowTax)
	assert.Equal(t, "10", v.TaxPercent)
	assert.Equal(t, "$2.50", v.TaxAmount)
	assert.Equal(t, "$27.50", v.Total)
	assert.False(t, v.ShowNotes)
}

func TestBuild_TextosDeRelleno(t *testing.T) {
	uc := preview.NewUseCase(&fakePrinter{}, preview.Config{})
	d := sampleDraft()
	d.CompanyName = ""
	d.CustomerAddress = "Calle 1"

	v := uc.Build(d)
	assert.Equal(t, preview.PartyView{
		Name:    preview.PlaceholderCompanyName,
		Address: preview.PlaceholderCompanyAddress,
		Phone:   preview.PlaceholderPhone,
	}, v.From)
	assert.Equal(t, preview.PlaceholderCustomerName, v.BillTo.Name)
	assert.Equal(t, "Calle 1", v.BillTo.Address)
}

func TestBuild_LineaSinDescripcionMuestraGuion(t *testing.T) {
	uc := preview.NewUseCase(&fakePrinter{}, preview.Config{})
	d := sampleDraft()
	d.Items[1].Description = ""

	v := uc.Build(d)
	assert.Equal(t, "-", v.Rows[1].Description)
	assert.Equal(t, "Horas", v.Rows[0].Description)
	assert.Equal(t, "", d.Items[1].Description, "el borrador no cambia")
}

func TestBuild_SinImpuestoYConNotas(t *testing.T) {
	uc := preview.NewUseCase(&fakePrinter{}, preview.Config{})
	d := sampleDraft()
	d.Tax = 0
	d.Notes = "Pago a 30 días"

	v := uc.Build(d)
	assert.False(t, v.ShowTax)
	assert.Equal(t, v.Subtotal, v.Total)
	assert.True(t, v.ShowNotes)
	assert.Equal(t, "Pago a 30 días", v.Notes)
}

func TestBuild_LocaleYFechaLibre(t *testing.T) {
	uc := preview.NewUseCase(&fakePrinter{}, preview.Config{Locale: "en-US", CurrencySymbol: "€"})
	d := sampleDraft()
	d.Items[0].Price = 1234.5
	d.Date = "mañana"

	v := uc.Build(d)
	assert.Equal(t, "€1,234.50", v.Rows[0].Price)
	assert.Equal(t, "mañana", v.Date)

	es := preview.NewUseCase(&fakePrinter{}, preview.Config{Locale: "es-CO"})
	assert.Equal(t, "15/3/2024", es.Build(sampleDraft()).Date)
}

func TestPrint_DelegaEnPrinter(t *testing.T) {
	p := &fakePrinter{doc: []byte("%PDF-1.3")}
	uc := preview.NewUseCase(p, preview.Config{})

	doc, name, err := uc.Print(context.Background(), sampleDraft())
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.3"), doc)
	assert.Equal(t, "invoice_INV-1710498600000.pdf", name)
	assert.Equal(t, 1, p.hits)
	assert.Equal(t, "$27.50", p.got.Total)

	p.err = errors.New("sin fuentes")
	_, _, err = uc.Print(context.Background(), sampleDraft())
	assert.Error(t, err)
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "invoice_A_B.pdf", preview.Filename("A/B"))
	assert.Equal(t, "invoice_draft.pdf", preview.Filename(""))
}
