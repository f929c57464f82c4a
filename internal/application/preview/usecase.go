// Package preview construye la vista previa imprimible del borrador y delega
// la impresión en un Printer.
package preview

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	domaindraft "github.com/jhoicas/invoice-draft/internal/domain/draft"
	"github.com/jhoicas/invoice-draft/internal/domain/entity"
)

// Textos de relleno para bloques vacíos.
const (
	PlaceholderCompanyName     = "Your Company"
	PlaceholderCompanyAddress  = "Company Address"
	PlaceholderPhone           = "Phone Number"
	PlaceholderCustomerName    = "Customer Name"
	PlaceholderCustomerAddress = "Customer Address"
	PlaceholderDescription     = "-"
)

// Config formato de la vista previa.
type Config struct {
	Locale         string // BCP 47; default en-US
	CurrencySymbol string // default "$"
}

// UseCase arma la vista previa e invoca al Printer.
type UseCase struct {
	printer Printer
	tag     language.Tag
	printf  *message.Printer
	symbol  string
}

// NewUseCase construye el caso de uso. Un locale inválido cae a en-US.
func NewUseCase(printer Printer, cfg Config) *UseCase {
	tag, err := language.Parse(cfg.Locale)
	if err != nil || cfg.Locale == "" {
		tag = language.AmericanEnglish
	}
	symbol := cfg.CurrencySymbol
	if symbol == "" {
		symbol = "$"
	}
	return &UseCase{
		printer: printer,
		tag:     tag,
		printf:  message.NewPrinter(tag),
		symbol:  symbol,
	}
}

// Build convierte el borrador en la vista previa formateada.
func (uc *UseCase) Build(d entity.InvoiceDraft) View {
	totals := domaindraft.Compute(d)
	company, customer := d.Company(), d.Customer()

	rows := make([]RowView, 0, len(d.Items))
	for i, it := range d.Items {
		rows = append(rows, RowView{
			Number:      i + 1,
			Description: orDefault(it.Description, PlaceholderDescription),
			Quantity:    formatPlain(it.Quantity),
			Price:       uc.money(decimal.NewFromFloat(it.Price)),
			Amount:      uc.money(domaindraft.LineAmount(it)),
		})
	}

	return View{
		InvoiceNumber: d.InvoiceNumber,
		Date:          uc.dateLabel(d.Date),
		From: PartyView{
			Name:    orDefault(company.Name, PlaceholderCompanyName),
			Address: orDefault(company.Address, PlaceholderCompanyAddress),
			Phone:   orDefault(company.Phone, PlaceholderPhone),
		},
		BillTo: PartyView{
			Name:    orDefault(customer.Name, PlaceholderCustomerName),
			Address: orDefault(customer.Address, PlaceholderCustomerAddress),
			Phone:   orDefault(customer.Phone, PlaceholderPhone),
		},
		Rows:       rows,
		Subtotal:   uc.money(totals.Subtotal),
		TaxPercent: formatPlain(d.Tax),
		TaxAmount:  uc.money(totals.TaxAmount),
		ShowTax:    d.Tax > 0,
		Total:      uc.money(totals.Total),
		Notes:      d.Notes,
		ShowNotes:  d.Notes != "",
	}
}

// Print arma la vista previa y la renderiza. Devuelve el documento y un nombre de archivo sugerido.
func (uc *UseCase) Print(ctx context.Context, d entity.InvoiceDraft) (doc []byte, filename string, err error) {
	doc, err = uc.printer.Render(ctx, uc.Build(d))
	if err != nil {
		return nil, "", fmt.Errorf("preview: imprimir: %w", err)
	}
	return doc, Filename(d.InvoiceNumber), nil
}

var unsafeFilename = regexp.MustCompile(`[^A-Za-z0-9_.-]+`)

// Filename nombre de archivo seguro para el número de factura.
func Filename(invoiceNumber string) string {
	name := unsafeFilename.ReplaceAllString(invoiceNumber, "_")
	if name == "" || name == "_" {
		name = "draft"
	}
	return "invoice_" + name + ".pdf"
}

// money dos decimales con separadores del locale.
func (uc *UseCase) money(v decimal.Decimal) string {
	return uc.symbol + uc.printf.Sprintf("%.2f", v.Round(2).InexactFloat64())
}

// dateLabel muestra YYYY-MM-DD en formato corto del locale; texto no reconocido se muestra tal cual.
func (uc *UseCase) dateLabel(s string) string {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return s
	}
	if base, _ := uc.tag.Base(); base.String() == "en" {
		return t.Format("1/2/2006")
	}
	return t.Format("2/1/2006")
}

func formatPlain(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func orDefault(s, def string) string {
	if s != "" {
		return s
	}
	return def
}
