// Package draft contiene las reglas de dominio del borrador de factura:
// valores derivados (subtotal, impuesto, total), coerción numérica y validación
// de invariantes. No tiene dependencias de infraestructura.
package draft

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/invoice-draft/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// Totals agrupa los valores derivados de un borrador.
type Totals struct {
	Subtotal  decimal.Decimal
	TaxAmount decimal.Decimal
	Total     decimal.Decimal
}

// LineAmount = Quantity * Price.
func LineAmount(it entity.LineItem) decimal.Decimal {
	return decimal.NewFromFloat(it.Quantity).Mul(decimal.NewFromFloat(it.Price))
}

// Subtotal suma Quantity * Price de todas las líneas.
func Subtotal(d entity.InvoiceDraft) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range d.Items {
		sum = sum.Add(LineAmount(it))
	}
	return sum
}

// TaxAmount = Subtotal * Tax / 100.
func TaxAmount(d entity.InvoiceDraft) decimal.Decimal {
	return Subtotal(d).Mul(decimal.NewFromFloat(d.Tax)).Div(hundred)
}

// Total = Subtotal + TaxAmount.
func Total(d entity.InvoiceDraft) decimal.Decimal {
	return Subtotal(d).Add(TaxAmount(d))
}

// Compute calcula los tres valores en una sola pasada sobre las líneas.
func Compute(d entity.InvoiceDraft) Totals {
	sub := Subtotal(d)
	tax := sub.Mul(decimal.NewFromFloat(d.Tax)).Div(hundred)
	return Totals{Subtotal: sub, TaxAmount: tax, Total: sub.Add(tax)}
}
