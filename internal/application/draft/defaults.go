package draft

import (
	"fmt"
	"time"

	"github.com/jhoicas/invoice-draft/internal/domain/entity"
)

// InvoiceNumberPrefix prefijo del número de factura generado.
const InvoiceNumberPrefix = "INV-"

// NewInvoiceNumber genera el número por defecto a partir de la hora (milisegundos Unix).
func NewInvoiceNumber(now time.Time) string {
	return fmt.Sprintf("%s%d", InvoiceNumberPrefix, now.UnixMilli())
}

// NewDefaultDraft construye un borrador nuevo: número y fecha (UTC) derivados de now,
// una sola línea vacía y el resto de campos en su valor por defecto.
func NewDefaultDraft(now time.Time, firstItemID string) entity.InvoiceDraft {
	return entity.InvoiceDraft{
		SchemaVersion: entity.SchemaVersion,
		InvoiceNumber: NewInvoiceNumber(now),
		Date:          now.UTC().Format(time.DateOnly),
		Items:         []entity.LineItem{entity.NewLineItem(firstItemID)},
	}
}
