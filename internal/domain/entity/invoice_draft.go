package entity

// SchemaVersion versión actual del formato persistido del borrador.
// 0 (campo ausente) corresponde al formato heredado sin versión.
const SchemaVersion = 1

// DraftField identifica un campo escalar de nivel superior del borrador.
type DraftField string

// Campos del borrador; los nombres coinciden con las claves JSON del snapshot.
const (
	FieldInvoiceNumber   DraftField = "invoiceNumber"
	FieldDate            DraftField = "date"
	FieldCompanyName     DraftField = "companyName"
	FieldCompanyAddress  DraftField = "companyAddress"
	FieldCompanyPhone    DraftField = "companyPhone"
	FieldCustomerName    DraftField = "customerName"
	FieldCustomerAddress DraftField = "customerAddress"
	FieldCustomerPhone   DraftField = "customerPhone"
	FieldItems           DraftField = "items"
	FieldTax             DraftField = "tax"
	FieldNotes           DraftField = "notes"
)

// TextFields campos de texto libre que admiten cualquier cadena sin validación.
var TextFields = []DraftField{
	FieldInvoiceNumber,
	FieldDate,
	FieldCompanyName,
	FieldCompanyAddress,
	FieldCompanyPhone,
	FieldCustomerName,
	FieldCustomerAddress,
	FieldCustomerPhone,
	FieldNotes,
}

// IsText indica si el campo es de texto libre.
func (f DraftField) IsText() bool {
	for _, tf := range TextFields {
		if tf == f {
			return true
		}
	}
	return false
}

// InvoiceDraft es el documento de factura en edición (uno por sesión).
// Las etiquetas JSON definen el formato del snapshot persistido.
type InvoiceDraft struct {
	SchemaVersion   int        `json:"schemaVersion,omitempty"`
	InvoiceNumber   string     `json:"invoiceNumber"`
	Date            string     `json:"date"` // YYYY-MM-DD al crearse; texto libre después
	CompanyName     string     `json:"companyName"`
	CompanyAddress  string     `json:"companyAddress"`
	CompanyPhone    string     `json:"companyPhone"`
	CustomerName    string     `json:"customerName"`
	CustomerAddress string     `json:"customerAddress"`
	CustomerPhone   string     `json:"customerPhone"`
	Items           []LineItem `json:"items"`
	Tax             float64    `json:"tax"` // porcentaje, 0-100 esperado (no se valida)
	Notes           string     `json:"notes"`
}

// Clone devuelve una copia profunda; el slice de items no se comparte.
func (d InvoiceDraft) Clone() InvoiceDraft {
	out := d
	if d.Items != nil {
		out.Items = make([]LineItem, len(d.Items))
		copy(out.Items, d.Items)
	}
	return out
}

// Text devuelve el valor de un campo de texto. ok=false si el campo no es de texto.
func (d InvoiceDraft) Text(field DraftField) (value string, ok bool) {
	switch field {
	case FieldInvoiceNumber:
		return d.InvoiceNumber, true
	case FieldDate:
		return d.Date, true
	case FieldCompanyName:
		return d.CompanyName, true
	case FieldCompanyAddress:
		return d.CompanyAddress, true
	case FieldCompanyPhone:
		return d.CompanyPhone, true
	case FieldCustomerName:
		return d.CustomerName, true
	case FieldCustomerAddress:
		return d.CustomerAddress, true
	case FieldCustomerPhone:
		return d.CustomerPhone, true
	case FieldNotes:
		return d.Notes, true
	}
	return "", false
}

// WithText devuelve una copia con el campo de texto reemplazado.
// ok=false (y el borrador sin cambios) si el campo no es de texto.
func (d InvoiceDraft) WithText(field DraftField, value string) (InvoiceDraft, bool) {
	out := d.Clone()
	switch field {
	case FieldInvoiceNumber:
		out.InvoiceNumber = value
	case FieldDate:
		out.Date = value
	case FieldCompanyName:
		out.CompanyName = value
	case FieldCompanyAddress:
		out.CompanyAddress = value
	case FieldCompanyPhone:
		out.CompanyPhone = value
	case FieldCustomerName:
		out.CustomerName = value
	case FieldCustomerAddress:
		out.CustomerAddress = value
	case FieldCustomerPhone:
		out.CustomerPhone = value
	case FieldNotes:
		out.Notes = value
	default:
		return d, false
	}
	return out, true
}

// IndexOf devuelve la posición del item con ese id, o -1.
func (d InvoiceDraft) IndexOf(id string) int {
	for i, it := range d.Items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// HasUniqueItemIDs verifica que ningún id de item se repita.
func (d InvoiceDraft) HasUniqueItemIDs() bool {
	seen := make(map[string]struct{}, len(d.Items))
	for _, it := range d.Items {
		if _, dup := seen[it.ID]; dup {
			return false
		}
		seen[it.ID] = struct{}{}
	}
	return true
}
