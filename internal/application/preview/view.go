package preview

// View es la vista previa imprimible ya formateada; la capa de presentación
// (PDF, JSON) la pinta tal cual sin cálculos propios.
type View struct {
	InvoiceNumber string    `json:"invoiceNumber"`
	Date          string    `json:"date"`
	From          PartyView `json:"from"`
	BillTo        PartyView `json:"billTo"`
	Rows          []RowView `json:"rows"`
	Subtotal      string    `json:"subtotal"`
	TaxPercent    string    `json:"taxPercent"`
	TaxAmount     string    `json:"taxAmount"`
	ShowTax       bool      `json:"showTax"` // solo si tax > 0
	Total         string    `json:"total"`
	Notes         string    `json:"notes,omitempty"`
	ShowNotes     bool      `json:"showNotes"`
}

// PartyView bloque de contacto con los textos de relleno ya aplicados.
type PartyView struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// RowView una fila de la tabla; Number es la posición (1..n).
type RowView struct {
	Number      int    `json:"number"`
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	Price       string `json:"price"`
	Amount      string `json:"amount"`
}
