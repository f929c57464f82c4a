package entity

// Party agrupa los datos de contacto de un bloque del borrador (emisor o cliente).
type Party struct {
	Name    string
	Address string
	Phone   string
}

// IsEmpty indica si ninguno de los campos tiene contenido.
func (p Party) IsEmpty() bool {
	return p.Name == "" && p.Address == "" && p.Phone == ""
}

// Company devuelve el bloque "From" (empresa que factura).
func (d InvoiceDraft) Company() Party {
	return Party{Name: d.CompanyName, Address: d.CompanyAddress, Phone: d.CompanyPhone}
}

// Customer devuelve el bloque "Bill To".
func (d InvoiceDraft) Customer() Party {
	return Party{Name: d.CustomerName, Address: d.CustomerAddress, Phone: d.CustomerPhone}
}
