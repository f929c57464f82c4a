package dto

import (
	domaindraft "github.com/jhoicas/invoice-draft/internal/domain/draft"
	"github.com/jhoicas/invoice-draft/internal/domain/entity"
)

// UpdateFieldRequest cuerpo de PUT /api/draft/fields/:field.
// Value es texto para los campos de texto y número para tax (un string se coerciona).
type UpdateFieldRequest struct {
	Value any `json:"value"`
}

// UpdateItemRequest cuerpo de PUT /api/draft/items/:id/:field. El valor llega como
// texto crudo; quantity y price se interpretan en el store.
type UpdateItemRequest struct {
	Value string `json:"value"`
}

// TotalsResponse totales derivados con precisión decimal completa.
type TotalsResponse struct {
	Subtotal  string `json:"subtotal"`
	TaxAmount string `json:"taxAmount"`
	Total     string `json:"total"`
}

// DraftResponse borrador vigente, sus totales y, si la escritura falló, la advertencia.
type DraftResponse struct {
	Draft   entity.InvoiceDraft `json:"draft"`
	Totals  TotalsResponse      `json:"totals"`
	Warning string              `json:"warning,omitempty"`
}

// DraftEvent evento enviado por el stream SSE.
type DraftEvent struct {
	Kind    string              `json:"kind"`
	Draft   entity.InvoiceDraft `json:"draft"`
	Totals  TotalsResponse      `json:"totals"`
	Warning string              `json:"warning,omitempty"`
}

// NewTotalsResponse convierte los totales de dominio.
func NewTotalsResponse(t domaindraft.Totals) TotalsResponse {
	return TotalsResponse{
		Subtotal:  t.Subtotal.String(),
		TaxAmount: t.TaxAmount.String(),
		Total:     t.Total.String(),
	}
}

// NewDraftResponse arma la respuesta para d; warning puede ser nil.
func NewDraftResponse(d entity.InvoiceDraft, warning error) DraftResponse {
	resp := DraftResponse{
		Draft:  d,
		Totals: NewTotalsResponse(domaindraft.Compute(d)),
	}
	if warning != nil {
		resp.Warning = warning.Error()
	}
	return resp
}
