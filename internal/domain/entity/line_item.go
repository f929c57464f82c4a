package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ItemField identifica un campo editable de una línea.
type ItemField string

const (
	ItemDescription ItemField = "description"
	ItemQuantity    ItemField = "quantity"
	ItemPrice       ItemField = "price"
)

// LineItem representa una fila facturable del borrador.
type LineItem struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"` // no negativa esperada, default 1
	Price       float64 `json:"price"`    // no negativo esperado, default 0
}

// NewLineItem construye una línea vacía con los valores por defecto.
func NewLineItem(id string) LineItem {
	return LineItem{ID: id, Quantity: 1}
}

// lineItemJSON forma tolerante del snapshot: el formato heredado guardaba ids
// numéricos y, en ocasiones, descripciones numéricas.
type lineItemJSON struct {
	ID          json.RawMessage `json:"id"`
	Description json.RawMessage `json:"description"`
	Quantity    float64         `json:"quantity"`
	Price       float64         `json:"price"`
}

// UnmarshalJSON acepta ids y descripciones como string o número.
func (it *LineItem) UnmarshalJSON(b []byte) error {
	var raw lineItemJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	id, err := scalarText(raw.ID)
	if err != nil {
		return fmt.Errorf("item id: %w", err)
	}
	desc, err := scalarText(raw.Description)
	if err != nil {
		return fmt.Errorf("item description: %w", err)
	}
	*it = LineItem{ID: id, Description: desc, Quantity: raw.Quantity, Price: raw.Price}
	return nil
}

// scalarText convierte un string o número JSON a texto. null o ausente → "".
func scalarText(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("se esperaba string o número: %s", raw)
	}
	if i, err := n.Int64(); err == nil {
		return strconv.FormatInt(i, 10), nil
	}
	return n.String(), nil
}
