package draft

import (
	"encoding/json"
	"fmt"

	"github.com/jhoicas/invoice-draft/internal/domain"
	domaindraft "github.com/jhoicas/invoice-draft/internal/domain/draft"
	"github.com/jhoicas/invoice-draft/internal/domain/entity"
)

// EncodeSnapshot serializa el borrador completo con la versión de esquema actual.
func EncodeSnapshot(d entity.InvoiceDraft) ([]byte, error) {
	d.SchemaVersion = entity.SchemaVersion
	b, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("snapshot: codificar: %w", err)
	}
	return b, nil
}

// DecodeSnapshot reconstruye un borrador persistido.
//
// Versión 0 (sin schemaVersion) es el formato heredado: se acepta y se sube a la
// versión actual. Versiones futuras, JSON inválido o borradores que violan los
// invariantes devuelven un error que envuelve domain.ErrMalformedSnapshot.
func DecodeSnapshot(data []byte) (entity.InvoiceDraft, error) {
	var d entity.InvoiceDraft
	if err := json.Unmarshal(data, &d); err != nil {
		return entity.InvoiceDraft{}, fmt.Errorf("%w: %w", domain.ErrMalformedSnapshot, err)
	}
	if d.SchemaVersion > entity.SchemaVersion {
		return entity.InvoiceDraft{}, fmt.Errorf("%w: versión de esquema %d no soportada (máx. %d)",
			domain.ErrMalformedSnapshot, d.SchemaVersion, entity.SchemaVersion)
	}
	if d.SchemaVersion < 0 {
		return entity.InvoiceDraft{}, fmt.Errorf("%w: versión de esquema %d inválida", domain.ErrMalformedSnapshot, d.SchemaVersion)
	}
	if err := domaindraft.Validate(d); err != nil {
		return entity.InvoiceDraft{}, fmt.Errorf("%w: %w", domain.ErrMalformedSnapshot, err)
	}
	d.SchemaVersion = entity.SchemaVersion
	return d, nil
}
