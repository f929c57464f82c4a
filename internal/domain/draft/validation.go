package draft

import (
	"errors"
	"fmt"

	"github.com/jhoicas/invoice-draft/internal/domain/entity"
)

// ErrInvariant agrupa las violaciones de invariantes del borrador.
var ErrInvariant = errors.New("invariante del borrador violado")

// Validate comprueba los invariantes estructurales: al menos una línea e ids únicos no vacíos.
// No valida contenido de campos (el borrador acepta texto libre y números parciales).
func Validate(d entity.InvoiceDraft) error {
	var errs []error
	if len(d.Items) == 0 {
		errs = append(errs, fmt.Errorf("%w: el borrador debe tener al menos una línea", ErrInvariant))
	}
	for i, it := range d.Items {
		if it.ID == "" {
			errs = append(errs, fmt.Errorf("%w: la línea %d no tiene id", ErrInvariant, i+1))
		}
	}
	if !d.HasUniqueItemIDs() {
		errs = append(errs, fmt.Errorf("%w: ids de línea repetidos", ErrInvariant))
	}
	return errors.Join(errs...)
}
