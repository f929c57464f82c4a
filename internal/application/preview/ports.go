package preview

import "context"

// Printer es el colaborador de impresión: convierte la vista previa en un
// documento imprimible.
type Printer interface {
	Render(ctx context.Context, view View) ([]byte, error)
}
