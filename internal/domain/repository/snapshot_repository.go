package repository

import "context"

// SnapshotRepository define el puerto de almacenamiento clave-valor durable
// donde se guarda el snapshot completo del borrador (una sola ranura por clave).
type SnapshotRepository interface {
	// Get devuelve el texto guardado bajo key, o domain.ErrNotFound si no existe.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set reemplaza el contenido de key.
	Set(ctx context.Context, key string, data []byte) error
	// Remove borra key. Borrar una clave inexistente no es error.
	Remove(ctx context.Context, key string) error
}
