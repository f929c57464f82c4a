// Package memory implementa el almacenamiento de snapshots en memoria del proceso.
// Sirve para sesiones efímeras (DRAFT_STORAGE=memory) y para tests.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/invoice-draft/internal/domain"
	"github.com/jhoicas/invoice-draft/internal/domain/repository"
)

var _ repository.SnapshotRepository = (*SnapshotRepo)(nil)

// SnapshotRepo mapa clave → bytes protegido por mutex.
type SnapshotRepo struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewSnapshotRepository construye un repositorio vacío.
func NewSnapshotRepository() *SnapshotRepo {
	return &SnapshotRepo{data: make(map[string][]byte)}
}

// Get devuelve una copia de lo guardado bajo key.
func (r *SnapshotRepo) Get(_ context.Context, key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.data[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return append([]byte(nil), b...), nil
}

// Set guarda una copia de data.
func (r *SnapshotRepo) Set(_ context.Context, key string, data []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[key] = append([]byte(nil), data...)
	return nil
}

// Remove borra key.
func (r *SnapshotRepo) Remove(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.data, key)
	return nil
}
