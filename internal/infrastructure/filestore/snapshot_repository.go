// Package filestore guarda cada snapshot como un archivo <dir>/<key>.json.
// Las escrituras usan archivo temporal + rename para no dejar snapshots a medias.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/jhoicas/invoice-draft/internal/domain"
	"github.com/jhoicas/invoice-draft/internal/domain/repository"
)

var _ repository.SnapshotRepository = (*SnapshotRepo)(nil)

var validKey = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

const fileMode os.FileMode = 0o600

// SnapshotRepo repositorio basado en archivos.
type SnapshotRepo struct {
	dir string
}

// NewSnapshotRepository crea el directorio si no existe.
func NewSnapshotRepository(dir string) (*SnapshotRepo, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("filestore: crear %s: %w", dir, err)
	}
	return &SnapshotRepo{dir: dir}, nil
}

// Dir directorio base.
func (r *SnapshotRepo) Dir() string { return r.dir }

func (r *SnapshotRepo) path(key string) (string, error) {
	if !validKey.MatchString(key) || key == "." || key == ".." {
		return "", fmt.Errorf("%w: clave %q", domain.ErrInvalidInput, key)
	}
	return filepath.Join(r.dir, key+".json"), nil
}

// Get lee el archivo de key; domain.ErrNotFound si no existe.
func (r *SnapshotRepo) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p, err := r.path(key)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(p)
	if errors.Is(err, os.ErrNotExist) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("filestore: leer %s: %w", p, err)
	}
	return b, nil
}

// Set reemplaza atómicamente el archivo de key.
func (r *SnapshotRepo) Set(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := r.path(key)
	if err != nil {
		return err
	}
	if err := writeFile(p, data, fileMode); err != nil {
		return fmt.Errorf("filestore: escribir %s: %w", p, err)
	}
	return nil
}

// Remove borra el archivo de key; no es error si no existe.
func (r *SnapshotRepo) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := r.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("filestore: borrar %s: %w", p, err)
	}
	return nil
}

// writeFile escribe en un temporal del mismo directorio y luego lo renombra sobre path.
func writeFile(path string, b []byte, mode os.FileMode) error {
	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()

	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Chmod(mode); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
