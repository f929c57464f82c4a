// Package bootstrap arma el Draft Store y la vista previa a partir de la
// configuración. Lo comparten la API y la CLI.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/jhoicas/invoice-draft/internal/application/draft"
	"github.com/jhoicas/invoice-draft/internal/application/preview"
	"github.com/jhoicas/invoice-draft/internal/domain/repository"
	"github.com/jhoicas/invoice-draft/internal/infrastructure/filestore"
	"github.com/jhoicas/invoice-draft/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/invoice-draft/internal/infrastructure/pdf"
	"github.com/jhoicas/invoice-draft/internal/infrastructure/postgres"
	"github.com/jhoicas/invoice-draft/pkg/config"
	"github.com/jhoicas/invoice-draft/pkg/logger"
)

// OpenRepository abre el backend de snapshots configurado en DRAFT_STORAGE.
// closeFn libera recursos (pool de PostgreSQL); nunca es nil.
func OpenRepository(ctx context.Context, cfg *config.Config, log *logger.Logger) (repo repository.SnapshotRepository, closeFn func(), err error) {
	closeFn = func() {}
	switch cfg.Draft.Storage {
	case config.StorageMemory:
		log.Warn().Msg("almacenamiento en memoria: el borrador se pierde al salir")
		return memory.NewSnapshotRepository(), closeFn, nil

	case config.StoragePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, closeFn, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		if err := postgres.EnsureSchema(ctx, postgres.NewTxRunner(pool)); err != nil {
			pool.Close()
			return nil, closeFn, fmt.Errorf("crear tabla de snapshots: %w", err)
		}
		log.Info().Str("storage", "postgres").Msg("snapshots en PostgreSQL")
		return postgres.NewSnapshotRepository(pool), pool.Close, nil

	default:
		fs, err := filestore.NewSnapshotRepository(cfg.Draft.StorageDir)
		if err != nil {
			return nil, closeFn, err
		}
		log.Info().Str("storage", "file").Str("dir", fs.Dir()).Msg("snapshots en disco")
		return fs, closeFn, nil
	}
}

// IDGenerator devuelve el generador de ids de línea configurado en DRAFT_ITEM_IDS.
func IDGenerator(cfg *config.Config) draft.IDGenerator {
	if cfg.Draft.ItemIDs == config.ItemIDsSequence {
		return draft.NewSequenceGenerator(0)
	}
	return draft.UUIDGenerator{}
}

// NewStore abre el repositorio, construye el store y restaura el borrador guardado.
func NewStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (*draft.Store, func(), error) {
	repo, closeFn, err := OpenRepository(ctx, cfg, log)
	if err != nil {
		return nil, closeFn, err
	}
	store := draft.NewStore(repo, draft.StoreConfig{
		Key:    cfg.Draft.StorageKey,
		IDs:    IDGenerator(cfg),
		Logger: log.Zerolog(),
	})
	store.Load(ctx)
	return store, closeFn, nil
}

// NewPreview construye la vista previa con el generador PDF.
func NewPreview(cfg *config.Config) *preview.UseCase {
	return preview.NewUseCase(infrapdf.NewMarotoPDFGenerator(""), preview.Config{
		Locale:         cfg.Preview.Locale,
		CurrencySymbol: cfg.Preview.CurrencySymbol,
	})
}
