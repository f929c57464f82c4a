package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jhoicas/invoice-draft/internal/application/draft"
	"github.com/jhoicas/invoice-draft/internal/application/preview"
	"github.com/jhoicas/invoice-draft/internal/bootstrap"
	"github.com/jhoicas/invoice-draft/pkg/config"
	"github.com/jhoicas/invoice-draft/pkg/logger"
)

// session estado compartido por los subcomandos de una ejecución.
type session struct {
	storageDir string
	verbose    bool

	cfg   *config.Config
	log   *logger.Logger
	store *draft.Store
	close func()
}

// Execute corre la CLI con los argumentos del proceso.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd construye el árbol de comandos de draftctl.
func NewRootCmd() *cobra.Command {
	s := &session{close: func() {}}

	root := &cobra.Command{
		Use:           "draftctl",
		Short:         "Edit the local invoice draft from the terminal",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if s.storageDir != "" {
				cfg.Draft.StorageDir = s.storageDir
			}
			level := cfg.Log.Level
			if s.verbose {
				level = "debug"
			}
			s.cfg = cfg
			s.log = logger.New(logger.Config{Env: "development", Level: level, Out: cmd.ErrOrStderr()})
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			s.close()
		},
	}

	root.PersistentFlags().StringVar(&s.storageDir, "dir", "", "snapshot directory (default DRAFT_STORAGE_DIR or ~/.invoice-draft)")
	root.PersistentFlags().BoolVarP(&s.verbose, "verbose", "v", false, "debug logging on stderr")

	root.AddCommand(
		showCmd(s),
		totalsCmd(s),
		setCmd(s),
		itemCmd(s),
		clearCmd(s),
		printCmd(s),
		tokenCmd(s),
	)
	return root
}

// openStore abre el almacenamiento y restaura el borrador guardado.
func (s *session) openStore(ctx context.Context) (*draft.Store, error) {
	if s.store != nil {
		return s.store, nil
	}
	store, closeFn, err := bootstrap.NewStore(ctx, s.cfg, s.log)
	if err != nil {
		return nil, err
	}
	s.store, s.close = store, closeFn
	return store, nil
}

func (s *session) preview() *preview.UseCase {
	return bootstrap.NewPreview(s.cfg)
}
