package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// print --out file.pdf: equivalente a imprimir la vista previa.
func printCmd(s *session) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "print",
		Short: "Render the draft preview to a PDF file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := s.openStore(cmd.Context())
			if err != nil {
				return err
			}
			doc, filename, err := s.preview().Print(cmd.Context(), store.Current())
			if err != nil {
				return err
			}
			if out == "" {
				out = filename
			}
			if err := os.WriteFile(out, doc, 0o644); err != nil {
				return fmt.Errorf("escribir %s: %w", out, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default invoice_<number>.pdf)")
	return cmd
}
