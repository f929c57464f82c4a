package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jhoicas/invoice-draft/internal/application/dto"
	"github.com/jhoicas/invoice-draft/internal/domain/entity"
)

// show: imprime el borrador y sus totales como JSON.
func showCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the current draft and its totals as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := s.openStore(cmd.Context())
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), dto.NewDraftResponse(store.Current(), nil))
		},
	}
}

func totalsCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "totals",
		Short: "Print subtotal, tax amount and total",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := s.openStore(cmd.Context())
			if err != nil {
				return err
			}
			t := store.Totals()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "subtotal\t%s\n", t.Subtotal.StringFixed(2))
			fmt.Fprintf(out, "tax\t%s\n", t.TaxAmount.StringFixed(2))
			fmt.Fprintf(out, "total\t%s\n", t.Total.StringFixed(2))
			return nil
		},
	}
}

// set <field> <value>: campo de nivel superior. tax acepta texto numérico.
func setCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "set <field> <value>",
		Short: "Set a draft field (invoiceNumber, date, companyName, ..., tax, notes)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			field := entity.DraftField(args[0])
			if !field.IsText() && field != entity.FieldTax {
				return fmt.Errorf("campo %q no editable", args[0])
			}
			store, err := s.openStore(cmd.Context())
			if err != nil {
				return err
			}
			d, warning := store.UpdateField(cmd.Context(), field, args[1])
			return writeJSON(cmd.OutOrStdout(), dto.NewDraftResponse(d, warning))
		},
	}
}

func clearCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Discard the draft and start a new one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := s.openStore(cmd.Context())
			if err != nil {
				return err
			}
			d, warning := store.Clear(cmd.Context())
			warn(cmd, warning)
			fmt.Fprintf(cmd.OutOrStdout(), "cleared, new draft %s\n", d.InvoiceNumber)
			return nil
		},
	}
}

// warn avisa en stderr que el cambio se aplicó pero no quedó guardado.
func warn(cmd *cobra.Command, warning error) {
	if warning != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", warning)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
