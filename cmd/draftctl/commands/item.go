package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/invoice-draft/internal/application/dto"
	"github.com/jhoicas/invoice-draft/internal/domain/entity"
)

// item add | rm <id> | set <id> <field> <value>
func itemCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Manage line items",
	}
	cmd.AddCommand(itemAddCmd(s), itemRmCmd(s), itemSetCmd(s))
	return cmd
}

func itemAddCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "add",
		Short: "Append an empty line item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := s.openStore(cmd.Context())
			if err != nil {
				return err
			}
			d, warning := store.AddItem(cmd.Context())
			warn(cmd, warning)
			fmt.Fprintln(cmd.OutOrStdout(), d.Items[len(d.Items)-1].ID)
			return nil
		},
	}
}

func itemRmCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a line item (the last remaining one is kept)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := s.openStore(cmd.Context())
			if err != nil {
				return err
			}
			before := len(store.Current().Items)
			d, warning := store.RemoveItem(cmd.Context(), args[0])
			if len(d.Items) == before {
				s.log.Warn().Str("id", args[0]).Msg("línea no eliminada: id desconocido o es la única")
			}
			return writeJSON(cmd.OutOrStdout(), dto.NewDraftResponse(d, warning))
		},
	}
}

func itemSetCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "set <id> <field> <value>",
		Short: "Set description, quantity or price of a line item",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			field := entity.ItemField(args[1])
			switch field {
			case entity.ItemDescription, entity.ItemQuantity, entity.ItemPrice:
			default:
				return fmt.Errorf("campo de línea %q no soportado (description, quantity, price)", args[1])
			}
			store, err := s.openStore(cmd.Context())
			if err != nil {
				return err
			}
			if store.Current().IndexOf(args[0]) < 0 {
				return fmt.Errorf("línea %q no existe", args[0])
			}
			d, warning := store.UpdateItem(cmd.Context(), args[0], field, args[2])
			return writeJSON(cmd.OutOrStdout(), dto.NewDraftResponse(d, warning))
		},
	}
}
