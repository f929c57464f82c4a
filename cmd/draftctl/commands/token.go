package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/invoice-draft/pkg/jwt"
)

// token: emite un Bearer token para la API cuando JWT_SECRET está definido.
func tokenCmd(s *session) *cobra.Command {
	var subject string
	var minutes int
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an API token signed with JWT_SECRET",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !s.cfg.JWT.Enabled() {
				return fmt.Errorf("JWT_SECRET no está definido; la API no exige token")
			}
			if minutes <= 0 {
				minutes = s.cfg.JWT.Expiration
			}
			tok, err := jwt.Generate(s.cfg.JWT.Secret, subject, s.cfg.JWT.Issuer, minutes)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "local", "token subject")
	cmd.Flags().IntVar(&minutes, "minutes", 0, "expiration in minutes (default JWT_EXPIRATION_MINUTES)")
	return cmd
}
