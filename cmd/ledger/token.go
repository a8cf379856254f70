package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	jwttoken "supplyledger/internal/jwt_token"
	"supplyledger/internal/platform/config"
	"supplyledger/pkg/domain"
)

// tokenCommand mints a bearer token for local development. Production tokens
// come from the external identity provider sharing the signing key.
func tokenCommand() *cobra.Command {
	var ttl time.Duration
	cmd := &cobra.Command{
		Use:   "token <principal>",
		Short: "Issue a development bearer token for a principal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			principal, err := domain.ParsePrincipal(args[0])
			if err != nil {
				return err
			}
			svc := jwttoken.NewJWTService(cfg.JWTSigningKey, cfg.JWTIssuer, cfg.JWTAudience)
			token, err := svc.GenerateAccessToken(principal, ttl)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	return cmd
}
