// Package token issues bearer tokens signed with the configured secret, for
// local testing and operator scripts.
package token

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/licensehub/licensehub/internal/infrastructure/auth"
	"github.com/licensehub/licensehub/internal/interfaces/cli/bootstrap"
	"github.com/licensehub/licensehub/internal/shared/authorization"
)

var (
	opts   bootstrap.Options
	userID uint
	role   string
	ttl    time.Duration
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a signed bearer token",
		RunE:  run,
	}

	opts.Bind(cmd)
	cmd.Flags().UintVar(&userID, "user-id", 0, "User id carried in the token (required)")
	cmd.Flags().StringVar(&role, "role", string(authorization.RoleCustomer), "Role: admin or customer")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "Token lifetime")
	_ = cmd.MarkFlagRequired("user-id")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	r := authorization.UserRole(role)
	if !r.IsValid() {
		return fmt.Errorf("unknown role %q", role)
	}

	cfg, _, err := bootstrap.Load(&opts)
	if err != nil {
		return err
	}

	tok, err := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.Issuer).Generate(userID, r, ttl)
	if err != nil {
		return fmt.Errorf("failed to sign token: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), tok)
	return nil
}
