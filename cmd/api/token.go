package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/apolaki-ghub/Project3/internal/auth"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint an access token with the configured JWT secret",
	Long: `Mint a bearer token for the upload routes without going through /api/token.

Example:
  recorder token --client kiosk-1 --ttl 72h`,
	RunE: runToken,
}

var hashKeyCmd = &cobra.Command{
	Use:   "hash-key <access-key>",
	Short: "Print the bcrypt hash of an access key for auth.access_key_hash",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hash, err := auth.HashAccessKey(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), hash)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd, hashKeyCmd)

	tokenCmd.Flags().String("client", "cli", "client name stored in the token")
	tokenCmd.Flags().Duration("ttl", 0, "token lifetime (defaults to auth.token_ttl)")
}

func runToken(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if !cfg.Auth.Enabled() {
		return errors.New("access control is disabled: set auth.jwt_secret and auth.access_key_hash")
	}

	ttl := cfg.Auth.TokenTTL
	if d, _ := cmd.Flags().GetDuration("ttl"); d > 0 {
		ttl = d
	}
	client, _ := cmd.Flags().GetString("client")

	issuer := auth.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.AccessKeyHash, ttl)
	token, expiresAt, err := issuer.GenerateToken(client)
	if err != nil {
		return fmt.Errorf("failed to generate token: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, token)
	fmt.Fprintf(out, "expires %s\n", expiresAt.Format(time.RFC3339))
	return nil
}
