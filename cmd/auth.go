package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	authadapter "github.com/bnema/topicd/internal/adapters/auth"
	"github.com/bnema/topicd/internal/adapters/telegram"
	"github.com/spf13/cobra"
)

func newAuthCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage Telegram credentials and the user session",
	}

	cmd.AddCommand(newAuthSetCmd(app), newAuthLoginCmd(app), newAuthStatusCmd(app))

	return cmd
}

func newAuthSetCmd(app *app) *cobra.Command {
	var apiHash string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Store the Telegram api hash in the secret store",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(apiHash) == "" {
				return errors.New("--api-hash must not be empty")
			}

			cfg, err := app.loadConfig()
			if err != nil {
				return err
			}

			if err := app.secretStore.Put(cmd.Context(), cfg.Telegram.APIHashRef, strings.TrimSpace(apiHash)); err != nil {
				return fmt.Errorf("store telegram api hash: %w", err)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Stored Telegram api hash at %s\n", cfg.Telegram.APIHashRef)
			return err
		},
	}

	cmd.Flags().StringVar(&apiHash, "api-hash", "", "Telegram api hash from my.telegram.org")
	_ = cmd.MarkFlagRequired("api-hash")

	return cmd
}

func newAuthLoginCmd(app *app) *cobra.Command {
	var phone string
	var password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log the user account in with a login code",
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, cleanup, err := openSession(cmd, app)
			if err != nil {
				return err
			}
			defer cleanup()

			prompt := authadapter.NewCodePrompt(cmd.InOrStdin(), cmd.OutOrStdout(), app.codeTimeout)
			status, err := session.Login(cmd.Context(), phone, password, prompt)
			if err != nil {
				return fmt.Errorf("telegram login: %w", err)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", accountLabel(status))
			return err
		},
	}

	cmd.Flags().StringVar(&phone, "phone", "", "Phone number in international format")
	cmd.Flags().StringVar(&password, "password", "", "Two-step verification password, if enabled")
	_ = cmd.MarkFlagRequired("phone")

	return cmd
}

func newAuthStatusCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Report whether the stored session is authorized",
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, cleanup, err := openSession(cmd, app)
			if err != nil {
				return err
			}
			defer cleanup()

			status, err := session.Status(cmd.Context())
			if err != nil {
				return fmt.Errorf("telegram auth status: %w", err)
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(status)
			}

			if !status.Authorized {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), "not authorized (run `topicd auth login --phone ...`)")
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "authorized as %s\n", accountLabel(status))
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output status as JSON")

	return cmd
}

// openSession builds a session from the telegram settings only; auth commands
// work before any chat is configured.
func openSession(cmd *cobra.Command, app *app) (*telegram.Session, func(), error) {
	cfg, err := app.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Telegram.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid config %s:\n%w", app.config.Path(), err)
	}

	log, err := app.logger(cfg)
	if err != nil {
		return nil, nil, err
	}

	session, err := app.session(cmd.Context(), cfg, log)
	if err != nil {
		log.Sync()
		return nil, nil, err
	}

	return session, log.Sync, nil
}

func accountLabel(status telegram.AuthStatus) string {
	if status.Username != "" {
		return fmt.Sprintf("@%s (%d)", status.Username, status.UserID)
	}

	return fmt.Sprintf("user %d", status.UserID)
}
