package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	statusadapter "github.com/bnema/topicd/internal/adapters/render/status"
	"github.com/bnema/topicd/internal/application"
	"github.com/bnema/topicd/internal/domain"
	"github.com/spf13/cobra"
)

func newStatusCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the persisted rotation state of every configured chat",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := app.loadConfig()
			if err != nil {
				return err
			}

			states, err := app.stateRepository(cfg)
			if err != nil {
				return err
			}

			statuses, err := application.Statuses(cmd.Context(), cfg.Chats, states)
			if err != nil {
				if !errors.Is(err, domain.ErrStateCorrupt) {
					return err
				}
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
			}

			return writeStatusesOutput(cmd, app, cfg, statuses, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output status as JSON")

	return cmd
}

func writeStatusesOutput(cmd *cobra.Command, app *app, cfg domain.Config, statuses []application.ChatStatus, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(statuses)
	}

	rendered, err := app.statusRenderer(statuses, statusadapter.RenderOptions{
		Now:         app.now(),
		SettleAfter: cfg.SettleAfter,
	})
	if err != nil {
		return fmt.Errorf("render status: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}
