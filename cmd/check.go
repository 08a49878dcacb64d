package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bnema/topicd/internal/application"
	"github.com/spf13/cobra"
)

func newCheckCmd(app *app) *cobra.Command {
	var chat string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run one read/decide/act pass for a single chat",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := app.validConfig()
			if err != nil {
				return err
			}
			chatID, err := requireMonitored(cfg, chat)
			if err != nil {
				return err
			}

			log, err := app.logger(cfg)
			if err != nil {
				return err
			}
			defer log.Sync()

			var result application.ChatResult
			err = app.withScheduler(cmd.Context(), cfg, log, func(ctx context.Context, scheduler *application.Scheduler) error {
				var err error
				result, err = scheduler.CheckChat(ctx, chatID)
				return err
			})
			if err != nil {
				return fmt.Errorf("check chat %s: %w", chatID, err)
			}

			return writeChatResult(cmd, result, asJSON)
		},
	}

	cmd.Flags().StringVar(&chat, "chat", "", "Chat ID (e.g. -1003643461316)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output result as JSON")
	_ = cmd.MarkFlagRequired("chat")

	return cmd
}

func writeChatResult(cmd *cobra.Command, result application.ChatResult, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	_, err := fmt.Fprintln(cmd.OutOrStdout(), result.Outcome)
	return err
}
