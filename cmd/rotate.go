package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/bnema/topicd/internal/application"
	"github.com/spf13/cobra"
)

func newRotateCmd(app *app) *cobra.Command {
	var chat string
	var name string

	cmd := &cobra.Command{
		Use:   "rotate",
		Short: "Rename the current General topic and open a fresh one",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(name) == "" {
				return fmt.Errorf("--name must not be empty")
			}

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
			rotate := func(ctx context.Context) error {
				return app.withScheduler(ctx, cfg, log, func(ctx context.Context, scheduler *application.Scheduler) error {
					var err error
					result, err = scheduler.RotateNow(ctx, chatID, name)
					return err
				})
			}

			if err := runWithSpinner(cmd.Context(), cmd.ErrOrStderr(), "Rotating General topic...", rotate); err != nil {
				return fmt.Errorf("rotate chat %s: %w", chatID, err)
			}

			switch result.Outcome {
			case application.OutcomeRotated:
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "Renamed topic %d to %q, new General is topic %d\n", result.PreviousTopicID, result.Subject, result.GeneralTopicID)
			default:
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "General was not rotated: %s (%s), General is topic %d\n", result.Outcome, result.Reason, result.GeneralTopicID)
			}
			return err
		},
	}

	cmd.Flags().StringVar(&chat, "chat", "", "Chat ID (e.g. -1003643461316)")
	cmd.Flags().StringVar(&name, "name", "", "New name for the current General topic")
	_ = cmd.MarkFlagRequired("chat")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}
