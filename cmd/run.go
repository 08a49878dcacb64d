package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bnema/topicd/internal/application"
	"github.com/spf13/cobra"
)

func newRunCmd(app *app) *cobra.Command {
	var once bool
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Poll the monitored chats and rotate answered General topics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := app.validConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("interval") {
				if interval <= 0 {
					return fmt.Errorf("interval must be positive, got %s", interval)
				}
				cfg.Interval = interval
			}

			log, err := app.logger(cfg)
			if err != nil {
				return err
			}
			defer log.Sync()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			err = app.withScheduler(ctx, cfg, log, func(ctx context.Context, scheduler *application.Scheduler) error {
				if once {
					return writeResults(cmd, scheduler.Tick(ctx))
				}
				return scheduler.Run(ctx, cfg.Interval)
			})
			if err != nil && ctx.Err() != nil && errors.Is(err, context.Canceled) {
				return nil
			}

			return err
		},
	}

	cmd.Flags().BoolVar(&once, "once", false, "Process every chat once and exit")
	cmd.Flags().DurationVar(&interval, "interval", 0, "Polling interval (overrides config)")

	return cmd
}

func writeResults(cmd *cobra.Command, results []application.ChatResult) error {
	for _, result := range results {
		line := fmt.Sprintf("%s\t%s\tgeneral=%d", result.ChatID, result.Outcome, result.GeneralTopicID)
		if result.Err != nil {
			line = fmt.Sprintf("%s\terror\t%v", result.ChatID, result.Err)
		}
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), line); err != nil {
			return err
		}
	}

	return nil
}
