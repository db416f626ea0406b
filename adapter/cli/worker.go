package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/hiteshchouriya/rik/internal/app"
	"github.com/hiteshchouriya/rik/pkg/config"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Run the outbox worker that publishes domain events",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		container, err := app.NewContainer(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer container.Close()

		if err := container.OutboxProcessor.Start(ctx); err != nil {
			return fmt.Errorf("failed to start outbox processor: %w", err)
		}
		logger.Info("outbox worker started")

		cleanupTicker := time.NewTicker(cfg.OutboxCleanupInterval)
		defer cleanupTicker.Stop()
		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case <-cleanupTicker.C:
					deleted, err := container.OutboxRepo.DeleteOld(ctx, cfg.OutboxRetentionDays)
					if err != nil {
						logger.Error("outbox cleanup failed", "error", err)
						continue
					}
					if deleted > 0 {
						logger.Info("outbox cleanup completed", "deleted", deleted, "retention_days", cfg.OutboxRetentionDays)
					}
				}
			}
		}()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)

		container.OutboxProcessor.Stop()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)
}
