package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"lantern/internal/config"
	"lantern/internal/daemon"
)

func newRunCommand(configFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the dispatch daemon in the foreground",
		RunE: func(cmd *cobra.Command, args []string) error {
			signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			cfg, err := config.Load(configValue(configFlag))
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

			d, err := daemon.New(cfg, configValue(configFlag), logger)
			if err != nil {
				return fmt.Errorf("create daemon: %w", err)
			}
			if err := d.Run(signalCtx); err != nil {
				return fmt.Errorf("run daemon: %w", err)
			}
			return nil
		},
	}
}

func configValue(flag *string) string {
	if flag == nil {
		return ""
	}
	return *flag
}
