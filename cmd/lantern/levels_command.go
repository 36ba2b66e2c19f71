package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"lantern/internal/config"
	"lantern/internal/level"
)

func newLevelsCommand(configFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "levels",
		Short: "Show severity levels and the configured enablement",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configValue(configFlag))
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			enabled := cfg.Enabled()
			rows := make([][]string, 0, len(level.All()))
			for _, lvl := range level.All() {
				state := "off"
				if enabled.Has(lvl) {
					state = "on"
				}
				rows = append(rows, []string{lvl.String(), strconv.Itoa(int(lvl)), state})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable([]string{"LEVEL", "VALUE", "ENABLED"}, rows))
			fmt.Fprintf(out, "Auto threshold: %s\n", level.AutoThreshold(enabled))
			return nil
		},
	}
}
