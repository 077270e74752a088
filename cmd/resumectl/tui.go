package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/resumeanalyzer/internal/client/config"
	"github.com/dmitrijs2005/resumeanalyzer/internal/client/tui"
	"github.com/dmitrijs2005/resumeanalyzer/internal/filex"
	"github.com/dmitrijs2005/resumeanalyzer/internal/logging"
)

// NewTUICmd creates the full-screen client command. It logs to the
// configured file because the terminal belongs to the UI.
func NewTUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Start the full-screen client",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			if _, err := filex.EnsureDir(filepath.Dir(cfg.LogFile)); err != nil {
				return fmt.Errorf("log dir: %w", err)
			}
			log := logging.NewZapFileLogger(cfg.LogFile, cfg.LogLevel)
			defer log.Sync()

			rt, err := newRuntime(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer rt.Close(cmd.Context())

			core := rt.Workflow()
			defer core.Close()

			return tui.Run(cmd.Context(), core, log)
		},
	}
}
