package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/resumeanalyzer/internal/client/config"
	"github.com/dmitrijs2005/resumeanalyzer/internal/logging"
	"github.com/dmitrijs2005/resumeanalyzer/internal/report"
)

var errNotSignedIn = errors.New("not signed in: run resumectl and log in first")

// NewShowCmd creates the command printing one stored analysis by id.
func NewShowCmd() *cobra.Command {
	var markdown bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print one stored analysis",
		Long:  `Fetch the analysis with the given id using the saved session and print it as text or Markdown.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid analysis id %q", args[0])
			}

			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			rt, err := newRuntime(cmd.Context(), cfg, logging.NewTextLogger(cmd.ErrOrStderr(), cfg.LogLevel))
			if err != nil {
				return err
			}
			defer rt.Close(cmd.Context())

			token, err := rt.auth.LoadToken(cmd.Context())
			if err != nil {
				return err
			}
			if token == "" {
				return errNotSignedIn
			}

			rec, err := rt.analyses.Get(cmd.Context(), token, id)
			if err != nil {
				return err
			}

			if markdown {
				return report.Export(cmd.OutOrStdout(), rec.Filename, rec.Analysis)
			}
			rep, err := rec.Analysis.Report()
			if err != nil {
				rep = nil
			}
			return report.WriteText(cmd.OutOrStdout(), rec.Filename, rep)
		},
	}
	cmd.Flags().BoolVarP(&markdown, "markdown", "m", false, "print Markdown instead of text")
	return cmd
}
