package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/resumeanalyzer/internal/buildinfo"
)

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version, commit hash, and build date of resumectl.`,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "resumectl version %s\n", buildinfo.GetVersion())
			fmt.Fprintf(cmd.OutOrStdout(), "  commit: %s\n", buildinfo.GetCommit())
			fmt.Fprintf(cmd.OutOrStdout(), "  built:  %s\n", buildinfo.GetDate())
		},
	}
}
