package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/resumeanalyzer/internal/buildinfo"
	"github.com/dmitrijs2005/resumeanalyzer/internal/client/cli"
	"github.com/dmitrijs2005/resumeanalyzer/internal/client/config"
	"github.com/dmitrijs2005/resumeanalyzer/internal/logging"
)

// NewRootCmd creates the root command. Without a subcommand it starts the
// interactive prompt.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resumectl",
		Short: "Upload resumes for analysis and browse the results",
		Long: `resumectl talks to the resume analyzer API. Sign in or register,
upload a PDF or DOCX resume and read the scored analysis; previous
analyses stay available from the dashboard.

The session token is kept in a local SQLite database so the next start
resumes where you left off.`,
		Version:       buildinfo.GetVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          runREPL,
	}

	config.BindFlags(cmd.PersistentFlags())

	cmd.AddCommand(NewTUICmd())
	cmd.AddCommand(NewShowCmd())
	cmd.AddCommand(NewVersionCmd())
	cmd.AddCommand(NewServeFakeCmd())

	return cmd
}

func runREPL(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}
	log := logging.NewTextLogger(cmd.ErrOrStderr(), cfg.LogLevel)

	rt, err := newRuntime(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}
	defer rt.Close(cmd.Context())

	core := rt.Workflow()
	defer core.Close()

	return cli.NewApp(core, cmd.InOrStdin(), cmd.OutOrStdout(), log).Run(cmd.Context())
}

// Execute runs the root command until it returns or the process is
// interrupted.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := NewRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
