package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/resumeanalyzer/internal/client/workflow"
	"github.com/dmitrijs2005/resumeanalyzer/internal/logging"
)

type App struct {
	core   *workflow.App
	reader *bufio.Reader
	out    io.Writer
	log    logging.Logger

	// shown remembers the last notification printed per kind.
	shown map[workflow.Kind]uuid.UUID
}

// NewApp wraps core for interactive use. A nil in or out means the process
// stdin or stdout.
func NewApp(core *workflow.App, in io.Reader, out io.Writer, log logging.Logger) *App {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	if log == nil {
		log = logging.Discard()
	}
	return &App{
		core:   core,
		reader: bufio.NewReader(in),
		out:    out,
		log:    log.With("component", "cli"),
		shown:  map[workflow.Kind]uuid.UUID{},
	}
}

// Run restores the persisted session and serves commands until exit or EOF.
func (a *App) Run(ctx context.Context) error {
	if err := a.core.Initialize(ctx); err != nil {
		return fmt.Errorf("initialize: %w", err)
	}

	fmt.Fprintln(a.out, "Welcome to the resume analyzer (type 'help' for commands)")
	if a.view() == workflow.ViewDashboard {
		fmt.Fprintln(a.out, "Session restored.")
		_ = a.List(ctx)
	}
	a.notify()

	runREPL(ctx, a, a.getStatus, a.reader)
	return nil
}

func (a *App) view() workflow.View {
	return a.core.Snapshot().View
}

// getStatus is the prompt text: the view, then the user when known.
func (a *App) getStatus() string {
	st := a.core.Snapshot()
	if name := st.Session.Username(); name != "" {
		return fmt.Sprintf("(%s %s)", st.View, name)
	}
	return fmt.Sprintf("(%s)", st.View)
}
