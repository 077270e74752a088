package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/dmitrijs2005/resumeanalyzer/internal/client/workflow"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	view() workflow.View
	notify()

	Login(ctx context.Context) error
	Register(ctx context.Context) error
	Toggle(ctx context.Context) error
	Logout(ctx context.Context) error

	List(ctx context.Context) error
	Refresh(ctx context.Context) error
	Open(ctx context.Context, arg string) error
	Upload(ctx context.Context, path string) error
	Drop(ctx context.Context, raw string) error

	Show(ctx context.Context) error
	Export(ctx context.Context, path string) error
	Back(ctx context.Context) error
}

var authCommands = []string{"login", "register", "toggle", "help", "exit"}

// commands lists what each view accepts, in help order.
var commands = map[workflow.View][]string{
	workflow.ViewLogin:     authCommands,
	workflow.ViewRegister:  authCommands,
	workflow.ViewDashboard: {"upload", "drop", "list", "open", "refresh", "logout", "help", "exit"},
	workflow.ViewAnalysis:  {"show", "export", "back", "logout", "help", "exit"},
}

var aliases = map[string]string{
	"quit": "exit",
	"l":    "list",
	"q":    "exit",
}

// maxSuggestDistance bounds how far a typo may be from a suggested command.
const maxSuggestDistance = 2

// runREPL reads one command per line from r and dispatches it to a.
//
// The first word is the command; the rest of the line, trimmed, is its
// argument so that paths with spaces survive. Commands not offered by the
// current view are rejected with a suggestion. The loop exits on EOF or
// when the user types "exit" or "quit".
//
// Errors returned by command handlers are ignored here; handlers report
// their own failures. New notifications are printed after every command.
func runREPL(ctx context.Context, a execIface, statusFn func() string, r *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("rz %s >", statusFn()))
		line, err := r.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		cmd, arg := splitCommand(line)
		if cmd == "" {
			continue
		}
		if full, ok := aliases[cmd]; ok {
			cmd = full
		}

		if cmd == "exit" {
			printlnFn("Bye!")
			return
		}
		if ctx.Err() != nil {
			return
		}

		dispatch(ctx, a, cmd, arg)
		a.notify()
	}
}

func splitCommand(line string) (cmd, arg string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return "", ""
	}
	cmd, arg, _ = strings.Cut(line, " ")
	return strings.ToLower(cmd), strings.TrimSpace(arg)
}

func dispatch(ctx context.Context, a execIface, cmd, arg string) {
	view := a.view()
	available := commands[view]
	if !slices.Contains(available, cmd) {
		reject(view, cmd, available)
		return
	}

	switch cmd {
	case "help":
		printlnFn("Available commands:", strings.Join(available, ", "))

	case "login":
		_ = a.Login(ctx)

	case "register":
		_ = a.Register(ctx)

	case "toggle":
		_ = a.Toggle(ctx)

	case "logout":
		_ = a.Logout(ctx)

	case "list":
		_ = a.List(ctx)

	case "refresh":
		_ = a.Refresh(ctx)

	case "open":
		if arg == "" {
			printlnFn("Usage: open <n|id:N>")
			return
		}
		_ = a.Open(ctx, arg)

	case "upload":
		if arg == "" {
			printlnFn("Usage: upload <path>")
			return
		}
		_ = a.Upload(ctx, arg)

	case "drop":
		if arg == "" {
			printlnFn("Usage: drop <pasted path>")
			return
		}
		_ = a.Drop(ctx, arg)

	case "show":
		_ = a.Show(ctx)

	case "export":
		if arg == "" {
			printlnFn("Usage: export <file.md>")
			return
		}
		_ = a.Export(ctx, arg)

	case "back":
		_ = a.Back(ctx)
	}
}

func reject(view workflow.View, cmd string, available []string) {
	for v, cmds := range commands {
		if v != view && slices.Contains(cmds, cmd) {
			printlnFn(fmt.Sprintf("%q is not available in the %s view", cmd, view))
			return
		}
	}
	if s := suggest(cmd, available); s != "" {
		printlnFn(fmt.Sprintf("Unknown command: %s (did you mean %q?)", cmd, s))
		return
	}
	printlnFn("Unknown command:", cmd)
}

// suggest returns the closest candidate within maxSuggestDistance, or "".
func suggest(cmd string, candidates []string) string {
	best, bestDist := "", maxSuggestDistance+1
	for _, c := range candidates {
		if d := levenshtein.ComputeDistance(cmd, c); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}
