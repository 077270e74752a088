// Package tui is the full-screen resume analyzer client built on bubbletea.
// It renders workflow.State and forwards key presses to workflow.App; all
// network work runs in tea.Cmds so the UI never blocks.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dmitrijs2005/resumeanalyzer/internal/client/models"
	"github.com/dmitrijs2005/resumeanalyzer/internal/client/workflow"
	"github.com/dmitrijs2005/resumeanalyzer/internal/common"
	"github.com/dmitrijs2005/resumeanalyzer/internal/logging"
)

// Form field indexes.
const (
	fieldUsername = iota
	fieldEmail
	fieldPassword
)

// stateMsg carries a state published by the workflow.
type stateMsg struct {
	state workflow.State
}

// subscriptionClosedMsg ends the state pump.
type subscriptionClosedMsg struct{}

// opDoneMsg reports the end of an async workflow operation.
type opDoneMsg struct {
	op  string
	err error
}

type Model struct {
	ctx  context.Context
	core *workflow.App
	log  logging.Logger

	sub    <-chan workflow.State
	cancel func()

	state  workflow.State
	inputs []textinput.Model
	focus  int
	path   textinput.Model
	cursor int
	hint   string

	width, height int
}

// New builds a model over core. Call Run or hand the model to tea.NewProgram.
func New(ctx context.Context, core *workflow.App, log logging.Logger) *Model {
	if log == nil {
		log = logging.Discard()
	}

	inputs := make([]textinput.Model, 3)
	for i, label := range []string{"Username", "Email", "Password"} {
		in := textinput.New()
		in.Prompt = label + ": "
		in.CharLimit = 128
		in.Cursor.SetMode(cursor.CursorStatic)
		inputs[i] = in
	}
	inputs[fieldEmail].Placeholder = "you@example.com"
	inputs[fieldPassword].EchoMode = textinput.EchoPassword
	inputs[fieldPassword].EchoCharacter = '•'
	inputs[fieldUsername].Focus()

	path := textinput.New()
	path.Prompt = "Resume: "
	path.Placeholder = "type or drop a PDF/DOCX path, enter to upload"
	path.Cursor.SetMode(cursor.CursorStatic)

	return &Model{
		ctx:    ctx,
		core:   core,
		log:    log.With("component", "tui"),
		inputs: inputs,
		path:   path,
		state:  core.Snapshot(),
	}
}

// Run starts the program on the alternate screen and blocks until it exits.
func Run(ctx context.Context, core *workflow.App, log logging.Logger) error {
	m := New(ctx, core, log)
	defer m.stop()
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

// Init subscribes to workflow state and restores the persisted session.
func (m *Model) Init() tea.Cmd {
	m.sub, m.cancel = m.core.Subscribe()
	return tea.Batch(m.initialize(), listen(m.sub))
}

func (m *Model) stop() {
	if m.cancel != nil {
		m.cancel()
	}
}

// listen waits for the next published state.
func listen(sub <-chan workflow.State) tea.Cmd {
	if sub == nil {
		return nil
	}
	return func() tea.Msg {
		st, ok := <-sub
		if !ok {
			return subscriptionClosedMsg{}
		}
		return stateMsg{state: st}
	}
}

func (m *Model) initialize() tea.Cmd {
	return func() tea.Msg {
		return opDoneMsg{op: "initialize", err: m.core.Initialize(m.ctx)}
	}
}

func (m *Model) authenticate(mode models.AuthMode, creds models.Credentials) tea.Cmd {
	return func() tea.Msg {
		defer common.WipeByteArray(creds.Password)
		return opDoneMsg{op: "authenticate", err: m.core.Authenticate(m.ctx, mode, creds)}
	}
}

func (m *Model) upload(src workflow.Source, raw string) tea.Cmd {
	return func() tea.Msg {
		return opDoneMsg{op: "upload", err: m.core.UploadPath(m.ctx, src, raw)}
	}
}

func (m *Model) refresh() tea.Cmd {
	return func() tea.Msg {
		return opDoneMsg{op: "refresh", err: m.core.Refresh(m.ctx)}
	}
}

func (m *Model) logout() tea.Cmd {
	return func() tea.Msg {
		m.core.Logout(m.ctx)
		return opDoneMsg{op: "logout"}
	}
}
