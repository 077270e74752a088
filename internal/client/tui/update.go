package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dmitrijs2005/resumeanalyzer/internal/client/models"
	"github.com/dmitrijs2005/resumeanalyzer/internal/client/workflow"
)

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case stateMsg:
		m.apply(msg.state)
		return m, listen(m.sub)

	case subscriptionClosedMsg:
		return m, nil

	case opDoneMsg:
		if msg.err != nil {
			m.log.Debug(m.ctx, "operation failed", "op", msg.op, "error", msg.err)
		}
		m.apply(m.core.Snapshot())
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.state.View {
		case workflow.ViewLogin, workflow.ViewRegister:
			return m.updateAuth(msg)
		case workflow.ViewDashboard:
			return m.updateDashboard(msg)
		case workflow.ViewAnalysis:
			return m.updateAnalysis(msg)
		}
	}
	return m, nil
}

// apply adopts a new state and resets view-local inputs on view changes.
func (m *Model) apply(st workflow.State) {
	prev := m.state.View
	m.state = st
	if m.cursor >= len(st.Analyses) {
		m.cursor = max(len(st.Analyses)-1, 0)
	}
	if prev == st.View {
		return
	}

	m.hint = ""
	switch st.View {
	case workflow.ViewDashboard:
		m.resetForm()
		m.path.Focus()
	case workflow.ViewLogin, workflow.ViewRegister:
		m.path.Reset()
		m.path.Blur()
		if prev == workflow.ViewDashboard || prev == workflow.ViewAnalysis {
			m.resetForm()
		}
		m.focusField(fieldUsername)
	case workflow.ViewAnalysis:
		m.path.Blur()
	}
}

func (m *Model) resetForm() {
	for i := range m.inputs {
		m.inputs[i].Reset()
		m.inputs[i].Blur()
	}
	m.focus = fieldUsername
}

// fields are the form inputs shown in the current auth view.
func (m *Model) fields() []int {
	if m.state.View == workflow.ViewRegister {
		return []int{fieldUsername, fieldEmail, fieldPassword}
	}
	return []int{fieldUsername, fieldPassword}
}

func (m *Model) focusField(f int) {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	m.focus = f
	m.inputs[f].Focus()
}

func (m *Model) moveFocus(dir int) {
	fields := m.fields()
	pos := 0
	for i, f := range fields {
		if f == m.focus {
			pos = i
		}
	}
	pos = (pos + dir + len(fields)) % len(fields)
	m.focusField(fields[pos])
}

func (m *Model) updateAuth(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		m.moveFocus(1)
		return m, nil
	case "shift+tab", "up":
		m.moveFocus(-1)
		return m, nil
	case "ctrl+t":
		if err := m.core.ToggleAuthMode(); err == nil {
			m.apply(m.core.Snapshot())
		}
		return m, nil
	case "esc":
		m.core.Dismiss(workflow.KindError)
		m.hint = ""
		m.apply(m.core.Snapshot())
		return m, nil
	case "enter":
		fields := m.fields()
		if m.focus != fields[len(fields)-1] {
			m.moveFocus(1)
			return m, nil
		}
		return m, m.submitAuth()
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *Model) submitAuth() tea.Cmd {
	if m.state.AuthBusy {
		return nil
	}
	mode := models.AuthLogin
	if m.state.View == workflow.ViewRegister {
		mode = models.AuthRegister
	}
	creds := models.Credentials{
		Username: strings.TrimSpace(m.inputs[fieldUsername].Value()),
		Password: []byte(m.inputs[fieldPassword].Value()),
	}
	if mode == models.AuthRegister {
		creds.Email = strings.TrimSpace(m.inputs[fieldEmail].Value())
	}
	if creds.Username == "" || len(creds.Password) == 0 || (mode == models.AuthRegister && creds.Email == "") {
		m.hint = "All fields are required."
		return nil
	}

	m.hint = ""
	m.inputs[fieldPassword].Reset()
	m.state.AuthBusy = true
	return m.authenticate(mode, creds)
}

func (m *Model) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down":
		if m.cursor < len(m.state.Analyses)-1 {
			m.cursor++
		}
		return m, nil
	case "ctrl+r":
		return m, m.refresh()
	case "ctrl+x":
		return m, m.logout()
	case "esc":
		m.path.Reset()
		m.core.Dismiss(workflow.KindError)
		m.apply(m.core.Snapshot())
		return m, nil
	case "enter":
		if m.state.UploadBusy {
			return m, nil
		}
		raw := strings.TrimSpace(m.path.Value())
		if raw == "" {
			if err := m.core.Select(m.cursor); err != nil {
				m.hint = err.Error()
			}
			m.apply(m.core.Snapshot())
			return m, nil
		}
		m.path.Reset()
		m.state.UploadBusy = true
		return m, m.upload(sourceOf(raw), raw)
	}

	var cmd tea.Cmd
	m.path, cmd = m.path.Update(msg)
	return m, cmd
}

func (m *Model) updateAnalysis(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "b", "backspace", "left":
		_ = m.core.Back()
		m.apply(m.core.Snapshot())
		return m, nil
	case "ctrl+x":
		return m, m.logout()
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

// sourceOf guesses whether raw was pasted by a drag-and-drop.
func sourceOf(raw string) workflow.Source {
	switch {
	case strings.HasPrefix(raw, "file://"),
		strings.HasPrefix(raw, "'"),
		strings.HasPrefix(raw, `"`),
		strings.Contains(raw, `\ `):
		return workflow.SourceDrop
	}
	return workflow.SourceBrowse
}
