package cli

import (
	"github.com/fatih/color"

	"github.com/dmitrijs2005/resumeanalyzer/internal/client/workflow"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	successColor = color.New(color.FgGreen)
)

// notify prints notifications that appeared since the last call. Expired or
// dismissed ones are simply not printed again.
func (a *App) notify() {
	st := a.core.Snapshot()
	a.render(st.Error, errorColor)
	a.render(st.Success, successColor)
}

func (a *App) render(n *workflow.Notification, c *color.Color) {
	if n == nil || a.shown[n.Kind] == n.ID {
		return
	}
	a.shown[n.Kind] = n.ID
	c.Fprintln(a.out, n.Text)
}
