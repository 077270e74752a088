package workflow

import (
	"errors"
	"fmt"
)

// View is the active screen.
type View string

const (
	ViewLogin     View = "login"
	ViewRegister  View = "register"
	ViewDashboard View = "dashboard"
	ViewAnalysis  View = "analysis"
)

var (
	ErrIllegalTransition = errors.New("illegal view transition")
	ErrNoSelection       = errors.New("no analysis selected")
	ErrNotAuthenticated  = errors.New("not authenticated")
)

// Guard carries the facts a transition may depend on.
type Guard struct {
	Authenticated bool
	Selected      bool
}

var transitions = map[View][]View{
	ViewLogin:     {ViewRegister, ViewDashboard},
	ViewRegister:  {ViewLogin, ViewDashboard},
	ViewDashboard: {ViewAnalysis},
	ViewAnalysis:  {ViewDashboard},
}

// Router is the view state machine. It is not safe for concurrent use; App
// serializes access to it.
type Router struct {
	view View
}

// NewRouter starts in dashboard for a restored session, login otherwise.
func NewRouter(restored bool) *Router {
	if restored {
		return &Router{view: ViewDashboard}
	}
	return &Router{view: ViewLogin}
}

func (r *Router) View() View { return r.view }

// Go moves to the target view. Moving to login is always legal. A rejected
// transition leaves the view unchanged.
func (r *Router) Go(to View, g Guard) error {
	if to == ViewLogin {
		r.view = ViewLogin
		return nil
	}
	if !allowed(r.view, to) {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, r.view, to)
	}
	if (to == ViewDashboard || to == ViewAnalysis) && !g.Authenticated {
		return fmt.Errorf("%w: %s requires a session: %w", ErrIllegalTransition, to, ErrNotAuthenticated)
	}
	if to == ViewAnalysis && !g.Selected {
		return fmt.Errorf("%w: %s -> %s: %w", ErrIllegalTransition, r.view, to, ErrNoSelection)
	}
	r.view = to
	return nil
}

// Toggle flips between the login and register forms.
func (r *Router) Toggle() error {
	switch r.view {
	case ViewLogin:
		r.view = ViewRegister
	case ViewRegister:
		r.view = ViewLogin
	default:
		return fmt.Errorf("%w: cannot toggle auth mode from %s", ErrIllegalTransition, r.view)
	}
	return nil
}

func allowed(from, to View) bool {
	for _, v := range transitions[from] {
		if v == to {
			return true
		}
	}
	return false
}
