package workflow

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/dmitrijs2005/resumeanalyzer/internal/client/client"
	"github.com/dmitrijs2005/resumeanalyzer/internal/client/models"
	"github.com/dmitrijs2005/resumeanalyzer/internal/client/services"
	"github.com/dmitrijs2005/resumeanalyzer/internal/logging"
)

// User-facing notification texts.
const (
	MsgNetworkError   = "Network error occurred"
	MsgUploadSuccess  = "Resume analyzed successfully!"
	MsgUploadFailed   = "Failed to upload resume"
	MsgSessionExpired = "Session expired, please sign in again"
	MsgAuthenticated  = "Signed in"
)

var ErrNotInitialized = errors.New("client not initialized")

// State is an immutable copy of everything a front end renders.
type State struct {
	Initialized  bool
	View         View
	Session      models.Session
	Analyses     []models.AnalysisRecord
	Selected     models.AnalysisResult
	SelectedName string
	AuthBusy     bool
	UploadBusy   bool
	Error        *Notification
	Success      *Notification
}

// Options tune an App. Zero values select defaults.
type Options struct {
	NotifyTimeout time.Duration
	Clock         Clock
	Logger        logging.Logger
}

type App struct {
	auth     services.AuthService
	analyses services.AnalysisService
	log      logging.Logger
	notes    *Center

	mu          sync.Mutex
	router      *Router
	initialized bool
	session     models.Session
	epoch       uint64
	refreshSeq  uint64
	records     []models.AnalysisRecord
	selected    models.AnalysisResult
	selName     string
	authBusy    int
	uploadBusy  int

	// persistMu orders token writes; taken before mu.
	persistMu sync.Mutex

	subsMu sync.Mutex
	subs   map[int]chan State
	nextID int
	closed bool
}

func New(auth services.AuthService, analyses services.AnalysisService, opts Options) *App {
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}
	a := &App{
		auth:     auth,
		analyses: analyses,
		log:      log.With("component", "workflow"),
		router:   NewRouter(false),
		subs:     map[int]chan State{},
	}
	a.notes = NewCenter(opts.Clock, opts.NotifyTimeout, func(Kind) { a.publish() })
	return a
}

// Initialize reads the persisted token once. A restored session starts in
// the dashboard and its history is fetched before Initialize returns.
// Later calls are no-ops.
func (a *App) Initialize(ctx context.Context) error {
	a.mu.Lock()
	if a.initialized {
		a.mu.Unlock()
		return nil
	}
	a.mu.Unlock()

	token, err := a.auth.LoadToken(ctx)
	if err != nil {
		a.log.Warn(ctx, "persisted token unreadable, starting signed out", "error", err)
		token = ""
	}

	a.mu.Lock()
	if a.initialized {
		a.mu.Unlock()
		return nil
	}
	if token != "" {
		a.session = models.Session{Token: token}
		a.epoch++
	}
	a.router = NewRouter(token != "")
	a.initialized = true
	epoch := a.epoch
	a.mu.Unlock()
	a.publish()

	a.log.Info(ctx, "client initialized", "restored", token != "")
	if token != "" {
		_ = a.refresh(ctx, epoch, token, false)
	}
	return nil
}

// Authenticate logs in or registers. On success the session is stored and
// persisted, the view moves to dashboard and history is fetched once. On
// failure the server message (or a generic network error) is shown and the
// session is left as it was.
func (a *App) Authenticate(ctx context.Context, mode models.AuthMode, creds models.Credentials) error {
	a.mu.Lock()
	if !a.initialized {
		a.mu.Unlock()
		return ErrNotInitialized
	}
	if v := a.router.View(); v != ViewLogin && v != ViewRegister {
		a.mu.Unlock()
		return fmt.Errorf("%w: authenticate from %s", ErrIllegalTransition, v)
	}
	a.authBusy++
	a.notes.Dismiss(KindError)
	epoch := a.epoch
	a.mu.Unlock()
	a.publish()

	resp, err := a.auth.Authenticate(ctx, mode, creds)

	a.mu.Lock()
	a.authBusy--
	if a.epoch != epoch {
		a.mu.Unlock()
		a.publish()
		a.log.Debug(ctx, "dropping stale authenticate result", "mode", mode)
		return nil
	}
	if err != nil {
		a.notes.Show(KindError, userMessage(err, MsgNetworkError))
		a.mu.Unlock()
		a.publish()
		a.log.Info(ctx, "authentication failed", "mode", mode, "error", err)
		return err
	}

	user := resp.User
	a.session = models.Session{Token: resp.Token, User: &user}
	a.epoch++
	epoch = a.epoch
	if err := a.router.Go(ViewDashboard, a.guard()); err != nil {
		// unreachable: the view was checked above under the same lock
		a.log.Error(ctx, "router rejected dashboard", "error", err)
	}
	msg := resp.Message
	if msg == "" {
		msg = MsgAuthenticated
	}
	a.notes.Show(KindSuccess, msg)
	a.mu.Unlock()
	a.publish()

	a.persistToken(ctx, epoch, resp.Token)
	a.log.Info(ctx, "authenticated", "mode", mode, "user", user.Username)
	_ = a.refresh(ctx, epoch, resp.Token, false)
	return nil
}

// Logout clears the session, the persisted token, the history and the
// selection, and returns to the login view. It never fails.
func (a *App) Logout(ctx context.Context) {
	a.mu.Lock()
	epoch := a.logoutLocked()
	a.mu.Unlock()
	a.publish()
	a.persistToken(ctx, epoch, "")
	a.log.Info(ctx, "logged out")
}

// logoutLocked clears the in-memory session and returns the new epoch. The
// caller removes the persisted token after releasing mu.
func (a *App) logoutLocked() uint64 {
	a.session = models.Session{}
	a.epoch++
	a.records = nil
	a.selected = nil
	a.selName = ""
	_ = a.router.Go(ViewLogin, Guard{})
	return a.epoch
}

// persistToken saves token, or removes the stored one when token is empty,
// as long as epoch is still current. A login or logout that moved the
// session on persists its own state after this call returns.
func (a *App) persistToken(ctx context.Context, epoch uint64, token string) {
	a.persistMu.Lock()
	defer a.persistMu.Unlock()

	a.mu.Lock()
	current := a.epoch == epoch
	a.mu.Unlock()
	if !current {
		a.log.Debug(ctx, "skipping token persistence for a replaced session")
		return
	}

	if token == "" {
		if err := a.auth.ForgetToken(ctx); err != nil {
			a.log.Error(ctx, "forget persisted token", "error", err)
		}
		return
	}
	if err := a.auth.SaveToken(ctx, token); err != nil {
		a.log.Error(ctx, "persist token", "error", err)
	}
}

// Refresh replaces the cached history with the server's. Without a session
// it does nothing. Errors are logged and the previous history is kept; an
// auth rejection for the current session logs it out.
func (a *App) Refresh(ctx context.Context) error {
	a.mu.Lock()
	if !a.initialized || !a.session.Authenticated() {
		a.mu.Unlock()
		return nil
	}
	epoch, token := a.epoch, a.session.Token
	a.mu.Unlock()

	return a.refresh(ctx, epoch, token, false)
}

// refresh fetches the history for the session identified by epoch and
// token. Only the most recently issued refresh may replace the collection.
// A fresh refresh never joins a list request already in flight, so it sees
// changes made after that request was sent.
func (a *App) refresh(ctx context.Context, epoch uint64, token string, fresh bool) error {
	a.mu.Lock()
	a.refreshSeq++
	seq := a.refreshSeq
	a.mu.Unlock()

	if fresh {
		a.analyses.Forget(token)
	}
	recs, err := a.analyses.List(ctx, token)

	a.mu.Lock()
	if !a.currentLocked(epoch, token) || seq != a.refreshSeq {
		a.mu.Unlock()
		a.log.Debug(ctx, "dropping stale analyses list", "seq", seq)
		return nil
	}
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			loggedOut := a.logoutLocked()
			a.notes.Show(KindError, MsgSessionExpired)
			a.mu.Unlock()
			a.publish()
			a.persistToken(ctx, loggedOut, "")
			a.log.Warn(ctx, "session rejected by server", "error", err)
			return err
		}
		a.mu.Unlock()
		a.log.Warn(ctx, "refresh analyses failed, keeping cached list", "error", err)
		return err
	}
	a.records = recs
	n := len(recs)
	a.mu.Unlock()
	a.publish()

	a.log.Debug(ctx, "analyses refreshed", "count", n)
	return nil
}

// Upload sends a resume. On success the returned analysis becomes the
// selection, the view moves to analysis and history is refreshed. On
// failure an error is shown and neither the view nor the selection change.
// Overlapping uploads are allowed; the last to resolve wins.
func (a *App) Upload(ctx context.Context, file models.ResumeFile) error {
	a.mu.Lock()
	if !a.session.Authenticated() {
		a.mu.Unlock()
		return ErrNotAuthenticated
	}
	a.uploadBusy++
	a.notes.Dismiss(KindError)
	epoch, token := a.epoch, a.session.Token
	a.mu.Unlock()
	a.publish()

	resp, err := a.analyses.Upload(ctx, token, file)

	a.mu.Lock()
	a.uploadBusy--
	if !a.currentLocked(epoch, token) {
		a.mu.Unlock()
		a.publish()
		a.log.Debug(ctx, "dropping stale upload result", "file", file.Name)
		return nil
	}
	if err != nil {
		a.notes.Show(KindError, userMessage(err, MsgUploadFailed))
		a.mu.Unlock()
		a.publish()
		a.log.Info(ctx, "upload failed", "file", file.Name, "error", err)
		return err
	}

	a.selected = resp.Analysis.Clone()
	a.selName = filepath.Base(file.Name)
	if a.router.View() != ViewAnalysis {
		if err := a.router.Go(ViewAnalysis, a.guard()); err != nil {
			a.log.Error(ctx, "router rejected analysis", "error", err)
		}
	}
	a.notes.Show(KindSuccess, MsgUploadSuccess)
	a.mu.Unlock()
	a.publish()

	a.log.Info(ctx, "resume analyzed", "file", file.Name, "analysis_id", resp.AnalysisID)
	_ = a.refresh(ctx, epoch, token, true)
	return nil
}

// Select opens the history entry at index (0-based) in the analysis view.
func (a *App) Select(index int) error {
	a.mu.Lock()
	if index < 0 || index >= len(a.records) {
		a.mu.Unlock()
		return fmt.Errorf("%w: no entry #%d", ErrNoSelection, index+1)
	}
	err := a.selectLocked(a.records[index])
	a.mu.Unlock()
	if err == nil {
		a.publish()
	}
	return err
}

// SelectID opens the history entry with the given analysis id.
func (a *App) SelectID(id int64) error {
	a.mu.Lock()
	for _, r := range a.records {
		if r.ID == id {
			err := a.selectLocked(r)
			a.mu.Unlock()
			if err == nil {
				a.publish()
			}
			return err
		}
	}
	a.mu.Unlock()
	return fmt.Errorf("%w: no analysis with id %d", ErrNoSelection, id)
}

func (a *App) selectLocked(r models.AnalysisRecord) error {
	if !a.session.Authenticated() {
		return ErrNotAuthenticated
	}
	if a.router.View() != ViewDashboard {
		return fmt.Errorf("%w: select from %s", ErrIllegalTransition, a.router.View())
	}
	prev, prevName := a.selected, a.selName
	a.selected, a.selName = r.Analysis.Clone(), r.Filename
	if err := a.router.Go(ViewAnalysis, a.guard()); err != nil {
		a.selected, a.selName = prev, prevName
		return err
	}
	return nil
}

// Back returns from the analysis view to the dashboard.
func (a *App) Back() error {
	a.mu.Lock()
	if a.router.View() != ViewAnalysis {
		v := a.router.View()
		a.mu.Unlock()
		return fmt.Errorf("%w: back from %s", ErrIllegalTransition, v)
	}
	err := a.router.Go(ViewDashboard, a.guard())
	a.mu.Unlock()
	if err == nil {
		a.publish()
	}
	return err
}

// ToggleAuthMode switches between the login and register forms.
func (a *App) ToggleAuthMode() error {
	a.mu.Lock()
	err := a.router.Toggle()
	a.mu.Unlock()
	if err == nil {
		a.publish()
	}
	return err
}

// Dismiss hides the notification of that kind before it expires.
func (a *App) Dismiss(kind Kind) {
	if a.notes.Dismiss(kind) {
		a.publish()
	}
}

// Snapshot returns a copy of the current state.
func (a *App) Snapshot() State {
	a.mu.Lock()
	st := State{
		Initialized:  a.initialized,
		View:         a.router.View(),
		Session:      a.session,
		Selected:     a.selected.Clone(),
		SelectedName: a.selName,
		AuthBusy:     a.authBusy > 0,
		UploadBusy:   a.uploadBusy > 0,
	}
	if a.session.User != nil {
		u := *a.session.User
		st.Session.User = &u
	}
	if a.records != nil {
		st.Analyses = make([]models.AnalysisRecord, len(a.records))
		for i, r := range a.records {
			r.Analysis = r.Analysis.Clone()
			st.Analyses[i] = r
		}
	}
	a.mu.Unlock()

	if n, ok := a.notes.Current(KindError); ok {
		st.Error = &n
	}
	if n, ok := a.notes.Current(KindSuccess); ok {
		st.Success = &n
	}
	return st
}

// Subscribe returns a channel receiving a fresh State after every change.
// A slow reader only ever sees the latest state. Call cancel to stop.
func (a *App) Subscribe() (<-chan State, func()) {
	ch := make(chan State, 1)

	a.subsMu.Lock()
	defer a.subsMu.Unlock()
	if a.closed {
		close(ch)
		return ch, func() {}
	}
	id := a.nextID
	a.nextID++
	a.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			a.subsMu.Lock()
			defer a.subsMu.Unlock()
			if c, ok := a.subs[id]; ok {
				delete(a.subs, id)
				close(c)
			}
		})
	}
}

// Close stops notification timers and ends all subscriptions.
func (a *App) Close() {
	a.notes.Stop()

	a.subsMu.Lock()
	defer a.subsMu.Unlock()
	a.closed = true
	for id, ch := range a.subs {
		delete(a.subs, id)
		close(ch)
	}
}

func (a *App) publish() {
	a.subsMu.Lock()
	defer a.subsMu.Unlock()
	if len(a.subs) == 0 {
		return
	}
	st := a.Snapshot()
	for _, ch := range a.subs {
		select {
		case ch <- st:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- st
		}
	}
}

func (a *App) guard() Guard {
	return Guard{Authenticated: a.session.Authenticated(), Selected: !a.selected.IsZero()}
}

// currentLocked reports whether a result captured at (epoch, token) still
// belongs to the live session.
func (a *App) currentLocked(epoch uint64, token string) bool {
	return a.epoch == epoch && a.session.Token == token && token != ""
}

func userMessage(err error, fallback string) string {
	if msg, ok := client.ServerMessage(err); ok && msg != "" {
		return msg
	}
	return fallback
}
