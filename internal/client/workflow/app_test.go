package workflow

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/resumeanalyzer/internal/client/client"
	"github.com/dmitrijs2005/resumeanalyzer/internal/client/models"
	"github.com/dmitrijs2005/resumeanalyzer/internal/client/services"
)

type harness struct {
	app      *App
	auth     *fakeAuth
	analyses *fakeAnalyses
	clock    *fakeClock
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		auth:     &fakeAuth{},
		analyses: &fakeAnalyses{},
		clock:    newFakeClock(),
	}
	h.app = New(h.auth, h.analyses, Options{Clock: h.clock})
	t.Cleanup(h.app.Close)
	return h
}

func (h *harness) signIn(t *testing.T) {
	t.Helper()
	h.auth.Resp = &client.AuthResponse{Token: "t1", User: models.User{ID: 1, Username: "a"}, Message: "ok"}
	require.NoError(t, h.app.Initialize(context.Background()))
	require.NoError(t, h.app.Authenticate(context.Background(), models.AuthLogin, creds()))
}

func creds() models.Credentials {
	return models.Credentials{Username: "a", Password: []byte("b")}
}

func history() []models.AnalysisRecord {
	return []models.AnalysisRecord{
		{ID: 2, Filename: "new.pdf", Analysis: models.AnalysisResult(`{"overall_score":81}`)},
		{ID: 1, Filename: "old.pdf", Analysis: models.AnalysisResult(`{"overall_score":55}`)},
	}
}

func score(t *testing.T, r models.AnalysisResult) float64 {
	t.Helper()
	s, ok := r.OverallScore()
	require.True(t, ok)
	return s
}

func requireLoggedOut(t *testing.T, st State) {
	t.Helper()
	require.False(t, st.Session.Authenticated())
	require.Nil(t, st.Session.User)
	require.Empty(t, st.Analyses)
	require.True(t, st.Selected.IsZero())
	require.Equal(t, ViewLogin, st.View)
}

func TestInitialize_NoToken_StartsAtLogin(t *testing.T) {
	h := newHarness(t)

	require.False(t, h.app.Snapshot().Initialized)
	require.NoError(t, h.app.Initialize(context.Background()))

	st := h.app.Snapshot()
	require.True(t, st.Initialized)
	require.Equal(t, ViewLogin, st.View)
	require.False(t, st.Session.Authenticated())
	require.Zero(t, h.analyses.listCalls())
}

func TestInitialize_RestoredToken_DashboardAndRefresh(t *testing.T) {
	h := newHarness(t)
	h.auth.Token = "abc"
	h.analyses.ListRet = history()

	require.NoError(t, h.app.Initialize(context.Background()))

	st := h.app.Snapshot()
	require.Equal(t, ViewDashboard, st.View)
	require.Equal(t, "abc", st.Session.Token)
	require.Nil(t, st.Session.User)
	require.Equal(t, []string{"abc"}, h.analyses.ListTokens)
	require.Len(t, st.Analyses, 2)
}

func TestInitialize_ReadsTokenOnce(t *testing.T) {
	h := newHarness(t)
	h.auth.Token = "abc"

	require.NoError(t, h.app.Initialize(context.Background()))
	require.NoError(t, h.app.Initialize(context.Background()))

	require.Equal(t, 1, h.auth.LoadCalls)
	require.Equal(t, 1, h.analyses.listCalls())
}

func TestInitialize_LoadErrorStartsSignedOut(t *testing.T) {
	h := newHarness(t)
	h.auth.LoadErr = errors.New("disk")

	require.NoError(t, h.app.Initialize(context.Background()))
	require.Equal(t, ViewLogin, h.app.Snapshot().View)
}

func TestAuthenticate_BeforeInitialize(t *testing.T) {
	h := newHarness(t)
	err := h.app.Authenticate(context.Background(), models.AuthLogin, creds())
	require.ErrorIs(t, err, ErrNotInitialized)
	require.Zero(t, h.auth.Calls)
}

func TestAuthenticate_Success(t *testing.T) {
	h := newHarness(t)
	h.analyses.ListRet = history()
	h.signIn(t)

	st := h.app.Snapshot()
	require.Equal(t, "t1", st.Session.Token)
	require.Equal(t, "a", st.Session.User.Username)
	require.Equal(t, ViewDashboard, st.View)
	require.NotNil(t, st.Success)
	require.Equal(t, "ok", st.Success.Text)
	require.Nil(t, st.Error)
	require.False(t, st.AuthBusy)

	require.Equal(t, []string{"t1"}, h.analyses.ListTokens, "exactly one refresh")
	require.Equal(t, []string{"t1"}, h.auth.Saved)
	require.Len(t, st.Analyses, 2)
}

func TestAuthenticate_RegisterFromRegisterView(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.app.Initialize(context.Background()))
	require.NoError(t, h.app.ToggleAuthMode())
	require.Equal(t, ViewRegister, h.app.Snapshot().View)

	h.auth.Resp = &client.AuthResponse{Token: "t2", User: models.User{Username: "b", Email: "b@x.io"}}
	require.NoError(t, h.app.Authenticate(context.Background(), models.AuthRegister, models.Credentials{Username: "b", Email: "b@x.io", Password: []byte("p")}))

	st := h.app.Snapshot()
	require.Equal(t, ViewDashboard, st.View)
	require.Equal(t, models.AuthRegister, h.auth.LastMode)
	require.Equal(t, MsgAuthenticated, st.Success.Text)
}

func TestAuthenticate_FailuresNeverCreateSession(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.app.Initialize(context.Background()))

	failures := []error{
		&client.APIError{StatusCode: 401, Message: "Invalid credentials"},
		&client.APIError{StatusCode: 400, Message: "Username already exists"},
		fmt.Errorf("login error: %w", client.ErrUnavailable),
		client.ErrBadResponse,
	}
	wantText := []string{"Invalid credentials", "Username already exists", MsgNetworkError, MsgNetworkError}

	for i, fail := range failures {
		if i == 2 {
			require.NoError(t, h.app.ToggleAuthMode())
		}
		h.auth.Err = fail
		err := h.app.Authenticate(context.Background(), models.AuthLogin, creds())
		require.Error(t, err)

		st := h.app.Snapshot()
		require.False(t, st.Session.Authenticated())
		require.Contains(t, []View{ViewLogin, ViewRegister}, st.View)
		require.NotNil(t, st.Error)
		require.Equal(t, wantText[i], st.Error.Text)
	}
	require.Empty(t, h.auth.Saved)
	require.Zero(t, h.analyses.listCalls())
}

func TestAuthenticate_ClearsErrorWhileInFlight(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.app.Initialize(context.Background()))

	h.auth.Err = &client.APIError{StatusCode: 401, Message: "Invalid credentials"}
	_ = h.app.Authenticate(context.Background(), models.AuthLogin, creds())
	require.NotNil(t, h.app.Snapshot().Error)

	gate := make(chan struct{})
	h.auth.Gate = gate
	h.auth.Err = nil
	h.auth.Resp = &client.AuthResponse{Token: "t1", User: models.User{Username: "a"}, Message: "ok"}

	done := make(chan error, 1)
	go func() { done <- h.app.Authenticate(context.Background(), models.AuthLogin, creds()) }()

	require.Eventually(t, func() bool {
		st := h.app.Snapshot()
		return st.AuthBusy && st.Error == nil
	}, time.Second, time.Millisecond)

	close(gate)
	require.NoError(t, <-done)
	require.False(t, h.app.Snapshot().AuthBusy)
}

func TestAuthenticate_FromDashboardIsIllegal(t *testing.T) {
	h := newHarness(t)
	h.signIn(t)

	err := h.app.Authenticate(context.Background(), models.AuthLogin, creds())
	require.ErrorIs(t, err, ErrIllegalTransition)
	require.Equal(t, 1, h.auth.Calls)
}

func TestLogout_FromEveryState(t *testing.T) {
	setups := map[string]func(t *testing.T, h *harness){
		"fresh": func(t *testing.T, h *harness) {},
		"login": func(t *testing.T, h *harness) {
			require.NoError(t, h.app.Initialize(context.Background()))
		},
		"register": func(t *testing.T, h *harness) {
			require.NoError(t, h.app.Initialize(context.Background()))
			require.NoError(t, h.app.ToggleAuthMode())
		},
		"dashboard": func(t *testing.T, h *harness) { h.signIn(t) },
		"analysis": func(t *testing.T, h *harness) {
			h.signIn(t)
			require.NoError(t, h.app.Select(0))
		},
	}
	for name, setup := range setups {
		t.Run(name, func(t *testing.T) {
			h := newHarness(t)
			h.analyses.ListRet = history()
			setup(t, h)

			h.app.Logout(context.Background())

			requireLoggedOut(t, h.app.Snapshot())
			require.Equal(t, 1, h.auth.Forgotten)
		})
	}
}

func TestAuthenticate_TokenSavedOutsideStateLock(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.app.Initialize(context.Background()))
	gate := make(chan struct{})
	h.auth.SaveGate = gate
	h.auth.Resp = &client.AuthResponse{Token: "t1", User: models.User{ID: 1, Username: "a"}}

	authDone := make(chan error, 1)
	go func() { authDone <- h.app.Authenticate(context.Background(), models.AuthLogin, creds()) }()
	require.Eventually(t, func() bool {
		return h.app.Snapshot().View == ViewDashboard
	}, time.Second, time.Millisecond, "snapshot must not wait for the token write")

	logoutDone := make(chan struct{})
	go func() {
		h.app.Logout(context.Background())
		close(logoutDone)
	}()
	require.Eventually(t, func() bool {
		return h.app.Snapshot().View == ViewLogin
	}, time.Second, time.Millisecond)

	close(gate)
	require.NoError(t, <-authDone)
	<-logoutDone

	require.Equal(t, []string{"save:t1", "forget"}, h.auth.ops(), "the logout is persisted last")
	requireLoggedOut(t, h.app.Snapshot())
}

func TestPersistToken_SkipsReplacedSession(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.app.Initialize(context.Background()))

	h.app.mu.Lock()
	h.app.epoch++
	stale := h.app.epoch - 1
	h.app.mu.Unlock()

	h.app.persistToken(context.Background(), stale, "old")
	require.Empty(t, h.auth.ops())

	h.app.persistToken(context.Background(), stale+1, "")
	require.Equal(t, []string{"forget"}, h.auth.ops())
}

func TestLogout_ForgetErrorIsNotSurfaced(t *testing.T) {
	h := newHarness(t)
	h.signIn(t)
	h.auth.ForgetErr = errors.New("disk full")

	h.app.Logout(context.Background())
	st := h.app.Snapshot()
	requireLoggedOut(t, st)
	require.Equal(t, "ok", st.Success.Text)
	require.Nil(t, st.Error)
}

func TestUpload_Success(t *testing.T) {
	h := newHarness(t)
	h.signIn(t)
	h.analyses.UploadResp = &client.UploadResponse{
		Message:    "Resume analyzed successfully",
		AnalysisID: 3,
		Analysis:   models.AnalysisResult(`{"overall_score":42,"skills":{}}`),
	}
	h.analyses.ListRet = history()

	err := h.app.Upload(context.Background(), models.ResumeFile{Name: "cv.pdf", Content: strings.NewReader("%PDF")})
	require.NoError(t, err)

	st := h.app.Snapshot()
	require.Equal(t, ViewAnalysis, st.View)
	require.Equal(t, 42.0, score(t, st.Selected))
	require.Equal(t, "cv.pdf", st.SelectedName)
	require.Equal(t, MsgUploadSuccess, st.Success.Text)
	require.False(t, st.UploadBusy)
	require.Equal(t, []string{"t1"}, h.analyses.UploadTokens)
	require.Equal(t, 2, h.analyses.listCalls(), "one refresh after login, one after upload")
	require.Equal(t, []string{"t1"}, h.analyses.ForgetTokens, "the post-upload refresh is not coalesced")
	require.Len(t, st.Analyses, 2)
}

func TestUpload_RefreshSeesRecordDespiteHeldRestoreRefresh(t *testing.T) {
	backend := &historyClient{HoldFirst: make(chan struct{}), Arrived: make(chan struct{})}
	auth := &fakeAuth{Token: "persisted"}
	app := New(auth, services.NewAnalysisService(backend), Options{Clock: newFakeClock()})
	t.Cleanup(app.Close)

	initDone := make(chan error, 1)
	go func() { initDone <- app.Initialize(context.Background()) }()
	select {
	case <-backend.Arrived:
	case <-time.After(time.Second):
		t.Fatal("restore refresh never reached the backend")
	}

	err := app.Upload(context.Background(), models.ResumeFile{Name: "cv.pdf", Content: strings.NewReader("%PDF")})
	require.NoError(t, err)
	require.Equal(t, 2, backend.listCount(), "the post-upload refresh sends its own request")

	st := app.Snapshot()
	require.Len(t, st.Analyses, 1)
	require.Equal(t, "cv.pdf", st.Analyses[0].Filename)

	close(backend.HoldFirst)
	require.NoError(t, <-initDone)

	st = app.Snapshot()
	require.Len(t, st.Analyses, 1, "the older, empty list must not replace the newer one")
	require.Equal(t, ViewAnalysis, st.View)
}

func TestUpload_FailureKeepsViewAndSelection(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"server message", &client.APIError{StatusCode: 400, Message: "Invalid file type. Please upload PDF or DOCX files."}, "Invalid file type. Please upload PDF or DOCX files."},
		{"auth rejected", &client.APIError{StatusCode: 401, Message: "Token is invalid"}, "Token is invalid"},
		{"transport", fmt.Errorf("upload cv.pdf: %w", client.ErrUnavailable), MsgUploadFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, start := range []View{ViewDashboard, ViewAnalysis} {
				h := newHarness(t)
				h.analyses.ListRet = history()
				h.signIn(t)
				if start == ViewAnalysis {
					require.NoError(t, h.app.Select(1))
				}
				before := h.app.Snapshot()
				calls := h.analyses.listCalls()

				h.analyses.UploadErr = tt.err
				err := h.app.Upload(context.Background(), models.ResumeFile{Name: "cv.txt"})
				require.Error(t, err)

				st := h.app.Snapshot()
				require.Equal(t, start, st.View)
				require.Equal(t, before.Selected, st.Selected)
				require.Equal(t, tt.want, st.Error.Text)
				require.Equal(t, "t1", st.Session.Token)
				require.Equal(t, calls, h.analyses.listCalls(), "no refresh after a failed upload")
			}
		})
	}
}

func TestUpload_RequiresSession(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.app.Initialize(context.Background()))

	err := h.app.Upload(context.Background(), models.ResumeFile{Name: "cv.pdf"})
	require.ErrorIs(t, err, ErrNotAuthenticated)
	require.Zero(t, h.analyses.uploadCalls())
}

func TestUpload_StaleAfterLogoutIsDropped(t *testing.T) {
	h := newHarness(t)
	h.signIn(t)

	gate := make(chan struct{})
	h.analyses.UploadGate = gate
	h.analyses.UploadResp = &client.UploadResponse{Analysis: models.AnalysisResult(`{"overall_score":99}`)}

	done := make(chan error, 1)
	go func() { done <- h.app.Upload(context.Background(), models.ResumeFile{Name: "cv.pdf"}) }()
	require.Eventually(t, func() bool { return h.analyses.uploadCalls() == 1 }, time.Second, time.Millisecond)

	h.app.Logout(context.Background())
	listCalls := h.analyses.listCalls()
	close(gate)
	require.NoError(t, <-done)

	st := h.app.Snapshot()
	requireLoggedOut(t, st)
	require.False(t, st.UploadBusy)
	require.Equal(t, "ok", st.Success.Text)
	require.Equal(t, listCalls, h.analyses.listCalls())
}

func TestUpload_StaleAfterReloginIsDropped(t *testing.T) {
	h := newHarness(t)
	h.signIn(t)

	gate := make(chan struct{})
	h.analyses.UploadGate = gate
	h.analyses.UploadResp = &client.UploadResponse{Analysis: models.AnalysisResult(`{"overall_score":99}`)}

	done := make(chan error, 1)
	go func() { done <- h.app.Upload(context.Background(), models.ResumeFile{Name: "cv.pdf"}) }()
	require.Eventually(t, func() bool { return h.analyses.uploadCalls() == 1 }, time.Second, time.Millisecond)

	h.app.Logout(context.Background())
	h.auth.Resp = &client.AuthResponse{Token: "t1", User: models.User{Username: "a"}, Message: "again"}
	require.NoError(t, h.app.Authenticate(context.Background(), models.AuthLogin, creds()))
	close(gate)
	require.NoError(t, <-done)

	st := h.app.Snapshot()
	require.Equal(t, ViewDashboard, st.View, "same token, new session: old upload must not apply")
	require.True(t, st.Selected.IsZero())
}

func TestRefresh_WithoutSessionIsNoop(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.app.Refresh(context.Background()))
	require.NoError(t, h.app.Initialize(context.Background()))
	require.NoError(t, h.app.Refresh(context.Background()))
	require.Zero(t, h.analyses.listCalls())
}

func TestRefresh_IsIdempotent(t *testing.T) {
	h := newHarness(t)
	h.analyses.ListRet = history()
	h.signIn(t)

	require.NoError(t, h.app.Refresh(context.Background()))
	first := h.app.Snapshot().Analyses
	require.NoError(t, h.app.Refresh(context.Background()))
	second := h.app.Snapshot().Analyses

	require.Equal(t, first, second)
	require.Equal(t, "new.pdf", second[0].Filename, "server order is kept")
}

func TestRefresh_FailureKeepsCacheQuietly(t *testing.T) {
	h := newHarness(t)
	h.analyses.ListRet = history()
	h.signIn(t)
	h.app.Dismiss(KindSuccess)

	h.analyses.ListErr = fmt.Errorf("list analyses: %w", client.ErrUnavailable)
	require.Error(t, h.app.Refresh(context.Background()))

	st := h.app.Snapshot()
	require.Len(t, st.Analyses, 2)
	require.Nil(t, st.Error)
	require.Nil(t, st.Success)
	require.Equal(t, ViewDashboard, st.View)
}

func TestRefresh_UnauthorizedLogsOut(t *testing.T) {
	h := newHarness(t)
	h.auth.Token = "abc"
	h.analyses.ListErr = fmt.Errorf("list analyses: %w", &client.APIError{StatusCode: 401, Message: "Token is invalid"})

	require.NoError(t, h.app.Initialize(context.Background()))

	st := h.app.Snapshot()
	requireLoggedOut(t, st)
	require.Equal(t, MsgSessionExpired, st.Error.Text)
	require.Equal(t, 1, h.auth.Forgotten)
}

func TestRefresh_StaleResultIsDropped(t *testing.T) {
	h := newHarness(t)
	h.signIn(t)

	gate := make(chan struct{})
	h.analyses.ListGate = gate
	h.analyses.ListRet = history()

	done := make(chan error, 1)
	go func() { done <- h.app.Refresh(context.Background()) }()
	require.Eventually(t, func() bool { return h.analyses.listCalls() == 2 }, time.Second, time.Millisecond)

	h.app.Logout(context.Background())
	close(gate)
	require.NoError(t, <-done)
	require.Empty(t, h.app.Snapshot().Analyses)
}

func TestSelect_AndBack(t *testing.T) {
	h := newHarness(t)
	h.analyses.ListRet = history()
	h.signIn(t)

	require.ErrorIs(t, h.app.Select(5), ErrNoSelection)
	require.ErrorIs(t, h.app.Back(), ErrIllegalTransition)

	require.NoError(t, h.app.Select(1))
	st := h.app.Snapshot()
	require.Equal(t, ViewAnalysis, st.View)
	require.Equal(t, 55.0, score(t, st.Selected))
	require.Equal(t, "old.pdf", st.SelectedName)

	require.ErrorIs(t, h.app.Select(0), ErrIllegalTransition)

	require.NoError(t, h.app.Back())
	require.Equal(t, ViewDashboard, h.app.Snapshot().View)

	require.NoError(t, h.app.SelectID(2))
	require.Equal(t, 81.0, score(t, h.app.Snapshot().Selected))
	require.NoError(t, h.app.Back())
	require.ErrorIs(t, h.app.SelectID(42), ErrNoSelection)
	require.Equal(t, 2, h.analyses.listCalls(), "entering analysis never fetches")
}

func TestSelect_CopyIsIndependent(t *testing.T) {
	h := newHarness(t)
	h.analyses.ListRet = history()
	h.signIn(t)
	require.NoError(t, h.app.Select(0))

	st := h.app.Snapshot()
	st.Selected[0] = 'X'
	st.Analyses[0].Analysis[0] = 'X'

	again := h.app.Snapshot()
	require.Equal(t, `{"overall_score":81}`, string(again.Selected))
	require.Equal(t, `{"overall_score":81}`, string(again.Analyses[0].Analysis))
}

func TestToggleAuthMode_OnlyFromAuthViews(t *testing.T) {
	h := newHarness(t)
	h.signIn(t)
	require.ErrorIs(t, h.app.ToggleAuthMode(), ErrIllegalTransition)
	require.Equal(t, ViewDashboard, h.app.Snapshot().View)
}

func TestNotifications_ExpireAfterFourSeconds(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.app.Initialize(context.Background()))

	h.auth.Err = &client.APIError{StatusCode: 401, Message: "Invalid credentials"}
	_ = h.app.Authenticate(context.Background(), models.AuthLogin, creds())
	require.NotNil(t, h.app.Snapshot().Error)

	h.clock.Advance(4 * time.Second)
	require.Nil(t, h.app.Snapshot().Error)
}

func TestNotifications_DismissEarly(t *testing.T) {
	h := newHarness(t)
	h.signIn(t)
	require.NotNil(t, h.app.Snapshot().Success)

	h.app.Dismiss(KindSuccess)
	require.Nil(t, h.app.Snapshot().Success)
	require.Zero(t, h.clock.pending())
}

func TestSubscribe_DeliversLatestState(t *testing.T) {
	h := newHarness(t)
	ch, cancel := h.app.Subscribe()
	defer cancel()

	require.NoError(t, h.app.Initialize(context.Background()))
	st := <-ch
	require.True(t, st.Initialized)

	h.auth.Resp = &client.AuthResponse{Token: "t1", User: models.User{Username: "a"}, Message: "ok"}
	require.NoError(t, h.app.Authenticate(context.Background(), models.AuthLogin, creds()))

	// several changes happened; a slow reader sees only the newest
	st = <-ch
	require.Equal(t, ViewDashboard, st.View)
	select {
	case extra := <-ch:
		t.Fatalf("unexpected extra state: %+v", extra.View)
	default:
	}

	h.clock.Advance(4 * time.Second)
	st = <-ch
	require.Nil(t, st.Success)
}

func TestSubscribe_CancelAndClose(t *testing.T) {
	h := newHarness(t)
	ch, cancel := h.app.Subscribe()
	cancel()
	cancel()
	_, ok := <-ch
	require.False(t, ok)

	ch2, _ := h.app.Subscribe()
	h.app.Close()
	_, ok = <-ch2
	require.False(t, ok)

	ch3, _ := h.app.Subscribe()
	_, ok = <-ch3
	require.False(t, ok)
}

func TestUploadPath_DropAdapter(t *testing.T) {
	h := newHarness(t)
	h.signIn(t)
	h.analyses.UploadResp = &client.UploadResponse{Analysis: models.AnalysisResult(`{"overall_score":42}`)}

	dir := t.TempDir()
	p := filepath.Join(dir, "My CV.pdf")
	require.NoError(t, os.WriteFile(p, []byte("%PDF"), 0o600))

	require.NoError(t, h.app.UploadPath(context.Background(), SourceDrop, "'"+p+"' "))
	require.Equal(t, p, h.analyses.LastFile.Name)
	require.Equal(t, ViewAnalysis, h.app.Snapshot().View)
}

func TestUploadPath_UnreadableFileNeverUploads(t *testing.T) {
	h := newHarness(t)
	h.signIn(t)

	err := h.app.UploadPath(context.Background(), SourceBrowse, filepath.Join(t.TempDir(), "missing.pdf"))
	require.ErrorIs(t, err, os.ErrNotExist)

	st := h.app.Snapshot()
	require.Zero(t, h.analyses.uploadCalls())
	require.Equal(t, ViewDashboard, st.View)
	require.True(t, strings.HasPrefix(st.Error.Text, "Cannot read file:"))

	require.Error(t, h.app.UploadPath(context.Background(), SourceDrop, "   "))
}

func TestUploadPath_RequiresSession(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.app.Initialize(context.Background()))
	require.ErrorIs(t, h.app.UploadPath(context.Background(), SourceBrowse, "/tmp/x.pdf"), ErrNotAuthenticated)
}
