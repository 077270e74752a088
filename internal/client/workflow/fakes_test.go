package workflow

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/resumeanalyzer/internal/client/client"
	"github.com/dmitrijs2005/resumeanalyzer/internal/client/models"
)

// ---- fake clock ----

type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

type fakeTimer struct {
	c       *fakeClock
	at      time.Time
	f       func()
	stopped bool
	fired   bool
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{c: c, at: c.now.Add(d), f: f}
	c.timers = append(c.timers, t)
	return t
}

func (t *fakeTimer) Stop() bool {
	t.c.mu.Lock()
	defer t.c.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// Advance moves time forward and runs every timer that came due.
func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	var due []*fakeTimer
	for _, t := range c.timers {
		if !t.stopped && !t.fired && !t.at.After(c.now) {
			t.fired = true
			due = append(due, t)
		}
	}
	c.mu.Unlock()

	sort.Slice(due, func(i, j int) bool { return due[i].at.Before(due[j].at) })
	for _, t := range due {
		t.f()
	}
}

func (c *fakeClock) pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// ---- fake auth service ----

type fakeAuth struct {
	mu sync.Mutex

	Token   string
	LoadErr error

	Resp *client.AuthResponse
	Err  error
	Gate chan struct{}

	SaveErr   error
	SaveGate  chan struct{}
	ForgetErr error

	Calls     int
	LoadCalls int
	LastMode  models.AuthMode
	LastCreds models.Credentials
	Saved     []string
	Forgotten int
	Ops       []string
}

func (f *fakeAuth) Authenticate(ctx context.Context, mode models.AuthMode, creds models.Credentials) (*client.AuthResponse, error) {
	f.mu.Lock()
	f.Calls++
	f.LastMode = mode
	f.LastCreds = creds
	gate, resp, err := f.Gate, f.Resp, f.Err
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	return resp, err
}

func (f *fakeAuth) LoadToken(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LoadCalls++
	return f.Token, f.LoadErr
}

func (f *fakeAuth) SaveToken(ctx context.Context, token string) error {
	f.mu.Lock()
	gate := f.SaveGate
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Saved = append(f.Saved, token)
	f.Ops = append(f.Ops, "save:"+token)
	return f.SaveErr
}

func (f *fakeAuth) ForgetToken(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Forgotten++
	f.Ops = append(f.Ops, "forget")
	return f.ForgetErr
}

func (f *fakeAuth) Close(ctx context.Context) error { return nil }

func (f *fakeAuth) ops() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.Ops...)
}

// ---- fake analysis service ----

type fakeAnalyses struct {
	mu sync.Mutex

	ListRet  []models.AnalysisRecord
	ListErr  error
	ListGate chan struct{}

	UploadResp *client.UploadResponse
	UploadErr  error
	UploadGate chan struct{}

	ListTokens   []string
	UploadTokens []string
	ForgetTokens []string
	LastFile     models.ResumeFile
}

func (f *fakeAnalyses) List(ctx context.Context, token string) ([]models.AnalysisRecord, error) {
	f.mu.Lock()
	f.ListTokens = append(f.ListTokens, token)
	gate, ret, err := f.ListGate, f.ListRet, f.ListErr
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	if err != nil {
		return nil, err
	}
	out := make([]models.AnalysisRecord, len(ret))
	copy(out, ret)
	return out, nil
}

func (f *fakeAnalyses) Forget(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ForgetTokens = append(f.ForgetTokens, token)
}

func (f *fakeAnalyses) Upload(ctx context.Context, token string, file models.ResumeFile) (*client.UploadResponse, error) {
	f.mu.Lock()
	f.UploadTokens = append(f.UploadTokens, token)
	f.LastFile = file
	gate, resp, err := f.UploadGate, f.UploadResp, f.UploadErr
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	return resp, err
}

func (f *fakeAnalyses) Get(ctx context.Context, token string, id int64) (*models.AnalysisRecord, error) {
	return nil, nil
}

func (f *fakeAnalyses) listCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.ListTokens)
}

func (f *fakeAnalyses) uploadCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.UploadTokens)
}

// ---- fake backend client ----

// historyClient is a client.Client over an in-memory history. Each list
// request copies the history as it is when the request arrives; the first
// one then waits on HoldFirst.
type historyClient struct {
	mu sync.Mutex

	records   []models.AnalysisRecord
	HoldFirst chan struct{}
	Arrived   chan struct{}
	lists     int
}

func (c *historyClient) Close() error { return nil }

func (c *historyClient) Login(context.Context, models.Credentials) (*client.AuthResponse, error) {
	return nil, client.ErrUnavailable
}

func (c *historyClient) Register(context.Context, models.Credentials) (*client.AuthResponse, error) {
	return nil, client.ErrUnavailable
}

func (c *historyClient) ListAnalyses(ctx context.Context, token string) ([]models.AnalysisRecord, error) {
	c.mu.Lock()
	c.lists++
	first := c.lists == 1
	out := append([]models.AnalysisRecord(nil), c.records...)
	c.mu.Unlock()

	if first && c.HoldFirst != nil {
		close(c.Arrived)
		<-c.HoldFirst
	}
	return out, nil
}

func (c *historyClient) UploadResume(ctx context.Context, token string, file models.ResumeFile) (*client.UploadResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := int64(len(c.records) + 1)
	analysis := models.AnalysisResult(`{"overall_score":64}`)
	c.records = append([]models.AnalysisRecord{{ID: id, Filename: file.Name, Analysis: analysis}}, c.records...)
	return &client.UploadResponse{Message: "ok", AnalysisID: id, Analysis: analysis}, nil
}

func (c *historyClient) GetAnalysis(context.Context, string, int64) (*models.AnalysisRecord, error) {
	return nil, client.ErrUnavailable
}

func (c *historyClient) listCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lists
}
