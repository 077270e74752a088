package cli

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/resumeanalyzer/internal/client/client"
	"github.com/dmitrijs2005/resumeanalyzer/internal/client/models"
	"github.com/dmitrijs2005/resumeanalyzer/internal/client/workflow"
)

type fakeAuth struct {
	mu sync.Mutex

	Token     string
	AuthResp  *client.AuthResponse
	AuthErr   error
	Calls     int
	LastMode  models.AuthMode
	LastCreds models.Credentials
	Saved     []string
	Forgotten int
}

func (f *fakeAuth) Authenticate(_ context.Context, mode models.AuthMode, creds models.Credentials) (*client.AuthResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls++
	f.LastMode = mode
	f.LastCreds = creds
	f.LastCreds.Password = append([]byte(nil), creds.Password...)
	if f.AuthErr != nil {
		return nil, f.AuthErr
	}
	return f.AuthResp, nil
}

func (f *fakeAuth) LoadToken(context.Context) (string, error) { return f.Token, nil }

func (f *fakeAuth) SaveToken(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Saved = append(f.Saved, token)
	return nil
}

func (f *fakeAuth) ForgetToken(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Forgotten++
	return nil
}

func (f *fakeAuth) Close(context.Context) error { return nil }

type fakeAnalyses struct {
	mu sync.Mutex

	ListRet     []models.AnalysisRecord
	ListErr     error
	UploadResp  *client.UploadResponse
	UploadErr   error
	LastFile    string
	LastContent string
}

func (f *fakeAnalyses) List(context.Context, string) ([]models.AnalysisRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	out := make([]models.AnalysisRecord, len(f.ListRet))
	copy(out, f.ListRet)
	return out, nil
}

func (f *fakeAnalyses) Upload(_ context.Context, _ string, file models.ResumeFile) (*client.UploadResponse, error) {
	body, err := io.ReadAll(file.Content)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastFile = file.Name
	f.LastContent = string(body)
	if f.UploadErr != nil {
		return nil, f.UploadErr
	}
	return f.UploadResp, nil
}

func (f *fakeAnalyses) Forget(string) {}

func (f *fakeAnalyses) Get(context.Context, string, int64) (*models.AnalysisRecord, error) {
	return nil, client.ErrUnavailable
}

const uploadedPayload = `{
  "overall_score": 72,
  "readability_score": 51,
  "skills": {"programming_languages": ["go", "python"], "total_count": 2},
  "experience_analysis": {"action_words": ["built"], "action_words_count": 1, "quantifiable_achievements": 1},
  "missing_sections": ["summary"],
  "word_frequency": {"go": 4},
  "recommendations": ["Add a summary section at the top of your resume."]
}`

func history() []models.AnalysisRecord {
	return []models.AnalysisRecord{
		{
			ID:        2,
			Filename:  "new.pdf",
			CreatedAt: models.Timestamp{Time: time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)},
			Analysis:  models.AnalysisResult(`{"overall_score":85}`),
		},
		{
			ID:        1,
			Filename:  "old.pdf",
			CreatedAt: models.Timestamp{Time: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)},
			Analysis:  models.AnalysisResult(`{"overall_score":55}`),
		},
	}
}

type harness struct {
	auth     *fakeAuth
	analyses *fakeAnalyses
	core     *workflow.App
	out      *bytes.Buffer
	password []byte
}

// newHarness wires a real workflow.App over fakes and captures all output.
// The password prompt is stubbed; other prompts read from the script.
func newHarness(t *testing.T, token string) *harness {
	t.Helper()

	origNoColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = origNoColor })

	h := &harness{
		auth: &fakeAuth{
			Token: token,
			AuthResp: &client.AuthResponse{
				Token:   "t1",
				User:    models.User{ID: 1, Username: "alice"},
				Message: "Login successful",
			},
		},
		analyses: &fakeAnalyses{ListRet: history()},
		out:      &bytes.Buffer{},
		password: []byte("secret"),
	}
	h.core = workflow.New(h.auth, h.analyses, workflow.Options{NotifyTimeout: time.Minute})
	t.Cleanup(h.core.Close)

	origPrint, origPw := printlnFn, getPassword
	printlnFn = func(a ...any) (int, error) { return fmt.Fprintln(h.out, a...) }
	getPassword = func(*bufio.Reader, io.Writer) ([]byte, error) { return h.password, nil }
	t.Cleanup(func() {
		printlnFn = origPrint
		getPassword = origPw
	})
	return h
}

// run executes the script lines through App.Run.
func (h *harness) run(t *testing.T, lines ...string) string {
	t.Helper()
	app := NewApp(h.core, strings.NewReader(strings.Join(lines, "\n")+"\n"), h.out, nil)
	require.NoError(t, app.Run(context.Background()))
	return h.out.String()
}
