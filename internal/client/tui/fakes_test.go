package tui

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/dmitrijs2005/resumeanalyzer/internal/client/client"
	"github.com/dmitrijs2005/resumeanalyzer/internal/client/models"
)

type fakeAuth struct {
	mu sync.Mutex

	Token     string
	AuthResp  *client.AuthResponse
	AuthErr   error
	Calls     int
	LastMode  models.AuthMode
	LastCreds models.Credentials
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
func (f *fakeAuth) SaveToken(context.Context, string) error    { return nil }

func (f *fakeAuth) ForgetToken(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Forgotten++
	return nil
}

func (f *fakeAuth) Close(context.Context) error { return nil }

type fakeAnalyses struct {
	mu sync.Mutex

	ListRet    []models.AnalysisRecord
	UploadResp *client.UploadResponse
	UploadErr  error
	LastFile   string
}

func (f *fakeAnalyses) List(context.Context, string) ([]models.AnalysisRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.AnalysisRecord, len(f.ListRet))
	copy(out, f.ListRet)
	return out, nil
}

func (f *fakeAnalyses) Upload(_ context.Context, _ string, file models.ResumeFile) (*client.UploadResponse, error) {
	if _, err := io.Copy(io.Discard, file.Content); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastFile = file.Name
	if f.UploadErr != nil {
		return nil, f.UploadErr
	}
	return f.UploadResp, nil
}

func (f *fakeAnalyses) Forget(string) {}

func (f *fakeAnalyses) Get(context.Context, string, int64) (*models.AnalysisRecord, error) {
	return nil, client.ErrUnavailable
}

const fullPayload = `{
  "overall_score": 72,
  "readability_score": 51.5,
  "skills": {"programming_languages": ["go", "python", "sql", "rust"], "soft_skills": [], "total_count": 4},
  "experience_analysis": {"action_words": ["built"], "action_words_count": 1, "quantifiable_achievements": 3},
  "missing_sections": ["summary"],
  "word_frequency": {"go": 4, "team": 2},
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
			Analysis:  models.AnalysisResult(fullPayload),
		},
	}
}
