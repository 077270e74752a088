package services

import (
	"context"
	"io"
	"sync"

	"github.com/dmitrijs2005/resumeanalyzer/internal/client/client"
	"github.com/dmitrijs2005/resumeanalyzer/internal/client/models"
)

// fakeClient implements client.Client for service unit tests.
type fakeClient struct {
	mu sync.Mutex

	CloseErr error

	LoginResp    *client.AuthResponse
	LoginErr     error
	RegisterResp *client.AuthResponse
	RegisterErr  error

	ListRet   []models.AnalysisRecord
	ListErr   error
	ListGate  chan struct{}
	ListCalls int

	UploadResp *client.UploadResponse
	UploadErr  error

	GetRet *models.AnalysisRecord
	GetErr error

	LastLogin      models.Credentials
	LastRegister   models.Credentials
	LastListToken  string
	LastUpload     string
	LastUploadBody string
	LastGetID      int64
}

func (f *fakeClient) Close() error { return f.CloseErr }

func (f *fakeClient) Login(ctx context.Context, creds models.Credentials) (*client.AuthResponse, error) {
	f.LastLogin = creds
	return f.LoginResp, f.LoginErr
}

func (f *fakeClient) Register(ctx context.Context, creds models.Credentials) (*client.AuthResponse, error) {
	f.LastRegister = creds
	return f.RegisterResp, f.RegisterErr
}

func (f *fakeClient) ListAnalyses(ctx context.Context, token string) ([]models.AnalysisRecord, error) {
	f.mu.Lock()
	f.ListCalls++
	f.LastListToken = token
	gate := f.ListGate
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	return f.ListRet, f.ListErr
}

func (f *fakeClient) UploadResume(ctx context.Context, token string, file models.ResumeFile) (*client.UploadResponse, error) {
	f.LastUpload = token + ":" + file.Name
	if file.Content != nil {
		b, _ := io.ReadAll(file.Content)
		f.LastUploadBody = string(b)
	}
	return f.UploadResp, f.UploadErr
}

func (f *fakeClient) GetAnalysis(ctx context.Context, token string, id int64) (*models.AnalysisRecord, error) {
	f.LastGetID = id
	return f.GetRet, f.GetErr
}

func (f *fakeClient) listCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ListCalls
}
