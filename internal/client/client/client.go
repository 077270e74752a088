package client

import (
	"context"

	"github.com/dmitrijs2005/resumeanalyzer/internal/client/models"
)

// AuthResponse is the 2xx body of login and register.
type AuthResponse struct {
	Token   string      `json:"token"`
	User    models.User `json:"user"`
	Message string      `json:"message"`
}

// UploadResponse is the 2xx body of a resume upload.
type UploadResponse struct {
	Message    string                `json:"message"`
	AnalysisID int64                 `json:"analysis_id"`
	Analysis   models.AnalysisResult `json:"analysis"`
}

type Client interface {
	Close() error
	Login(ctx context.Context, creds models.Credentials) (*AuthResponse, error)
	Register(ctx context.Context, creds models.Credentials) (*AuthResponse, error)
	ListAnalyses(ctx context.Context, token string) ([]models.AnalysisRecord, error)
	UploadResume(ctx context.Context, token string, file models.ResumeFile) (*UploadResponse, error)
	GetAnalysis(ctx context.Context, token string, id int64) (*models.AnalysisRecord, error)
}
