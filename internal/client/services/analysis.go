package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/singleflight"

	"github.com/dmitrijs2005/resumeanalyzer/internal/client/client"
	"github.com/dmitrijs2005/resumeanalyzer/internal/client/models"
)

// AnalysisService wraps the analysis endpoints.
//
// Concurrent List calls for the same token share one request; each caller
// receives its own copy of the result. Forget detaches the in-flight request
// for token so the next List goes to the server, which callers need after
// changing the history.
type AnalysisService interface {
	List(ctx context.Context, token string) ([]models.AnalysisRecord, error)
	Forget(token string)
	Upload(ctx context.Context, token string, file models.ResumeFile) (*client.UploadResponse, error)
	Get(ctx context.Context, token string, id int64) (*models.AnalysisRecord, error)
}

type analysisService struct {
	client client.Client
	group  singleflight.Group
}

func NewAnalysisService(client client.Client) AnalysisService {
	return &analysisService{client: client}
}

func (s *analysisService) List(ctx context.Context, token string) ([]models.AnalysisRecord, error) {
	v, err, _ := s.group.Do(token, func() (any, error) {
		return s.client.ListAnalyses(ctx, token)
	})
	if err != nil {
		return nil, fmt.Errorf("list analyses: %w", err)
	}
	return cloneRecords(v.([]models.AnalysisRecord)), nil
}

func (s *analysisService) Forget(token string) {
	s.group.Forget(token)
}

func (s *analysisService) Upload(ctx context.Context, token string, file models.ResumeFile) (*client.UploadResponse, error) {
	resp, err := s.client.UploadResume(ctx, token, file)
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", file.Name, err)
	}
	return resp, nil
}

func (s *analysisService) Get(ctx context.Context, token string, id int64) (*models.AnalysisRecord, error) {
	rec, err := s.client.GetAnalysis(ctx, token, id)
	if err != nil {
		return nil, fmt.Errorf("get analysis %d: %w", id, err)
	}
	return rec, nil
}

func cloneRecords(in []models.AnalysisRecord) []models.AnalysisRecord {
	out := make([]models.AnalysisRecord, len(in))
	for i, r := range in {
		r.Analysis = r.Analysis.Clone()
		out[i] = r
	}
	return out
}
