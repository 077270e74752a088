package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/resumeanalyzer/internal/client/models"
	"github.com/dmitrijs2005/resumeanalyzer/internal/common"
	"github.com/dmitrijs2005/resumeanalyzer/internal/netx"
)

// UploadFieldName is the multipart field carrying the resume file.
const UploadFieldName = "resume"

// maxErrorBody bounds how much of a failed response is read for its message.
const maxErrorBody = 64 << 10

type HTTPClient struct {
	baseURL   string
	http      *http.Client
	requestID func() string
}

type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(h *HTTPClient) { h.http = c }
}

// WithRequestID overrides the X-Request-ID generator.
func WithRequestID(fn func() string) Option {
	return func(h *HTTPClient) { h.requestID = fn }
}

// NewHTTPClient returns a client for the API rooted at baseURL,
// e.g. "http://localhost:5000/api".
func NewHTTPClient(baseURL string, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse api url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("parse api url: unsupported scheme %q", u.Scheme)
	}
	c := &HTTPClient{
		baseURL:   strings.TrimRight(u.String(), "/"),
		http:      &http.Client{},
		requestID: uuid.NewString,
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

type authRequest struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password"`
}

func (c *HTTPClient) Login(ctx context.Context, creds models.Credentials) (*AuthResponse, error) {
	return c.authenticate(ctx, "/login", authRequest{Username: creds.Username, Password: string(creds.Password)})
}

func (c *HTTPClient) Register(ctx context.Context, creds models.Credentials) (*AuthResponse, error) {
	return c.authenticate(ctx, "/register", authRequest{
		Username: creds.Username,
		Email:    creds.Email,
		Password: string(creds.Password),
	})
}

func (c *HTTPClient) authenticate(ctx context.Context, path string, body authRequest) (*AuthResponse, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := c.newRequest(ctx, http.MethodPost, path, "", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var out AuthResponse
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) ListAnalyses(ctx context.Context, token string) ([]models.AnalysisRecord, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/analyses", token, nil)
	if err != nil {
		return nil, err
	}
	var out []models.AnalysisRecord
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.AnalysisRecord{}
	}
	return out, nil
}

// UploadResume streams file as a multipart body; the file is never
// buffered whole in memory.
func (c *HTTPClient) UploadResume(ctx context.Context, token string, file models.ResumeFile) (*UploadResponse, error) {
	body, contentType := netx.MultipartBody(UploadFieldName, filepath.Base(file.Name), file.Content)

	req, err := c.newRequest(ctx, http.MethodPost, "/upload-resume", token, body)
	if err != nil {
		_ = body.Close()
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)

	var out UploadResponse
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) GetAnalysis(ctx context.Context, token string, id int64) (*models.AnalysisRecord, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/analysis/"+strconv.FormatInt(id, 10), token, nil)
	if err != nil {
		return nil, err
	}
	rec := &models.AnalysisRecord{}
	if err := c.do(req, rec); err != nil {
		return nil, err
	}
	rec.ID = id
	return rec, nil
}

func (c *HTTPClient) newRequest(ctx context.Context, method, path, token string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeaderName, c.requestID())
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}
	return req, nil
}

func (c *HTTPClient) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return c.mapError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	return nil
}

func (c *HTTPClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrUnavailable, err)
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if json.Unmarshal(raw, &body) == nil {
		apiErr.Message = body.Message
		if apiErr.Message == "" {
			apiErr.Message = body.Error
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
