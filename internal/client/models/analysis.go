package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
)

// AnalysisRecord is one historical upload-and-score result.
type AnalysisRecord struct {
	ID        int64          `json:"id"`
	Filename  string         `json:"filename"`
	CreatedAt Timestamp      `json:"created_at"`
	Analysis  AnalysisResult `json:"analysis"`
}

// AnalysisResult is the opaque payload produced by the analysis engine.
// It is stored and copied verbatim; Report decodes it for display only.
type AnalysisResult []byte

// MarshalJSON emits the payload unchanged.
func (r AnalysisResult) MarshalJSON() ([]byte, error) {
	if len(r) == 0 {
		return []byte("null"), nil
	}
	return r, nil
}

// UnmarshalJSON keeps a private copy of the raw payload.
func (r *AnalysisResult) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*r = nil
		return nil
	}
	*r = append(AnalysisResult(nil), b...)
	return nil
}

// IsZero reports whether no payload is held.
func (r AnalysisResult) IsZero() bool {
	return len(r) == 0
}

// Clone returns an independent copy; selecting an analysis never shares the
// backing array with the history collection.
func (r AnalysisResult) Clone() AnalysisResult {
	if r == nil {
		return nil
	}
	return append(AnalysisResult(nil), r...)
}

// Timestamp accepts RFC 3339 and the "YYYY-MM-DD HH:MM:SS" form produced by
// SQLite CURRENT_TIMESTAMP on the server.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999",
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("timestamp: unrecognised format %q", s)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`""`), nil
	}
	return json.Marshal(t.UTC().Format(time.RFC3339))
}

// ResumeFile is a file handed to the upload pipeline.
type ResumeFile struct {
	Name    string
	Content io.Reader
}
