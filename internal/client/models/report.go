package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrReportUnavailable is returned when a payload lacks the fields needed to
// render the detail view.
var ErrReportUnavailable = errors.New("analysis data not available")

// Report is the presentation view of an AnalysisResult.
type Report struct {
	OverallScore     float64             `json:"overall_score"`
	ReadabilityScore float64             `json:"readability_score"`
	Skills           Skills              `json:"skills"`
	MissingSections  []string            `json:"missing_sections"`
	Experience       *ExperienceAnalysis `json:"experience_analysis"`
	WordFrequency    map[string]int      `json:"word_frequency"`
	Recommendations  []string            `json:"recommendations"`
}

type ExperienceAnalysis struct {
	ActionWords              []string `json:"action_words"`
	ActionWordsCount         int      `json:"action_words_count"`
	QuantifiableAchievements int      `json:"quantifiable_achievements"`
	NumbersFound             []string `json:"numbers_found"`
}

// Skills holds the per-category skill lists in server order plus the
// server-computed total.
type Skills struct {
	Categories []SkillCategory
	Total      int
}

type SkillCategory struct {
	Name   string
	Skills []string
}

const skillsTotalKey = "total_count"

// UnmarshalJSON walks the object token by token so category order survives.
func (s *Skills) UnmarshalJSON(b []byte) error {
	*s = Skills{}
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("skills: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("skills: expected object, got %v", tok)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("skills: %w", err)
		}
		key, _ := tok.(string)

		if key == skillsTotalKey {
			if err := dec.Decode(&s.Total); err != nil {
				return fmt.Errorf("skills.%s: %w", key, err)
			}
			continue
		}

		var list []string
		if err := dec.Decode(&list); err != nil {
			return fmt.Errorf("skills.%s: %w", key, err)
		}
		s.Categories = append(s.Categories, SkillCategory{Name: key, Skills: list})
	}
	return nil
}

// Report decodes the payload for display.
func (r AnalysisResult) Report() (*Report, error) {
	if r.IsZero() {
		return nil, ErrReportUnavailable
	}
	var rep Report
	if err := json.Unmarshal(r, &rep); err != nil {
		return nil, fmt.Errorf("decode analysis: %w", err)
	}
	if rep.Experience == nil {
		return nil, ErrReportUnavailable
	}
	return &rep, nil
}

// OverallScore extracts only the overall score; ok is false when the payload
// does not carry one.
func (r AnalysisResult) OverallScore() (score float64, ok bool) {
	if r.IsZero() {
		return 0, false
	}
	var probe struct {
		OverallScore *float64 `json:"overall_score"`
	}
	if err := json.Unmarshal(r, &probe); err != nil || probe.OverallScore == nil {
		return 0, false
	}
	return *probe.OverallScore, true
}

// WordCount is one entry of the word frequency table.
type WordCount struct {
	Word  string
	Count int
}

// TopWords returns up to n words ordered by count, then alphabetically.
func (r *Report) TopWords(n int) []WordCount {
	words := make([]WordCount, 0, len(r.WordFrequency))
	for w, c := range r.WordFrequency {
		words = append(words, WordCount{Word: w, Count: c})
	}
	sort.Slice(words, func(i, j int) bool {
		if words[i].Count != words[j].Count {
			return words[i].Count > words[j].Count
		}
		return words[i].Word < words[j].Word
	})
	if n >= 0 && len(words) > n {
		words = words[:n]
	}
	return words
}

// ScoreBand buckets an overall score the way the history list labels it.
func ScoreBand(score float64) string {
	switch {
	case score >= 80:
		return "Excellent"
	case score >= 60:
		return "Good"
	default:
		return "Needs Work"
	}
}

// CategoryLabel turns "cloud_tools" into "Cloud tools".
func CategoryLabel(name string) string {
	label := strings.Replace(name, "_", " ", 1)
	r, size := utf8.DecodeRuneInString(label)
	if r == utf8.RuneError {
		return label
	}
	return string(unicode.ToUpper(r)) + label[size:]
}

// Top returns the first n skills of the category and how many were left out.
func (c SkillCategory) Top(n int) (skills []string, more int) {
	if n < 0 || len(c.Skills) <= n {
		return c.Skills, 0
	}
	return c.Skills[:n], len(c.Skills) - n
}
