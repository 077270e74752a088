package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/resumeanalyzer/internal/client/models"
)

// topSkills is how many skills per category the summary lists.
const topSkills = 3

// ScoreLabel formats a score with its band, e.g. "72 (Good)".
func ScoreLabel(score float64) string {
	return fmt.Sprintf("%s (%s)", formatScore(score), models.ScoreBand(score))
}

// WriteText writes a terminal summary of rep. A nil rep prints the
// unavailable notice.
func WriteText(w io.Writer, filename string, rep *models.Report) error {
	tw := &textWriter{w: w}

	if filename != "" {
		tw.line("Analysis of %s", filename)
	}
	if rep == nil {
		tw.line("%s", UnavailableText)
		return tw.err
	}

	tw.line("Overall score: %s/100 %s", formatScore(rep.OverallScore), models.ScoreBand(rep.OverallScore))
	tw.line("Readability:   %s", formatScore(rep.ReadabilityScore))

	tw.line("")
	tw.line("Skills (%d):", rep.Skills.Total)
	for _, c := range rep.Skills.Categories {
		top, more := c.Top(topSkills)
		found := "none"
		if len(top) > 0 {
			found = strings.Join(top, ", ")
		}
		if more > 0 {
			found += fmt.Sprintf(" +%d more", more)
		}
		tw.line("  %-24s %s", models.CategoryLabel(c.Name)+":", found)
	}

	tw.line("")
	tw.line("Experience: %d action words, %d quantifiable achievements",
		rep.Experience.ActionWordsCount, rep.Experience.QuantifiableAchievements)

	if len(rep.MissingSections) > 0 {
		tw.line("Missing sections: %s", strings.Join(rep.MissingSections, ", "))
	}

	if len(rep.Recommendations) > 0 {
		tw.line("")
		tw.line("Recommendations:")
		for i, r := range rep.Recommendations {
			tw.line("  %d. %s", i+1, r)
		}
	}

	if words := rep.TopWords(topWords); len(words) > 0 {
		parts := make([]string, len(words))
		for i, wc := range words {
			parts[i] = fmt.Sprintf("%s (%d)", wc.Word, wc.Count)
		}
		tw.line("")
		tw.line("Top words: %s", strings.Join(parts, ", "))
	}
	return tw.err
}

// textWriter keeps the first write error so callers check once.
type textWriter struct {
	w   io.Writer
	err error
}

func (t *textWriter) line(format string, args ...any) {
	if t.err != nil {
		return
	}
	_, t.err = fmt.Fprintf(t.w, format+"\n", args...)
}
