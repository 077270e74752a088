// Package report renders an analysis as a Markdown document.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/dmitrijs2005/resumeanalyzer/internal/client/models"
)

// UnavailableText is shown when a payload cannot be rendered.
const UnavailableText = "Analysis data not available."

// topWords is how many word frequency rows are exported.
const topWords = 10

// WriteMarkdown writes rep for the resume named filename. A nil rep renders
// the unavailable notice.
func WriteMarkdown(w io.Writer, filename string, rep *models.Report) error {
	md := markdown.NewMarkdown(w)

	md.H1("Resume Analysis")
	md.PlainText("")
	if filename != "" {
		md.PlainTextf("File: `%s`", filename)
		md.PlainText("")
	}

	if rep == nil {
		md.Note(UnavailableText)
		return md.Build()
	}

	writeScores(md, rep)
	writeSkills(md, rep)
	writeExperience(md, rep)
	writeMissing(md, rep)
	writeRecommendations(md, rep)
	writeWords(md, rep)

	return md.Build()
}

// Export decodes payload and writes it; undecodable payloads render the
// unavailable notice.
func Export(w io.Writer, filename string, payload models.AnalysisResult) error {
	rep, err := payload.Report()
	if err != nil {
		rep = nil
	}
	return WriteMarkdown(w, filename, rep)
}

func writeScores(md *markdown.Markdown, rep *models.Report) {
	md.H2("Scores")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Overall score", formatScore(rep.OverallScore) + "/100"},
			{"Rating", models.ScoreBand(rep.OverallScore)},
			{"Readability", formatScore(rep.ReadabilityScore)},
			{"Skills found", strconv.Itoa(rep.Skills.Total)},
		},
	})
	md.PlainText("")
}

func writeSkills(md *markdown.Markdown, rep *models.Report) {
	md.H2("Skills")
	md.PlainText("")

	rows := make([][]string, 0, len(rep.Skills.Categories))
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Skills by category"),
		piechart.WithShowData(true),
	)
	charted := 0
	for _, c := range rep.Skills.Categories {
		found := "-"
		if len(c.Skills) > 0 {
			found = strings.Join(c.Skills, ", ")
			chart.LabelAndIntValue(models.CategoryLabel(c.Name), uint64(len(c.Skills)))
			charted++
		}
		rows = append(rows, []string{models.CategoryLabel(c.Name), strconv.Itoa(len(c.Skills)), found})
	}

	if len(rows) == 0 {
		md.PlainText("No skills detected.")
		md.PlainText("")
		return
	}
	md.Table(markdown.TableSet{Header: []string{"Category", "Count", "Skills"}, Rows: rows})
	md.PlainText("")

	if charted > 0 {
		md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
		md.PlainText("")
	}
}

func writeExperience(md *markdown.Markdown, rep *models.Report) {
	exp := rep.Experience
	md.H2("Experience")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Signal", "Value"},
		Rows: [][]string{
			{"Action words", strconv.Itoa(exp.ActionWordsCount)},
			{"Quantifiable achievements", strconv.Itoa(exp.QuantifiableAchievements)},
		},
	})
	md.PlainText("")
	if len(exp.ActionWords) > 0 {
		md.PlainTextf("Action words used: %s", strings.Join(exp.ActionWords, ", "))
		md.PlainText("")
	}
}

func writeMissing(md *markdown.Markdown, rep *models.Report) {
	if len(rep.MissingSections) == 0 {
		md.Tip("All standard resume sections are present.")
		md.PlainText("")
		return
	}
	md.Warningf("Missing sections: %s", strings.Join(rep.MissingSections, ", "))
	md.PlainText("")
}

func writeRecommendations(md *markdown.Markdown, rep *models.Report) {
	md.H2("Recommendations")
	md.PlainText("")
	if len(rep.Recommendations) == 0 {
		md.PlainText("No recommendations.")
		md.PlainText("")
		return
	}
	md.OrderedList(rep.Recommendations...)
	md.PlainText("")
}

func writeWords(md *markdown.Markdown, rep *models.Report) {
	words := rep.TopWords(topWords)
	if len(words) == 0 {
		return
	}
	md.H2("Most frequent words")
	md.PlainText("")
	rows := make([][]string, len(words))
	for i, wc := range words {
		rows[i] = []string{wc.Word, strconv.Itoa(wc.Count)}
	}
	md.Table(markdown.TableSet{Header: []string{"Word", "Count"}, Rows: rows})
	md.PlainText("")
}

func formatScore(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return fmt.Sprintf("%.1f", v)
}
