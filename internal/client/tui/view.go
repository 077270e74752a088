package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dmitrijs2005/resumeanalyzer/internal/client/models"
	"github.com/dmitrijs2005/resumeanalyzer/internal/client/workflow"
	"github.com/dmitrijs2005/resumeanalyzer/internal/report"
)

const (
	topSkills    = 3
	topWordCount = 5
)

func (m *Model) View() string {
	var body string
	switch {
	case !m.state.Initialized:
		body = mutedStyle.Render("Loading...")
	case m.state.View == workflow.ViewLogin || m.state.View == workflow.ViewRegister:
		body = m.viewAuth()
	case m.state.View == workflow.ViewDashboard:
		body = m.viewDashboard()
	case m.state.View == workflow.ViewAnalysis:
		body = m.viewAnalysis()
	}

	parts := []string{m.viewHeader(), frameStyle.Render(body)}
	if n := m.viewNotifications(); n != "" {
		parts = append(parts, n)
	}
	parts = append(parts, mutedStyle.Render(m.helpLine()))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *Model) viewHeader() string {
	title := titleStyle.Render("Resume Analyzer")
	if name := m.state.Session.Username(); name != "" {
		title += "  " + mutedStyle.Render(name)
	}
	return title
}

func (m *Model) viewNotifications() string {
	var lines []string
	if n := m.state.Error; n != nil {
		lines = append(lines, errorStyle.Render(n.Text))
	}
	if n := m.state.Success; n != nil {
		lines = append(lines, successStyle.Render(n.Text))
	}
	if m.hint != "" {
		lines = append(lines, errorStyle.Render(m.hint))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) helpLine() string {
	switch m.state.View {
	case workflow.ViewLogin, workflow.ViewRegister:
		return "tab next field • enter submit • ctrl+t switch login/register • ctrl+c quit"
	case workflow.ViewDashboard:
		return "↑/↓ select • enter open or upload • ctrl+r refresh • ctrl+x logout • ctrl+c quit"
	case workflow.ViewAnalysis:
		return "esc back • ctrl+x logout • q quit"
	}
	return ""
}

func (m *Model) viewAuth() string {
	heading := "Sign in"
	if m.state.View == workflow.ViewRegister {
		heading = "Create account"
	}
	lines := []string{headingStyle.Render(heading), ""}
	for _, f := range m.fields() {
		lines = append(lines, m.inputs[f].View())
	}
	if m.state.AuthBusy {
		lines = append(lines, "", mutedStyle.Render("Signing in..."))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) viewDashboard() string {
	lines := []string{headingStyle.Render("Your analyses"), ""}
	if len(m.state.Analyses) == 0 {
		lines = append(lines, mutedStyle.Render("No analyses yet."))
	}
	for i, r := range m.state.Analyses {
		lines = append(lines, m.historyRow(i, r))
	}

	lines = append(lines, "", m.path.View())
	if m.state.UploadBusy {
		lines = append(lines, mutedStyle.Render("Analyzing resume..."))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) historyRow(i int, r models.AnalysisRecord) string {
	prefix := "  "
	name := textStyle.Render(r.Filename)
	if i == m.cursor {
		prefix = selectedStyle.Render("> ")
		name = selectedStyle.Render(r.Filename)
	}
	date := ""
	if !r.CreatedAt.IsZero() {
		date = r.CreatedAt.Format("2006-01-02")
	}
	score := mutedStyle.Render("-")
	if s, ok := r.Analysis.OverallScore(); ok {
		score = bandStyle(s).Render(report.ScoreLabel(s))
	}
	return fmt.Sprintf("%s%s  %s  %s", prefix, name, mutedStyle.Render(date), score)
}

func (m *Model) viewAnalysis() string {
	heading := "Analysis"
	if m.state.SelectedName != "" {
		heading += " of " + m.state.SelectedName
	}
	lines := []string{headingStyle.Render(heading), ""}

	rep, err := m.state.Selected.Report()
	if err != nil {
		lines = append(lines, mutedStyle.Render(report.UnavailableText))
		return strings.Join(lines, "\n")
	}

	lines = append(lines,
		"Overall score: "+bandStyle(rep.OverallScore).Render(report.ScoreLabel(rep.OverallScore)),
		fmt.Sprintf("Readability:   %.1f", rep.ReadabilityScore),
		"",
		headingStyle.Render(fmt.Sprintf("Skills (%d)", rep.Skills.Total)),
	)
	for _, c := range rep.Skills.Categories {
		top, more := c.Top(topSkills)
		found := mutedStyle.Render("none")
		if len(top) > 0 {
			found = strings.Join(top, ", ")
		}
		if more > 0 {
			found += mutedStyle.Render(fmt.Sprintf(" +%d more", more))
		}
		lines = append(lines, fmt.Sprintf("  %s: %s", models.CategoryLabel(c.Name), found))
	}

	lines = append(lines, "",
		headingStyle.Render("Experience"),
		fmt.Sprintf("  %d action words, %d quantifiable achievements",
			rep.Experience.ActionWordsCount, rep.Experience.QuantifiableAchievements),
	)

	if len(rep.MissingSections) > 0 {
		lines = append(lines, "", errorStyle.Render("Missing sections: "+strings.Join(rep.MissingSections, ", ")))
	}
	if len(rep.Recommendations) > 0 {
		lines = append(lines, "", headingStyle.Render("Recommendations"))
		for i, r := range rep.Recommendations {
			lines = append(lines, fmt.Sprintf("  %d. %s", i+1, r))
		}
	}
	if words := rep.TopWords(topWordCount); len(words) > 0 {
		parts := make([]string, len(words))
		for i, wc := range words {
			parts[i] = fmt.Sprintf("%s (%d)", wc.Word, wc.Count)
		}
		lines = append(lines, "", mutedStyle.Render("Top words: "+strings.Join(parts, ", ")))
	}
	return strings.Join(lines, "\n")
}
