package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/johnquangdev/signal-pulse/internal/domain/entities"
	"github.com/johnquangdev/signal-pulse/internal/usecase/signals"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	labelStyle = lipgloss.NewStyle().Width(32)
	cardStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)

	good = lipgloss.Color("42")
	warn = lipgloss.Color("214")
	bad  = lipgloss.Color("196")
)

func gradeColor(g entities.Grade) lipgloss.Color {
	switch g {
	case entities.GradeA, entities.GradeB:
		return good
	case entities.GradeC:
		return warn
	default:
		return bad
	}
}

func riskColor(r entities.RiskLevel) lipgloss.Color {
	switch r {
	case entities.RiskLevelLow:
		return good
	case entities.RiskLevelMedium:
		return warn
	default:
		return bad
	}
}

func colored(c lipgloss.Color, s string) string {
	return lipgloss.NewStyle().Foreground(c).Bold(true).Render(s)
}

func row(label, value string) string {
	return labelStyle.Render(label) + value
}

// renderScorecard draws the scores and metrics of an evaluation as a card
func renderScorecard(e signals.Evaluation) string {
	s := e.Scores
	m := e.Metrics

	lines := []string{
		titleStyle.Render("Signal Pulse: " + e.Normalized.MeetingTypeOr(entities.DefaultMeetingType)),
		"",
		row("Overall", colored(gradeColor(s.Grade), fmt.Sprintf("%d (%s)", s.Overall, s.Grade))),
		row("Execution risk", colored(riskColor(s.ExecutionRisk), string(s.ExecutionRisk))),
		row("Accountability", strconv.Itoa(s.Accountability)),
		row("Clarity", strconv.Itoa(s.Clarity)),
		row("Risk", strconv.Itoa(s.Risk)),
		"",
		titleStyle.Render("Metrics"),
		row("Total tasks", strconv.Itoa(m.TotalTasks)),
		row("High priority tasks", strconv.Itoa(m.HighPriorityTasks)),
		row("Unassigned tasks", strconv.Itoa(m.UnassignedTasks)),
		row("Tasks missing deadline", strconv.Itoa(m.TasksMissingDeadline)),
		row("High priority missing deadline", strconv.Itoa(m.HighPriorityMissingDeadline)),
		row("Low clarity tasks", strconv.Itoa(m.LowClarityTasks)),
		row("Unclear decisions", strconv.Itoa(m.UnclearDecisions)),
		row("Open questions", strconv.Itoa(m.OpenQuestions)),
		row("Blockers", strconv.Itoa(m.Blockers)),
	}
	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// renderHistory prints one line per entry
func renderHistory(entries []entities.HistoryEntry) string {
	if len(entries) == 0 {
		return "No runs recorded yet.\n"
	}

	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "%-20s %3d  %s  %s  %s\n",
			e.Timestamp,
			e.Score,
			colored(gradeColor(e.Grade), string(e.Grade)),
			colored(riskColor(e.ExecutionRiskLevel), fmt.Sprintf("%-6s", e.ExecutionRiskLevel)),
			e.MeetingType,
		)
	}
	return b.String()
}
