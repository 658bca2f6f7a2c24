// Package signals turns an untrusted model extraction into canonical
// execution signals and scores them. Everything here is pure: no I/O, no
// shared state, and no input shape makes it fail.
package signals

import (
	"strings"

	"github.com/johnquangdev/signal-pulse/internal/domain/entities"
)

// NormalizeOwner maps a raw owner name to its canonical form.
// With a roster, names not on it resolve to Unassigned.
func NormalizeOwner(owner string, roster *entities.Roster) string {
	name := strings.TrimSpace(owner)
	if name == "" {
		return entities.OwnerUnassigned
	}
	if roster == nil {
		return name
	}
	if canonical, ok := roster.Canonical(name); ok {
		return canonical
	}
	return entities.OwnerUnassigned
}

// NormalizeDeadline trims a deadline; dates are not parsed.
func NormalizeDeadline(deadline string) string {
	d := strings.TrimSpace(deadline)
	if d == "" {
		return entities.DeadlineNotSpecified
	}
	return d
}

// Normalize decodes raw into NormalizedSignals. raw is normally the result of
// json.Unmarshal into an any; non-object input normalizes like {}.
func Normalize(raw any, roster *entities.Roster) entities.NormalizedSignals {
	doc := object(raw)

	out := entities.NormalizedSignals{
		MeetingType:        optionalText(doc["meeting_type"]),
		ActionItems:        make([]entities.Task, 0),
		Decisions:          make([]entities.Decision, 0),
		OpenQuestions:      make([]entities.OpenQuestion, 0),
		RisksBlockers:      make([]entities.RiskBlocker, 0),
		Dependencies:       make([]any, 0),
		AccountabilityGaps: make([]string, 0),
		Notes:              optionalText(doc["notes"]),
	}

	if items, ok := sequence(doc, "action_items"); ok {
		for _, item := range items {
			out.ActionItems = append(out.ActionItems, normalizeTask(object(item), roster))
		}
	}

	if items, ok := sequence(doc, "decisions"); ok {
		for _, item := range items {
			out.Decisions = append(out.Decisions, normalizeDecision(object(item)))
		}
	}

	if items, ok := sequence(doc, "open_questions"); ok {
		for _, item := range items {
			out.OpenQuestions = append(out.OpenQuestions, normalizeQuestion(object(item), roster))
		}
	}

	if items, ok := sequence(doc, "risks_blockers"); ok {
		for _, item := range items {
			out.RisksBlockers = append(out.RisksBlockers, normalizeRisk(object(item), roster))
		}
	}

	if items, ok := sequence(doc, "dependencies"); ok {
		for _, item := range items {
			out.Dependencies = append(out.Dependencies, clone(item))
		}
	}

	if items, ok := sequence(doc, "accountability_gaps"); ok {
		out.AccountabilityGaps = stringItems(items)
	}

	return out
}

func normalizeTask(t map[string]any, roster *entities.Roster) entities.Task {
	task := strings.TrimSpace(text(t["task"]))
	if task == "" {
		task = entities.TaskMissing
	}

	var deps []string
	if items, ok := sequence(t, "dependencies"); ok {
		deps = stringItems(items)
	}

	return entities.Task{
		Task:         task,
		Owner:        NormalizeOwner(text(t["owner"]), roster),
		Deadline:     NormalizeDeadline(text(t["deadline"])),
		Priority:     priorityOf(t["priority"]),
		Clarity:      taskClarityOf(t["clarity"]),
		Dependencies: deps,
		Notes:        optionalText(t["notes"]),
	}
}

func normalizeDecision(d map[string]any) entities.Decision {
	return entities.Decision{
		Decision: strings.TrimSpace(text(d["decision"])),
		Clarity:  decisionClarityOf(d["clarity"]),
		Notes:    optionalText(d["notes"]),
	}
}

func normalizeQuestion(q map[string]any, roster *entities.Roster) entities.OpenQuestion {
	return entities.OpenQuestion{
		Question: strings.TrimSpace(text(q["question"])),
		Owner:    NormalizeOwner(text(q["owner"]), roster),
		Deadline: NormalizeDeadline(text(q["deadline"])),
	}
}

func normalizeRisk(r map[string]any, roster *entities.Roster) entities.RiskBlocker {
	return entities.RiskBlocker{
		Item:       strings.TrimSpace(text(r["item"])),
		Severity:   severityOf(r["severity"]),
		Owner:      NormalizeOwner(text(r["owner"]), roster),
		Mitigation: optionalText(r["mitigation"]),
	}
}
