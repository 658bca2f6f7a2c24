package entities

// Priority is the urgency assigned to an action item
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// TaskClarity describes how well an action item is specified
type TaskClarity string

const (
	TaskClarityClear TaskClarity = "Clear"
	TaskClarityLow   TaskClarity = "Low"
)

// DecisionClarity describes whether a decision was stated unambiguously
type DecisionClarity string

const (
	DecisionClarityClear   DecisionClarity = "Clear"
	DecisionClarityUnclear DecisionClarity = "Unclear"
)

// Severity is the impact level of a risk or blocker
type Severity string

const (
	SeverityHigh   Severity = "High"
	SeverityMedium Severity = "Medium"
	SeverityLow    Severity = "Low"
)

// Sentinel values written by the normalizer in place of missing data
const (
	OwnerUnassigned      = "Unassigned"
	DeadlineNotSpecified = "Not specified"
	TaskMissing          = "(missing task)"
	DefaultMeetingType   = "Meeting"
)

// Task is a normalized action item
type Task struct {
	Task         string      `json:"task"`
	Owner        string      `json:"owner"`
	Deadline     string      `json:"deadline"`
	Priority     Priority    `json:"priority"`
	Clarity      TaskClarity `json:"clarity"`
	Dependencies []string    `json:"dependencies"`
	Notes        *string     `json:"notes"`
}

// Decision is a normalized decision
type Decision struct {
	Decision string          `json:"decision"`
	Clarity  DecisionClarity `json:"clarity"`
	Notes    *string         `json:"notes"`
}

// OpenQuestion is a normalized unresolved question
type OpenQuestion struct {
	Question string `json:"question"`
	Owner    string `json:"owner"`
	Deadline string `json:"deadline"`
}

// RiskBlocker is a normalized risk or blocker
type RiskBlocker struct {
	Item       string   `json:"item"`
	Severity   Severity `json:"severity"`
	Owner      string   `json:"owner"`
	Mitigation *string  `json:"mitigation"`
}

// NormalizedSignals is the canonical form of a model extraction result.
// Every sequence is non-nil so the JSON form always carries arrays.
type NormalizedSignals struct {
	MeetingType        *string        `json:"meeting_type"`
	ActionItems        []Task         `json:"action_items"`
	Decisions          []Decision     `json:"decisions"`
	OpenQuestions      []OpenQuestion `json:"open_questions"`
	RisksBlockers      []RiskBlocker  `json:"risks_blockers"`
	Dependencies       []any          `json:"dependencies"`
	AccountabilityGaps []string       `json:"accountability_gaps"`
	Notes              *string        `json:"notes"`
}

// MeetingTypeOr returns the extracted meeting type or fallback when absent
func (s *NormalizedSignals) MeetingTypeOr(fallback string) string {
	if s == nil || s.MeetingType == nil || *s.MeetingType == "" {
		return fallback
	}
	return *s.MeetingType
}
