package entities

// Metrics are counters derived from NormalizedSignals
type Metrics struct {
	TotalTasks                  int `json:"total_tasks"`
	HighPriorityTasks           int `json:"high_priority_tasks"`
	UnassignedTasks             int `json:"unassigned_tasks"`
	TasksMissingDeadline        int `json:"tasks_missing_deadline"`
	LowClarityTasks             int `json:"low_clarity_tasks"`
	UnclearDecisions            int `json:"unclear_decisions"`
	OpenQuestions               int `json:"open_questions"`
	Blockers                    int `json:"blockers"`
	HighPriorityMissingDeadline int `json:"high_priority_missing_deadline"`
}

// Grade is the letter grade of a meeting's overall score
type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeF Grade = "F"
)

// RiskLevel is the categorical execution risk of a meeting
type RiskLevel string

const (
	RiskLevelLow    RiskLevel = "Low"
	RiskLevelMedium RiskLevel = "Medium"
	RiskLevelHigh   RiskLevel = "High"
)

// Scores is the execution-health verdict computed from Metrics
type Scores struct {
	Accountability int       `json:"accountability"`
	Clarity        int       `json:"clarity"`
	Risk           int       `json:"risk"`
	Overall        int       `json:"overall"`
	Grade          Grade     `json:"grade"`
	ExecutionRisk  RiskLevel `json:"executionRisk"`
}
