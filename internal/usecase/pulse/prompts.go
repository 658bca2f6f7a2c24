package pulse

import (
	"strings"

	"github.com/johnquangdev/signal-pulse/internal/domain/entities"
)

// ImprovementChallenge is the closing line every report must carry verbatim
const ImprovementChallenge = "Run Zo Signal Pulse after your next meeting and aim to raise your score by at least 10 points."

// ExtractionPrompt asks the model for the signal JSON of the given notes
func ExtractionPrompt(notes, meetingType, teamCSV string) string {
	teamLine := "No team list provided."
	if teamCSV != "" {
		teamLine = "Team members list (owners must be chosen from this list if possible): " + teamCSV
	}
	hint := "Meeting type hint: null"
	if meetingType != "" {
		hint = "Meeting type hint: " + meetingType
	}

	return strings.Join([]string{
		"You extract execution signals from meeting notes.",
		"Return ONLY valid JSON. No markdown. No code fences.",
		"Do not invent names, dates, or decisions. If missing, use null.",
		teamLine,
		hint,
		"",
		"JSON schema:",
		"{",
		`  "meeting_type": string|null,`,
		`  "action_items": [`,
		`    {"task": string, "owner": string|null, "deadline": string|null, "priority": "High"|"Medium"|"Low"|null, "clarity": "Clear"|"Low"|null, "dependencies": string[]|null, "notes": string|null}`,
		`  ],`,
		`  "decisions": [ {"decision": string, "clarity": "Clear"|"Unclear"|null, "notes": string|null} ],`,
		`  "open_questions": [ {"question": string, "owner": string|null, "deadline": string|null} ],`,
		`  "risks_blockers": [ {"item": string, "severity": "High"|"Medium"|"Low"|null, "owner": string|null, "mitigation": string|null} ],`,
		`  "dependencies": [ {"item": string, "blocked_by": string[]|null, "blocking": string[]|null} ],`,
		`  "accountability_gaps": string[],`,
		`  "notes": string|null`,
		"}",
		"",
		"Meeting notes:",
		notes,
	}, "\n")
}

// ReportPayload is the data block embedded in the report prompt
type ReportPayload struct {
	MeetingType string                     `json:"meetingType"`
	Tone        string                     `json:"tone"`
	Normalized  entities.NormalizedSignals `json:"normalized"`
	Metrics     entities.Metrics           `json:"metrics"`
	Scores      entities.Scores            `json:"scores"`
}

// ReportPrompt asks the model for the Markdown execution report
func ReportPrompt(payload ReportPayload) (string, error) {
	data, err := prettyJSON(payload)
	if err != nil {
		return "", err
	}

	return strings.Join([]string{
		"You generate an execution intelligence report from extracted meeting signals.",
		"Output tone: " + payload.Tone,
		"Write in Markdown.",
		"Do not add extra sections beyond what is requested.",
		"",
		"Required sections and fields:",
		"1) Pulse Snapshot (use the labels below, each on its own line)",
		"Meeting Type:",
		"Priority Breakdown:",
		"Action Items:",
		"Decisions:",
		"Blockers/Risks:",
		"Dependencies:",
		"Unassigned Tasks:",
		"Missing Deadline:",
		"Low Clarity Tasks:",
		"Execution Risk Level:",
		"Meeting Effectiveness Score: X/100",
		"Meeting Grade:",
		"2 to 4 sentence explanation of grade.",
		"Behavioral Pulse Note aligned with grade.",
		"Add improvement challenge line exactly:",
		ImprovementChallenge,
		"",
		"9) Signal Strengthening Actions (concrete, operational, specific to extracted tasks)",
		"",
		"10) Follow Up Message Draft (ready to send; reinforce ownership, clarify deadlines, highlight risks, prompt confirmation)",
		"",
		"Data (do not restate as JSON, use it to generate the report):",
		string(data),
	}, "\n"), nil
}
