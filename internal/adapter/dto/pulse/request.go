package pulse

import "encoding/json"

// RunRequest represents the request to run the pulse pipeline
type RunRequest struct {
	Notes       string `json:"notes" validate:"notblank"`
	MeetingType string `json:"meeting_type,omitempty"`
	Team        string `json:"team,omitempty"`
	Tone        string `json:"tone,omitempty"`
	Passcode    string `json:"passcode,omitempty"`
	RunName     string `json:"run_name,omitempty"`
}

// ScoreRequest represents the request to score an extraction offline.
// Extraction is either the extraction object itself or the model's raw
// answer as a JSON string.
type ScoreRequest struct {
	Extraction json.RawMessage `json:"extraction" validate:"required"`
	Team       string          `json:"team,omitempty"`
	Passcode   string          `json:"passcode,omitempty"`
}

// HistoryQuery represents query parameters for listing history
type HistoryQuery struct {
	Limit int `query:"limit" validate:"min=1,max=500"`
}
