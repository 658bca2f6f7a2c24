package pulse

import (
	"time"

	"github.com/johnquangdev/signal-pulse/internal/domain/entities"
)

// RunResponse represents a completed pulse run
type RunResponse struct {
	RunID       string                     `json:"run_id"`
	MeetingType string                     `json:"meeting_type"`
	Report      string                     `json:"report"`
	Saved       entities.SavedPaths        `json:"saved"`
	Normalized  entities.NormalizedSignals `json:"normalized"`
	Metrics     entities.Metrics           `json:"metrics"`
	Scores      entities.Scores            `json:"scores"`
}

// ScoreResponse represents an offline scoring result
type ScoreResponse struct {
	Normalized entities.NormalizedSignals `json:"normalized"`
	Metrics    entities.Metrics           `json:"metrics"`
	Scores     entities.Scores            `json:"scores"`
}

// HistoryResponse represents recent history entries, newest first
type HistoryResponse struct {
	Entries []entities.HistoryEntry `json:"entries"`
	Count   int                     `json:"count"`
}

// RunRecordResponse represents a stored run record
type RunRecordResponse struct {
	RunID         string             `json:"run_id"`
	MeetingType   string             `json:"meeting_type"`
	RunName       *string            `json:"run_name,omitempty"`
	Tone          string             `json:"tone"`
	Overall       int                `json:"overall"`
	Grade         entities.Grade     `json:"grade"`
	ExecutionRisk entities.RiskLevel `json:"execution_risk"`
	Metrics       entities.Metrics   `json:"metrics"`
	Scores        entities.Scores    `json:"scores"`
	ArtifactDir   string             `json:"artifact_dir,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
}

// HealthResponse represents the pulse health probe
type HealthResponse struct {
	OK              bool   `json:"ok"`
	ServerTimeISO   string `json:"server_time_iso"`
	HasZoAPIKey     bool   `json:"has_zo_api_key"`
	ZoAPIKeyLength  int    `json:"zo_api_key_length"`
	HasPasscode     bool   `json:"has_passcode"`
	HasPasscodeKey  bool   `json:"has_passcode_key"`
	PasscodeLength  int    `json:"passcode_length"`
	LLMProvider     string `json:"llm_provider"`
	LLMConfigured   bool   `json:"llm_configured"`
	DatabaseEnabled bool   `json:"database_enabled"`
}
