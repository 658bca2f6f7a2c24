package entities

import (
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// PulseRun is the persisted record of one pulse pipeline execution
type PulseRun struct {
	ID            uuid.UUID                             `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	RunID         string                                `json:"run_id" gorm:"type:varchar(64);not null;uniqueIndex"`
	MeetingType   string                                `json:"meeting_type" gorm:"type:varchar(255);not null"`
	RunName       *string                               `json:"run_name,omitempty" gorm:"type:varchar(255)"`
	Tone          string                                `json:"tone" gorm:"type:varchar(255)"`
	Overall       int                                   `json:"overall" gorm:"type:integer;not null;index"`
	Grade         Grade                                 `json:"grade" gorm:"type:varchar(1);not null;index"`
	ExecutionRisk RiskLevel                             `json:"execution_risk" gorm:"type:varchar(10);not null;index"`
	Metrics       datatypes.JSONType[Metrics]           `json:"metrics" gorm:"type:jsonb;not null"`
	Scores        datatypes.JSONType[Scores]            `json:"scores" gorm:"type:jsonb;not null"`
	Signals       datatypes.JSONType[NormalizedSignals] `json:"signals" gorm:"type:jsonb;not null"`
	ArtifactDir   string                                `json:"artifact_dir" gorm:"type:text"`
	CreatedAt     time.Time                             `json:"created_at" gorm:"autoCreateTime"`
}

// NewPulseRun builds a run record from the pipeline outputs
func NewPulseRun(runID, meetingType, tone string, runName *string, signals NormalizedSignals, metrics Metrics, scores Scores) *PulseRun {
	return &PulseRun{
		ID:            uuid.New(),
		RunID:         runID,
		MeetingType:   meetingType,
		RunName:       runName,
		Tone:          tone,
		Overall:       scores.Overall,
		Grade:         scores.Grade,
		ExecutionRisk: scores.ExecutionRisk,
		Metrics:       datatypes.NewJSONType(metrics),
		Scores:        datatypes.NewJSONType(scores),
		Signals:       datatypes.NewJSONType(signals),
		CreatedAt:     time.Now(),
	}
}

// TableName specifies the table name for GORM
func (PulseRun) TableName() string {
	return "pulse_runs"
}

// HistoryEntry is one line of the run history log
type HistoryEntry struct {
	Timestamp          string    `json:"timestamp"`
	MeetingType        string    `json:"meeting_type"`
	Score              int       `json:"score"`
	Grade              Grade     `json:"grade"`
	ExecutionRiskLevel RiskLevel `json:"execution_risk_level"`
	Metrics            Metrics   `json:"metrics"`
}

// RunArtifacts bundles everything written to the artifact store for a run
type RunArtifacts struct {
	RunID         string
	Folder        string
	Base          string
	Date          string
	Signals       []byte
	Run           []byte
	Report        string
	NotesMarkdown string
}

// SavedPaths are the locations the artifact store wrote a run to
type SavedPaths struct {
	Outdir      string `json:"outdir"`
	ReportPath  string `json:"reportPath"`
	NotesPath   string `json:"notesPath"`
	RunPath     string `json:"runPath"`
	SignalsPath string `json:"signalsPath"`
}

// Paths lays the run's files out under its folder. Keys use forward slashes
// so the same layout serves object storage and the local filesystem.
func (a RunArtifacts) Paths() SavedPaths {
	return SavedPaths{
		Outdir:      a.Folder,
		SignalsPath: path.Join(a.Folder, fmt.Sprintf("%s-signals_%s.json", a.Base, a.Date)),
		RunPath:     path.Join(a.Folder, fmt.Sprintf("%s-run_%s.json", a.Base, a.Date)),
		ReportPath:  path.Join(a.Folder, fmt.Sprintf("%s-report_%s.md", a.Base, a.Date)),
		NotesPath:   path.Join(a.Folder, fmt.Sprintf("%s-notes_%s.md", a.Base, a.Date)),
	}
}
