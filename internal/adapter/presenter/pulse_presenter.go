package presenter

import (
	"github.com/johnquangdev/signal-pulse/internal/adapter/dto/pulse"
	"github.com/johnquangdev/signal-pulse/internal/domain/entities"
	pulseuse "github.com/johnquangdev/signal-pulse/internal/usecase/pulse"
	"github.com/johnquangdev/signal-pulse/internal/usecase/signals"
)

// ToRunResponse converts a pipeline result to RunResponse DTO
func ToRunResponse(r *pulseuse.Result) *pulse.RunResponse {
	if r == nil {
		return nil
	}
	return &pulse.RunResponse{
		RunID:       r.RunID,
		MeetingType: r.MeetingType,
		Report:      r.Report,
		Saved:       r.Saved,
		Normalized:  r.Normalized,
		Metrics:     r.Metrics,
		Scores:      r.Scores,
	}
}

// ToScoreResponse converts an evaluation to ScoreResponse DTO
func ToScoreResponse(e *signals.Evaluation) *pulse.ScoreResponse {
	if e == nil {
		return nil
	}
	return &pulse.ScoreResponse{
		Normalized: e.Normalized,
		Metrics:    e.Metrics,
		Scores:     e.Scores,
	}
}

// ToHistoryResponse wraps history entries, never returning a nil slice
func ToHistoryResponse(entries []entities.HistoryEntry) *pulse.HistoryResponse {
	if entries == nil {
		entries = []entities.HistoryEntry{}
	}
	return &pulse.HistoryResponse{Entries: entries, Count: len(entries)}
}

// ToRunRecordResponse converts a PulseRun entity to RunRecordResponse DTO
func ToRunRecordResponse(r *entities.PulseRun) *pulse.RunRecordResponse {
	if r == nil {
		return nil
	}
	return &pulse.RunRecordResponse{
		RunID:         r.RunID,
		MeetingType:   r.MeetingType,
		RunName:       r.RunName,
		Tone:          r.Tone,
		Overall:       r.Overall,
		Grade:         r.Grade,
		ExecutionRisk: r.ExecutionRisk,
		Metrics:       r.Metrics.Data(),
		Scores:        r.Scores.Data(),
		ArtifactDir:   r.ArtifactDir,
		CreatedAt:     r.CreatedAt,
	}
}

// ToRunRecordResponses converts a list of PulseRun entities
func ToRunRecordResponses(runs []*entities.PulseRun) []*pulse.RunRecordResponse {
	out := make([]*pulse.RunRecordResponse, 0, len(runs))
	for _, r := range runs {
		out = append(out, ToRunRecordResponse(r))
	}
	return out
}
