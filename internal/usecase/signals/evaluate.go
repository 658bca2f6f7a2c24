package signals

import "github.com/johnquangdev/signal-pulse/internal/domain/entities"

// Evaluation is the full output of the engine for one extraction
type Evaluation struct {
	Normalized entities.NormalizedSignals `json:"normalized"`
	Metrics    entities.Metrics           `json:"metrics"`
	Scores     entities.Scores            `json:"scores"`
}

// Evaluate runs normalize, metrics and scoring in order
func Evaluate(raw any, roster *entities.Roster) Evaluation {
	normalized := Normalize(raw, roster)
	metrics := ComputeMetrics(normalized)
	return Evaluation{
		Normalized: normalized,
		Metrics:    metrics,
		Scores:     ComputeScores(metrics),
	}
}
