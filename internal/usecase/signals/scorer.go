package signals

import (
	"math"

	"github.com/johnquangdev/signal-pulse/internal/domain/entities"
)

// Score deductions per counted signal
const (
	unassignedPenalty         = 12
	missingDeadlinePenalty    = 6
	lowClarityPenalty         = 10
	unclearDecisionPenalty    = 8
	openQuestionPenalty       = 4
	blockerPenalty            = 18
	highPriorityNoDatePenalty = 14

	accountabilityWeight = 0.35
	clarityWeight        = 0.35
	riskWeight           = 0.30
)

// ComputeScores maps metrics to sub-scores, an overall score, a grade and an
// execution risk level.
func ComputeScores(m entities.Metrics) entities.Scores {
	accountability := clamp(100-m.UnassignedTasks*unassignedPenalty-m.TasksMissingDeadline*missingDeadlinePenalty, 0, 100)
	clarity := clamp(100-m.LowClarityTasks*lowClarityPenalty-m.UnclearDecisions*unclearDecisionPenalty-m.OpenQuestions*openQuestionPenalty, 0, 100)
	risk := clamp(100-m.Blockers*blockerPenalty-m.HighPriorityMissingDeadline*highPriorityNoDatePenalty, 0, 100)

	overall := OverallScore(accountability, clarity, risk)

	return entities.Scores{
		Accountability: accountability,
		Clarity:        clarity,
		Risk:           risk,
		Overall:        overall,
		Grade:          GradeFor(overall),
		ExecutionRisk:  ExecutionRiskFor(m),
	}
}

// OverallScore is the weighted sum of the sub-scores rounded half up.
// The explicit float64 conversions stop the compiler fusing multiply-add,
// which could move a x.5 boundary.
func OverallScore(accountability, clarity, risk int) int {
	a := float64(accountabilityWeight * float64(accountability))
	c := float64(clarityWeight * float64(clarity))
	r := float64(riskWeight * float64(risk))
	return int(math.Floor(a + c + r + 0.5))
}

// GradeFor maps an overall score to a letter grade
func GradeFor(overall int) entities.Grade {
	switch {
	case overall >= 90:
		return entities.GradeA
	case overall >= 80:
		return entities.GradeB
	case overall >= 70:
		return entities.GradeC
	case overall >= 60:
		return entities.GradeD
	default:
		return entities.GradeF
	}
}

// ExecutionRiskFor escalates from Low. High rules are all evaluated first;
// Medium is only considered when none of them fired.
func ExecutionRiskFor(m entities.Metrics) entities.RiskLevel {
	level := entities.RiskLevelLow

	if m.UnassignedTasks >= 3 {
		level = entities.RiskLevelHigh
	}
	if m.HighPriorityMissingDeadline >= 1 {
		level = entities.RiskLevelHigh
	}
	if m.Blockers >= 1 && m.HighPriorityTasks >= 1 {
		level = entities.RiskLevelHigh
	}

	if level != entities.RiskLevelHigh {
		if m.UnassignedTasks >= 1 || m.Blockers >= 1 || m.TasksMissingDeadline >= 2 || m.LowClarityTasks >= 2 {
			level = entities.RiskLevelMedium
		}
	}

	return level
}

func clamp(n, lo, hi int) int {
	return max(lo, min(hi, n))
}
