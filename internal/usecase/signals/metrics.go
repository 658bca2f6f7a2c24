package signals

import "github.com/johnquangdev/signal-pulse/internal/domain/entities"

// ComputeMetrics counts the execution signals in s
func ComputeMetrics(s entities.NormalizedSignals) entities.Metrics {
	m := entities.Metrics{
		TotalTasks:    len(s.ActionItems),
		OpenQuestions: len(s.OpenQuestions),
	}

	for _, t := range s.ActionItems {
		highPriority := t.Priority == entities.PriorityHigh
		noDeadline := t.Deadline == entities.DeadlineNotSpecified

		if highPriority {
			m.HighPriorityTasks++
		}
		if t.Owner == entities.OwnerUnassigned {
			m.UnassignedTasks++
		}
		if noDeadline {
			m.TasksMissingDeadline++
		}
		if t.Clarity == entities.TaskClarityLow {
			m.LowClarityTasks++
		}
		if highPriority && noDeadline {
			m.HighPriorityMissingDeadline++
		}
	}

	for _, d := range s.Decisions {
		if d.Clarity == entities.DecisionClarityUnclear {
			m.UnclearDecisions++
		}
	}

	for _, r := range s.RisksBlockers {
		if r.Severity == entities.SeverityHigh {
			m.Blockers++
		}
	}

	return m
}
