package presenter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/signal-pulse/internal/domain/entities"
)

func TestToHistoryResponse(t *testing.T) {
	t.Run("Should return an empty list for nil entries", func(t *testing.T) {
		resp := ToHistoryResponse(nil)
		require.NotNil(t, resp.Entries)
		assert.Empty(t, resp.Entries)
		assert.Zero(t, resp.Count)
	})

	t.Run("Should count entries", func(t *testing.T) {
		resp := ToHistoryResponse([]entities.HistoryEntry{{MeetingType: "Standup"}, {MeetingType: "Retro"}})
		assert.Equal(t, 2, resp.Count)
	})
}

func TestToRunRecordResponse(t *testing.T) {
	name := "Weekly sync"
	scores := entities.Scores{Overall: 82, Grade: entities.GradeB, ExecutionRisk: entities.RiskLevelLow}
	run := entities.NewPulseRun("2026-03-05_151507_abcdef12", "Standup", "Direct", &name,
		entities.NormalizedSignals{}, entities.Metrics{TotalTasks: 3}, scores)
	run.ArtifactDir = "runs/2026-03-05_151507_weekly-sync_abcdef12"

	resp := ToRunRecordResponse(run)

	assert.Equal(t, "2026-03-05_151507_abcdef12", resp.RunID)
	assert.Equal(t, &name, resp.RunName)
	assert.Equal(t, 82, resp.Overall)
	assert.Equal(t, entities.GradeB, resp.Grade)
	assert.Equal(t, 3, resp.Metrics.TotalTasks)
	assert.Equal(t, scores, resp.Scores)
	assert.Equal(t, run.ArtifactDir, resp.ArtifactDir)

	assert.Nil(t, ToRunRecordResponse(nil))
	assert.Len(t, ToRunRecordResponses([]*entities.PulseRun{run, run}), 2)
}
