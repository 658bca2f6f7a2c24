package pulse

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/signal-pulse/internal/domain/entities"
	"github.com/johnquangdev/signal-pulse/internal/usecase/signals"
)

func TestExtractionPrompt(t *testing.T) {
	t.Run("Should embed the team list and hint", func(t *testing.T) {
		p := ExtractionPrompt("Alice will ship.", "Standup", "Alice, Bob")

		assert.Contains(t, p, "Team members list (owners must be chosen from this list if possible): Alice, Bob\n")
		assert.Contains(t, p, "Meeting type hint: Standup\n")
		assert.True(t, strings.HasSuffix(p, "Meeting notes:\nAlice will ship."))
	})

	t.Run("Should say when nothing is known", func(t *testing.T) {
		p := ExtractionPrompt("n", "", "")

		assert.Contains(t, p, "No team list provided.\n")
		assert.Contains(t, p, "Meeting type hint: null\n")
		assert.Contains(t, p, `"accountability_gaps": string[],`)
	})
}

func TestReportPrompt(t *testing.T) {
	eval := signals.Evaluate(map[string]any{"action_items": []any{map[string]any{"task": "Ship"}}}, nil)

	p, err := ReportPrompt(ReportPayload{
		MeetingType: "Retro",
		Tone:        "Direct",
		Normalized:  eval.Normalized,
		Metrics:     eval.Metrics,
		Scores:      eval.Scores,
	})
	require.NoError(t, err)

	assert.Contains(t, p, "Output tone: Direct\n")
	assert.Contains(t, p, "\n"+ImprovementChallenge+"\n")
	assert.Contains(t, p, "Meeting Effectiveness Score: X/100\n")

	marker := "Data (do not restate as JSON, use it to generate the report):\n"
	idx := strings.Index(p, marker)
	require.GreaterOrEqual(t, idx, 0)

	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(p[idx+len(marker):]), &payload))
	assert.Equal(t, "Retro", payload["meetingType"])
	assert.Equal(t, "Direct", payload["tone"])

	scores := payload["scores"].(map[string]any)
	assert.Equal(t, string(eval.Scores.ExecutionRisk), scores["executionRisk"])
	assert.EqualValues(t, eval.Scores.Overall, scores["overall"])

	normalized := payload["normalized"].(map[string]any)
	items := normalized["action_items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, entities.OwnerUnassigned, items[0].(map[string]any)["owner"])
}
