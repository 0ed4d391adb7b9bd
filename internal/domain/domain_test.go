package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripAbsent_Nested(t *testing.T) {
	in := map[string]any{
		"word":   "TEAM",
		"reason": nil,
		"nested": map[string]any{"a": 1, "b": nil},
		"list":   []any{map[string]any{"x": nil, "y": "ok"}},
	}

	out := StripAbsent(in)

	assert.NotContains(t, out, "reason")
	assert.Equal(t, map[string]any{"a": 1}, out["nested"])
	assert.Equal(t, []any{map[string]any{"y": "ok"}}, out["list"])
	// исходная map не меняется
	assert.Contains(t, in, "reason")
}

func TestGameEventDocument_FillsTimestamp(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	ev := GameEvent{
		SessionID:  "s",
		ProlificID: "p",
		Phase:      EventPhaseMainGame,
		EventType:  EventGameInit,
		Details:    map[string]any{"word": "TEAM", "timeSpent": nil},
	}

	doc := ev.Document(now)

	assert.Equal(t, now, doc["timestamp"])
	assert.NotContains(t, doc, "currentTheoryId")
	assert.NotContains(t, doc, "anagramShown")
	assert.Equal(t, map[string]any{"word": "TEAM"}, doc["details"])
}

func TestGameEventDocument_KeepsClientTimestamp(t *testing.T) {
	ts := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	theory := 3
	ev := GameEvent{SessionID: "s", ProlificID: "p", Phase: "tutorial", EventType: "x", Timestamp: &ts, CurrentTheoryID: &theory}

	doc := ev.Document(time.Now())

	assert.Equal(t, ts, doc["timestamp"])
	assert.Equal(t, 3, doc["currentTheoryId"])
	assert.NotContains(t, doc, "details")
}

func TestNewSession_DefaultCompletionStatus(t *testing.T) {
	s := NewSession("id", "pid", Metadata{Browser: "firefox"}, time.Now())

	for _, phase := range []string{PhaseTutorial, PhaseMainGame, PhaseMeaningCheck} {
		entry := s.PhaseStatus(phase)
		require.NotNil(t, entry, phase)
		assert.Equal(t, false, entry["completed"])
	}
}
