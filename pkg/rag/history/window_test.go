package history

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cv-chatbot-be/internal/constant"
	"cv-chatbot-be/pkg/rag/session"
)

func turnsFixture() []session.Turn {
	return []session.Turn{
		{Role: constant.ChatRoleAssistant, Text: "Hi! Ask me anything."},
		{Role: constant.ChatRoleUser, Text: "Where do you work?"},
		{Role: constant.ChatRoleAssistant, Text: "I work at Waymore\nsince 2023."},
		{Role: constant.ChatRoleUser, Text: "What about before that?"},
	}
}

func TestWindowFor(t *testing.T) {
	assert.Equal(t, constant.HistoryWindowFollowUp, WindowFor(constant.IntentFollowUp))
	assert.Equal(t, constant.HistoryWindowDefault, WindowFor(constant.IntentExperience))
	assert.Equal(t, constant.HistoryWindowDefault, WindowFor(constant.IntentUnknown))
}

func TestFlattenTakesTrailingTurns(t *testing.T) {
	got := Flatten(turnsFixture(), 2)
	assert.Equal(t, "Assistant: I work at Waymore since 2023.\nUser: What about before that?", got)
}

func TestFlattenCollapsesNewlines(t *testing.T) {
	got := Flatten(turnsFixture(), 4)
	assert.NotContains(t, got[len("Assistant:"):], "\n\n")
	assert.Contains(t, got, "Assistant: I work at Waymore since 2023.")
}

func TestFlattenShortHistory(t *testing.T) {
	turns := turnsFixture()[:1]
	assert.Equal(t, "Assistant: Hi! Ask me anything.", Flatten(turns, 4))
}

func TestFlattenEmpty(t *testing.T) {
	assert.Equal(t, "", Flatten(nil, 2))
	assert.Equal(t, "", Flatten(turnsFixture(), 0))
}

func TestForIntentUsesWiderWindowForFollowUp(t *testing.T) {
	turns := turnsFixture()

	followUp := ForIntent(turns, constant.IntentFollowUp)
	regular := ForIntent(turns, constant.IntentExperience)

	assert.Contains(t, followUp, "Where do you work?")
	assert.NotContains(t, regular, "Where do you work?")
}
