package speech

import (
	"strings"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
)

func TestTranscriptionRequestCarriesLanguage(t *testing.T) {
	provider := NewOpenAIProvider("test-key", "alloy", 1.0, "el")

	audio := strings.NewReader("fake-audio-bytes")
	req := provider.transcriptionRequest("question.wav", audio)

	assert.Equal(t, openai.Whisper1, req.Model)
	assert.Equal(t, "question.wav", req.FilePath)
	assert.Equal(t, "el", req.Language)
	assert.Equal(t, audio, req.Reader)
}

func TestTranscriptionRequestEmptyLanguageAutoDetects(t *testing.T) {
	provider := NewOpenAIProvider("test-key", "alloy", 1.0, "")

	req := provider.transcriptionRequest("question.wav", strings.NewReader(""))

	assert.Empty(t, req.Language)
}
