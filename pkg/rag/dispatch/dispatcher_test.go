package dispatch

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cv-chatbot-be/internal/apperr"
	"cv-chatbot-be/internal/constant"
	"cv-chatbot-be/pkg/audit"
	"cv-chatbot-be/pkg/embedding"
	"cv-chatbot-be/pkg/llm"
	"cv-chatbot-be/pkg/rag/intent"
	"cv-chatbot-be/pkg/rag/prompt"
	"cv-chatbot-be/pkg/rag/search"
	"cv-chatbot-be/pkg/rag/session"
)

// scriptedProvider answers classification, rewrite and answer prompts
// from a fixed script and records the options of the final completion.
type scriptedProvider struct {
	intentLabel string
	rewritten   string
	answer      string
	answerErr   error
	lastOptions llm.Options
	answerCalls int
}

func (s *scriptedProvider) Chat(_ context.Context, _ []llm.Message, opts ...llm.Option) (string, error) {
	return s.answer, s.answerErr
}

func (s *scriptedProvider) Generate(_ context.Context, promptText string, opts ...llm.Option) (string, error) {
	switch {
	case strings.Contains(promptText, "classifying user questions"):
		return s.intentLabel, nil
	case strings.Contains(promptText, "precise search query"):
		return s.rewritten, nil
	default:
		s.answerCalls++
		for _, opt := range opts {
			opt(&s.lastOptions)
		}
		return s.answer, s.answerErr
	}
}

type recordingAuditor struct {
	entries []audit.Entry
	err     error
}

func (r *recordingAuditor) Publish(_ context.Context, entry audit.Entry) error {
	if r.err != nil {
		return r.err
	}
	r.entries = append(r.entries, entry)
	return nil
}

type noopLogger struct{}

func (noopLogger) Debug(string, string, map[string]interface{}) {}
func (noopLogger) Info(string, string, map[string]interface{})  {}
func (noopLogger) Warn(string, string, map[string]interface{})  {}
func (noopLogger) Error(string, string, map[string]interface{}) {}
func (noopLogger) Sync() error                                  { return nil }

type fixedEmbedder struct{}

func (fixedEmbedder) Generate(context.Context, string) ([]float32, error) {
	return []float32{0.1, 0.2, 0.3}, nil
}
func (fixedEmbedder) Dimension() int { return 1024 }

type fixedSearcher struct {
	candidates []search.Candidate
	err        error
}

func (f *fixedSearcher) SearchByVector(context.Context, []float32, string, string, int) ([]search.Candidate, error) {
	return f.candidates, f.err
}

func newDispatcher(provider *scriptedProvider, searcher search.SnippetSearcher, auditor audit.Publisher) *Dispatcher {
	registry := embedding.NewRegistry()
	registry.Register(constant.EmbeddingDim1024, fixedEmbedder{})

	return NewDispatcher(
		intent.NewClassifier(provider),
		search.NewRetriever(provider, registry, searcher),
		prompt.NewBuilder("Data Engineering: - Spark (Lv 8/10)"),
		provider,
		auditor,
		noopLogger{},
	)
}

func TestDispatchRetrievalPath(t *testing.T) {
	provider := &scriptedProvider{
		intentLabel: "experience",
		rewritten:   "Alexandros experience Waymore data engineering",
		answer:      "I have been at Waymore since 2023.",
	}
	auditor := &recordingAuditor{}
	dispatcher := newDispatcher(provider, &fixedSearcher{candidates: []search.Candidate{
		{Content: "Waymore data pipelines", Source: "experience", Score: 0.8},
	}}, auditor)

	sess := session.New("sess-1", "")
	result, err := dispatcher.Dispatch(context.Background(), sess, "Where do you work now?")
	require.NoError(t, err)

	assert.Equal(t, constant.IntentExperience, result.Intent)
	assert.Equal(t, "I have been at Waymore since 2023.", result.Reply)
	assert.Empty(t, result.Speech)

	// Opening message plus both turns of this exchange.
	require.Len(t, sess.Turns, 3)
	assert.Equal(t, constant.ChatRoleUser, sess.Turns[1].Role)
	assert.Equal(t, constant.ChatRoleAssistant, sess.Turns[2].Role)

	require.Len(t, auditor.entries, 2)
	input, response := auditor.entries[0], auditor.entries[1]
	assert.Equal(t, constant.MessageTypeInput, input.MessageType)
	assert.Equal(t, "Where do you work now?", input.Message)
	assert.Equal(t, constant.MessageTypeResponse, response.MessageType)
	assert.Equal(t, constant.DefaultModel, response.ModelUsed)
	assert.Contains(t, response.ContextSnippet, "Waymore data pipelines")
	assert.NotEmpty(t, response.Prompt)
}

func TestDispatchFarewellSkipsModel(t *testing.T) {
	provider := &scriptedProvider{intentLabel: "farewell", answer: "should never be used"}
	auditor := &recordingAuditor{}
	dispatcher := newDispatcher(provider, &fixedSearcher{}, auditor)

	sess := session.New("sess-2", "")
	result, err := dispatcher.Dispatch(context.Background(), sess, "bye, thanks!")
	require.NoError(t, err)

	assert.Equal(t, constant.FarewellMessage, result.Reply)
	assert.Zero(t, provider.answerCalls)

	require.Len(t, auditor.entries, 2)
	assert.Empty(t, auditor.entries[1].ModelUsed)
	assert.Empty(t, auditor.entries[1].Prompt)
}

func TestDispatchGreetingUsesSmallPrompt(t *testing.T) {
	provider := &scriptedProvider{intentLabel: "casual_greeting", answer: "Hey! Ask me about my work."}
	auditor := &recordingAuditor{}
	dispatcher := newDispatcher(provider, &fixedSearcher{err: errors.New("store must not be hit")}, auditor)

	sess := session.New("sess-3", "")
	result, err := dispatcher.Dispatch(context.Background(), sess, "hello!")
	require.NoError(t, err)

	assert.Equal(t, "Hey! Ask me about my work.", result.Reply)
	require.Len(t, auditor.entries, 2)
	assert.Empty(t, auditor.entries[1].ContextSnippet)
	assert.Contains(t, auditor.entries[1].Prompt, "natural-sounding greeting")
}

func TestDispatchEmptyMessageIsNoOp(t *testing.T) {
	provider := &scriptedProvider{intentLabel: "unknown"}
	auditor := &recordingAuditor{}
	dispatcher := newDispatcher(provider, &fixedSearcher{}, auditor)

	sess := session.New("sess-4", "")
	result, err := dispatcher.Dispatch(context.Background(), sess, "   ")
	require.NoError(t, err)

	assert.Nil(t, result)
	assert.Len(t, sess.Turns, 1)
	assert.Empty(t, auditor.entries)
}

func TestDispatchTruncatesLongMessage(t *testing.T) {
	provider := &scriptedProvider{intentLabel: "job_description", answer: "Sounds like a good fit."}
	auditor := &recordingAuditor{}
	dispatcher := newDispatcher(provider, &fixedSearcher{}, auditor)

	sess := session.New("sess-5", "")
	long := strings.Repeat("a", constant.MaxUserMessageLength+500)
	_, err := dispatcher.Dispatch(context.Background(), sess, long)
	require.NoError(t, err)

	assert.Len(t, sess.Turns[1].Text, constant.MaxUserMessageLength)
	assert.Len(t, auditor.entries[0].Message, constant.MaxUserMessageLength)
}

func TestDispatchCompletionFailure(t *testing.T) {
	provider := &scriptedProvider{intentLabel: "experience", answerErr: errors.New("503")}
	dispatcher := newDispatcher(provider, &fixedSearcher{}, &recordingAuditor{})

	sess := session.New("sess-6", "")
	_, err := dispatcher.Dispatch(context.Background(), sess, "tell me about your projects")
	require.Error(t, err)

	var extErr *apperr.ExternalServiceError
	assert.ErrorAs(t, err, &extErr)

	// The user turn was recorded but no assistant turn follows.
	require.Len(t, sess.Turns, 2)
	assert.Equal(t, constant.ChatRoleUser, sess.Turns[1].Role)
}

func TestDispatchCreativeTemperatureForOffCVIntent(t *testing.T) {
	provider := &scriptedProvider{
		intentLabel: "cv_irrelevant_discuss_with_alex",
		rewritten:   "poem about data engineering",
		answer:      "Here is a short poem.",
	}
	dispatcher := newDispatcher(provider, &fixedSearcher{}, &recordingAuditor{})

	sess := session.New("sess-7", "")
	_, err := dispatcher.Dispatch(context.Background(), sess, "write me a poem")
	require.NoError(t, err)

	assert.Equal(t, constant.TemperatureCreative, provider.lastOptions.Temperature)
}

func TestDispatchDeterministicTemperatureByDefault(t *testing.T) {
	provider := &scriptedProvider{
		intentLabel: "skills_or_tools",
		rewritten:   "tools used",
		answer:      "Mostly Spark and Airflow.",
	}
	dispatcher := newDispatcher(provider, &fixedSearcher{}, &recordingAuditor{})

	sess := session.New("sess-8", "")
	_, err := dispatcher.Dispatch(context.Background(), sess, "what tools do you use?")
	require.NoError(t, err)

	assert.Equal(t, constant.TemperatureDefault, provider.lastOptions.Temperature)
}

func TestDispatchVoiceSessionParsesStructuredReply(t *testing.T) {
	provider := &scriptedProvider{
		intentLabel: "experience",
		rewritten:   "experience query",
		answer:      `{"text": "I work at Waymore.", "tts": "<speak>I work at Waymore.</speak>"}`,
	}
	dispatcher := newDispatcher(provider, &fixedSearcher{}, &recordingAuditor{})

	sess := session.New("sess-9", "")
	sess.VoiceEnabled = true

	result, err := dispatcher.Dispatch(context.Background(), sess, "where do you work?")
	require.NoError(t, err)

	assert.Equal(t, "I work at Waymore.", result.Reply)
	assert.Equal(t, "<speak>I work at Waymore.</speak>", result.Speech)
	assert.Equal(t, "<speak>I work at Waymore.</speak>", sess.Turns[2].SpeechText)
}

func TestDispatchVoiceSessionMalformedReply(t *testing.T) {
	provider := &scriptedProvider{
		intentLabel: "experience",
		rewritten:   "experience query",
		answer:      "just plain prose, no JSON",
	}
	dispatcher := newDispatcher(provider, &fixedSearcher{}, &recordingAuditor{})

	sess := session.New("sess-10", "")
	sess.VoiceEnabled = true

	_, err := dispatcher.Dispatch(context.Background(), sess, "where do you work?")
	require.Error(t, err)

	var malformed *apperr.MalformedOutputError
	assert.ErrorAs(t, err, &malformed)
}
