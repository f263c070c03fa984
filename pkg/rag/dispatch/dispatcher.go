package dispatch

import (
	"context"
	"strings"
	"time"

	"cv-chatbot-be/internal/apperr"
	"cv-chatbot-be/internal/constant"
	"cv-chatbot-be/internal/pkg/logger"
	"cv-chatbot-be/pkg/audit"
	"cv-chatbot-be/pkg/llm"
	"cv-chatbot-be/pkg/rag/history"
	"cv-chatbot-be/pkg/rag/intent"
	"cv-chatbot-be/pkg/rag/prompt"
	"cv-chatbot-be/pkg/rag/search"
	"cv-chatbot-be/pkg/rag/session"
)

// Result is one answered turn. Speech carries the SSML variant and is
// only set for voice sessions on the retrieval path.
type Result struct {
	Intent string
	Reply  string
	Speech string
}

// Dispatcher routes a user message through intent classification and
// the branch that intent selects: fixed farewell, small prompts for
// greetings and unclassifiable input, or full retrieval for everything
// else. It appends both turns to the session; the caller persists it.
type Dispatcher struct {
	classifier *intent.Classifier
	retriever  *search.Retriever
	prompts    *prompt.Builder
	provider   llm.LLMProvider
	auditor    audit.Publisher
	log        logger.ILogger
}

func NewDispatcher(
	classifier *intent.Classifier,
	retriever *search.Retriever,
	prompts *prompt.Builder,
	provider llm.LLMProvider,
	auditor audit.Publisher,
	log logger.ILogger,
) *Dispatcher {
	return &Dispatcher{
		classifier: classifier,
		retriever:  retriever,
		prompts:    prompts,
		provider:   provider,
		auditor:    auditor,
		log:        log,
	}
}

// Dispatch answers one user message. A blank message is a no-op and
// returns a nil result. Any external failure bubbles up unanswered so
// the caller can apply its session-reset policy.
func (d *Dispatcher) Dispatch(ctx context.Context, sess *session.Session, userMessage string) (*Result, error) {
	msg := strings.TrimSpace(userMessage)
	if msg == "" {
		return nil, nil
	}
	if runes := []rune(msg); len(runes) > constant.MaxUserMessageLength {
		msg = string(runes[:constant.MaxUserMessageLength])
	}

	label, err := d.classifier.Classify(ctx, msg, sess.Model)
	if err != nil {
		return nil, err
	}

	sess.Append(constant.ChatRoleUser, msg, "", label)
	d.publish(ctx, audit.Entry{
		SessionID:     sess.ID,
		UserID:        sess.UserID,
		Role:          constant.ChatRoleUser,
		Message:       msg,
		Intent:        label,
		MessageType:   constant.MessageTypeInput,
		EmbeddingSize: sess.EmbeddingDim,
	})

	result, responseEntry, err := d.answer(ctx, sess, msg, label)
	if err != nil {
		return nil, err
	}

	sess.Append(constant.ChatRoleAssistant, result.Reply, result.Speech, label)
	d.publish(ctx, *responseEntry)

	return result, nil
}

func (d *Dispatcher) answer(ctx context.Context, sess *session.Session, msg, label string) (*Result, *audit.Entry, error) {
	entry := &audit.Entry{
		SessionID:     sess.ID,
		UserID:        sess.UserID,
		Role:          constant.ChatRoleAssistant,
		Intent:        label,
		EmbeddingSize: sess.EmbeddingDim,
		MessageType:   constant.MessageTypeResponse,
	}

	switch label {
	case constant.IntentFarewell:
		// Fixed text, no model round-trip.
		entry.Message = constant.FarewellMessage
		return &Result{Intent: label, Reply: constant.FarewellMessage}, entry, nil

	case constant.IntentCasualGreeting:
		return d.smallTalk(ctx, sess, label, d.prompts.BuildGreeting(msg), entry)

	case constant.IntentUnknown:
		return d.smallTalk(ctx, sess, label, d.prompts.BuildClarification(msg), entry)

	default:
		return d.retrievalAnswer(ctx, sess, msg, label, entry)
	}
}

func (d *Dispatcher) smallTalk(ctx context.Context, sess *session.Session, label, promptText string, entry *audit.Entry) (*Result, *audit.Entry, error) {
	reply, err := d.provider.Generate(ctx, promptText,
		llm.WithModel(sess.Model),
		llm.WithTemperature(constant.TemperatureDefault),
	)
	if err != nil {
		return nil, nil, apperr.External("completion", err)
	}

	entry.Message = reply
	entry.ModelUsed = sess.Model
	entry.Prompt = promptText
	return &Result{Intent: label, Reply: reply}, entry, nil
}

func (d *Dispatcher) retrievalAnswer(ctx context.Context, sess *session.Session, msg, label string, entry *audit.Entry) (*Result, *audit.Entry, error) {
	// The retrieval leg always sees recent history; the prompt only
	// includes it when the session has history enabled. Both turns of
	// the current exchange are already on the session, so the window
	// is taken from the turns before the pending user message.
	priorTurns := sess.Turns[:len(sess.Turns)-1]
	retrievalHistory := history.ForIntent(priorTurns, label)

	contextBlock, err := d.retriever.Retrieve(ctx, msg, label, retrievalHistory, sess.Model, sess.EmbeddingDim)
	if err != nil {
		return nil, nil, err
	}

	promptHistory := ""
	if sess.IncludeHistory {
		promptHistory = retrievalHistory
	}

	params := prompt.Params{
		UserMessage: msg,
		Context:     contextBlock,
		Intent:      label,
		History:     promptHistory,
	}

	promptText := d.prompts.Build(params)
	if sess.VoiceEnabled {
		promptText = d.prompts.BuildVoice(params)
	}

	raw, err := d.provider.Generate(ctx, promptText,
		llm.WithModel(sess.Model),
		llm.WithTemperature(temperatureFor(label)),
	)
	if err != nil {
		return nil, nil, apperr.External("completion", err)
	}

	result := &Result{Intent: label, Reply: raw}
	if sess.VoiceEnabled {
		structured, err := prompt.ParseStructured(raw)
		if err != nil {
			return nil, nil, err
		}
		result.Reply = structured.Display
		result.Speech = structured.Speech
	}

	entry.Message = result.Reply
	entry.ModelUsed = sess.Model
	entry.ContextSnippet = contextBlock
	entry.Prompt = promptText
	return result, entry, nil
}

// temperatureFor keeps factual intents deterministic and lets the
// off-CV branch be playful.
func temperatureFor(label string) float64 {
	if label == constant.IntentCvIrrelevant {
		return constant.TemperatureCreative
	}
	return constant.TemperatureDefault
}

func (d *Dispatcher) publish(ctx context.Context, entry audit.Entry) {
	entry.Timestamp = time.Now().UTC()
	if err := d.auditor.Publish(ctx, entry); err != nil {
		d.log.Warn("DISPATCH", "failed to publish audit entry", map[string]interface{}{
			"session_id": entry.SessionID,
			"error":      err.Error(),
		})
	}
}
