package session

import (
	"context"
	"errors"
	"time"

	"cv-chatbot-be/internal/constant"
)

var ErrNotFound = errors.New("session not found")

// Turn is one utterance in a conversation. SpeechText carries the SSML
// variant for voice sessions and is empty for text-only turns.
type Turn struct {
	Role       string    `json:"role"`
	Text       string    `json:"text"`
	SpeechText string    `json:"speech_text,omitempty"`
	Intent     string    `json:"intent,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Session holds the full conversational state for one visitor. All of
// the runtime knobs the settings endpoint can change live here so a
// session survives a backend swap intact.
type Session struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id,omitempty"`
	Turns          []Turn    `json:"turns"`
	Model          string    `json:"model"`
	EmbeddingDim   string    `json:"embedding_dim"`
	IncludeHistory bool      `json:"include_history"`
	VoiceEnabled   bool      `json:"voice_enabled"`
	ErrorFlag      bool      `json:"error_flag"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// New returns a session primed with the assistant's opening message and
// the default runtime settings.
func New(id, userID string) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:     id,
		UserID: userID,
		Turns: []Turn{
			{
				Role:      constant.ChatRoleAssistant,
				Text:      constant.InitialAssistantMessage,
				CreatedAt: now,
			},
		},
		Model:          constant.DefaultModel,
		EmbeddingDim:   constant.DefaultEmbeddingDim,
		IncludeHistory: true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// clone returns an independent copy so stored state only ever changes
// through Save, the way a serializing backend behaves.
func (s *Session) clone() *Session {
	copied := *s
	copied.Turns = make([]Turn, len(s.Turns))
	copy(copied.Turns, s.Turns)
	return &copied
}

// Append records a turn and bumps the modification time.
func (s *Session) Append(role, text, speechText, intent string) {
	now := time.Now().UTC()
	s.Turns = append(s.Turns, Turn{
		Role:       role,
		Text:       text,
		SpeechText: speechText,
		Intent:     intent,
		CreatedAt:  now,
	})
	s.UpdatedAt = now
}

// Store abstracts where live sessions are kept. Both backends share the
// same TTL semantics: an idle session eventually expires.
type Store interface {
	Save(ctx context.Context, s *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}
