package dto

import "time"

type CreateSessionRequest struct {
	UserId string `json:"user_id,omitempty" validate:"omitempty,uuid4"`
}

type CreateSessionResponse struct {
	SessionId string           `json:"session_id"`
	Greeting  string           `json:"greeting"`
	Settings  SettingsResponse `json:"settings"`
}

type SendChatRequest struct {
	SessionId string `json:"session_id" validate:"required,uuid4"`
	Message   string `json:"message" validate:"required"`
}

type SendChatResponse struct {
	SessionId string `json:"session_id"`
	Intent    string `json:"intent"`
	Reply     string `json:"reply"`
	Speech    string `json:"speech,omitempty"`
}

type TurnDTO struct {
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	Intent    string    `json:"intent,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type GetHistoryResponse struct {
	SessionId string    `json:"session_id"`
	Turns     []TurnDTO `json:"turns"`
}

type ResetSessionRequest struct {
	SessionId string `json:"session_id" validate:"required,uuid4"`
}

type ResetSessionResponse struct {
	SessionId string `json:"session_id"`
	Greeting  string `json:"greeting"`
}

// UpdateSettingsRequest patches per-session knobs. Nil fields stay as
// they are.
type UpdateSettingsRequest struct {
	SessionId      string  `json:"session_id" validate:"required,uuid4"`
	Model          *string `json:"model,omitempty"`
	EmbeddingSize  *string `json:"embedding_size,omitempty"`
	IncludeHistory *bool   `json:"include_history,omitempty"`
	VoiceEnabled   *bool   `json:"voice_enabled,omitempty"`
}

type SettingsResponse struct {
	Model              string   `json:"model"`
	EmbeddingSize      string   `json:"embedding_size"`
	IncludeHistory     bool     `json:"include_history"`
	VoiceEnabled       bool     `json:"voice_enabled"`
	AvailableModels    []string `json:"available_models"`
	AvailableEmbedding []string `json:"available_embedding_sizes"`
}

type VoiceChatResponse struct {
	SessionId  string `json:"session_id"`
	Transcript string `json:"transcript"`
	Intent     string `json:"intent"`
	Reply      string `json:"reply"`
	Audio      []byte `json:"audio"` // base64 in JSON
	AudioMime  string `json:"audio_mime"`
}

type ExportChatResponse struct {
	SessionId string `json:"session_id"`
	Format    string `json:"format"`
	Content   string `json:"content"`
}
