package speech

import (
	"bytes"
	"context"
	"fmt"
	"io"

	openai "github.com/sashabaranov/go-openai"
)

// Transcriber turns recorded audio into text.
type Transcriber interface {
	Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error)
}

// Synthesizer renders assistant speech text as audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// OpenAIProvider backs both directions with the OpenAI audio endpoints.
type OpenAIProvider struct {
	client       *openai.Client
	voice        openai.SpeechVoice
	speakingRate float64
	language     string
}

var (
	_ Transcriber = &OpenAIProvider{}
	_ Synthesizer = &OpenAIProvider{}
)

// NewOpenAIProvider builds a provider for both audio directions.
// language is an ISO-639-1 code ("en", "el") hinting the speech
// recognizer; empty means auto-detect.
func NewOpenAIProvider(apiKey, voice string, speakingRate float64, language string) *OpenAIProvider {
	return &OpenAIProvider{
		client:       openai.NewClient(apiKey),
		voice:        openai.SpeechVoice(voice),
		speakingRate: speakingRate,
		language:     language,
	}
}

func (p *OpenAIProvider) Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error) {
	resp, err := p.client.CreateTranscription(ctx, p.transcriptionRequest(filename, audio))
	if err != nil {
		return "", fmt.Errorf("transcription: %w", err)
	}
	return resp.Text, nil
}

func (p *OpenAIProvider) transcriptionRequest(filename string, audio io.Reader) openai.AudioRequest {
	return openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: filename,
		Reader:   audio,
		Language: p.language,
	}
}

func (p *OpenAIProvider) Synthesize(ctx context.Context, text string) ([]byte, error) {
	resp, err := p.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.TTSModel1,
		Input:          text,
		Voice:          p.voice,
		Speed:          p.speakingRate,
		ResponseFormat: openai.SpeechResponseFormatMp3,
	})
	if err != nil {
		return nil, fmt.Errorf("speech synthesis: %w", err)
	}
	defer resp.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp); err != nil {
		return nil, fmt.Errorf("reading synthesized audio: %w", err)
	}
	return buf.Bytes(), nil
}
