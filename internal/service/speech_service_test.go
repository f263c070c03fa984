package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cv-chatbot-be/internal/apperr"
	"cv-chatbot-be/internal/constant"
	"cv-chatbot-be/internal/dto"
	"cv-chatbot-be/pkg/rag/session"
)

type fakeTranscriber struct {
	text string
	err  error
}

func (f *fakeTranscriber) Transcribe(_ context.Context, _ string, _ io.Reader) (string, error) {
	return f.text, f.err
}

type fakeSynthesizer struct {
	spoken []string
	err    error
}

func (f *fakeSynthesizer) Synthesize(_ context.Context, text string) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.spoken = append(f.spoken, text)
	return []byte("mp3-bytes"), nil
}

func TestTranscribe(t *testing.T) {
	svc := NewSpeechService(&fakeTranscriber{text: "where do you work"}, &fakeSynthesizer{}, nil, noopLogger{})

	resp, err := svc.Transcribe(context.Background(), "clip.wav", strings.NewReader("audio"))
	require.NoError(t, err)
	assert.Equal(t, "where do you work", resp.Text)
}

func TestTranscribeFailure(t *testing.T) {
	svc := NewSpeechService(&fakeTranscriber{err: errors.New("whisper down")}, &fakeSynthesizer{}, nil, noopLogger{})

	_, err := svc.Transcribe(context.Background(), "clip.wav", strings.NewReader("audio"))
	require.Error(t, err)

	var extErr *apperr.ExternalServiceError
	require.ErrorAs(t, err, &extErr)
	assert.Equal(t, "speech", extErr.Service)
}

func TestSynthesizeStripsMarkup(t *testing.T) {
	synth := &fakeSynthesizer{}
	svc := NewSpeechService(&fakeTranscriber{}, synth, nil, noopLogger{})

	resp, err := svc.Synthesize(context.Background(), &dto.SynthesizeRequest{
		Text: `<speak>I work at <emphasis level="strong">Waymore</emphasis>.</speak>`,
	})
	require.NoError(t, err)

	assert.Equal(t, []byte("mp3-bytes"), resp.Audio)
	assert.Equal(t, "audio/mpeg", resp.AudioMime)
	require.Len(t, synth.spoken, 1)
	assert.NotContains(t, synth.spoken[0], "<")
	assert.Contains(t, synth.spoken[0], "Waymore")
}

func TestVoiceChatRoundTrip(t *testing.T) {
	provider := &scriptedProvider{
		intentLabel: "experience",
		rewritten:   "Waymore experience",
		answer:      "I have been at Waymore since 2023.",
	}
	chatbot, store := newTestService(provider)
	seedSession(t, store, "sess-voice")

	synth := &fakeSynthesizer{}
	svc := NewSpeechService(&fakeTranscriber{text: "where do you work now"}, synth, chatbot, noopLogger{})

	resp, err := svc.VoiceChat(context.Background(), "sess-voice", "clip.wav", strings.NewReader("audio"))
	require.NoError(t, err)

	assert.Equal(t, "where do you work now", resp.Transcript)
	assert.Equal(t, constant.IntentExperience, resp.Intent)
	assert.Equal(t, "I have been at Waymore since 2023.", resp.Reply)
	assert.Equal(t, []byte("mp3-bytes"), resp.Audio)

	// The reply is voiced as plain prose.
	require.Len(t, synth.spoken, 1)
	assert.Equal(t, "I have been at Waymore since 2023.", synth.spoken[0])
}

func TestVoiceChatPrefersSpeechChannel(t *testing.T) {
	provider := &scriptedProvider{
		intentLabel: "experience",
		rewritten:   "Waymore experience",
		answer:      `{"text": "I work at Waymore.", "tts": "<speak>I work at <break time=\"200ms\"/> Waymore.</speak>"}`,
	}
	chatbot, store := newTestService(provider)

	sess := session.New("sess-voice-ssml", "")
	sess.VoiceEnabled = true
	require.NoError(t, store.Save(context.Background(), sess))

	synth := &fakeSynthesizer{}
	svc := NewSpeechService(&fakeTranscriber{text: "where do you work"}, synth, chatbot, noopLogger{})

	resp, err := svc.VoiceChat(context.Background(), "sess-voice-ssml", "clip.wav", strings.NewReader("audio"))
	require.NoError(t, err)

	assert.Equal(t, "I work at Waymore.", resp.Reply)
	require.Len(t, synth.spoken, 1)
	assert.Equal(t, "I work at Waymore.", synth.spoken[0])
}

func TestVoiceChatSynthesisFailure(t *testing.T) {
	provider := &scriptedProvider{
		intentLabel: "experience",
		rewritten:   "q",
		answer:      "An answer.",
	}
	chatbot, store := newTestService(provider)
	seedSession(t, store, "sess-voice-fail")

	svc := NewSpeechService(
		&fakeTranscriber{text: "a question"},
		&fakeSynthesizer{err: errors.New("tts quota")},
		chatbot,
		noopLogger{},
	)

	_, err := svc.VoiceChat(context.Background(), "sess-voice-fail", "clip.wav", strings.NewReader("audio"))
	require.Error(t, err)

	var extErr *apperr.ExternalServiceError
	require.ErrorAs(t, err, &extErr)
	assert.Equal(t, "speech", extErr.Service)
}
