package service

import (
	"context"
	"io"

	"cv-chatbot-be/internal/apperr"
	"cv-chatbot-be/internal/dto"
	"cv-chatbot-be/internal/pkg/logger"
	"cv-chatbot-be/pkg/speech"
)

const audioMimeMP3 = "audio/mpeg"

type ISpeechService interface {
	Transcribe(ctx context.Context, filename string, audio io.Reader) (*dto.TranscribeResponse, error)
	Synthesize(ctx context.Context, req *dto.SynthesizeRequest) (*dto.SynthesizeResponse, error)
	VoiceChat(ctx context.Context, sessionID, filename string, audio io.Reader) (*dto.VoiceChatResponse, error)
}

type speechService struct {
	transcriber speech.Transcriber
	synthesizer speech.Synthesizer
	chatbot     IChatbotService
	log         logger.ILogger
}

func NewSpeechService(
	transcriber speech.Transcriber,
	synthesizer speech.Synthesizer,
	chatbot IChatbotService,
	log logger.ILogger,
) ISpeechService {
	return &speechService{
		transcriber: transcriber,
		synthesizer: synthesizer,
		chatbot:     chatbot,
		log:         log,
	}
}

func (s *speechService) Transcribe(ctx context.Context, filename string, audio io.Reader) (*dto.TranscribeResponse, error) {
	text, err := s.transcriber.Transcribe(ctx, filename, audio)
	if err != nil {
		return nil, apperr.External("speech", err)
	}
	return &dto.TranscribeResponse{Text: text}, nil
}

func (s *speechService) Synthesize(ctx context.Context, req *dto.SynthesizeRequest) (*dto.SynthesizeResponse, error) {
	// Model output may carry speech markup; normalize it before it
	// reaches the synthesizer and strip it to prose for providers that
	// take plain text.
	clean := speech.StripSSML(speech.SanitizeSSML(req.Text))

	audio, err := s.synthesizer.Synthesize(ctx, clean)
	if err != nil {
		return nil, apperr.External("speech", err)
	}
	return &dto.SynthesizeResponse{Audio: audio, AudioMime: audioMimeMP3}, nil
}

// VoiceChat runs one hands-free exchange: transcribe the recording,
// answer it through the regular chat pipeline, then voice the reply.
func (s *speechService) VoiceChat(ctx context.Context, sessionID, filename string, audio io.Reader) (*dto.VoiceChatResponse, error) {
	transcript, err := s.transcriber.Transcribe(ctx, filename, audio)
	if err != nil {
		return nil, apperr.External("speech", err)
	}

	chatResp, err := s.chatbot.SendChat(ctx, &dto.SendChatRequest{
		SessionId: sessionID,
		Message:   transcript,
	})
	if err != nil {
		return nil, err
	}

	speechText := chatResp.Reply
	if chatResp.Speech != "" {
		speechText = speech.StripSSML(chatResp.Speech)
	}

	var audioBytes []byte
	if speechText != "" {
		audioBytes, err = s.synthesizer.Synthesize(ctx, speechText)
		if err != nil {
			return nil, apperr.External("speech", err)
		}
	}

	return &dto.VoiceChatResponse{
		SessionId:  sessionID,
		Transcript: transcript,
		Intent:     chatResp.Intent,
		Reply:      chatResp.Reply,
		Audio:      audioBytes,
		AudioMime:  audioMimeMP3,
	}, nil
}
