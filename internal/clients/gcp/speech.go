package gcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"

	"github.com/eduvision/eduvision-backend/internal/platform/logger"
)

// Transcriber converts student practice recordings to text.
type Transcriber interface {
	TranscribeAudioBytes(ctx context.Context, audio []byte, mimeType, languageCode string) (string, error)
	Close() error
}

type speechService struct {
	log    *logger.Logger
	client *speech.Client
}

func NewSpeech(log *logger.Logger) (Transcriber, error) {
	serviceLog := log.With("service", "SpeechService")

	ctx := context.Background()
	client, err := speech.NewClient(ctx, ClientOptionsFromEnv()...)
	if err != nil {
		return nil, fmt.Errorf("failed to create speech client: %w", err)
	}
	return &speechService{log: serviceLog, client: client}, nil
}

func (s *speechService) Close() error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Close()
}

func (s *speechService) TranscribeAudioBytes(ctx context.Context, audio []byte, mimeType, languageCode string) (string, error) {
	if len(audio) == 0 {
		return "", fmt.Errorf("empty audio payload")
	}
	if languageCode == "" {
		languageCode = "en-US"
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Minute)
	defer cancel()

	req := &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:                   inferSpeechEncoding(mimeType),
			LanguageCode:               languageCode,
			EnableAutomaticPunctuation: true,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audio},
		},
	}

	resp, err := s.client.Recognize(ctx, req)
	if err != nil {
		return "", fmt.Errorf("speech recognize: %w", err)
	}

	var parts []string
	for _, result := range resp.GetResults() {
		alts := result.GetAlternatives()
		if len(alts) == 0 {
			continue
		}
		if t := strings.TrimSpace(alts[0].GetTranscript()); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " "), nil
}

func inferSpeechEncoding(mimeType string) speechpb.RecognitionConfig_AudioEncoding {
	mt := strings.ToLower(strings.TrimSpace(mimeType))
	switch {
	case strings.Contains(mt, "wav"), strings.Contains(mt, "linear16"):
		return speechpb.RecognitionConfig_LINEAR16
	case strings.Contains(mt, "flac"):
		return speechpb.RecognitionConfig_FLAC
	case strings.Contains(mt, "mp3"), strings.Contains(mt, "mpeg"):
		return speechpb.RecognitionConfig_MP3
	case strings.Contains(mt, "ogg"), strings.Contains(mt, "opus"):
		return speechpb.RecognitionConfig_OGG_OPUS
	case strings.Contains(mt, "webm"):
		return speechpb.RecognitionConfig_WEBM_OPUS
	default:
		return speechpb.RecognitionConfig_ENCODING_UNSPECIFIED
	}
}
