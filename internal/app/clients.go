package app

import (
	"fmt"

	"github.com/eduvision/eduvision-backend/internal/clients/elevenlabs"
	"github.com/eduvision/eduvision-backend/internal/clients/gcp"
	"github.com/eduvision/eduvision-backend/internal/clients/openrouter"
	rediscli "github.com/eduvision/eduvision-backend/internal/clients/redis"
	"github.com/eduvision/eduvision-backend/internal/platform/logger"
)

// Clients bundles the external capability providers. The LLM client is
// mandatory; audio, storage, speech and redis are optional and the app
// degrades feature by feature when they are not configured.
type Clients struct {
	TextGen     openrouter.Client
	TTS         elevenlabs.Client
	Bucket      gcp.BucketService
	Transcriber gcp.Transcriber
	Bus         rediscli.ProgressBus
}

func wireClients(log *logger.Logger) (Clients, error) {
	var c Clients

	textGen, err := openrouter.NewClient(log)
	if err != nil {
		return c, fmt.Errorf("init openrouter client: %w", err)
	}
	c.TextGen = textGen

	if tts, err := elevenlabs.NewClient(log); err != nil {
		log.Warn("ElevenLabs not configured; lessons will have no narration", "error", err)
	} else {
		c.TTS = tts
	}

	if bucket, err := gcp.NewBucketService(log); err != nil {
		log.Warn("GCS bucket not configured; audio artifacts will not be stored", "error", err)
	} else {
		c.Bucket = bucket
	}

	if transcriber, err := gcp.NewSpeech(log); err != nil {
		log.Warn("Speech-to-text not configured; practice analysis is disabled", "error", err)
	} else {
		c.Transcriber = transcriber
	}

	if bus, err := rediscli.NewProgressBus(log); err != nil {
		log.Warn("Redis not configured; realtime events stay instance-local", "error", err)
	} else {
		c.Bus = bus
	}

	return c, nil
}

func (c Clients) Close() {
	if c.Transcriber != nil {
		_ = c.Transcriber.Close()
	}
	if c.Bus != nil {
		_ = c.Bus.Close()
	}
}
