package elevenlabs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/eduvision/eduvision-backend/internal/pkg/httpx"
	"github.com/eduvision/eduvision-backend/internal/platform/logger"
)

// Client wraps the ElevenLabs text-to-speech API.
type Client interface {
	// Synthesize narrates study material with the default voice settings.
	Synthesize(ctx context.Context, text string) ([]byte, error)
	// SynthesizeCalm narrates practice feedback with a slower, steadier
	// delivery.
	SynthesizeCalm(ctx context.Context, text string) ([]byte, error)
}

type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
	Style           float64 `json:"style"`
	UseSpeakerBoost bool    `json:"use_speaker_boost"`
}

var (
	defaultSettings = voiceSettings{Stability: 0.5, SimilarityBoost: 0.75, Style: 0.0, UseSpeakerBoost: true}
	calmSettings    = voiceSettings{Stability: 0.8, SimilarityBoost: 0.75, Style: 0.0, UseSpeakerBoost: false}
)

type client struct {
	log        *logger.Logger
	baseURL    string
	apiKey     string
	voiceID    string
	modelID    string
	httpClient *http.Client
	maxRetries int
}

func NewClient(log *logger.Logger) (Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	apiKey := strings.TrimSpace(os.Getenv("ELEVENLABS_API_KEY"))
	if apiKey == "" {
		return nil, fmt.Errorf("missing ELEVENLABS_API_KEY")
	}

	baseURL := strings.TrimSpace(os.Getenv("ELEVENLABS_BASE_URL"))
	if baseURL == "" {
		baseURL = "https://api.elevenlabs.io"
	}
	baseURL = strings.TrimRight(baseURL, "/")

	voiceID := strings.TrimSpace(os.Getenv("ELEVENLABS_VOICE_ID"))
	if voiceID == "" {
		voiceID = "21m00Tcm4TlvDq8ikWAM"
	}

	modelID := strings.TrimSpace(os.Getenv("ELEVENLABS_MODEL_ID"))
	if modelID == "" {
		modelID = "eleven_multilingual_v2"
	}

	timeoutSec := 60
	if v := os.Getenv("ELEVENLABS_TIMEOUT_SECONDS"); v != "" {
		if parsed, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && parsed > 0 {
			timeoutSec = parsed
		}
	}

	return &client{
		log:        log.With("service", "ElevenLabsClient"),
		baseURL:    baseURL,
		apiKey:     apiKey,
		voiceID:    voiceID,
		modelID:    modelID,
		httpClient: &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
		maxRetries: 2,
	}, nil
}

type elevenLabsHTTPError struct {
	StatusCode int
	Body       string
}

func (e *elevenLabsHTTPError) Error() string {
	return fmt.Sprintf("elevenlabs http %d: %s", e.StatusCode, e.Body)
}

func (e *elevenLabsHTTPError) HTTPStatusCode() int {
	if e == nil {
		return 0
	}
	return e.StatusCode
}

func (c *client) Synthesize(ctx context.Context, text string) ([]byte, error) {
	return c.synthesize(ctx, text, defaultSettings)
}

func (c *client) SynthesizeCalm(ctx context.Context, text string) ([]byte, error) {
	return c.synthesize(ctx, text, calmSettings)
}

func (c *client) synthesize(ctx context.Context, text string, settings voiceSettings) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("empty text")
	}

	payload := map[string]any{
		"text":           text,
		"model_id":       c.modelID,
		"voice_settings": settings,
	}

	backoff := 1 * time.Second
	path := fmt.Sprintf("/v1/text-to-speech/%s", c.voiceID)

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		resp, raw, err := c.doOnce(ctx, path, payload)
		if err == nil {
			return raw, nil
		}

		if !httpx.IsRetryableError(err) {
			return nil, err
		}
		if attempt == c.maxRetries {
			return nil, err
		}

		sleepFor := httpx.JitterSleep(httpx.RetryAfterDuration(resp, backoff, 10*time.Second))
		c.log.Warn("ElevenLabs request retrying",
			"attempt", attempt+1,
			"sleep", sleepFor.String(),
			"error", err.Error(),
		)
		time.Sleep(sleepFor)
		backoff *= 2
	}

	return nil, fmt.Errorf("unreachable retry loop")
}

func (c *client) doOnce(ctx context.Context, path string, payload any) (*http.Response, []byte, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		return nil, nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("xi-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, err
	}

	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return resp, nil, readErr
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp, nil, &elevenLabsHTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	return resp, raw, nil
}
