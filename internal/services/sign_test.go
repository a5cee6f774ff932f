package services

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/eduvision/eduvision-backend/internal/platform/apierr"
	"github.com/eduvision/eduvision-backend/internal/platform/logger"
)

type fakeCalmSynth struct {
	texts []string
	err   error
}

func (f *fakeCalmSynth) SynthesizeCalm(_ context.Context, text string) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.texts = append(f.texts, text)
	return []byte("mp3-bytes"), nil
}

func newTestSignService(t *testing.T, synth CalmSynthesizer) SignService {
	t.Helper()
	log, err := logger.New("dev")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return NewSignService(log, synth)
}

func TestVocabAssetsResolvesDataset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sign_assets.json")
	data := `{
		"hello": {"isl_url": "https://signs.example.com/hello-isl.gif", "caption": "Greeting"},
		"water": {"asl_url": "https://signs.example.com/water-asl.gif"}
	}`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write dataset: %v", err)
	}
	t.Setenv("SIGN_ASSETS_PATH", path)

	svc := newTestSignService(t, nil)
	assets, err := svc.VocabAssets(context.Background(), []string{"Hello", "water", "zebra"})
	if err != nil {
		t.Fatalf("VocabAssets: %v", err)
	}
	if len(assets) != 3 {
		t.Fatalf("got %d assets, want 3", len(assets))
	}

	hello := assets[0]
	if hello.SignURL != "https://signs.example.com/hello-isl.gif" || hello.Language != "ISL" || hello.Caption != "Greeting" {
		t.Fatalf("unexpected hello asset %+v", hello)
	}
	water := assets[1]
	if water.SignURL != "https://signs.example.com/water-asl.gif" || water.Language != "ASL" || water.Caption != "water" {
		t.Fatalf("unexpected water asset %+v", water)
	}
	zebra := assets[2]
	if zebra.SignURL != "" || zebra.Caption != "zebra" {
		t.Fatalf("unknown word should fall back to a caption card, got %+v", zebra)
	}
}

func TestVocabAssetsRequiresWords(t *testing.T) {
	svc := newTestSignService(t, nil)

	_, err := svc.VocabAssets(context.Background(), nil)
	var apiErr *apierr.Error
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAACSpeakSynthesizesCalmVoice(t *testing.T) {
	synth := &fakeCalmSynth{}
	svc := newTestSignService(t, synth)

	audio, err := svc.AACSpeak(context.Background(), "  I need help please  ")
	if err != nil {
		t.Fatalf("AACSpeak: %v", err)
	}
	if string(audio) != "mp3-bytes" {
		t.Fatalf("unexpected audio %q", audio)
	}
	if len(synth.texts) != 1 || synth.texts[0] != "I need help please" {
		t.Fatalf("synthesizer received %v", synth.texts)
	}
}

func TestAACSpeakValidation(t *testing.T) {
	svc := newTestSignService(t, &fakeCalmSynth{})
	var apiErr *apierr.Error

	if _, err := svc.AACSpeak(context.Background(), "   "); !errors.As(err, &apiErr) || apiErr.Status != http.StatusBadRequest {
		t.Fatalf("empty text: expected 400, got %v", err)
	}
	long := strings.Repeat("a", maxAACTextLength+1)
	if _, err := svc.AACSpeak(context.Background(), long); !errors.As(err, &apiErr) || apiErr.Code != "text_too_long" {
		t.Fatalf("long text: expected text_too_long, got %v", err)
	}

	noSynth := newTestSignService(t, nil)
	if _, err := noSynth.AACSpeak(context.Background(), "hello"); !errors.As(err, &apiErr) || apiErr.Status != http.StatusServiceUnavailable {
		t.Fatalf("no synthesizer: expected 503, got %v", err)
	}
}

func TestAACSpeakWrapsSynthFailure(t *testing.T) {
	svc := newTestSignService(t, &fakeCalmSynth{err: errors.New("tts quota exceeded")})

	_, err := svc.AACSpeak(context.Background(), "hello")
	var apiErr *apierr.Error
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusBadGateway {
		t.Fatalf("expected 502, got %v", err)
	}
}
