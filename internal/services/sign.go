package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/eduvision/eduvision-backend/internal/platform/apierr"
	"github.com/eduvision/eduvision-backend/internal/platform/logger"
	"github.com/eduvision/eduvision-backend/internal/utils"
)

// maxAACTextLength caps one AAC utterance, in runes.
const maxAACTextLength = 500

// SignAsset is one vocabulary word resolved against the sign clip dataset.
// ISL clips win over ASL when both exist.
type SignAsset struct {
	Word     string `json:"word"`
	SignURL  string `json:"sign_url,omitempty"`
	Caption  string `json:"caption"`
	Language string `json:"language"`
}

// signAssetEntry mirrors one dataset record: a lowercase vocabulary word
// mapped to sign clip URLs and an optional caption.
type signAssetEntry struct {
	ISLURL  string `json:"isl_url"`
	ASLURL  string `json:"asl_url"`
	Caption string `json:"caption"`
}

type SignService interface {
	VocabAssets(ctx context.Context, words []string) ([]SignAsset, error)
	AACSpeak(ctx context.Context, text string) ([]byte, error)
}

type signService struct {
	log    *logger.Logger
	synth  CalmSynthesizer
	assets map[string]signAssetEntry
}

func NewSignService(log *logger.Logger, synth CalmSynthesizer) SignService {
	serviceLog := log.With("service", "SignService")
	assets, err := loadSignAssets(utils.GetEnv("SIGN_ASSETS_PATH", "", serviceLog))
	if err != nil {
		serviceLog.Warn("failed to load sign asset dataset, vocab lookups will miss", "error", err)
	}
	return &signService{log: serviceLog, synth: synth, assets: assets}
}

func loadSignAssets(path string) (map[string]signAssetEntry, error) {
	if strings.TrimSpace(path) == "" {
		return map[string]signAssetEntry{}, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return map[string]signAssetEntry{}, err
	}
	var assets map[string]signAssetEntry
	if err := json.Unmarshal(raw, &assets); err != nil {
		return map[string]signAssetEntry{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return assets, nil
}

// VocabAssets resolves vocabulary words to sign clip URLs. A word without a
// dataset entry still yields an asset so the client can render a caption
// card in place of the missing clip.
func (ss *signService) VocabAssets(_ context.Context, words []string) ([]SignAsset, error) {
	if len(words) == 0 {
		return nil, apierr.New(http.StatusBadRequest, "no_words", fmt.Errorf("at least one word is required"))
	}

	out := make([]SignAsset, 0, len(words))
	for _, word := range words {
		entry := ss.assets[strings.ToLower(strings.TrimSpace(word))]
		asset := SignAsset{Word: word, Caption: entry.Caption, Language: "ASL"}
		if asset.Caption == "" {
			asset.Caption = word
		}
		switch {
		case entry.ISLURL != "":
			asset.SignURL = entry.ISLURL
			asset.Language = "ISL"
		case entry.ASLURL != "":
			asset.SignURL = entry.ASLURL
		}
		out = append(out, asset)
	}
	return out, nil
}

// AACSpeak voices a composed phrase for classroom output with the calm
// delivery settings.
func (ss *signService) AACSpeak(ctx context.Context, text string) ([]byte, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apierr.New(http.StatusBadRequest, "empty_text", fmt.Errorf("no text provided"))
	}
	if utf8.RuneCountInString(text) > maxAACTextLength {
		return nil, apierr.New(http.StatusBadRequest, "text_too_long", fmt.Errorf("text exceeds %d characters", maxAACTextLength))
	}
	if ss.synth == nil {
		return nil, apierr.New(http.StatusServiceUnavailable, "speech_unavailable", fmt.Errorf("speech synthesis is not configured"))
	}

	audio, err := ss.synth.SynthesizeCalm(ctx, text)
	if err != nil {
		return nil, apierr.New(http.StatusBadGateway, "aac_speak_failed", fmt.Errorf("aac speech synthesis failed: %w", err))
	}
	return audio, nil
}
