package adaptive

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/eduvision/eduvision-backend/internal/pkg/ctxutil"
	"github.com/eduvision/eduvision-backend/internal/platform/logger"
)

const (
	// Passages shorter than this gain nothing from narration.
	minPassageLength = 20
	// Vendor ceiling for one synthesis call.
	maxSynthesisLength = 4500

	defaultSynthTimeout = 60 * time.Second
)

// Enricher attaches synthesized audio to eligible variants of an aggregate.
type Enricher interface {
	EnrichWithAudio(ctx context.Context, agg *Aggregate, skip map[Category]bool)
}

type enricher struct {
	log       *logger.Logger
	synth     SpeechSynthesizer
	store     AudioStore
	keyPrefix string
	timeout   time.Duration
}

func NewEnricher(log *logger.Logger, synth SpeechSynthesizer, store AudioStore) Enricher {
	return &enricher{
		log:       log.With("service", "AudioEnricher"),
		synth:     synth,
		store:     store,
		keyPrefix: "adaptive-audio",
		timeout:   defaultSynthTimeout,
	}
}

// DefaultSkipCategories returns the baseline enrichment skip set.
func DefaultSkipCategories() map[Category]bool {
	return map[Category]bool{CategoryHearing: true}
}

// EnrichWithAudio synthesizes and attaches audio_url for every successful
// variant whose category is not skipped and whose passage clears the minimum
// length. The hearing category is skipped unconditionally. Every failure in
// this stage is logged and swallowed: a variant without audio stays a valid
// variant and generation_stats are never touched.
func (e *enricher) EnrichWithAudio(ctx context.Context, agg *Aggregate, skip map[Category]bool) {
	if agg == nil || e.synth == nil || e.store == nil {
		return
	}
	ctx = ctxutil.Default(ctx)

	grp := new(errgroup.Group)
	for _, cat := range AllCategories {
		v, ok := agg.AdaptiveVersions[cat]
		if !ok || v.Failed() {
			continue
		}
		if cat == CategoryHearing || skip[cat] {
			continue
		}
		passage := v.Passage()
		if len(passage) < minPassageLength {
			continue
		}
		cat, v, passage := cat, v, passage
		grp.Go(func() error {
			if url, err := e.synthesizeAndStore(ctx, cat, passage); err != nil {
				e.log.Warn("Audio enrichment failed, variant kept without audio",
					"category", cat, "error", err)
			} else {
				v["audio_url"] = url
			}
			return nil
		})
	}
	_ = grp.Wait()
}

func (e *enricher) synthesizeAndStore(ctx context.Context, cat Category, passage string) (string, error) {
	passage = truncateRunes(passage, maxSynthesisLength)

	cctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	data, err := e.synth.Synthesize(cctx, passage)
	if err != nil {
		return "", fmt.Errorf("synthesize: %w", err)
	}

	key := fmt.Sprintf("%s/%s_%s.mp3", e.keyPrefix, cat, uuid.NewString())
	url, err := e.store.UploadAudio(cctx, key, data)
	if err != nil {
		return "", fmt.Errorf("upload: %w", err)
	}
	return url, nil
}

// truncateRunes cuts s to at most max bytes without splitting a rune.
func truncateRunes(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}
