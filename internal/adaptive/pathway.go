package adaptive

import (
	"context"
	"strings"
	"time"

	"github.com/eduvision/eduvision-backend/internal/pkg/ctxutil"
	"github.com/eduvision/eduvision-backend/internal/platform/logger"
)

const adaptationTemperature = 0.3

// Adapter rewrites a single base passage for one student profile. It is the
// on-the-fly counterpart to the pre-generated aggregate: one routed executor
// instead of a nine-way batch.
type Adapter interface {
	AdaptForStudent(ctx context.Context, baseText, disabilityType, learningStyle string) string
}

type adapter struct {
	log     *logger.Logger
	textGen TextGenerator
	timeout time.Duration
}

func NewAdapter(log *logger.Logger, textGen TextGenerator) Adapter {
	return &adapter{
		log:     log.With("service", "AdaptationPathway"),
		textGen: textGen,
		timeout: defaultNodeTimeout,
	}
}

// AdaptForStudent routes (disabilityType, learningStyle) to exactly one
// category's adaptation rules and rewrites baseText with them. When both
// profile fields are absent or "none" the workflow is skipped outright with
// zero capability calls. Adaptation never surfaces an error: any failure,
// including an empty adapted_passage, silently yields the original text.
func (a *adapter) AdaptForStudent(ctx context.Context, baseText, disabilityType, learningStyle string) string {
	if isNone(disabilityType) && isNone(learningStyle) {
		return baseText
	}
	if strings.TrimSpace(baseText) == "" {
		return baseText
	}

	category := ResolveCategory(disabilityType)
	system, user := BuildAdaptationPrompt(baseText, disabilityType, learningStyle)

	cctx, cancel := context.WithTimeout(ctxutil.Default(ctx), a.timeout)
	defer cancel()

	raw, err := a.textGen.GenerateText(cctx, system, user, adaptationTemperature)
	if err != nil {
		a.log.Warn("Adaptation call failed, returning original text",
			"category", category, "error", err)
		return baseText
	}

	obj, err := ParseJSONObject(raw)
	if err != nil {
		a.log.Warn("Adaptation returned unparseable content, returning original text",
			"category", category, "error", err, "raw_snippet", snippet(raw))
		return baseText
	}

	adapted, _ := obj["adapted_passage"].(string)
	if strings.TrimSpace(adapted) == "" {
		a.log.Warn("Adaptation produced empty passage, returning original text",
			"category", category)
		return baseText
	}
	return adapted
}
