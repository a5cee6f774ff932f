package adaptive

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/eduvision/eduvision-backend/internal/pkg/ctxutil"
	"github.com/eduvision/eduvision-backend/internal/platform/logger"
)

const (
	generationTemperature = 0.7
	defaultNodeTimeout    = 90 * time.Second
	rawSnippetLimit       = 200
)

// ErrAllCategoriesFailed is returned when not a single category produced
// content. Partial failure is never an error; total failure is.
var ErrAllCategoriesFailed = errors.New("all category generations failed")

// Generator runs the nine-way fan-out producing one Aggregate per request.
type Generator interface {
	GenerateAllVersions(ctx context.Context, req GenerationRequest) (*Aggregate, error)
}

type generator struct {
	log         *logger.Logger
	textGen     TextGenerator
	progress    ProgressReporter
	nodeTimeout time.Duration
}

// NewGenerator wires the dispatcher. progress may be nil.
func NewGenerator(log *logger.Logger, textGen TextGenerator, progress ProgressReporter) Generator {
	return &generator{
		log:         log.With("service", "AdaptiveGenerator"),
		textGen:     textGen,
		progress:    progress,
		nodeTimeout: defaultNodeTimeout,
	}
}

// GenerateAllVersions dispatches all nine category nodes concurrently and
// joins before merging. Each node settles to a Variant no matter what; the
// merge runs strictly in category order after the barrier, so completion
// order never affects the result.
func (g *generator) GenerateAllVersions(ctx context.Context, req GenerationRequest) (*Aggregate, error) {
	if strings.TrimSpace(req.Topic) == "" {
		return nil, fmt.Errorf("topic is required")
	}
	ctx = ctxutil.Default(ctx)

	start := time.Now()
	results := make([]Variant, len(AllCategories))

	grp := new(errgroup.Group)
	for i, cat := range AllCategories {
		i, cat := i, cat
		grp.Go(func() error {
			v := g.runCategoryNode(ctx, cat, req)
			results[i] = v
			if g.progress != nil {
				g.progress.ReportCategory(ctx, cat, v.Failed())
			}
			return nil
		})
	}
	_ = grp.Wait()

	agg := &Aggregate{
		AdaptiveVersions: make(map[Category]Variant, len(AllCategories)),
		GenerationStats:  GenerationStats{Total: len(AllCategories), Failed: []Category{}},
	}
	for i, cat := range AllCategories {
		v := results[i]
		agg.AdaptiveVersions[cat] = v
		if v.Failed() {
			agg.GenerationStats.Failed = append(agg.GenerationStats.Failed, cat)
		} else {
			agg.GenerationStats.Success++
		}
	}

	if agg.GenerationStats.Success == 0 {
		g.log.Error("Adaptive generation failed for every category",
			"topic", req.Topic,
			"failed", agg.GenerationStats.Failed,
		)
		return nil, ErrAllCategoriesFailed
	}

	g.log.Info("Adaptive generation batch complete",
		"topic", req.Topic,
		"grade", req.Grade,
		"success", agg.GenerationStats.Success,
		"failed", agg.GenerationStats.Failed,
		"elapsed", time.Since(start).String(),
	)
	return agg, nil
}

// runCategoryNode executes one category's generation. It always returns a
// Variant: upstream failures and malformed JSON degrade to the error shape,
// never to a propagated error.
func (g *generator) runCategoryNode(ctx context.Context, cat Category, req GenerationRequest) Variant {
	system, user := BuildGenerationPrompt(cat, req.Topic, req.Grade, req.Description)

	cctx, cancel := context.WithTimeout(ctx, g.nodeTimeout)
	defer cancel()

	raw, err := g.textGen.GenerateText(cctx, system, user, generationTemperature)
	if err != nil {
		g.log.Warn("Category generation call failed", "category", cat, "error", err)
		return FailedVariant(cat, err.Error())
	}

	obj, err := ParseJSONObject(raw)
	if err != nil {
		g.log.Warn("Category generation returned unparseable content",
			"category", cat,
			"error", err,
			"raw_snippet", snippet(raw),
		)
		return FailedVariant(cat, err.Error())
	}

	v := Variant(obj)
	v["category"] = string(cat)
	return v
}

func snippet(raw string) string {
	s := strings.TrimSpace(raw)
	if len(s) > rawSnippetLimit {
		return truncateRunes(s, rawSnippetLimit) + "..."
	}
	return s
}
