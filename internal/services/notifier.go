package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/eduvision/eduvision-backend/internal/adaptive"
	"github.com/eduvision/eduvision-backend/internal/platform/logger"
	"github.com/eduvision/eduvision-backend/internal/requestdata"
)

// GenerationNotifier turns per-category generation ticks into realtime
// events addressed to the requesting user. The user comes off the request
// context, so the generation pipeline itself stays identity-free.
type GenerationNotifier struct {
	log    *logger.Logger
	events EventService
}

func NewGenerationNotifier(log *logger.Logger, events EventService) *GenerationNotifier {
	return &GenerationNotifier{
		log:    log.With("service", "GenerationNotifier"),
		events: events,
	}
}

func (gn *GenerationNotifier) ReportCategory(ctx context.Context, category adaptive.Category, failed bool) {
	if gn == nil || gn.events == nil {
		return
	}
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return
	}
	status := "completed"
	if failed {
		status = "failed"
	}
	gn.events.Emit(ctx, rd.UserID, "generation_progress", map[string]any{
		"category": string(category),
		"status":   status,
	})
}
