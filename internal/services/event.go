package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/eduvision/eduvision-backend/internal/platform/logger"
	"github.com/eduvision/eduvision-backend/internal/realtime"
	"github.com/eduvision/eduvision-backend/internal/repos"
	"github.com/eduvision/eduvision-backend/internal/types"
)

// EventPublisher pushes an event toward live subscribers. The redis bus
// satisfies it in multi-instance deployments; a nil publisher means events
// only reach the local hub.
type EventPublisher interface {
	Publish(ctx context.Context, ev realtime.Event) error
}

type EventService interface {
	Record(ctx context.Context, tx *gorm.DB, userID uuid.UUID, eventType string, payload map[string]any) error
	ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]*types.UserEvent, error)
	Emit(ctx context.Context, userID uuid.UUID, eventType string, payload map[string]any)
}

type eventService struct {
	db        *gorm.DB
	log       *logger.Logger
	eventRepo repos.UserEventRepo
	hub       *realtime.Hub
	bus       EventPublisher
}

func NewEventService(
	db *gorm.DB,
	log *logger.Logger,
	eventRepo repos.UserEventRepo,
	hub *realtime.Hub,
	bus EventPublisher,
) EventService {
	serviceLog := log.With("service", "EventService")
	return &eventService{
		db:        db,
		log:       serviceLog,
		eventRepo: eventRepo,
		hub:       hub,
		bus:       bus,
	}
}

// Record persists the event and mirrors it to live subscribers.
func (es *eventService) Record(ctx context.Context, tx *gorm.DB, userID uuid.UUID, eventType string, payload map[string]any) error {
	var raw datatypes.JSON
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		raw = datatypes.JSON(b)
	}

	if _, err := es.eventRepo.Create(ctx, tx, []*types.UserEvent{{
		UserID:    userID,
		EventType: eventType,
		Payload:   raw,
	}}); err != nil {
		return err
	}

	es.Emit(ctx, userID, eventType, payload)
	return nil
}

func (es *eventService) ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]*types.UserEvent, error) {
	return es.eventRepo.ListByUser(ctx, nil, userID, limit)
}

// Emit fans an event out without persisting it. Delivery is best effort.
// With a bus configured the event goes through redis only: the forwarder
// replays it into every instance's hub, this one included, so an additional
// direct hub publish would hand local subscribers the same event twice.
func (es *eventService) Emit(ctx context.Context, userID uuid.UUID, eventType string, payload map[string]any) {
	ev := realtime.Event{
		UserID:  userID,
		Type:    eventType,
		Payload: payload,
		At:      time.Now().UTC(),
	}
	if es.bus != nil {
		err := es.bus.Publish(ctx, ev)
		if err == nil {
			return
		}
		es.log.Warn("failed to publish event to bus, delivering locally only", "type", eventType, "error", err)
	}
	if es.hub != nil {
		es.hub.Publish(ev)
	}
}
