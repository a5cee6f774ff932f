package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eduvision/eduvision-backend/internal/platform/logger"
	"github.com/eduvision/eduvision-backend/internal/types"
)

// EventTypeCount is one row of the grouped analytics query.
type EventTypeCount struct {
	EventType string `json:"event_type"`
	Count     int64  `json:"count"`
}

type UserEventRepo interface {
	Create(ctx context.Context, tx *gorm.DB, events []*types.UserEvent) ([]*types.UserEvent, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.UserEvent, error)
	CountByTypeSince(ctx context.Context, tx *gorm.DB, userID uuid.UUID, since time.Time) ([]EventTypeCount, error)
	CountByTypeForUsers(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID, since time.Time) (map[uuid.UUID][]EventTypeCount, error)
}

type userEventRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserEventRepo(db *gorm.DB, baseLog *logger.Logger) UserEventRepo {
	repoLog := baseLog.With("repo", "UserEventRepo")
	return &userEventRepo{db: db, log: repoLog}
}

func (er *userEventRepo) Create(ctx context.Context, tx *gorm.DB, events []*types.UserEvent) ([]*types.UserEvent, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}

	if len(events) == 0 {
		return []*types.UserEvent{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (er *userEventRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.UserEvent, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}
	if limit <= 0 {
		limit = 100
	}

	var results []*types.UserEvent
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (er *userEventRepo) CountByTypeSince(ctx context.Context, tx *gorm.DB, userID uuid.UUID, since time.Time) ([]EventTypeCount, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}

	var results []EventTypeCount
	if err := transaction.WithContext(ctx).
		Model(&types.UserEvent{}).
		Select("event_type, COUNT(*) AS count").
		Where("user_id = ? AND created_at >= ?", userID, since).
		Group("event_type").
		Order("count DESC").
		Scan(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (er *userEventRepo) CountByTypeForUsers(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID, since time.Time) (map[uuid.UUID][]EventTypeCount, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}

	out := map[uuid.UUID][]EventTypeCount{}
	if len(userIDs) == 0 {
		return out, nil
	}

	var rows []struct {
		UserID    uuid.UUID `json:"user_id"`
		EventType string    `json:"event_type"`
		Count     int64     `json:"count"`
	}
	if err := transaction.WithContext(ctx).
		Model(&types.UserEvent{}).
		Select("user_id, event_type, COUNT(*) AS count").
		Where("user_id IN ? AND created_at >= ?", userIDs, since).
		Group("user_id, event_type").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.UserID] = append(out[row.UserID], EventTypeCount{EventType: row.EventType, Count: row.Count})
	}
	return out, nil
}
