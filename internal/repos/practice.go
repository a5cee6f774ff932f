package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eduvision/eduvision-backend/internal/platform/logger"
	"github.com/eduvision/eduvision-backend/internal/types"
)

type PracticeSessionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, sessions []*types.PracticeSession) ([]*types.PracticeSession, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, sessionIDs []uuid.UUID) ([]*types.PracticeSession, error)
	ListByStudent(ctx context.Context, tx *gorm.DB, studentID uuid.UUID) ([]*types.PracticeSession, error)
	End(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID, endedAt time.Time) error
}

type practiceSessionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPracticeSessionRepo(db *gorm.DB, baseLog *logger.Logger) PracticeSessionRepo {
	repoLog := baseLog.With("repo", "PracticeSessionRepo")
	return &practiceSessionRepo{db: db, log: repoLog}
}

func (pr *practiceSessionRepo) Create(ctx context.Context, tx *gorm.DB, sessions []*types.PracticeSession) ([]*types.PracticeSession, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	if len(sessions) == 0 {
		return []*types.PracticeSession{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

func (pr *practiceSessionRepo) GetByIDs(ctx context.Context, tx *gorm.DB, sessionIDs []uuid.UUID) ([]*types.PracticeSession, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var results []*types.PracticeSession
	if len(sessionIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", sessionIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *practiceSessionRepo) ListByStudent(ctx context.Context, tx *gorm.DB, studentID uuid.UUID) ([]*types.PracticeSession, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var results []*types.PracticeSession
	if err := transaction.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("started_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *practiceSessionRepo) End(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID, endedAt time.Time) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	return transaction.WithContext(ctx).
		Model(&types.PracticeSession{}).
		Where("id = ?", sessionID).
		Updates(map[string]any{
			"status":   types.PracticeStatusEnded,
			"ended_at": endedAt,
		}).Error
}

type SessionArtifactRepo interface {
	Create(ctx context.Context, tx *gorm.DB, artifacts []*types.SessionArtifact) ([]*types.SessionArtifact, error)
	GetBySessionIDs(ctx context.Context, tx *gorm.DB, sessionIDs []uuid.UUID) ([]*types.SessionArtifact, error)
}

type sessionArtifactRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSessionArtifactRepo(db *gorm.DB, baseLog *logger.Logger) SessionArtifactRepo {
	repoLog := baseLog.With("repo", "SessionArtifactRepo")
	return &sessionArtifactRepo{db: db, log: repoLog}
}

func (sr *sessionArtifactRepo) Create(ctx context.Context, tx *gorm.DB, artifacts []*types.SessionArtifact) ([]*types.SessionArtifact, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	if len(artifacts) == 0 {
		return []*types.SessionArtifact{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&artifacts).Error; err != nil {
		return nil, err
	}
	return artifacts, nil
}

func (sr *sessionArtifactRepo) GetBySessionIDs(ctx context.Context, tx *gorm.DB, sessionIDs []uuid.UUID) ([]*types.SessionArtifact, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	var results []*types.SessionArtifact
	if len(sessionIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("session_id IN ?", sessionIDs).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
