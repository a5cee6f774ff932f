package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eduvision/eduvision-backend/internal/platform/logger"
	"github.com/eduvision/eduvision-backend/internal/types"
)

type LessonRepo interface {
	Create(ctx context.Context, tx *gorm.DB, lessons []*types.Lesson) ([]*types.Lesson, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, lessonIDs []uuid.UUID) ([]*types.Lesson, error)
	ListByTeacher(ctx context.Context, tx *gorm.DB, teacherID uuid.UUID) ([]*types.Lesson, error)
	ListAll(ctx context.Context, tx *gorm.DB) ([]*types.Lesson, error)
	Update(ctx context.Context, tx *gorm.DB, lesson *types.Lesson) (*types.Lesson, error)
	Delete(ctx context.Context, tx *gorm.DB, lessonID uuid.UUID) error
}

type lessonRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLessonRepo(db *gorm.DB, baseLog *logger.Logger) LessonRepo {
	repoLog := baseLog.With("repo", "LessonRepo")
	return &lessonRepo{db: db, log: repoLog}
}

func (lr *lessonRepo) Create(ctx context.Context, tx *gorm.DB, lessons []*types.Lesson) ([]*types.Lesson, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	if len(lessons) == 0 {
		return []*types.Lesson{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&lessons).Error; err != nil {
		return nil, err
	}
	return lessons, nil
}

func (lr *lessonRepo) GetByIDs(ctx context.Context, tx *gorm.DB, lessonIDs []uuid.UUID) ([]*types.Lesson, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	var results []*types.Lesson
	if len(lessonIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", lessonIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (lr *lessonRepo) ListByTeacher(ctx context.Context, tx *gorm.DB, teacherID uuid.UUID) ([]*types.Lesson, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	var results []*types.Lesson
	if err := transaction.WithContext(ctx).
		Where("teacher_id = ?", teacherID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (lr *lessonRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]*types.Lesson, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	var results []*types.Lesson
	if err := transaction.WithContext(ctx).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (lr *lessonRepo) Update(ctx context.Context, tx *gorm.DB, lesson *types.Lesson) (*types.Lesson, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	if err := transaction.WithContext(ctx).Save(lesson).Error; err != nil {
		return nil, err
	}
	return lesson, nil
}

func (lr *lessonRepo) Delete(ctx context.Context, tx *gorm.DB, lessonID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	return transaction.WithContext(ctx).
		Where("id = ?", lessonID).
		Delete(&types.Lesson{}).Error
}
