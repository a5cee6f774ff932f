package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eduvision/eduvision-backend/internal/platform/logger"
	"github.com/eduvision/eduvision-backend/internal/types"
)

type LessonAssetRepo interface {
	Create(ctx context.Context, tx *gorm.DB, assets []*types.LessonAsset) ([]*types.LessonAsset, error)
	GetByLessonIDs(ctx context.Context, tx *gorm.DB, lessonIDs []uuid.UUID) ([]*types.LessonAsset, error)
	GetByLessonAndTag(ctx context.Context, tx *gorm.DB, lessonID uuid.UUID, kind, tag string) (*types.LessonAsset, error)
	DeleteByLessonID(ctx context.Context, tx *gorm.DB, lessonID uuid.UUID) error
}

type lessonAssetRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLessonAssetRepo(db *gorm.DB, baseLog *logger.Logger) LessonAssetRepo {
	repoLog := baseLog.With("repo", "LessonAssetRepo")
	return &lessonAssetRepo{db: db, log: repoLog}
}

func (lar *lessonAssetRepo) Create(ctx context.Context, tx *gorm.DB, assets []*types.LessonAsset) ([]*types.LessonAsset, error) {
	transaction := tx
	if transaction == nil {
		transaction = lar.db
	}

	if len(assets) == 0 {
		return []*types.LessonAsset{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&assets).Error; err != nil {
		return nil, err
	}
	return assets, nil
}

func (lar *lessonAssetRepo) GetByLessonIDs(ctx context.Context, tx *gorm.DB, lessonIDs []uuid.UUID) ([]*types.LessonAsset, error) {
	transaction := tx
	if transaction == nil {
		transaction = lar.db
	}

	var results []*types.LessonAsset
	if len(lessonIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("lesson_id IN ?", lessonIDs).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (lar *lessonAssetRepo) GetByLessonAndTag(ctx context.Context, tx *gorm.DB, lessonID uuid.UUID, kind, tag string) (*types.LessonAsset, error) {
	transaction := tx
	if transaction == nil {
		transaction = lar.db
	}

	var result types.LessonAsset
	if err := transaction.WithContext(ctx).
		Where("lesson_id = ? AND kind = ? AND tag = ?", lessonID, kind, tag).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (lar *lessonAssetRepo) DeleteByLessonID(ctx context.Context, tx *gorm.DB, lessonID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = lar.db
	}

	return transaction.WithContext(ctx).
		Where("lesson_id = ?", lessonID).
		Delete(&types.LessonAsset{}).Error
}
