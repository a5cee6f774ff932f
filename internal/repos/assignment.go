package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/eduvision/eduvision-backend/internal/platform/logger"
	"github.com/eduvision/eduvision-backend/internal/types"
)

type AssignmentRepo interface {
	Upsert(ctx context.Context, tx *gorm.DB, assignments []*types.Assignment) ([]*types.Assignment, error)
	GetByStudent(ctx context.Context, tx *gorm.DB, studentID uuid.UUID) ([]*types.Assignment, error)
	GetByLesson(ctx context.Context, tx *gorm.DB, lessonID uuid.UUID) ([]*types.Assignment, error)
	GetByLessonAndStudent(ctx context.Context, tx *gorm.DB, lessonID, studentID uuid.UUID) (*types.Assignment, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, assignmentID uuid.UUID, status string) error
}

type assignmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAssignmentRepo(db *gorm.DB, baseLog *logger.Logger) AssignmentRepo {
	repoLog := baseLog.With("repo", "AssignmentRepo")
	return &assignmentRepo{db: db, log: repoLog}
}

// Upsert keeps re-assignment idempotent: assigning the same lesson to the
// same student twice leaves the existing row in place.
func (ar *assignmentRepo) Upsert(ctx context.Context, tx *gorm.DB, assignments []*types.Assignment) ([]*types.Assignment, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	if len(assignments) == 0 {
		return []*types.Assignment{}, nil
	}

	if err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "lesson_id"}, {Name: "student_id"}},
			DoNothing: true,
		}).
		Create(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

func (ar *assignmentRepo) GetByStudent(ctx context.Context, tx *gorm.DB, studentID uuid.UUID) ([]*types.Assignment, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var results []*types.Assignment
	if err := transaction.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ar *assignmentRepo) GetByLesson(ctx context.Context, tx *gorm.DB, lessonID uuid.UUID) ([]*types.Assignment, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var results []*types.Assignment
	if err := transaction.WithContext(ctx).
		Where("lesson_id = ?", lessonID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ar *assignmentRepo) GetByLessonAndStudent(ctx context.Context, tx *gorm.DB, lessonID, studentID uuid.UUID) (*types.Assignment, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var result types.Assignment
	if err := transaction.WithContext(ctx).
		Where("lesson_id = ? AND student_id = ?", lessonID, studentID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (ar *assignmentRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, assignmentID uuid.UUID, status string) error {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	return transaction.WithContext(ctx).
		Model(&types.Assignment{}).
		Where("id = ?", assignmentID).
		Update("status", status).Error
}
