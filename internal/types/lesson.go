package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Lesson holds either a tiered lesson or an adaptive lesson. Content is the
// full generated document: for adaptive lessons it carries adaptive_versions
// plus generation_stats, for tiered lessons the tiers array.
type Lesson struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	TeacherID   uuid.UUID      `gorm:"type:uuid;not null;index;column:teacher_id" json:"teacher_id"`
	Topic       string         `gorm:"not null;column:topic" json:"topic"`
	Grade       string         `gorm:"column:grade" json:"grade"`
	Description string         `gorm:"column:description" json:"description"`
	IsAdaptive  bool           `gorm:"not null;default:false;column:is_adaptive" json:"is_adaptive"`
	Content     datatypes.JSON `gorm:"type:jsonb;column:content" json:"content"`
	CreatedAt   time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Lesson) TableName() string {
	return "lesson"
}

const (
	LessonAssetTierAudio    = "tier_audio"
	LessonAssetVariantAudio = "variant_audio"
)

// LessonAsset is a generated side artifact of a lesson, today always audio
// narration. Tag identifies which tier or category the asset belongs to.
type LessonAsset struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	LessonID  uuid.UUID `gorm:"type:uuid;not null;index;column:lesson_id" json:"lesson_id"`
	Kind      string    `gorm:"not null;column:kind" json:"kind"`
	Tag       string    `gorm:"not null;column:tag" json:"tag"`
	URL       string    `gorm:"not null;column:url" json:"url"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (LessonAsset) TableName() string {
	return "lesson_asset"
}

const (
	AssignmentStatusAssigned  = "assigned"
	AssignmentStatusStarted   = "started"
	AssignmentStatusCompleted = "completed"
)

type Assignment struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	LessonID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_assignment_lesson_student;column:lesson_id" json:"lesson_id"`
	StudentID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_assignment_lesson_student;index;column:student_id" json:"student_id"`
	AssignedBy uuid.UUID `gorm:"type:uuid;not null;column:assigned_by" json:"assigned_by"`
	Status     string    `gorm:"not null;default:'assigned';column:status" json:"status"`
	CreatedAt  time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Assignment) TableName() string {
	return "assignment"
}
