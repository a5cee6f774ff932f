package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	PracticeStatusActive = "active"
	PracticeStatusEnded  = "ended"
)

// PracticeSession tracks one speech practice run. Accessibility snapshots the
// student's profile at session start so mid-session profile edits do not
// change how the session behaves.
type PracticeSession struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	StudentID     uuid.UUID      `gorm:"type:uuid;not null;index;column:student_id" json:"student_id"`
	LessonID      *uuid.UUID     `gorm:"type:uuid;index;column:lesson_id" json:"lesson_id,omitempty"`
	Status        string         `gorm:"not null;default:'active';column:status" json:"status"`
	Accessibility datatypes.JSON `gorm:"type:jsonb;column:accessibility" json:"accessibility"`
	StartedAt     time.Time      `gorm:"not null;default:now();column:started_at" json:"started_at"`
	EndedAt       *time.Time     `gorm:"column:ended_at" json:"ended_at,omitempty"`
	CreatedAt     time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (PracticeSession) TableName() string {
	return "practice_session"
}

const (
	ArtifactSpeechRecording = "speech_recording"
	ArtifactSpeechAnalysis  = "speech_analysis"
	ArtifactSpokenFeedback  = "spoken_feedback"
)

// SessionArtifact is one output of a practice session: the raw recording,
// the analysis document, or synthesized spoken feedback.
type SessionArtifact struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	SessionID uuid.UUID      `gorm:"type:uuid;not null;index;column:session_id" json:"session_id"`
	Kind      string         `gorm:"not null;column:kind" json:"kind"`
	URL       string         `gorm:"column:url" json:"url"`
	Payload   datatypes.JSON `gorm:"type:jsonb;column:payload" json:"payload,omitempty"`
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (SessionArtifact) TableName() string {
	return "session_artifact"
}
