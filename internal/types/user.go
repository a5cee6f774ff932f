package types

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	RoleTeacher = "teacher"
	RoleStudent = "student"
)

// AccessibilityProfile is the typed view of User.Accessibility. It travels as
// JSON so new toggles do not need a migration.
type AccessibilityProfile struct {
	CaptionsAlwaysOn bool `json:"captions_always_on"`
	ReducedMotion    bool `json:"reduced_motion"`
	HighContrast     bool `json:"high_contrast"`
	AACEnabled       bool `json:"aac_enabled"`
}

type User struct {
	ID                  uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Email               string         `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Password            string         `gorm:"not null;column:password" json:"-"`
	FirstName           string         `gorm:"not null;column:first_name" json:"first_name"`
	LastName            string         `gorm:"not null;column:last_name" json:"last_name"`
	Role                string         `gorm:"not null;default:'student';column:role" json:"role"`
	DisabilityType      string         `gorm:"column:disability_type" json:"disability_type"`
	LearningStyle       string         `gorm:"column:learning_style" json:"learning_style"`
	Accessibility       datatypes.JSON `gorm:"type:jsonb;column:accessibility" json:"accessibility"`
	OnboardingCompleted bool           `gorm:"not null;default:false;column:onboarding_completed" json:"onboarding_completed"`
	CreatedAt           time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt           time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (User) TableName() string {
	return "user"
}

// AccessibilityProfile decodes the stored JSON, returning the zero profile
// when the column is empty or malformed.
func (u *User) AccessibilityProfile() AccessibilityProfile {
	var p AccessibilityProfile
	if len(u.Accessibility) == 0 {
		return p
	}
	_ = json.Unmarshal(u.Accessibility, &p)
	return p
}
