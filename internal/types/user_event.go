package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// UserEvent is the append-only activity stream behind analytics and the
// realtime feed.
type UserEvent struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`
	EventType string         `gorm:"not null;index;column:event_type" json:"event_type"`
	Payload   datatypes.JSON `gorm:"type:jsonb;column:payload" json:"payload,omitempty"`
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (UserEvent) TableName() string {
	return "user_event"
}
