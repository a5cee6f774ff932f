package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/eduvision/eduvision-backend/internal/types"
)

func SeedUser(t *testing.T, tx *gorm.DB, role string) *types.User {
	t.Helper()

	u := &types.User{
		Email:     fmt.Sprintf("%s-%s@example.test", role, uuid.NewString()[:8]),
		Password:  "not-a-real-hash",
		FirstName: "Test",
		LastName:  "User",
		Role:      role,
	}
	if err := tx.WithContext(context.Background()).Create(u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedLesson(t *testing.T, tx *gorm.DB, teacherID uuid.UUID, adaptive bool) *types.Lesson {
	t.Helper()

	content, _ := json.Marshal(map[string]any{"passage": "Plants use sunlight to make food."})
	l := &types.Lesson{
		TeacherID:  teacherID,
		Topic:      "Photosynthesis",
		Grade:      "5",
		IsAdaptive: adaptive,
		Content:    datatypes.JSON(content),
	}
	if err := tx.WithContext(context.Background()).Create(l).Error; err != nil {
		t.Fatalf("seed lesson: %v", err)
	}
	return l
}
