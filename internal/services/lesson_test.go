package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/eduvision/eduvision-backend/internal/adaptive"
	"github.com/eduvision/eduvision-backend/internal/platform/logger"
	"github.com/eduvision/eduvision-backend/internal/types"
)

type fakeLessonRepo struct {
	lessons map[uuid.UUID]*types.Lesson
}

func (f *fakeLessonRepo) Create(ctx context.Context, tx *gorm.DB, lessons []*types.Lesson) ([]*types.Lesson, error) {
	for _, l := range lessons {
		if l.ID == uuid.Nil {
			l.ID = uuid.New()
		}
		f.lessons[l.ID] = l
	}
	return lessons, nil
}

func (f *fakeLessonRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Lesson, error) {
	var out []*types.Lesson
	for _, id := range ids {
		if l, ok := f.lessons[id]; ok {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeLessonRepo) ListByTeacher(ctx context.Context, tx *gorm.DB, teacherID uuid.UUID) ([]*types.Lesson, error) {
	var out []*types.Lesson
	for _, l := range f.lessons {
		if l.TeacherID == teacherID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeLessonRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]*types.Lesson, error) {
	var out []*types.Lesson
	for _, l := range f.lessons {
		out = append(out, l)
	}
	return out, nil
}

func (f *fakeLessonRepo) Update(ctx context.Context, tx *gorm.DB, lesson *types.Lesson) (*types.Lesson, error) {
	f.lessons[lesson.ID] = lesson
	return lesson, nil
}

func (f *fakeLessonRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	delete(f.lessons, id)
	return nil
}

type fakeAdapter struct {
	calls int
	out   string
}

func (f *fakeAdapter) AdaptForStudent(ctx context.Context, baseText, disabilityType, learningStyle string) string {
	f.calls++
	if f.out != "" {
		return f.out
	}
	return baseText
}

func readTestLessonService(t *testing.T, repo *fakeLessonRepo, adapter adaptive.Adapter) *lessonService {
	t.Helper()
	log, err := logger.New("dev")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return &lessonService{
		log:        log,
		lessonRepo: repo,
		adapter:    adapter,
	}
}

func adaptiveLessonFixture(t *testing.T, teacherID uuid.UUID) *types.Lesson {
	t.Helper()
	content, err := json.Marshal(map[string]any{
		"is_adaptive": true,
		"adaptive_versions": map[string]any{
			"speech":  map[string]any{"category": "speech", "passage": "Speak slowly and clearly."},
			"general": map[string]any{"category": "general", "passage": "Plants make food from light."},
			"motor":   map[string]any{"category": "motor", "error": "timeout"},
		},
		"generation_stats": map[string]any{"total": 9, "success": 8, "failed": []string{"motor"}},
	})
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	return &types.Lesson{
		ID:         uuid.New(),
		TeacherID:  teacherID,
		Topic:      "Photosynthesis",
		IsAdaptive: true,
		Content:    datatypes.JSON(content),
		CreatedAt:  time.Now(),
	}
}

func TestGetLessonForUserStammeringStudentGetsSpeechVariant(t *testing.T) {
	teacherID := uuid.New()
	lesson := adaptiveLessonFixture(t, teacherID)
	repo := &fakeLessonRepo{lessons: map[uuid.UUID]*types.Lesson{lesson.ID: lesson}}
	svc := readTestLessonService(t, repo, nil)

	student := &types.User{ID: uuid.New(), Role: types.RoleStudent, DisabilityType: "stammering"}
	view, err := svc.GetLessonForUser(context.Background(), lesson.ID, student)
	if err != nil {
		t.Fatalf("GetLessonForUser: %v", err)
	}

	if view["category"] != "speech" {
		t.Fatalf("category = %v, want speech", view["category"])
	}
	variant, ok := view["variant"].(adaptive.Variant)
	if !ok {
		t.Fatalf("variant has unexpected type %T", view["variant"])
	}
	if variant["passage"] != "Speak slowly and clearly." {
		t.Fatalf("wrong variant content: %v", variant)
	}
}

func TestGetLessonForUserUnknownDisabilityFallsBackToGeneral(t *testing.T) {
	teacherID := uuid.New()
	lesson := adaptiveLessonFixture(t, teacherID)
	repo := &fakeLessonRepo{lessons: map[uuid.UUID]*types.Lesson{lesson.ID: lesson}}
	svc := readTestLessonService(t, repo, nil)

	student := &types.User{ID: uuid.New(), Role: types.RoleStudent, DisabilityType: "cerebral palsy"}
	view, err := svc.GetLessonForUser(context.Background(), lesson.ID, student)
	if err != nil {
		t.Fatalf("GetLessonForUser: %v", err)
	}
	if view["category"] != "general" {
		t.Fatalf("category = %v, want general", view["category"])
	}
}

func TestGetLessonForUserTeacherSeesRawDocument(t *testing.T) {
	teacherID := uuid.New()
	lesson := adaptiveLessonFixture(t, teacherID)
	repo := &fakeLessonRepo{lessons: map[uuid.UUID]*types.Lesson{lesson.ID: lesson}}
	svc := readTestLessonService(t, repo, nil)

	teacher := &types.User{ID: teacherID, Role: types.RoleTeacher}
	view, err := svc.GetLessonForUser(context.Background(), lesson.ID, teacher)
	if err != nil {
		t.Fatalf("GetLessonForUser: %v", err)
	}
	if _, hasVariant := view["variant"]; hasVariant {
		t.Fatal("teacher view must not resolve a variant")
	}
	content, ok := view["content"].(map[string]any)
	if !ok {
		t.Fatalf("content has unexpected type %T", view["content"])
	}
	if _, ok := content["adaptive_versions"]; !ok {
		t.Fatal("teacher view lost adaptive_versions")
	}
}

func TestGetLessonForUserTieredLessonAdaptsBasePassage(t *testing.T) {
	teacherID := uuid.New()
	content, _ := json.Marshal(map[string]any{
		"tiers": []any{
			map[string]any{"level": 1, "passage": "Light becomes food."},
			map[string]any{"level": 2, "passage": "Chlorophyll absorbs light energy."},
		},
	})
	lesson := &types.Lesson{
		ID:        uuid.New(),
		TeacherID: teacherID,
		Topic:     "Photosynthesis",
		Content:   datatypes.JSON(content),
	}
	repo := &fakeLessonRepo{lessons: map[uuid.UUID]*types.Lesson{lesson.ID: lesson}}
	adapter := &fakeAdapter{out: "Light becomes food. (adapted)"}
	svc := readTestLessonService(t, repo, adapter)

	student := &types.User{ID: uuid.New(), Role: types.RoleStudent, DisabilityType: "dyslexia"}
	view, err := svc.GetLessonForUser(context.Background(), lesson.ID, student)
	if err != nil {
		t.Fatalf("GetLessonForUser: %v", err)
	}
	if adapter.calls != 1 {
		t.Fatalf("adapter calls = %d, want 1", adapter.calls)
	}
	if view["adapted_passage"] != "Light becomes food. (adapted)" {
		t.Fatalf("adapted_passage = %v", view["adapted_passage"])
	}
}

func TestBasePassage(t *testing.T) {
	cases := []struct {
		name string
		doc  map[string]any
		want string
	}{
		{"top level passage", map[string]any{"passage": "abc"}, "abc"},
		{"first tier", map[string]any{"tiers": []any{map[string]any{"passage": "tier one"}}}, "tier one"},
		{"skips empty tier", map[string]any{"tiers": []any{map[string]any{"passage": "  "}, map[string]any{"passage": "second"}}}, "second"},
		{"nothing usable", map[string]any{"title": "x"}, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := basePassage(tc.doc); got != tc.want {
				t.Fatalf("basePassage = %q, want %q", got, tc.want)
			}
		})
	}
}
