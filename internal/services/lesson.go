package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/eduvision/eduvision-backend/internal/adaptive"
	"github.com/eduvision/eduvision-backend/internal/learning/prompts"
	"github.com/eduvision/eduvision-backend/internal/platform/apierr"
	"github.com/eduvision/eduvision-backend/internal/platform/logger"
	"github.com/eduvision/eduvision-backend/internal/repos"
	"github.com/eduvision/eduvision-backend/internal/types"
)

const tieredLessonTemperature = 0.7

type TieredLessonInput struct {
	Topic       string `json:"topic"`
	Grade       string `json:"grade"`
	Description string `json:"description"`
	Tiers       int    `json:"tiers"`
	Language    string `json:"language"`
	BaseText    string `json:"base_text"`
}

type UpdateLessonInput struct {
	Topic       *string         `json:"topic"`
	Grade       *string         `json:"grade"`
	Description *string         `json:"description"`
	Content     json.RawMessage `json:"content"`
}

type LessonService interface {
	GenerateAdaptiveLesson(ctx context.Context, teacherID uuid.UUID, req adaptive.GenerationRequest) (*types.Lesson, error)
	GenerateTieredLesson(ctx context.Context, teacherID uuid.UUID, in TieredLessonInput) (*types.Lesson, error)
	GetLessonForUser(ctx context.Context, lessonID uuid.UUID, user *types.User) (map[string]any, error)
	ListLibrary(ctx context.Context, user *types.User) ([]*types.Lesson, error)
	AssignLesson(ctx context.Context, teacherID, lessonID uuid.UUID, studentIDs []uuid.UUID) error
	UpdateLesson(ctx context.Context, teacherID, lessonID uuid.UUID, in UpdateLessonInput) (*types.Lesson, error)
	DeleteLesson(ctx context.Context, teacherID, lessonID uuid.UUID) error
	GetLessonAudio(ctx context.Context, lessonID uuid.UUID) ([]*types.LessonAsset, error)
}

type lessonService struct {
	db             *gorm.DB
	log            *logger.Logger
	lessonRepo     repos.LessonRepo
	assetRepo      repos.LessonAssetRepo
	assignmentRepo repos.AssignmentRepo
	userRepo       repos.UserRepo
	events         EventService
	generator      adaptive.Generator
	enricher       adaptive.Enricher
	adapter        adaptive.Adapter
	textGen        adaptive.TextGenerator
	synth          adaptive.SpeechSynthesizer
	store          adaptive.AudioStore
}

func NewLessonService(
	db *gorm.DB,
	log *logger.Logger,
	lessonRepo repos.LessonRepo,
	assetRepo repos.LessonAssetRepo,
	assignmentRepo repos.AssignmentRepo,
	userRepo repos.UserRepo,
	events EventService,
	generator adaptive.Generator,
	enricher adaptive.Enricher,
	adapter adaptive.Adapter,
	textGen adaptive.TextGenerator,
	synth adaptive.SpeechSynthesizer,
	store adaptive.AudioStore,
) LessonService {
	serviceLog := log.With("service", "LessonService")
	return &lessonService{
		db:             db,
		log:            serviceLog,
		lessonRepo:     lessonRepo,
		assetRepo:      assetRepo,
		assignmentRepo: assignmentRepo,
		userRepo:       userRepo,
		events:         events,
		generator:      generator,
		enricher:       enricher,
		adapter:        adapter,
		textGen:        textGen,
		synth:          synth,
		store:          store,
	}
}

// GenerateAdaptiveLesson runs the nine-category fan-out, enriches the
// surviving variants with narration, and persists the whole document. A
// lesson with some failed categories is still saved; only a run where every
// category failed surfaces as an error.
func (ls *lessonService) GenerateAdaptiveLesson(ctx context.Context, teacherID uuid.UUID, req adaptive.GenerationRequest) (*types.Lesson, error) {
	agg, err := ls.generator.GenerateAllVersions(ctx, req)
	if err != nil {
		return nil, err
	}

	if ls.enricher != nil {
		ls.enricher.EnrichWithAudio(ctx, agg, adaptive.DefaultSkipCategories())
	}

	doc := map[string]any{
		"is_adaptive":       true,
		"adaptive_versions": agg.AdaptiveVersions,
		"generation_stats":  agg.GenerationStats,
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode lesson content: %w", err)
	}

	lesson := &types.Lesson{
		TeacherID:   teacherID,
		Topic:       req.Topic,
		Grade:       req.Grade,
		Description: req.Description,
		IsAdaptive:  true,
		Content:     datatypes.JSON(raw),
	}
	if err := ls.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, cErr := ls.lessonRepo.Create(ctx, tx, []*types.Lesson{lesson}); cErr != nil {
			return cErr
		}
		return ls.events.Record(ctx, tx, teacherID, "lesson_generated", map[string]any{
			"lesson_id": lesson.ID.String(),
			"adaptive":  true,
			"success":   agg.GenerationStats.Success,
			"total":     agg.GenerationStats.Total,
		})
	}); err != nil {
		return nil, fmt.Errorf("failed to persist adaptive lesson: %w", err)
	}
	return lesson, nil
}

// GenerateTieredLesson produces one lesson with 1-5 difficulty tiers and
// kicks off per-tier narration. Narration failures are logged and skipped;
// the lesson itself is already saved by then.
func (ls *lessonService) GenerateTieredLesson(ctx context.Context, teacherID uuid.UUID, in TieredLessonInput) (*types.Lesson, error) {
	tiers := in.Tiers
	if tiers < 1 {
		tiers = 1
	}
	if tiers > 5 {
		tiers = 5
	}

	prompt, err := prompts.Build(prompts.LessonTiers, prompts.Input{
		Topic:    in.Topic,
		Grade:    in.Grade,
		Tiers:    tiers,
		Language: in.Language,
		BaseText: in.BaseText,
	})
	if err != nil {
		return nil, apierr.New(http.StatusBadRequest, "invalid_input", err)
	}

	rawText, err := ls.textGen.GenerateText(ctx, prompt.System, prompt.User, tieredLessonTemperature)
	if err != nil {
		return nil, fmt.Errorf("tiered lesson generation failed: %w", err)
	}
	doc, err := adaptive.ParseJSONObject(rawText)
	if err != nil {
		return nil, fmt.Errorf("tiered lesson returned unusable JSON: %w", err)
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode lesson content: %w", err)
	}

	lesson := &types.Lesson{
		TeacherID:   teacherID,
		Topic:       in.Topic,
		Grade:       in.Grade,
		Description: in.Description,
		IsAdaptive:  false,
		Content:     datatypes.JSON(raw),
	}
	if err := ls.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, cErr := ls.lessonRepo.Create(ctx, tx, []*types.Lesson{lesson}); cErr != nil {
			return cErr
		}
		return ls.events.Record(ctx, tx, teacherID, "lesson_generated", map[string]any{
			"lesson_id": lesson.ID.String(),
			"adaptive":  false,
			"tiers":     tiers,
		})
	}); err != nil {
		return nil, fmt.Errorf("failed to persist lesson: %w", err)
	}

	ls.synthesizeTierAudio(ctx, lesson, doc)
	return lesson, nil
}

// synthesizeTierAudio narrates each tier passage concurrently and records
// the resulting assets. Requires both a synthesizer and a store.
func (ls *lessonService) synthesizeTierAudio(ctx context.Context, lesson *types.Lesson, doc map[string]any) {
	if ls.synth == nil || ls.store == nil {
		return
	}
	tiersAny, ok := doc["tiers"].([]any)
	if !ok || len(tiersAny) == 0 {
		return
	}

	grp := new(errgroup.Group)
	for i, tierAny := range tiersAny {
		tier, ok := tierAny.(map[string]any)
		if !ok {
			continue
		}
		passage, _ := tier["passage"].(string)
		if strings.TrimSpace(passage) == "" {
			continue
		}
		level := i + 1
		if lv, ok := tier["level"].(float64); ok && lv > 0 {
			level = int(lv)
		}

		grp.Go(func() error {
			audio, err := ls.synth.Synthesize(ctx, passage)
			if err != nil {
				ls.log.Warn("tier narration failed", "lesson_id", lesson.ID.String(), "level", level, "error", err)
				return nil
			}
			key := fmt.Sprintf("lesson-audio/%s_tier_%d.mp3", lesson.ID, level)
			url, err := ls.store.UploadAudio(ctx, key, audio)
			if err != nil {
				ls.log.Warn("tier narration upload failed", "lesson_id", lesson.ID.String(), "level", level, "error", err)
				return nil
			}
			if _, err := ls.assetRepo.Create(ctx, nil, []*types.LessonAsset{{
				LessonID: lesson.ID,
				Kind:     types.LessonAssetTierAudio,
				Tag:      fmt.Sprintf("tier_%d", level),
				URL:      url,
			}}); err != nil {
				ls.log.Warn("failed to record tier narration asset", "lesson_id", lesson.ID.String(), "level", level, "error", err)
			}
			return nil
		})
	}
	_ = grp.Wait()
}

// GetLessonForUser is the read path. Teachers see the raw document.
// Students see either their resolved adaptive variant or, for tiered
// lessons, the document with the base passage rewritten for their profile.
func (ls *lessonService) GetLessonForUser(ctx context.Context, lessonID uuid.UUID, user *types.User) (map[string]any, error) {
	lesson, err := ls.getLesson(ctx, lessonID)
	if err != nil {
		return nil, err
	}

	var doc map[string]any
	if len(lesson.Content) > 0 {
		if err := json.Unmarshal(lesson.Content, &doc); err != nil {
			return nil, fmt.Errorf("stored lesson content is unreadable: %w", err)
		}
	}

	out := map[string]any{
		"lesson_id":   lesson.ID.String(),
		"topic":       lesson.Topic,
		"grade":       lesson.Grade,
		"description": lesson.Description,
		"is_adaptive": lesson.IsAdaptive,
	}

	if user.Role == types.RoleTeacher {
		out["content"] = doc
		return out, nil
	}

	if lesson.IsAdaptive {
		agg := aggregateFromDoc(doc)
		variant := adaptive.ResolveVariant(agg, user.DisabilityType)
		if variant == nil {
			return nil, apierr.New(http.StatusNotFound, "variant_unavailable", fmt.Errorf("no variant available for this lesson"))
		}
		out["category"] = string(adaptive.ResolveCategory(user.DisabilityType))
		out["variant"] = variant
		return out, nil
	}

	out["content"] = doc
	if ls.adapter != nil {
		if passage := basePassage(doc); passage != "" {
			out["adapted_passage"] = ls.adapter.AdaptForStudent(ctx, passage, user.DisabilityType, user.LearningStyle)
		}
	}
	return out, nil
}

func aggregateFromDoc(doc map[string]any) *adaptive.Aggregate {
	versions, ok := doc["adaptive_versions"].(map[string]any)
	if !ok {
		return nil
	}
	agg := &adaptive.Aggregate{AdaptiveVersions: map[adaptive.Category]adaptive.Variant{}}
	for cat, vAny := range versions {
		if v, ok := vAny.(map[string]any); ok {
			agg.AdaptiveVersions[adaptive.Category(cat)] = adaptive.Variant(v)
		}
	}
	return agg
}

// basePassage digs out the text worth adapting: a top-level passage, or the
// first tier's passage for tiered lessons.
func basePassage(doc map[string]any) string {
	if p, ok := doc["passage"].(string); ok && strings.TrimSpace(p) != "" {
		return p
	}
	tiers, ok := doc["tiers"].([]any)
	if !ok {
		return ""
	}
	for _, tierAny := range tiers {
		if tier, ok := tierAny.(map[string]any); ok {
			if p, ok := tier["passage"].(string); ok && strings.TrimSpace(p) != "" {
				return p
			}
		}
	}
	return ""
}

func (ls *lessonService) ListLibrary(ctx context.Context, user *types.User) ([]*types.Lesson, error) {
	if user.Role == types.RoleTeacher {
		return ls.lessonRepo.ListByTeacher(ctx, nil, user.ID)
	}

	assignments, err := ls.assignmentRepo.GetByStudent(ctx, nil, user.ID)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(assignments))
	for _, a := range assignments {
		ids = append(ids, a.LessonID)
	}
	return ls.lessonRepo.GetByIDs(ctx, nil, ids)
}

func (ls *lessonService) AssignLesson(ctx context.Context, teacherID, lessonID uuid.UUID, studentIDs []uuid.UUID) error {
	lesson, err := ls.getLesson(ctx, lessonID)
	if err != nil {
		return err
	}
	if lesson.TeacherID != teacherID {
		return apierr.New(http.StatusForbidden, "not_lesson_owner", fmt.Errorf("lesson belongs to another teacher"))
	}

	students, err := ls.userRepo.GetByIDs(ctx, nil, studentIDs)
	if err != nil {
		return fmt.Errorf("failed to load students: %w", err)
	}
	if len(students) != len(studentIDs) {
		return apierr.New(http.StatusBadRequest, "unknown_student", fmt.Errorf("one or more students do not exist"))
	}

	assignments := make([]*types.Assignment, 0, len(students))
	for _, s := range students {
		if s.Role != types.RoleStudent {
			return apierr.New(http.StatusBadRequest, "not_a_student", fmt.Errorf("user %s is not a student", s.ID))
		}
		assignments = append(assignments, &types.Assignment{
			LessonID:   lessonID,
			StudentID:  s.ID,
			AssignedBy: teacherID,
			Status:     types.AssignmentStatusAssigned,
		})
	}

	return ls.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, uErr := ls.assignmentRepo.Upsert(ctx, tx, assignments); uErr != nil {
			return uErr
		}
		for _, s := range students {
			if rErr := ls.events.Record(ctx, tx, s.ID, "lesson_assigned", map[string]any{
				"lesson_id": lessonID.String(),
				"topic":     lesson.Topic,
			}); rErr != nil {
				return rErr
			}
		}
		return nil
	})
}

func (ls *lessonService) UpdateLesson(ctx context.Context, teacherID, lessonID uuid.UUID, in UpdateLessonInput) (*types.Lesson, error) {
	lesson, err := ls.getLesson(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	if lesson.TeacherID != teacherID {
		return nil, apierr.New(http.StatusForbidden, "not_lesson_owner", fmt.Errorf("lesson belongs to another teacher"))
	}

	if in.Topic != nil {
		lesson.Topic = *in.Topic
	}
	if in.Grade != nil {
		lesson.Grade = *in.Grade
	}
	if in.Description != nil {
		lesson.Description = *in.Description
	}
	if len(in.Content) > 0 {
		if !json.Valid(in.Content) {
			return nil, apierr.New(http.StatusBadRequest, "invalid_content", fmt.Errorf("content must be a JSON document"))
		}
		lesson.Content = datatypes.JSON(in.Content)
	}

	return ls.lessonRepo.Update(ctx, nil, lesson)
}

func (ls *lessonService) DeleteLesson(ctx context.Context, teacherID, lessonID uuid.UUID) error {
	lesson, err := ls.getLesson(ctx, lessonID)
	if err != nil {
		return err
	}
	if lesson.TeacherID != teacherID {
		return apierr.New(http.StatusForbidden, "not_lesson_owner", fmt.Errorf("lesson belongs to another teacher"))
	}
	return ls.lessonRepo.Delete(ctx, nil, lessonID)
}

func (ls *lessonService) GetLessonAudio(ctx context.Context, lessonID uuid.UUID) ([]*types.LessonAsset, error) {
	if _, err := ls.getLesson(ctx, lessonID); err != nil {
		return nil, err
	}
	return ls.assetRepo.GetByLessonIDs(ctx, nil, []uuid.UUID{lessonID})
}

func (ls *lessonService) getLesson(ctx context.Context, lessonID uuid.UUID) (*types.Lesson, error) {
	lessons, err := ls.lessonRepo.GetByIDs(ctx, nil, []uuid.UUID{lessonID})
	if err != nil {
		return nil, fmt.Errorf("failed to load lesson: %w", err)
	}
	if len(lessons) == 0 {
		return nil, apierr.New(http.StatusNotFound, "lesson_not_found", fmt.Errorf("lesson %s not found", lessonID))
	}
	return lessons[0], nil
}
