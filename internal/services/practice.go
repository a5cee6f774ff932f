package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/eduvision/eduvision-backend/internal/adaptive"
	"github.com/eduvision/eduvision-backend/internal/learning/prompts"
	"github.com/eduvision/eduvision-backend/internal/platform/apierr"
	"github.com/eduvision/eduvision-backend/internal/platform/logger"
	"github.com/eduvision/eduvision-backend/internal/repos"
	"github.com/eduvision/eduvision-backend/internal/types"
)

const speechAnalysisTemperature = 0.3

// SpeechTranscriber converts a practice recording to text.
type SpeechTranscriber interface {
	TranscribeAudioBytes(ctx context.Context, audio []byte, mimeType, languageCode string) (string, error)
}

// CalmSynthesizer voices feedback with gentler delivery settings than
// lesson narration.
type CalmSynthesizer interface {
	SynthesizeCalm(ctx context.Context, text string) ([]byte, error)
}

type SpeechAnalysisResult struct {
	SessionID        uuid.UUID      `json:"session_id"`
	Transcript       string         `json:"transcript"`
	Analysis         map[string]any `json:"analysis"`
	FeedbackAudioURL string         `json:"feedback_audio_url,omitempty"`
}

type PracticeService interface {
	StartSession(ctx context.Context, student *types.User, lessonID *uuid.UUID) (*types.PracticeSession, error)
	AnalyzeSpeech(ctx context.Context, student *types.User, sessionID uuid.UUID, audio []byte, mimeType string) (*SpeechAnalysisResult, error)
	EndSession(ctx context.Context, student *types.User, sessionID uuid.UUID) error
	Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error)
	ListSessions(ctx context.Context, studentID uuid.UUID) ([]*types.PracticeSession, error)
	ListArtifacts(ctx context.Context, student *types.User, sessionID uuid.UUID) ([]*types.SessionArtifact, error)
}

type practiceService struct {
	db           *gorm.DB
	log          *logger.Logger
	sessionRepo  repos.PracticeSessionRepo
	artifactRepo repos.SessionArtifactRepo
	events       EventService
	textGen      adaptive.TextGenerator
	transcriber  SpeechTranscriber
	feedback     CalmSynthesizer
	store        adaptive.AudioStore
}

func NewPracticeService(
	db *gorm.DB,
	log *logger.Logger,
	sessionRepo repos.PracticeSessionRepo,
	artifactRepo repos.SessionArtifactRepo,
	events EventService,
	textGen adaptive.TextGenerator,
	transcriber SpeechTranscriber,
	feedback CalmSynthesizer,
	store adaptive.AudioStore,
) PracticeService {
	serviceLog := log.With("service", "PracticeService")
	return &practiceService{
		db:           db,
		log:          serviceLog,
		sessionRepo:  sessionRepo,
		artifactRepo: artifactRepo,
		events:       events,
		textGen:      textGen,
		transcriber:  transcriber,
		feedback:     feedback,
		store:        store,
	}
}

// StartSession snapshots the student's accessibility profile so the session
// keeps behaving the same way even if the profile changes mid-practice.
func (ps *practiceService) StartSession(ctx context.Context, student *types.User, lessonID *uuid.UUID) (*types.PracticeSession, error) {
	session := &types.PracticeSession{
		StudentID:     student.ID,
		LessonID:      lessonID,
		Status:        types.PracticeStatusActive,
		Accessibility: student.Accessibility,
		StartedAt:     time.Now().UTC(),
	}

	profile := student.AccessibilityProfile()
	if err := ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, cErr := ps.sessionRepo.Create(ctx, tx, []*types.PracticeSession{session}); cErr != nil {
			return cErr
		}
		payload := map[string]any{"session_id": session.ID.String()}
		if lessonID != nil {
			payload["lesson_id"] = lessonID.String()
		}
		if rErr := ps.events.Record(ctx, tx, student.ID, "practice_started", payload); rErr != nil {
			return rErr
		}
		for eventType, on := range map[string]bool{
			"captions_on":      profile.CaptionsAlwaysOn,
			"reduced_motion":   profile.ReducedMotion,
			"high_contrast":    profile.HighContrast,
			"aac_input_active": profile.AACEnabled,
		} {
			if !on {
				continue
			}
			if rErr := ps.events.Record(ctx, tx, student.ID, eventType, map[string]any{
				"session_id": session.ID.String(),
			}); rErr != nil {
				return rErr
			}
		}
		return nil
	}); err != nil {
		return nil, fmt.Errorf("failed to start practice session: %w", err)
	}
	return session, nil
}

// AnalyzeSpeech stores the recording, transcribes it, scores the transcript
// with the analysis prompt, and unless captions are always on for this
// session, voices the feedback.
func (ps *practiceService) AnalyzeSpeech(ctx context.Context, student *types.User, sessionID uuid.UUID, audio []byte, mimeType string) (*SpeechAnalysisResult, error) {
	if len(audio) == 0 {
		return nil, apierr.New(http.StatusBadRequest, "empty_audio", fmt.Errorf("no audio provided"))
	}
	if ps.transcriber == nil {
		return nil, apierr.New(http.StatusServiceUnavailable, "transcription_unavailable", fmt.Errorf("speech transcription is not configured"))
	}

	session, err := ps.getOwnSession(ctx, student, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != types.PracticeStatusActive {
		return nil, apierr.New(http.StatusConflict, "session_ended", fmt.Errorf("practice session already ended"))
	}

	recordingURL := ""
	if ps.store != nil {
		key := fmt.Sprintf("practice-audio/%s_%s%s", session.ID, uuid.NewString()[:8], extensionForMime(mimeType))
		if url, uErr := ps.store.UploadAudio(ctx, key, audio); uErr != nil {
			ps.log.Warn("failed to store practice recording", "session_id", session.ID.String(), "error", uErr)
		} else {
			recordingURL = url
		}
	}

	transcript, err := ps.transcriber.TranscribeAudioBytes(ctx, audio, mimeType, "")
	if err != nil {
		return nil, fmt.Errorf("transcription failed: %w", err)
	}
	if strings.TrimSpace(transcript) == "" {
		return nil, apierr.New(http.StatusUnprocessableEntity, "no_speech_detected", fmt.Errorf("no speech detected in recording"))
	}

	disability := strings.ToLower(strings.TrimSpace(student.DisabilityType))
	prompt, err := prompts.Build(prompts.SpeechAnalysis, prompts.Input{
		Transcript:      transcript,
		StammerFriendly: adaptive.ResolveCategory(disability) == adaptive.CategorySpeech && disability != "",
		HearingImpaired: adaptive.ResolveCategory(disability) == adaptive.CategoryHearing && disability != "",
		Neurodivergent:  isNeurodivergent(disability),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build analysis prompt: %w", err)
	}

	rawText, err := ps.textGen.GenerateText(ctx, prompt.System, prompt.User, speechAnalysisTemperature)
	if err != nil {
		return nil, fmt.Errorf("speech analysis failed: %w", err)
	}
	analysis, err := adaptive.ParseJSONObject(rawText)
	if err != nil {
		return nil, fmt.Errorf("speech analysis returned unusable JSON: %w", err)
	}

	profile := accessibilityFromSnapshot(session.Accessibility)
	feedbackURL := ""
	if !profile.CaptionsAlwaysOn {
		feedbackURL = ps.voiceFeedback(ctx, session, analysis)
	}

	result := &SpeechAnalysisResult{
		SessionID:        session.ID,
		Transcript:       transcript,
		Analysis:         analysis,
		FeedbackAudioURL: feedbackURL,
	}

	analysisPayload, _ := json.Marshal(analysis)
	artifacts := []*types.SessionArtifact{{
		SessionID: session.ID,
		Kind:      types.ArtifactSpeechRecording,
		URL:       recordingURL,
	}, {
		SessionID: session.ID,
		Kind:      types.ArtifactSpeechAnalysis,
		Payload:   datatypes.JSON(analysisPayload),
	}}
	if feedbackURL != "" {
		artifacts = append(artifacts, &types.SessionArtifact{
			SessionID: session.ID,
			Kind:      types.ArtifactSpokenFeedback,
			URL:       feedbackURL,
		})
	}

	if err := ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, aErr := ps.artifactRepo.Create(ctx, tx, artifacts); aErr != nil {
			return aErr
		}
		return ps.events.Record(ctx, tx, student.ID, "practice_analyzed", map[string]any{
			"session_id": session.ID.String(),
		})
	}); err != nil {
		return nil, fmt.Errorf("failed to persist analysis artifacts: %w", err)
	}
	return result, nil
}

// voiceFeedback narrates the analysis highlights. Any failure just means
// the student gets text-only feedback.
func (ps *practiceService) voiceFeedback(ctx context.Context, session *types.PracticeSession, analysis map[string]any) string {
	if ps.feedback == nil || ps.store == nil {
		return ""
	}

	text := feedbackScript(analysis)
	if text == "" {
		return ""
	}

	audio, err := ps.feedback.SynthesizeCalm(ctx, text)
	if err != nil {
		ps.log.Warn("spoken feedback synthesis failed", "session_id", session.ID.String(), "error", err)
		return ""
	}
	key := fmt.Sprintf("practice-audio/%s_feedback_%s.mp3", session.ID, uuid.NewString()[:8])
	url, err := ps.store.UploadAudio(ctx, key, audio)
	if err != nil {
		ps.log.Warn("spoken feedback upload failed", "session_id", session.ID.String(), "error", err)
		return ""
	}
	return url
}

func feedbackScript(analysis map[string]any) string {
	var parts []string
	for _, field := range []string{"strengths", "next_steps"} {
		items, ok := analysis[field].([]any)
		if !ok {
			continue
		}
		for _, item := range items {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				parts = append(parts, strings.TrimSpace(s))
			}
		}
	}
	return strings.Join(parts, " ")
}

func (ps *practiceService) EndSession(ctx context.Context, student *types.User, sessionID uuid.UUID) error {
	session, err := ps.getOwnSession(ctx, student, sessionID)
	if err != nil {
		return err
	}
	if session.Status != types.PracticeStatusActive {
		return nil
	}

	return ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if eErr := ps.sessionRepo.End(ctx, tx, session.ID, time.Now().UTC()); eErr != nil {
			return eErr
		}
		return ps.events.Record(ctx, tx, student.ID, "practice_ended", map[string]any{
			"session_id": session.ID.String(),
		})
	})
}

func (ps *practiceService) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	if ps.transcriber == nil {
		return "", apierr.New(http.StatusServiceUnavailable, "transcription_unavailable", fmt.Errorf("speech transcription is not configured"))
	}
	if len(audio) == 0 {
		return "", apierr.New(http.StatusBadRequest, "empty_audio", fmt.Errorf("no audio provided"))
	}
	return ps.transcriber.TranscribeAudioBytes(ctx, audio, mimeType, "")
}

func (ps *practiceService) ListSessions(ctx context.Context, studentID uuid.UUID) ([]*types.PracticeSession, error) {
	return ps.sessionRepo.ListByStudent(ctx, nil, studentID)
}

func (ps *practiceService) ListArtifacts(ctx context.Context, student *types.User, sessionID uuid.UUID) ([]*types.SessionArtifact, error) {
	session, err := ps.getOwnSession(ctx, student, sessionID)
	if err != nil {
		return nil, err
	}
	return ps.artifactRepo.GetBySessionIDs(ctx, nil, []uuid.UUID{session.ID})
}

func (ps *practiceService) getOwnSession(ctx context.Context, student *types.User, sessionID uuid.UUID) (*types.PracticeSession, error) {
	sessions, err := ps.sessionRepo.GetByIDs(ctx, nil, []uuid.UUID{sessionID})
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if len(sessions) == 0 {
		return nil, apierr.New(http.StatusNotFound, "session_not_found", fmt.Errorf("practice session %s not found", sessionID))
	}
	session := sessions[0]
	if session.StudentID != student.ID {
		return nil, apierr.New(http.StatusForbidden, "not_session_owner", fmt.Errorf("session belongs to another student"))
	}
	return session, nil
}

func isNeurodivergent(disability string) bool {
	switch adaptive.ResolveCategory(disability) {
	case adaptive.CategoryADHD, adaptive.CategoryAutism, adaptive.CategoryIntellectual:
		return disability != ""
	default:
		return false
	}
}

func accessibilityFromSnapshot(raw datatypes.JSON) types.AccessibilityProfile {
	var p types.AccessibilityProfile
	if len(raw) == 0 {
		return p
	}
	_ = json.Unmarshal(raw, &p)
	return p
}

func extensionForMime(mimeType string) string {
	mt := strings.ToLower(strings.TrimSpace(mimeType))
	switch {
	case strings.Contains(mt, "wav"):
		return ".wav"
	case strings.Contains(mt, "ogg"), strings.Contains(mt, "opus"):
		return ".ogg"
	case strings.Contains(mt, "webm"):
		return ".webm"
	case strings.Contains(mt, "mp4"), strings.Contains(mt, "m4a"):
		return ".m4a"
	default:
		return ".mp3"
	}
}
