package services

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eduvision/eduvision-backend/internal/platform/apierr"
	"github.com/eduvision/eduvision-backend/internal/platform/logger"
	"github.com/eduvision/eduvision-backend/internal/repos"
	"github.com/eduvision/eduvision-backend/internal/types"
)

const defaultAnalyticsWindow = 30 * 24 * time.Hour

type StudentProgress struct {
	Student       *types.User              `json:"student"`
	Assignments   []*types.Assignment      `json:"assignments"`
	EventCounts   []repos.EventTypeCount   `json:"event_counts"`
	SessionsTotal int                      `json:"sessions_total"`
	Sessions      []*types.PracticeSession `json:"sessions"`
}

type ClassOverview struct {
	Students    int                                  `json:"students"`
	Lessons     int                                  `json:"lessons"`
	EventCounts map[uuid.UUID][]repos.EventTypeCount `json:"event_counts"`
}

type AnalyticsService interface {
	StudentProgress(ctx context.Context, requester *types.User, studentID uuid.UUID) (*StudentProgress, error)
	ClassOverview(ctx context.Context, teacher *types.User) (*ClassOverview, error)
}

type analyticsService struct {
	db             *gorm.DB
	log            *logger.Logger
	userRepo       repos.UserRepo
	lessonRepo     repos.LessonRepo
	assignmentRepo repos.AssignmentRepo
	sessionRepo    repos.PracticeSessionRepo
	eventRepo      repos.UserEventRepo
}

func NewAnalyticsService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	lessonRepo repos.LessonRepo,
	assignmentRepo repos.AssignmentRepo,
	sessionRepo repos.PracticeSessionRepo,
	eventRepo repos.UserEventRepo,
) AnalyticsService {
	serviceLog := log.With("service", "AnalyticsService")
	return &analyticsService{
		db:             db,
		log:            serviceLog,
		userRepo:       userRepo,
		lessonRepo:     lessonRepo,
		assignmentRepo: assignmentRepo,
		sessionRepo:    sessionRepo,
		eventRepo:      eventRepo,
	}
}

// StudentProgress is visible to teachers and to the student themselves.
func (s *analyticsService) StudentProgress(ctx context.Context, requester *types.User, studentID uuid.UUID) (*StudentProgress, error) {
	if requester.Role != types.RoleTeacher && requester.ID != studentID {
		return nil, apierr.New(http.StatusForbidden, "forbidden", fmt.Errorf("cannot view another student's progress"))
	}

	students, err := s.userRepo.GetByIDs(ctx, nil, []uuid.UUID{studentID})
	if err != nil {
		return nil, fmt.Errorf("failed to load student: %w", err)
	}
	if len(students) == 0 {
		return nil, apierr.New(http.StatusNotFound, "student_not_found", fmt.Errorf("student %s not found", studentID))
	}

	assignments, err := s.assignmentRepo.GetByStudent(ctx, nil, studentID)
	if err != nil {
		return nil, err
	}
	sessions, err := s.sessionRepo.ListByStudent(ctx, nil, studentID)
	if err != nil {
		return nil, err
	}
	counts, err := s.eventRepo.CountByTypeSince(ctx, nil, studentID, time.Now().Add(-defaultAnalyticsWindow))
	if err != nil {
		return nil, err
	}

	return &StudentProgress{
		Student:       students[0],
		Assignments:   assignments,
		EventCounts:   counts,
		SessionsTotal: len(sessions),
		Sessions:      sessions,
	}, nil
}

func (s *analyticsService) ClassOverview(ctx context.Context, teacher *types.User) (*ClassOverview, error) {
	students, err := s.userRepo.ListByRole(ctx, nil, types.RoleStudent)
	if err != nil {
		return nil, err
	}
	lessons, err := s.lessonRepo.ListByTeacher(ctx, nil, teacher.ID)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(students))
	for _, st := range students {
		ids = append(ids, st.ID)
	}
	counts, err := s.eventRepo.CountByTypeForUsers(ctx, nil, ids, time.Now().Add(-defaultAnalyticsWindow))
	if err != nil {
		return nil, err
	}

	return &ClassOverview{
		Students:    len(students),
		Lessons:     len(lessons),
		EventCounts: counts,
	}, nil
}
