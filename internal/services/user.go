package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/eduvision/eduvision-backend/internal/platform/apierr"
	"github.com/eduvision/eduvision-backend/internal/platform/logger"
	"github.com/eduvision/eduvision-backend/internal/repos"
	"github.com/eduvision/eduvision-backend/internal/types"
)

type UpdateProfileInput struct {
	FirstName           *string                     `json:"first_name"`
	LastName            *string                     `json:"last_name"`
	DisabilityType      *string                     `json:"disability_type"`
	LearningStyle       *string                     `json:"learning_style"`
	Accessibility       *types.AccessibilityProfile `json:"accessibility"`
	OnboardingCompleted *bool                       `json:"onboarding_completed"`
}

type UserService interface {
	GetByID(ctx context.Context, userID uuid.UUID) (*types.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, in UpdateProfileInput) (*types.User, error)
	ListStudents(ctx context.Context) ([]*types.User, error)
}

type userService struct {
	db       *gorm.DB
	log      *logger.Logger
	userRepo repos.UserRepo
	events   EventService
}

func NewUserService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo, events EventService) UserService {
	serviceLog := log.With("service", "UserService")
	return &userService{db: db, log: serviceLog, userRepo: userRepo, events: events}
}

func (us *userService) GetByID(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	users, err := us.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if len(users) == 0 {
		return nil, apierr.New(http.StatusNotFound, "user_not_found", fmt.Errorf("user %s not found", userID))
	}
	return users[0], nil
}

func (us *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, in UpdateProfileInput) (*types.User, error) {
	user, err := us.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if in.DisabilityType != nil {
		user.DisabilityType = *in.DisabilityType
	}
	if in.LearningStyle != nil {
		user.LearningStyle = *in.LearningStyle
	}
	if in.Accessibility != nil {
		raw, mErr := json.Marshal(in.Accessibility)
		if mErr != nil {
			return nil, fmt.Errorf("failed to encode accessibility profile: %w", mErr)
		}
		user.Accessibility = datatypes.JSON(raw)
	}
	completedNow := in.OnboardingCompleted != nil && *in.OnboardingCompleted && !user.OnboardingCompleted
	if in.OnboardingCompleted != nil {
		user.OnboardingCompleted = *in.OnboardingCompleted
	}

	if err := us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, uErr := us.userRepo.Update(ctx, tx, user); uErr != nil {
			return uErr
		}
		if completedNow {
			return us.events.Record(ctx, tx, user.ID, "onboarding_completed", nil)
		}
		return nil
	}); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return user, nil
}

func (us *userService) ListStudents(ctx context.Context) ([]*types.User, error) {
	return us.userRepo.ListByRole(ctx, nil, types.RoleStudent)
}
