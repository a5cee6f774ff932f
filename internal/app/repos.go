package app

import (
	"gorm.io/gorm"

	"github.com/eduvision/eduvision-backend/internal/platform/logger"
	"github.com/eduvision/eduvision-backend/internal/repos"
)

type Repos struct {
	User            repos.UserRepo
	Lesson          repos.LessonRepo
	LessonAsset     repos.LessonAssetRepo
	Assignment      repos.AssignmentRepo
	PracticeSession repos.PracticeSessionRepo
	SessionArtifact repos.SessionArtifactRepo
	UserEvent       repos.UserEventRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	return Repos{
		User:            repos.NewUserRepo(db, log),
		Lesson:          repos.NewLessonRepo(db, log),
		LessonAsset:     repos.NewLessonAssetRepo(db, log),
		Assignment:      repos.NewAssignmentRepo(db, log),
		PracticeSession: repos.NewPracticeSessionRepo(db, log),
		SessionArtifact: repos.NewSessionArtifactRepo(db, log),
		UserEvent:       repos.NewUserEventRepo(db, log),
	}
}
