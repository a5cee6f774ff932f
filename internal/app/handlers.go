package app

import (
	"github.com/eduvision/eduvision-backend/internal/handlers"
	"github.com/eduvision/eduvision-backend/internal/platform/logger"
	"github.com/eduvision/eduvision-backend/internal/realtime"
)

type Handlers struct {
	Auth      *handlers.AuthHandler
	User      *handlers.UserHandler
	Lesson    *handlers.LessonHandler
	Practice  *handlers.PracticeHandler
	Sign      *handlers.SignHandler
	Analytics *handlers.AnalyticsHandler
	Events    *handlers.EventsHandler
}

func wireHandlers(log *logger.Logger, s Services, hub *realtime.Hub) Handlers {
	return Handlers{
		Auth:      handlers.NewAuthHandler(log, s.Auth),
		User:      handlers.NewUserHandler(log, s.User),
		Lesson:    handlers.NewLessonHandler(log, s.Lesson, s.User),
		Practice:  handlers.NewPracticeHandler(log, s.Practice, s.User),
		Sign:      handlers.NewSignHandler(log, s.Sign, s.User),
		Analytics: handlers.NewAnalyticsHandler(log, s.Analytics, s.User),
		Events:    handlers.NewEventsHandler(log, hub, s.Event, s.User),
	}
}
