package app

import (
	"gorm.io/gorm"

	"github.com/eduvision/eduvision-backend/internal/adaptive"
	"github.com/eduvision/eduvision-backend/internal/platform/logger"
	"github.com/eduvision/eduvision-backend/internal/realtime"
	"github.com/eduvision/eduvision-backend/internal/services"
)

type Services struct {
	Auth      services.AuthService
	User      services.UserService
	Event     services.EventService
	Lesson    services.LessonService
	Practice  services.PracticeService
	Sign      services.SignService
	Analytics services.AnalyticsService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos, hub *realtime.Hub, c Clients) Services {
	var bus services.EventPublisher
	if c.Bus != nil {
		bus = c.Bus
	}
	event := services.NewEventService(db, log, r.UserEvent, hub, bus)

	var synth adaptive.SpeechSynthesizer
	var feedback services.CalmSynthesizer
	if c.TTS != nil {
		synth = c.TTS
		feedback = c.TTS
	}
	var store adaptive.AudioStore
	if c.Bucket != nil {
		store = c.Bucket
	}
	var transcriber services.SpeechTranscriber
	if c.Transcriber != nil {
		transcriber = c.Transcriber
	}

	notifier := services.NewGenerationNotifier(log, event)
	generator := adaptive.NewGenerator(log, c.TextGen, notifier)
	enricher := adaptive.NewEnricher(log, synth, store)
	adapter := adaptive.NewAdapter(log, c.TextGen)

	return Services{
		Auth:  services.NewAuthService(db, log, r.User, cfg.JWTSecretKey, cfg.AccessTokenTTL),
		User:  services.NewUserService(db, log, r.User, event),
		Event: event,
		Lesson: services.NewLessonService(
			db, log,
			r.Lesson, r.LessonAsset, r.Assignment, r.User,
			event, generator, enricher, adapter,
			c.TextGen, synth, store,
		),
		Practice: services.NewPracticeService(
			db, log,
			r.PracticeSession, r.SessionArtifact,
			event, c.TextGen, transcriber, feedback, store,
		),
		Sign: services.NewSignService(log, feedback),
		Analytics: services.NewAnalyticsService(
			db, log,
			r.User, r.Lesson, r.Assignment, r.PracticeSession, r.UserEvent,
		),
	}
}
