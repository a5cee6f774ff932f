package app

import (
	"github.com/gin-gonic/gin"

	"github.com/eduvision/eduvision-backend/internal/middleware"
	"github.com/eduvision/eduvision-backend/internal/platform/logger"
	"github.com/eduvision/eduvision-backend/internal/server"
)

func wireRouter(log *logger.Logger, h Handlers, s Services) *gin.Engine {
	authMiddleware := middleware.NewAuthMiddleware(log, s.Auth)
	return server.NewRouter(server.RouterConfig{
		AuthHandler:      h.Auth,
		AuthMiddleware:   authMiddleware,
		UserHandler:      h.User,
		LessonHandler:    h.Lesson,
		PracticeHandler:  h.Practice,
		SignHandler:      h.Sign,
		AnalyticsHandler: h.Analytics,
		EventsHandler:    h.Events,
	})
}
