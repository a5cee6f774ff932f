package server

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/eduvision/eduvision-backend/internal/handlers"
	"github.com/eduvision/eduvision-backend/internal/middleware"
	"github.com/eduvision/eduvision-backend/internal/types"
	"github.com/eduvision/eduvision-backend/internal/utils"
)

type RouterConfig struct {
	AuthHandler      *handlers.AuthHandler
	AuthMiddleware   *middleware.AuthMiddleware
	UserHandler      *handlers.UserHandler
	LessonHandler    *handlers.LessonHandler
	PracticeHandler  *handlers.PracticeHandler
	SignHandler      *handlers.SignHandler
	AnalyticsHandler *handlers.AnalyticsHandler
	EventsHandler    *handlers.EventsHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// Public
	router.GET("/healthcheck", handlers.HealthCheck)
	api := router.Group("/api")
	api.POST("/register", cfg.AuthHandler.Register)
	api.POST("/login", cfg.AuthHandler.Login)

	// Protected
	protected := api.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())

	// User
	protected.GET("/me", cfg.UserHandler.GetMe)
	protected.PATCH("/me", cfg.UserHandler.UpdateProfile)

	// Events
	protected.GET("/events/stream", cfg.EventsHandler.Stream)
	protected.GET("/events", cfg.EventsHandler.Recent)

	// Lessons
	protected.GET("/lessons", cfg.LessonHandler.List)
	protected.GET("/lessons/:id", cfg.LessonHandler.Get)
	protected.GET("/lessons/:id/audio", cfg.LessonHandler.Audio)

	// Practice
	protected.POST("/practice/sessions", cfg.PracticeHandler.Start)
	protected.GET("/practice/sessions", cfg.PracticeHandler.Sessions)
	protected.POST("/practice/sessions/:id/analyze", cfg.PracticeHandler.Analyze)
	protected.POST("/practice/sessions/:id/end", cfg.PracticeHandler.End)
	protected.GET("/practice/sessions/:id/artifacts", cfg.PracticeHandler.Artifacts)
	protected.POST("/practice/transcribe", cfg.PracticeHandler.Transcribe)

	// Sign language and AAC
	protected.POST("/sign/vocab-assets", cfg.SignHandler.VocabAssets)
	protected.POST("/aac/speak", cfg.SignHandler.AACSpeak)

	// Analytics, self or teacher
	protected.GET("/analytics/students/:id", cfg.AnalyticsHandler.StudentProgress)

	// Teacher only
	teacher := protected.Group("/")
	teacher.Use(cfg.AuthMiddleware.RequireRole(types.RoleTeacher))
	teacher.POST("/lessons", cfg.LessonHandler.GenerateTiered)
	teacher.POST("/lessons/adaptive", cfg.LessonHandler.GenerateAdaptive)
	teacher.PATCH("/lessons/:id", cfg.LessonHandler.Update)
	teacher.DELETE("/lessons/:id", cfg.LessonHandler.Delete)
	teacher.POST("/lessons/:id/assign", cfg.LessonHandler.Assign)
	teacher.GET("/students", cfg.UserHandler.ListStudents)
	teacher.GET("/analytics/class", cfg.AnalyticsHandler.ClassOverview)

	return router
}

func allowedOrigins() []string {
	raw := utils.GetEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173", nil)
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
