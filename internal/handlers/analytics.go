package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/eduvision/eduvision-backend/internal/http/response"
	"github.com/eduvision/eduvision-backend/internal/platform/logger"
	"github.com/eduvision/eduvision-backend/internal/services"
)

type AnalyticsHandler struct {
	log              *logger.Logger
	analyticsService services.AnalyticsService
	userService      services.UserService
}

func NewAnalyticsHandler(log *logger.Logger, analyticsService services.AnalyticsService, userService services.UserService) *AnalyticsHandler {
	handlerLog := log.With("handler", "AnalyticsHandler")
	return &AnalyticsHandler{log: handlerLog, analyticsService: analyticsService, userService: userService}
}

func (ah *AnalyticsHandler) StudentProgress(c *gin.Context) {
	user, ok := currentUser(c, ah.userService)
	if !ok {
		return
	}
	studentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	progress, err := ah.analyticsService.StudentProgress(c.Request.Context(), user, studentID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, progress)
}

func (ah *AnalyticsHandler) ClassOverview(c *gin.Context) {
	user, ok := currentUser(c, ah.userService)
	if !ok {
		return
	}

	overview, err := ah.analyticsService.ClassOverview(c.Request.Context(), user)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, overview)
}
