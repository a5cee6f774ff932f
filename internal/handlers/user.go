package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eduvision/eduvision-backend/internal/http/response"
	"github.com/eduvision/eduvision-backend/internal/platform/logger"
	"github.com/eduvision/eduvision-backend/internal/services"
)

type UserHandler struct {
	log         *logger.Logger
	userService services.UserService
}

func NewUserHandler(log *logger.Logger, userService services.UserService) *UserHandler {
	handlerLog := log.With("handler", "UserHandler")
	return &UserHandler{log: handlerLog, userService: userService}
}

func (uh *UserHandler) GetMe(c *gin.Context) {
	user, ok := currentUser(c, uh.userService)
	if !ok {
		return
	}
	response.RespondOK(c, gin.H{"user": user})
}

func (uh *UserHandler) UpdateProfile(c *gin.Context) {
	user, ok := currentUser(c, uh.userService)
	if !ok {
		return
	}

	var in services.UpdateProfileInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	updated, err := uh.userService.UpdateProfile(c.Request.Context(), user.ID, in)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"user": updated})
}

func (uh *UserHandler) ListStudents(c *gin.Context) {
	students, err := uh.userService.ListStudents(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"students": students})
}
