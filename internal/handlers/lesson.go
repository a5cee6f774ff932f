package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/eduvision/eduvision-backend/internal/adaptive"
	"github.com/eduvision/eduvision-backend/internal/http/response"
	"github.com/eduvision/eduvision-backend/internal/platform/logger"
	"github.com/eduvision/eduvision-backend/internal/services"
)

type LessonHandler struct {
	log           *logger.Logger
	lessonService services.LessonService
	userService   services.UserService
}

func NewLessonHandler(log *logger.Logger, lessonService services.LessonService, userService services.UserService) *LessonHandler {
	handlerLog := log.With("handler", "LessonHandler")
	return &LessonHandler{log: handlerLog, lessonService: lessonService, userService: userService}
}

func (lh *LessonHandler) GenerateAdaptive(c *gin.Context) {
	user, ok := currentUser(c, lh.userService)
	if !ok {
		return
	}

	var req adaptive.GenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	lesson, err := lh.lessonService.GenerateAdaptiveLesson(c.Request.Context(), user.ID, req)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"lesson": lesson})
}

func (lh *LessonHandler) GenerateTiered(c *gin.Context) {
	user, ok := currentUser(c, lh.userService)
	if !ok {
		return
	}

	var in services.TieredLessonInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	lesson, err := lh.lessonService.GenerateTieredLesson(c.Request.Context(), user.ID, in)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"lesson": lesson})
}

func (lh *LessonHandler) Get(c *gin.Context) {
	user, ok := currentUser(c, lh.userService)
	if !ok {
		return
	}
	lessonID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	view, err := lh.lessonService.GetLessonForUser(c.Request.Context(), lessonID, user)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, view)
}

func (lh *LessonHandler) List(c *gin.Context) {
	user, ok := currentUser(c, lh.userService)
	if !ok {
		return
	}

	lessons, err := lh.lessonService.ListLibrary(c.Request.Context(), user)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"lessons": lessons})
}

func (lh *LessonHandler) Assign(c *gin.Context) {
	user, ok := currentUser(c, lh.userService)
	if !ok {
		return
	}
	lessonID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var in struct {
		StudentIDs []uuid.UUID `json:"student_ids"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	if err := lh.lessonService.AssignLesson(c.Request.Context(), user.ID, lessonID, in.StudentIDs); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"assigned": len(in.StudentIDs)})
}

func (lh *LessonHandler) Update(c *gin.Context) {
	user, ok := currentUser(c, lh.userService)
	if !ok {
		return
	}
	lessonID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var in services.UpdateLessonInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	lesson, err := lh.lessonService.UpdateLesson(c.Request.Context(), user.ID, lessonID, in)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"lesson": lesson})
}

func (lh *LessonHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c, lh.userService)
	if !ok {
		return
	}
	lessonID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := lh.lessonService.DeleteLesson(c.Request.Context(), user.ID, lessonID); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (lh *LessonHandler) Audio(c *gin.Context) {
	if _, ok := currentUser(c, lh.userService); !ok {
		return
	}
	lessonID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	assets, err := lh.lessonService.GetLessonAudio(c.Request.Context(), lessonID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"assets": assets})
}
