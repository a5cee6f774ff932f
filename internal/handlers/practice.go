package handlers

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/eduvision/eduvision-backend/internal/http/response"
	"github.com/eduvision/eduvision-backend/internal/platform/logger"
	"github.com/eduvision/eduvision-backend/internal/services"
)

const maxRecordingBytes = 25 << 20

type PracticeHandler struct {
	log             *logger.Logger
	practiceService services.PracticeService
	userService     services.UserService
}

func NewPracticeHandler(log *logger.Logger, practiceService services.PracticeService, userService services.UserService) *PracticeHandler {
	handlerLog := log.With("handler", "PracticeHandler")
	return &PracticeHandler{log: handlerLog, practiceService: practiceService, userService: userService}
}

func (ph *PracticeHandler) Start(c *gin.Context) {
	user, ok := currentUser(c, ph.userService)
	if !ok {
		return
	}

	var in struct {
		LessonID *uuid.UUID `json:"lesson_id"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&in); err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
			return
		}
	}

	session, err := ph.practiceService.StartSession(c.Request.Context(), user, in.LessonID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"session": session})
}

func (ph *PracticeHandler) Analyze(c *gin.Context) {
	user, ok := currentUser(c, ph.userService)
	if !ok {
		return
	}
	sessionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	audio, mimeType, err := readRecording(c)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_audio", err)
		return
	}

	result, err := ph.practiceService.AnalyzeSpeech(c.Request.Context(), user, sessionID, audio, mimeType)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, result)
}

func (ph *PracticeHandler) End(c *gin.Context) {
	user, ok := currentUser(c, ph.userService)
	if !ok {
		return
	}
	sessionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ph.practiceService.EndSession(c.Request.Context(), user, sessionID); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ended": true})
}

func (ph *PracticeHandler) Transcribe(c *gin.Context) {
	if _, ok := currentUser(c, ph.userService); !ok {
		return
	}

	audio, mimeType, err := readRecording(c)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_audio", err)
		return
	}

	transcript, err := ph.practiceService.Transcribe(c.Request.Context(), audio, mimeType)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"transcript": transcript})
}

func (ph *PracticeHandler) Sessions(c *gin.Context) {
	user, ok := currentUser(c, ph.userService)
	if !ok {
		return
	}

	sessions, err := ph.practiceService.ListSessions(c.Request.Context(), user.ID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"sessions": sessions})
}

func (ph *PracticeHandler) Artifacts(c *gin.Context) {
	user, ok := currentUser(c, ph.userService)
	if !ok {
		return
	}
	sessionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	artifacts, err := ph.practiceService.ListArtifacts(c.Request.Context(), user, sessionID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"artifacts": artifacts})
}

// readRecording accepts either a multipart "audio" file or a raw body with
// an audio content type.
func readRecording(c *gin.Context) ([]byte, string, error) {
	if file, err := c.FormFile("audio"); err == nil {
		if file.Size > maxRecordingBytes {
			return nil, "", fmt.Errorf("recording exceeds %d bytes", maxRecordingBytes)
		}
		f, err := file.Open()
		if err != nil {
			return nil, "", err
		}
		defer f.Close()
		data, err := io.ReadAll(io.LimitReader(f, maxRecordingBytes))
		if err != nil {
			return nil, "", err
		}
		return data, file.Header.Get("Content-Type"), nil
	}

	data, err := io.ReadAll(io.LimitReader(c.Request.Body, maxRecordingBytes))
	if err != nil {
		return nil, "", err
	}
	if len(data) == 0 {
		return nil, "", fmt.Errorf("no audio provided")
	}
	return data, c.ContentType(), nil
}
