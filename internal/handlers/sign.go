package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eduvision/eduvision-backend/internal/http/response"
	"github.com/eduvision/eduvision-backend/internal/platform/logger"
	"github.com/eduvision/eduvision-backend/internal/services"
)

type SignHandler struct {
	log         *logger.Logger
	signService services.SignService
	userService services.UserService
}

func NewSignHandler(log *logger.Logger, signService services.SignService, userService services.UserService) *SignHandler {
	handlerLog := log.With("handler", "SignHandler")
	return &SignHandler{log: handlerLog, signService: signService, userService: userService}
}

func (sh *SignHandler) VocabAssets(c *gin.Context) {
	if _, ok := currentUser(c, sh.userService); !ok {
		return
	}

	var in struct {
		Words []string `json:"words"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	assets, err := sh.signService.VocabAssets(c.Request.Context(), in.Words)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"assets": assets})
}

// AACSpeak returns the synthesized utterance as raw MP3 bytes.
func (sh *SignHandler) AACSpeak(c *gin.Context) {
	if _, ok := currentUser(c, sh.userService); !ok {
		return
	}

	var in struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	audio, err := sh.signService.AACSpeak(c.Request.Context(), in.Text)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	c.Data(http.StatusOK, "audio/mpeg", audio)
}
