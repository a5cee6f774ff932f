package handlers

import (
	"io"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/eduvision/eduvision-backend/internal/http/response"
	"github.com/eduvision/eduvision-backend/internal/platform/logger"
	"github.com/eduvision/eduvision-backend/internal/realtime"
	"github.com/eduvision/eduvision-backend/internal/services"
)

type EventsHandler struct {
	log          *logger.Logger
	hub          *realtime.Hub
	eventService services.EventService
	userService  services.UserService
}

func NewEventsHandler(log *logger.Logger, hub *realtime.Hub, eventService services.EventService, userService services.UserService) *EventsHandler {
	handlerLog := log.With("handler", "EventsHandler")
	return &EventsHandler{log: handlerLog, hub: hub, eventService: eventService, userService: userService}
}

// Stream is the SSE feed of the caller's own events.
func (eh *EventsHandler) Stream(c *gin.Context) {
	user, ok := currentUser(c, eh.userService)
	if !ok {
		return
	}

	ch, cancel := eh.hub.Subscribe(user.ID)
	defer cancel()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case ev, open := <-ch:
			if !open {
				return false
			}
			c.SSEvent(ev.Type, ev)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

func (eh *EventsHandler) Recent(c *gin.Context) {
	user, ok := currentUser(c, eh.userService)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	events, err := eh.eventService.ListRecent(c.Request.Context(), user.ID, limit)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"events": events})
}
