package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/eduvision/eduvision-backend/internal/http/response"
	"github.com/eduvision/eduvision-backend/internal/requestdata"
	"github.com/eduvision/eduvision-backend/internal/services"
	"github.com/eduvision/eduvision-backend/internal/types"
)

// currentUser loads the authenticated user's full record. Responds and
// returns false when the identity is missing or stale.
func currentUser(c *gin.Context, users services.UserService) (*types.User, bool) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", fmt.Errorf("missing identity"))
		return nil, false
	}
	user, err := users.GetByID(c.Request.Context(), rd.UserID)
	if err != nil {
		response.RespondServiceError(c, err)
		return nil, false
	}
	return user, true
}

func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", fmt.Errorf("invalid %s", name))
		return uuid.Nil, false
	}
	return id, true
}
