package api

import (
	"net/http"

	resdto "slotbook/internal/handler/dto/response"
	"slotbook/internal/handler/httperr"
	"slotbook/internal/handler/middleware"
	"slotbook/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type CalendarHandler struct {
	cmds commands.CalendarCommands
}

func NewCalendarHandler(cmds commands.CalendarCommands) *CalendarHandler {
	return &CalendarHandler{cmds: cmds}
}

// @Summary Start calendar connection
// @Description Returns the Google consent URL for the authenticated host
// @Tags host
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.CalendarConnectResponse
// @Failure 401 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /api/me/calendar/connect [get]
func (h *CalendarHandler) Connect(c *gin.Context) {
	hostID, ok := middleware.GetHostID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errNoHost, httperr.CodeUnauthorized, "Unauthorized", nil)
		return
	}
	url, err := h.cmds.StartConnect(c.Request.Context(), hostID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.CalendarConnectResponse{AuthURL: url})
}

// @Summary Calendar OAuth callback
// @Description Exchanges the authorization code and stores the host's calendar credentials
// @Tags calendar
// @Produce json
// @Param code query string true "Authorization code"
// @Param state query string true "State token"
// @Success 200 {object} resdto.CalendarConnectedResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /api/calendar/callback [get]
func (h *CalendarHandler) Callback(c *gin.Context) {
	code, state := c.Query("code"), c.Query("state")
	if code == "" || state == "" {
		httperr.AbortWithError(c, http.StatusBadRequest, errMissingCode, httperr.CodeValidation, "Code and state are required", nil)
		return
	}
	hostID, err := h.cmds.CompleteConnect(c.Request.Context(), state, code)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.CalendarConnectedResponse{HostID: hostID, Connected: true})
}
