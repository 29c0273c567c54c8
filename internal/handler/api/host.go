package api

import (
	"net/http"

	reqdto "slotbook/internal/handler/dto/request"
	resdto "slotbook/internal/handler/dto/response"
	"slotbook/internal/handler/httperr"
	"slotbook/internal/handler/middleware"
	"slotbook/internal/usecase/commands"
	"slotbook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type HostHandler struct {
	cmds  commands.HostCommands
	q     queries.HostQueries
	slots queries.AvailabilityQueries
}

func NewHostHandler(cmds commands.HostCommands, q queries.HostQueries, slots queries.AvailabilityQueries) *HostHandler {
	return &HostHandler{cmds: cmds, q: q, slots: slots}
}

// @Summary Get host profile
// @Description Public booking page header for a host
// @Tags hosts
// @Produce json
// @Param handle path string true "Host handle"
// @Success 200 {object} resdto.HostProfileResponse
// @Failure 404 {object} httperr.Response
// @Router /api/hosts/{handle} [get]
func (h *HostHandler) GetProfile(c *gin.Context) {
	view, err := h.q.GetProfile(c.Request.Context(), c.Param("handle"))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	res, err := resdto.FromHostProfileView(view)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary List free slots
// @Description Bookable slots for one local date in the host's time zone
// @Tags hosts
// @Produce json
// @Param handle path string true "Host handle"
// @Param date query string true "Local date (YYYY-MM-DD)"
// @Success 200 {object} resdto.SlotsResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 429 {object} httperr.Response
// @Router /api/hosts/{handle}/slots [get]
func (h *HostHandler) ListSlots(c *gin.Context) {
	view, err := h.slots.ListSlots(c.Request.Context(), c.Param("handle"), c.Query("date"))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	res, err := resdto.FromSlotsView(view)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Set up host profile
// @Description One-time profile creation for the authenticated host
// @Tags host
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.SetupProfileRequest true "Profile"
// @Success 201 {object} resdto.HostResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/me/profile [post]
func (h *HostHandler) SetupProfile(c *gin.Context) {
	hostID, ok := middleware.GetHostID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errNoHost, httperr.CodeUnauthorized, "Unauthorized", nil)
		return
	}
	var req reqdto.SetupProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, httperr.CodeValidation, "Invalid request", nil)
		return
	}

	created, err := h.cmds.SetupProfile(c.Request.Context(), hostID, req.ToInput())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromHost(created))
}

// @Summary Update booking policy
// @Description Partially update time zone, duration, buffer, notice and calendars
// @Tags host
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.UpdatePolicyRequest true "Policy fields to change"
// @Success 200 {object} resdto.HostResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/me/policy [put]
func (h *HostHandler) UpdatePolicy(c *gin.Context) {
	hostID, ok := middleware.GetHostID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errNoHost, httperr.CodeUnauthorized, "Unauthorized", nil)
		return
	}
	var req reqdto.UpdatePolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, httperr.CodeValidation, "Invalid request", nil)
		return
	}

	updated, err := h.cmds.UpdatePolicy(c.Request.Context(), hostID, req.ToInput())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromHost(updated))
}

// @Summary Replace working hours
// @Description Replace the host's weekly working hours
// @Tags host
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.WeeklyHoursRequest true "Weekly hours"
// @Success 200 {object} resdto.HostResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/me/working-hours [put]
func (h *HostHandler) ReplaceWeeklyHours(c *gin.Context) {
	hostID, ok := middleware.GetHostID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errNoHost, httperr.CodeUnauthorized, "Unauthorized", nil)
		return
	}
	var req reqdto.WeeklyHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, httperr.CodeValidation, "Invalid request", nil)
		return
	}

	updated, err := h.cmds.ReplaceWeeklyHours(c.Request.Context(), hostID, req.Days)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromHost(updated))
}
