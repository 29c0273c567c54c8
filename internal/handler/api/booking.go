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
	"github.com/google/uuid"
)

type BookingHandler struct {
	cmds commands.BookingCommands
	q    queries.BookingQueries
}

func NewBookingHandler(cmds commands.BookingCommands, q queries.BookingQueries) *BookingHandler {
	return &BookingHandler{cmds: cmds, q: q}
}

// @Summary Create booking
// @Description Book one of the host's offered slots as a guest
// @Tags bookings
// @Accept json
// @Produce json
// @Param handle path string true "Host handle"
// @Param request body reqdto.CreateBookingRequest true "Create booking request"
// @Success 201 {object} resdto.BookingActionResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 429 {object} httperr.Response
// @Router /api/hosts/{handle}/bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, httperr.CodeValidation, "Invalid request", nil)
		return
	}

	result, err := h.cmds.Create(c.Request.Context(), req.ToInput(c.Param("handle")))
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	res, err := resdto.FromBookingResult(result)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// @Summary Manage booking
// @Description Resolve the booking a guest action token belongs to
// @Tags bookings
// @Produce json
// @Param token query string true "Cancel or reschedule token"
// @Success 200 {object} resdto.GuestBookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/bookings/manage [get]
func (h *BookingHandler) Manage(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		httperr.AbortWithError(c, http.StatusBadRequest, errMissingToken, httperr.CodeValidation, "Token is required", nil)
		return
	}

	view, err := h.q.GetForGuest(c.Request.Context(), token)
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	res, err := resdto.FromGuestBookingView(view)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Cancel booking
// @Description Cancel a booking with the guest's cancel token
// @Tags bookings
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body reqdto.CancelBookingRequest true "Cancel request"
// @Success 200 {object} resdto.BookingActionResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 410 {object} httperr.Response
// @Router /api/bookings/{id}/cancel [post]
func (h *BookingHandler) Cancel(c *gin.Context) {
	id, ok := bookingIDParam(c)
	if !ok {
		return
	}
	var req reqdto.CancelBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, httperr.CodeValidation, "Invalid request", nil)
		return
	}

	result, err := h.cmds.Cancel(c.Request.Context(), req.ToInput(id))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	h.respondResult(c, http.StatusOK, result)
}

// @Summary Reschedule booking
// @Description Move a booking to another offered slot with the guest's reschedule token
// @Tags bookings
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body reqdto.RescheduleBookingRequest true "Reschedule request"
// @Success 200 {object} resdto.BookingActionResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 410 {object} httperr.Response
// @Router /api/bookings/{id}/reschedule [post]
func (h *BookingHandler) Reschedule(c *gin.Context) {
	id, ok := bookingIDParam(c)
	if !ok {
		return
	}
	var req reqdto.RescheduleBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, httperr.CodeValidation, "Invalid request", nil)
		return
	}

	result, err := h.cmds.Reschedule(c.Request.Context(), req.ToInput(id))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	h.respondResult(c, http.StatusOK, result)
}

// @Summary List my bookings
// @Description List the authenticated host's bookings in a time range, ordered by start
// @Tags host
// @Produce json
// @Security BearerAuth
// @Param from query string true "Range start (RFC3339)"
// @Param to query string true "Range end (RFC3339)"
// @Param cursor query string false "Cursor from a previous page"
// @Param limit query int false "Page size (max 200)"
// @Success 200 {object} resdto.BookingListResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /api/me/bookings [get]
func (h *BookingHandler) ListMine(c *gin.Context) {
	hostID, ok := middleware.GetHostID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errNoHost, httperr.CodeUnauthorized, "Unauthorized", nil)
		return
	}
	var q reqdto.ListBookingsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, httperr.CodeValidation, "Invalid query", nil)
		return
	}

	var cursor *queries.Cursor
	if q.Cursor != "" {
		cursor = &queries.Cursor{After: q.Cursor}
	}
	views, next, err := h.q.ListForHost(c.Request.Context(), hostID, q.From, q.To, cursor, q.Limit)
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	res, err := resdto.FromBookingList(views, next)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Confirm booking
// @Description Confirm a scheduled booking owned by the authenticated host
// @Tags host
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingActionResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/me/bookings/{id}/confirm [post]
func (h *BookingHandler) Confirm(c *gin.Context) {
	hostID, ok := middleware.GetHostID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errNoHost, httperr.CodeUnauthorized, "Unauthorized", nil)
		return
	}
	id, ok := bookingIDParam(c)
	if !ok {
		return
	}

	result, err := h.cmds.Confirm(c.Request.Context(), hostID, id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	h.respondResult(c, http.StatusOK, result)
}

func (h *BookingHandler) respondResult(c *gin.Context, status int, result *commands.BookingResult) {
	res, err := resdto.FromBookingResult(result)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(status, res)
}

func bookingIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, httperr.CodeValidation, "Invalid id", nil)
		return uuid.Nil, false
	}
	return id, true
}
