//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"slotbook/internal/domain/booking"
	"slotbook/internal/handler/api"
	resdto "slotbook/internal/handler/dto/response"
	"slotbook/internal/handler/middleware"
	"slotbook/internal/pkg/actiontoken"
	"slotbook/internal/pkg/errs"
	"slotbook/internal/usecase/commands"
	"slotbook/internal/usecase/queries"
	"slotbook/tests/common/builder"
	"slotbook/tests/common/httptest"
	"slotbook/tests/common/testutil"
	commandsmock "slotbook/tests/mock/commands"
	queriesmock "slotbook/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	mockQueries  *queriesmock.MockBookingQueries
	handler      *api.BookingHandler
	hostID       uuid.UUID
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.router.Use(middleware.ErrorHandler())

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.handler = api.NewBookingHandler(s.mockCommands, s.mockQueries)
	s.hostID = uuid.New()

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized", "code": "unauthorized"}})
			return
		}
		c.Set("host_id", s.hostID)
		c.Next()
	}

	s.router.POST("/api/hosts/:handle/bookings", s.handler.Create)
	s.router.GET("/api/bookings/manage", s.handler.Manage)
	s.router.POST("/api/bookings/:id/cancel", s.handler.Cancel)
	s.router.POST("/api/bookings/:id/reschedule", s.handler.Reschedule)
	s.router.GET("/api/me/bookings", authMiddleware, s.handler.ListMine)
	s.router.POST("/api/me/bookings/:id/confirm", authMiddleware, s.handler.Confirm)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

func (s *BookingHandlerTestSuite) buildResult(links bool) *commands.BookingResult {
	b, err := builder.NewBookingBuilder().BuildDomain()
	s.Require().NoError(err)
	res := &commands.BookingResult{Booking: b}
	if links {
		res.Links = &commands.IssuedLinks{
			Cancel:     actiontoken.Issued{Token: "cancel-token", ExpiresAt: 1751328000},
			Reschedule: actiontoken.Issued{Token: "reschedule-token", ExpiresAt: 1751328000},
		}
	}
	return res
}

type testCaseBooking struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *BookingHandlerTestSuite) TestCreate() {
	url := "/api/hosts/ada/bookings"
	reqBody := builder.NewBookingBuilder().BuildCreateRequestDTO()

	validation := []testCaseBooking{
		{name: "missing field: start (required)", mutate: testutil.Field("start", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: end (required)", mutate: testutil.Field("end", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: guest_name (required)", mutate: testutil.Field("guest_name", nil), expectCode: http.StatusBadRequest},
		{name: "invalid guest_email", mutate: testutil.Field("guest_email", "not-an-email"), expectCode: http.StatusBadRequest},
		{name: "guest_name too long (201 chars)", mutate: testutil.Field("guest_name", strings.Repeat("a", 201)), expectCode: http.StatusBadRequest},
		{name: "start is not a timestamp", mutate: testutil.Field("start", "tomorrow"), expectCode: http.StatusBadRequest},
	}

	s.Run("success: returns 201 Created with guest links", func() {
		result := s.buildResult(true)
		s.mockCommands.EXPECT().Create(gomock.Any(), commands.CreateBookingInput{
			Handle:     "ada",
			Start:      reqBody.Start,
			End:        reqBody.End,
			GuestName:  reqBody.GuestName,
			GuestEmail: reqBody.GuestEmail,
		}).Return(result, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var body resdto.BookingActionResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(result.Booking.ID(), body.Booking.ID)
		s.Equal("scheduled", body.Booking.Status)
		s.Len(body.Booking.Reminders, len(result.Booking.Reminders()))
		s.Require().NotNil(body.Cancel)
		s.Equal("cancel-token", body.Cancel.Token)
		s.Require().NotNil(body.Reschedule)
		s.Equal("reschedule-token", body.Reschedule.Token)
		s.Empty(body.Degraded)
	})

	s.Run("success: degraded effects are reported", func() {
		result := s.buildResult(true)
		result.Effects.Degraded = []string{"calendar_insert"}
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any()).Return(result, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var body resdto.BookingActionResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal([]string{"calendar_insert"}, body.Degraded)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		for _, tc := range validation {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "Invalid request")
			})
		}
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedCode   string
		}{
			{name: "host not found", commandsError: commands.ErrHostNotFound, expectedStatus: http.StatusNotFound, expectedCode: "not_found"},
			{name: "slot not offered", commandsError: commands.ErrSlotNotOffered, expectedStatus: http.StatusConflict, expectedCode: "conflict"},
			{name: "slot taken at commit", commandsError: commands.ErrSlotUnavailable, expectedStatus: http.StatusConflict, expectedCode: "conflict"},
			{name: "duration mismatch", commandsError: commands.ErrDurationMismatch, expectedStatus: http.StatusBadRequest, expectedCode: "validation"},
			{name: "inverted time slot", commandsError: booking.ErrInvalidTimeSlot, expectedStatus: http.StatusBadRequest, expectedCode: "validation"},
			{name: "calendar check failed closed", commandsError: commands.ErrCalendarUnavailable, expectedStatus: http.StatusServiceUnavailable, expectedCode: "unavailable"},
			{name: "internal server error", commandsError: errors.New("database error"), expectedStatus: http.StatusInternalServerError, expectedCode: "internal"},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
				httptest.AssertErrorCode(s.T(), rec, tc.expectedStatus, tc.expectedCode)
			})
		}
	})

	s.Run("error: internal errors do not leak details", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(nil, errors.New("pq: connection reset by peer")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
		s.NotContains(rec.Body.String(), "connection reset")
	})
}

// ================================================================================
// TestManage
// ================================================================================

func (s *BookingHandlerTestSuite) TestManage() {
	s.Run("success: returns the linked booking", func() {
		view := builder.NewBookingBuilder().BuildView()
		s.mockQueries.EXPECT().GetForGuest(gomock.Any(), "tok").Return(&queries.GuestBookingView{
			Booking:         *view,
			HostDisplayName: "Ada Lovelace",
			HostTimeZone:    "UTC",
			Purpose:         "cancel",
		}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/bookings/manage?token=tok", nil, "")

		var body resdto.GuestBookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(view.ID, body.Booking.ID)
		s.Equal("Ada Lovelace", body.HostDisplayName)
		s.Equal("cancel", body.Purpose)
		s.NotNil(body.Booking.Reminders)
	})

	s.Run("error: 400 when token is missing", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/bookings/manage", nil, "")
		httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, "validation")
	})

	s.Run("error: token errors map to 401", func() {
		for _, err := range []error{actiontoken.ErrTokenExpired, actiontoken.ErrTokenInvalid} {
			s.mockQueries.EXPECT().GetForGuest(gomock.Any(), "tok").Return(nil, err).Times(1)
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/bookings/manage?token=tok", nil, "")
			s.Equal(http.StatusUnauthorized, rec.Code)
		}
	})

	s.Run("error: 404 when token no longer links to a booking", func() {
		s.mockQueries.EXPECT().GetForGuest(gomock.Any(), "tok").Return(nil, queries.ErrLinkNotFound).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/bookings/manage?token=tok", nil, "")
		httptest.AssertErrorCode(s.T(), rec, http.StatusNotFound, "not_found")
	})
}

// ================================================================================
// TestCancel
// ================================================================================

func (s *BookingHandlerTestSuite) TestCancel() {
	bookingID := uuid.New()
	url := "/api/bookings/" + bookingID.String() + "/cancel"
	reqBody := map[string]any{"token": "cancel-token", "reason": "  conflict  "}

	s.Run("success: returns 200 OK without new links", func() {
		result := s.buildResult(false)
		s.mockCommands.EXPECT().Cancel(gomock.Any(), commands.CancelBookingInput{
			BookingID: bookingID,
			Token:     "cancel-token",
			Reason:    "conflict",
		}).Return(result, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var body resdto.BookingActionResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Nil(body.Cancel)
		s.Nil(body.Reschedule)
	})

	s.Run("error: 400 for invalid UUID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/bookings/nope/cancel", reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})

	s.Run("error: 400 when token is missing", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"reason": "x"}, "")
		httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, "validation")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedCode   string
		}{
			{name: "token already used", commandsError: commands.ErrTokenUsed, expectedStatus: http.StatusGone, expectedCode: "token_used"},
			{name: "token expired", commandsError: actiontoken.ErrTokenExpired, expectedStatus: http.StatusUnauthorized, expectedCode: "token_expired"},
			{name: "wrong purpose", commandsError: actiontoken.ErrTokenPurpose, expectedStatus: http.StatusUnauthorized, expectedCode: "token_purpose"},
			{name: "bad signature", commandsError: actiontoken.ErrTokenInvalid, expectedStatus: http.StatusUnauthorized, expectedCode: "token_invalid"},
			{name: "token for another booking", commandsError: commands.ErrTokenSubject, expectedStatus: http.StatusUnauthorized, expectedCode: "token_invalid"},
			{name: "wrapped expiry keeps its kind", commandsError: errs.Wrap(actiontoken.ErrTokenExpired, "verify cancel token"), expectedStatus: http.StatusUnauthorized, expectedCode: "token_expired"},
			{name: "wrapped replay keeps its kind", commandsError: errs.Wrap(commands.ErrTokenUsed, "consume marker"), expectedStatus: http.StatusGone, expectedCode: "token_used"},
			{name: "guest mismatch", commandsError: commands.ErrGuestMismatch, expectedStatus: http.StatusForbidden, expectedCode: "forbidden"},
			{name: "already canceled", commandsError: booking.ErrAlreadyCanceled, expectedStatus: http.StatusConflict, expectedCode: "already_canceled"},
			{name: "booking not found", commandsError: commands.ErrBookingNotFound, expectedStatus: http.StatusNotFound, expectedCode: "not_found"},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Cancel(gomock.Any(), gomock.Any()).Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
				httptest.AssertErrorCode(s.T(), rec, tc.expectedStatus, tc.expectedCode)
			})
		}
	})
}

// ================================================================================
// TestReschedule
// ================================================================================

func (s *BookingHandlerTestSuite) TestReschedule() {
	bookingID := uuid.New()
	url := "/api/bookings/" + bookingID.String() + "/reschedule"
	start := time.Date(2025, 6, 3, 10, 0, 0, 0, time.UTC)
	reqBody := map[string]any{"token": "reschedule-token", "start": start, "end": start.Add(30 * time.Minute)}

	s.Run("success: returns fresh links", func() {
		result := s.buildResult(true)
		s.mockCommands.EXPECT().Reschedule(gomock.Any(), commands.RescheduleBookingInput{
			BookingID: bookingID,
			Token:     "reschedule-token",
			Start:     start,
			End:       start.Add(30 * time.Minute),
		}).Return(result, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var body resdto.BookingActionResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Require().NotNil(body.Reschedule)
		s.Equal("reschedule-token", body.Reschedule.Token)
	})

	s.Run("error: 400 when end is missing", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"token": "t", "start": start}, "")
		httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, "validation")
	})

	s.Run("error: 409 when the new slot was taken", func() {
		s.mockCommands.EXPECT().Reschedule(gomock.Any(), gomock.Any()).Return(nil, commands.ErrSlotUnavailable).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorCode(s.T(), rec, http.StatusConflict, "conflict")
	})

	s.Run("error: 400 when the slot is unchanged", func() {
		s.mockCommands.EXPECT().Reschedule(gomock.Any(), gomock.Any()).Return(nil, booking.ErrSameSlot).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, "validation")
	})
}

// ================================================================================
// TestListMine
// ================================================================================

func (s *BookingHandlerTestSuite) TestListMine() {
	from := "2025-06-01T00:00:00Z"
	to := "2025-06-08T00:00:00Z"
	url := "/api/me/bookings?from=" + from + "&to=" + to

	s.Run("success: returns items and next cursor", func() {
		views := []*queries.BookingView{builder.NewBookingBuilder().BuildView(), builder.NewBookingBuilder().BuildView()}
		next := &queries.Cursor{After: "abc"}
		s.mockQueries.EXPECT().ListForHost(gomock.Any(), s.hostID,
			time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC),
			(*queries.Cursor)(nil), 2,
		).Return(views, next, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"&limit=2", nil, "bearer-token")

		var body resdto.BookingListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body.Items, 2)
		s.Require().NotNil(body.NextCursor)
		s.Equal("abc", *body.NextCursor)
	})

	s.Run("success: cursor is passed through", func() {
		s.mockQueries.EXPECT().ListForHost(gomock.Any(), s.hostID, gomock.Any(), gomock.Any(), &queries.Cursor{After: "xyz"}, 0).
			Return([]*queries.BookingView{}, nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"&cursor=xyz", nil, "bearer-token")

		var body resdto.BookingListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Empty(body.Items)
		s.Nil(body.NextCursor)
	})

	s.Run("error: 400 when range is missing", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/me/bookings", nil, "bearer-token")
		httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, "validation")
	})

	s.Run("error: 400 for an invalid cursor", func() {
		s.mockQueries.EXPECT().ListForHost(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, nil, queries.ErrInvalidCursor).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"&cursor=bad", nil, "bearer-token")
		httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, "validation")
	})

	s.Run("error: 401 when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})
}

// ================================================================================
// TestConfirm
// ================================================================================

func (s *BookingHandlerTestSuite) TestConfirm() {
	bookingID := uuid.New()
	url := "/api/me/bookings/" + bookingID.String() + "/confirm"

	s.Run("success: confirms as the authenticated host", func() {
		s.mockCommands.EXPECT().Confirm(gomock.Any(), s.hostID, bookingID).Return(s.buildResult(false), nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 403 for another host's booking", func() {
		s.mockCommands.EXPECT().Confirm(gomock.Any(), s.hostID, bookingID).Return(nil, commands.ErrNotBookingOwner).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		httptest.AssertErrorCode(s.T(), rec, http.StatusForbidden, "forbidden")
	})

	s.Run("error: 401 when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})
}
