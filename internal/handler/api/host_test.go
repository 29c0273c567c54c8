//go:build unit

package api_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"slotbook/internal/domain/availability"
	"slotbook/internal/domain/host"
	"slotbook/internal/handler/api"
	resdto "slotbook/internal/handler/dto/response"
	"slotbook/internal/handler/middleware"
	"slotbook/internal/pkg/wallclock"
	"slotbook/internal/usecase/commands"
	"slotbook/internal/usecase/queries"
	"slotbook/tests/common/builder"
	"slotbook/tests/common/httptest"
	"slotbook/tests/common/testutil"
	commandsmock "slotbook/tests/mock/commands"
	queriesmock "slotbook/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type HostHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockHostCommands
	mockQueries  *queriesmock.MockHostQueries
	mockSlots    *queriesmock.MockAvailabilityQueries
	hostID       uuid.UUID
}

func (s *HostHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.router.Use(middleware.ErrorHandler())

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockHostCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockHostQueries(s.mockCtrl)
	s.mockSlots = queriesmock.NewMockAvailabilityQueries(s.mockCtrl)
	handler := api.NewHostHandler(s.mockCommands, s.mockQueries, s.mockSlots)
	s.hostID = uuid.New()

	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized", "code": "unauthorized"}})
			return
		}
		c.Set("host_id", s.hostID)
		c.Next()
	}

	s.router.GET("/api/hosts/:handle", handler.GetProfile)
	s.router.GET("/api/hosts/:handle/slots", handler.ListSlots)
	s.router.POST("/api/me/profile", authMiddleware, handler.SetupProfile)
	s.router.PUT("/api/me/policy", authMiddleware, handler.UpdatePolicy)
	s.router.PUT("/api/me/working-hours", authMiddleware, handler.ReplaceWeeklyHours)
}

func (s *HostHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestHostHandlerSuite(t *testing.T) {
	suite.Run(t, new(HostHandlerTestSuite))
}

func (s *HostHandlerTestSuite) TestGetProfile() {
	s.Run("success: returns the public profile", func() {
		view := &queries.HostProfileView{ID: uuid.New(), Handle: "ada", DisplayName: "Ada Lovelace", TimeZone: "Europe/London", DurationMin: 30}
		s.mockQueries.EXPECT().GetProfile(gomock.Any(), "ada").Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/hosts/ada", nil, "")

		var body resdto.HostProfileResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		want := resdto.HostProfileResponse{ID: view.ID, Handle: "ada", DisplayName: "Ada Lovelace", TimeZone: "Europe/London", DurationMin: 30}
		if diff := cmp.Diff(want, body); diff != "" {
			s.T().Errorf("profile mismatch (-want +got):\n%s", diff)
		}
	})

	s.Run("error: 404 for an unknown handle", func() {
		s.mockQueries.EXPECT().GetProfile(gomock.Any(), "ghost").Return(nil, queries.ErrHostNotFound).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/hosts/ghost", nil, "")
		httptest.AssertErrorCode(s.T(), rec, http.StatusNotFound, "not_found")
	})
}

func (s *HostHandlerTestSuite) TestListSlots() {
	s.Run("success: returns slots with local times", func() {
		start := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
		view := &queries.SlotsView{
			Date:        "2025-06-02",
			TimeZone:    "UTC",
			DurationMin: 30,
			Slots: []queries.SlotView{
				{Start: start, End: start.Add(30 * time.Minute), LocalStart: "2025-06-02T09:00:00+00:00", LocalEnd: "2025-06-02T09:30:00+00:00"},
			},
			CalendarChecked: true,
		}
		s.mockSlots.EXPECT().ListSlots(gomock.Any(), "ada", "2025-06-02").Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/hosts/ada/slots?date=2025-06-02", nil, "")

		var body resdto.SlotsResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Require().Len(body.Slots, 1)
		s.True(body.Slots[0].Start.Equal(start))
		s.Equal("2025-06-02T09:00:00+00:00", body.Slots[0].LocalStart)
		s.True(body.CalendarChecked)
	})

	s.Run("success: empty day renders an empty list", func() {
		s.mockSlots.EXPECT().ListSlots(gomock.Any(), "ada", "2025-06-01").
			Return(&queries.SlotsView{Date: "2025-06-01", TimeZone: "UTC", DurationMin: 30, CalendarChecked: true}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/hosts/ada/slots?date=2025-06-01", nil, "")
		s.Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Body.String(), `"slots":[]`)
	})

	s.Run("error: 400 for a malformed date", func() {
		s.mockSlots.EXPECT().ListSlots(gomock.Any(), "ada", "06/02/2025").Return(nil, wallclock.ErrInvalidDate).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/hosts/ada/slots?date=06/02/2025", nil, "")
		httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, "validation")
	})
}

func (s *HostHandlerTestSuite) TestSetupProfile() {
	reqBody := map[string]any{"handle": "ada", "display_name": "Ada Lovelace", "email": "ada@example.com", "time_zone": "Europe/London"}

	s.Run("success: returns 201 Created", func() {
		h, err := builder.NewHostBuilder().With(func(b *builder.HostBuilder) { b.ID = s.hostID }).BuildDomain()
		s.Require().NoError(err)
		s.mockCommands.EXPECT().SetupProfile(gomock.Any(), s.hostID, commands.SetupProfileInput{
			Handle:      "ada",
			DisplayName: "Ada Lovelace",
			Email:       "ada@example.com",
			TimeZone:    "Europe/London",
		}).Return(h, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/me/profile", reqBody, "bearer-token")

		var body resdto.HostResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(s.hostID, body.ID)
		s.Equal("ada", body.Handle)
		s.Equal([]availability.BlockSpec{{Start: "09:00", End: "12:00"}}, body.WeeklyHours["mon"])
	})

	s.Run("error: 400 on validation errors", func() {
		for _, mutate := range []func(map[string]any){
			testutil.Field("handle", nil),
			testutil.Field("handle", "ab"),
			testutil.Field("email", "nope"),
			testutil.Field("display_name", nil),
		} {
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/me/profile", testutil.DtoMap(s.T(), reqBody, mutate), "bearer-token")
			httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, "validation")
		}
	})

	s.Run("error: 409 when the handle is taken", func() {
		s.mockCommands.EXPECT().SetupProfile(gomock.Any(), s.hostID, gomock.Any()).Return(nil, commands.ErrHandleTaken).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/me/profile", reqBody, "bearer-token")
		httptest.AssertErrorCode(s.T(), rec, http.StatusConflict, "conflict")
	})

	s.Run("error: 401 when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/me/profile", reqBody, "")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})
}

func (s *HostHandlerTestSuite) TestUpdatePolicy() {
	s.Run("success: only present fields are forwarded", func() {
		h, err := builder.NewHostBuilder().BuildDomain()
		s.Require().NoError(err)
		s.mockCommands.EXPECT().UpdatePolicy(gomock.Any(), s.hostID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, in commands.UpdatePolicyInput) (*host.Host, error) {
				s.Nil(in.TimeZone)
				s.Require().NotNil(in.DurationMin)
				s.Equal(45, *in.DurationMin)
				s.Nil(in.CalendarIDs)
				return h, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/api/me/policy", map[string]any{"duration_min": 45}, "bearer-token")
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("error: 400 for a negative buffer", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/api/me/policy", map[string]any{"buffer_min": -5}, "bearer-token")
		httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, "validation")
	})

	s.Run("error: 404 when no profile exists", func() {
		s.mockCommands.EXPECT().UpdatePolicy(gomock.Any(), s.hostID, gomock.Any()).Return(nil, commands.ErrHostNotFound).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/api/me/policy", map[string]any{"buffer_min": 5}, "bearer-token")
		httptest.AssertErrorCode(s.T(), rec, http.StatusNotFound, "not_found")
	})
}

func (s *HostHandlerTestSuite) TestReplaceWeeklyHours() {
	days := map[string][]availability.BlockSpec{"mon": {{Start: "09:00", End: "17:00"}}}

	s.Run("success: forwards the weekday map", func() {
		h, err := builder.NewHostBuilder().BuildDomain()
		s.Require().NoError(err)
		s.mockCommands.EXPECT().ReplaceWeeklyHours(gomock.Any(), s.hostID, days).Return(h, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/api/me/working-hours", map[string]any{"days": days}, "bearer-token")
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("error: 400 for an invalid block", func() {
		s.mockCommands.EXPECT().ReplaceWeeklyHours(gomock.Any(), s.hostID, gomock.Any()).Return(nil, availability.ErrInvalidBlock).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/api/me/working-hours", map[string]any{"days": days}, "bearer-token")
		httptest.AssertErrorCode(s.T(), rec, http.StatusBadRequest, "validation")
	})

	s.Run("error: 500 does not leak details", func() {
		s.mockCommands.EXPECT().ReplaceWeeklyHours(gomock.Any(), s.hostID, gomock.Any()).Return(nil, errors.New("boom")).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/api/me/working-hours", map[string]any{"days": days}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})
}
