package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"slotbook/internal/handler/api"
	"slotbook/internal/handler/middleware"
	"slotbook/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Host     *api.HostHandler
	Booking  *api.BookingHandler
	Calendar *api.CalendarHandler
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	hostHandler *api.HostHandler,
	bookingHandler *api.BookingHandler,
	calendarHandler *api.CalendarHandler,
	authMiddleware *middleware.AuthMiddleware,
	limiter *middleware.RateLimiter,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, Handlers{Host: hostHandler, Booking: bookingHandler, Calendar: calendarHandler}, authMiddleware, limiter)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware, limiter *middleware.RateLimiter) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	throttle := []gin.HandlerFunc{limiter.Handler()}

	apiGroup := engine.Group("/api")
	{
		hosts := apiGroup.Group("/hosts")
		addRoutes(hosts, []route{
			{Method: http.MethodGet, Path: "/:handle", Handler: h.Host.GetProfile},
			{Method: http.MethodGet, Path: "/:handle/slots", Handler: h.Host.ListSlots, Mw: throttle},
			{Method: http.MethodPost, Path: "/:handle/bookings", Handler: h.Booking.Create, Mw: throttle},
		})

		bookings := apiGroup.Group("/bookings")
		addRoutes(bookings, []route{
			{Method: http.MethodGet, Path: "/manage", Handler: h.Booking.Manage, Mw: throttle},
			{Method: http.MethodPost, Path: "/:id/cancel", Handler: h.Booking.Cancel, Mw: throttle},
			{Method: http.MethodPost, Path: "/:id/reschedule", Handler: h.Booking.Reschedule, Mw: throttle},
		})

		addRoutes(apiGroup, []route{
			{Method: http.MethodGet, Path: "/calendar/callback", Handler: h.Calendar.Callback},
		})

		me := apiGroup.Group("/me")
		me.Use(authMiddleware.RequireHost())
		{
			addRoutes(me, []route{
				{Method: http.MethodPost, Path: "/profile", Handler: h.Host.SetupProfile},
				{Method: http.MethodPut, Path: "/policy", Handler: h.Host.UpdatePolicy},
				{Method: http.MethodPut, Path: "/working-hours", Handler: h.Host.ReplaceWeeklyHours},
				{Method: http.MethodGet, Path: "/bookings", Handler: h.Booking.ListMine},
				{Method: http.MethodPost, Path: "/bookings/:id/confirm", Handler: h.Booking.Confirm},
				{Method: http.MethodGet, Path: "/calendar/connect", Handler: h.Calendar.Connect},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
