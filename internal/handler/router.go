package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"slot-booking/internal/handler/api"
	"slot-booking/internal/handler/middleware"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

// Middlewares groups the engine-wide middleware built at startup.
type Middlewares struct {
	CORS        gin.HandlerFunc
	Logger      *middleware.Logger
	Session     *middleware.SessionMiddleware
	RateLimiter *middleware.RateLimiter
}

func NewRouter(engine *gin.Engine, mw Middlewares, authHandler *api.AuthHandler, reservationHandler *api.ReservationHandler) {
	setupMiddleware(engine, mw)
	setupRoutes(engine, mw, authHandler, reservationHandler)
}

func setupMiddleware(engine *gin.Engine, mw Middlewares) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(mw.CORS)
	engine.Use(mw.Logger.LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, mw Middlewares, authHandler *api.AuthHandler, reservationHandler *api.ReservationHandler) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		addRoutes(auth, []route{
			{Method: http.MethodPost, Path: "/custom-token", Handler: authHandler.CustomToken},
		})

		reservations := apiGroup.Group("/reservations")
		reservations.Use(mw.Session.OptionalSession())
		addRoutes(reservations, []route{
			{Method: http.MethodPost, Path: "", Handler: reservationHandler.Book, Mw: []gin.HandlerFunc{mw.RateLimiter.Limit()}},
			{Method: http.MethodGet, Path: "", Handler: reservationHandler.List},
		})
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
