package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/hillcrest/activities-backend/internal/config"
	"github.com/hillcrest/activities-backend/internal/handler"
	"github.com/hillcrest/activities-backend/internal/middleware"
	"github.com/hillcrest/activities-backend/internal/response"
	"github.com/hillcrest/activities-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Activity     *handler.ActivityHandler
	Auth         *handler.AuthHandler
	Announcement *handler.AnnouncementHandler
	WS           *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// ─── Activities (Public) ───────────────────────────────────────────
	activities := router.Group("/activities")
	{
		activities.GET("", handlers.Activity.List)
		activities.POST("/:name/signup", handlers.Activity.Signup)
		activities.POST("/:name/unregister", handlers.Activity.Unregister)
	}

	// Rate limiter for the login endpoint (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── Auth ──────────────────────────────────────────────────────────
	auth := router.Group("/auth")
	{
		auth.POST("/login", authLimiter.Middleware(), handlers.Auth.Login)
		auth.GET("/check-session", handlers.Auth.CheckSession)
	}

	// ─── Announcements ─────────────────────────────────────────────────
	// The public list is open; management routes re-validate the supplied
	// teacher_username on every call (stateless, no token).
	announcements := router.Group("/announcements")
	{
		announcements.GET("", handlers.Announcement.ListActive)
		announcements.GET("/manage", middleware.RequireTeacher(authService), handlers.Announcement.ListAll)
		announcements.POST("", middleware.RequireTeacher(authService), handlers.Announcement.Create)
		announcements.PUT("/:id", middleware.RequireTeacher(authService), handlers.Announcement.Update)
		announcements.DELETE("/:id", middleware.RequireTeacher(authService), handlers.Announcement.Delete)
	}

	// ─── Live Feed (WebSocket) ─────────────────────────────────────────
	ws := router.Group("/ws")
	{
		ws.GET("/announcements/stream", handlers.WS.AnnouncementStream)
	}

	return router
}
