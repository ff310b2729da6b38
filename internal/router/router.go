package router

import (
	"net/http"
	"time"

	"github.com/Raunak-23/EvalAI-paper-correction/internal/config"
	"github.com/Raunak-23/EvalAI-paper-correction/internal/handler"
	"github.com/Raunak-23/EvalAI-paper-correction/internal/middleware"
	"github.com/Raunak-23/EvalAI-paper-correction/internal/response"
	"github.com/Raunak-23/EvalAI-paper-correction/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth         *handler.AuthHandler
	Class        *handler.ClassHandler
	Notification *handler.NotificationHandler
	Preference   *handler.PreferenceHandler
	Grading      *handler.GradingHandler
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
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for credential endpoints (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Auth Group ─────────────────────────────────────────────────
	auth := router.Group("/api/auth")
	{
		auth.POST("/register", authLimiter.Middleware(), handlers.Auth.Register)
		auth.POST("/login", authLimiter.Middleware(), handlers.Auth.Login)

		// Authenticated profile routes. CheckSession matters here too: a
		// logged-out token must stop working for /me and /user immediately,
		// not at JWT expiry.
		authed := auth.Group("")
		authed.Use(
			middleware.RequireAuth(authService),
			middleware.CheckSession(authService),
		)
		authed.POST("/logout", handlers.Auth.Logout)
		authed.GET("/me", handlers.Auth.Me)
		authed.PUT("/user", handlers.Auth.UpdateUser)
	}

	// ─── 2. Protected API (JWT + Active Session) ───────────────────────
	api := router.Group("/api/v1")
	api.Use(
		middleware.RequireAuth(authService),
		middleware.CheckSession(authService),
	)
	{
		// Classes and assignments
		api.GET("/classes", handlers.Class.ListClasses)
		api.POST("/classes", handlers.Class.CreateClass)
		api.POST("/classes/:id/assignments", handlers.Class.AddAssignment)
		api.PUT("/classes/:id/assignments/:index/completion", handlers.Class.SetCompletion)

		// Notification log and settings
		api.GET("/notifications", handlers.Notification.ListNotifications)
		api.POST("/notifications/read-all", handlers.Notification.MarkAllRead)
		api.DELETE("/notifications/:id", handlers.Notification.RemoveNotification)
		api.DELETE("/notifications", handlers.Notification.ClearNotifications)
		api.GET("/notifications/settings", handlers.Notification.GetSettings)
		api.PUT("/notifications/settings", handlers.Notification.UpdateSettings)

		// Display preferences
		api.GET("/preferences/dark-mode", handlers.Preference.GetDarkMode)
		api.PUT("/preferences/dark-mode", handlers.Preference.SetDarkMode)
		api.GET("/preferences/profile", handlers.Preference.GetProfile)
		api.PUT("/preferences/profile", handlers.Preference.SetProfile)

		// Grading relay
		api.POST("/grade", handlers.Grading.Evaluate)
	}

	// ─── 3. WebSocket Group (WS Auth via query token) ──────────────────
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireWSAuth(authService))
	{
		ws.GET("/notifications", handlers.WS.NotificationStream)
	}

	return router
}
