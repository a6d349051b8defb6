package routes

import (
	"context"
	"net/http"
	"time"

	"talent-portal/internal/config"
	"talent-portal/internal/database"
	"talent-portal/internal/logger"
	"talent-portal/internal/middleware"
	"talent-portal/internal/notification"
	"talent-portal/internal/user/handler"
	"talent-portal/internal/user/repository"
	"talent-portal/internal/user/service"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(ctx context.Context, cfg *config.Config, db *database.Database) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(&cfg.CORS))
	router.Use(middleware.RequestSizeLimitMiddleware(middleware.DefaultMaxRequestSize))
	router.Use(middleware.RateLimitMiddleware(cfg.RateLimit.GeneralRPS, cfg.RateLimit.GeneralBurst))

	router.GET("/health", func(c *gin.Context) {
		if err := db.Health(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"message": "Database connection failed",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Service is running",
		})
	})

	userRepository := repository.NewUserRepository(db)
	tokenRepository := repository.NewTokenRepository(db)
	refreshTokenRepository := repository.NewRefreshTokenRepository(db)
	mailer := notification.NewMailer(&cfg.SMTP)
	userService := service.NewService(userRepository, tokenRepository, refreshTokenRepository, mailer, cfg)
	userHandler := handler.NewHandler(userService)

	go userService.StartTokenCleanupJob(ctx, 1*time.Hour)

	v1 := router.Group("/api/v1")
	{
		userHandler.RegisterRoutes(v1)
		userHandler.RegisterUserRoutes(v1)

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			userHandler.RegisterProfileRoutes(protected)
			protected.POST("/auth/revoke", userHandler.RevokeToken)

			admin := protected.Group("")
			admin.Use(middleware.AdminOnly())
			{
				userHandler.RegisterAdminRoutes(admin)
			}
		}
	}

	logger.Info("All routes initialized")
	return router
}
