package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"book-catalog-api/internal/shared/middleware"
	"book-catalog-api/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		// Health check
		v1.GET("/health", healthCheckHandler(c))

		setupUserRoutes(v1, c)
		setupGenreRoutes(v1, c)
		setupBookRoutes(v1, c)
	}

	return router
}

// ========================================
// USER ROUTES
// ========================================
func setupUserRoutes(v1 *gin.RouterGroup, c *container.Container) {
	users := v1.Group("/users")
	{
		users.POST("/register", c.UserHandler.Register)
		users.POST("/login", c.UserHandler.Login)
		users.POST("/refresh", c.UserHandler.Refresh)
		users.GET("/me", middleware.AuthMiddleware(c.JWTManager, c.UserService), c.UserHandler.Me)
	}
}

// ========================================
// GENRE ROUTES
// ========================================
func setupGenreRoutes(v1 *gin.RouterGroup, c *container.Container) {
	v1.GET("/genres", c.GenreHandler.ListGenres)
}

// ========================================
// BOOK ROUTES
// ========================================
func setupBookRoutes(v1 *gin.RouterGroup, c *container.Container) {
	books := v1.Group("/books")
	{
		// Reads are public
		books.GET("", c.BookHandler.ListBooks)
		books.GET("/:id", c.BookHandler.GetBook)

		// Writes require a live authenticated user
		auth := middleware.AuthMiddleware(c.JWTManager, c.UserService)
		books.POST("", auth, c.BookHandler.CreateBook)
		books.PATCH("/:id", auth, c.BookHandler.UpdateBook)
		books.DELETE("/:id", auth, c.BookHandler.DeleteBook)
		books.POST("/import", auth, c.ImportHandler.Import)
	}
}

// ========================================
// HEALTH CHECK HANDLER
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
			"services":  gin.H{},
		}

		// Check database
		dbStatus := "ok"
		if appCtx.DB == nil || appCtx.DB.Pool == nil {
			dbStatus = "disconnected"
			health["status"] = "degraded"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.DB.HealthCheck(ctx); err != nil {
				dbStatus = fmt.Sprintf("error: %v", err)
				health["status"] = "degraded"
			}
		}

		// Check the refresh token store; its outage degrades refresh only
		redisStatus := "ok"
		if appCtx.TokenStore == nil {
			redisStatus = "disconnected"
		} else if err := appCtx.TokenStore.Ping(c.Request.Context()); err != nil {
			redisStatus = fmt.Sprintf("error: %v", err)
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, health)
	}
}
