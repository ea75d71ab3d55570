// Package routes wires the HTTP surface.
package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"ui-gallery-backend/config"
	"ui-gallery-backend/handlers"
	"ui-gallery-backend/metrics"
	"ui-gallery-backend/middleware"
	"ui-gallery-backend/services"
)

// Dependencies are the components the router is built from.
type Dependencies struct {
	Config     *config.Config
	DB         *gorm.DB
	Log        *logrus.Logger
	Auth       *services.AuthService
	Moderation *services.ModerationService
	Ratings    *services.RatingService
	Users      *services.UserService
}

// Setup builds the gin engine with every route registered.
func Setup(deps Dependencies) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(deps.Log))
	r.Use(metrics.Middleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     deps.Config.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	auth := middleware.AuthMiddleware(deps.Auth, deps.Log)
	admin := middleware.AdminMiddleware(deps.Auth, deps.Log)
	limit := middleware.NewRateLimiter(deps.Config.RateLimitRPS, deps.Config.RateLimitBurst, deps.Log).Handler()

	userHandler := handlers.NewUserHandler(deps.Auth, deps.Moderation, deps.Config.TokenTTL, deps.Log)
	componentHandler := handlers.NewComponentHandler(deps.Moderation, deps.Ratings, deps.Log)
	adminHandler := handlers.NewAdminHandler(deps.Moderation, deps.Users, deps.Log)

	// Public routes
	r.GET("/", handlers.Root)
	r.GET("/health", handlers.Health(deps.DB))
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	r.POST("/token", limit, userHandler.Login)
	r.POST("/auth/logout", auth, userHandler.Logout)

	users := r.Group("/users")
	{
		users.POST("/", limit, userHandler.Register)
		users.GET("/me", auth, userHandler.Me)
		users.GET("/me/components", auth, userHandler.MyComponents)
	}

	components := r.Group("/components")
	{
		components.GET("/", componentHandler.List)
		components.POST("/", auth, limit, componentHandler.Create)
		components.GET("/:id", componentHandler.Get)
		components.POST("/:id/rate", auth, limit, componentHandler.Rate)
	}

	adminGroup := r.Group("/admin")
	adminGroup.Use(admin)
	{
		adminGroup.GET("/pending", adminHandler.Pending)
		adminGroup.PATCH("/components/:id/status", adminHandler.SetStatus)
		adminGroup.DELETE("/components/:id", adminHandler.DeleteComponent)
		adminGroup.GET("/users", adminHandler.Users)
		adminGroup.DELETE("/users/:id", adminHandler.DeleteUser)
		adminGroup.GET("/users/:id/components", adminHandler.UserComponents)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not Found"})
	})
	return r
}
