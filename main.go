// main.go - Entry point for the UI gallery backend

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"ui-gallery-backend/config"
	"ui-gallery-backend/database"
	"ui-gallery-backend/logging"
	"ui-gallery-backend/mqtt"
	"ui-gallery-backend/repository"
	"ui-gallery-backend/routes"
	"ui-gallery-backend/services"
	"ui-gallery-backend/session"
)

func main() {
	// STEP 1: Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}
	log := logging.New(cfg.LogLevel)
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// STEP 2: Establish connections
	db, err := database.Connect(cfg.Database, log)
	if err != nil {
		log.WithError(err).Fatal("database connection error")
	}
	if err := database.SeedAdmin(db, cfg); err != nil {
		log.WithError(err).Fatal("failed to seed admin user")
	}

	ctx := context.Background()
	var revoker services.Revoker
	if cfg.RedisAddr != "" {
		client, err := session.NewClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			log.WithError(err).Fatal("redis connection error")
		}
		defer client.Close()
		revoker = session.NewRedisRevoker(client)
	} else {
		log.Warn("REDIS_ADDR not set, logout will not revoke tokens")
	}

	var events services.EventPublisher
	if cfg.MQTTBroker != "" {
		publisher, err := mqtt.Connect(cfg.MQTTBroker, cfg.MQTTClientID, cfg.MQTTTopicPrefix)
		if err != nil {
			log.WithError(err).Fatal("mqtt connection error")
		}
		defer publisher.Close()
		events = publisher
	} else {
		log.Info("MQTT_BROKER not set, moderation events are not published")
	}

	// STEP 3: Build services
	tokens, err := services.NewTokenService(cfg.JWTSecret)
	if err != nil {
		log.WithError(err).Fatal("failed to create token service")
	}
	userRepo := repository.NewUserRepository(db)
	componentRepo := repository.NewComponentRepository(db)
	ratingRepo := repository.NewRatingRepository(db)

	auth := services.NewAuthService(userRepo, services.BcryptHasher{}, tokens, revoker, log)
	ratings := services.NewRatingService(ratingRepo, componentRepo, log)
	moderation := services.NewModerationService(componentRepo, userRepo, ratings, events, log)

	router := routes.Setup(routes.Dependencies{
		Config:     cfg,
		DB:         db,
		Log:        log,
		Auth:       auth,
		Moderation: moderation,
		Ratings:    ratings,
		Users:      services.NewUserService(userRepo, log),
	})

	// STEP 4: Start the web server and wait for a shutdown signal
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.WithField("port", cfg.Port).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("forced shutdown")
	}
}
