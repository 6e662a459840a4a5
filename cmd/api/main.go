package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-agency-backend/config"
	_ "go-agency-backend/docs" // Important for Swagger
	v1 "go-agency-backend/internal/delivery/http/v1"
	"go-agency-backend/internal/metrics"
	"go-agency-backend/internal/usecase"
	"go-agency-backend/pkg/email"
	"go-agency-backend/pkg/geoip"
	"go-agency-backend/pkg/logger"
	"go-agency-backend/pkg/recaptcha"
	"go-agency-backend/pkg/redis"

	"github.com/prometheus/client_golang/prometheus"
)

// @title           Agency Contact API
// @version         1.0
// @description     Backend for the agency marketing site: contact submissions, reCAPTCHA verification and locale detection.
// @host            localhost:8080
// @BasePath        /v1
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting agency backend", "port", cfg.Port, "env", cfg.Environment)

	// 3. Setup Redis (optional, rate limiter falls back to memory)
	if err := redis.Initialize(redis.Config{
		URL:      cfg.UpstashRedisURL,
		Password: cfg.UpstashRedisPassword,
	}); err != nil {
		logger.Log.Warn("Redis unavailable, rate limiting is in-memory only", "error", err)
	}

	// 4. Setup External Collaborator Clients
	emailService := email.NewEmailService(cfg)
	if !emailService.IsConfigured() {
		logger.Log.Warn("Email service not configured - submissions will be logged, not sent")
	}
	verifier := recaptcha.NewClient(cfg.RecaptchaSecretKey, cfg.RecaptchaVerifyURL)
	if !verifier.Configured() {
		logger.Log.Warn("reCAPTCHA secret not configured - token verification disabled")
	}
	geoClient := geoip.NewClient(cfg.GeoIPBaseURL)

	// 5. Setup UseCases and Metrics
	contactUC := usecase.NewContactUsecase(verifier, emailService, logger.Log)
	m := metrics.New(prometheus.DefaultRegisterer)

	// 6. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		ContactUC: contactUC,
		Verifier:  verifier,
		Geo:       geoClient,
		Metrics:   m,
		Config:    cfg,
	})

	// 7. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
