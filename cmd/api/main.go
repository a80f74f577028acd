package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Augustnerdaal/REALestate/internal/config"
	"github.com/Augustnerdaal/REALestate/internal/handler"
	"github.com/Augustnerdaal/REALestate/internal/integrations/refrate"
	"github.com/Augustnerdaal/REALestate/internal/middleware"
	"github.com/Augustnerdaal/REALestate/internal/repository"
	"github.com/Augustnerdaal/REALestate/internal/scheduler"
	"github.com/Augustnerdaal/REALestate/internal/service"
	"github.com/Augustnerdaal/REALestate/internal/utils/email"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	// Optional .env for local runs
	_ = godotenv.Load()

	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize layers
	repo := repository.NewRepository(cfg.StorePath)
	rates := refrate.NewClient(cfg, logger)
	var mailer service.Mailer
	if cfg.EmailEnabled() {
		mailer = email.NewSender(cfg, logger)
	} else {
		logger.Info("SMTP_HOST not set, report e-mail disabled")
	}
	svc := service.NewService(repo, logger, cfg, rates, mailer)
	h := handler.NewHandler(svc, logger)

	// Reference rate: fetch once now, then on schedule
	if err := svc.RefreshReferenceRate(ctx); err != nil {
		logger.Warnf("Initial reference rate fetch failed: %v", err)
	}
	runner := scheduler.New(ctx, logger)
	if _, err := runner.Add("reference-rate", cfg.RateRefreshSpec, svc.RefreshReferenceRate); err != nil {
		logger.Fatalf("Failed to schedule reference rate refresh: %v", err)
	}
	runner.Start()
	defer runner.Stop()

	// Setup router
	r := mux.NewRouter()
	r.Use(middleware.RequestLogger(logger))
	h.Register(r)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	go func() {
		logger.Infof("Starting server on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Graceful shutdown failed: %v", err)
	}
}
