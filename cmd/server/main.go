package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/RiseHunter/RiseHuntBot/internal"
	"github.com/RiseHunter/RiseHuntBot/internal/api"
	"github.com/RiseHunter/RiseHuntBot/internal/auth"
	"github.com/RiseHunter/RiseHuntBot/internal/chat"
	"github.com/RiseHunter/RiseHuntBot/internal/config"
	"github.com/RiseHunter/RiseHuntBot/internal/jobs"
	"github.com/RiseHunter/RiseHuntBot/internal/storage"
	"github.com/RiseHunter/RiseHuntBot/internal/survey"
)

type app struct {
	logger  internal.Logger
	store   storage.Store
	machine *chat.Machine
	tests   *survey.Registry
}

func (a *app) Logger() internal.Logger { return a.logger }
func (a *app) Store() storage.Store    { return a.store }
func (a *app) Machine() *chat.Machine  { return a.machine }
func (a *app) Tests() *survey.Registry { return a.tests }

func main() {
	cfg := config.Load()

	logger, err := internal.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}

	if cfg.DBType == "file" {
		if err := os.MkdirAll(filepath.Dir(cfg.FileUsers), 0o755); err != nil {
			logger.Fatalf("failed to create data dir: %v", err)
		}
	}

	store, err := storage.New(cfg, logger)
	if err != nil {
		logger.Fatalf("failed to init storage: %v", err)
	}
	defer store.Close()

	tests := survey.DefaultRegistry()
	if cfg.SurveysFile != "" {
		tests, err = survey.LoadRegistry(cfg.SurveysFile)
		if err != nil {
			logger.Fatalf("failed to load survey config: %v", err)
		}
	}

	machine := chat.NewMachine(store, tests, logger)
	a := &app{logger: logger, store: store, machine: machine, tests: tests}

	var provider auth.Provider
	if cfg.AuthServiceURL != "" {
		provider = auth.NewRemoteProvider(cfg.AuthServiceURL, logger)
	} else {
		provider = auth.NewLocalProvider(cfg.WebhookSecret, logger)
	}

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(api.RequestIDMiddleware())
	r.Use(auth.Middleware(provider, cfg))

	r.POST("/events/command", api.PostCommand(a))
	r.POST("/events/message", api.PostMessage(a))
	r.GET("/users/:id/profile", api.GetProfile(a))
	r.GET("/users/:id/goals", api.GetGoals(a))
	r.GET("/users/:id/journal", api.GetJournal(a))

	sweeper, err := jobs.StartRetention(store, logger, cfg.RetentionDays)
	if err != nil {
		logger.Fatalf("failed to start retention job: %v", err)
	}
	defer sweeper.Stop()

	srv := &http.Server{Addr: cfg.ListenAddr, Handler: r}
	go func() {
		logger.Infof("Server running on %s", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("server shutdown: %v", err)
	}
}
