package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/ladenbot/laden/internal/config"
	"github.com/ladenbot/laden/internal/repository/mongodb"
	"github.com/ladenbot/laden/internal/repository/sheets"
	"github.com/ladenbot/laden/internal/scheduler"
	"github.com/ladenbot/laden/internal/server/handlers"
	"github.com/ladenbot/laden/internal/server/router"
	"github.com/ladenbot/laden/internal/service/lookup"
	"github.com/ladenbot/laden/internal/service/session"
	"github.com/ladenbot/laden/pkg/clients/fonnte"
	"github.com/ladenbot/laden/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	sheetsRepo, err := sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
	if err != nil {
		baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
	}

	// The query audit log is optional; the bot runs fine without it.
	var auditRepo mongodb.Repository
	if cfg.MongoDB.URI != "" {
		mongoRepo, err := mongodb.NewMongoDBRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
		}
		defer func() {
			if err := mongoRepo.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		auditRepo = mongoRepo
	} else {
		baseLogger.Warn("mongodb uri missing, query audit log disabled")
	}

	cache := lookup.NewCache(sheetsRepo, cfg.Cache.TTL, cfg.Cache.FetchTimeout, baseLogger.Named("svc.cache"))
	sessions := session.NewStore()
	fonnteClient := fonnte.NewClient(cfg.Fonnte)

	lookupSvc := lookup.NewService(cache, sessions, fonnteClient, auditRepo, lookup.Options{
		PageSize:       cfg.Search.PageSize,
		FuzzyThreshold: cfg.Search.FuzzyThreshold,
	}, baseLogger.Named("svc.lookup"))

	webhookHandler := handlers.NewWebhookHandler(lookupSvc, fonnteClient, baseLogger.Named("handlers.webhook"))
	engine := router.New(webhookHandler, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(cfg.Cache, cache, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
