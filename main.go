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

	"github.com/redis/go-redis/v9"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"golang.org/x/sync/errgroup"

	"github.com/Priyansh6570/Sanchalan/infrastructure/cache"
	youtubeclient "github.com/Priyansh6570/Sanchalan/infrastructure/clients/youtube"
	"github.com/Priyansh6570/Sanchalan/infrastructure/configuration"
	"github.com/Priyansh6570/Sanchalan/infrastructure/logger"
	"github.com/Priyansh6570/Sanchalan/infrastructure/persistence"
	httpHandler "github.com/Priyansh6570/Sanchalan/interfaces/http"
	"github.com/Priyansh6570/Sanchalan/server"
	"github.com/Priyansh6570/Sanchalan/usecase"
)

var httpServer *http.Server

func recoverPanic() {
	if err := recover(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Application panic recovered")
	}
}

func main() {
	defer recoverPanic()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	g, ctx := errgroup.WithContext(ctx)

	// Load env from files (non-destructive; OS env still has precedence)
	configuration.LoadEnvFromFile("config.env", ".env")

	app := configuration.C.App

	db, err := persistence.NewPostgreSQLDB()
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Cannot connect to PostgreSQL")
		os.Exit(1)
	}
	if err := persistence.EnsureSchema(db); err != nil {
		logger.GetLogger().WithField("error", err).Error("Schema migration failed")
		os.Exit(1)
	}

	var redisClient *redis.Client
	if configuration.C.RedisClient.Host != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%s", configuration.C.RedisClient.Host, configuration.C.RedisClient.Port),
			Username: configuration.C.RedisClient.Username,
			Password: configuration.C.RedisClient.Password,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.GetLogger().WithField("error", err).Warn("Redis not available - continuing without analytics caching")
			redisClient = nil
		}
	}
	analyticsCache := cache.NewCache(redisClient)

	youtubeConfig, err := configuration.GetYouTubeConfig()
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("YouTube configuration invalid")
		os.Exit(1)
	}
	logger.GetLogger().WithFields(map[string]interface{}{
		"hasAPIKey":   youtubeConfig.APIKey != "",
		"clientIDSet": youtubeConfig.ClientID != "",
	}).Info("Loaded YouTube configuration state")

	oauthConfig := &oauth2.Config{
		ClientID:     youtubeConfig.ClientID,
		ClientSecret: youtubeConfig.ClientSecret,
		RedirectURL:  youtubeConfig.RedirectURL,
		Endpoint:     google.Endpoint,
		Scopes: []string{
			"https://www.googleapis.com/auth/youtube.readonly",
			"https://www.googleapis.com/auth/yt-analytics.readonly",
		},
	}

	credentialRepository := persistence.NewCredentialRepository(db)
	videoRepository := persistence.NewVideoRepository(db)
	seriesRepository := persistence.NewSeriesRepository(db)

	dataClient := youtubeclient.NewClient(youtubeConfig.APIKey)
	analyticsClient := youtubeclient.NewAnalyticsClient()

	tokenUsecase := usecase.NewTokenUsecase(credentialRepository, usecase.NewGoogleOAuthProvider(oauthConfig))
	videoUsecase := usecase.NewVideoUsecase(videoRepository, seriesRepository, dataClient, tokenUsecase)
	calendarUsecase := usecase.NewCalendarUsecase(videoRepository, seriesRepository)
	syncUsecase := usecase.NewSyncUsecase(videoRepository, dataClient, configuration.C.Sync.Staleness(), configuration.C.Sync.ItemDelay())
	dashboardUsecase := usecase.NewDashboardUsecase(videoRepository, tokenUsecase)
	analyticsUsecase := usecase.NewAnalyticsUsecase(videoRepository, analyticsClient, tokenUsecase, analyticsCache)

	router := server.InitiateRouter(
		httpHandler.NewVideoHandler(videoUsecase),
		httpHandler.NewCalendarHandler(calendarUsecase),
		httpHandler.NewDashboardHandler(dashboardUsecase, analyticsUsecase),
		httpHandler.NewYouTubeAuthHandler(tokenUsecase),
		httpHandler.NewSyncHandler(syncUsecase),
	)

	logger.GetLogger().WithField("port", app.Port).Info("Starting application")
	g.Go(func() error {
		httpServer = &http.Server{
			Addr:    fmt.Sprintf(":%d", app.Port),
			Handler: router,
		}
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	select {
	case <-interrupt:
		logger.GetLogger().Info("Application shutdown requested")
	case <-ctx.Done():
	}

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if httpServer != nil {
		_ = httpServer.Shutdown(shutdownCtx)
	}
	if err := g.Wait(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Server returned an error")
		os.Exit(2)
	}
}
