package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"

	"github.com/thahbeeb/artsfest-api/config"
	"github.com/thahbeeb/artsfest-api/db"
	"github.com/thahbeeb/artsfest-api/handlers"
	"github.com/thahbeeb/artsfest-api/live"
	"github.com/thahbeeb/artsfest-api/middleware"
	"github.com/thahbeeb/artsfest-api/repositories"
	api "github.com/thahbeeb/artsfest-api/routes"
	"github.com/thahbeeb/artsfest-api/services"
	"github.com/thahbeeb/artsfest-api/storage"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	uploader, err := storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
		AccountID:       cfg.R2AccountID,
		AccessKeyID:     cfg.R2AccessKeyID,
		SecretAccessKey: cfg.R2SecretAccessKey,
		BucketName:      cfg.R2BucketName,
		PublicBaseURL:   cfg.R2PublicBaseURL,
	})
	if err != nil {
		logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("Cloudflare R2 uploader initialized")

	hub := live.NewHub(logger)
	go hub.Run()
	logger.Info("live results hub started")

	userRepo := repositories.NewPostgresUserRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	itemRepo := repositories.NewPostgresItemRepository(dbConn)
	scoreRepo := repositories.NewPostgresScoreRepository(dbConn)
	newsRepo := repositories.NewPostgresNewsRepository(dbConn)
	galleryRepo := repositories.NewPostgresGalleryRepository(dbConn)
	logger.Info("repositories initialized")

	authService := services.NewAuthService(userRepo, logger)
	scoreService := services.NewScoreService(dbConn, scoreRepo, teamRepo, hub, logger)
	teamService := services.NewTeamService(dbConn, teamRepo, uploader, logger)
	itemService := services.NewItemService(itemRepo)
	newsService := services.NewNewsService(newsRepo, uploader, logger)
	galleryService := services.NewGalleryService(galleryRepo, uploader, logger)
	logger.Info("services initialized")

	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 10*time.Second)
	if err := authService.EnsureAdmin(seedCtx, cfg.SeedAdminEmail, cfg.SeedAdminPassword, cfg.SeedAdminName); err != nil {
		cancelSeed()
		logger.Error("failed to seed admin user", slog.Any("error", err))
		os.Exit(1)
	}
	cancelSeed()

	authHandler := handlers.NewAuthHandler(authService, cfg.JWTSecretKey)
	scoreHandler := handlers.NewScoreHandler(scoreService)
	teamHandler := handlers.NewTeamHandler(teamService)
	itemHandler := handlers.NewItemHandler(itemService)
	newsHandler := handlers.NewNewsHandler(newsService)
	galleryHandler := handlers.NewGalleryHandler(galleryService)
	liveHandler := handlers.NewLiveHandler(hub, logger)
	logger.Info("HTTP handlers initialized")

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		cfg.CORSOrigins,
		middleware.NewAuthenticator(cfg.JWTSecretKey),
		authHandler,
		scoreHandler,
		teamHandler,
		itemHandler,
		newsHandler,
		galleryHandler,
		liveHandler,
	)
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		} else {
			logger.Info("server stopped gracefully")
		}
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		} else {
			logger.Info("server shutdown complete")
		}
	}
	logger.Info("application exited")
}
