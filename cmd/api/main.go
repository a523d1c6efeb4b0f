package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/employee-management-api/internal/auth"
	"github.com/employee-management-api/internal/config"
	"github.com/employee-management-api/internal/database"
	"github.com/employee-management-api/internal/handler"
	"github.com/employee-management-api/internal/repository"
	"github.com/employee-management-api/internal/service"
	"github.com/employee-management-api/internal/storage"
)

func main() {
	// Инициализация логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Загрузка конфигурации
	cfg := config.Load()

	// Подключение к БД и миграции
	db, err := database.Open(cfg.Database)
	if err != nil {
		logger.Error("failed to open database", slog.String("driver", cfg.Database.Driver), slog.Any("error", err))
		os.Exit(1)
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Error("failed to get sql.DB", slog.Any("error", err))
		os.Exit(1)
	}
	defer sqlDB.Close()

	// Хранилище загруженных документов
	blobs, err := storage.NewFileStore(cfg.Storage.DocumentsDir)
	if err != nil {
		logger.Error("failed to prepare documents storage", slog.String("dir", cfg.Storage.DocumentsDir), slog.Any("error", err))
		os.Exit(1)
	}

	// Инициализация репозиториев и сервисов
	repos := repository.NewRegistry(db)
	engine := service.NewEngine(
		repos,
		service.NewStoreNotifier(repos.Notifications),
		cfg.Notifications.AdminRecipientID,
		logger,
	)
	tokens := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	services := service.New(engine, blobs, tokens, service.PasswordResetPolicy{
		TTL:         cfg.Auth.OTPTTL,
		MaxAttempts: cfg.Auth.OTPMaxAttempts,
	})

	// Настройка роутера
	router := handler.NewRouter(services, tokens, cfg.Server.AllowedOrigins, logger)
	httpHandler := router.Setup()

	// Настройка HTTP сервера
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      httpHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	done := make(chan bool)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Info("server is shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error("could not gracefully shutdown the server", slog.Any("error", err))
		}
		close(done)
	}()

	logger.Info("server is starting",
		slog.String("port", cfg.Server.Port),
		slog.String("db_driver", cfg.Database.Driver),
	)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("could not listen on port", slog.String("port", cfg.Server.Port), slog.Any("error", err))
		os.Exit(1)
	}

	<-done
	logger.Info("server stopped")
}
