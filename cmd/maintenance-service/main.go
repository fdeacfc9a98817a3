package main

import (
	"context"
	"fmt"
	"os"

	"maintenance-service/internal/auth"
	"maintenance-service/internal/config"
	"maintenance-service/internal/db"
	httphandler "maintenance-service/internal/http"
	"maintenance-service/internal/http/middleware"
	"maintenance-service/internal/logger"
	"maintenance-service/internal/notifier"
	"maintenance-service/internal/repository"
	"maintenance-service/internal/service"
	"maintenance-service/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	appLogger := logger.New(cfg.Environment)

	database, err := db.New(cfg, appLogger)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect database")
	}

	var notify notifier.Notifier = notifier.Nop{}
	if cfg.AMQP.URL != "" {
		amqpNotifier, err := notifier.NewAMQP(cfg.AMQP.URL, cfg.AMQP.Exchange, appLogger)
		if err != nil {
			appLogger.Fatal().Err(err).Msg("failed to connect notification broker")
		}
		defer amqpNotifier.Close()
		notify = amqpNotifier
	} else {
		appLogger.Warn().Msg("AMQP_URL not set, notifications disabled")
	}

	var evidenceStore storage.EvidenceStore
	if cfg.Storage.Bucket != "" {
		evidenceStore, err = storage.NewS3Store(context.Background(), cfg)
		if err != nil {
			appLogger.Fatal().Err(err).Msg("failed to init evidence store")
		}
	} else {
		appLogger.Warn().Msg("EVIDENCE_BUCKET not set, presigned evidence URLs disabled")
	}

	orderRepo := repository.NewOrderRepository(database)
	userRepo := repository.NewUserRepository(database)
	itemRepo := repository.NewItemRepository(database)
	logbookRepo := repository.NewLogbookRepository(database)

	orderService := service.NewOrderService(orderRepo, userRepo, notify, evidenceStore)
	inventoryService := service.NewInventoryService(itemRepo)
	logbookService := service.NewLogbookService(logbookRepo, notify)

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)

	handler := httphandler.NewHandler(orderService, inventoryService, logbookService, appLogger)
	authMiddleware := middleware.Auth(tokenParser)
	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment, appLogger)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	appLogger.Info().Str("addr", addr).Msg("starting maintenance service")

	if err := router.Run(addr); err != nil {
		appLogger.Error().Err(err).Msg("failed to start server")
		os.Exit(1)
	}
}
