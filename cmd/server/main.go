package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/asbridge/airtable-slack-bridge/application/usecase"
	"github.com/asbridge/airtable-slack-bridge/infrastructure/airtable"
	"github.com/asbridge/airtable-slack-bridge/infrastructure/config"
	"github.com/asbridge/airtable-slack-bridge/infrastructure/messagebuilder"
	"github.com/asbridge/airtable-slack-bridge/infrastructure/slack"
	httpInterface "github.com/asbridge/airtable-slack-bridge/interface/http"
	"github.com/asbridge/airtable-slack-bridge/interface/http/handler"
	"github.com/asbridge/airtable-slack-bridge/pkg/logger"
	"github.com/asbridge/airtable-slack-bridge/pkg/signing"
)

func main() {
	_ = godotenv.Load()

	log := logger.New("info")
	slog.SetDefault(log)

	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log = logger.New(cfg.Server.LogLevel)
	slog.SetDefault(log)

	log.Info("starting airtable-slack-bridge", "addr", cfg.Server.Addr())

	fileCfg, err := config.LoadFromFile(cfg.ConfigPath)
	if err != nil {
		log.Error("failed to load file config", "error", err)
		os.Exit(1)
	}

	slackClient := slack.NewClient(cfg.Slack.APIURL, cfg.Slack.BotToken, log.With("component", "slack_client"))

	airtableClient := airtable.NewClient(cfg.Airtable.APIURL, cfg.Airtable.APIKey, log.With("component", "airtable_client"))

	msgBuilder := messagebuilder.NewBuilder(fileCfg)

	verifier := signing.NewVerifier(cfg.Slack.SigningSecret, cfg.Webhook.SignatureTolerance)

	notifyUC := usecase.NewHandleNotifyUseCase(
		slackClient,
		msgBuilder,
		cfg.Airtable.BaseID,
		cfg.Airtable.TableID,
		log.With("component", "handle_notify_usecase"),
	)

	interactionUC := usecase.NewHandleInteractionUseCase(
		airtableClient,
		slackClient,
		msgBuilder,
		log.With("component", "handle_interaction_usecase"),
	)

	webhookHandler := handler.NewWebhookHandler(
		notifyUC,
		interactionUC,
		verifier,
		cfg.Webhook.Secret,
		log.With("component", "webhook_handler"),
	)
	healthHandler := handler.NewHealthHandler(slackClient)

	gin.SetMode(gin.ReleaseMode)
	router := httpInterface.NewRouter(log, webhookHandler, healthHandler)

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	log.Info("server started", "addr", cfg.Server.Addr())

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Error("server error", "error", err)
	case <-quit:
		log.Info("shutting down...")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}
