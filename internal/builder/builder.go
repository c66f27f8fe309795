package builder

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/futig/question-generator/internal/api"
	referenceapi "github.com/futig/question-generator/internal/api/reference"
	sessionapi "github.com/futig/question-generator/internal/api/session"
	"github.com/futig/question-generator/internal/config"
	pkgLogger "github.com/futig/question-generator/internal/pkg/logger"
	"github.com/futig/question-generator/internal/telegram"
	"go.uber.org/zap"
)

func Build() (*App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := pkgLogger.New(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	core, err := BuildCore(context.Background(), cfg, logger)
	if err != nil {
		return nil, err
	}

	// Setup API handlers
	sessionHandler := sessionapi.NewHandler(core.SessionUC)
	referenceHandler := referenceapi.NewHandler(core.Catalog)
	logger.Info("API handlers initialized")

	// Setup router
	router := api.SetupRouter(sessionHandler, referenceHandler, api.RouterConfig{
		CORS:     cfg.CORSCfg,
		LogoFile: cfg.DataCfg.LogoFile,
	}, logger)
	logger.Info("HTTP router configured")

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server:          server,
		logger:          logger,
		shutdownTimeout: cfg.ShutdownTimeout,
	}, nil
}

// BuildTelegramBot creates and initializes the Telegram bot
func BuildTelegramBot() (*BotApp, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := pkgLogger.New(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building Telegram bot",
		zap.String("environment", cfg.Environment),
	)

	if cfg.TelegramCfg.BotToken == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN must be set to run the bot")
	}

	core, err := BuildCore(context.Background(), cfg, logger)
	if err != nil {
		return nil, err
	}

	bot, err := telegram.NewBot(&cfg.TelegramCfg, core.SessionUC, logger)
	if err != nil {
		return nil, fmt.Errorf("initialize telegram bot: %w", err)
	}

	logger.Info("Telegram bot built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &BotApp{bot: bot, logger: logger}, nil
}
