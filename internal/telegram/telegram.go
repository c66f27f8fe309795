package telegram

import (
	"context"
	"fmt"

	"github.com/futig/question-generator/internal/config"
	"github.com/futig/question-generator/internal/telegram/bot"
	"github.com/futig/question-generator/internal/telegram/handlers"
	"github.com/futig/question-generator/internal/telegram/state"
	"go.uber.org/zap"
)

// Bot is the main telegram bot interface
type Bot interface {
	Start(ctx context.Context) error
	Stop() error
}

// NewBot initializes the telegram bot with all dependencies
func NewBot(
	cfg *config.TelegramConfig,
	sessionUC handlers.SessionUsecase,
	logger *zap.Logger,
) (Bot, error) {
	stateManager := state.NewManager(state.NewMemoryStorage(cfg.StateTTL))

	b, err := bot.New(cfg, stateManager, sessionUC, logger)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	registerHandlers(b, logger)

	logger.Info("telegram bot initialized successfully")

	return b, nil
}

// registerHandlers registers all handlers with the bot
func registerHandlers(b *bot.Bot, logger *zap.Logger) {
	stateManager := b.GetStateManager()
	sessionUC := b.GetSessionUsecase()
	sender := b.GetMessageSender()
	screen := b.GetScreen()

	registered := []handlers.Handler{
		handlers.NewCallbackHandler(sender, stateManager, sessionUC, b.GetKeyboard(), screen),
		handlers.NewSelectHandler(sender),
		handlers.NewResultsHandler(sender, stateManager, sessionUC, screen),
	}
	for _, h := range registered {
		b.RegisterHandler(h)
	}

	logger.Info("telegram handlers registered",
		zap.Int("handler_count", len(registered)),
	)
}
