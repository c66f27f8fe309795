package bot

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/futig/question-generator/internal/config"
	"github.com/futig/question-generator/internal/telegram/handlers"
	"github.com/futig/question-generator/internal/telegram/keyboard"
	"github.com/futig/question-generator/internal/telegram/middleware"
	"github.com/futig/question-generator/internal/telegram/render"
	"github.com/futig/question-generator/internal/telegram/state"
	pkgHTTP "github.com/futig/question-generator/pkg/http"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Bot represents the Telegram bot
type Bot struct {
	api           *tgbotapi.BotAPI
	cfg           *config.TelegramConfig
	stateManager  *state.Manager
	handlers      map[string]handlers.Handler
	sessionUC     handlers.SessionUsecase
	keyboard      *keyboard.Builder
	messageSender *handlers.MessageSender
	screen        *handlers.Screen
	logger        *zap.Logger
	loggingMW     *middleware.LoggingMiddleware
	recoveryMW    *middleware.RecoveryMiddleware
	rateLimitMW   *middleware.RateLimiterMiddleware
	updatesChan   tgbotapi.UpdatesChannel
	workers       chan struct{}
	stopChan      chan struct{}
	wg            sync.WaitGroup
}

// New creates a new Telegram bot
func New(
	cfg *config.TelegramConfig,
	stateManager *state.Manager,
	sessionUC handlers.SessionUsecase,
	logger *zap.Logger,
) (*Bot, error) {
	client := pkgHTTP.LongPollClient(
		time.Duration(cfg.UpdateTimeout)*time.Second,
		pkgHTTP.WithRequestLogging(logger.Named("telegram_http")),
	)

	api, err := tgbotapi.NewBotAPIWithClient(cfg.BotToken, tgbotapi.APIEndpoint, client)
	if err != nil {
		return nil, fmt.Errorf("create bot API: %w", err)
	}

	api.Debug = false

	logger.Info("telegram bot authorized",
		zap.String("username", api.Self.UserName),
		zap.Int64("id", api.Self.ID),
	)

	kb := keyboard.NewBuilder()
	sender := handlers.NewMessageSender(api, &cfg.Retry)

	bot := &Bot{
		api:           api,
		cfg:           cfg,
		stateManager:  stateManager,
		sessionUC:     sessionUC,
		keyboard:      kb,
		messageSender: sender,
		screen:        handlers.NewScreen(sessionUC, stateManager, kb, sender),
		logger:        logger,
		handlers:      make(map[string]handlers.Handler),
		workers:       make(chan struct{}, max(cfg.MaxConcurrentUsers, 1)),
		stopChan:      make(chan struct{}),
	}

	bot.loggingMW = middleware.NewLoggingMiddleware(logger)
	bot.recoveryMW = middleware.NewRecoveryMiddleware(logger, api)
	bot.rateLimitMW = middleware.NewRateLimiterMiddleware(
		cfg.RateLimitPerMinute,
		cfg.RateLimitBurst,
		logger,
		api,
	)

	return bot, nil
}

// Start starts the bot
func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("starting telegram bot")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.UpdateTimeout

	b.updatesChan = b.api.GetUpdatesChan(u)

	ctx = ctxzap.ToContext(ctx, b.logger)

	go b.processUpdates(ctx)

	b.logger.Info("telegram bot started successfully")
	return nil
}

// Stop stops the bot gracefully with timeout
func (b *Bot) Stop() error {
	b.logger.Info("stopping telegram bot")

	close(b.stopChan)
	b.api.StopReceivingUpdates()

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	shutdownTimeout := time.Duration(b.cfg.ShutdownTimeout) * time.Second
	select {
	case <-done:
		b.logger.Info("all handlers completed gracefully")
	case <-time.After(shutdownTimeout):
		b.logger.Warn("shutdown timeout exceeded, some handlers may not have completed",
			zap.Duration("timeout", shutdownTimeout),
		)
		return fmt.Errorf("shutdown timeout exceeded")
	}

	b.logger.Info("telegram bot stopped successfully")
	return nil
}

// processUpdates processes incoming updates, at most MaxConcurrentUsers at a time
func (b *Bot) processUpdates(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			ctxzap.Info(ctx, "context cancelled, stopping update processing")
			return
		case <-b.stopChan:
			ctxzap.Info(ctx, "stop signal received, stopping update processing")
			return
		case update, ok := <-b.updatesChan:
			if !ok {
				return
			}
			b.workers <- struct{}{}
			b.wg.Add(1)
			go func(u tgbotapi.Update) {
				defer func() {
					<-b.workers
					b.wg.Done()
				}()
				b.handleUpdateWithMiddleware(ctx, u)
			}(update)
		}
	}
}

// handleUpdateWithMiddleware processes update through middleware chain
func (b *Bot) handleUpdateWithMiddleware(ctx context.Context, update tgbotapi.Update) {
	b.rateLimitMW.Handle(update, func(u tgbotapi.Update) {
		b.loggingMW.Handle(u, func(u2 tgbotapi.Update) {
			b.recoveryMW.Handle(u2, func(u3 tgbotapi.Update) {
				b.handleUpdate(ctx, u3)
			})
		})
	})
}

// handleUpdate routes update to appropriate handler
func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		b.handleCallbackQuery(ctx, update.CallbackQuery)
		return
	}

	if update.Message != nil && update.Message.From != nil {
		b.handleMessage(ctx, update.Message)
	}
}

// handleMessage handles incoming messages
func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	if message.IsCommand() {
		b.handleCommand(ctx, message)
		return
	}

	userID := message.From.ID
	tgSession, err := b.stateManager.GetSession(ctx, userID)
	if err != nil || tgSession.SessionID == "" {
		ctxzap.Debug(ctx, "no active session for user",
			zap.Int64("user_id", userID),
		)
		b.sendError(ctx, message.Chat.ID, render.ErrNoSession)
		return
	}

	handlerState := handlers.HandlerStateSelect
	if tgSession.StateData.View == state.ViewResults {
		handlerState = handlers.HandlerStateResults
	}

	handler, exists := b.handlers[handlerState]
	if !exists {
		ctxzap.Warn(ctx, "no handler for state",
			zap.String("state", handlerState),
			zap.Int64("user_id", userID),
		)
		b.sendError(ctx, message.Chat.ID, render.ErrInvalidState)
		return
	}

	msg := handlers.TextMessage(message)

	if err := handler.Handle(ctx, msg); err != nil {
		ctxzap.Error(ctx, "handler error",
			zap.Error(err),
			zap.String("state", handlerState),
			zap.Int64("user_id", userID),
		)
		b.sendError(ctx, message.Chat.ID, render.ClassifyError(err))
	}
}

// handleCommand handles bot commands
func (b *Bot) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	command := message.Command()

	ctxzap.Info(ctx, "command received",
		zap.String("command", command),
		zap.Int64("user_id", message.From.ID),
	)

	switch command {
	case "start":
		b.messageSender.Send(ctx, message.Chat.ID, render.MsgWelcome, b.keyboard.StartKeyboard())
	case "help":
		b.messageSender.Send(ctx, message.Chat.ID, render.MsgHelp, nil)
	case "cancel":
		b.handleCancelCommand(ctx, message)
	default:
		b.sendError(ctx, message.Chat.ID, render.ErrUnknownCommand)
	}
}

// handleCancelCommand asks for confirmation first and cancels on the second /cancel
func (b *Bot) handleCancelCommand(ctx context.Context, message *tgbotapi.Message) {
	userID := message.From.ID
	chatID := message.Chat.ID

	tgSession, err := b.stateManager.GetSession(ctx, userID)
	if err != nil || tgSession.SessionID == "" {
		b.messageSender.Send(ctx, chatID, render.ErrNoSession, nil)
		return
	}

	if tgSession.StateData.PendingConfirmation == "cancel" {
		b.screen.Finish(ctx, userID, chatID, tgSession.SessionID)
		return
	}

	if _, err := b.stateManager.UpdateStateData(ctx, userID, func(d *state.StateData) {
		d.PendingConfirmation = "cancel"
	}); err != nil {
		ctxzap.Error(ctx, "failed to update state data", zap.Error(err))
	}

	b.messageSender.Send(ctx, chatID, render.MsgConfirmCancel, b.keyboard.ConfirmCancelKeyboard())
}

// handleCallbackQuery handles callback button clicks
func (b *Bot) handleCallbackQuery(ctx context.Context, query *tgbotapi.CallbackQuery) {
	if query.Message == nil {
		b.answerCallback(ctx, query.ID, "")
		return
	}

	handler, exists := b.handlers[handlers.HandlerStateCallback]
	if !exists {
		ctxzap.Warn(ctx, "callback handler not registered")
		b.answerCallback(ctx, query.ID, "❌ Handler not found")
		return
	}

	// Answer right away so Telegram stops the button spinner
	b.answerCallback(ctx, query.ID, "")

	msg := handlers.CallbackMessage(query)

	if err := handler.Handle(ctx, msg); err != nil {
		ctxzap.Error(ctx, "callback handler error",
			zap.Error(err),
			zap.String("data", query.Data),
			zap.Int64("user_id", msg.UserID),
		)
		b.sendError(ctx, msg.ChatID, render.ClassifyError(err))
	}
}

// sendError sends an error message
func (b *Bot) sendError(ctx context.Context, chatID int64, text string) {
	b.messageSender.Send(ctx, chatID, text, nil)
}

// answerCallback answers a callback query
func (b *Bot) answerCallback(ctx context.Context, callbackID string, text string) {
	callback := tgbotapi.NewCallback(callbackID, text)
	if _, err := b.api.Request(callback); err != nil {
		ctxzap.Error(ctx, "failed to answer callback",
			zap.Error(err),
			zap.String("callback_id", callbackID),
		)
	}
}

// RegisterHandler registers a handler for a state
func (b *Bot) RegisterHandler(handler handlers.Handler) {
	handlerState := handler.GetState()

	if !handlers.IsValidState(handlerState) {
		b.logger.Fatal("invalid handler state",
			zap.String("state", handlerState),
		)
	}

	b.handlers[handlerState] = handler
	b.logger.Info("handler registered",
		zap.String("state", handlerState),
	)
}

// GetStateManager returns the state manager (for handlers)
func (b *Bot) GetStateManager() *state.Manager {
	return b.stateManager
}

// GetKeyboard returns the keyboard builder (for handlers)
func (b *Bot) GetKeyboard() *keyboard.Builder {
	return b.keyboard
}

// GetSessionUsecase returns the session usecase (for handlers)
func (b *Bot) GetSessionUsecase() handlers.SessionUsecase {
	return b.sessionUC
}

// GetMessageSender returns the retrying sender (for handlers)
func (b *Bot) GetMessageSender() *handlers.MessageSender {
	return b.messageSender
}

// GetScreen returns the view renderer (for handlers)
func (b *Bot) GetScreen() *handlers.Screen {
	return b.screen
}
