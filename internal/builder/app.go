package builder

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/futig/question-generator/internal/telegram"
	"go.uber.org/zap"
)

// App is the HTTP question server
type App struct {
	server          *http.Server
	logger          *zap.Logger
	shutdownTimeout time.Duration
}

// Run serves HTTP until ctx is cancelled or the listener fails, then drains
// in-flight requests
func (a *App) Run(ctx context.Context) error {
	defer func() { _ = a.logger.Sync() }()

	serveErr := make(chan error, 1)
	go func() {
		a.logger.Info("Starting HTTP server", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		a.logger.Error("Server error", zap.Error(err))
		return fmt.Errorf("serve http: %w", err)
	case <-ctx.Done():
		a.logger.Info("Shutdown requested", zap.Error(context.Cause(ctx)))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("Server shutdown error", zap.Error(err))
		return fmt.Errorf("shutdown http server: %w", err)
	}

	a.logger.Info("Question server stopped")
	return nil
}

// BotApp is the Telegram front-end
type BotApp struct {
	bot    telegram.Bot
	logger *zap.Logger
}

// Run polls Telegram until ctx is cancelled. Stop waits for running
// handlers within the configured shutdown timeout.
func (a *BotApp) Run(ctx context.Context) error {
	defer func() { _ = a.logger.Sync() }()

	if err := a.bot.Start(ctx); err != nil {
		return fmt.Errorf("start telegram bot: %w", err)
	}

	<-ctx.Done()
	a.logger.Info("Shutdown requested", zap.Error(context.Cause(ctx)))

	if err := a.bot.Stop(); err != nil {
		return fmt.Errorf("stop telegram bot: %w", err)
	}
	return nil
}
