package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/futig/question-generator/internal/builder"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := builder.BuildTelegramBot()
	if err != nil {
		log.Fatalf("build telegram bot: %v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("telegram bot: %v", err)
	}
}
