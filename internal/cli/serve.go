package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yourusername/pc-build-assistant/config"
	"github.com/yourusername/pc-build-assistant/internal/delivery/telegram"
	"github.com/yourusername/pc-build-assistant/internal/infrastructure/storage"
	"github.com/yourusername/pc-build-assistant/internal/usecase"
	"github.com/yourusername/pc-build-assistant/pkg/logger"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Telegram botni ishga tushirish",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := cfg.RequireTelegram(); err != nil {
				return err
			}
			return runServe(cfg)
		},
	}
}

func runServe(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ai, err := aiRepository(cfg)
	if err != nil {
		return fmt.Errorf("gemini client: %w", err)
	}
	if ai == nil {
		logger.Warn("GEMINI_API_KEY berilmagan: klassifikator kalit so'zlar bilan ishlaydi, suhbat rejimi o'chiq")
	} else {
		logger.Info("Gemini AI client tayyor")
		defer ai.Close()
	}

	products := catalogRepository(cfg)
	chats := storage.NewMemoryChatRepository(cfg.MaxContextSize)
	logs, err := requestLogRepository(cfg)
	if err != nil {
		return fmt.Errorf("request log store: %w", err)
	}

	buildUC, err := buildPipeline(cfg, products, ai, logs)
	if err != nil {
		return err
	}
	intentUC := usecase.NewIntentUseCase(ai, chats)
	chatUC := usecase.NewChatUseCase(ai, chats)
	productUC := usecase.NewProductUseCase(products)

	handler, err := telegram.NewBotHandler(
		cfg.TelegramToken,
		intentUC,
		buildUC,
		chatUC,
		productUC,
		logs,
		cfg.WorkerCount,
		cfg.QueueSize,
	)
	if err != nil {
		return fmt.Errorf("bot handler: %w", err)
	}
	logger.Info("Telegram bot tayyor: @%s", handler.GetBotUsername())

	if err := handler.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("Bot to'xtatildi")
	return nil
}
