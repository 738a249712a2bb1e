package telegram

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/yourusername/pc-build-assistant/internal/domain/repository"
	"github.com/yourusername/pc-build-assistant/internal/usecase"
	"github.com/yourusername/pc-build-assistant/pkg/logger"
)

// NewBotHandler yangi bot handler yaratish
func NewBotHandler(
	token string,
	intentUC usecase.IntentUseCase,
	buildUC usecase.BuildUseCase,
	chatUC usecase.ChatUseCase,
	productUC usecase.ProductUseCase,
	logs repository.RequestLogRepository,
	workerCount int,
	queueSize int,
) (*BotHandler, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	handler := &BotHandler{
		bot:            bot,
		intentUseCase:  intentUC,
		buildUseCase:   buildUC,
		chatUseCase:    chatUC,
		productUseCase: productUC,
		logs:           logs,
		printer:        message.NewPrinter(language.Russian),
		processing:     make(map[int64]bool),
		waitingMsgs:    make(map[int64]waitingMessage),
	}
	handler.workerPool = newWorkerPool(handler, workerCount, queueSize)
	return handler, nil
}

// GetBotUsername returns the bot's username from Telegram API state.
func (h *BotHandler) GetBotUsername() string {
	return h.bot.Self.UserName
}

// Start botni ishga tushirish. ctx bekor bo'lganda pool to'xtatiladi.
func (h *BotHandler) Start(ctx context.Context) error {
	h.workerPool.start(ctx)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := h.bot.GetUpdatesChan(u)

	logger.Info("Bot @%s ishga tushdi", h.GetBotUsername())

	for {
		select {
		case <-ctx.Done():
			h.workerPool.shutdown()
			return ctx.Err()
		case update := <-updates:
			if update.Message == nil {
				continue
			}
			go h.handleMessage(ctx, update.Message)
		}
	}
}

// handleMessage xabarni qayta ishlash. Faqat shaxsiy chatlar:
// guruhlarda bot sotuvchi emas.
func (h *BotHandler) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil || msg.Chat == nil {
		return
	}
	if !msg.Chat.IsPrivate() {
		return
	}

	if msg.IsCommand() || strings.HasPrefix(strings.TrimSpace(msg.Text), "/") {
		h.handleCommand(ctx, msg)
		return
	}
	if strings.TrimSpace(msg.Text) == "" {
		return
	}
	h.handleTextMessage(ctx, msg.From.ID, msg.Chat.ID, msg.Text)
}

func extractCommand(msg *tgbotapi.Message) string {
	if msg.IsCommand() {
		return strings.ToLower(msg.Command())
	}
	text := strings.TrimSpace(msg.Text)
	if !strings.HasPrefix(text, "/") {
		return ""
	}
	text = strings.TrimPrefix(text, "/")
	if i := strings.IndexAny(text, " @"); i >= 0 {
		text = text[:i]
	}
	return strings.ToLower(text)
}

func (h *BotHandler) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	userID := msg.From.ID
	chatID := msg.Chat.ID

	switch extractCommand(msg) {
	case "start":
		if h.chatUseCase != nil {
			if err := h.chatUseCase.ClearHistory(ctx, userID); err != nil {
				logger.Warn("tarixni tozalab bo'lmadi user=%d: %v", userID, err)
			}
		}
		h.sendMessage(chatID, startMessage)
	case "help":
		h.sendMessage(chatID, helpMessage)
	case "clear":
		if h.chatUseCase != nil {
			if err := h.chatUseCase.ClearHistory(ctx, userID); err != nil {
				logger.Warn("tarixni tozalab bo'lmadi user=%d: %v", userID, err)
			}
		}
		h.sendMessage(chatID, "История очищена. Начинаем с чистого листа!")
	case "build":
		// /build 500000 klassifikatorni chetlab to'g'ridan-to'g'ri sborkaga boradi
		args := strings.TrimSpace(msg.CommandArguments())
		h.submitText(ctx, userID, chatID, buildCommandText(args))
	case "history":
		h.handleHistoryCommand(ctx, chatID)
	default:
		h.sendMessage(chatID, "Неизвестная команда. /help — список команд.")
	}
}

// buildCommandText /build argumentini intent matniga aylantiradi.
// Argument bo'lmasa byudjet so'raladigan yo'lga tushadi.
func buildCommandText(args string) string {
	if args == "" {
		return "собери компьютер"
	}
	return "собери компьютер за " + args
}

func (h *BotHandler) handleHistoryCommand(ctx context.Context, chatID int64) {
	if h.logs == nil {
		h.sendMessage(chatID, "Журнал запросов не настроен.")
		return
	}
	recs, err := h.logs.ListRecent(ctx, chatID, 10)
	if err != nil {
		logger.Error("jurnalni o'qib bo'lmadi chat=%d: %v", chatID, err)
		h.sendMessage(chatID, "Не удалось получить историю запросов.")
		return
	}
	h.sendMessage(chatID, h.formatHistory(recs))
}

const startMessage = `Здравствуйте! Я помощник магазина компьютерной техники.

Могу:
• подобрать сборку ПК под ваш бюджет — напишите, например, «собери ПК за 500 000»
• найти товар в каталоге — «посоветуй SSD на терабайт»
• ответить на вопросы о магазине, доставке и рассрочке

Чем помочь?`

const helpMessage = `Команды:
/build 500000 — подобрать сборку под бюджет
/history — последние запросы
/clear — очистить историю диалога
/help — эта справка

Или просто напишите, что нужно: «игровой ПК за 600 тысяч», «какая видеокарта есть до 200 000?»`
