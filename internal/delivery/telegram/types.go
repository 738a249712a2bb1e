package telegram

import (
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/text/message"

	"github.com/yourusername/pc-build-assistant/internal/domain/repository"
	"github.com/yourusername/pc-build-assistant/internal/usecase"
	"github.com/yourusername/pc-build-assistant/pkg/logger"
)

// BotHandler Telegram bot handler. Og'ir ish worker pool ichida
// bajariladi, update loop hech qachon bloklanmaydi.
type BotHandler struct {
	bot *tgbotapi.BotAPI

	intentUseCase  usecase.IntentUseCase
	buildUseCase   usecase.BuildUseCase
	chatUseCase    usecase.ChatUseCase
	productUseCase usecase.ProductUseCase
	logs           repository.RequestLogRepository

	workerPool *workerPool

	// Narxlarni "175 000 ₸" ko'rinishida chiqarish uchun
	printer *message.Printer

	processingMu sync.RWMutex
	processing   map[int64]bool

	waitingMu   sync.RWMutex
	waitingMsgs map[int64]waitingMessage
}

type waitingMessage struct {
	ChatID    int64
	MessageID int
}

// Processing guard: javob tayyorlanayotganda shu foydalanuvchining
// parallel so'rovlari qabul qilinmaydi
func (h *BotHandler) startProcessing(userID int64) bool {
	h.processingMu.Lock()
	defer h.processingMu.Unlock()
	if h.processing == nil {
		h.processing = make(map[int64]bool)
	}
	if h.processing[userID] {
		return false
	}
	h.processing[userID] = true
	return true
}

func (h *BotHandler) endProcessing(userID int64) {
	h.processingMu.Lock()
	delete(h.processing, userID)
	h.processingMu.Unlock()
}

// Waiting message helpers: "qidiryapman..." xabari javob kelgach o'chadi
func (h *BotHandler) setWaitingMessage(userID, chatID int64, msgID int) {
	h.waitingMu.Lock()
	defer h.waitingMu.Unlock()
	if h.waitingMsgs == nil {
		h.waitingMsgs = make(map[int64]waitingMessage)
	}
	h.waitingMsgs[userID] = waitingMessage{ChatID: chatID, MessageID: msgID}
}

func (h *BotHandler) clearWaitingMessage(userID int64) {
	h.waitingMu.Lock()
	msg, ok := h.waitingMsgs[userID]
	if ok {
		delete(h.waitingMsgs, userID)
	}
	h.waitingMu.Unlock()

	if !ok || h.bot == nil {
		return
	}
	del := tgbotapi.NewDeleteMessage(msg.ChatID, msg.MessageID)
	if _, err := h.bot.Request(del); err != nil {
		logger.Warn("kutish xabari o'chirilmadi chat=%d: %v", msg.ChatID, err)
	}
}
