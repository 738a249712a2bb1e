package telegram

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/yourusername/pc-build-assistant/pkg/logger"
)

const telegramMessageLimit = 4096

// sendMessage oddiy xabar yuborish. Uzun javoblar Telegram limitiga
// bo'lib yuboriladi.
func (h *BotHandler) sendMessage(chatID int64, text string) {
	if h.bot == nil {
		logger.Warn("sendMessage o'tkazib yuborildi (bot yo'q) chat=%d text=%q", chatID, truncateQuery(text, 120))
		return
	}

	if strings.TrimSpace(text) == "" {
		logger.Warn("bo'sh xabar yuborilmoqchi bo'ldi chat=%d", chatID)
		text = "Извините, ответ не получился. Попробуйте переформулировать запрос или посмотрите /help."
	}

	for _, chunk := range splitIntoChunks(text, telegramMessageLimit) {
		msg := tgbotapi.NewMessage(chatID, chunk)
		if _, err := h.bot.Send(msg); err != nil {
			logger.Error("xabar yuborilmadi chat=%d: %v", chatID, err)
			return
		}
	}
}

// sendWaitingMessage "qidiryapman..." xabari. ID saqlanadi, javob
// tayyor bo'lgach clearWaitingMessage uni o'chiradi.
func (h *BotHandler) sendWaitingMessage(userID, chatID int64, text string) {
	if h.bot == nil {
		return
	}
	sent, err := h.bot.Send(tgbotapi.NewMessage(chatID, text))
	if err != nil {
		logger.Warn("kutish xabari yuborilmadi chat=%d: %v", chatID, err)
		return
	}
	h.setWaitingMessage(userID, chatID, sent.MessageID)
}

func (h *BotHandler) sendTyping(chatID int64) {
	if h.bot == nil {
		return
	}
	action := tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)
	if _, err := h.bot.Request(action); err != nil {
		logger.Warn("typing ko'rsatilmadi chat=%d: %v", chatID, err)
	}
}

// splitIntoChunks matnni limitga mos bo'laklarga ajratadi, rune
// chegaralari buzilmaydi
func splitIntoChunks(s string, limit int) []string {
	if limit <= 0 {
		return []string{s}
	}

	var chunks []string
	var current strings.Builder
	count := 0

	for _, r := range s {
		current.WriteRune(r)
		count++
		if count >= limit {
			chunks = append(chunks, current.String())
			current.Reset()
			count = 0
		}
	}
	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}

	return chunks
}
