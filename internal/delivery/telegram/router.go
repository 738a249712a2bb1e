package telegram

import (
	"context"
	"time"

	"github.com/yourusername/pc-build-assistant/internal/domain/entity"
	"github.com/yourusername/pc-build-assistant/pkg/logger"
)

// handleTextMessage oddiy matn: navbatga qo'yiladi, worker klassifikatsiya
// qilib kerakli usecase ga yo'naltiradi
func (h *BotHandler) handleTextMessage(ctx context.Context, userID, chatID int64, text string) {
	h.submitText(ctx, userID, chatID, text)
}

func (h *BotHandler) submitText(ctx context.Context, userID, chatID int64, text string) {
	if !h.startProcessing(userID) {
		h.sendMessage(chatID, "Предыдущий запрос ещё обрабатывается, одну секунду...")
		return
	}
	h.workerPool.submit(&messageRequest{ctx: ctx, userID: userID, chatID: chatID, text: text})
}

// routeText worker ichida chaqiriladi. Klassifikator har doim natija
// beradi (AI yiqilsa fallback), shuning uchun bu yerda xato yo'li yo'q.
func (h *BotHandler) routeText(ctx context.Context, req *messageRequest) {
	if h.intentUseCase == nil {
		h.handleChat(ctx, req)
		return
	}

	intent, err := h.intentUseCase.Classify(ctx, req.userID, req.text)
	if err != nil {
		logger.Warn("klassifikatsiya xatosi user=%d: %v", req.userID, err)
	}

	switch intent.Intent {
	case entity.IntentPCBuild:
		h.handleBuildIntent(ctx, req, intent)
	case entity.IntentPCBudgetAsk:
		h.appendLog(ctx, req, entity.IntentPCBudgetAsk, "ok", "budget_ask", 0)
		h.sendMessage(req.chatID, budgetAskMessage)
	case entity.IntentProductSearch:
		h.handleProductSearch(ctx, req, intent)
	default:
		h.handleChat(ctx, req)
	}
}

func (h *BotHandler) handleProductSearch(ctx context.Context, req *messageRequest, intent entity.IntentResult) {
	if h.productUseCase == nil {
		h.handleChat(ctx, req)
		return
	}

	query := intent.SearchQuery
	if query == "" {
		query = req.text
	}

	var (
		products []entity.Product
		err      error
	)
	if intent.Category != "" {
		products, err = h.productUseCase.SearchCategory(ctx, intent.Category, intent.Budget)
	} else {
		products, err = h.productUseCase.Search(ctx, query)
	}
	if err != nil {
		logger.Error("katalog qidiruvi xatosi user=%d: %v", req.userID, err)
		h.appendLog(ctx, req, entity.IntentProductSearch, "failed", "catalog_error", 0)
		h.sendMessage(req.chatID, "Не получилось обратиться к каталогу. Попробуйте ещё раз чуть позже.")
		return
	}
	if len(products) == 0 {
		h.appendLog(ctx, req, entity.IntentProductSearch, "ok", "empty", 0)
		h.sendMessage(req.chatID, "По вашему запросу ничего не нашлось. Попробуйте сформулировать иначе или укажите категорию: видеокарта, процессор, SSD...")
		return
	}

	h.appendLog(ctx, req, entity.IntentProductSearch, "ok", "", 0)
	h.sendMessage(req.chatID, h.formatProductList(products, productListLimit))
}

func (h *BotHandler) handleChat(ctx context.Context, req *messageRequest) {
	if h.chatUseCase == nil {
		h.sendMessage(req.chatID, "Сервис временно недоступен. Попробуйте позже.")
		return
	}

	reply, err := h.chatUseCase.Reply(ctx, req.userID, req.text)
	if err != nil {
		logger.Error("chat javobi xatosi user=%d: %v", req.userID, err)
		h.appendLog(ctx, req, entity.IntentGeneral, "failed", "ai_error", 0)
		h.sendMessage(req.chatID, requestErrorText(ctx, "Извините, произошла ошибка. Попробуйте ещё раз."))
		return
	}
	h.appendLog(ctx, req, entity.IntentGeneral, "ok", "", 0)
	h.sendMessage(req.chatID, reply)
}

// appendLog jurnalga yozish. Sborka so'rovlari usecase ichida yoziladi,
// bu yerda qolgan intentlar.
func (h *BotHandler) appendLog(ctx context.Context, req *messageRequest, intent entity.MessageIntent, outcome, detail string, total float64) {
	if h.logs == nil {
		return
	}
	rec := entity.RequestLog{
		ChatID:    req.chatID,
		Query:     req.text,
		Intent:    string(intent),
		Outcome:   outcome,
		Detail:    detail,
		Total:     total,
		CreatedAt: time.Now(),
	}
	if err := h.logs.Append(ctx, rec); err != nil {
		logger.Warn("jurnalga yozib bo'lmadi chat=%d: %v", req.chatID, err)
	}
}

const budgetAskMessage = `Подскажите бюджет, и я подберу сборку. Например: «за 500 000 тенге».

Если точной суммы нет, назовите класс: бюджетная, средняя или топовая сборка.`
