package telegram

import (
	"context"
	"errors"

	"github.com/yourusername/pc-build-assistant/internal/domain/entity"
	"github.com/yourusername/pc-build-assistant/pkg/logger"
)

// handleBuildIntent to'liq sborka so'rovi. Jurnalga build usecase
// o'zi yozadi, bu yerda qayta yozilmaydi.
func (h *BotHandler) handleBuildIntent(ctx context.Context, req *messageRequest, intent entity.IntentResult) {
	if h.buildUseCase == nil {
		h.sendMessage(req.chatID, "Подбор сборок временно недоступен. Попробуйте позже.")
		return
	}

	buildReq := entity.BuildRequest{
		ChatID:       req.chatID,
		Requirements: intent.Requirements,
		Budget:       intent.Budget,
		Tier:         intent.Tier,
		Purpose:      intent.Purpose,
	}

	h.sendWaitingMessage(req.userID, req.chatID, "Подбираю конфигурацию, это займёт несколько секунд...")

	result, err := h.buildUseCase.Recommend(ctx, buildReq)
	h.clearWaitingMessage(req.userID)
	if err != nil {
		var failure *entity.BuildFailure
		if errors.As(err, &failure) {
			h.sendMessage(req.chatID, h.formatBuildFailure(failure))
			return
		}
		logger.Error("sborka so'rovi yiqildi chat=%d: %v", req.chatID, err)
		h.sendMessage(req.chatID, requestErrorText(ctx, "Не получилось собрать конфигурацию из-за внутренней ошибки. Попробуйте ещё раз."))
		return
	}

	h.sendMessage(req.chatID, h.formatBuildResult(result))
}
