package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/yourusername/pc-build-assistant/internal/domain/constants"
	"github.com/yourusername/pc-build-assistant/internal/domain/entity"
	"github.com/yourusername/pc-build-assistant/internal/domain/repository"
)

// ChatUseCase oddiy suhbat (faq, general) uchun interface
type ChatUseCase interface {
	// Reply foydalanuvchi xabariga javob yaratish. Ikkala tomon ham
	// chat tarixiga yoziladi.
	Reply(ctx context.Context, userID int64, text string) (string, error)

	// ClearHistory foydalanuvchi tarixini tozalash (/start uchun)
	ClearHistory(ctx context.Context, userID int64) error
}

type chatUseCase struct {
	ai    repository.AIRepository
	chats repository.ChatRepository
}

// NewChatUseCase yangi ChatUseCase yaratish
func NewChatUseCase(ai repository.AIRepository, chats repository.ChatRepository) ChatUseCase {
	return &chatUseCase{ai: ai, chats: chats}
}

func (u *chatUseCase) Reply(ctx context.Context, userID int64, text string) (string, error) {
	var history []entity.Message
	if u.chats != nil {
		if h, err := u.chats.GetHistory(ctx, userID, constants.DefaultMaxHistoryMessages); err == nil {
			history = h
		}
		_ = u.chats.SaveMessage(ctx, entity.Message{
			UserID:    userID,
			Role:      "user",
			Content:   text,
			CreatedAt: time.Now(),
		})
	}

	if u.ai == nil {
		return "", fmt.Errorf("ai client is not configured")
	}

	reply, err := u.ai.GenerateReply(ctx, text, history)
	if err != nil {
		return "", fmt.Errorf("generate reply: %w", err)
	}

	if u.chats != nil {
		_ = u.chats.SaveMessage(ctx, entity.Message{
			UserID:    userID,
			Role:      "assistant",
			Content:   reply,
			CreatedAt: time.Now(),
		})
	}
	return reply, nil
}

func (u *chatUseCase) ClearHistory(ctx context.Context, userID int64) error {
	if u.chats == nil {
		return nil
	}
	return u.chats.ClearHistory(ctx, userID)
}
