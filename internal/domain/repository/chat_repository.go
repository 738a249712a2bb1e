package repository

import (
	"context"

	"github.com/yourusername/pc-build-assistant/internal/domain/entity"
)

// ChatRepository chat tarixi bilan ishlash uchun interface
type ChatRepository interface {
	// SaveMessage xabarni saqlash
	SaveMessage(ctx context.Context, message entity.Message) error

	// GetHistory foydalanuvchining so'nggi xabarlarini olish
	GetHistory(ctx context.Context, userID int64, limit int) ([]entity.Message, error)

	// ClearHistory foydalanuvchi tarixini tozalash
	ClearHistory(ctx context.Context, userID int64) error
}
