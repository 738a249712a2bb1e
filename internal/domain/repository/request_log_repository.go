package repository

import (
	"context"

	"github.com/yourusername/pc-build-assistant/internal/domain/entity"
)

// RequestLogRepository so'rovlar jurnali uchun interface.
// Append-only: yozuvlar o'zgartirilmaydi.
type RequestLogRepository interface {
	// Append yangi yozuv qo'shish
	Append(ctx context.Context, rec entity.RequestLog) error

	// ListRecent chat bo'yicha so'nggi yozuvlarni olish
	ListRecent(ctx context.Context, chatID int64, limit int) ([]entity.RequestLog, error)
}
