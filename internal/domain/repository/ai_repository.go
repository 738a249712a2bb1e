package repository

import (
	"context"

	"github.com/yourusername/pc-build-assistant/internal/domain/entity"
)

// AIRepository AI bilan ishlash uchun interface
type AIRepository interface {
	// ClassifyIntent foydalanuvchi xabarini tahlil qilib intent,
	// byudjet, tier va maqsadni ajratadi
	ClassifyIntent(ctx context.Context, message string, history []entity.Message) (entity.IntentResult, error)

	// SuggestBuild kandidatlar ichidan toifa -> SKU taklifini qaytaradi.
	// Chiqish ISHONCHSIZ: chaqiruvchi har bir SKU ni katalogda qayta
	// tekshirishi va sborkani Validator dan o'tkazishi shart.
	SuggestBuild(ctx context.Context, req entity.BuildRequest, candidates map[entity.Category][]entity.Product) (map[entity.Category]string, error)

	// GenerateReply oddiy savollar uchun javob matni yaratish
	GenerateReply(ctx context.Context, message string, history []entity.Message) (string, error)

	// Close resurslarni yopish
	Close() error
}
