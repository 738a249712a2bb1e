package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/pc-build-assistant/internal/domain/entity"
	"github.com/yourusername/pc-build-assistant/internal/domain/repository"
)

type memoryRequestLogRepository struct {
	mu   sync.RWMutex
	recs []entity.RequestLog
}

// NewMemoryRequestLogRepository jurnalning in-memory varianti.
// POSTGRES_DSN berilmaganda va testlarda ishlatiladi.
func NewMemoryRequestLogRepository() repository.RequestLogRepository {
	return &memoryRequestLogRepository{recs: make([]entity.RequestLog, 0, 256)}
}

// Append yangi yozuv qo'shish
func (m *memoryRequestLogRepository) Append(ctx context.Context, rec entity.RequestLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	m.recs = append(m.recs, rec)
	return nil
}

// ListRecent chat bo'yicha so'nggi yozuvlar, eski birinchi tartibda
func (m *memoryRequestLogRepository) ListRecent(ctx context.Context, chatID int64, limit int) ([]entity.RequestLog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var res []entity.RequestLog
	for i := len(m.recs) - 1; i >= 0; i-- {
		if m.recs[i].ChatID != chatID {
			continue
		}
		res = append(res, m.recs[i])
		if limit > 0 && len(res) >= limit {
			break
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].CreatedAt.Before(res[j].CreatedAt) })
	return res, nil
}
