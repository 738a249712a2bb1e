package storage

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/yourusername/pc-build-assistant/internal/domain/entity"
	"github.com/yourusername/pc-build-assistant/internal/domain/repository"
	"github.com/yourusername/pc-build-assistant/pkg/logger"
)

const (
	postgresConnectAttempts = 10
	postgresConnectDelay    = 2 * time.Second
)

type postgresRequestLogRepository struct {
	db *sql.DB
}

// NewPostgresRequestLogRepository so'rovlar jurnalini Postgres da
// saqlash. Konteyner muhitida baza botdan kech ko'tarilishi mumkin,
// shuning uchun ulanish retry bilan. Bazani yaratish operator ishi.
func NewPostgresRequestLogRepository(dsn string) (repository.RequestLogRepository, error) {
	db, err := openPostgresWithRetry(dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	schema := `
CREATE TABLE IF NOT EXISTS request_logs (
	id TEXT PRIMARY KEY,
	chat_id BIGINT NOT NULL,
	query TEXT,
	intent TEXT NOT NULL,
	outcome TEXT NOT NULL,
	detail TEXT,
	total NUMERIC,
	created_at TIMESTAMPTZ DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_request_logs_chat_time ON request_logs (chat_id, created_at DESC);
`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create request_logs table: %w", err)
	}

	return &postgresRequestLogRepository{db: db}, nil
}

func openPostgresWithRetry(dsn string) (*sql.DB, error) {
	var lastErr error
	for attempt := 1; attempt <= postgresConnectAttempts; attempt++ {
		db, err := sql.Open("postgres", dsn)
		if err == nil {
			if pingErr := db.Ping(); pingErr == nil {
				return db, nil
			} else {
				err = pingErr
			}
		}
		if db != nil {
			_ = db.Close()
		}
		lastErr = err
		if attempt < postgresConnectAttempts {
			logger.Warn("Postgres ulanish urinishi %d/%d muvaffaqiyatsiz: %v", attempt, postgresConnectAttempts, err)
			time.Sleep(postgresConnectDelay)
		}
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("postgres connection failed")
	}
	return nil, lastErr
}

// Append yangi yozuv qo'shish
func (p *postgresRequestLogRepository) Append(ctx context.Context, rec entity.RequestLog) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	_, err := p.db.ExecContext(ctx, `
	INSERT INTO request_logs (id, chat_id, query, intent, outcome, detail, total, created_at)
	VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`, rec.ID, rec.ChatID, rec.Query, rec.Intent, rec.Outcome, rec.Detail, rec.Total, rec.CreatedAt)
	return err
}

// ListRecent chat bo'yicha so'nggi yozuvlar, eski birinchi tartibda
func (p *postgresRequestLogRepository) ListRecent(ctx context.Context, chatID int64, limit int) ([]entity.RequestLog, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := p.db.QueryContext(ctx, `
	SELECT id, chat_id, query, intent, outcome, detail, total, created_at
	FROM request_logs
	WHERE chat_id = $1
	ORDER BY created_at DESC
	LIMIT $2`, chatID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []entity.RequestLog
	for rows.Next() {
		var rec entity.RequestLog
		var detail sql.NullString
		var total sql.NullFloat64
		if err := rows.Scan(&rec.ID, &rec.ChatID, &rec.Query, &rec.Intent, &rec.Outcome, &detail, &total, &rec.CreatedAt); err != nil {
			return nil, err
		}
		rec.Detail = detail.String
		rec.Total = total.Float64
		res = append(res, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	sort.Slice(res, func(i, j int) bool { return res[i].CreatedAt.Before(res[j].CreatedAt) })
	return res, nil
}
