package storage

import (
	"context"
	"testing"
	"time"

	"github.com/yourusername/pc-build-assistant/internal/domain/entity"
)

func TestMemoryLog_AppendFillsDefaults(t *testing.T) {
	repo := NewMemoryRequestLogRepository()
	ctx := context.Background()

	err := repo.Append(ctx, entity.RequestLog{ChatID: 10, Intent: "pc_build", Outcome: "ok"})
	if err != nil {
		t.Fatalf("Append xato: %v", err)
	}

	got, err := repo.ListRecent(ctx, 10, 5)
	if err != nil {
		t.Fatalf("ListRecent xato: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("kutilgan 1 yozuv, keldi %d", len(got))
	}
	if got[0].ID == "" {
		t.Error("ID berilmagan")
	}
	if got[0].CreatedAt.IsZero() {
		t.Error("CreatedAt berilmagan")
	}
}

func TestMemoryLog_ListRecentFiltersAndOrders(t *testing.T) {
	repo := NewMemoryRequestLogRepository()
	ctx := context.Background()
	base := time.Now().Add(-time.Hour)

	recs := []entity.RequestLog{
		{ID: "r1", ChatID: 1, Intent: "pc_build", Outcome: "ok", CreatedAt: base},
		{ID: "r2", ChatID: 2, Intent: "faq", Outcome: "ok", CreatedAt: base.Add(time.Minute)},
		{ID: "r3", ChatID: 1, Intent: "pc_build", Outcome: "failed", CreatedAt: base.Add(2 * time.Minute)},
		{ID: "r4", ChatID: 1, Intent: "product_search", Outcome: "ok", CreatedAt: base.Add(3 * time.Minute)},
	}
	for _, rec := range recs {
		if err := repo.Append(ctx, rec); err != nil {
			t.Fatalf("Append xato: %v", err)
		}
	}

	got, err := repo.ListRecent(ctx, 1, 2)
	if err != nil {
		t.Fatalf("ListRecent xato: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("kutilgan 2 yozuv, keldi %d", len(got))
	}
	// oxirgi ikkitasi, eski birinchi
	if got[0].ID != "r3" || got[1].ID != "r4" {
		t.Errorf("tartib noto'g'ri: %s, %s", got[0].ID, got[1].ID)
	}
}
