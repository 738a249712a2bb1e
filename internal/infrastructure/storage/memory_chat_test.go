package storage

import (
	"context"
	"testing"

	"github.com/yourusername/pc-build-assistant/internal/domain/entity"
)

func TestMemoryChat_TrimsToMaxSize(t *testing.T) {
	repo := NewMemoryChatRepository(3)
	ctx := context.Background()

	texts := []string{"birinchi", "ikkinchi", "uchinchi", "to'rtinchi", "beshinchi"}
	for _, text := range texts {
		err := repo.SaveMessage(ctx, entity.Message{UserID: 7, Role: "user", Content: text})
		if err != nil {
			t.Fatalf("SaveMessage xato: %v", err)
		}
	}

	got, err := repo.GetHistory(ctx, 7, 0)
	if err != nil {
		t.Fatalf("GetHistory xato: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("kutilgan 3 ta xabar, keldi %d", len(got))
	}
	if got[0].Content != "uchinchi" || got[2].Content != "beshinchi" {
		t.Errorf("eski xabarlar tushmagan: %s ... %s", got[0].Content, got[2].Content)
	}
}

func TestMemoryChat_HistoryLimitAndUnknownUser(t *testing.T) {
	repo := NewMemoryChatRepository(10)
	ctx := context.Background()

	for _, text := range []string{"a", "b", "c"} {
		if err := repo.SaveMessage(ctx, entity.Message{UserID: 1, Role: "user", Content: text}); err != nil {
			t.Fatalf("SaveMessage xato: %v", err)
		}
	}

	got, err := repo.GetHistory(ctx, 1, 2)
	if err != nil {
		t.Fatalf("GetHistory xato: %v", err)
	}
	if len(got) != 2 || got[0].Content != "b" || got[1].Content != "c" {
		t.Errorf("limit bilan tarix noto'g'ri: %+v", got)
	}

	empty, err := repo.GetHistory(ctx, 999, 5)
	if err != nil {
		t.Fatalf("GetHistory xato: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("notanish foydalanuvchiga tarix keldi: %+v", empty)
	}
}

func TestMemoryChat_ClearHistory(t *testing.T) {
	repo := NewMemoryChatRepository(10)
	ctx := context.Background()

	if err := repo.SaveMessage(ctx, entity.Message{UserID: 5, Role: "user", Content: "salom"}); err != nil {
		t.Fatalf("SaveMessage xato: %v", err)
	}
	if err := repo.ClearHistory(ctx, 5); err != nil {
		t.Fatalf("ClearHistory xato: %v", err)
	}
	got, err := repo.GetHistory(ctx, 5, 0)
	if err != nil {
		t.Fatalf("GetHistory xato: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("tozalangandan keyin %d ta xabar qoldi", len(got))
	}
}
