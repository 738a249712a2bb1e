package usecase

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/yourusername/pc-build-assistant/internal/domain/entity"
	"github.com/yourusername/pc-build-assistant/internal/domain/repository"
)

type stubAIRepo struct {
	intent         entity.IntentResult
	intentErr      error
	suggestion     map[entity.Category]string
	suggestErr     error
	reply          string
	replyErr       error
	classifyCalled bool
	suggestCalled  bool
	lastMessage    string
	lastCandidates map[entity.Category][]entity.Product
}

func (s *stubAIRepo) ClassifyIntent(ctx context.Context, message string, history []entity.Message) (entity.IntentResult, error) {
	s.classifyCalled = true
	s.lastMessage = message
	if s.intentErr != nil {
		return entity.IntentResult{}, s.intentErr
	}
	return s.intent, nil
}

func (s *stubAIRepo) SuggestBuild(ctx context.Context, req entity.BuildRequest, candidates map[entity.Category][]entity.Product) (map[entity.Category]string, error) {
	s.suggestCalled = true
	s.lastCandidates = candidates
	if s.suggestErr != nil {
		return nil, s.suggestErr
	}
	if s.suggestion == nil {
		return nil, fmt.Errorf("no suggestion configured")
	}
	return s.suggestion, nil
}

func (s *stubAIRepo) GenerateReply(ctx context.Context, message string, history []entity.Message) (string, error) {
	s.lastMessage = message
	if s.replyErr != nil {
		return "", s.replyErr
	}
	return s.reply, nil
}

func (s *stubAIRepo) Close() error { return nil }

type stubChatRepo struct {
	history []entity.Message
	saved   []entity.Message
	cleared bool
}

func (s *stubChatRepo) SaveMessage(ctx context.Context, message entity.Message) error {
	s.saved = append(s.saved, message)
	return nil
}

func (s *stubChatRepo) GetHistory(ctx context.Context, userID int64, limit int) ([]entity.Message, error) {
	if limit <= 0 || len(s.history) <= limit {
		return s.history, nil
	}
	return s.history[len(s.history)-limit:], nil
}

func (s *stubChatRepo) ClearHistory(ctx context.Context, userID int64) error {
	s.cleared = true
	s.history = nil
	return nil
}

// stubProductRepo oltita parallel so'rovga xizmat qiladi, shuning
// uchun mutex bilan himoyalangan
type stubProductRepo struct {
	mu        sync.Mutex
	products  []entity.Product
	failCats  map[entity.Category]error
	calls     []entity.Category
	unbounded int
}

func (s *stubProductRepo) Search(ctx context.Context, query string, limit int) ([]entity.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entity.Product
	for _, p := range s.products {
		if len(out) >= limit {
			break
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *stubProductRepo) SearchByCategory(ctx context.Context, cat entity.Category, minPrice, maxPrice float64, limit int) ([]entity.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, cat)
	if maxPrice <= 0 {
		s.unbounded++
	}
	if err, ok := s.failCats[cat]; ok {
		return nil, err
	}
	var out []entity.Product
	for _, p := range s.products {
		if p.Category != cat {
			continue
		}
		if minPrice > 0 && p.EffectivePrice() < minPrice {
			continue
		}
		if maxPrice > 0 && p.EffectivePrice() > maxPrice {
			continue
		}
		out = append(out, p)
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (s *stubProductRepo) GetBySKU(ctx context.Context, sku string) (entity.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.products {
		if p.SKU == sku {
			return p, nil
		}
	}
	return entity.Product{}, repository.ErrProductNotFound
}

func (s *stubProductRepo) UpdateCatalog(ctx context.Context, products []entity.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = products
	return nil
}

type stubLogRepo struct {
	mu   sync.Mutex
	recs []entity.RequestLog
}

func (s *stubLogRepo) Append(ctx context.Context, rec entity.RequestLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recs = append(s.recs, rec)
	return nil
}

func (s *stubLogRepo) ListRecent(ctx context.Context, chatID int64, limit int) ([]entity.RequestLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if limit <= 0 || len(s.recs) <= limit {
		return s.recs, nil
	}
	return s.recs[len(s.recs)-limit:], nil
}

func TestChatReply_SavesBothSides(t *testing.T) {
	ai := &stubAIRepo{reply: "Salom! Qanday yordam bera olaman?"}
	chat := &stubChatRepo{}

	u := NewChatUseCase(ai, chat)
	resp, err := u.Reply(context.Background(), 1, "salom")
	if err != nil {
		t.Fatalf("Reply returned error: %v", err)
	}
	if resp != "Salom! Qanday yordam bera olaman?" {
		t.Fatalf("unexpected response: %q", resp)
	}
	if len(chat.saved) != 2 {
		t.Fatalf("expected 2 saved messages, got %d", len(chat.saved))
	}
	if chat.saved[0].Role != "user" || chat.saved[1].Role != "assistant" {
		t.Fatalf("unexpected roles: %q, %q", chat.saved[0].Role, chat.saved[1].Role)
	}
}

func TestChatReply_ErrorWhenAIUnavailable(t *testing.T) {
	u := NewChatUseCase(nil, &stubChatRepo{})
	if _, err := u.Reply(context.Background(), 1, "salom"); err == nil {
		t.Fatalf("expected error without AI client")
	}
}

func TestChatClearHistory(t *testing.T) {
	chat := &stubChatRepo{history: []entity.Message{{Role: "user", Content: "eski"}}}
	u := NewChatUseCase(&stubAIRepo{}, chat)
	if err := u.ClearHistory(context.Background(), 1); err != nil {
		t.Fatalf("ClearHistory returned error: %v", err)
	}
	if !chat.cleared {
		t.Fatalf("history should be cleared")
	}
}
