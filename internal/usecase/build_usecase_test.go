package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/goleak"

	"github.com/yourusername/pc-build-assistant/internal/domain/entity"
	"github.com/yourusername/pc-build-assistant/internal/domain/repository"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func catalogProducts() []entity.Product {
	catalog := testCatalog()
	var all []entity.Product
	for _, cat := range entity.Categories() {
		all = append(all, catalog[cat]...)
	}
	return all
}

func newTestPipeline(t *testing.T, products *stubProductRepo, ai *stubAIRepo, logs *stubLogRepo) BuildUseCase {
	t.Helper()
	// nil stublar interfeysga typed nil bo'lib o'ralmasligi kerak
	var aiDep repository.AIRepository
	if ai != nil {
		aiDep = ai
	}
	var logDep repository.RequestLogRepository
	if logs != nil {
		logDep = logs
	}
	return NewBuildUseCase(newTestAllocator(t), NewSelector(0.15), NewValidator(), products, aiDep, logDep)
}

func TestRecommend_HeuristicHappyPath(t *testing.T) {
	products := &stubProductRepo{products: catalogProducts()}
	logs := &stubLogRepo{}
	uc := newTestPipeline(t, products, nil, logs)

	result, err := uc.Recommend(context.Background(), entity.BuildRequest{
		ChatID:       7,
		Requirements: "пк для игр за 500000",
		Budget:       500000,
		Purpose:      entity.PurposeGaming,
	})
	if err != nil {
		t.Fatalf("Recommend returned error: %v", err)
	}
	if result.RequestID == "" {
		t.Fatalf("request id should be assigned")
	}
	if !result.Build.IsComplete() {
		t.Fatalf("build should be complete, missing %v", result.Build.MissingCategories())
	}
	if total := result.Build.TotalPrice(); total > 500000 {
		t.Fatalf("total %.0f exceeds the budget", total)
	}
	if len(logs.recs) != 1 || logs.recs[0].Outcome != "ok" || logs.recs[0].Detail != "heuristic" {
		t.Fatalf("unexpected request log: %+v", logs.recs)
	}
}

func TestRecommend_QueriesAllSixCategories(t *testing.T) {
	products := &stubProductRepo{products: catalogProducts()}
	uc := newTestPipeline(t, products, nil, nil)

	if _, err := uc.Recommend(context.Background(), entity.BuildRequest{Budget: 500000}); err != nil {
		t.Fatalf("Recommend returned error: %v", err)
	}

	seen := map[entity.Category]int{}
	for _, cat := range products.calls {
		seen[cat]++
	}
	for _, cat := range entity.Categories() {
		if seen[cat] == 0 {
			t.Fatalf("category %s was never queried", cat)
		}
	}
}

func TestRecommend_CategoryFailureIsIsolated(t *testing.T) {
	products := &stubProductRepo{
		products: catalogProducts(),
		failCats: map[entity.Category]error{entity.CategoryGPU: errors.New("http 500")},
	}
	logs := &stubLogRepo{}
	uc := newTestPipeline(t, products, nil, logs)

	_, err := uc.Recommend(context.Background(), entity.BuildRequest{Budget: 500000})
	var failure *entity.BuildFailure
	if !errors.As(err, &failure) {
		t.Fatalf("expected BuildFailure, got %v", err)
	}
	if failure.Code != entity.FailureNoCandidates || failure.Category != entity.CategoryGPU {
		t.Fatalf("expected no_candidates[gpu], got %s[%s]", failure.Code, failure.Category)
	}
	if !strings.Contains(failure.Message, "catalog query failed") {
		t.Fatalf("failure should carry the catalog error, got %q", failure.Message)
	}

	// Bitta toifaning xatosi qolgan beshtasini to'xtatmasligi kerak
	seen := map[entity.Category]bool{}
	for _, cat := range products.calls {
		seen[cat] = true
	}
	for _, cat := range entity.Categories() {
		if !seen[cat] {
			t.Fatalf("category %s should still be queried", cat)
		}
	}
	if len(logs.recs) != 1 || logs.recs[0].Outcome != "failed" {
		t.Fatalf("failure should be logged, got %+v", logs.recs)
	}
}

func TestRecommend_NoCandidatesCarriesSuggestions(t *testing.T) {
	products := &stubProductRepo{products: catalogProducts()}
	// Band ichida bitta ham SSD yo'q, katalogda esa qimmatlari bor
	for i := range products.products {
		if products.products[i].Category == entity.CategorySSD {
			products.products[i].Price = 300000
		}
	}
	uc := newTestPipeline(t, products, nil, nil)

	_, err := uc.Recommend(context.Background(), entity.BuildRequest{Budget: 500000})
	var failure *entity.BuildFailure
	if !errors.As(err, &failure) {
		t.Fatalf("expected BuildFailure, got %v", err)
	}
	if failure.Category != entity.CategorySSD {
		t.Fatalf("expected ssd failure, got %s", failure.Category)
	}
	if len(failure.Suggestions) == 0 {
		t.Fatalf("failure should carry fallback suggestions from the category")
	}
	if products.unbounded == 0 {
		t.Fatalf("fallback suggestions should query without a price cap")
	}
}

func TestRecommend_InfeasibleBudget(t *testing.T) {
	products := &stubProductRepo{products: catalogProducts()}
	logs := &stubLogRepo{}
	uc := newTestPipeline(t, products, nil, logs)

	_, err := uc.Recommend(context.Background(), entity.BuildRequest{Budget: 90000})
	var failure *entity.BuildFailure
	if !errors.As(err, &failure) {
		t.Fatalf("expected BuildFailure, got %v", err)
	}
	if failure.Code != entity.FailureInfeasibleBudget {
		t.Fatalf("expected infeasible_budget, got %s", failure.Code)
	}
	if len(products.calls) != 0 {
		t.Fatalf("catalog should not be queried for an infeasible budget")
	}
}

func TestRecommend_RelaxedReselectionAfterOverBudget(t *testing.T) {
	// 460 000 da gpu bandi [112 700, 209 300]. Qattiq bandda faqat
	// 175 000 lik GPU qoladi, 105 000 lik esa band ostida. Birinchi
	// o'tish byudjetdan oshadi, kengaytirilgan qayta tanlash arzon
	// GPU gacha yetib boradi.
	cheap := prod("103", "Palit RTX 4060 StormX 8GB", entity.CategoryGPU, 105000, 4)
	var items []entity.Product
	for _, p := range append(catalogProducts(), cheap) {
		if p.SKU == "102" {
			continue
		}
		items = append(items, p)
	}
	products := &stubProductRepo{products: items}

	logs := &stubLogRepo{}
	uc := newTestPipeline(t, products, nil, logs)

	result, err := uc.Recommend(context.Background(), entity.BuildRequest{
		Budget:  460000,
		Purpose: entity.PurposeGaming,
	})
	if err != nil {
		t.Fatalf("Recommend returned error: %v", err)
	}
	if !result.Relaxed {
		t.Fatalf("result should be marked as relaxed")
	}
	if total := result.Build.TotalPrice(); total > 460000 {
		t.Fatalf("relaxed build still over budget: %.0f", total)
	}
	gpu, _ := result.Build.Component(entity.CategoryGPU)
	if gpu.SKU != "103" {
		t.Fatalf("relaxed pass should reach the below-band gpu, got sku %s", gpu.SKU)
	}
	if result.Build.Purpose != entity.PurposeGaming {
		t.Fatalf("requested purpose should be preserved, got %s", result.Build.Purpose)
	}
	if len(logs.recs) != 1 || logs.recs[0].Detail != "relaxed" {
		t.Fatalf("unexpected request log: %+v", logs.recs)
	}
}

func TestRecommend_AISuggestionAccepted(t *testing.T) {
	products := &stubProductRepo{products: catalogProducts()}
	ai := &stubAIRepo{suggestion: map[entity.Category]string{
		entity.CategoryGPU:         "102",
		entity.CategoryCPU:         "202",
		entity.CategoryMotherboard: "302",
		entity.CategorySSD:         "401",
		entity.CategoryPSU:         "501",
		entity.CategoryCase:        "601",
	}}
	logs := &stubLogRepo{}
	uc := newTestPipeline(t, products, ai, logs)

	result, err := uc.Recommend(context.Background(), entity.BuildRequest{Budget: 500000})
	if err != nil {
		t.Fatalf("Recommend returned error: %v", err)
	}
	if !ai.suggestCalled {
		t.Fatalf("ai should be consulted")
	}
	gpu, _ := result.Build.Component(entity.CategoryGPU)
	if gpu.SKU != "102" {
		t.Fatalf("ai suggestion should be used, got gpu sku %s", gpu.SKU)
	}
	if len(logs.recs) != 1 || logs.recs[0].Detail != "ai" {
		t.Fatalf("unexpected request log: %+v", logs.recs)
	}
}

func TestRecommend_AISuggestionRevalidated(t *testing.T) {
	cases := []struct {
		name       string
		suggestion map[entity.Category]string
	}{
		{"unknown sku", map[entity.Category]string{
			entity.CategoryGPU:         "999",
			entity.CategoryCPU:         "202",
			entity.CategoryMotherboard: "302",
			entity.CategorySSD:         "401",
			entity.CategoryPSU:         "501",
			entity.CategoryCase:        "601",
		}},
		{"wrong category", map[entity.Category]string{
			entity.CategoryGPU:         "201", // protsessor SKU
			entity.CategoryCPU:         "202",
			entity.CategoryMotherboard: "302",
			entity.CategorySSD:         "401",
			entity.CategoryPSU:         "501",
			entity.CategoryCase:        "601",
		}},
		{"missing category", map[entity.Category]string{
			entity.CategoryGPU: "102",
		}},
	}
	for _, tc := range cases {
		products := &stubProductRepo{products: catalogProducts()}
		ai := &stubAIRepo{suggestion: tc.suggestion}
		uc := newTestPipeline(t, products, ai, nil)

		result, err := uc.Recommend(context.Background(), entity.BuildRequest{Budget: 500000})
		if err != nil {
			t.Fatalf("%s: Recommend returned error: %v", tc.name, err)
		}
		gpu, _ := result.Build.Component(entity.CategoryGPU)
		if gpu.SKU != "101" {
			t.Fatalf("%s: bad suggestion should fall back to heuristic, got gpu sku %s", tc.name, gpu.SKU)
		}
	}
}

func TestRecommend_AISuggestionOutOfStockRejected(t *testing.T) {
	dead := prod("104", "Palit RTX 4070 Ti 12GB", entity.CategoryGPU, 180000, 0)
	products := &stubProductRepo{products: append(catalogProducts(), dead)}
	ai := &stubAIRepo{suggestion: map[entity.Category]string{
		entity.CategoryGPU:         "104",
		entity.CategoryCPU:         "202",
		entity.CategoryMotherboard: "302",
		entity.CategorySSD:         "401",
		entity.CategoryPSU:         "501",
		entity.CategoryCase:        "601",
	}}
	uc := newTestPipeline(t, products, ai, nil)

	result, err := uc.Recommend(context.Background(), entity.BuildRequest{Budget: 500000})
	if err != nil {
		t.Fatalf("Recommend returned error: %v", err)
	}
	gpu, _ := result.Build.Component(entity.CategoryGPU)
	if gpu.SKU == "104" {
		t.Fatalf("out-of-stock suggestion must be rejected")
	}
}

func TestRecommend_AIErrorFallsBackToHeuristic(t *testing.T) {
	products := &stubProductRepo{products: catalogProducts()}
	ai := &stubAIRepo{suggestErr: errors.New("quota exceeded")}
	uc := newTestPipeline(t, products, ai, nil)

	result, err := uc.Recommend(context.Background(), entity.BuildRequest{Budget: 500000})
	if err != nil {
		t.Fatalf("Recommend returned error: %v", err)
	}
	if !result.Build.IsComplete() {
		t.Fatalf("heuristic fallback should still produce a build")
	}
}

func TestRecommend_AIPromptGetsInStockCandidatesOnly(t *testing.T) {
	dead := prod("405", "Netac NV7000 1TB", entity.CategorySSD, 50000, 0)
	products := &stubProductRepo{products: append(catalogProducts(), dead)}
	ai := &stubAIRepo{suggestErr: errors.New("skip")}
	uc := newTestPipeline(t, products, ai, nil)

	if _, err := uc.Recommend(context.Background(), entity.BuildRequest{Budget: 500000}); err != nil {
		t.Fatalf("Recommend returned error: %v", err)
	}
	for _, p := range ai.lastCandidates[entity.CategorySSD] {
		if p.SKU == "405" {
			t.Fatalf("out-of-stock products must not reach the prompt")
		}
	}
}

func TestRecommend_TierWithoutBudget(t *testing.T) {
	// O'rta segment oralig'iga mos katalog: GPU 175k banddan mid
	// bracket [122k, 228k] ichida va hokazo
	products := &stubProductRepo{products: catalogProducts()}
	uc := newTestPipeline(t, products, nil, nil)

	result, err := uc.Recommend(context.Background(), entity.BuildRequest{Tier: entity.TierMid})
	if err != nil {
		t.Fatalf("Recommend returned error: %v", err)
	}
	if !result.Build.IsComplete() {
		t.Fatalf("tier-based build should be complete, missing %v", result.Build.MissingCategories())
	}
}
