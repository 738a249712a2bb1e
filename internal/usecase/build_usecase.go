package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/pc-build-assistant/internal/domain/constants"
	"github.com/yourusername/pc-build-assistant/internal/domain/entity"
	"github.com/yourusername/pc-build-assistant/internal/domain/repository"
	"github.com/yourusername/pc-build-assistant/pkg/logger"
)

// BuildUseCase sborka tavsiyasi uchun interface
type BuildUseCase interface {
	// Recommend to'liq pipeline: taqsimlash, kandidatlarni yig'ish,
	// tanlash, tekshirish. Har qanday muvaffaqiyatsizlik
	// tiplashtirilgan qiymat sifatida qaytadi, panic/fatal yo'q.
	Recommend(ctx context.Context, req entity.BuildRequest) (*entity.BuildResult, error)
}

type buildUseCase struct {
	allocator *Allocator
	extractor *Extractor
	selector  *Selector
	validator *Validator
	products  repository.ProductRepository
	ai        repository.AIRepository
	logs      repository.RequestLogRepository
}

// NewBuildUseCase yangi BuildUseCase yaratish. ai nil bo'lsa faqat
// evristik tanlash ishlaydi, logs nil bo'lsa jurnal yuritilmaydi.
func NewBuildUseCase(
	allocator *Allocator,
	selector *Selector,
	validator *Validator,
	products repository.ProductRepository,
	ai repository.AIRepository,
	logs repository.RequestLogRepository,
) BuildUseCase {
	return &buildUseCase{
		allocator: allocator,
		extractor: NewExtractor(),
		selector:  selector,
		validator: validator,
		products:  products,
		ai:        ai,
		logs:      logs,
	}
}

func (uc *buildUseCase) Recommend(ctx context.Context, req entity.BuildRequest) (*entity.BuildResult, error) {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	if req.Purpose == "" {
		req.Purpose = entity.PurposeGaming
	}
	logger.Info("🔧 build %s: budget=%.0f tier=%s purpose=%s", req.ID, req.Budget, req.Tier, req.Purpose)

	budgets, err := uc.allocator.Allocate(req.Budget, req.Tier)
	if err != nil {
		uc.appendLog(ctx, req, "failed", err.Error(), 0)
		return nil, err
	}

	candidates, fetchErrs := uc.fetchCandidates(ctx, budgets)
	for _, cb := range budgets {
		if ferr, ok := fetchErrs[cb.Category]; ok {
			logger.Warn("⚠️ catalog query failed for %s: %v", cb.Category, ferr)
		}
	}

	// AI taklifi ishonchsiz generator: chiqishi katalog bo'yicha qayta
	// tekshiriladi va xuddi evristik sborka kabi Validator dan o'tadi.
	// Har qanday muammoda jimgina evristik yo'lga o'tiladi.
	if uc.ai != nil {
		if result, ok := uc.trySuggestedBuild(ctx, req, candidates); ok {
			uc.appendLog(ctx, req, "ok", "ai", result.Build.TotalPrice())
			return result, nil
		}
	}

	build, selErr := uc.selector.Select(req, budgets, candidates)
	if selErr != nil {
		return nil, uc.selectionFailure(ctx, req, selErr, fetchErrs)
	}

	report := uc.validator.Validate(build, req.Budget)
	if report.OK() {
		uc.appendLog(ctx, req, "ok", "heuristic", build.TotalPrice())
		return &entity.BuildResult{RequestID: req.ID, Build: build, Warnings: report.Warnings}, nil
	}

	// Qattiq qoida buzildi: bitta chegaralangan qayta tanlash.
	// Oraliqlar kengaytiriladi va arzonroq tanlov rejimi yoqiladi.
	violation, _ := report.FirstHard()
	logger.Warn("⚠️ build %s: %s, retrying with relaxed bounds", req.ID, violation.Message)

	economy := req
	economy.Purpose = entity.PurposeWork
	retryBuild, retryErr := uc.selector.Select(economy, relaxAll(budgets, uc.selector.relaxStep), candidates)
	if retryErr == nil {
		retryReport := uc.validator.Validate(retryBuild, req.Budget)
		if retryReport.OK() {
			retryBuild.Purpose = req.Purpose
			uc.appendLog(ctx, req, "ok", "relaxed", retryBuild.TotalPrice())
			return &entity.BuildResult{RequestID: req.ID, Build: retryBuild, Warnings: retryReport.Warnings, Relaxed: true}, nil
		}
	}

	failure := &entity.BuildFailure{Code: violation.Code, Message: violation.Message}
	uc.appendLog(ctx, req, "failed", failure.Error(), 0)
	return nil, failure
}

// fetchCandidates oltita toifa so'rovini parallel yuboradi va
// hammasini kutadi. Har goroutine faqat o'z slotiga yozadi, shuning
// uchun qo'shimcha lock kerak emas. Bitta toifaning xatosi qolgan
// beshtasini to'xtatmaydi.
func (uc *buildUseCase) fetchCandidates(ctx context.Context, budgets []entity.CategoryBudget) (map[entity.Category][]entity.Product, map[entity.Category]error) {
	type slot struct {
		products []entity.Product
		err      error
	}
	slots := make([]slot, len(budgets))

	var wg sync.WaitGroup
	for i, cb := range budgets {
		wg.Add(1)
		go func(i int, cb entity.CategoryBudget) {
			defer wg.Done()
			// So'rov oralig'i bir qadam keng olinadi: tanlashdagi
			// kengaytirish havzada topadigan narsa bo'lishi kerak
			window := cb.Relaxed(uc.selector.relaxStep)
			list, err := uc.products.SearchByCategory(ctx, cb.Category, window.Min, window.Max, constants.CandidateLimit)
			slots[i] = slot{products: list, err: err}
		}(i, cb)
	}
	wg.Wait()

	candidates := make(map[entity.Category][]entity.Product, len(budgets))
	fetchErrs := make(map[entity.Category]error)
	for i, cb := range budgets {
		if slots[i].err != nil {
			fetchErrs[cb.Category] = slots[i].err
			candidates[cb.Category] = nil
			continue
		}
		candidates[cb.Category] = uc.extractor.AnnotateAll(slots[i].products)
	}
	return candidates, fetchErrs
}

func (uc *buildUseCase) trySuggestedBuild(ctx context.Context, req entity.BuildRequest, candidates map[entity.Category][]entity.Product) (*entity.BuildResult, bool) {
	suggestion, err := uc.ai.SuggestBuild(ctx, req, trimForSuggestion(req, candidates))
	if err != nil {
		logger.Warn("⚠️ build %s: ai suggestion unavailable: %v", req.ID, err)
		return nil, false
	}

	build, err := uc.assembleSuggestion(ctx, req, suggestion)
	if err != nil {
		logger.Warn("⚠️ build %s: ai suggestion rejected: %v", req.ID, err)
		return nil, false
	}

	report := uc.validator.Validate(build, req.Budget)
	if !report.OK() {
		violation, _ := report.FirstHard()
		logger.Warn("⚠️ build %s: ai suggestion failed validation: %s", req.ID, violation.Message)
		return nil, false
	}
	return &entity.BuildResult{RequestID: req.ID, Build: build, Warnings: report.Warnings}, true
}

// assembleSuggestion AI qaytargan SKU larni sborkaga yig'adi. Har bir
// SKU katalogda qayta tekshiriladi: mavjudligi, toifasi va ombori.
// Bitta SKU ham yaroqsiz bo'lsa butun taklif rad etiladi.
func (uc *buildUseCase) assembleSuggestion(ctx context.Context, req entity.BuildRequest, suggestion map[entity.Category]string) (*entity.Build, error) {
	build := entity.NewBuild(req.ID, req.Budget, req.Purpose)
	for _, cat := range entity.Categories() {
		sku, ok := suggestion[cat]
		if !ok || strings.TrimSpace(sku) == "" {
			return nil, fmt.Errorf("suggestion is missing category %s", cat)
		}
		sku = strings.TrimSpace(sku)

		p, err := uc.products.GetBySKU(ctx, sku)
		if err != nil {
			return nil, fmt.Errorf("sku %s: %w", sku, err)
		}
		if p.Category != cat {
			return nil, fmt.Errorf("sku %s belongs to %s, expected %s", sku, p.Category, cat)
		}
		if !p.InStock() {
			return nil, fmt.Errorf("sku %s is out of stock", sku)
		}
		build.SetComponent(uc.extractor.Annotate(p))
	}
	return build, nil
}

// trimForSuggestion prompt hajmini cheklash uchun har toifadan eng
// ko'pi bilan SuggestionLimit ta omborda bor tovar. Yuqori segment va
// katta byudjetda qimmatidan boshlab saralanadi.
func trimForSuggestion(req entity.BuildRequest, candidates map[entity.Category][]entity.Product) map[entity.Category][]entity.Product {
	sortDesc := req.Tier == entity.TierHigh || req.Budget > constants.HighBudgetThreshold

	out := make(map[entity.Category][]entity.Product, len(candidates))
	for _, cat := range entity.Categories() {
		var inStock []entity.Product
		for _, p := range candidates[cat] {
			if p.InStock() {
				inStock = append(inStock, p)
			}
		}
		sort.SliceStable(inStock, func(i, j int) bool {
			if sortDesc {
				return inStock[i].EffectivePrice() > inStock[j].EffectivePrice()
			}
			return inStock[i].EffectivePrice() < inStock[j].EffectivePrice()
		})
		if len(inStock) > constants.SuggestionLimit {
			inStock = inStock[:constants.SuggestionLimit]
		}
		out[cat] = inStock
	}
	return out
}

// selectionFailure no_candidates xatosini katalog xatosi va toifadan
// tavsiyalar bilan boyitadi
func (uc *buildUseCase) selectionFailure(ctx context.Context, req entity.BuildRequest, err error, fetchErrs map[entity.Category]error) error {
	var failure *entity.BuildFailure
	if !errors.As(err, &failure) {
		uc.appendLog(ctx, req, "failed", err.Error(), 0)
		return err
	}
	if failure.Code == entity.FailureNoCandidates && failure.Category != "" {
		if ferr, ok := fetchErrs[failure.Category]; ok {
			failure.Message = fmt.Sprintf("catalog query failed: %v", ferr)
		}
		failure.Suggestions = uc.fallbackSuggestions(ctx, failure.Category)
	}
	uc.appendLog(ctx, req, "failed", failure.Error(), 0)
	return failure
}

// fallbackSuggestions muammoli toifadan narx chegarasisiz bir nechta
// arzon tovar: foydalanuvchi byudjetni to'g'rilashi uchun
func (uc *buildUseCase) fallbackSuggestions(ctx context.Context, cat entity.Category) []entity.Product {
	list, err := uc.products.SearchByCategory(ctx, cat, 0, 0, constants.CandidateLimit)
	if err != nil {
		return nil
	}
	var inStock []entity.Product
	for _, p := range list {
		if p.InStock() {
			inStock = append(inStock, p)
		}
	}
	sort.SliceStable(inStock, func(i, j int) bool {
		return inStock[i].EffectivePrice() < inStock[j].EffectivePrice()
	})
	if len(inStock) > constants.FallbackSuggestionLimit {
		inStock = inStock[:constants.FallbackSuggestionLimit]
	}
	return inStock
}

func relaxAll(budgets []entity.CategoryBudget, step float64) []entity.CategoryBudget {
	out := make([]entity.CategoryBudget, len(budgets))
	for i, cb := range budgets {
		out[i] = cb.Relaxed(step)
	}
	return out
}

func (uc *buildUseCase) appendLog(ctx context.Context, req entity.BuildRequest, outcome, detail string, total float64) {
	if uc.logs == nil {
		return
	}
	rec := entity.RequestLog{
		ID:        req.ID,
		ChatID:    req.ChatID,
		Query:     req.Requirements,
		Intent:    string(entity.IntentPCBuild),
		Outcome:   outcome,
		Detail:    detail,
		Total:     total,
		CreatedAt: time.Now(),
	}
	if err := uc.logs.Append(ctx, rec); err != nil {
		logger.Warn("⚠️ request log append failed: %v", err)
	}
}
