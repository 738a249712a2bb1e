package usecase

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/yourusername/pc-build-assistant/internal/domain/constants"
	"github.com/yourusername/pc-build-assistant/internal/domain/entity"
	"github.com/yourusername/pc-build-assistant/internal/domain/repository"
	"github.com/yourusername/pc-build-assistant/pkg/logger"
)

var (
	skuMentionRe = regexp.MustCompile(`(?i)sku[:\s]*(\d+)`)

	// Byudjet formatlari: "500k", "500к", "1.2m", "1 млн",
	// "500 000", "500,000" va oddiy katta raqam
	budgetShorthandKRe = regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*(?:k|к|тыс)`)
	budgetShorthandMRe = regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*(?:m|млн|mln)`)
	budgetGroupedRe    = regexp.MustCompile(`\d{1,3}(?:[ ,.]\d{3})+`)
	budgetPlainRe      = regexp.MustCompile(`\d{5,8}`)
)

// IntentUseCase xabar tahlili uchun interface
type IntentUseCase interface {
	// Classify xabardan intent, byudjet, tier va maqsadni aniqlaydi.
	// AI mavjud bo'lmasa regex/kalit so'z fallback ishlaydi, shuning
	// uchun natija har doim qaytadi.
	Classify(ctx context.Context, userID int64, text string) (entity.IntentResult, error)
}

type intentUseCase struct {
	ai    repository.AIRepository
	chats repository.ChatRepository
}

// NewIntentUseCase yangi IntentUseCase yaratish. ai nil bo'lishi mumkin.
func NewIntentUseCase(ai repository.AIRepository, chats repository.ChatRepository) IntentUseCase {
	return &intentUseCase{ai: ai, chats: chats}
}

func (u *intentUseCase) Classify(ctx context.Context, userID int64, text string) (entity.IntentResult, error) {
	// SKU tilga olingan bo'lsa klassifikatsiya shart emas:
	// to'g'ridan-to'g'ri katalogdan qidiriladi
	if sku, ok := ExtractSKUMention(text); ok {
		return entity.IntentResult{Intent: entity.IntentProductSearch, SearchQuery: sku}, nil
	}

	if u.ai == nil {
		return u.normalize(fallbackClassify(text), text), nil
	}

	var history []entity.Message
	if u.chats != nil {
		if h, err := u.chats.GetHistory(ctx, userID, constants.DefaultMaxHistoryMessages); err == nil {
			history = h
		}
	}

	result, err := u.ai.ClassifyIntent(ctx, text, history)
	if err != nil {
		logger.Warn("⚠️ intent classifier unavailable, using fallback: %v", err)
		return u.normalize(fallbackClassify(text), text), nil
	}
	return u.normalize(result, text), nil
}

// normalize klassifikator chiqishini to'g'rilaydi: maqsad bo'sh
// bo'lmasin, byudjetsiz va tiersiz sborka so'rovi byudjet so'rashga
// aylanadi.
func (u *intentUseCase) normalize(result entity.IntentResult, text string) entity.IntentResult {
	if result.Purpose == "" {
		result.Purpose = detectPurpose(text)
	}
	if result.Intent == entity.IntentPCBuild && !result.HasBudget() {
		if b := extractBudget(text); b > 0 {
			result.Budget = b
		}
	}
	if result.Intent == entity.IntentPCBuild && !result.HasBudget() && result.Tier == "" {
		result.Intent = entity.IntentPCBudgetAsk
	}
	if result.Requirements == "" {
		result.Requirements = text
	}
	return result
}

// ExtractSKUMention "sku 12345" ko'rinishidagi aniq SKU murojaati
func ExtractSKUMention(text string) (string, bool) {
	match := skuMentionRe.FindStringSubmatch(text)
	if len(match) > 1 {
		return match[1], true
	}
	return "", false
}

// fallbackClassify AI siz klassifikatsiya: kalit so'zlar va regex.
// Aniqlik pastroq, lekin bot AI o'chiq holatda ham ishlayveradi.
func fallbackClassify(text string) entity.IntentResult {
	result := entity.IntentResult{Intent: entity.IntentGeneral, Requirements: text}
	lower := strings.ToLower(text)

	result.Budget = extractBudget(text)
	if result.Budget == 0 {
		result.Tier = detectTier(lower)
	}
	result.Purpose = detectPurpose(text)

	if isBuildRequest(lower) || (result.Budget > 0 && len(strings.Fields(lower)) <= 3) {
		result.Intent = entity.IntentPCBuild
		return result
	}
	if cat, ok := detectCategoryMention(lower); ok {
		result.Intent = entity.IntentProductSearch
		result.Category = cat
		result.SearchQuery = text
		return result
	}
	return result
}

// extractBudget matndan tenge summasini ajratish
func extractBudget(text string) float64 {
	lower := strings.ToLower(text)

	// BIRINCHI: "500k" / "500к" / "500 тыс"
	if m := budgetShorthandKRe.FindStringSubmatch(lower); len(m) > 1 {
		if num, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", "."), 64); err == nil {
			return num * 1000
		}
	}

	// IKKINCHI: "1.2m" / "1 млн"
	if m := budgetShorthandMRe.FindStringSubmatch(lower); len(m) > 1 {
		if num, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", "."), 64); err == nil {
			return num * 1000000
		}
	}

	// UCHINCHI: guruhlarga bo'lingan raqam "500 000" / "500,000"
	if m := budgetGroupedRe.FindString(lower); m != "" {
		clean := strings.NewReplacer(" ", "", ",", "", ".", "").Replace(m)
		if num, err := strconv.ParseFloat(clean, 64); err == nil {
			return num
		}
	}

	// TO'RTINCHI: oddiy katta raqam (tenge masshtabida kamida 5 xona)
	if m := budgetPlainRe.FindString(lower); m != "" {
		if num, err := strconv.ParseFloat(m, 64); err == nil {
			return num
		}
	}
	return 0
}

func detectTier(lower string) entity.Tier {
	switch {
	case containsAny(lower, "бюджетн", "byudjetli", "арзон", "arzon", "недорог", "дешев", "cheap"):
		return entity.TierBudget
	case containsAny(lower, "средн", "o'rta", "orta", "mid"):
		return entity.TierMid
	case containsAny(lower, "мощн", "топов", "kuchli", "zo'r", "премиум", "premium", "high-end", "haybatli"):
		return entity.TierHigh
	}
	return ""
}

func detectPurpose(text string) entity.BuildPurpose {
	lower := strings.ToLower(text)
	if containsAny(lower, "работ", "work", "ish uchun", "офис", "ofis", "монтаж", "montaj", "дизайн", "design", "программи", "разработ", "dasturlash") {
		return entity.PurposeWork
	}
	return entity.PurposeGaming
}

func isBuildRequest(lower string) bool {
	return containsAny(lower,
		"сборк", "собери", "собрать", "соберите",
		"yig'ib ber", "yig'ish", "kompyuter yig",
		"build", "пк", "pc", "компьютер", "kompyuter", "системный блок")
}

func detectCategoryMention(lower string) (entity.Category, bool) {
	switch {
	case containsAny(lower, "видеокарт", "videokarta", "gpu", "rtx", "geforce", "radeon"):
		return entity.CategoryGPU, true
	case containsAny(lower, "процессор", "protsessor", "cpu", "ryzen", "core i"):
		return entity.CategoryCPU, true
	case containsAny(lower, "материнск", "motherboard", "плата", "plata"):
		return entity.CategoryMotherboard, true
	case containsAny(lower, "ssd", "диск", "disk", "накопител"):
		return entity.CategorySSD, true
	case containsAny(lower, "блок питания", "psu", "quvvat bloki"):
		return entity.CategoryPSU, true
	case containsAny(lower, "корпус", "korpus", "case"):
		return entity.CategoryCase, true
	}
	return "", false
}
