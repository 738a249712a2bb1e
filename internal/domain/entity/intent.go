package entity

import "strings"

// MessageIntent foydalanuvchi xabarining turi
type MessageIntent string

const (
	IntentProductSearch MessageIntent = "product_search"
	IntentFAQ           MessageIntent = "faq"
	IntentGeneral       MessageIntent = "general"
	IntentPCBuild       MessageIntent = "pc_build"
	IntentPCBudgetAsk   MessageIntent = "pc_budget_ask"
)

// ParseMessageIntent noma'lum qiymatlar general ga tushadi
func ParseMessageIntent(s string) MessageIntent {
	switch MessageIntent(strings.ToLower(strings.TrimSpace(s))) {
	case IntentProductSearch:
		return IntentProductSearch
	case IntentFAQ:
		return IntentFAQ
	case IntentPCBuild:
		return IntentPCBuild
	case IntentPCBudgetAsk:
		return IntentPCBudgetAsk
	default:
		return IntentGeneral
	}
}

// Tier narx segmenti, raqamli byudjet berilmaganda ishlatiladi
type Tier string

const (
	TierBudget Tier = "budget"
	TierMid    Tier = "mid"
	TierHigh   Tier = "high"
)

// ParseTier bo'sh yoki noma'lum qiymat uchun ok=false
func ParseTier(s string) (Tier, bool) {
	switch Tier(strings.ToLower(strings.TrimSpace(s))) {
	case TierBudget:
		return TierBudget, true
	case TierMid:
		return TierMid, true
	case TierHigh:
		return TierHigh, true
	}
	return "", false
}

// BuildPurpose sborka maqsadi, tanlash prioritetini belgilaydi
type BuildPurpose string

const (
	PurposeGaming BuildPurpose = "gaming"
	PurposeWork   BuildPurpose = "work"
)

// IntentResult klassifikator chiqishi. Core uni allaqachon parse
// qilingan kirish sifatida qabul qiladi: byudjet yo'qligi ham yaroqli
// holat.
type IntentResult struct {
	Intent       MessageIntent `json:"intent"`
	Category     Category      `json:"category,omitempty"`
	SearchQuery  string        `json:"search_query,omitempty"`
	Budget       float64       `json:"budget,omitempty"`
	Requirements string        `json:"requirements,omitempty"`
	Tier         Tier          `json:"build_tier,omitempty"`
	Purpose      BuildPurpose  `json:"purpose,omitempty"`
}

// HasBudget raqamli byudjet berilganmi
func (r IntentResult) HasBudget() bool {
	return r.Budget > 0
}

// BuildRequest pipeline kirishi. Barcha maydonlar so'rov doirasida
// yashaydi va so'rov tugashi bilan tashlab yuboriladi.
type BuildRequest struct {
	ID           string       `json:"id"`
	ChatID       int64        `json:"chat_id,omitempty"`
	Requirements string       `json:"requirements"`
	Budget       float64      `json:"budget"`
	Tier         Tier         `json:"tier,omitempty"`
	Purpose      BuildPurpose `json:"purpose"`
}
