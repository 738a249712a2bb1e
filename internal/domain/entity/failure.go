package entity

import "fmt"

// FailureCode sborka nima uchun chiqmaganini bildiradi
type FailureCode string

const (
	FailureInfeasibleBudget FailureCode = "infeasible_budget"
	FailureNoCandidates     FailureCode = "no_candidates"
	FailureSocketMismatch   FailureCode = "socket_mismatch"
	FailureInsufficientPSU  FailureCode = "insufficient_psu_wattage"
	FailureOverBudget       FailureCode = "over_budget"
	FailureInvalidInput     FailureCode = "invalid_input"

	// FailureRatioImbalance faqat warning sifatida ishlatiladi
	FailureRatioImbalance FailureCode = "price_ratio_imbalance"
)

// BuildFailure tiplashtirilgan xato natija. Jarayon uchun fatal emas -
// har doim chaqiruvchiga qiymat sifatida qaytariladi. Suggestions
// muammoli toifadan foydalanuvchiga ko'rsatish mumkin bo'lgan tovarlar.
type BuildFailure struct {
	Code        FailureCode `json:"code"`
	Category    Category    `json:"category,omitempty"`
	Message     string      `json:"message,omitempty"`
	Suggestions []Product   `json:"suggestions,omitempty"`
}

func (f *BuildFailure) Error() string {
	tag := string(f.Code)
	if f.Category != "" {
		tag = fmt.Sprintf("%s[%s]", f.Code, f.Category)
	}
	if f.Message == "" {
		return tag
	}
	return tag + ": " + f.Message
}

// NewInfeasibleBudgetFailure byudjet minimal chegaradan past
func NewInfeasibleBudgetFailure(total, minimum float64) *BuildFailure {
	return &BuildFailure{
		Code:    FailureInfeasibleBudget,
		Message: fmt.Sprintf("budget %.0f is below the minimum viable total %.0f", total, minimum),
	}
}

// NewNoCandidatesFailure toifada mos tovar topilmadi
func NewNoCandidatesFailure(cat Category, msg string) *BuildFailure {
	return &BuildFailure{Code: FailureNoCandidates, Category: cat, Message: msg}
}

// NewInvalidInputFailure kirish ma'lumoti yaroqsiz
func NewInvalidInputFailure(msg string) *BuildFailure {
	return &BuildFailure{Code: FailureInvalidInput, Message: msg}
}

// Severity qoida qattiqligi
type Severity string

const (
	SeverityHard Severity = "hard"
	SeveritySoft Severity = "soft"
)

// Violation Validator topgan bitta buzilish
type Violation struct {
	Code     FailureCode `json:"code"`
	Severity Severity    `json:"severity"`
	Message  string      `json:"message"`
}

// ValidationReport barcha tekshiruvlar natijasi. Tekshiruvlar
// mustaqil: birinchisi yiqilganda ham qolganlari ishlaydi.
type ValidationReport struct {
	Violations []Violation `json:"violations,omitempty"`
	Warnings   []Violation `json:"warnings,omitempty"`
}

// OK qattiq qoidalar buzilmaganmi (warnings hisobga olinmaydi)
func (r ValidationReport) OK() bool {
	return len(r.Violations) == 0
}

// FirstHard birinchi qattiq buzilishni olish
func (r ValidationReport) FirstHard() (Violation, bool) {
	if len(r.Violations) == 0 {
		return Violation{}, false
	}
	return r.Violations[0], true
}
