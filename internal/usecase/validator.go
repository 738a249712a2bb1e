package usecase

import (
	"fmt"

	"github.com/yourusername/pc-build-assistant/internal/domain/constants"
	"github.com/yourusername/pc-build-assistant/internal/domain/entity"
)

// Validator yig'ilgan sborkani tekshiradi. Har bir tekshiruv
// mustaqil va hammasi bajariladi: hisobotda barcha buzilishlar
// ko'rinadi. Validator hech qachon qayta tanlamaydi, bu pipeline
// zimmasida.
type Validator struct {
	psuMargin int
	ratioMin  float64
	ratioMax  float64
}

// NewValidator yangi Validator yaratish
func NewValidator() *Validator {
	return &Validator{
		psuMargin: constants.PSUSafetyMarginW,
		ratioMin:  constants.RatioMin,
		ratioMax:  constants.RatioMax,
	}
}

// Validate sborka hisoboti. budget <= 0 bo'lsa byudjet qoidasi
// tekshirilmaydi (tier bo'yicha yig'ilgan sborkalar uchun).
func (v *Validator) Validate(build *entity.Build, budget float64) entity.ValidationReport {
	var report entity.ValidationReport

	for _, cat := range entity.Categories() {
		if _, ok := build.Component(cat); !ok {
			report.Violations = append(report.Violations, entity.Violation{
				Code:     entity.FailureNoCandidates,
				Severity: entity.SeverityHard,
				Message:  fmt.Sprintf("category %s has no selected product", cat),
			})
		}
	}

	cpu, hasCPU := build.Component(entity.CategoryCPU)
	gpu, hasGPU := build.Component(entity.CategoryGPU)
	board, hasBoard := build.Component(entity.CategoryMotherboard)
	psu, hasPSU := build.Component(entity.CategoryPSU)

	// Socket: ikkala tomon ham ma'lum bo'lgandagina qattiq qoida.
	// Noma'lum socket "tekshirib bo'lmaydi" degani, "mos emas" emas.
	if hasCPU && hasBoard && cpu.HasSocket() && board.HasSocket() && cpu.Socket != board.Socket {
		report.Violations = append(report.Violations, entity.Violation{
			Code:     entity.FailureSocketMismatch,
			Severity: entity.SeverityHard,
			Message:  fmt.Sprintf("cpu socket %s does not match motherboard socket %s", cpu.Socket, board.Socket),
		})
	}

	if hasGPU && hasPSU && gpu.HasPowerReq() && psu.HasWattage() {
		required := gpu.PowerReq + v.psuMargin
		if psu.Wattage < required {
			report.Violations = append(report.Violations, entity.Violation{
				Code:     entity.FailureInsufficientPSU,
				Severity: entity.SeverityHard,
				Message:  fmt.Sprintf("psu %dW is below required %dW (gpu %dW + %dW margin)", psu.Wattage, required, gpu.PowerReq, v.psuMargin),
			})
		}
	}

	// CPU/GPU narx balansi - bottleneck haqida maslahat, qattiq
	// moslik qoidasi emas
	if hasCPU && hasGPU && cpu.EffectivePrice() > 0 {
		r := gpu.EffectivePrice() / cpu.EffectivePrice()
		if r < v.ratioMin || r > v.ratioMax {
			report.Warnings = append(report.Warnings, entity.Violation{
				Code:     entity.FailureRatioImbalance,
				Severity: entity.SeveritySoft,
				Message:  fmt.Sprintf("cpu/gpu price ratio 1:%.2f is outside 1:%.1f-1:%.1f", r, v.ratioMin, v.ratioMax),
			})
		}
	}

	if budget > 0 {
		total := build.TotalPrice()
		if total > budget {
			report.Violations = append(report.Violations, entity.Violation{
				Code:     entity.FailureOverBudget,
				Severity: entity.SeverityHard,
				Message:  fmt.Sprintf("total %.0f exceeds budget %.0f", total, budget),
			})
		}
	}

	return report
}
