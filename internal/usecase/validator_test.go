package usecase

import (
	"testing"

	"github.com/yourusername/pc-build-assistant/internal/domain/entity"
)

func healthyBuild() *entity.Build {
	build := entity.NewBuild("req-1", 500000, entity.PurposeGaming)

	gpu := prod("101", "Palit RTX 4070 Gaming 12GB", entity.CategoryGPU, 175000, 3)
	gpu.PowerReq = 300
	cpu := prod("201", "AMD Ryzen 7 5800X AM4", entity.CategoryCPU, 125000, 4)
	cpu.Socket = "AM4"
	mb := prod("301", "Gigabyte B550 AORUS Elite AM4", entity.CategoryMotherboard, 75000, 2)
	mb.Socket = "AM4"
	psu := prod("501", "DeepCool PQ650M 650W", entity.CategoryPSU, 50000, 4)
	psu.Wattage = 650

	build.SetComponent(gpu)
	build.SetComponent(cpu)
	build.SetComponent(mb)
	build.SetComponent(prod("401", "Samsung 970 EVO Plus 1TB", entity.CategorySSD, 50000, 10))
	build.SetComponent(psu)
	build.SetComponent(prod("601", "Zalman N4 Black", entity.CategoryCase, 25000, 5))
	return build
}

func hasViolation(report entity.ValidationReport, code entity.FailureCode) bool {
	for _, v := range report.Violations {
		if v.Code == code {
			return true
		}
	}
	return false
}

func TestValidate_HealthyBuildPasses(t *testing.T) {
	v := NewValidator()

	report := v.Validate(healthyBuild(), 500000)
	if !report.OK() {
		t.Fatalf("healthy build should pass, violations: %+v", report.Violations)
	}
	if len(report.Warnings) != 0 {
		t.Fatalf("expected no warnings, got %+v", report.Warnings)
	}
}

func TestValidate_PSUBelowRequiredWattage(t *testing.T) {
	v := NewValidator()

	build := healthyBuild()
	gpu, _ := build.Component(entity.CategoryGPU)
	gpu.PowerReq = 320
	build.SetComponent(gpu)
	psu, _ := build.Component(entity.CategoryPSU)
	psu.Wattage = 450 // kerak: 320 + 150 = 470
	build.SetComponent(psu)

	report := v.Validate(build, 500000)
	if !hasViolation(report, entity.FailureInsufficientPSU) {
		t.Fatalf("450W unit should fail for a 320W gpu, report: %+v", report)
	}

	psu.Wattage = 550
	build.SetComponent(psu)
	if report := v.Validate(build, 500000); !report.OK() {
		t.Fatalf("550W unit should pass for a 320W gpu, violations: %+v", report.Violations)
	}
}

func TestValidate_SocketMismatch(t *testing.T) {
	v := NewValidator()

	build := healthyBuild()
	mb, _ := build.Component(entity.CategoryMotherboard)
	mb.Socket = "LGA1700"
	build.SetComponent(mb)

	report := v.Validate(build, 500000)
	if !hasViolation(report, entity.FailureSocketMismatch) {
		t.Fatalf("expected socket_mismatch, report: %+v", report)
	}
}

func TestValidate_UnknownSocketIsNotAMismatch(t *testing.T) {
	v := NewValidator()

	build := healthyBuild()
	mb, _ := build.Component(entity.CategoryMotherboard)
	mb.Socket = ""
	build.SetComponent(mb)

	if report := v.Validate(build, 500000); !report.OK() {
		t.Fatalf("unknown socket should not fail, violations: %+v", report.Violations)
	}
}

func TestValidate_OverBudget(t *testing.T) {
	v := NewValidator()

	report := v.Validate(healthyBuild(), 400000)
	if !hasViolation(report, entity.FailureOverBudget) {
		t.Fatalf("expected over_budget at total 500000 vs budget 400000, report: %+v", report)
	}
}

func TestValidate_NoBudgetRuleWithoutBudget(t *testing.T) {
	v := NewValidator()

	// Tier bo'yicha yig'ilgan sborka: raqamli byudjet yo'q
	if report := v.Validate(healthyBuild(), 0); !report.OK() {
		t.Fatalf("budget rule should be skipped without a budget, violations: %+v", report.Violations)
	}
}

func TestValidate_RatioImbalanceIsSoft(t *testing.T) {
	v := NewValidator()

	build := healthyBuild()
	cpu, _ := build.Component(entity.CategoryCPU)
	cpu.Price = 50000 // gpu/cpu = 3.5, oraliq 1.2-1.5 dan tashqarida
	build.SetComponent(cpu)

	report := v.Validate(build, 500000)
	if !report.OK() {
		t.Fatalf("ratio imbalance must stay a warning, violations: %+v", report.Violations)
	}
	if len(report.Warnings) != 1 || report.Warnings[0].Code != entity.FailureRatioImbalance {
		t.Fatalf("expected a single ratio warning, got %+v", report.Warnings)
	}
}

func TestValidate_ChecksAreIndependent(t *testing.T) {
	v := NewValidator()

	build := healthyBuild()
	mb, _ := build.Component(entity.CategoryMotherboard)
	mb.Socket = "LGA1700"
	build.SetComponent(mb)
	psu, _ := build.Component(entity.CategoryPSU)
	psu.Wattage = 400
	build.SetComponent(psu)

	report := v.Validate(build, 400000)
	if !hasViolation(report, entity.FailureSocketMismatch) ||
		!hasViolation(report, entity.FailureInsufficientPSU) ||
		!hasViolation(report, entity.FailureOverBudget) {
		t.Fatalf("all three violations should be reported together, got %+v", report.Violations)
	}
}

func TestValidate_MissingCategory(t *testing.T) {
	v := NewValidator()

	build := healthyBuild()
	delete(build.Components, entity.CategoryCase)

	report := v.Validate(build, 500000)
	if !hasViolation(report, entity.FailureNoCandidates) {
		t.Fatalf("missing category should be a hard violation, report: %+v", report)
	}
}
