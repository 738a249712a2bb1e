package usecase

import (
	"errors"
	"testing"

	"github.com/yourusername/pc-build-assistant/internal/domain/entity"
)

func newTestAllocator(t *testing.T) *Allocator {
	t.Helper()
	a, err := NewAllocator(entity.DefaultAllocationTable())
	if err != nil {
		t.Fatalf("NewAllocator returned error: %v", err)
	}
	return a
}

func TestAllocate_WeightedTargets(t *testing.T) {
	a := newTestAllocator(t)

	budgets, err := a.Allocate(500000, "")
	if err != nil {
		t.Fatalf("Allocate returned error: %v", err)
	}
	if len(budgets) != 6 {
		t.Fatalf("expected 6 category budgets, got %d", len(budgets))
	}

	targets := map[entity.Category]float64{}
	sum := 0.0
	for _, cb := range budgets {
		targets[cb.Category] = cb.Target
		sum += cb.Target
	}
	if targets[entity.CategoryGPU] != 175000 {
		t.Fatalf("gpu target: expected 175000, got %.0f", targets[entity.CategoryGPU])
	}
	if targets[entity.CategoryCPU] != 125000 {
		t.Fatalf("cpu target: expected 125000, got %.0f", targets[entity.CategoryCPU])
	}
	if sum < 499999 || sum > 500001 {
		t.Fatalf("targets should sum to the total budget, got %.0f", sum)
	}
}

func TestAllocate_BandsBracketTargets(t *testing.T) {
	a := newTestAllocator(t)

	budgets, err := a.Allocate(500000, "")
	if err != nil {
		t.Fatalf("Allocate returned error: %v", err)
	}
	for _, cb := range budgets {
		if cb.Min > cb.Target || cb.Target > cb.Max {
			t.Fatalf("%s: band [%.0f, %.0f] does not bracket target %.0f", cb.Category, cb.Min, cb.Max, cb.Target)
		}
		if cb.Min <= 0 {
			t.Fatalf("%s: band min should be positive, got %.0f", cb.Category, cb.Min)
		}
	}
}

func TestAllocate_BelowMinimum_ReturnsInfeasible(t *testing.T) {
	a := newTestAllocator(t)

	_, err := a.Allocate(100000, "")
	if err == nil {
		t.Fatalf("expected infeasible budget error")
	}
	var failure *entity.BuildFailure
	if !errors.As(err, &failure) {
		t.Fatalf("expected BuildFailure, got %T", err)
	}
	if failure.Code != entity.FailureInfeasibleBudget {
		t.Fatalf("expected %s, got %s", entity.FailureInfeasibleBudget, failure.Code)
	}
}

func TestAllocate_TierFallback(t *testing.T) {
	a := newTestAllocator(t)

	budgets, err := a.Allocate(0, entity.TierMid)
	if err != nil {
		t.Fatalf("Allocate returned error: %v", err)
	}
	if len(budgets) != 6 {
		t.Fatalf("expected 6 category budgets, got %d", len(budgets))
	}
	for _, cb := range budgets {
		if cb.Min <= 0 || cb.Max <= cb.Min {
			t.Fatalf("%s: invalid tier bracket [%.0f, %.0f]", cb.Category, cb.Min, cb.Max)
		}
		if cb.Target != (cb.Min+cb.Max)/2 {
			t.Fatalf("%s: tier target should be the bracket midpoint", cb.Category)
		}
	}
}

func TestAllocate_TierBracketsGrow(t *testing.T) {
	a := newTestAllocator(t)

	budget, _ := a.Allocate(0, entity.TierBudget)
	high, _ := a.Allocate(0, entity.TierHigh)
	for i := range budget {
		if budget[i].Target >= high[i].Target {
			t.Fatalf("%s: budget tier target %.0f should be below high tier target %.0f",
				budget[i].Category, budget[i].Target, high[i].Target)
		}
	}
}

func TestAllocate_InvalidInput(t *testing.T) {
	a := newTestAllocator(t)

	cases := []struct {
		name  string
		total float64
		tier  entity.Tier
	}{
		{"negative budget", -1000, ""},
		{"no budget and no tier", 0, ""},
		{"unknown tier", 0, "ultra"},
	}
	for _, tc := range cases {
		_, err := a.Allocate(tc.total, tc.tier)
		if err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
		var failure *entity.BuildFailure
		if !errors.As(err, &failure) {
			t.Fatalf("%s: expected BuildFailure, got %T", tc.name, err)
		}
		if failure.Code != entity.FailureInvalidInput {
			t.Fatalf("%s: expected %s, got %s", tc.name, entity.FailureInvalidInput, failure.Code)
		}
	}
}

func TestDefaultAllocationTable_WeightsSumToOne(t *testing.T) {
	table := entity.DefaultAllocationTable()
	if err := table.Validate(); err != nil {
		t.Fatalf("default table should validate: %v", err)
	}

	sum := 0.0
	for _, ca := range table.Categories {
		sum += ca.Weight
	}
	if sum < 0.999999 || sum > 1.000001 {
		t.Fatalf("weights should sum to 1.0, got %f", sum)
	}
}

func TestNewAllocator_RejectsBrokenTable(t *testing.T) {
	table := entity.DefaultAllocationTable()
	table.Categories[0].Weight += 0.1 // yig'indi 1.0 dan chiqadi
	if _, err := NewAllocator(table); err == nil {
		t.Fatalf("expected error for weights not summing to 1.0")
	}
}
