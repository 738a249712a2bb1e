package usecase

import (
	"fmt"

	"github.com/yourusername/pc-build-assistant/internal/domain/entity"
)

// Allocator umumiy byudjetni oltita toifa bo'yicha narx oraliqlariga
// taqsimlaydi. Jadval konstruktorda bir marta tekshiriladi, keyin
// o'zgarmaydi.
type Allocator struct {
	table entity.AllocationTable
}

// NewAllocator yangi Allocator yaratish
func NewAllocator(table entity.AllocationTable) (*Allocator, error) {
	if err := table.Validate(); err != nil {
		return nil, fmt.Errorf("allocation table: %w", err)
	}
	return &Allocator{table: table}, nil
}

// Allocate byudjetni taqsimlash. Raqamli byudjet berilsa og'irlik
// asosida oraliqlar, berilmasa tier bo'yicha absolyut oraliqlar.
// Minimal chegaradan past byudjet infeasible_budget bilan qaytadi.
func (a *Allocator) Allocate(total float64, tier entity.Tier) ([]entity.CategoryBudget, error) {
	if total < 0 {
		return nil, entity.NewInvalidInputFailure(fmt.Sprintf("budget must not be negative, got %.0f", total))
	}
	if total == 0 {
		if tier == "" {
			return nil, entity.NewInvalidInputFailure("neither budget nor tier provided")
		}
		return a.allocateByTier(tier)
	}
	if total < a.table.MinimumViableTotal {
		return nil, entity.NewInfeasibleBudgetFailure(total, a.table.MinimumViableTotal)
	}

	out := make([]entity.CategoryBudget, 0, len(a.table.Categories))
	for _, ca := range a.table.Categories {
		target := total * ca.Weight
		out = append(out, entity.CategoryBudget{
			Category: ca.Category,
			Weight:   ca.Weight,
			Target:   target,
			Min:      target * (1 - a.table.Tolerance),
			Max:      target * (1 + a.table.Tolerance),
		})
	}
	return out, nil
}

func (a *Allocator) allocateByTier(tier entity.Tier) ([]entity.CategoryBudget, error) {
	normalized, ok := entity.ParseTier(string(tier))
	if !ok {
		return nil, entity.NewInvalidInputFailure(fmt.Sprintf("unknown tier %q", tier))
	}

	out := make([]entity.CategoryBudget, 0, len(a.table.Categories))
	for _, ca := range a.table.Categories {
		br, ok := ca.Tiers[normalized]
		if !ok {
			return nil, entity.NewInvalidInputFailure(fmt.Sprintf("no %s bracket for category %s", normalized, ca.Category))
		}
		out = append(out, entity.CategoryBudget{
			Category: ca.Category,
			Weight:   ca.Weight,
			Target:   (br.Min + br.Max) / 2,
			Min:      br.Min,
			Max:      br.Max,
		})
	}
	return out, nil
}

// RelaxStep jadvaldagi band kengaytirish qadami
func (a *Allocator) RelaxStep() float64 {
	return a.table.RelaxStep
}
