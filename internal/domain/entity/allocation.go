package entity

import (
	"fmt"
	"math"
)

// PriceBracket tier uchun absolyut narx oralig'i
type PriceBracket struct {
	Min float64 `yaml:"min" json:"min"`
	Max float64 `yaml:"max" json:"max"`
}

// CategoryAllocation bitta toifaning deklarativ sozlamasi
type CategoryAllocation struct {
	Category Category              `yaml:"category" json:"category"`
	Weight   float64               `yaml:"weight" json:"weight"`
	Tiers    map[Tier]PriceBracket `yaml:"tiers" json:"tiers"`
}

// AllocationTable byudjet taqsimlash jadvali. Toifalar, og'irliklar va
// tier oraliqlari kod ichida sochilgan konstantalar emas, bitta jadval:
// kalibrovka o'zgarganda tanlash logikasiga tegilmaydi.
type AllocationTable struct {
	Tolerance          float64              `yaml:"tolerance" json:"tolerance"`
	RelaxStep          float64              `yaml:"relax_step" json:"relax_step"`
	MinimumViableTotal float64              `yaml:"minimum_viable_total" json:"minimum_viable_total"`
	Categories         []CategoryAllocation `yaml:"categories" json:"categories"`
}

// DefaultAllocationTable standart jadval. Tier oraliqlari taxminiy
// umumiy summalardan kelib chiqqan: budget 300 ming, mid 500 ming,
// high 900 ming tenge.
func DefaultAllocationTable() AllocationTable {
	return AllocationTable{
		Tolerance:          0.30,
		RelaxStep:          0.15,
		MinimumViableTotal: 150000,
		Categories: []CategoryAllocation{
			{
				Category: CategoryGPU,
				Weight:   0.35,
				Tiers: map[Tier]PriceBracket{
					TierBudget: {Min: 73000, Max: 137000},
					TierMid:    {Min: 122000, Max: 228000},
					TierHigh:   {Min: 220000, Max: 410000},
				},
			},
			{
				Category: CategoryCPU,
				Weight:   0.25,
				Tiers: map[Tier]PriceBracket{
					TierBudget: {Min: 52000, Max: 98000},
					TierMid:    {Min: 87000, Max: 163000},
					TierHigh:   {Min: 157000, Max: 293000},
				},
			},
			{
				Category: CategoryMotherboard,
				Weight:   0.15,
				Tiers: map[Tier]PriceBracket{
					TierBudget: {Min: 31000, Max: 59000},
					TierMid:    {Min: 52000, Max: 98000},
					TierHigh:   {Min: 94000, Max: 176000},
				},
			},
			{
				Category: CategorySSD,
				Weight:   0.10,
				Tiers: map[Tier]PriceBracket{
					TierBudget: {Min: 21000, Max: 39000},
					TierMid:    {Min: 35000, Max: 65000},
					TierHigh:   {Min: 63000, Max: 117000},
				},
			},
			{
				Category: CategoryPSU,
				Weight:   0.10,
				Tiers: map[Tier]PriceBracket{
					TierBudget: {Min: 21000, Max: 39000},
					TierMid:    {Min: 35000, Max: 65000},
					TierHigh:   {Min: 63000, Max: 117000},
				},
			},
			{
				Category: CategoryCase,
				Weight:   0.05,
				Tiers: map[Tier]PriceBracket{
					TierBudget: {Min: 10000, Max: 20000},
					TierMid:    {Min: 17000, Max: 33000},
					TierHigh:   {Min: 31000, Max: 59000},
				},
			},
		},
	}
}

// Allocation toifa sozlamasini olish
func (t AllocationTable) Allocation(cat Category) (CategoryAllocation, bool) {
	for _, ca := range t.Categories {
		if ca.Category == cat {
			return ca, true
		}
	}
	return CategoryAllocation{}, false
}

// Validate jadval yaroqliligini tekshirish: oltita toifa, har biri bir
// marta, og'irliklar yig'indisi 1.0.
func (t AllocationTable) Validate() error {
	if t.Tolerance <= 0 || t.Tolerance >= 1 {
		return fmt.Errorf("tolerance must be in (0, 1), got %v", t.Tolerance)
	}
	if t.RelaxStep <= 0 {
		return fmt.Errorf("relax_step must be positive, got %v", t.RelaxStep)
	}
	if t.MinimumViableTotal <= 0 {
		return fmt.Errorf("minimum_viable_total must be positive, got %v", t.MinimumViableTotal)
	}
	if len(t.Categories) != 6 {
		return fmt.Errorf("expected 6 categories, got %d", len(t.Categories))
	}

	seen := make(map[Category]bool, 6)
	sum := 0.0
	for _, ca := range t.Categories {
		if _, ok := ParseCategory(string(ca.Category)); !ok {
			return fmt.Errorf("unknown category %q", ca.Category)
		}
		if seen[ca.Category] {
			return fmt.Errorf("duplicate category %q", ca.Category)
		}
		seen[ca.Category] = true
		if ca.Weight <= 0 {
			return fmt.Errorf("category %q weight must be positive, got %v", ca.Category, ca.Weight)
		}
		sum += ca.Weight
	}
	if math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("category weights must sum to 1.0, got %v", sum)
	}
	return nil
}
