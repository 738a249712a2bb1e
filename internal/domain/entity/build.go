package entity

import (
	"strings"
	"time"
)

// Category komponent toifasi (oltita slot)
type Category string

const (
	CategoryGPU         Category = "gpu"
	CategoryCPU         Category = "cpu"
	CategoryMotherboard Category = "motherboard"
	CategorySSD         Category = "ssd"
	CategoryPSU         Category = "psu"
	CategoryCase        Category = "case"
)

// Categories oltita toifa, tanlash tartibida (CPU/GPU birinchi emas -
// bu Allocator tartibi; Selector o'z tartibini o'zi belgilaydi).
func Categories() []Category {
	return []Category{
		CategoryGPU,
		CategoryCPU,
		CategoryMotherboard,
		CategorySSD,
		CategoryPSU,
		CategoryCase,
	}
}

// ParseCategory matndan toifani aniqlash. Katalog va import
// fayllarida ruscha nomlar ham uchraydi.
func ParseCategory(s string) (Category, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "gpu", "videokarta", "видеокарты", "видеокарта", "graphics card":
		return CategoryGPU, true
	case "cpu", "protsessor", "процессоры", "процессор", "processor":
		return CategoryCPU, true
	case "motherboard", "mainboard", "материнские платы", "материнская плата":
		return CategoryMotherboard, true
	case "ssd", "твердотельные диски (ssd)", "твердотельный диск":
		return CategorySSD, true
	case "psu", "блоки питания", "блок питания", "power supply":
		return CategoryPSU, true
	case "case", "korpus", "корпуса", "корпус":
		return CategoryCase, true
	}
	return "", false
}

// CategoryBudget bitta toifa uchun hisoblangan narx oralig'i.
// Immutable: bir so'rov uchun bir marta hisoblanadi.
type CategoryBudget struct {
	Category Category `json:"category"`
	Weight   float64  `json:"weight"`
	Target   float64  `json:"target"`
	Min      float64  `json:"min"`
	Max      float64  `json:"max"`
}

// Contains narx oraliq ichidami
func (cb CategoryBudget) Contains(price float64) bool {
	return price >= cb.Min && price <= cb.Max
}

// Relaxed oraliqni step ulushiga kengaytirilgan nusxa qaytaradi.
// Min manfiy bo'lib ketmasligi kerak.
func (cb CategoryBudget) Relaxed(step float64) CategoryBudget {
	out := cb
	out.Min = cb.Min - cb.Target*step
	if out.Min < 0 {
		out.Min = 0
	}
	out.Max = cb.Max + cb.Target*step
	return out
}

// Build oltita toifaning har biriga bittadan tanlangan tovar
type Build struct {
	ID         string               `json:"id"`
	Components map[Category]Product `json:"components"`
	Budget     float64              `json:"budget"`
	Purpose    BuildPurpose         `json:"purpose"`
	CreatedAt  time.Time            `json:"created_at"`
}

// NewBuild bo'sh sborka yaratish
func NewBuild(id string, budget float64, purpose BuildPurpose) *Build {
	return &Build{
		ID:         id,
		Components: make(map[Category]Product, 6),
		Budget:     budget,
		Purpose:    purpose,
		CreatedAt:  time.Now(),
	}
}

// Component toifa bo'yicha tanlangan tovarni olish
func (b *Build) Component(cat Category) (Product, bool) {
	p, ok := b.Components[cat]
	return p, ok
}

// SetComponent toifaga tovar qo'yish (bitta toifa - bitta tovar)
func (b *Build) SetComponent(p Product) {
	b.Components[p.Category] = p
}

// TotalPrice umumiy narxni hisoblash
func (b *Build) TotalPrice() float64 {
	total := 0.0
	for _, p := range b.Components {
		total += p.EffectivePrice()
	}
	return total
}

// IsComplete oltita toifa ham to'ldirilganmi
func (b *Build) IsComplete() bool {
	for _, cat := range Categories() {
		if _, ok := b.Components[cat]; !ok {
			return false
		}
	}
	return len(b.Components) == 6
}

// MissingCategories to'ldirilmagan toifalar ro'yxati
func (b *Build) MissingCategories() []Category {
	var missing []Category
	for _, cat := range Categories() {
		if _, ok := b.Components[cat]; !ok {
			missing = append(missing, cat)
		}
	}
	return missing
}

// BuildResult muvaffaqiyatli sborka va unga tegishli ogohlantirishlar
type BuildResult struct {
	RequestID string      `json:"request_id"`
	Build     *Build      `json:"build"`
	Warnings  []Violation `json:"warnings,omitempty"`
	Relaxed   bool        `json:"relaxed,omitempty"`
}
