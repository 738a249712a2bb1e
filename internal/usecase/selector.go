package usecase

import (
	"fmt"
	"strings"

	"github.com/yourusername/pc-build-assistant/internal/domain/constants"
	"github.com/yourusername/pc-build-assistant/internal/domain/entity"
)

// Selector har toifadagi kandidatlar ichidan bittadan tovar tanlaydi.
// Tanlash cheklangan tanlov, to'liq qidiruv emas: random yo'q, teng
// narxlarda SKU bo'yicha kichigi olinadi, shuning uchun bir xil kirish
// har doim bir xil sborka beradi. Kandidat ro'yxatlari va byudjetlar
// o'zgartirilmaydi.
type Selector struct {
	relaxStep float64
}

// NewSelector yangi Selector yaratish. relaxStep band bo'sh chiqqanda
// oraliqni qo'shimcha kengaytirish ulushi.
func NewSelector(relaxStep float64) *Selector {
	if relaxStep <= 0 {
		relaxStep = 0.15
	}
	return &Selector{relaxStep: relaxStep}
}

// Select sborka yig'ish. Kandidatlar Extractor dan o'tgan bo'lishi
// kerak. Biror toifada mos tovar qolmasa tiplashtirilgan
// no_candidates xatosi qaytadi, toifa jimgina tashlab ketilmaydi.
func (s *Selector) Select(req entity.BuildRequest, budgets []entity.CategoryBudget, candidates map[entity.Category][]entity.Product) (*entity.Build, error) {
	if len(budgets) != 6 {
		return nil, entity.NewInvalidInputFailure(fmt.Sprintf("expected 6 category budgets, got %d", len(budgets)))
	}

	bands := make(map[entity.Category]entity.CategoryBudget, len(budgets))
	filtered := make(map[entity.Category][]entity.Product, len(budgets))
	for _, cb := range budgets {
		bands[cb.Category] = cb
		list := s.filterByBand(candidates[cb.Category], cb)
		if len(list) == 0 {
			return nil, entity.NewNoCandidatesFailure(cb.Category, "no in-stock candidates in price band")
		}
		filtered[cb.Category] = list
	}

	build := entity.NewBuild(req.ID, req.Budget, req.Purpose)

	// CPU va GPU birinchi tanlanadi: qolgan toifalar ularga bog'liq
	var cpu, gpu entity.Product
	if req.Purpose == entity.PurposeWork {
		gpu = pickCheapest(filtered[entity.CategoryGPU])
		cpu = pickCheapest(filtered[entity.CategoryCPU])
	} else {
		gpu = pickPriciest(filtered[entity.CategoryGPU])
		cpu = pickBalancedCPU(filtered[entity.CategoryCPU], gpu.EffectivePrice())
	}
	build.SetComponent(cpu)
	build.SetComponent(gpu)

	// Motherboard: socket filtri faqat CPU socketi ma'lum bo'lganda.
	// Socketi noma'lum plata chiqarib tashlanmaydi.
	boards := filtered[entity.CategoryMotherboard]
	if cpu.HasSocket() {
		boards = filterBySocket(boards, cpu.Socket)
		if len(boards) == 0 {
			return nil, entity.NewNoCandidatesFailure(entity.CategoryMotherboard,
				fmt.Sprintf("no boards matching socket %s", cpu.Socket))
		}
	}
	build.SetComponent(pickClosest(boards, bands[entity.CategoryMotherboard].Target, nil))

	// PSU: GPU quvvat talabi ma'lum bo'lsa zaxira bilan filtrlanadi
	psus := filtered[entity.CategoryPSU]
	if gpu.HasPowerReq() {
		required := gpu.PowerReq + constants.PSUSafetyMarginW
		psus = filterByWattage(psus, required)
		if len(psus) == 0 {
			return nil, entity.NewNoCandidatesFailure(entity.CategoryPSU,
				fmt.Sprintf("no units with at least %dW", required))
		}
	}
	build.SetComponent(pickClosest(psus, bands[entity.CategoryPSU].Target, nil))

	// SSD va korpus: narx bo'yicha, teng bo'lsa tanlangan brendlar afzal
	brands := selectedBrands(build)
	build.SetComponent(pickClosest(filtered[entity.CategorySSD], bands[entity.CategorySSD].Target, brands))
	build.SetComponent(pickClosest(filtered[entity.CategoryCase], bands[entity.CategoryCase].Target, brands))

	if req.Budget > 0 {
		s.fitToBudget(build, req.Budget, bands, filtered)
	}
	return build, nil
}

// filterByBand omborda bor va oraliq ichidagi kandidatlar. Bo'sh
// chiqsa bitta nazorat qilingan kengaytirish: band relaxStep ga
// kengayadi. Undan keyin ham bo'sh bo'lsa bo'sh qaytadi.
func (s *Selector) filterByBand(list []entity.Product, cb entity.CategoryBudget) []entity.Product {
	out := inBand(list, cb)
	if len(out) == 0 {
		out = inBand(list, cb.Relaxed(s.relaxStep))
	}
	return out
}

func inBand(list []entity.Product, cb entity.CategoryBudget) []entity.Product {
	var out []entity.Product
	for _, p := range list {
		if p.InStock() && cb.Contains(p.EffectivePrice()) {
			out = append(out, p)
		}
	}
	return out
}

func filterBySocket(boards []entity.Product, socket string) []entity.Product {
	var out []entity.Product
	for _, b := range boards {
		if !b.HasSocket() || b.Socket == socket {
			out = append(out, b)
		}
	}
	return out
}

func filterByWattage(psus []entity.Product, required int) []entity.Product {
	var out []entity.Product
	for _, p := range psus {
		if !p.HasWattage() || p.Wattage >= required {
			out = append(out, p)
		}
	}
	return out
}

func pickCheapest(list []entity.Product) entity.Product {
	best := list[0]
	for _, p := range list[1:] {
		if p.EffectivePrice() < best.EffectivePrice() ||
			(p.EffectivePrice() == best.EffectivePrice() && p.SKU < best.SKU) {
			best = p
		}
	}
	return best
}

func pickPriciest(list []entity.Product) entity.Product {
	best := list[0]
	for _, p := range list[1:] {
		if p.EffectivePrice() > best.EffectivePrice() ||
			(p.EffectivePrice() == best.EffectivePrice() && p.SKU < best.SKU) {
			best = p
		}
	}
	return best
}

// pickBalancedCPU GPU narxiga 1:1.2-1.5 nisbatga eng yaqin protsessor.
// Nisbat oraliq ichida bo'lganlardan qimmatrog'i olinadi.
func pickBalancedCPU(cpus []entity.Product, gpuPrice float64) entity.Product {
	best := cpus[0]
	bestPenalty := ratioPenalty(gpuPrice, best.EffectivePrice())
	for _, p := range cpus[1:] {
		penalty := ratioPenalty(gpuPrice, p.EffectivePrice())
		switch {
		case penalty < bestPenalty:
			best, bestPenalty = p, penalty
		case penalty == bestPenalty && p.EffectivePrice() > best.EffectivePrice():
			best = p
		case penalty == bestPenalty && p.EffectivePrice() == best.EffectivePrice() && p.SKU < best.SKU:
			best = p
		}
	}
	return best
}

// ratioPenalty gpu/cpu nisbati oraliqdan qancha chiqib ketgani
func ratioPenalty(gpuPrice, cpuPrice float64) float64 {
	if cpuPrice <= 0 {
		return constants.RatioMax
	}
	r := gpuPrice / cpuPrice
	if r < constants.RatioMin {
		return constants.RatioMin - r
	}
	if r > constants.RatioMax {
		return r - constants.RatioMax
	}
	return 0
}

// pickClosest targetga eng yaqin narxli tovar. Masofa teng bo'lsa
// avval brend mosligi, keyin SKU hal qiladi.
func pickClosest(list []entity.Product, target float64, preferredBrands map[string]bool) entity.Product {
	best := list[0]
	bestDist := absFloat(best.EffectivePrice() - target)
	for _, p := range list[1:] {
		dist := absFloat(p.EffectivePrice() - target)
		switch {
		case dist < bestDist:
			best, bestDist = p, dist
		case dist == bestDist && brandMatch(p, preferredBrands) && !brandMatch(best, preferredBrands):
			best = p
		case dist == bestDist && brandMatch(p, preferredBrands) == brandMatch(best, preferredBrands) && p.SKU < best.SKU:
			best = p
		}
	}
	return best
}

func brandMatch(p entity.Product, brands map[string]bool) bool {
	if len(brands) == 0 || p.Brand == "" {
		return false
	}
	return brands[normalizeBrand(p.Brand)]
}

func selectedBrands(build *entity.Build) map[string]bool {
	brands := make(map[string]bool)
	for _, cat := range entity.Categories() {
		if p, ok := build.Component(cat); ok && p.Brand != "" {
			brands[normalizeBrand(p.Brand)] = true
		}
	}
	return brands
}

func normalizeBrand(brand string) string {
	return strings.ToLower(strings.TrimSpace(brand))
}

// fitToBudget umumiy narx byudjetdan oshsa targetdan eng ko'p oshgan
// komponentni bosqichma-bosqich arzonrog'iga almashtiradi. Har qadam
// umumiy narxni qat'iy kamaytiradi, shuning uchun sikl chekli.
// Almashtirish imkoni qolmasa sborka shu holicha qoladi; yakuniy
// qarorni Validator beradi.
func (s *Selector) fitToBudget(build *entity.Build, budget float64, bands map[entity.Category]entity.CategoryBudget, filtered map[entity.Category][]entity.Product) {
	for build.TotalPrice() > budget {
		if !s.downgradeOnce(build, bands, filtered) {
			return
		}
	}
}

func (s *Selector) downgradeOnce(build *entity.Build, bands map[entity.Category]entity.CategoryBudget, filtered map[entity.Category][]entity.Product) bool {
	var bestCat entity.Category
	var bestAlt entity.Product
	bestOver := 0.0

	for _, cat := range entity.Categories() {
		cur, ok := build.Component(cat)
		if !ok {
			continue
		}
		alt, ok := cheaperAlternative(cat, cur, build, filtered[cat])
		if !ok {
			continue
		}
		over := cur.EffectivePrice() - bands[cat].Target
		if bestCat == "" || over > bestOver {
			bestCat, bestAlt, bestOver = cat, alt, over
		}
	}
	if bestCat == "" {
		return false
	}
	build.SetComponent(bestAlt)
	return true
}

// cheaperAlternative joriy tanlovdan arzonroq, lekin moslikni
// buzmaydigan eng yaqin variant
func cheaperAlternative(cat entity.Category, cur entity.Product, build *entity.Build, list []entity.Product) (entity.Product, bool) {
	var best entity.Product
	found := false
	for _, p := range list {
		if p.EffectivePrice() >= cur.EffectivePrice() {
			continue
		}
		if !swapKeepsCompatibility(cat, p, build) {
			continue
		}
		if !found || p.EffectivePrice() > best.EffectivePrice() ||
			(p.EffectivePrice() == best.EffectivePrice() && p.SKU < best.SKU) {
			best, found = p, true
		}
	}
	return best, found
}

func swapKeepsCompatibility(cat entity.Category, p entity.Product, build *entity.Build) bool {
	switch cat {
	case entity.CategoryCPU:
		if board, ok := build.Component(entity.CategoryMotherboard); ok {
			if p.HasSocket() && board.HasSocket() && p.Socket != board.Socket {
				return false
			}
		}
	case entity.CategoryMotherboard:
		if cpu, ok := build.Component(entity.CategoryCPU); ok {
			if p.HasSocket() && cpu.HasSocket() && p.Socket != cpu.Socket {
				return false
			}
		}
	case entity.CategoryGPU:
		if psu, ok := build.Component(entity.CategoryPSU); ok {
			if p.HasPowerReq() && psu.HasWattage() && psu.Wattage < p.PowerReq+constants.PSUSafetyMarginW {
				return false
			}
		}
	case entity.CategoryPSU:
		if gpu, ok := build.Component(entity.CategoryGPU); ok {
			if p.HasWattage() && gpu.HasPowerReq() && p.Wattage < gpu.PowerReq+constants.PSUSafetyMarginW {
				return false
			}
		}
	}
	return true
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
