package storage

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/yourusername/pc-build-assistant/internal/domain/entity"
	"github.com/yourusername/pc-build-assistant/internal/domain/repository"
)

type memoryProductRepository struct {
	mu       sync.RWMutex
	products map[string]entity.Product // key: SKU
}

// NewMemoryProductRepository in-memory katalog yaratish. Import qilingan
// fayldan ishlaydigan rejim va testlar uchun.
func NewMemoryProductRepository() repository.ProductRepository {
	return &memoryProductRepository{
		products: make(map[string]entity.Product),
	}
}

var searchNormalizeRe = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// transliterateToLatin kirill harflarini lotinga o'tkazadi. Mijozlar
// brendlarni ruscha yozadi ("самсунг", "кингстон"), katalog esa lotin.
func transliterateToLatin(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	for _, r := range input {
		switch r {
		case 'а':
			b.WriteByte('a')
		case 'б':
			b.WriteByte('b')
		case 'в':
			b.WriteByte('v')
		case 'г', 'ғ':
			b.WriteByte('g')
		case 'д':
			b.WriteByte('d')
		case 'е', 'э':
			b.WriteByte('e')
		case 'ё':
			b.WriteString("yo")
		case 'ж':
			b.WriteString("zh")
		case 'з':
			b.WriteByte('z')
		case 'и', 'і':
			b.WriteByte('i')
		case 'й':
			b.WriteByte('y')
		case 'к':
			b.WriteByte('k')
		case 'қ':
			b.WriteByte('q')
		case 'л':
			b.WriteByte('l')
		case 'м':
			b.WriteByte('m')
		case 'н', 'ң':
			b.WriteByte('n')
		case 'о', 'ө':
			b.WriteByte('o')
		case 'п':
			b.WriteByte('p')
		case 'р':
			b.WriteByte('r')
		case 'с':
			b.WriteByte('s')
		case 'т':
			b.WriteByte('t')
		case 'у', 'ү', 'ұ':
			b.WriteByte('u')
		case 'ф':
			b.WriteByte('f')
		case 'х', 'һ':
			b.WriteByte('h')
		case 'ц':
			b.WriteString("ts")
		case 'ч':
			b.WriteString("ch")
		case 'ш':
			b.WriteString("sh")
		case 'щ':
			b.WriteString("shch")
		case 'ъ', 'ь':
			continue
		case 'ы':
			b.WriteByte('y')
		case 'ю':
			b.WriteString("yu")
		case 'я':
			b.WriteString("ya")
		case 'ә':
			b.WriteByte('a')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func normalizeSearchText(input string) string {
	input = strings.ToLower(input)
	input = transliterateToLatin(input)
	input = searchNormalizeRe.ReplaceAllString(input, " ")
	return strings.TrimSpace(input)
}

func compactSearchText(input string) string {
	input = strings.ToLower(input)
	input = transliterateToLatin(input)
	return searchNormalizeRe.ReplaceAllString(input, "")
}

func productSearchText(p entity.Product) string {
	var b strings.Builder
	b.WriteString(p.Name)
	b.WriteString(" ")
	b.WriteString(p.Brand)
	b.WriteString(" ")
	b.WriteString(string(p.Category))
	b.WriteString(" ")
	b.WriteString(p.Description)
	return b.String()
}

func ngramSet(input string, n int) map[string]struct{} {
	runes := []rune(input)
	if len(runes) == 0 || n <= 0 {
		return nil
	}
	if len(runes) < n {
		return map[string]struct{}{string(runes): {}}
	}
	set := make(map[string]struct{}, len(runes)-n+1)
	for i := 0; i <= len(runes)-n; i++ {
		set[string(runes[i:i+n])] = struct{}{}
	}
	return set
}

func ngramSimilarity(a, b string, n int) float64 {
	setA := ngramSet(a, n)
	setB := ngramSet(b, n)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}
	inter := 0
	for gram := range setA {
		if _, ok := setB[gram]; ok {
			inter++
		}
	}
	union := len(setA) + len(setB) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

func hasLetter(token string) bool {
	for _, r := range token {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

// maxEditDistance so'z uzunligiga qarab ruxsat etilgan xato soni
func maxEditDistance(token string) int {
	l := len([]rune(token))
	switch {
	case l <= 3:
		return 0
	case l <= 5:
		return 1
	case l <= 8:
		return 2
	default:
		return 3
	}
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

// editDistanceWithin Levenshtein masofasi max dan oshmasa qaytaradi.
// Qatorlar uzunligi farqi max dan katta bo'lsa hisoblamay chiqadi.
func editDistanceWithin(a, b string, max int) (int, bool) {
	if max < 0 {
		return 0, false
	}
	if a == b {
		return 0, true
	}
	ra := []rune(a)
	rb := []rune(b)
	diff := len(ra) - len(rb)
	if diff < 0 {
		diff = -diff
	}
	if diff > max {
		return 0, false
	}
	if len(rb) > len(ra) {
		ra, rb = rb, ra
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := 0; j <= len(rb); j++ {
		prev[j] = j
	}
	for i, ca := range ra {
		curr[0] = i + 1
		minRow := curr[0]
		for j, cb := range rb {
			cost := 0
			if ca != cb {
				cost = 1
			}
			v := min3(prev[j+1]+1, curr[j]+1, prev[j]+cost)
			curr[j+1] = v
			if v < minRow {
				minRow = v
			}
		}
		if minRow > max {
			return 0, false
		}
		prev, curr = curr, prev
	}
	if prev[len(rb)] <= max {
		return prev[len(rb)], true
	}
	return 0, false
}

func scoreProduct(p entity.Product, normQuery, compactQuery string, queryTokens []string) int {
	nameNorm := normalizeSearchText(p.Name)
	nameCompact := compactSearchText(p.Name)
	textNorm := normalizeSearchText(productSearchText(p))
	textCompact := compactSearchText(productSearchText(p))

	score := 0
	if normQuery != "" {
		if strings.Contains(nameNorm, normQuery) {
			score += 120
		} else if strings.Contains(textNorm, normQuery) {
			score += 100
		}
	}
	if compactQuery != "" {
		if strings.Contains(nameCompact, compactQuery) {
			score += 110
		} else if strings.Contains(textCompact, compactQuery) {
			score += 90
		}
	}
	if len([]rune(compactQuery)) >= 4 {
		if sim := ngramSimilarity(compactQuery, nameCompact, 2); sim >= 0.25 {
			score += int(sim * 80)
		}
	}

	textTokens := strings.Fields(textNorm)
	for _, qt := range queryTokens {
		if len(qt) < 2 {
			continue
		}
		matched := false
		for _, tt := range textTokens {
			if tt == qt {
				score += 12
				matched = true
				break
			}
			if strings.HasPrefix(tt, qt) {
				score += 8
				matched = true
				break
			}
		}
		if matched || !hasLetter(qt) {
			continue
		}
		maxEdits := maxEditDistance(qt)
		if maxEdits == 0 {
			continue
		}
		for _, tt := range textTokens {
			if dist, ok := editDistanceWithin(qt, tt, maxEdits); ok {
				score += 6 + (maxEdits - dist)
				break
			}
		}
	}
	return score
}

// Search ball asosida qidirish: nom to'liq mosligi yuqori, keyin
// token va xato-toleranli mosliklar. SKU aynan yozilgan bo'lsa
// birinchi o'ringa chiqadi.
func (m *memoryProductRepository) Search(ctx context.Context, query string, limit int) ([]entity.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	normQuery := normalizeSearchText(query)
	compactQuery := compactSearchText(query)
	if normQuery == "" && compactQuery == "" {
		return nil, nil
	}
	queryTokens := strings.Fields(normQuery)
	skuQuery := strings.TrimSpace(query)

	type scored struct {
		product entity.Product
		score   int
	}
	var matches []scored
	for _, p := range m.products {
		s := scoreProduct(p, normQuery, compactQuery, queryTokens)
		// SKU aniq yozilgan bo'lsa nom mosliklaridan ustun turadi
		if p.SKU != "" && p.SKU == skuQuery {
			s += 500
		}
		if s > 0 {
			matches = append(matches, scored{product: p, score: s})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].score != matches[j].score {
			return matches[i].score > matches[j].score
		}
		if matches[i].product.InStock() != matches[j].product.InStock() {
			return matches[i].product.InStock()
		}
		return matches[i].product.SKU < matches[j].product.SKU
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	results := make([]entity.Product, len(matches))
	for i, match := range matches {
		results[i] = match.product
	}
	return results, nil
}

// SearchByCategory toifa ichida narx oralig'iga tushadigan tovarlar.
// Omborda borlari oldinda, keyin arzonidan qimmatiga.
func (m *memoryProductRepository) SearchByCategory(ctx context.Context, cat entity.Category, minPrice, maxPrice float64, limit int) ([]entity.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var results []entity.Product
	for _, p := range m.products {
		if p.Category != cat {
			continue
		}
		price := p.EffectivePrice()
		if price < minPrice {
			continue
		}
		if maxPrice > 0 && price > maxPrice {
			continue
		}
		results = append(results, p)
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].InStock() != results[j].InStock() {
			return results[i].InStock()
		}
		pi, pj := results[i].EffectivePrice(), results[j].EffectivePrice()
		if pi != pj {
			return pi < pj
		}
		return results[i].SKU < results[j].SKU
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// GetBySKU SKU bo'yicha bitta tovar
func (m *memoryProductRepository) GetBySKU(ctx context.Context, sku string) (entity.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.products[strings.TrimSpace(sku)]
	if !ok {
		return entity.Product{}, repository.ErrProductNotFound
	}
	return p, nil
}

// UpdateCatalog katalogni to'liq almashtirish. SKU bo'sh qatorlar
// tashlab yuboriladi.
func (m *memoryProductRepository) UpdateCatalog(ctx context.Context, products []entity.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	next := make(map[string]entity.Product, len(products))
	for _, p := range products {
		if strings.TrimSpace(p.SKU) == "" {
			continue
		}
		next[p.SKU] = p
	}
	m.products = next
	return nil
}
