package usecase

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/yourusername/pc-build-assistant/internal/domain/entity"
)

// psuWattageRe raqam + "W" belgisi, masalan "650W" yoki "750 w"
var psuWattageRe = regexp.MustCompile(`(\d{3,4})\s*w`)

// Extractor tovar nomidan socket, quvvat talabi va PSU quvvatini
// ajratadi. Nomlar tashqi katalogdan kelgan erkin matn, shuning uchun
// ajratish best-effort: topilmagan qiymat 0/"" bo'lib qoladi va
// "noma'lum" deb talqin qilinadi.
type Extractor struct{}

// NewExtractor yangi Extractor yaratish
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Annotate nomdan ajratilgan atributlar bilan boyitilgan nusxa
// qaytaradi. Kirish o'zgartirilmaydi.
func (e *Extractor) Annotate(p entity.Product) entity.Product {
	name := strings.ToLower(p.Name)
	switch p.Category {
	case entity.CategoryCPU, entity.CategoryMotherboard:
		p.Socket = extractSocket(name)
	case entity.CategoryGPU:
		p.PowerReq = extractGPUPowerReq(name)
	case entity.CategoryPSU:
		p.Wattage = extractPSUWattage(name)
	}
	return p
}

// AnnotateAll ro'yxatning boyitilgan nusxasini qaytaradi
func (e *Extractor) AnnotateAll(products []entity.Product) []entity.Product {
	out := make([]entity.Product, len(products))
	for i, p := range products {
		out[i] = e.Annotate(p)
	}
	return out
}

func extractSocket(name string) string {
	switch {
	case strings.Contains(name, "am4"):
		return "AM4"
	case strings.Contains(name, "am5"):
		return "AM5"
	case strings.Contains(name, "lga1700"), strings.Contains(name, "1700"):
		return "LGA1700"
	case strings.Contains(name, "lga1200"), strings.Contains(name, "1200"):
		return "LGA1200"
	}
	return ""
}

// extractGPUPowerReq model nomidan taxminiy quvvat talabi.
// Noma'lum model uchun 0: tanlashda bu kandidat uchun quvvat
// tekshiruvi o'tkazib yuboriladi, 0 W deb hisoblanmaydi.
func extractGPUPowerReq(name string) int {
	switch {
	case containsAny(name, "rtx 4090", "4090"):
		return 450
	case containsAny(name, "rtx 4080", "4080", "rtx 3090"):
		return 350
	case containsAny(name, "rtx 4070", "4070", "rtx 3080"):
		return 300
	case containsAny(name, "rtx 4060", "4060", "rtx 3070"):
		return 220
	case containsAny(name, "rtx 3060", "rx 6600"):
		return 170
	}
	return 0
}

func extractPSUWattage(name string) int {
	match := psuWattageRe.FindStringSubmatch(name)
	if len(match) > 1 {
		val, _ := strconv.Atoi(match[1])
		return val
	}
	return 0
}

func containsAny(haystack string, tokens ...string) bool {
	for _, token := range tokens {
		if strings.Contains(haystack, token) {
			return true
		}
	}
	return false
}
