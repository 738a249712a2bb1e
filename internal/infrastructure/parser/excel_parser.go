package parser

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/yourusername/pc-build-assistant/internal/domain/entity"
	"github.com/yourusername/pc-build-assistant/pkg/logger"
)

// ParseCatalog fayl kengaytmasiga qarab xlsx yoki csv katalogni
// o'qiydi. Do'kondan keladigan fayllar ikkala formatda ham uchraydi.
func ParseCatalog(filename string, data []byte) ([]entity.Product, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return ParseCatalogCSV(data)
	case ".xlsx", ".xls":
		return ParseCatalogXLSX(data)
	}
	return nil, fmt.Errorf("qo'llab-quvvatlanmaydigan fayl turi: %s", filepath.Ext(filename))
}

// ParseCatalogXLSX birinchi varaqdan tovarlarni o'qiydi. Birinchi
// to'liq bo'lmagan qator sarlavha deb olinadi, ustunlar nomi bo'yicha
// topiladi. Yaroqsiz qatorlar import to'xtatmaydi, ogohlantirish
// bilan tashlab yuboriladi.
func ParseCatalogXLSX(data []byte) ([]entity.Product, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("excel faylni ochib bo'lmadi: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("qatorlarni o'qib bo'lmadi: %w", err)
	}
	return parseRows(rows)
}

// ParseCatalogCSV csv katalog. Ustunlar xlsx bilan bir xil.
func ParseCatalogCSV(data []byte) ([]entity.Product, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv o'qib bo'lmadi: %w", err)
	}
	return parseRows(rows)
}

type columnIndex struct {
	sku         int
	name        int
	category    int
	brand       int
	price       int
	credit      int
	stock       int
	description int
}

func newColumnIndex() columnIndex {
	return columnIndex{sku: -1, name: -1, category: -1, brand: -1, price: -1, credit: -1, stock: -1, description: -1}
}

func (c columnIndex) complete() bool {
	return c.sku >= 0 && c.name >= 0 && c.price >= 0
}

// mapHeader sarlavha qatorini ustun raqamlariga bog'laydi.
// Fayllar ruscha ham, inglizcha ham sarlavha bilan keladi.
func mapHeader(row []string) columnIndex {
	idx := newColumnIndex()
	for i, cell := range row {
		switch strings.ToLower(strings.TrimSpace(cell)) {
		case "sku", "артикул", "код", "код товара":
			idx.sku = i
		case "name", "наименование", "название", "товар":
			idx.name = i
		case "category", "категория":
			idx.category = i
		case "brand", "бренд", "производитель":
			idx.brand = i
		case "price", "цена":
			idx.price = i
		case "credit", "кредит", "рассрочка", "цена в рассрочку":
			idx.credit = i
		case "stock", "остаток", "количество", "кол-во":
			idx.stock = i
		case "description", "описание":
			idx.description = i
		}
	}
	return idx
}

func cellAt(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// parsePrice "125 000,00" va "125000.00" shakllarini qabul qiladi
func parsePrice(raw string) (float64, error) {
	s := strings.ReplaceAll(raw, " ", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "₸", "")
	s = strings.ReplaceAll(s, ",", ".")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

func parseStock(raw string) int {
	s := strings.ReplaceAll(raw, " ", "")
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		if v, fErr := strconv.ParseFloat(s, 64); fErr == nil {
			return int(v)
		}
		return 0
	}
	return n
}

func parseRows(rows [][]string) ([]entity.Product, error) {
	var idx columnIndex
	headerRow := -1
	for i, row := range rows {
		candidate := mapHeader(row)
		if candidate.complete() {
			idx = candidate
			headerRow = i
			break
		}
	}
	if headerRow < 0 {
		return nil, fmt.Errorf("sarlavha topilmadi: sku, name va price ustunlari kerak")
	}

	var products []entity.Product
	skipped := 0
	for rowNum, row := range rows[headerRow+1:] {
		sku := cellAt(row, idx.sku)
		name := cellAt(row, idx.name)
		if sku == "" && name == "" {
			continue
		}
		if sku == "" || name == "" {
			skipped++
			logger.Warn("katalog qatori %d tashlab yuborildi: sku yoki nom bo'sh", headerRow+rowNum+2)
			continue
		}

		price, err := parsePrice(cellAt(row, idx.price))
		if err != nil || price <= 0 {
			skipped++
			logger.Warn("katalog qatori %d tashlab yuborildi: narx yaroqsiz (%q)", headerRow+rowNum+2, cellAt(row, idx.price))
			continue
		}
		credit, err := parsePrice(cellAt(row, idx.credit))
		if err != nil {
			credit = 0
		}

		rawCat := cellAt(row, idx.category)
		cat, ok := entity.ParseCategory(rawCat)
		if !ok {
			cat = entity.Category(strings.ToLower(rawCat))
		}

		products = append(products, entity.Product{
			SKU:         sku,
			Name:        name,
			Category:    cat,
			Brand:       cellAt(row, idx.brand),
			Price:       price,
			CreditPrice: credit,
			Stock:       parseStock(cellAt(row, idx.stock)),
			Description: cellAt(row, idx.description),
		})
	}

	if skipped > 0 {
		logger.Warn("katalog import: %d qator tashlab yuborildi", skipped)
	}
	if len(products) == 0 {
		return nil, fmt.Errorf("faylda yaroqli tovar qatori yo'q")
	}
	return products, nil
}
