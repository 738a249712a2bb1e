package parser

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/yourusername/pc-build-assistant/internal/domain/entity"
)

func buildTestXLSX(t *testing.T, rows [][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for r, row := range rows {
		for c, val := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				t.Fatalf("katak nomi: %v", err)
			}
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				t.Fatalf("katak yozish: %v", err)
			}
		}
	}
	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		t.Fatalf("xlsx yozish: %v", err)
	}
	return buf.Bytes()
}

func TestParseCatalogXLSX_RussianHeadersAndBadRows(t *testing.T) {
	data := buildTestXLSX(t, [][]any{
		{"Артикул", "Наименование", "Категория", "Бренд", "Цена", "Остаток"},
		{"44123", "Samsung 980 NVMe 1TB", "Твердотельные диски (SSD)", "Samsung", "52 500,00", "7"},
		{"", "artikulsiz qator", "SSD", "", "1000", "1"},
		{"55001", "Gigabyte B550M DS3H", "Материнские платы", "Gigabyte", "narx emas", "2"},
		{"55002", "DeepCool PF650 650W", "Блоки питания", "DeepCool", 50000, "4"},
	})

	products, err := ParseCatalogXLSX(data)
	if err != nil {
		t.Fatalf("ParseCatalogXLSX xato: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("kutilgan 2 tovar, keldi %d", len(products))
	}

	first := products[0]
	if first.SKU != "44123" || first.Category != entity.CategorySSD {
		t.Errorf("birinchi qator noto'g'ri: %+v", first)
	}
	if first.Price != 52500 {
		t.Errorf("narx %v, kutilgan 52500", first.Price)
	}
	if first.Stock != 7 {
		t.Errorf("ostatka %d", first.Stock)
	}

	second := products[1]
	if second.SKU != "55002" || second.Category != entity.CategoryPSU || second.Price != 50000 {
		t.Errorf("ikkinchi qator noto'g'ri: %+v", second)
	}
}

func TestParseCatalogCSV_CreditPrice(t *testing.T) {
	csvData := []byte("sku,name,category,brand,price,credit,stock\n" +
		"101,Gigabyte RTX 4070 12GB,Видеокарты,Gigabyte,195000,175 000,2\n")

	products, err := ParseCatalogCSV(csvData)
	if err != nil {
		t.Fatalf("ParseCatalogCSV xato: %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("kutilgan 1 tovar, keldi %d", len(products))
	}
	p := products[0]
	if p.Category != entity.CategoryGPU {
		t.Errorf("toifa: %s", p.Category)
	}
	if p.CreditPrice != 175000 {
		t.Errorf("kredit narxi: %v", p.CreditPrice)
	}
	if got := p.EffectivePrice(); got != 175000 {
		t.Errorf("EffectivePrice = %v", got)
	}
}

func TestParseCatalog_Dispatch(t *testing.T) {
	csvData := []byte("sku,name,price\n1,Test,1000\n")
	if _, err := ParseCatalog("catalog.csv", csvData); err != nil {
		t.Errorf("csv dispatch xato: %v", err)
	}
	if _, err := ParseCatalog("catalog.pdf", csvData); err == nil {
		t.Error("notanish kengaytma xato bermadi")
	}
}

func TestParseCatalogXLSX_NoHeader(t *testing.T) {
	data := buildTestXLSX(t, [][]any{
		{"shunchaki", "matn"},
		{"yana", "matn"},
	})
	if _, err := ParseCatalogXLSX(data); err == nil {
		t.Error("sarlavhasiz fayl xato bermadi")
	}
}
