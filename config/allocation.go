package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/yourusername/pc-build-assistant/internal/domain/entity"
)

// LoadAllocationTable YAML fayldan taqsimlash jadvalini o'qiydi.
// Fayl standart jadval ustiga qo'yiladi: faqat tolerance ni o'zgartirib
// toifalarni yozmaslik mumkin. path bo'sh bo'lsa standart jadval.
func LoadAllocationTable(path string) (entity.AllocationTable, error) {
	if path == "" {
		return entity.DefaultAllocationTable(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return entity.AllocationTable{}, fmt.Errorf("allocation config o'qilmadi: %w", err)
	}

	table := entity.DefaultAllocationTable()
	if err := yaml.Unmarshal(data, &table); err != nil {
		return entity.AllocationTable{}, fmt.Errorf("allocation config yaml: %w", err)
	}
	if err := table.Validate(); err != nil {
		return entity.AllocationTable{}, fmt.Errorf("allocation config yaroqsiz: %w", err)
	}
	return table, nil
}
