package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/yourusername/pc-build-assistant/config"
	"github.com/yourusername/pc-build-assistant/internal/domain/entity"
	"github.com/yourusername/pc-build-assistant/internal/infrastructure/catalog"
	"github.com/yourusername/pc-build-assistant/internal/infrastructure/parser"
	"github.com/yourusername/pc-build-assistant/internal/usecase"
)

const importTimeout = 2 * time.Minute

func newImportCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import <katalog-fayl>",
		Short: "XLSX/CSV katalog faylini tekshirish va katalog servisiga yuklash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, args[0], dryRun)
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "faqat tekshirish, katalogga yozmaslik")
	return cmd
}

func runImport(cmd *cobra.Command, path string, dryRun bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("fayl o'qilmadi: %w", err)
	}

	products, err := parser.ParseCatalog(filepath.Base(path), data)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printCatalogSummary(out, products)

	if dryRun {
		fmt.Fprintln(out, "Dry-run: katalogga yozilmadi.")
		return nil
	}
	if cfg.CatalogAPIURL == "" {
		fmt.Fprintln(out, "CATALOG_API_URL berilmagan, fayl faqat tekshirildi.")
		return nil
	}

	repo := catalog.NewHTTPProductRepository(cfg.CatalogAPIURL, cfg.CatalogAPIKey, cfg.CatalogTimeout)
	uc := usecase.NewProductUseCase(repo)

	ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
	defer cancel()
	if err := uc.ImportCatalog(ctx, products); err != nil {
		return err
	}
	fmt.Fprintf(out, "Katalog yangilandi: %d tovar.\n", len(products))
	return nil
}

func printCatalogSummary(out io.Writer, products []entity.Product) {
	counts := make(map[entity.Category]int)
	for _, p := range products {
		counts[p.Category]++
	}

	fmt.Fprintf(out, "%d tovar o'qildi:\n", len(products))
	known := 0
	for _, cat := range entity.Categories() {
		if counts[cat] == 0 {
			continue
		}
		fmt.Fprintf(out, "  %-12s %d\n", cat, counts[cat])
		known += counts[cat]
	}
	if other := len(products) - known; other > 0 {
		fmt.Fprintf(out, "  %-12s %d\n", "boshqa", other)
	}
}
