package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/yourusername/pc-build-assistant/config"
	"github.com/yourusername/pc-build-assistant/internal/domain/entity"
	"github.com/yourusername/pc-build-assistant/internal/domain/repository"
	"github.com/yourusername/pc-build-assistant/internal/infrastructure/parser"
	"github.com/yourusername/pc-build-assistant/internal/infrastructure/storage"
)

const buildTimeout = time.Minute

func newBuildCmd() *cobra.Command {
	var (
		catalogFile string
		purpose     string
		tier        string
	)

	cmd := &cobra.Command{
		Use:   "build [byudjet]",
		Short: "Sborkani terminalda sinab ko'rish",
		Long: `To'liq tanlash pipeline ni botsiz ishga tushiradi. Katalog
--catalog fayldan yoki CATALOG_API_URL dan olinadi.

Misol:
  assistant build 500000 --catalog katalog.xlsx
  assistant build --tier budget --purpose work`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			budgetArg := ""
			if len(args) == 1 {
				budgetArg = args[0]
			}
			return runBuild(cmd, budgetArg, catalogFile, purpose, tier)
		},
	}
	cmd.Flags().StringVar(&catalogFile, "catalog", "", "XLSX/CSV katalog fayli")
	cmd.Flags().StringVar(&purpose, "purpose", "gaming", "sborka maqsadi: gaming yoki work")
	cmd.Flags().StringVar(&tier, "tier", "", "byudjet o'rniga klass: budget, mid, high")
	return cmd
}

func runBuild(cmd *cobra.Command, budgetArg, catalogFile, purposeArg, tierArg string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	budget := 0.0
	if budgetArg != "" {
		budget, err = parseBudgetArg(budgetArg)
		if err != nil {
			return err
		}
	}

	buildTier := entity.Tier("")
	if tierArg != "" {
		t, ok := entity.ParseTier(tierArg)
		if !ok {
			return fmt.Errorf("noma'lum tier %q (budget, mid yoki high)", tierArg)
		}
		buildTier = t
	}
	if budget <= 0 && buildTier == "" {
		return fmt.Errorf("byudjet yoki --tier bering")
	}

	products, err := buildCatalogSource(cfg, catalogFile)
	if err != nil {
		return err
	}

	ai, err := aiRepository(cfg)
	if err != nil {
		return fmt.Errorf("gemini client: %w", err)
	}
	if ai != nil {
		defer ai.Close()
	}

	buildUC, err := buildPipeline(cfg, products, ai, nil)
	if err != nil {
		return err
	}

	purpose := entity.PurposeGaming
	if strings.EqualFold(strings.TrimSpace(purposeArg), string(entity.PurposeWork)) {
		purpose = entity.PurposeWork
	}

	ctx, cancel := context.WithTimeout(context.Background(), buildTimeout)
	defer cancel()

	result, err := buildUC.Recommend(ctx, entity.BuildRequest{
		Requirements: strings.TrimSpace("terminal " + budgetArg),
		Budget:       budget,
		Tier:         buildTier,
		Purpose:      purpose,
	})
	out := cmd.OutOrStdout()
	if err != nil {
		var failure *entity.BuildFailure
		if errors.As(err, &failure) {
			printBuildFailure(out, failure)
			return fmt.Errorf("sborka chiqmadi: %s", failure.Code)
		}
		return err
	}

	printBuildResult(out, result)
	return nil
}

// buildCatalogSource fayl berilsa xotira katalogi yig'adi, bo'lmasa
// tashqi katalogga ulanadi
func buildCatalogSource(cfg *config.Config, catalogFile string) (repository.ProductRepository, error) {
	if catalogFile == "" {
		if cfg.CatalogAPIURL == "" {
			return nil, fmt.Errorf("katalog manbai yo'q: --catalog fayl yoki CATALOG_API_URL bering")
		}
		return catalogRepository(cfg), nil
	}

	data, err := os.ReadFile(catalogFile)
	if err != nil {
		return nil, fmt.Errorf("katalog fayli o'qilmadi: %w", err)
	}
	parsed, err := parser.ParseCatalog(filepath.Base(catalogFile), data)
	if err != nil {
		return nil, err
	}

	repo := storage.NewMemoryProductRepository()
	ctx, cancel := context.WithTimeout(context.Background(), buildTimeout)
	defer cancel()
	if err := repo.UpdateCatalog(ctx, parsed); err != nil {
		return nil, err
	}
	return repo, nil
}

func parseBudgetArg(raw string) (float64, error) {
	cleaned := strings.Map(func(r rune) rune {
		if r == ' ' || r == '_' {
			return -1
		}
		return r
	}, raw)
	budget, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || budget <= 0 {
		return 0, fmt.Errorf("byudjet noto'g'ri: %q", raw)
	}
	return budget, nil
}

func printBuildResult(out io.Writer, result *entity.BuildResult) {
	if result == nil || result.Build == nil {
		fmt.Fprintln(out, "natija bo'sh")
		return
	}

	for _, cat := range entity.Categories() {
		p, ok := result.Build.Component(cat)
		if !ok {
			continue
		}
		fmt.Fprintf(out, "%-12s %-45s %12.0f\n", cat, fmt.Sprintf("%s [%s]", p.Name, p.SKU), p.EffectivePrice())
	}
	fmt.Fprintf(out, "%-12s %58.0f\n", "JAMI", result.Build.TotalPrice())

	if result.Relaxed {
		fmt.Fprintln(out, "eslatma: oraliqlar kengaytirilib yig'ildi")
	}
	for _, w := range result.Warnings {
		fmt.Fprintf(out, "ogohlantirish [%s]: %s\n", w.Code, w.Message)
	}
}

func printBuildFailure(out io.Writer, f *entity.BuildFailure) {
	fmt.Fprintf(out, "xato kodi: %s\n", f.Code)
	if f.Category != "" {
		fmt.Fprintf(out, "toifa: %s\n", f.Category)
	}
	if f.Message != "" {
		fmt.Fprintf(out, "sabab: %s\n", f.Message)
	}
	for _, p := range f.Suggestions {
		fmt.Fprintf(out, "yaqin variant: %s [%s] %.0f\n", p.Name, p.SKU, p.EffectivePrice())
	}
}
