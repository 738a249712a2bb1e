package cli

import (
	"github.com/yourusername/pc-build-assistant/config"
	"github.com/yourusername/pc-build-assistant/internal/domain/repository"
	"github.com/yourusername/pc-build-assistant/internal/infrastructure/catalog"
	"github.com/yourusername/pc-build-assistant/internal/infrastructure/gemini"
	"github.com/yourusername/pc-build-assistant/internal/infrastructure/storage"
	"github.com/yourusername/pc-build-assistant/internal/usecase"
	"github.com/yourusername/pc-build-assistant/pkg/logger"
)

// catalogRepository konfiguratsiyaga qarab tashqi katalog servisi yoki
// xotiradagi katalog
func catalogRepository(cfg *config.Config) repository.ProductRepository {
	if cfg.CatalogAPIURL != "" {
		logger.Info("Katalog: %s", cfg.CatalogAPIURL)
		return catalog.NewHTTPProductRepository(cfg.CatalogAPIURL, cfg.CatalogAPIKey, cfg.CatalogTimeout)
	}
	logger.Info("Katalog: xotirada (CATALOG_API_URL berilmagan)")
	return storage.NewMemoryProductRepository()
}

func requestLogRepository(cfg *config.Config) (repository.RequestLogRepository, error) {
	if cfg.PostgresDSN != "" {
		return storage.NewPostgresRequestLogRepository(cfg.PostgresDSN)
	}
	return storage.NewMemoryRequestLogRepository(), nil
}

// aiRepository Gemini kaliti bo'lmasa nil qaytaradi, pipeline bunga
// tayyor
func aiRepository(cfg *config.Config) (repository.AIRepository, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, nil
	}
	return gemini.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel)
}

func buildPipeline(cfg *config.Config, products repository.ProductRepository, ai repository.AIRepository, logs repository.RequestLogRepository) (usecase.BuildUseCase, error) {
	table, err := config.LoadAllocationTable(cfg.AllocationConfig)
	if err != nil {
		return nil, err
	}
	allocator, err := usecase.NewAllocator(table)
	if err != nil {
		return nil, err
	}
	return usecase.NewBuildUseCase(
		allocator,
		usecase.NewSelector(table.RelaxStep),
		usecase.NewValidator(),
		products,
		ai,
		logs,
	), nil
}
