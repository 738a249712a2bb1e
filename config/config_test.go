package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/pc-build-assistant/internal/domain/entity"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "test-token")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("CATALOG_API_URL", "")
	t.Setenv("CATALOG_TIMEOUT_SECONDS", "")
	t.Setenv("WORKER_COUNT", "")
	t.Setenv("QUEUE_SIZE", "")
	t.Setenv("MAX_CONTEXT_SIZE", "")
	t.Setenv("DEBUG_MODE", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "test-token", cfg.TelegramToken)
	assert.Equal(t, 15*time.Second, cfg.CatalogTimeout)
	assert.Equal(t, 60, cfg.MaxContextSize)
	assert.Zero(t, cfg.WorkerCount)
	assert.False(t, cfg.Debug)
	require.NoError(t, cfg.RequireTelegram())
}

func TestRequireTelegram(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "")

	// Load tokensiz ham ishlaydi: import/build komandalar botsiz
	cfg, err := Load()
	require.NoError(t, err)

	err = cfg.RequireTelegram()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TELEGRAM_BOT_TOKEN")
}

func TestLoad_BadCatalogURLFails(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "test-token")
	t.Setenv("CATALOG_API_URL", "not-a-url")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CATALOG_API_URL")
}

func TestGetEnvBool(t *testing.T) {
	t.Setenv("FLAG", "yes")
	assert.True(t, getEnvBool("FLAG", false))

	t.Setenv("FLAG", "off")
	assert.False(t, getEnvBool("FLAG", true))

	t.Setenv("FLAG", "nonsense")
	assert.True(t, getEnvBool("FLAG", true))
}

func TestLoadAllocationTable_EmptyPathGivesDefault(t *testing.T) {
	table, err := LoadAllocationTable("")
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultAllocationTable(), table)
}

func TestLoadAllocationTable_OverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "allocation.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tolerance: 0.25\nrelax_step: 0.10\n"), 0o644))

	table, err := LoadAllocationTable(path)
	require.NoError(t, err)
	assert.Equal(t, 0.25, table.Tolerance)
	assert.Equal(t, 0.10, table.RelaxStep)
	// toifalar standart jadvaldan qoladi
	assert.Len(t, table.Categories, 6)
	gpu, ok := table.Allocation(entity.CategoryGPU)
	require.True(t, ok)
	assert.Equal(t, 0.35, gpu.Weight)
}

func TestLoadAllocationTable_InvalidTableFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "allocation.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tolerance: 1.5\n"), 0o644))

	_, err := LoadAllocationTable(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "yaroqsiz")
}

func TestLoadAllocationTable_MissingFileFails(t *testing.T) {
	_, err := LoadAllocationTable(filepath.Join(t.TempDir(), "yoq.yaml"))
	require.Error(t, err)
}
