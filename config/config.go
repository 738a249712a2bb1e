package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/yourusername/pc-build-assistant/internal/domain/constants"
)

// Config ilovaning konfiguratsiyasi
type Config struct {
	TelegramToken string

	GeminiAPIKey string
	GeminiModel  string

	// CatalogAPIURL bo'sh bo'lsa katalog xotirada yashaydi va
	// import komandasi bilan to'ldiriladi
	CatalogAPIURL  string
	CatalogAPIKey  string
	CatalogTimeout time.Duration

	// PostgresDSN bo'sh bo'lsa so'rovlar jurnali xotirada qoladi
	PostgresDSN string

	// AllocationConfig YAML fayl yo'li, bo'sh bo'lsa ichki jadval
	AllocationConfig string

	MaxContextSize int
	WorkerCount    int
	QueueSize      int
	Debug          bool
}

// Load konfiguratsiyani yuklash. Telegram token bu yerda talab
// qilinmaydi: import va build komandalar botsiz ishlaydi.
func Load() (*Config, error) {
	// .env faylini yuklash (mavjud bo'lsa)
	_ = godotenv.Load()

	config := &Config{
		TelegramToken:    os.Getenv("TELEGRAM_BOT_TOKEN"),
		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
		GeminiModel:      strings.TrimSpace(os.Getenv("GEMINI_MODEL")),
		CatalogAPIURL:    strings.TrimSpace(os.Getenv("CATALOG_API_URL")),
		CatalogAPIKey:    os.Getenv("CATALOG_API_KEY"),
		CatalogTimeout:   time.Duration(getEnvInt("CATALOG_TIMEOUT_SECONDS", 15)) * time.Second,
		PostgresDSN:      strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		AllocationConfig: strings.TrimSpace(os.Getenv("ALLOCATION_CONFIG")),
		MaxContextSize:   getEnvInt("MAX_CONTEXT_SIZE", constants.DefaultMaxContextSize),
		WorkerCount:      getEnvInt("WORKER_COUNT", 0),
		QueueSize:        getEnvInt("QUEUE_SIZE", 0),
		Debug:            getEnvBool("DEBUG_MODE", false),
	}

	if config.CatalogAPIURL != "" && !strings.HasPrefix(config.CatalogAPIURL, "http") {
		return nil, fmt.Errorf("CATALOG_API_URL noto'g'ri: %q", config.CatalogAPIURL)
	}

	return config, nil
}

// RequireTelegram bot ishga tushishidan oldin chaqiriladi. Gemini
// ixtiyoriy: kalit bo'lmasa klassifikator kalit so'zlar bilan ishlaydi.
func (c *Config) RequireTelegram() error {
	if strings.TrimSpace(c.TelegramToken) == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable bo'sh")
	}
	return nil
}

func getEnvInt(key string, defaultValue int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvBool(key string, defaultValue bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	switch strings.ToLower(value) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return defaultValue
	}
}
