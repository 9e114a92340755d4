package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds all pipeline configuration.
type Config struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Dataset locations.
	PostsFile    string `env:"POSTS_FILE" envDefault:"data/posts.csv"`
	PriceDataDir string `env:"PRICE_DATA_DIR" envDefault:"price_data"`
	ImpactFile   string `env:"IMPACT_FILE" envDefault:"data/posts_with_price_impact.csv"`
	OutputDir    string `env:"OUTPUT_DIR" envDefault:"data"`

	// Posts date window (inclusive), YYYY-MM-DD.
	PostsFrom string `env:"POSTS_FROM" envDefault:"2024-03-10"`
	PostsTo   string `env:"POSTS_TO" envDefault:"2025-03-25"`

	// Impact calculation.
	HorizonDays    int `env:"HORIZON_DAYS" envDefault:"5"`
	ToleranceHours int `env:"TOLERANCE_HOURS" envDefault:"48"`
	Workers        int `env:"WORKERS" envDefault:"0"` // 0 = NumCPU

	// HTTP.
	RequestTimeout int `env:"REQUEST_TIMEOUT" envDefault:"30"` // seconds

	// Post store (Postgres).
	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD" envDefault:"-"`
	DBName     string `env:"DB_NAME" envDefault:"govposts"`
	DBSSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	// Price history range for the fetcher, YYYY-MM-DD; empty end means today.
	PriceStartDate string `env:"PRICE_START_DATE" envDefault:"2024-03-10"`
	PriceEndDate   string `env:"PRICE_END_DATE" envDefault:""`

	// Sentiment agent (OpenAI-compatible endpoint).
	AgentEndpoint string `env:"AGENT_ENDPOINT" envDefault:"-"`
	AgentKey      string `env:"AGENT_KEY" envDefault:"-"`
	AgentModel    string `env:"AGENT_MODEL" envDefault:"deepseek-chat"`

	// Telegram notifications, disabled when the token is empty.
	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN" envDefault:""`
	TelegramChatID   int64  `env:"TELEGRAM_CHAT_ID" envDefault:"0"`
	NotifyTopCount   int    `env:"NOTIFY_TOP_COUNT" envDefault:"5"`
}

// Load initializes configuration from environment variables.
func Load() (*Config, error) {
	// Load environment variables from .env file if present
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, relying on actual environment variables")
	}

	var cfg Config

	cfg.LogLevel = getEnvWithDefault("LOG_LEVEL", "info")
	cfg.PostsFile = getEnvWithDefault("POSTS_FILE", "data/posts.csv")
	cfg.PriceDataDir = getEnvWithDefault("PRICE_DATA_DIR", "price_data")
	cfg.ImpactFile = getEnvWithDefault("IMPACT_FILE", "data/posts_with_price_impact.csv")
	cfg.OutputDir = getEnvWithDefault("OUTPUT_DIR", "data")
	cfg.PostsFrom = getEnvWithDefault("POSTS_FROM", "2024-03-10")
	cfg.PostsTo = getEnvWithDefault("POSTS_TO", "2025-03-25")
	cfg.HorizonDays = getEnvIntWithDefault("HORIZON_DAYS", 5)
	cfg.ToleranceHours = getEnvIntWithDefault("TOLERANCE_HOURS", 48)
	cfg.Workers = getEnvIntWithDefault("WORKERS", 0)
	cfg.RequestTimeout = getEnvIntWithDefault("REQUEST_TIMEOUT", 30)
	cfg.DBHost = getEnvWithDefault("DB_HOST", "localhost")
	cfg.DBPort = getEnvWithDefault("DB_PORT", "5432")
	cfg.DBUser = getEnvWithDefault("DB_USER", "postgres")
	cfg.DBPassword = os.Getenv("DB_PASSWORD")
	cfg.DBName = getEnvWithDefault("DB_NAME", "govposts")
	cfg.DBSSLMode = getEnvWithDefault("DB_SSLMODE", "disable")
	cfg.PriceStartDate = getEnvWithDefault("PRICE_START_DATE", "2024-03-10")
	cfg.PriceEndDate = os.Getenv("PRICE_END_DATE")
	cfg.AgentEndpoint = os.Getenv("AGENT_ENDPOINT")
	cfg.AgentKey = os.Getenv("AGENT_KEY")
	cfg.AgentModel = getEnvWithDefault("AGENT_MODEL", "deepseek-chat")
	cfg.TelegramBotToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	cfg.TelegramChatID = getEnvInt64WithDefault("TELEGRAM_CHAT_ID", 0)
	cfg.NotifyTopCount = getEnvIntWithDefault("NOTIFY_TOP_COUNT", 5)

	return &cfg, nil
}

// Helper functions for environment variable handling
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64WithDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
