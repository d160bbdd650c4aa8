package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env  string
	Port int

	Platform PlatformConfig
	Redis    RedisConfig
	Session  SessionConfig
	CORS     CORSConfig
	Log      LogConfig
	Cache    CacheConfig
	Portal   PortalConfig
	AI       AIConfig
}

// PlatformConfig points the console at the academy platform API.
type PlatformConfig struct {
	BaseURL        string
	OrganizationID string
	Timeout        time.Duration
	ChatGatewayURL string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// SessionConfig governs the signed session cookie and its server-side state.
type SessionConfig struct {
	Secret     string
	CookieName string
	TTL        time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// CacheConfig tunes the read-through cache for bundles and profiles.
type CacheConfig struct {
	Enabled   bool
	BundleTTL time.Duration
}

// PortalConfig gates the student portal routes.
type PortalConfig struct {
	Enabled bool
}

// AIConfig governs the lesson-plan generation workflow.
type AIConfig struct {
	Enabled      bool
	PollInterval time.Duration
	PollTimeout  time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")

	cfg.Platform = PlatformConfig{
		BaseURL:        strings.TrimRight(v.GetString("PLATFORM_BASE_URL"), "/"),
		OrganizationID: v.GetString("PLATFORM_ORG_ID"),
		Timeout:        parseDuration(v.GetString("PLATFORM_TIMEOUT"), 30*time.Second),
		ChatGatewayURL: v.GetString("PLATFORM_CHAT_URL"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.Session = SessionConfig{
		Secret:     v.GetString("SESSION_SECRET"),
		CookieName: v.GetString("SESSION_COOKIE"),
		TTL:        parseDuration(v.GetString("SESSION_TTL"), 24*time.Hour),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Cache = CacheConfig{
		Enabled:   v.GetBool("ENABLE_CACHE"),
		BundleTTL: parseDuration(v.GetString("CACHE_BUNDLE_TTL"), 5*time.Minute),
	}

	cfg.Portal = PortalConfig{Enabled: v.GetBool("ENABLE_PORTAL")}

	cfg.AI = AIConfig{
		Enabled:      v.GetBool("ENABLE_AI_GENERATION"),
		PollInterval: parseDuration(v.GetString("AI_POLL_INTERVAL"), 2*time.Second),
		PollTimeout:  parseDuration(v.GetString("AI_POLL_TIMEOUT"), 3*time.Minute),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8090)

	v.SetDefault("PLATFORM_BASE_URL", "http://localhost:3000")
	v.SetDefault("PLATFORM_ORG_ID", "")
	v.SetDefault("PLATFORM_TIMEOUT", "30s")
	v.SetDefault("PLATFORM_CHAT_URL", "ws://localhost:3000/ws/chat")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("SESSION_SECRET", "dev_secret")
	v.SetDefault("SESSION_COOKIE", "academy_session")
	v.SetDefault("SESSION_TTL", "24h")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("ENABLE_CACHE", false)
	v.SetDefault("CACHE_BUNDLE_TTL", "5m")

	v.SetDefault("ENABLE_PORTAL", true)

	v.SetDefault("ENABLE_AI_GENERATION", false)
	v.SetDefault("AI_POLL_INTERVAL", "2s")
	v.SetDefault("AI_POLL_TIMEOUT", "3m")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
