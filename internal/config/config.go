package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"banwatch/internal/utils"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

type Config struct {
	DiscordToken    string         `yaml:"discord_token"`
	ApplicationID   string         `yaml:"application_id"`
	LogLevel        string         `yaml:"log_level"`
	CommandPrefix   string         `yaml:"command_prefix"`
	DefaultLanguage string         `yaml:"default_language"`
	AssetsDir       string         `yaml:"assets_dir"`
	FooterText      string         `yaml:"footer_text"`
	AuditChannelID  string         `yaml:"audit_channel_id"`
	Health          HealthConfig   `yaml:"health"`
	BanAPI          BanAPIConfig   `yaml:"ban_api"`
	Cooldown        CooldownConfig `yaml:"cooldown"`
	Listing         ListingConfig  `yaml:"listing"`
	EmbedColors     EmbedColors    `yaml:"embed_colors"`
}

type HealthConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

type BanAPIConfig struct {
	BaseURL           string `yaml:"base_url"`
	TimeoutSeconds    int    `yaml:"timeout_seconds"`
	Attempts          int    `yaml:"attempts"`
	RetryDelaySeconds int    `yaml:"retry_delay_seconds"`
}

type CooldownConfig struct {
	Calls         int `yaml:"calls"`
	WindowSeconds int `yaml:"window_seconds"`
}

type ListingConfig struct {
	ChunkSize int `yaml:"chunk_size"`
}

type EmbedColors struct {
	Banned int `yaml:"banned"`
	Clean  int `yaml:"clean"`
}

func (c BanAPIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (c BanAPIConfig) RetryDelay() time.Duration {
	return time.Duration(c.RetryDelaySeconds) * time.Second
}

func (c CooldownConfig) Window() time.Duration {
	return time.Duration(c.WindowSeconds) * time.Second
}

func DefaultConfig() Config {
	return Config{
		LogLevel:        "info",
		CommandPrefix:   "!",
		DefaultLanguage: "en",
		AssetsDir:       "assets",
		FooterText:      "DEVELOPED BY THUG•",
		Health:          HealthConfig{Enabled: true, Addr: ":10000"},
		BanAPI: BanAPIConfig{
			BaseURL:           "http://raw.thug4ff.com",
			TimeoutSeconds:    10,
			Attempts:          3,
			RetryDelaySeconds: 2,
		},
		Cooldown: CooldownConfig{Calls: 1, WindowSeconds: 10},
		Listing:  ListingConfig{ChunkSize: 1900},
		EmbedColors: EmbedColors{
			Banned: 0xFF0000,
			Clean:  0x00FF00,
		},
	}
}

// Load layers the YAML file at CONFIG_PATH (default config.yaml) and then the
// environment over DefaultConfig. Variables from a .env file are visible to
// the environment step but never override variables already set.
func Load() (Config, error) {
	cfg := DefaultConfig()

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config.yaml"
	}
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	_ = godotenv.Load()

	applyEnv(&cfg)
	if cfg.DiscordToken == "" {
		return Config{}, errors.New("missing TOKEN environment variable, add TOKEN to your .env file")
	}

	baseURL, err := utils.NormalizeBaseURL(cfg.BanAPI.BaseURL)
	if err != nil {
		return Config{}, fmt.Errorf("invalid ban api base url %q: %w", cfg.BanAPI.BaseURL, err)
	}
	cfg.BanAPI.BaseURL = baseURL

	normalize(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.DiscordToken = envString("DISCORD_TOKEN", cfg.DiscordToken)
	cfg.DiscordToken = envString("TOKEN", cfg.DiscordToken)
	cfg.ApplicationID = envString("APPLICATION_ID", cfg.ApplicationID)
	cfg.LogLevel = envString("LOG_LEVEL", cfg.LogLevel)
	cfg.CommandPrefix = envString("COMMAND_PREFIX", cfg.CommandPrefix)
	cfg.DefaultLanguage = envString("DEFAULT_LANGUAGE", cfg.DefaultLanguage)
	cfg.AssetsDir = envString("ASSETS_DIR", cfg.AssetsDir)
	cfg.FooterText = envString("FOOTER_TEXT", cfg.FooterText)
	cfg.AuditChannelID = envString("AUDIT_CHANNEL_ID", cfg.AuditChannelID)
	cfg.Health.Enabled = envBool("HEALTH_ENABLED", cfg.Health.Enabled)
	cfg.Health.Addr = envString("HEALTH_ADDR", cfg.Health.Addr)
	cfg.BanAPI.BaseURL = envString("BAN_API_BASE_URL", cfg.BanAPI.BaseURL)
	cfg.BanAPI.TimeoutSeconds = envInt("BAN_API_TIMEOUT_SECONDS", cfg.BanAPI.TimeoutSeconds)
	cfg.BanAPI.Attempts = envInt("BAN_API_ATTEMPTS", cfg.BanAPI.Attempts)
	cfg.BanAPI.RetryDelaySeconds = envInt("BAN_API_RETRY_DELAY_SECONDS", cfg.BanAPI.RetryDelaySeconds)
	cfg.Cooldown.WindowSeconds = envInt("COOLDOWN_SECONDS", cfg.Cooldown.WindowSeconds)
	cfg.Listing.ChunkSize = envInt("LIST_CHUNK_SIZE", cfg.Listing.ChunkSize)
}

func normalize(cfg *Config) {
	if cfg.CommandPrefix == "" {
		cfg.CommandPrefix = "!"
	}
	switch strings.ToLower(cfg.DefaultLanguage) {
	case "fr":
		cfg.DefaultLanguage = "fr"
	default:
		cfg.DefaultLanguage = "en"
	}
	if cfg.BanAPI.TimeoutSeconds <= 0 {
		cfg.BanAPI.TimeoutSeconds = 10
	}
	if cfg.BanAPI.Attempts <= 0 {
		cfg.BanAPI.Attempts = 1
	}
	if cfg.BanAPI.RetryDelaySeconds < 0 {
		cfg.BanAPI.RetryDelaySeconds = 0
	}
	if cfg.Cooldown.Calls <= 0 {
		cfg.Cooldown.Calls = 1
	}
	if cfg.Cooldown.WindowSeconds < 0 {
		cfg.Cooldown.WindowSeconds = 0
	}
	// Discord rejects messages above 2000 characters.
	if cfg.Listing.ChunkSize < 100 || cfg.Listing.ChunkSize > 2000 {
		cfg.Listing.ChunkSize = 1900
	}
}

func BuildLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "json"
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.MessageKey = "message"
	cfg.EncoderConfig.LevelKey = "level"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.Level = zap.NewAtomicLevelAt(parseLevel(strings.ToLower(level)))

	return cfg.Build()
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func envString(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		lower := strings.ToLower(value)
		return lower == "1" || lower == "true" || lower == "yes"
	}
	return fallback
}
