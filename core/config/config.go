package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config holds all application configuration in a structured way.
type Config struct {
	App      AppConfig
	Paths    PathsConfig
	Cache    CacheConfig
	AI       AIConfig
	Pipeline PipelineConfig
	Monitor  MonitorConfig
}

type AppConfig struct {
	Version            string
	Port               string
	Debug              bool
	Environment        string
	TrustedProxies     []string
	CorsAllowedOrigins []string
	ServerID           string
}

type PathsConfig struct {
	Storages string
	Temp     string
}

type CacheConfig struct {
	// File is the flat JSON document used when the networked store is
	// absent or failing.
	File string
	// URL is a redis:// or rediss:// connection string. Empty selects file-only mode.
	URL       string
	KeyPrefix string
}

type AIConfig struct {
	APIKey string
	// Models are tried in order when a generation call fails.
	Models       []string
	PollInterval time.Duration
	PollAttempts int
}

type PipelineConfig struct {
	Timeout       time.Duration
	DownloadChunk int
	UserAgent     string
}

type MonitorConfig struct {
	// Buffer is how many recent pipeline runs are kept in memory.
	Buffer int
	// TTL hides runs older than this from the monitor endpoint. Zero keeps all.
	TTL time.Duration
}

// ErrMissingAPIKey is returned by Validate when no generation credential is configured.
var ErrMissingAPIKey = errors.New("GENAI_API_KEY not found in environment variables; set it in your .env file")

// Global provides access to the loaded configuration.
var Global *Config

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// LoadConfig loads configuration from environment variables or defaults.
func LoadConfig() (*Config, error) {
	storages := getEnv("APP_STORAGE_DIR", "storages")

	corsOrigins := []string{"*"}
	if v := os.Getenv("APP_CORS_ALLOWED_ORIGINS"); v != "" {
		corsOrigins = splitList(v)
	}

	appCfg := AppConfig{
		Version:            "v1.0.0",
		Port:               getEnv("APP_PORT", "5000"),
		Debug:              getEnvBool("APP_DEBUG", false),
		Environment:        getEnv("APP_ENV", "development"),
		CorsAllowedOrigins: corsOrigins,
		ServerID:           getEnv("SERVER_ID", ""),
	}
	if v := os.Getenv("APP_TRUSTED_PROXIES"); v != "" {
		appCfg.TrustedProxies = splitList(v)
	}

	pathsCfg := PathsConfig{
		Storages: storages,
		Temp:     getEnv("APP_TEMP_DIR", os.TempDir()),
	}

	// REDIS_URL is what most hosts inject for a managed instance.
	cacheURL := getEnv("REDIS_URL", "")
	if cacheURL == "" {
		cacheURL = getEnv("VALKEY_URL", "")
	}
	cacheCfg := CacheConfig{
		File:      getEnv("CACHE_FILE", filepath.Join(storages, "notes_cache.json")),
		URL:       cacheURL,
		KeyPrefix: getEnv("VALKEY_KEY_PREFIX", ""),
	}

	apiKey := getEnv("GENAI_API_KEY", "")
	if apiKey == "" {
		apiKey = getEnv("GEMINI_API_KEY", "")
	}
	aiCfg := AIConfig{
		APIKey:       apiKey,
		Models:       splitList(getEnv("GEMINI_MODELS", "gemini-flash-latest")),
		PollInterval: getEnvDuration("GEMINI_POLL_INTERVAL", 2*time.Second),
		PollAttempts: getEnvInt("GEMINI_POLL_ATTEMPTS", 30),
	}

	pipelineCfg := PipelineConfig{
		Timeout:       getEnvDuration("PIPELINE_TIMEOUT", 20*time.Minute),
		DownloadChunk: getEnvInt("DOWNLOAD_CHUNK_BYTES", 1024*1024),
		UserAgent:     getEnv("SCRAPER_USER_AGENT", defaultUserAgent),
	}

	monitorCfg := MonitorConfig{
		Buffer: getEnvInt("MONITOR_BUFFER", 200),
		TTL:    getEnvDuration("MONITOR_TTL", 0),
	}

	cfg := &Config{
		App:      appCfg,
		Paths:    pathsCfg,
		Cache:    cacheCfg,
		AI:       aiCfg,
		Pipeline: pipelineCfg,
		Monitor:  monitorCfg,
	}

	Global = cfg
	return cfg, nil
}

// Validate checks settings the service cannot start without.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.AI.APIKey) == "" {
		return ErrMissingAPIKey
	}
	if len(c.AI.Models) == 0 {
		return errors.New("GEMINI_MODELS must name at least one model")
	}
	return nil
}
