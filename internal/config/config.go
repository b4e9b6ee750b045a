// Package config loads process-wide settings once at startup. Values come
// from an optional YAML file overlaid by environment variables; nothing is
// mutated at runtime.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
)

// Config contains all runtime settings for the voice relay.
type Config struct {
	BindAddr         string
	ShutdownTimeout  time.Duration
	MetricsNamespace string
	AllowAnyOrigin   bool

	LogLevel string
	LogFile  string

	TargetLanguage string

	// Generative backend: either GeminiAPIKey (Gemini API) or
	// GoogleCloudProject + location + credentials file (Vertex AI).
	GeminiAPIKey        string
	GoogleCloudProject  string
	GoogleCloudLocation string
	CredentialsFile     string
	ModelCandidates     []string
	GenerateTimeout     time.Duration

	// Speech synthesis. Empty TTSAPIKey disables voice replies.
	TTSAPIKey     string
	VoiceEnglish  string
	VoiceJapanese string
	VoiceChinese  string

	// Bounded concurrency for provider calls across all sessions.
	MaxProviderCalls int

	DatabaseURL string
}

// fileConfig mirrors the optional YAML startup file.
type fileConfig struct {
	BindAddr       string `yaml:"bind_addr"`
	TargetLanguage string `yaml:"target_language"`
	Gemini         struct {
		APIKey   string   `yaml:"api_key"`
		Project  string   `yaml:"project"`
		Location string   `yaml:"location"`
		Models   []string `yaml:"models"`
	} `yaml:"gemini"`
	TTS struct {
		APIKey string `yaml:"api_key"`
		Voices struct {
			English  string `yaml:"english"`
			Japanese string `yaml:"japanese"`
			Chinese  string `yaml:"chinese"`
		} `yaml:"voices"`
	} `yaml:"tts"`
	DatabaseURL string `yaml:"database_url"`
}

// Load reads the optional config file and environment variables, applies safe
// defaults, and validates startup prerequisites. All failures here are fatal:
// the process refuses to start with a message naming the missing prerequisite.
func Load() (Config, error) {
	cfg := Config{
		BindAddr:            ":8765",
		MetricsNamespace:    "linguava",
		ShutdownTimeout:     15 * time.Second,
		TargetLanguage:      "japanese",
		GoogleCloudLocation: "us-central1",
		ModelCandidates:     []string{"gemini-2.0-flash-exp", "gemini-2.0-flash", "gemini-1.5-flash"},
		GenerateTimeout:     60 * time.Second,
		VoiceEnglish:        "en-US-Neural2-C",
		VoiceJapanese:       "ja-JP-Neural2-B",
		VoiceChinese:        "cmn-CN-Wavenet-A",
		MaxProviderCalls:    8,
	}

	if path := envTrimmed("LINGUAVA_CONFIG"); path != "" {
		if err := applyFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}

	cfg.BindAddr = envOrDefault("APP_BIND_ADDR", cfg.BindAddr)
	cfg.MetricsNamespace = envOrDefault("APP_METRICS_NAMESPACE", cfg.MetricsNamespace)
	cfg.LogLevel = envOrDefault("APP_LOG_LEVEL", cfg.LogLevel)
	cfg.LogFile = envOrDefault("APP_LOG_FILE", cfg.LogFile)
	cfg.TargetLanguage = strings.ToLower(envOrDefault("TARGET_LANGUAGE", cfg.TargetLanguage))
	cfg.GeminiAPIKey = envOrDefault("GEMINI_API_KEY", cfg.GeminiAPIKey)
	cfg.GoogleCloudProject = envOrDefault("GOOGLE_CLOUD_PROJECT", cfg.GoogleCloudProject)
	cfg.GoogleCloudLocation = envOrDefault("GOOGLE_CLOUD_LOCATION", cfg.GoogleCloudLocation)
	cfg.CredentialsFile = envOrDefault("GOOGLE_APPLICATION_CREDENTIALS", cfg.CredentialsFile)
	cfg.TTSAPIKey = envOrDefault("GOOGLE_TTS_API_KEY", cfg.TTSAPIKey)
	cfg.VoiceEnglish = envOrDefault("VOICE_ENGLISH", cfg.VoiceEnglish)
	cfg.VoiceJapanese = envOrDefault("VOICE_JAPANESE", cfg.VoiceJapanese)
	cfg.VoiceChinese = envOrDefault("VOICE_CHINESE", cfg.VoiceChinese)
	cfg.DatabaseURL = envOrDefault("DATABASE_URL", cfg.DatabaseURL)

	if models := envTrimmed("GEMINI_MODELS"); models != "" {
		cfg.ModelCandidates = splitList(models)
	}

	var err error
	cfg.ShutdownTimeout, err = durationFromEnv("APP_SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout)
	if err != nil {
		return Config{}, err
	}
	cfg.GenerateTimeout, err = durationFromEnv("APP_GENERATE_TIMEOUT", cfg.GenerateTimeout)
	if err != nil {
		return Config{}, err
	}
	cfg.MaxProviderCalls, err = intFromEnv("APP_MAX_PROVIDER_CALLS", cfg.MaxProviderCalls)
	if err != nil {
		return Config{}, err
	}
	cfg.AllowAnyOrigin, err = boolFromEnv("APP_ALLOW_ANY_ORIGIN", cfg.AllowAnyOrigin)
	if err != nil {
		return Config{}, err
	}

	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyFile(cfg *Config, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config file %s: %w", path, err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return fmt.Errorf("config file %s: %w", path, err)
	}

	overlay(&cfg.BindAddr, fc.BindAddr)
	overlay(&cfg.TargetLanguage, fc.TargetLanguage)
	overlay(&cfg.GeminiAPIKey, fc.Gemini.APIKey)
	overlay(&cfg.GoogleCloudProject, fc.Gemini.Project)
	overlay(&cfg.GoogleCloudLocation, fc.Gemini.Location)
	if len(fc.Gemini.Models) > 0 {
		cfg.ModelCandidates = fc.Gemini.Models
	}
	overlay(&cfg.TTSAPIKey, fc.TTS.APIKey)
	overlay(&cfg.VoiceEnglish, fc.TTS.Voices.English)
	overlay(&cfg.VoiceJapanese, fc.TTS.Voices.Japanese)
	overlay(&cfg.VoiceChinese, fc.TTS.Voices.Chinese)
	overlay(&cfg.DatabaseURL, fc.DatabaseURL)
	return nil
}

func validate(cfg Config) error {
	if strings.TrimSpace(cfg.BindAddr) == "" {
		return fmt.Errorf("APP_BIND_ADDR must not be empty")
	}
	if cfg.MaxProviderCalls <= 0 {
		return fmt.Errorf("APP_MAX_PROVIDER_CALLS must be positive")
	}
	if cfg.GenerateTimeout <= 0 {
		return fmt.Errorf("APP_GENERATE_TIMEOUT must be positive")
	}
	if len(cfg.ModelCandidates) == 0 {
		return fmt.Errorf("GEMINI_MODELS must list at least one model")
	}

	hasAPIKey := strings.TrimSpace(cfg.GeminiAPIKey) != ""
	hasProject := strings.TrimSpace(cfg.GoogleCloudProject) != ""
	switch {
	case hasAPIKey:
		// Gemini API backend; no credentials file needed.
	case hasProject:
		if strings.TrimSpace(cfg.CredentialsFile) == "" {
			return fmt.Errorf("GOOGLE_APPLICATION_CREDENTIALS is required when using GOOGLE_CLOUD_PROJECT")
		}
		if _, err := os.Stat(cfg.CredentialsFile); err != nil {
			return fmt.Errorf("credentials file not found: %s", cfg.CredentialsFile)
		}
	default:
		return fmt.Errorf("either GEMINI_API_KEY or GOOGLE_CLOUD_PROJECT must be set")
	}
	return nil
}

// VoiceDisabled reports whether speech synthesis is turned off by config.
func (c Config) VoiceDisabled() bool {
	return strings.TrimSpace(c.TTSAPIKey) == ""
}

func overlay(dst *string, v string) {
	if strings.TrimSpace(v) != "" {
		*dst = strings.TrimSpace(v)
	}
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func envOrDefault(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func envTrimmed(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func durationFromEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := envTrimmed(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s parse error: %w", key, err)
	}
	return d, nil
}

func intFromEnv(key string, fallback int) (int, error) {
	v := envTrimmed(key)
	if v == "" {
		return fallback, nil
	}
	var n int
	if _, err := fmt.Sscanf(v, "%d", &n); err != nil {
		return 0, fmt.Errorf("%s parse error: %w", key, err)
	}
	return n, nil
}

func boolFromEnv(key string, fallback bool) (bool, error) {
	v := strings.ToLower(envTrimmed(key))
	if v == "" {
		return fallback, nil
	}
	switch v {
	case "1", "true", "t", "yes", "y", "on":
		return true, nil
	case "0", "false", "f", "no", "n", "off":
		return false, nil
	default:
		return false, fmt.Errorf("%s parse error: expected bool", key)
	}
}
