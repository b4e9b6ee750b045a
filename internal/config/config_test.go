package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"LINGUAVA_CONFIG", "APP_BIND_ADDR", "APP_METRICS_NAMESPACE", "APP_LOG_LEVEL",
		"APP_LOG_FILE", "APP_SHUTDOWN_TIMEOUT", "APP_GENERATE_TIMEOUT",
		"APP_MAX_PROVIDER_CALLS", "APP_ALLOW_ANY_ORIGIN", "TARGET_LANGUAGE",
		"GEMINI_API_KEY", "GEMINI_MODELS", "GOOGLE_CLOUD_PROJECT",
		"GOOGLE_CLOUD_LOCATION", "GOOGLE_APPLICATION_CREDENTIALS",
		"GOOGLE_TTS_API_KEY", "VOICE_ENGLISH", "VOICE_JAPANESE", "VOICE_CHINESE",
		"DATABASE_URL",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaultsWithAPIKey(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.BindAddr != ":8765" {
		t.Fatalf("BindAddr = %q, want :8765", cfg.BindAddr)
	}
	if cfg.TargetLanguage != "japanese" {
		t.Fatalf("TargetLanguage = %q, want japanese", cfg.TargetLanguage)
	}
	if len(cfg.ModelCandidates) != 3 || cfg.ModelCandidates[0] != "gemini-2.0-flash-exp" {
		t.Fatalf("unexpected model candidates: %v", cfg.ModelCandidates)
	}
	if cfg.ShutdownTimeout != 15*time.Second {
		t.Fatalf("ShutdownTimeout = %v, want 15s", cfg.ShutdownTimeout)
	}
	if !cfg.VoiceDisabled() {
		t.Fatalf("VoiceDisabled() = false, want true without GOOGLE_TTS_API_KEY")
	}
}

func TestLoadRequiresSomeCredential(t *testing.T) {
	clearEnv(t)
	if _, err := Load(); err == nil {
		t.Fatalf("expected error without GEMINI_API_KEY or GOOGLE_CLOUD_PROJECT")
	}
}

func TestLoadVertexModeRequiresCredentialsFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("GOOGLE_CLOUD_PROJECT", "linguava")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error without GOOGLE_APPLICATION_CREDENTIALS")
	}

	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "/does/not/exist.json")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for missing credentials file")
	}

	keyFile := filepath.Join(t.TempDir(), "key.json")
	if err := os.WriteFile(keyFile, []byte("{}"), 0o600); err != nil {
		t.Fatalf("write key file: %v", err)
	}
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", keyFile)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.GoogleCloudLocation != "us-central1" {
		t.Fatalf("GoogleCloudLocation = %q, want us-central1", cfg.GoogleCloudLocation)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "k")
	t.Setenv("APP_BIND_ADDR", ":9000")
	t.Setenv("TARGET_LANGUAGE", "Chinese")
	t.Setenv("GEMINI_MODELS", " gemini-2.0-flash , gemini-1.5-pro ")
	t.Setenv("APP_MAX_PROVIDER_CALLS", "2")
	t.Setenv("GOOGLE_TTS_API_KEY", "tts-k")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.BindAddr != ":9000" {
		t.Fatalf("BindAddr = %q, want :9000", cfg.BindAddr)
	}
	if cfg.TargetLanguage != "chinese" {
		t.Fatalf("TargetLanguage = %q, want chinese", cfg.TargetLanguage)
	}
	if len(cfg.ModelCandidates) != 2 || cfg.ModelCandidates[1] != "gemini-1.5-pro" {
		t.Fatalf("unexpected model candidates: %v", cfg.ModelCandidates)
	}
	if cfg.MaxProviderCalls != 2 {
		t.Fatalf("MaxProviderCalls = %d, want 2", cfg.MaxProviderCalls)
	}
	if cfg.VoiceDisabled() {
		t.Fatalf("VoiceDisabled() = true, want false")
	}
}

func TestLoadConfigFileOverlay(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "linguava.yaml")
	content := `
bind_addr: ":9100"
target_language: chinese
gemini:
  api_key: file-key
  models:
    - gemini-2.0-flash
tts:
  api_key: file-tts
  voices:
    japanese: ja-JP-Wavenet-C
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	t.Setenv("LINGUAVA_CONFIG", path)
	// Env still wins over the file.
	t.Setenv("APP_BIND_ADDR", ":9200")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.BindAddr != ":9200" {
		t.Fatalf("BindAddr = %q, want env override :9200", cfg.BindAddr)
	}
	if cfg.GeminiAPIKey != "file-key" {
		t.Fatalf("GeminiAPIKey = %q, want file-key", cfg.GeminiAPIKey)
	}
	if cfg.VoiceJapanese != "ja-JP-Wavenet-C" {
		t.Fatalf("VoiceJapanese = %q, want ja-JP-Wavenet-C", cfg.VoiceJapanese)
	}
	if len(cfg.ModelCandidates) != 1 || cfg.ModelCandidates[0] != "gemini-2.0-flash" {
		t.Fatalf("unexpected model candidates: %v", cfg.ModelCandidates)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "k")

	t.Setenv("APP_SHUTDOWN_TIMEOUT", "soon")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid duration")
	}
	t.Setenv("APP_SHUTDOWN_TIMEOUT", "10s")

	t.Setenv("APP_ALLOW_ANY_ORIGIN", "maybe")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid bool")
	}
	t.Setenv("APP_ALLOW_ANY_ORIGIN", "true")

	t.Setenv("APP_MAX_PROVIDER_CALLS", "0")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for non-positive worker cap")
	}
}
