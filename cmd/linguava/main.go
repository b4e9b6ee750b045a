package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/linguava/linguava/internal/brain"
	"github.com/linguava/linguava/internal/config"
	"github.com/linguava/linguava/internal/gateway"
	"github.com/linguava/linguava/internal/history"
	"github.com/linguava/linguava/internal/httpapi"
	"github.com/linguava/linguava/internal/language"
	"github.com/linguava/linguava/internal/logging"
	"github.com/linguava/linguava/internal/observability"
	"github.com/linguava/linguava/internal/prompt"
	"github.com/linguava/linguava/internal/session"
	"github.com/linguava/linguava/internal/tts"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger, err := logging.New(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer logger.Sync()

	metrics := observability.NewMetrics(cfg.MetricsNamespace)

	ctx := context.Background()
	store, err := history.NewStore(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("history store init failed", zap.Error(err))
	}
	defer store.Close()

	generator, err := brain.NewGemini(ctx, brain.GeminiConfig{
		APIKey:          cfg.GeminiAPIKey,
		Project:         cfg.GoogleCloudProject,
		Location:        cfg.GoogleCloudLocation,
		ModelCandidates: cfg.ModelCandidates,
		RequestTimeout:  cfg.GenerateTimeout,
	}, logger)
	if err != nil {
		logger.Fatal("gemini init failed", zap.Error(err))
	}

	var synth tts.Synthesizer
	if cfg.VoiceDisabled() {
		logger.Info("voice replies disabled: GOOGLE_TTS_API_KEY not set")
	} else {
		google, err := tts.NewGoogle(tts.GoogleConfig{
			APIKey: cfg.TTSAPIKey,
			Voices: map[language.Tag]string{
				language.English:  cfg.VoiceEnglish,
				language.Japanese: cfg.VoiceJapanese,
				language.Chinese:  cfg.VoiceChinese,
			},
		}, logger)
		if err != nil {
			logger.Fatal("tts init failed", zap.Error(err))
		}
		synth = google
		logger.Info("voice replies enabled",
			zap.String("voice_english", cfg.VoiceEnglish),
			zap.String("voice_japanese", cfg.VoiceJapanese),
			zap.String("voice_chinese", cfg.VoiceChinese),
		)
	}

	registry := session.NewRegistry()
	builder := prompt.NewBuilder(cfg.TargetLanguage)
	gw := gateway.New(registry, generator, synth, builder, store, metrics, logger, cfg.MaxProviderCalls)
	api := httpapi.New(cfg, registry, gw, metrics, logger)

	httpServer := &http.Server{
		Addr:    cfg.BindAddr,
		Handler: api.Router(),
	}

	go func() {
		logger.Info("server listening",
			zap.String("addr", cfg.BindAddr),
			zap.String("model", generator.Model()),
			zap.String("target_language", builder.TargetLanguage()),
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen error", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
		_ = httpServer.Close()
	}

	logger.Info("shutdown complete")
}
