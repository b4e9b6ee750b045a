package tts

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/linguava/linguava/internal/language"
	"github.com/linguava/linguava/internal/reliability"
)

const (
	googleTTSBaseURL = "https://texttospeech.googleapis.com/v1"

	// Fixed output contract with the game client.
	outputEncoding   = "LINEAR16"
	outputSampleRate = 16000

	maxAttempts  = 3
	retryBase    = 200 * time.Millisecond
	retryCeiling = 2 * time.Second
)

// GoogleConfig configures the Cloud Text-to-Speech REST client.
type GoogleConfig struct {
	APIKey  string
	BaseURL string
	Voices  map[language.Tag]string
	Timeout time.Duration
}

// Google implements Synthesizer against the Cloud Text-to-Speech REST API.
type Google struct {
	apiKey  string
	baseURL string
	profile VoiceProfile
	client  *http.Client
	logger  *zap.Logger
}

func NewGoogle(cfg GoogleConfig, logger *zap.Logger) (*Google, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("tts: missing API key")
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = googleTTSBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Google{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		profile: NewVoiceProfile(cfg.Voices),
		client:  &http.Client{Timeout: timeout},
		logger:  logger.With(zap.String("component", "tts.google")),
	}, nil
}

// Profile exposes the voice mapping, mainly for startup logging.
func (g *Google) Profile() VoiceProfile { return g.profile }

type synthesisInput struct {
	Text string `json:"text,omitempty"`
	SSML string `json:"ssml,omitempty"`
}

type voiceSelection struct {
	LanguageCode string `json:"languageCode"`
	Name         string `json:"name"`
}

type audioConfig struct {
	AudioEncoding   string `json:"audioEncoding"`
	SampleRateHertz int    `json:"sampleRateHertz"`
}

type synthesizeRequest struct {
	Input       synthesisInput `json:"input"`
	Voice       voiceSelection `json:"voice"`
	AudioConfig audioConfig    `json:"audioConfig"`
}

type synthesizeResponse struct {
	AudioContent string `json:"audioContent"`
}

type apiErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Synthesize converts text to WAV audio using the voice mapped to lang.
//
// Mixed-script text (CJK plus ASCII letters) is wrapped in an SSML envelope
// pinned to the default English voice instead of per-span voice switching.
// The multilingual voice handles embedded foreign words well enough; true
// per-span synthesis is a future extension.
func (g *Google) Synthesize(ctx context.Context, text string, lang language.Tag) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	voice := g.profile.Voice(lang)
	input := synthesisInput{Text: text}
	if mixedScript(text) {
		voice = g.profile.DefaultVoice()
		input = synthesisInput{SSML: wrapSSML(text, voice)}
	}

	req := synthesizeRequest{
		Input: input,
		Voice: voiceSelection{
			LanguageCode: LanguageCode(voice),
			Name:         voice,
		},
		AudioConfig: audioConfig{
			AudioEncoding:   outputEncoding,
			SampleRateHertz: outputSampleRate,
		},
	}

	start := time.Now()
	audio, err := g.post(ctx, req)
	if err != nil {
		return nil, err
	}

	g.logger.Debug("synthesized audio",
		zap.String("voice", voice),
		zap.String("language", string(lang)),
		zap.Int("chars", len(text)),
		zap.Int("bytes", len(audio)),
		zap.Duration("latency", time.Since(start)),
	)
	return audio, nil
}

func (g *Google) post(ctx context.Context, payload synthesizeRequest) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal synthesize request: %w", err)
	}
	url := fmt.Sprintf("%s/text:synthesize?key=%s", g.baseURL, g.apiKey)

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			wait := reliability.ExponentialBackoff(attempt-1, retryBase, retryCeiling)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(wait):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("create synthesize request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := g.client.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("synthesize call: %w", err)
			continue
		}

		audio, retryable, err := readSynthesizeResponse(resp)
		if err == nil {
			return audio, nil
		}
		lastErr = err
		if !retryable {
			return nil, err
		}
	}
	return nil, lastErr
}

func readSynthesizeResponse(resp *http.Response) (audio []byte, retryable bool, err error) {
	defer resp.Body.Close()
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return nil, true, fmt.Errorf("read synthesize response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr apiErrorResponse
		msg := strings.TrimSpace(string(raw))
		if jsonErr := json.Unmarshal(raw, &apiErr); jsonErr == nil && apiErr.Error.Message != "" {
			msg = apiErr.Error.Message
		}
		return nil, reliability.IsRetryableHTTPStatus(resp.StatusCode),
			fmt.Errorf("synthesize status %d: %s", resp.StatusCode, msg)
	}

	var parsed synthesizeResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, false, fmt.Errorf("decode synthesize response: %w", err)
	}
	decoded, err := base64.StdEncoding.DecodeString(parsed.AudioContent)
	if err != nil {
		return nil, false, fmt.Errorf("decode audio content: %w", err)
	}
	return decoded, false, nil
}

// mixedScript reports whether text mixes CJK script with ASCII letters.
func mixedScript(text string) bool {
	if !language.HasCJK(text) {
		return false
	}
	for _, r := range text {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return true
		}
	}
	return false
}

// wrapSSML pins the whole utterance to a single voice.
func wrapSSML(text, voice string) string {
	return fmt.Sprintf(`<speak><voice name=%q>%s</voice></speak>`, voice, escapeSSML(text))
}

func escapeSSML(text string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
	)
	return r.Replace(text)
}
