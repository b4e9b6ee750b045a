// Package gateway dispatches inbound envelopes for one session: decode audio,
// build the context prompt, call the generative model, optionally synthesize
// speech, and emit exactly one reply per request.
package gateway

import (
	"context"
	"encoding/base64"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/linguava/linguava/internal/audio"
	"github.com/linguava/linguava/internal/brain"
	"github.com/linguava/linguava/internal/history"
	"github.com/linguava/linguava/internal/language"
	"github.com/linguava/linguava/internal/observability"
	"github.com/linguava/linguava/internal/prompt"
	"github.com/linguava/linguava/internal/protocol"
	"github.com/linguava/linguava/internal/session"
	"github.com/linguava/linguava/internal/tts"
)

// Client audio arrives as raw PCM16LE mono at this rate.
const (
	inputSampleRate  = 16000
	inputChannels    = 1
	inputSampleWidth = 2

	historySaveTimeout = 2 * time.Second
)

// Gateway handles decoded messages for connected sessions. Cross-session
// concurrency comes from one RunConnection goroutine per connection; within
// a session, requests are handled serially so replies keep request order.
type Gateway struct {
	registry  *session.Registry
	generator brain.Generator
	synth     tts.Synthesizer // nil when voice replies are disabled
	builder   *prompt.Builder
	store     history.Store
	metrics   *observability.Metrics
	logger    *zap.Logger

	// providerSlots bounds concurrent provider calls across all sessions so
	// a burst of slow calls cannot starve the rest of the process.
	providerSlots chan struct{}
}

func New(
	registry *session.Registry,
	generator brain.Generator,
	synth tts.Synthesizer,
	builder *prompt.Builder,
	store history.Store,
	metrics *observability.Metrics,
	logger *zap.Logger,
	maxProviderCalls int,
) *Gateway {
	if maxProviderCalls <= 0 {
		maxProviderCalls = 8
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gateway{
		registry:      registry,
		generator:     generator,
		synth:         synth,
		builder:       builder,
		store:         store,
		metrics:       metrics,
		logger:        logger.With(zap.String("component", "gateway")),
		providerSlots: make(chan struct{}, maxProviderCalls),
	}
}

// RunConnection consumes parsed inbound messages for one session and emits
// reply envelopes on outbound. It returns when inbound closes or ctx is
// cancelled. Every audio request produces exactly one reply; replies that
// cannot be delivered because the session closed are discarded.
func (g *Gateway) RunConnection(ctx context.Context, sess *session.Session, inbound <-chan any, outbound chan<- any) error {
	log := g.logger.With(zap.String("session_id", sess.ID))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-inbound:
			if !ok {
				return nil
			}
			reply := g.dispatch(ctx, sess, msg, log)
			if reply == nil {
				continue
			}
			if ctx.Err() != nil {
				// Session closed while the call was in flight; no reply target.
				log.Debug("discarding reply for closed session")
				return ctx.Err()
			}
			select {
			case outbound <- reply:
			case <-ctx.Done():
				// Session closed while the call was in flight; no reply target.
				log.Debug("discarding reply for closed session")
				return ctx.Err()
			}
		}
	}
}

func (g *Gateway) dispatch(ctx context.Context, sess *session.Session, msg any, log *zap.Logger) any {
	switch m := msg.(type) {
	case protocol.Ping:
		return protocol.NewPong()
	case protocol.PlayerAction:
		return g.handlePlayerAction(ctx, sess, m, log)
	default:
		log.Warn("unhandled message", zap.Any("message", msg))
		return protocol.NewError("unsupported message type")
	}
}

func (g *Gateway) handlePlayerAction(ctx context.Context, sess *session.Session, action protocol.PlayerAction, log *zap.Logger) any {
	g.registry.CountRequest(sess.ID)

	if strings.TrimSpace(action.AudioChunk) == "" {
		return protocol.NewError("no audio data received")
	}

	pcm, err := base64.StdEncoding.DecodeString(action.AudioChunk)
	if err != nil {
		return protocol.NewError("audio chunk is not valid base64")
	}

	wav, err := audio.EncodeWAV(pcm, inputSampleRate, inputChannels, inputSampleWidth)
	if err != nil {
		return protocol.NewError("could not encode audio: " + err.Error())
	}

	contextPrompt := g.builder.Build(action.GameState)

	select {
	case g.providerSlots <- struct{}{}:
	case <-ctx.Done():
		return nil
	}
	defer func() { <-g.providerSlots }()

	start := time.Now()
	text, genErr := g.generator.Generate(ctx, contextPrompt, wav)
	if g.metrics != nil {
		g.metrics.ObserveGenerateLatency(time.Since(start))
	}
	if genErr != nil {
		// Degraded reply: the fixed fallback text, never a provider error.
		if g.metrics != nil {
			g.metrics.ProviderErrors.WithLabelValues("gemini").Inc()
		}
		log.Warn("generation degraded to fallback", zap.Error(genErr))
	}

	lang := language.Detect(text)
	audioB64 := g.synthesizeReply(ctx, text, lang, log)

	g.saveExchange(sess.ID, lang, text, audioB64 != "", action.Timestamp, log)

	log.Info("processed audio request",
		zap.String("language", string(lang)),
		zap.Int("pcm_bytes", len(pcm)),
		zap.Bool("voiced", audioB64 != ""),
		zap.Duration("latency", time.Since(start)),
	)
	return protocol.NewAIResponse(text, audioB64, action.Timestamp)
}

// synthesizeReply fails open: voice is an enhancement, so any synthesis error
// degrades to an empty audio buffer rather than an ERROR envelope.
func (g *Gateway) synthesizeReply(ctx context.Context, text string, lang language.Tag, log *zap.Logger) string {
	if g.synth == nil {
		return ""
	}
	start := time.Now()
	voiced, err := g.synth.Synthesize(ctx, text, lang)
	if g.metrics != nil {
		g.metrics.ObserveSynthLatency(time.Since(start))
	}
	if err != nil {
		if g.metrics != nil {
			g.metrics.ProviderErrors.WithLabelValues("tts").Inc()
		}
		log.Warn("synthesis failed, replying text-only", zap.Error(err))
		return ""
	}
	if len(voiced) == 0 {
		return ""
	}
	return base64.StdEncoding.EncodeToString(voiced)
}

func (g *Gateway) saveExchange(sessionID string, lang language.Tag, text string, hadAudio bool, clientTS int64, log *zap.Logger) {
	if g.store == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), historySaveTimeout)
		defer cancel()
		err := g.store.SaveExchange(ctx, history.Exchange{
			SessionID:       sessionID,
			Language:        string(lang),
			ResponseText:    text,
			HadAudio:        hadAudio,
			ClientTimestamp: clientTS,
		})
		if err != nil {
			log.Warn("history save failed", zap.Error(err))
		}
	}()
}
