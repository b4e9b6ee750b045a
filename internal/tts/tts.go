// Package tts wraps the speech-synthesis provider behind a small interface so
// the gateway can swap in a mock. Output format is fixed to what the game
// client plays back: mono 16 kHz 16-bit linear PCM in a WAV container.
package tts

import (
	"context"
	"strings"

	"github.com/linguava/linguava/internal/language"
)

// Synthesizer converts reply text into playable audio.
type Synthesizer interface {
	// Synthesize returns container-wrapped audio for text spoken in the voice
	// mapped to lang. Implementations should treat failure as recoverable;
	// the gateway degrades to a text-only reply.
	Synthesize(ctx context.Context, text string, lang language.Tag) ([]byte, error)
}

// VoiceProfile maps language tags to provider voice names. Built once at
// startup, read-only afterwards.
type VoiceProfile struct {
	voices      map[language.Tag]string
	defaultLang language.Tag
}

func NewVoiceProfile(voices map[language.Tag]string) VoiceProfile {
	cleaned := make(map[language.Tag]string, len(voices))
	for tag, name := range voices {
		if strings.TrimSpace(name) != "" {
			cleaned[tag] = strings.TrimSpace(name)
		}
	}
	return VoiceProfile{voices: cleaned, defaultLang: language.English}
}

// Voice resolves the synthesis voice for a language tag, falling back to the
// default (English) voice when the tag is unrecognized.
func (p VoiceProfile) Voice(tag language.Tag) string {
	if v, ok := p.voices[tag]; ok {
		return v
	}
	return p.voices[p.defaultLang]
}

// DefaultVoice returns the fallback voice used for unrecognized tags and for
// mixed-language markup.
func (p VoiceProfile) DefaultVoice() string {
	return p.voices[p.defaultLang]
}

// LanguageCode derives the BCP-47 language code from a Google voice name,
// e.g. "ja-JP-Neural2-B" -> "ja-JP".
func LanguageCode(voiceName string) string {
	parts := strings.SplitN(voiceName, "-", 3)
	if len(parts) >= 2 {
		return parts[0] + "-" + parts[1]
	}
	return voiceName
}
