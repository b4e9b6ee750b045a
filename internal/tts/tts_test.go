package tts

import (
	"testing"

	"github.com/linguava/linguava/internal/language"
)

func TestVoiceProfileFallback(t *testing.T) {
	p := NewVoiceProfile(map[language.Tag]string{
		language.English:  "en-US-Neural2-C",
		language.Japanese: "ja-JP-Neural2-B",
	})

	if got := p.Voice(language.Japanese); got != "ja-JP-Neural2-B" {
		t.Fatalf("Voice(japanese) = %q, want ja-JP-Neural2-B", got)
	}
	if got := p.Voice(language.Chinese); got != "en-US-Neural2-C" {
		t.Fatalf("Voice(unmapped) = %q, want the English default", got)
	}
	if got := p.DefaultVoice(); got != "en-US-Neural2-C" {
		t.Fatalf("DefaultVoice() = %q, want en-US-Neural2-C", got)
	}
}

func TestNewVoiceProfileDropsBlankEntries(t *testing.T) {
	p := NewVoiceProfile(map[language.Tag]string{
		language.English:  " en-US-Neural2-C ",
		language.Japanese: "   ",
	})
	if got := p.Voice(language.Japanese); got != "en-US-Neural2-C" {
		t.Fatalf("Voice(blank mapping) = %q, want the trimmed English default", got)
	}
}
