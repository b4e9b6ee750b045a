// Package prompt turns a per-request game-state snapshot into the instruction
// string sent to the generative model alongside the player's audio.
package prompt

import (
	"fmt"
	"strings"

	"github.com/linguava/linguava/internal/protocol"
)

// Time-of-day ticks above this value count as night.
const nightThreshold = 13000

// Builder renders context prompts for a fixed target learning language.
// It is pure and deterministic; safe for concurrent use.
type Builder struct {
	targetLanguage string
}

func NewBuilder(targetLanguage string) *Builder {
	tag := strings.ToLower(strings.TrimSpace(targetLanguage))
	if tag == "" {
		tag = "japanese"
	}
	return &Builder{targetLanguage: tag}
}

// TargetLanguage returns the configured target-language tag.
func (b *Builder) TargetLanguage() string { return b.targetLanguage }

// Build renders the tutoring prompt for one game-state snapshot. Missing
// fields render as placeholders; Build never fails on partial input.
func (b *Builder) Build(gs protocol.GameState) string {
	langName := LanguageName(b.targetLanguage)

	var sb strings.Builder
	fmt.Fprintf(&sb, "You are a friendly %s tutor living inside Minecraft. The player is practicing %s while playing. You should:\n", langName, langName)
	sb.WriteString("1. Respond naturally and conversationally, keeping answers short and encouraging\n")
	fmt.Fprintf(&sb, "2. Weave in simple %s words or phrases related to what the player is doing\n", langName)
	sb.WriteString("3. Gently repeat or correct the player's pronunciation attempts\n")
	sb.WriteString("4. Use the game context below to make the lesson relevant\n")

	if vocab := ExampleVocab(b.targetLanguage); len(vocab) > 0 {
		sb.WriteString("\nExample vocabulary you can draw on:\n")
		for _, pair := range vocab {
			fmt.Fprintf(&sb, "- %s: %s\n", pair.English, pair.Translated)
		}
	}

	sb.WriteString("\nCurrent context:\n")
	fmt.Fprintf(&sb, "- Player position: %s\n", fallback(gs.Player.Position, "unknown"))
	fmt.Fprintf(&sb, "- Health: %s/20\n", intOrUnknown(gs.Player.Health))
	fmt.Fprintf(&sb, "- Hunger: %s/20\n", intOrUnknown(gs.Player.Hunger))
	fmt.Fprintf(&sb, "- Held item: %s\n", stripNamespace(fallback(gs.Player.HeldItem, "none")))
	fmt.Fprintf(&sb, "- Looking at: %s (%s)\n",
		stripNamespace(fallback(gs.Target.ID, "nothing")),
		fallback(gs.Target.Type, "none"))
	fmt.Fprintf(&sb, "- Biome: %s\n", stripNamespace(fallback(gs.World.Biome, "unknown")))
	fmt.Fprintf(&sb, "- Time: %s\n", dayOrNight(gs.World.TimeOfDay))
	fmt.Fprintf(&sb, "- Weather: %s\n", weather(gs.World.Raining))

	sb.WriteString("\nRespond naturally to what the player says while incorporating this game context.")
	return sb.String()
}

func fallback(v, placeholder string) string {
	if strings.TrimSpace(v) == "" {
		return placeholder
	}
	return v
}

func intOrUnknown(v *int) string {
	if v == nil {
		return "unknown"
	}
	return fmt.Sprintf("%d", *v)
}

// stripNamespace drops a "minecraft:"-style registry prefix from an
// identifier so the model sees plain words.
func stripNamespace(id string) string {
	if i := strings.IndexByte(id, ':'); i >= 0 && i < len(id)-1 {
		return id[i+1:]
	}
	return id
}

func dayOrNight(timeOfDay int) string {
	if timeOfDay > nightThreshold {
		return "night"
	}
	return "day"
}

func weather(raining bool) string {
	if raining {
		return "raining"
	}
	return "clear"
}
