package prompt

// VocabPair maps an English word to its translation in the target language.
type VocabPair struct {
	English    string
	Translated string
}

// languageNames maps a target-language tag to its display name used in the
// tutoring instructions.
var languageNames = map[string]string{
	"japanese": "Japanese",
	"chinese":  "Mandarin Chinese",
	"spanish":  "Spanish",
	"french":   "French",
	"english":  "English",
}

// exampleVocab is a small fixed set of game-relevant vocabulary per target
// language. Configuration data, not code: adding a language means adding a
// table entry, not a branch.
var exampleVocab = map[string][]VocabPair{
	"japanese": {
		{"sword", "剣 (ken)"},
		{"cow", "牛 (ushi)"},
		{"forest", "森 (mori)"},
		{"night", "夜 (yoru)"},
		{"rain", "雨 (ame)"},
	},
	"chinese": {
		{"sword", "剑 (jiàn)"},
		{"cow", "牛 (niú)"},
		{"forest", "森林 (sēnlín)"},
		{"night", "夜晚 (yèwǎn)"},
		{"rain", "雨 (yǔ)"},
	},
	"spanish": {
		{"sword", "la espada"},
		{"cow", "la vaca"},
		{"forest", "el bosque"},
		{"night", "la noche"},
		{"rain", "la lluvia"},
	},
	"french": {
		{"sword", "l'épée"},
		{"cow", "la vache"},
		{"forest", "la forêt"},
		{"night", "la nuit"},
		{"rain", "la pluie"},
	},
}

// LanguageName resolves the display name for a target-language tag, falling
// back to the tag itself for languages without a table entry.
func LanguageName(tag string) string {
	if name, ok := languageNames[tag]; ok {
		return name
	}
	return tag
}

// ExampleVocab returns the vocabulary table for a target-language tag. The
// slice is shared read-only data; callers must not mutate it.
func ExampleVocab(tag string) []VocabPair {
	return exampleVocab[tag]
}
