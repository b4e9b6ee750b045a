// Package language classifies generated text by Unicode code-point ranges so
// the synthesis layer can pick a matching voice. It is a cheap heuristic, not
// a linguistic classifier; short or kanji-heavy text may misclassify.
package language

// Tag is a language classification produced by Detect.
type Tag string

const (
	English  Tag = "english"
	Japanese Tag = "japanese"
	Chinese  Tag = "chinese"
)

// Matches above this count flip the classification away from english.
const detectThreshold = 3

// Detect classifies text by counting code points in the Japanese kana blocks
// and in the CJK unified block. Kana above the threshold means japanese, CJK
// above the threshold means chinese, everything else is english.
func Detect(text string) Tag {
	var kana, cjk int
	for _, r := range text {
		switch {
		case r >= 0x3040 && r <= 0x309F: // hiragana
			kana++
		case r >= 0x30A0 && r <= 0x30FF: // katakana
			kana++
		case r >= 0x4E00 && r <= 0x9FFF: // CJK unified ideographs
			cjk++
		}
	}
	if kana > detectThreshold {
		return Japanese
	}
	if cjk > detectThreshold {
		return Chinese
	}
	return English
}

// HasCJK reports whether text contains any kana or CJK code point at all,
// regardless of the classification threshold.
func HasCJK(text string) bool {
	for _, r := range text {
		if (r >= 0x3040 && r <= 0x30FF) || (r >= 0x4E00 && r <= 0x9FFF) {
			return true
		}
	}
	return false
}
