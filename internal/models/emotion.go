package models

import "strings"

// Emotions is the fixed vocabulary an entry's emotion must come from.
var Emotions = []string{
	"anxiety",
	"sadness",
	"stress",
	"excitement",
	"anger",
	"happiness",
	"joy",
	"feeling overwhelmed",
	"jealousy",
	"fatigue",
	"insecurity",
	"doubt",
	"catastrophic thinking",
}

// IsKnownEmotion matches loosely, ignoring case and surrounding space, for lookups by name.
func IsKnownEmotion(emotion string) bool {
	return IsCanonicalEmotion(strings.ToLower(strings.TrimSpace(emotion)))
}

// IsCanonicalEmotion reports whether emotion is spelled exactly as in the vocabulary.
func IsCanonicalEmotion(emotion string) bool {
	for _, e := range Emotions {
		if e == emotion {
			return true
		}
	}
	return false
}
