// Package prompts serves the question and quote catalogue the entry form is built from.
package prompts

import (
	"errors"
	"math/rand/v2"
	"strings"

	"github.com/AnshRaj112/diary-backend/internal/models"
)

var ErrUnknownEmotion = errors.New("unknown emotion")

// Quotation is a short quote shown next to the emotion section.
type Quotation struct {
	Text   string `json:"quote"`
	Author string `json:"author"`
}

// FallbackQuote is served for emotions without quotes of their own.
var FallbackQuote = Quotation{Text: "Every day is a new beginning.", Author: "Unknown"}

// Emotions returns the emotion vocabulary in display order.
func Emotions() []string {
	out := make([]string, len(models.Emotions))
	copy(out, models.Emotions)
	return out
}

// GratitudeQuestions returns n distinct questions in random order, or all of them when
// the catalogue holds fewer than n.
func GratitudeQuestions(n int) []string {
	if n <= 0 {
		return []string{}
	}
	if n >= len(gratitudeQuestions) {
		out := make([]string, len(gratitudeQuestions))
		copy(out, gratitudeQuestions)
		return out
	}
	out := make([]string, 0, n)
	for _, i := range rand.Perm(len(gratitudeQuestions))[:n] {
		out = append(out, gratitudeQuestions[i])
	}
	return out
}

// EmotionQuestions returns the reflection questions for emotion, in answer order.
func EmotionQuestions(emotion string) ([]string, error) {
	key := strings.ToLower(strings.TrimSpace(emotion))
	if !models.IsKnownEmotion(key) {
		return nil, ErrUnknownEmotion
	}
	qs := emotionQuestions[key]
	out := make([]string, len(qs))
	copy(out, qs)
	return out, nil
}

// Quote picks a random quote for emotion.
func Quote(emotion string) (Quotation, error) {
	key := strings.ToLower(strings.TrimSpace(emotion))
	if !models.IsKnownEmotion(key) {
		return Quotation{}, ErrUnknownEmotion
	}
	qs := quotes[key]
	if len(qs) == 0 {
		return FallbackQuote, nil
	}
	return qs[rand.IntN(len(qs))], nil
}
