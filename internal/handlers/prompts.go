package handlers

import (
	"errors"
	"net/http"

	"github.com/AnshRaj112/diary-backend/internal/models"
	"github.com/AnshRaj112/diary-backend/internal/prompts"
	"github.com/go-chi/chi/v5"
)

func GratitudePrompts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"questions": prompts.GratitudeQuestions(models.GratitudeSlots),
	})
}

func EmotionList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "emotions": prompts.Emotions()})
}

func EmotionPrompts(w http.ResponseWriter, r *http.Request) {
	emotion := chi.URLParam(r, "emotion")
	questions, err := prompts.EmotionQuestions(emotion)
	if errors.Is(err, prompts.ErrUnknownEmotion) {
		writeError(w, http.StatusNotFound, "Unknown emotion")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "emotion": emotion, "questions": questions})
}

func EmotionQuote(w http.ResponseWriter, r *http.Request) {
	quote, err := prompts.Quote(chi.URLParam(r, "emotion"))
	if errors.Is(err, prompts.ErrUnknownEmotion) {
		writeError(w, http.StatusNotFound, "Unknown emotion")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "quote": quote})
}
