package models

import (
	"errors"
	"strings"
)

const (
	previewLimit = 150
	MaxPageSize  = 100
)

var ErrInvalidPage = errors.New("page must be >= 1 and page_size between 1 and 100")

// PreviewText is the short excerpt shown in the entries list.
func PreviewText(e JournalEntry) string {
	parts := make([]string, 0, len(e.GratitudeAnswers)+len(e.EmotionAnswers)+1)
	for _, a := range e.GratitudeAnswers {
		if strings.TrimSpace(a) != "" {
			parts = append(parts, a)
		}
	}
	for _, a := range e.EmotionAnswers {
		if strings.TrimSpace(a) != "" {
			parts = append(parts, a)
		}
	}
	if e.CustomText != "" {
		parts = append(parts, e.CustomText)
	}
	text := strings.TrimSpace(strings.Join(parts, " "))
	runes := []rune(text)
	if len(runes) > previewLimit {
		return string(runes[:previewLimit]) + "..."
	}
	return text
}

// FilterEntries keeps entries matching the search term (preview or emotion, case-insensitive)
// and, when set, the exact emotion.
func FilterEntries(entries []JournalEntry, search, emotion string) []JournalEntry {
	search = strings.ToLower(strings.TrimSpace(search))
	emotion = strings.TrimSpace(emotion)
	out := make([]JournalEntry, 0, len(entries))
	for _, e := range entries {
		if emotion != "" && e.Emotion != emotion {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(PreviewText(e)), search) &&
			!strings.Contains(strings.ToLower(e.Emotion), search) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterMonth keeps entries whose date falls in month (YYYY-MM).
func FilterMonth(entries []JournalEntry, month string) []JournalEntry {
	prefix := month + "-"
	out := make([]JournalEntry, 0, len(entries))
	for _, e := range entries {
		if strings.HasPrefix(e.Date, prefix) {
			out = append(out, e)
		}
	}
	return out
}

// Pagination mirrors the page metadata the list view renders.
type Pagination struct {
	CurrentPage int  `json:"current_page"`
	PageSize    int  `json:"page_size"`
	TotalPages  int  `json:"total_pages"`
	TotalItems  int  `json:"total_items"`
	HasNext     bool `json:"has_next"`
	HasPrevious bool `json:"has_previous"`
}

// Paginate slices entries for one page. Pages past the end are empty, not an error.
func Paginate(entries []JournalEntry, page, pageSize int) ([]JournalEntry, Pagination, error) {
	if page < 1 || pageSize < 1 || pageSize > MaxPageSize {
		return nil, Pagination{}, ErrInvalidPage
	}
	total := len(entries)
	totalPages := (total + pageSize - 1) / pageSize
	meta := Pagination{
		CurrentPage: page,
		PageSize:    pageSize,
		TotalPages:  totalPages,
		TotalItems:  total,
		HasNext:     page < totalPages,
		HasPrevious: page > 1,
	}
	start := (page - 1) * pageSize
	if start >= total {
		return []JournalEntry{}, meta, nil
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return entries[start:end], meta, nil
}
