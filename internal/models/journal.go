package models

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// DateLayout is the calendar-day format used by every storage tier.
const DateLayout = "2006-01-02"

// GratitudeSlots is the number of gratitude prompts shown per day.
const GratitudeSlots = 5

// Default visual settings applied to fresh entries and to records missing them.
const (
	DefaultBackgroundColor = "#ffffff"
	DefaultTextColor       = "#333333"
	DefaultFontFamily      = "Arial, sans-serif"
	DefaultFontSize        = "16px"
)

var (
	ErrInvalidDate  = errors.New("invalid date: use YYYY-MM-DD")
	ErrInvalidOwner = errors.New("owner id is required")
	ErrInvalidEntry = errors.New("invalid journal entry")
)

// ValidationError describes a single rejected field of an entry.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidEntry
}

// Position is where a sticker is placed on the page, in CSS pixels.
type Position struct {
	X float64 `bson:"x" json:"x"`
	Y float64 `bson:"y" json:"y"`
}

// Sticker is a decorative glyph (or uploaded image URL) placed on an entry.
type Sticker struct {
	ID       string   `bson:"id" json:"id"`
	Type     string   `bson:"type" json:"type"`
	Position Position `bson:"position" json:"position"`
}

// VisualSettings is the purely cosmetic part of an entry.
type VisualSettings struct {
	BackgroundColor string    `bson:"background_color" json:"background_color"`
	TextColor       string    `bson:"text_color" json:"text_color"`
	FontFamily      string    `bson:"font_family" json:"font_family"`
	FontSize        string    `bson:"font_size" json:"font_size"`
	Stickers        []Sticker `bson:"stickers" json:"stickers"`
}

// DefaultVisualSettings returns the look of a fresh page.
func DefaultVisualSettings() VisualSettings {
	return VisualSettings{
		BackgroundColor: DefaultBackgroundColor,
		TextColor:       DefaultTextColor,
		FontFamily:      DefaultFontFamily,
		FontSize:        DefaultFontSize,
		Stickers:        []Sticker{},
	}
}

// EntryData is the user-editable part of a journal entry.
type EntryData struct {
	GratitudeAnswers []string        `json:"gratitude_answers"`
	Emotion          string          `json:"emotion,omitempty"`
	EmotionAnswers   []string        `json:"emotion_answers"`
	CustomText       string          `json:"custom_text,omitempty"`
	VisualSettings   *VisualSettings `json:"visual_settings,omitempty"`
}

// Validate checks the invariants a save must respect. Empty strings are valid placeholders.
func (d EntryData) Validate() error {
	if len(d.GratitudeAnswers) > GratitudeSlots {
		return &ValidationError{Field: "gratitude_answers", Message: fmt.Sprintf("at most %d answers allowed", GratitudeSlots)}
	}
	if d.Emotion != "" && !IsCanonicalEmotion(d.Emotion) {
		if IsKnownEmotion(d.Emotion) {
			return &ValidationError{Field: "emotion", Message: fmt.Sprintf("emotion %q must be lowercase with no surrounding spaces", d.Emotion)}
		}
		return &ValidationError{Field: "emotion", Message: fmt.Sprintf("unknown emotion %q", d.Emotion)}
	}
	if d.VisualSettings != nil {
		seen := make(map[string]struct{}, len(d.VisualSettings.Stickers))
		for _, s := range d.VisualSettings.Stickers {
			if s.ID == "" {
				return &ValidationError{Field: "visual_settings.stickers", Message: "sticker id is required"}
			}
			if _, dup := seen[s.ID]; dup {
				return &ValidationError{Field: "visual_settings.stickers", Message: fmt.Sprintf("duplicate sticker id %q", s.ID)}
			}
			seen[s.ID] = struct{}{}
		}
	}
	return nil
}

// JournalEntry is the single logical entry a user has for one calendar day.
type JournalEntry struct {
	ID               string         `bson:"_id" json:"id"`
	OwnerID          string         `bson:"owner_id" json:"owner_id"`
	Date             string         `bson:"date" json:"date"`
	GratitudeAnswers []string       `bson:"gratitude_answers" json:"gratitude_answers"`
	Emotion          string         `bson:"emotion,omitempty" json:"emotion,omitempty"`
	EmotionAnswers   []string       `bson:"emotion_answers" json:"emotion_answers"`
	CustomText       string         `bson:"custom_text,omitempty" json:"custom_text,omitempty"`
	VisualSettings   VisualSettings `bson:"visual_settings" json:"visual_settings"`
	CreatedAt        time.Time      `bson:"created_at" json:"created_at,omitzero"`
	UpdatedAt        time.Time      `bson:"updated_at" json:"updated_at,omitzero"`
	SavedAt          time.Time      `bson:"-" json:"saved_at,omitzero"`
}

// EntryKey is the canonical identity shared by every storage tier.
func EntryKey(ownerID, date string) string {
	return ownerID + "_" + date
}

// ValidateDate reports whether date is a real YYYY-MM-DD calendar day.
func ValidateDate(date string) error {
	t, err := time.Parse(DateLayout, date)
	if err != nil || t.Format(DateLayout) != date {
		return ErrInvalidDate
	}
	return nil
}

// FreshEntry is what a user sees for a day with nothing stored yet.
func FreshEntry(ownerID, date string) JournalEntry {
	return JournalEntry{
		ID:               EntryKey(ownerID, date),
		OwnerID:          ownerID,
		Date:             date,
		GratitudeAnswers: make([]string, GratitudeSlots),
		EmotionAnswers:   []string{},
		VisualSettings:   DefaultVisualSettings(),
	}
}

// Apply copies the editable fields of d onto the entry, defaulting what d leaves out.
func (e *JournalEntry) Apply(d EntryData) {
	e.GratitudeAnswers = cloneStrings(d.GratitudeAnswers)
	e.Emotion = d.Emotion
	e.EmotionAnswers = cloneStrings(d.EmotionAnswers)
	e.CustomText = d.CustomText
	if d.VisualSettings != nil {
		e.VisualSettings = d.VisualSettings.clone()
	} else {
		e.VisualSettings = VisualSettings{}
	}
	e.Normalize()
}

// Data returns the editable part of the entry.
func (e JournalEntry) Data() EntryData {
	vs := e.VisualSettings.clone()
	return EntryData{
		GratitudeAnswers: cloneStrings(e.GratitudeAnswers),
		Emotion:          e.Emotion,
		EmotionAnswers:   cloneStrings(e.EmotionAnswers),
		CustomText:       e.CustomText,
		VisualSettings:   &vs,
	}
}

// Normalize fills missing fields with defaults so a partially written record is still usable.
func (e *JournalEntry) Normalize() {
	if e.ID == "" && e.OwnerID != "" && e.Date != "" {
		e.ID = EntryKey(e.OwnerID, e.Date)
	}
	if e.GratitudeAnswers == nil {
		e.GratitudeAnswers = make([]string, GratitudeSlots)
	}
	if e.EmotionAnswers == nil {
		e.EmotionAnswers = []string{}
	}
	vs := &e.VisualSettings
	if vs.BackgroundColor == "" {
		vs.BackgroundColor = DefaultBackgroundColor
	}
	if vs.TextColor == "" {
		vs.TextColor = DefaultTextColor
	}
	if vs.FontFamily == "" {
		vs.FontFamily = DefaultFontFamily
	}
	if vs.FontSize == "" {
		vs.FontSize = DefaultFontSize
	}
	if vs.Stickers == nil {
		vs.Stickers = []Sticker{}
	}
}

// Clone returns a deep copy so cached entries cannot be mutated by callers.
func (e JournalEntry) Clone() JournalEntry {
	out := e
	out.GratitudeAnswers = cloneStrings(e.GratitudeAnswers)
	out.EmotionAnswers = cloneStrings(e.EmotionAnswers)
	out.VisualSettings = e.VisualSettings.clone()
	return out
}

func (v VisualSettings) clone() VisualSettings {
	out := v
	if v.Stickers != nil {
		out.Stickers = make([]Sticker, len(v.Stickers))
		copy(out.Stickers, v.Stickers)
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// CloneEntries deep-copies a slice of entries.
func CloneEntries(in []JournalEntry) []JournalEntry {
	out := make([]JournalEntry, len(in))
	for i, e := range in {
		out[i] = e.Clone()
	}
	return out
}

// SortByDateDesc orders entries newest day first. Dates are unique per owner, so the
// stable sort only matters for malformed input.
func SortByDateDesc(entries []JournalEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date > entries[j].Date
	})
}

// UpsertEntry replaces the entry with the same date in place, or inserts it at the head.
func UpsertEntry(entries []JournalEntry, e JournalEntry) []JournalEntry {
	for i := range entries {
		if entries[i].Date == e.Date {
			entries[i] = e
			return entries
		}
	}
	return append([]JournalEntry{e}, entries...)
}

// FindEntry returns the entry for date, if present.
func FindEntry(entries []JournalEntry, date string) (JournalEntry, bool) {
	for _, e := range entries {
		if e.Date == date {
			return e, true
		}
	}
	return JournalEntry{}, false
}
