package model

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MoodScale is the inclusive range of accepted mood ratings.
type MoodScale struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// DefaultMoodScale is the five-step weather scale (Stormy..Radiant).
var DefaultMoodScale = MoodScale{Min: 1, Max: 5}

// Contains reports whether mood lies within the scale.
func (s MoodScale) Contains(mood int) bool {
	return mood >= s.Min && mood <= s.Max
}

// Validate checks that the scale itself is usable.
func (s MoodScale) Validate() error {
	if s.Min > s.Max {
		return NewValidationError("moodScale", fmt.Sprintf("min %d is greater than max %d", s.Min, s.Max))
	}
	return nil
}

var moodLabels = map[int]string{
	1: "Stormy",
	2: "Cloudy",
	3: "Okay",
	4: "Sunny",
	5: "Radiant",
}

// MoodLabel returns the weather label for a rating on the default scale.
// Ratings without a label fall back to "Okay".
func MoodLabel(mood int) string {
	if l, ok := moodLabels[mood]; ok {
		return l
	}
	return "Okay"
}

// Label returns the weather label for mood. Only the default scale has
// labels; other scales, and moods outside the scale, get "".
func (s MoodScale) Label(mood int) string {
	if s != DefaultMoodScale || !s.Contains(mood) {
		return ""
	}
	return MoodLabel(mood)
}

// ValidateEntry checks an entry before it is written.
// isValidDate is supplied by the caller so this package stays free of date parsing.
func ValidateEntry(e *Entry, scale MoodScale, isValidDate func(string) bool) error {
	if e == nil {
		return NewValidationError("entry", "is nil")
	}
	if e.DateISO == "" {
		return NewValidationError("dateISO", "is required")
	}
	if !isValidDate(e.DateISO) {
		return NewValidationError("dateISO", fmt.Sprintf("%q is not a YYYY-MM-DD date", e.DateISO))
	}
	if !scale.Contains(e.Mood) {
		return NewValidationError("mood", fmt.Sprintf("%d is outside %d..%d", e.Mood, scale.Min, scale.Max))
	}
	if strings.TrimSpace(e.Text) == "" {
		return NewValidationError("text", "must not be empty")
	}
	if !utf8.ValidString(e.Text) {
		return NewValidationError("text", "is not valid UTF-8")
	}
	return nil
}
