// Package event provides the single-day Event type owned by a person,
// together with ID generation and the time-of-day normalizer.
package event

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	idLength   = 8

	// DateLayout is the layout of Event.Date.
	DateLayout = "2006-01-02"
)

var (
	timePattern = regexp.MustCompile(`^(\d{1,2})(?::(\d{1,2}))?$`)

	// ErrInvalidDate indicates that a date is not a YYYY-MM-DD calendar date.
	ErrInvalidDate = errors.New("invalid date: use YYYY-MM-DD")
)

// Event is a single-day calendar event. A person holds at most one event per date.
type Event struct {
	ID    string `json:"id"`
	Date  string `json:"date"`
	Start string `json:"start"`
	End   string `json:"end"`
	Note  string `json:"note"`
}

// NewID generates a new 8-character lowercase alphanumeric event ID.
func NewID() (string, error) {
	return gonanoid.Generate(idAlphabet, idLength)
}

// ValidateDate checks that date is a real calendar date in YYYY-MM-DD form.
func ValidateDate(date string) error {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return nil
}

// NormalizeTime turns free-form hour/minute text into "HH:MM".
//
//	"8"     -> "08:00"
//	"8:5"   -> "08:05"
//	"25:90" -> "23:59"
//	""      -> ""
//	"abc"   -> "abc"
//
// Input that does not look like hours with optional minutes is returned as-is
// (trimmed) so callers can treat it as free text.
func NormalizeTime(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	m := timePattern.FindStringSubmatch(s)
	if m == nil {
		return s
	}
	h, _ := strconv.Atoi(m[1])
	minute := 0
	if m[2] != "" {
		minute, _ = strconv.Atoi(m[2])
	}
	return fmt.Sprintf("%02d:%02d", clamp(h, 0, 23), clamp(minute, 0, 59))
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}

// Label is the short text shown for the event inside a day cell.
func (e Event) Label() string {
	if e.Start != "" && e.End != "" {
		return e.Start + "-" + e.End
	}
	if e.Note != "" {
		return e.Note
	}
	return "Tid"
}

// Span returns "start - end" for list views.
func (e Event) Span() string {
	return fmt.Sprintf("%s - %s", e.Start, e.End)
}

// Preview returns the note on a single line, truncated to maxLen runes.
func (e Event) Preview(maxLen int) string {
	note := strings.ReplaceAll(e.Note, "\n", " ")
	r := []rune(note)
	if len(r) <= maxLen {
		return note
	}
	return string(r[:maxLen-3]) + "..."
}
