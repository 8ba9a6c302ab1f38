package event

import (
	"errors"
	"testing"
	"unicode/utf8"
)

func TestNormalizeTime(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"8", "08:00"},
		{"8:5", "08:05"},
		{"08", "08:00"},
		{"08:00", "08:00"},
		{"25:90", "23:59"},
		{"23:59", "23:59"},
		{"0:0", "00:00"},
		{" 9:30 ", "09:30"},
		{"", ""},
		{"   ", ""},
		{"abc", "abc"},
		{"9.30", "9.30"},
		{"123", "123"},
		{"9:", "9:"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := NormalizeTime(tt.in); got != tt.want {
				t.Errorf("NormalizeTime(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id, err := NewID()
		if err != nil {
			t.Fatalf("NewID: %v", err)
		}
		if len(id) != idLength {
			t.Errorf("id %q has length %d, want %d", id, len(id), idLength)
		}
		if seen[id] {
			t.Errorf("duplicate id %q", id)
		}
		seen[id] = true
	}
}

func TestValidateDate(t *testing.T) {
	for _, d := range []string{"2024-01-05", "2024-02-29", "1999-12-31"} {
		if err := ValidateDate(d); err != nil {
			t.Errorf("ValidateDate(%q) = %v, want nil", d, err)
		}
	}
	for _, d := range []string{"", "2024-1-5", "2023-02-29", "2024-13-01", "tomorrow"} {
		err := ValidateDate(d)
		if !errors.Is(err, ErrInvalidDate) {
			t.Errorf("ValidateDate(%q) = %v, want ErrInvalidDate", d, err)
		}
	}
}

func TestLabel(t *testing.T) {
	tests := []struct {
		name string
		ev   Event
		want string
	}{
		{"range", Event{Start: "09:00", End: "10:00", Note: "dentist"}, "09:00-10:00"},
		{"start only", Event{Start: "09:00", Note: "dentist"}, "dentist"},
		{"note only", Event{Note: "vacation"}, "vacation"},
		{"empty", Event{}, "Tid"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ev.Label(); got != tt.want {
				t.Errorf("Label() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPreview(t *testing.T) {
	e := Event{Note: "line one\nline two"}
	if got := e.Preview(80); got != "line one line two" {
		t.Errorf("Preview = %q", got)
	}
	if got := e.Preview(10); got != "line on..." {
		t.Errorf("Preview(10) = %q", got)
	}

	dk := Event{Note: "Tandlæge og æbler til børnene"}
	if got := dk.Preview(9); got != "Tandlæ..." || !utf8.ValidString(got) {
		t.Errorf("Preview(9) = %q", got)
	}
	if got := (Event{Note: "æøå"}).Preview(3); got != "æøå" {
		t.Errorf("Preview(3) = %q", got)
	}
}
