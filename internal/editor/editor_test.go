package editor

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveEditorConfig(t *testing.T) {
	result := ResolveEditor("nano")
	if result != "nano" {
		t.Errorf("expected nano, got %q", result)
	}
}

func TestResolveEditorEnvEditor(t *testing.T) {
	t.Setenv("EDITOR", "vim")
	t.Setenv("VISUAL", "code")
	result := ResolveEditor("")
	if result != "vim" {
		t.Errorf("expected vim (from EDITOR), got %q", result)
	}
}

func TestResolveEditorFallback(t *testing.T) {
	t.Setenv("EDITOR", "")
	t.Setenv("VISUAL", "")
	result := ResolveEditor("")
	if result != "vi" {
		t.Errorf("expected vi (fallback), got %q", result)
	}
}

func TestRenderParseRoundTrip(t *testing.T) {
	in := Fields{Start: "09:00", End: "10:00", Note: "Swimming\nbring towel"}
	got := Parse(Render(in))
	if got != in {
		t.Errorf("round trip = %+v, want %+v", got, in)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Fields
	}{
		{"header only", "start: 8\nend:\n", Fields{Start: "8"}},
		{"no header", "just a note\nsecond line", Fields{Note: "just a note\nsecond line"}},
		{"case and spacing", "Start :  7:30 \nEND: 9\n\n  note  \n", Fields{Start: "7:30", End: "9", Note: "note"}},
		{"crlf", "start: 1\r\nend: 2\r\n\r\nx", Fields{Start: "1", End: "2", Note: "x"}},
		{"note with colon", "start: 1\nMeet: at noon", Fields{Start: "1", Note: "Meet: at noon"}},
		{"empty", "", Fields{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Parse(tt.text); got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.text, got, tt.want)
			}
		})
	}
}

func TestEditWithTrueCommand(t *testing.T) {
	// 'true' exits successfully without modifying the file
	content, changed, err := Edit("true", "original content")
	if err != nil {
		t.Fatalf("Edit: %v", err)
	}
	if changed {
		t.Error("expected changed=false for unchanged content")
	}
	if content != "original content" {
		t.Errorf("content = %q, want %q", content, "original content")
	}
}

func TestEditEmptyResult(t *testing.T) {
	content, changed, err := Edit("sh -c 'truncate -s 0'", "original")
	if err != nil {
		t.Fatalf("Edit: %v", err)
	}
	if changed {
		t.Error("expected changed=false for empty result")
	}
	if content != "" {
		t.Errorf("content = %q, want empty", content)
	}
}

func TestEditFields(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "ed.sh")
	body := "#!/bin/sh\nprintf 'start: 14\\nend: 15\\n\\nPiano lesson\\n' > \"$1\"\n"
	if err := os.WriteFile(script, []byte(body), 0o755); err != nil {
		t.Fatal(err)
	}

	got, changed, err := EditFields("sh "+script, Fields{Note: "old"})
	if err != nil {
		t.Fatalf("EditFields: %v", err)
	}
	if !changed {
		t.Fatal("expected changed=true")
	}
	want := Fields{Start: "14", End: "15", Note: "Piano lesson"}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}

	same, changed, err := EditFields("true", Fields{Note: "keep"})
	if err != nil || changed || same.Note != "keep" {
		t.Errorf("unchanged edit = %+v, %v, %v", same, changed, err)
	}
}
