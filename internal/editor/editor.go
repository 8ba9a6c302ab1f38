package editor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// ResolveEditor determines which editor to use based on config, env vars, and fallback.
func ResolveEditor(configEditor string) string {
	if configEditor != "" {
		return configEditor
	}
	if ed := os.Getenv("EDITOR"); ed != "" {
		return ed
	}
	if ed := os.Getenv("VISUAL"); ed != "" {
		return ed
	}
	return "vi"
}

// Fields are the editable parts of an event as round-tripped through the
// external editor:
//
//	start: 09:00
//	end: 10:00
//
//	Note text, any number of lines.
type Fields struct {
	Start string
	End   string
	Note  string
}

// Render formats f as editor text.
func Render(f Fields) string {
	var b strings.Builder
	fmt.Fprintf(&b, "start: %s\n", f.Start)
	fmt.Fprintf(&b, "end: %s\n", f.End)
	b.WriteString("\n")
	b.WriteString(f.Note)
	if f.Note != "" && !strings.HasSuffix(f.Note, "\n") {
		b.WriteString("\n")
	}
	return b.String()
}

// Parse reads editor text back into Fields. Header lines run up to the first
// blank line; unknown header keys are ignored. Without a header the whole
// text is the note. Values are trimmed but not normalized.
func Parse(text string) Fields {
	var f Fields
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	i := 0
	for ; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			i++
			break
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok || !isHeaderKey(key) {
			// Not a header: everything from here is note.
			break
		}
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "start":
			f.Start = strings.TrimSpace(value)
		case "end":
			f.End = strings.TrimSpace(value)
		}
	}
	f.Note = strings.TrimSpace(strings.Join(lines[i:], "\n"))
	return f
}

func isHeaderKey(key string) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "start", "end":
		return true
	}
	return false
}

// EditFields opens f in the editor and parses the result. changed is false
// when the file was left untouched or emptied.
func EditFields(editorCmd string, f Fields) (Fields, bool, error) {
	content, changed, err := Edit(editorCmd, Render(f))
	if err != nil || !changed {
		return f, false, err
	}
	return Parse(content), true, nil
}

// Edit opens the given content in an editor and returns the edited content.
// If the user saves unchanged content or an empty file, it returns the original
// content and changed=false.
func Edit(editorCmd string, initialContent string) (content string, changed bool, err error) {
	tmp, err := os.CreateTemp("", "famcal-*.txt")
	if err != nil {
		return "", false, fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.WriteString(initialContent); err != nil {
		tmp.Close()
		return "", false, fmt.Errorf("writing temp file: %w", err)
	}
	tmp.Close()

	parts := strings.Fields(editorCmd)
	if len(parts) == 0 {
		return "", false, fmt.Errorf("empty editor command")
	}

	cmdArgs := append(parts[1:], tmpName)
	cmd := exec.Command(parts[0], cmdArgs...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return "", false, fmt.Errorf("editor exited with error: %w", err)
	}

	data, err := os.ReadFile(tmpName)
	if err != nil {
		return "", false, fmt.Errorf("reading edited file: %w", err)
	}

	result := string(data)

	if strings.TrimSpace(result) == "" {
		return "", false, nil
	}

	if strings.TrimSpace(result) == strings.TrimSpace(initialContent) {
		return initialContent, false, nil
	}

	return result, true, nil
}
