package ui

import "regexp"

var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// stripANSI removes ANSI escape sequences from a string.
// This is a test utility function used to strip color codes for assertion testing.
func stripANSI(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}
