package ai

import (
	"strings"
	"unicode"
)

// CleanResponse trims a completion and strips a wrapping markdown code fence.
func CleanResponse(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	// Drop the info string (```markdown, ```json, ...) up to the first newline.
	if nl := strings.IndexByte(s, '\n'); nl >= 0 && !strings.Contains(s[:nl], " ") {
		s = s[nl+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// ParseTaskLines splits a completion into task titles.
// Bullets and numbering are removed; blank lines are dropped.
func ParseTaskLines(s string) []string {
	tasks := []string{}
	for _, line := range strings.Split(s, "\n") {
		line = stripListMarker(strings.TrimSpace(line))
		if line != "" {
			tasks = append(tasks, line)
		}
	}
	return tasks
}

// stripListMarker removes a leading "-", "*", "•", "1." or "1)" marker.
func stripListMarker(line string) string {
	for _, bullet := range []string{"- ", "* ", "• ", "•"} {
		if strings.HasPrefix(line, bullet) {
			return strings.TrimSpace(strings.TrimPrefix(line, bullet))
		}
	}
	if line == "-" || line == "*" {
		return ""
	}

	digits := 0
	for digits < len(line) && line[digits] >= '0' && line[digits] <= '9' {
		digits++
	}
	if digits > 0 && digits < len(line) && (line[digits] == '.' || line[digits] == ')') {
		rest := line[digits+1:]
		if rest == "" || unicode.IsSpace(rune(rest[0])) {
			return strings.TrimSpace(rest)
		}
	}
	return line
}

// NormalizeTaskTitle reduces a speech-to-task completion to a single title:
// first non-empty line, surrounding quotes and a trailing period removed.
func NormalizeTaskTitle(s string) string {
	var title string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			title = line
			break
		}
	}
	title = strings.TrimSuffix(stripListMarker(title), ".")
	for _, pair := range [][2]string{{`"`, `"`}, {"'", "'"}, {"“", "”"}} {
		if len(title) >= 2 && strings.HasPrefix(title, pair[0]) && strings.HasSuffix(title, pair[1]) {
			title = strings.TrimSpace(title[len(pair[0]) : len(title)-len(pair[1])])
		}
	}
	title = strings.TrimSuffix(title, ".")
	return strings.TrimSpace(title)
}
