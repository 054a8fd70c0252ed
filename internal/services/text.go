package services

import "strings"

// truncateRunes cuts s to at most limit runes, never inside a rune.
func truncateRunes(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	n := 0
	for i := range s {
		if n == limit {
			return s[:i]
		}
		n++
	}
	return s
}

// excerpt is the trimmed start of s, at most limit runes plus an ellipsis.
func excerpt(s string, limit int) string {
	s = strings.TrimSpace(s)
	short := truncateRunes(s, limit)
	if short == s {
		return s
	}
	return strings.TrimSpace(short) + "..."
}
