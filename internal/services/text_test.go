package services

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncateRunesKeepsValidUTF8(t *testing.T) {
	s := strings.Repeat("a", 3) + strings.Repeat("ü", 5)

	got := truncateRunes(s, 4)
	if got != "aaaü" {
		t.Fatalf("expected %q, got %q", "aaaü", got)
	}
	for limit := 0; limit <= utf8.RuneCountInString(s)+1; limit++ {
		if out := truncateRunes(s, limit); !utf8.ValidString(out) {
			t.Fatalf("limit %d produced invalid UTF-8 %q", limit, out)
		}
	}
	if truncateRunes(s, 100) != s {
		t.Fatalf("short text must be unchanged")
	}
}

func TestEmbeddingInputIsCappedOnRuneBoundary(t *testing.T) {
	text := strings.Repeat("é", maxEmbedChars+10)

	got := embeddingInput(text)
	if !utf8.ValidString(got) || utf8.RuneCountInString(got) != maxEmbedChars {
		t.Fatalf("expected %d valid runes, got %d (valid=%v)", maxEmbedChars, utf8.RuneCountInString(got), utf8.ValidString(got))
	}
}

func TestExcerpt(t *testing.T) {
	tests := []struct {
		in    string
		limit int
		want  string
	}{
		{"  short text  ", 20, "short text"},
		{"Go services and more", 11, "Go services..."},
		{"äöü äöü", 4, "äöü..."},
	}
	for _, tc := range tests {
		if got := excerpt(tc.in, tc.limit); got != tc.want {
			t.Errorf("excerpt(%q, %d) = %q, want %q", tc.in, tc.limit, got, tc.want)
		}
	}
}
