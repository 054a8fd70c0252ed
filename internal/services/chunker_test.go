package services

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestChunkKeepsShortTextWhole(t *testing.T) {
	text := "Senior Go developer.\n\nBuilt payment APIs."
	chunks := NewTextChunker(200, 20).Chunk(text)

	if len(chunks) != 1 || chunks[0] != text {
		t.Fatalf("expected one unchanged chunk, got %q", chunks)
	}
}

func TestChunkRespectsMaxSize(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 40; i++ {
		b.WriteString("Designed and operated distributed services in Go for high traffic systems. ")
		if i%5 == 4 {
			b.WriteString("\n\n")
		}
	}
	b.WriteString(strings.Repeat("ü", 700))

	const size = 300
	chunks := NewTextChunker(size, 50).Chunk(b.String())

	if len(chunks) < 2 {
		t.Fatalf("expected several chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if n := utf8.RuneCountInString(c); n > size {
			t.Fatalf("chunk %d has %d runes, max %d", i, n, size)
		}
	}
}

func TestChunkOverlapsNeighbours(t *testing.T) {
	paragraphs := []string{
		strings.Repeat("a", 80),
		strings.Repeat("b", 80),
		strings.Repeat("c", 80),
	}
	chunks := NewTextChunker(100, 10).Chunk(strings.Join(paragraphs, "\n\n"))

	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d: %q", len(chunks), chunks)
	}
	if !strings.HasPrefix(chunks[1], strings.Repeat("a", 10)+"\n\n") {
		t.Fatalf("expected second chunk to start with the tail of the first, got %q", chunks[1])
	}
}

func TestChunkEmptyText(t *testing.T) {
	if chunks := NewTextChunker(0, -1).Chunk("  \n\n "); len(chunks) != 0 {
		t.Fatalf("expected no chunks, got %q", chunks)
	}
}

func TestSplitIntoSentences(t *testing.T) {
	got := splitIntoSentences("Led a team. Shipped v2! Next? trailing")
	want := []string{"Led a team.", "Shipped v2!", "Next?", "trailing"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
