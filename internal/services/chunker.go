package services

import (
	"strings"
	"unicode/utf8"
)

const (
	defaultChunkSize    = 1000
	defaultChunkOverlap = 150
)

// TextChunker splits resume text into overlapping pieces for embedding.
// Sizes are counted in runes.
type TextChunker struct {
	maxChunkSize int
	overlap      int
}

func NewTextChunker(maxChunkSize, overlap int) *TextChunker {
	if maxChunkSize <= 0 {
		maxChunkSize = defaultChunkSize
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= maxChunkSize {
		overlap = maxChunkSize / 4
	}
	return &TextChunker{maxChunkSize: maxChunkSize, overlap: overlap}
}

func (tc *TextChunker) Chunk(text string) []string {
	var chunks []string
	var current strings.Builder

	// add appends piece, starting a new chunk when it would not fit. The new
	// chunk opens with the tail of the previous one, as far as room allows.
	add := func(piece, sep string) {
		sepLen := runeLen(sep)
		if current.Len() > 0 && runeLen(current.String())+sepLen+runeLen(piece) > tc.maxChunkSize {
			prev := current.String()
			chunks = append(chunks, prev)
			current.Reset()
			if room := tc.maxChunkSize - runeLen(piece) - sepLen; room > 0 {
				current.WriteString(lastRunes(prev, min(tc.overlap, room)))
			}
		}
		if current.Len() > 0 {
			current.WriteString(sep)
		}
		current.WriteString(piece)
	}

	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}

		if runeLen(para) <= tc.maxChunkSize {
			add(para, "\n\n")
			continue
		}
		for _, sentence := range splitIntoSentences(para) {
			for _, piece := range splitByRunes(sentence, tc.maxChunkSize) {
				add(piece, " ")
			}
		}
	}

	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}
	return chunks
}

// splitIntoSentences keeps the terminating punctuation with each sentence.
func splitIntoSentences(text string) []string {
	var result []string
	start := 0
	for i, r := range text {
		if r == '.' || r == '!' || r == '?' {
			if s := strings.TrimSpace(text[start : i+1]); s != "" {
				result = append(result, s)
			}
			start = i + 1
		}
	}
	if s := strings.TrimSpace(text[start:]); s != "" {
		result = append(result, s)
	}
	return result
}

func splitByRunes(text string, size int) []string {
	runes := []rune(text)
	if len(runes) <= size {
		return []string{text}
	}
	var parts []string
	for len(runes) > size {
		parts = append(parts, string(runes[:size]))
		runes = runes[size:]
	}
	if len(runes) > 0 {
		parts = append(parts, string(runes))
	}
	return parts
}

func lastRunes(text string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[len(runes)-n:])
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
