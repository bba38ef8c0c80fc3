package agent

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestChunkShortMessageSingleChunk(t *testing.T) {
	chunks := chunkMessage("hi", 4096)
	if len(chunks) != 1 || chunks[0] != "hi" {
		t.Errorf("expected single chunk, got %v", chunks)
	}
}

func TestChunkEmptyMessage(t *testing.T) {
	chunks := chunkMessage("", 10)
	if len(chunks) != 1 || chunks[0] != "" {
		t.Errorf("expected one empty chunk, got %v", chunks)
	}
}

func TestChunkExactBoundary(t *testing.T) {
	chunks := chunkMessage(strings.Repeat("x", 10), 5)
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}

	for i, c := range chunks {
		if len(c) != 5 {
			t.Errorf("chunk %d has length %d, want 5", i, len(c))
		}
	}
}

func TestChunkLosslessAndOrdered(t *testing.T) {
	inputs := []string{
		"hello world",
		strings.Repeat("abc", 1000),
		"日本語のテキストです。" + strings.Repeat("多バイト", 500),
		"mixed ascii and 日本語 and émojis 🎉🎊 interleaved",
	}
	limits := []int{1, 2, 3, 7, 100, 4096}

	for _, s := range inputs {
		for _, n := range limits {
			chunks := chunkMessage(s, n)

			if got := strings.Join(chunks, ""); got != s {
				t.Errorf("chunk(%d) lost content: %d chars in, %d out", n, len(s), len(got))
			}

			for i, c := range chunks {
				if utf8.RuneCountInString(c) > n {
					t.Errorf("chunk(%d)[%d] has %d runes", n, i, utf8.RuneCountInString(c))
				}
				if !utf8.ValidString(c) {
					t.Errorf("chunk(%d)[%d] is not valid UTF-8", n, i)
				}
			}

			// only the last chunk may be short
			for i, c := range chunks[:len(chunks)-1] {
				if utf8.RuneCountInString(c) != n {
					t.Errorf("chunk(%d)[%d] is not full width", n, i)
				}
			}
		}
	}
}
