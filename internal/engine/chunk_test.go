package engine

import (
	"strings"
	"testing"
)

func TestSplitTextShortInput(t *testing.T) {
	chunks := SplitText("a short transcript", 1000, 200)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Text != "a short transcript" {
		t.Errorf("chunk text = %q", chunks[0].Text)
	}
	if chunks[0].Index != 0 || chunks[0].Start != 0 {
		t.Errorf("chunk index/start = %d/%d", chunks[0].Index, chunks[0].Start)
	}
}

func TestSplitTextEmpty(t *testing.T) {
	if chunks := SplitText("", 1000, 200); chunks != nil {
		t.Errorf("expected nil for empty input, got %d chunks", len(chunks))
	}
}

func TestSplitTextSizes(t *testing.T) {
	text := strings.Repeat("one two three four five six seven eight nine ten. ", 100)
	chunks := SplitText(text, 1000, 200)

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for _, c := range chunks {
		if len(c.Text) > 1000 {
			t.Errorf("chunk %d has %d chars, limit 1000", c.Index, len(c.Text))
		}
		if c.Text == "" {
			t.Errorf("chunk %d is empty", c.Index)
		}
	}
	for i, c := range chunks {
		if c.Index != i {
			t.Errorf("chunk %d carries index %d", i, c.Index)
		}
	}
}

func TestSplitTextDeterministic(t *testing.T) {
	text := strings.Repeat("sentence one. sentence two.\n\nparagraph two here. ", 80)

	a := SplitText(text, 1000, 200)
	b := SplitText(text, 1000, 200)

	if len(a) != len(b) {
		t.Fatalf("chunk counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("chunk %d differs between identical runs", i)
		}
	}
}

func TestSplitTextPrefersWordBoundaries(t *testing.T) {
	// Plain prose with spaces: no chunk should end mid-word.
	words := strings.Repeat("alpha bravo charlie delta echo foxtrot ", 100)
	chunks := SplitText(words, 500, 100)

	for _, c := range chunks[:len(chunks)-1] {
		if !strings.HasSuffix(c.Text, " ") && !strings.HasSuffix(c.Text, ".") {
			t.Errorf("chunk %d ends mid-word: ...%q", c.Index, c.Text[len(c.Text)-10:])
		}
	}
}

func TestSplitTextPrefersParagraphBoundaries(t *testing.T) {
	para := strings.Repeat("word ", 80) // ~400 chars
	text := para + "\n\n" + para + "\n\n" + para

	chunks := SplitText(text, 500, 0)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	// With paragraph breaks inside the window, the first cut lands on one.
	if !strings.HasSuffix(chunks[0].Text, "\n\n") {
		t.Errorf("first chunk should end at a paragraph break, ends %q", chunks[0].Text[len(chunks[0].Text)-6:])
	}
}

func TestSplitTextOverlap(t *testing.T) {
	text := strings.Repeat("abcdefghi ", 200) // 2000 chars
	chunks := SplitText(text, 500, 100)

	for i := 1; i < len(chunks); i++ {
		prevEnd := chunks[i-1].Start + len(chunks[i-1].Text)
		if chunks[i].Start >= prevEnd {
			t.Errorf("chunks %d and %d do not overlap (start %d, prev end %d)",
				i-1, i, chunks[i].Start, prevEnd)
		}
		if chunks[i].Start <= chunks[i-1].Start {
			t.Errorf("chunk %d does not advance past chunk %d", i, i-1)
		}
	}
}

func TestSplitTextHardCutWithoutSeparators(t *testing.T) {
	text := strings.Repeat("x", 2500) // no separators at all
	chunks := SplitText(text, 1000, 0)

	if len(chunks) != 3 {
		t.Fatalf("expected 3 hard-cut chunks, got %d", len(chunks))
	}
	if len(chunks[0].Text) != 1000 || len(chunks[1].Text) != 1000 || len(chunks[2].Text) != 500 {
		t.Errorf("chunk sizes = %d/%d/%d", len(chunks[0].Text), len(chunks[1].Text), len(chunks[2].Text))
	}
}
