package engine

import "strings"

// Chunk is a contiguous passage of a transcript used as the retrieval unit.
type Chunk struct {
	Index int    // position in the chunk sequence
	Start int    // byte offset into the source text
	Text  string
}

// splitSeparators, in preference order: paragraph break, line break, sentence
// end, word boundary. A hard character cut is the last resort — mid-word
// boundaries degrade embedding quality.
var splitSeparators = []string{"\n\n", "\n", ". ", " "}

// SplitText splits text into chunks of at most size characters, adjacent
// chunks overlapping by roughly overlap characters. Pure function: identical
// input and config always yield the identical chunk sequence.
func SplitText(text string, size, overlap int) []Chunk {
	if size <= 0 {
		return nil
	}
	if overlap < 0 || overlap >= size {
		overlap = 0
	}
	if text == "" {
		return nil
	}

	var chunks []Chunk
	start := 0
	for start < len(text) {
		end := start + size
		if end >= len(text) {
			chunks = append(chunks, Chunk{Index: len(chunks), Start: start, Text: text[start:]})
			break
		}

		cut := cutPoint(text, start, end)
		chunks = append(chunks, Chunk{Index: len(chunks), Start: start, Text: text[start:cut]})

		next := cut - overlap
		if next <= start {
			next = cut // overlap would stall progress; drop it for this step
		}
		start = next
	}
	return chunks
}

// cutPoint finds the best split position in (start, end]. Separators are
// tried in preference order; a candidate is accepted only in the second half
// of the window so boundary-seeking never produces tiny chunks.
func cutPoint(text string, start, end int) int {
	half := start + (end-start)/2
	for _, sep := range splitSeparators {
		idx := strings.LastIndex(text[start:end], sep)
		if idx < 0 {
			continue
		}
		cut := start + idx + len(sep)
		if cut > half {
			return cut
		}
	}
	return end // hard cut
}
