// Package kb is the insurance knowledge base: a markdown corpus chunked,
// embedded, and searched by cosine similarity.
package kb

import "strings"

const (
	defaultChunkSize    = 1000
	defaultChunkOverlap = 200
)

// SplitText breaks text into chunks of at most chunkSize characters with
// overlap characters shared between consecutive chunks. Chunks prefer to
// break on paragraph, then line, then word boundaries near the limit.
func SplitText(text string, chunkSize, overlap int) []string {
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}
	if overlap < 0 || overlap >= chunkSize {
		overlap = defaultChunkOverlap
		if overlap >= chunkSize {
			overlap = chunkSize / 5
		}
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	runes := []rune(text)
	if len(runes) <= chunkSize {
		return []string{text}
	}

	var chunks []string
	start := 0
	for start < len(runes) {
		end := start + chunkSize
		if end >= len(runes) {
			chunk := strings.TrimSpace(string(runes[start:]))
			if chunk != "" {
				chunks = append(chunks, chunk)
			}
			break
		}
		end = breakPoint(runes, start, end)
		chunk := strings.TrimSpace(string(runes[start:end]))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}
		next := end - overlap
		if next <= start {
			next = end
		}
		start = next
	}
	return chunks
}

// breakPoint moves end back to the nearest natural boundary, scanning for a
// blank line first, then a newline, then a space. It never moves past the
// midpoint of the chunk.
func breakPoint(runes []rune, start, end int) int {
	floor := start + (end-start)/2
	for _, sep := range []string{"\n\n", "\n", " "} {
		window := string(runes[floor:end])
		if idx := strings.LastIndex(window, sep); idx > 0 {
			return floor + len([]rune(window[:idx]))
		}
	}
	return end
}
