package kb

import (
	"context"
	"embed"
	"fmt"
	"math"
	"sort"
	"sync"

	contractx "github.com/coverdesk/coverdesk/agent/contract"
)

//go:embed data/insurance_kb.md
var corpus embed.FS

// DefaultCorpus returns the embedded insurance product knowledge document.
func DefaultCorpus() (string, error) {
	raw, err := corpus.ReadFile("data/insurance_kb.md")
	if err != nil {
		return "", fmt.Errorf("read embedded corpus: %w", err)
	}
	return string(raw), nil
}

type indexEntry struct {
	content string
	vector  []float64
}

// Index is an in-memory vector index over document chunks. It implements
// contract.Retriever.
type Index struct {
	embedder Embedder

	mu      sync.RWMutex
	entries []indexEntry
}

func NewIndex(embedder Embedder) (*Index, error) {
	if embedder == nil {
		return nil, fmt.Errorf("%w: index requires an embedder", contractx.ErrValidation)
	}
	return &Index{embedder: embedder}, nil
}

// AddDocument chunks the document and embeds every chunk into the index.
func (ix *Index) AddDocument(ctx context.Context, text string) (int, error) {
	chunks := SplitText(text, defaultChunkSize, defaultChunkOverlap)
	if len(chunks) == 0 {
		return 0, nil
	}
	vectors, err := ix.embedder.Embed(ctx, chunks)
	if err != nil {
		return 0, fmt.Errorf("embed document chunks: %w", err)
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()
	for i, chunk := range chunks {
		ix.entries = append(ix.entries, indexEntry{content: chunk, vector: vectors[i]})
	}
	return len(chunks), nil
}

// Search returns the k entries most similar to the query by cosine
// similarity, best first. Ties break on insertion order.
func (ix *Index) Search(ctx context.Context, query string, k int) ([]contractx.Snippet, error) {
	if k <= 0 {
		return nil, nil
	}
	vectors, err := ix.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	qv := vectors[0]

	ix.mu.RLock()
	defer ix.mu.RUnlock()

	type scored struct {
		pos   int
		score float64
	}
	results := make([]scored, 0, len(ix.entries))
	for i, entry := range ix.entries {
		results = append(results, scored{pos: i, score: cosineSimilarity(qv, entry.vector)})
	}
	sort.SliceStable(results, func(a, b int) bool {
		return results[a].score > results[b].score
	})
	if len(results) > k {
		results = results[:k]
	}

	snippets := make([]contractx.Snippet, 0, len(results))
	for _, r := range results {
		snippets = append(snippets, contractx.Snippet{
			Content: ix.entries[r.pos].content,
			Score:   r.score,
		})
	}
	return snippets, nil
}

func cosineSimilarity(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
