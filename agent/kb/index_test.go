package kb

import (
	"context"
	"strings"
	"testing"
)

// keywordEmbedder scores each text against a fixed vocabulary so similarity
// is predictable without a real embeddings API.
type keywordEmbedder struct {
	vocabulary []string
}

func (e *keywordEmbedder) Embed(_ context.Context, texts []string) ([][]float64, error) {
	vectors := make([][]float64, len(texts))
	for i, text := range texts {
		lower := strings.ToLower(text)
		v := make([]float64, len(e.vocabulary))
		for j, word := range e.vocabulary {
			v[j] = float64(strings.Count(lower, word))
		}
		vectors[i] = v
	}
	return vectors, nil
}

func TestSplitTextShortDocument(t *testing.T) {
	t.Parallel()

	chunks := SplitText("a short document", defaultChunkSize, defaultChunkOverlap)
	if len(chunks) != 1 || chunks[0] != "a short document" {
		t.Fatalf("short document should be a single chunk, got %v", chunks)
	}
}

func TestSplitTextChunkBounds(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	for i := 0; i < 120; i++ {
		b.WriteString("Paragraph about insurance coverage, premiums, and deductibles.\n\n")
	}
	chunks := SplitText(b.String(), defaultChunkSize, defaultChunkOverlap)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, chunk := range chunks {
		if n := len([]rune(chunk)); n > defaultChunkSize {
			t.Fatalf("chunk %d has %d runes, exceeds limit %d", i, n, defaultChunkSize)
		}
	}
}

func TestSplitTextEmpty(t *testing.T) {
	t.Parallel()

	if chunks := SplitText("   \n  ", defaultChunkSize, defaultChunkOverlap); chunks != nil {
		t.Fatalf("whitespace-only input should produce no chunks, got %v", chunks)
	}
}

func TestIndexSearchRanksBySimilarity(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	embedder := &keywordEmbedder{vocabulary: []string{"auto", "life", "health", "premium"}}
	ix, err := NewIndex(embedder)
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}

	docs := []string{
		"Auto insurance covers vehicles. Auto policies include liability.",
		"Life insurance pays beneficiaries. Life policies build cash value.",
		"Health insurance covers medical care and prescriptions.",
	}
	for _, doc := range docs {
		if _, err := ix.AddDocument(ctx, doc); err != nil {
			t.Fatalf("AddDocument: %v", err)
		}
	}

	snippets, err := ix.Search(ctx, "tell me about life insurance", 2)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(snippets) != 2 {
		t.Fatalf("expected 2 snippets, got %d", len(snippets))
	}
	if !strings.Contains(strings.ToLower(snippets[0].Content), "life insurance pays") {
		t.Fatalf("best match should be the life chunk, got %q", snippets[0].Content)
	}
	if snippets[0].Score < snippets[1].Score {
		t.Fatalf("results not sorted by score: %v then %v", snippets[0].Score, snippets[1].Score)
	}
}

func TestIndexSearchReturnsAtMostAvailable(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	embedder := &keywordEmbedder{vocabulary: []string{"insurance"}}
	ix, err := NewIndex(embedder)
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}
	if _, err := ix.AddDocument(ctx, "insurance one\n\ninsurance two\n\ninsurance three"); err != nil {
		t.Fatalf("AddDocument: %v", err)
	}

	snippets, err := ix.Search(ctx, "insurance", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(snippets) != 1 {
		// The three lines fit a single chunk.
		t.Fatalf("expected 1 snippet, got %d", len(snippets))
	}
}

func TestDefaultCorpusMentionsAllProducts(t *testing.T) {
	t.Parallel()

	text, err := DefaultCorpus()
	if err != nil {
		t.Fatalf("DefaultCorpus: %v", err)
	}
	lower := strings.ToLower(text)
	for _, product := range []string{"auto insurance", "home insurance", "life insurance", "health insurance"} {
		if !strings.Contains(lower, product) {
			t.Fatalf("corpus missing %q", product)
		}
	}
}
