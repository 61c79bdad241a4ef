package rag

import (
	"slices"

	"pdfagent/internal/indexer"
)

// ScoredChunk pairs a chunk with its token-overlap score against a query.
type ScoredChunk struct {
	Chunk indexer.Chunk
	Score int
}

// RetrieveTopK scores every chunk by the number of distinct tokens it shares with
// the query and returns at most topK entries, highest score first.
// Equal scores keep the input order. Zero-score entries are not filtered out.
func RetrieveTopK(query string, chunks []indexer.Chunk, topK int) []ScoredChunk {
	if len(chunks) == 0 || topK <= 0 {
		return []ScoredChunk{}
	}

	queryTokens := tokenSet(query)
	scored := make([]ScoredChunk, 0, len(chunks))
	for _, chunk := range chunks {
		scored = append(scored, ScoredChunk{
			Chunk: chunk,
			Score: overlap(queryTokens, tokenSet(chunk.Text)),
		})
	}

	slices.SortStableFunc(scored, func(a, b ScoredChunk) int {
		return b.Score - a.Score
	})

	if len(scored) > topK {
		scored = scored[:topK]
	}
	return scored
}

// AllZero reports whether no returned chunk matched any query token.
// An empty result also counts as no hits.
func AllZero(results []ScoredChunk) bool {
	for _, r := range results {
		if r.Score > 0 {
			return false
		}
	}
	return true
}

// Preview returns the first n runes of text, with "..." appended when truncated.
func Preview(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n]) + "..."
}

func overlap(a, b map[string]struct{}) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	count := 0
	for token := range a {
		if _, ok := b[token]; ok {
			count++
		}
	}
	return count
}
