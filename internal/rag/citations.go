package rag

import "regexp"

var citationPattern = regexp.MustCompile(`\[(p\d+-c\d{2,})\]`)

// ExtractCitations returns the chunk IDs cited as [pN-cNN] in answer,
// in order of first appearance and without duplicates.
func ExtractCitations(answer string) []string {
	matches := citationPattern.FindAllStringSubmatch(answer, -1)
	citations := make([]string, 0, len(matches))
	seen := make(map[string]bool, len(matches))
	for _, m := range matches {
		id := m[1]
		if seen[id] {
			continue
		}
		seen[id] = true
		citations = append(citations, id)
	}
	return citations
}

func unknownCitations(citations []string, retrieved []ScoredChunk) []string {
	known := make(map[string]bool, len(retrieved))
	for _, r := range retrieved {
		known[r.Chunk.ChunkID] = true
	}
	var unknown []string
	for _, id := range citations {
		if !known[id] {
			unknown = append(unknown, id)
		}
	}
	return unknown
}
