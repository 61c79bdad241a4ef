package indexer

// PageText is the raw text of one source page.
type PageText struct {
	Page string // Page label, e.g. "p1"
	Text string // Extracted page text
}

// Chunk represents a bounded slice of page text used as a retrieval unit.
type Chunk struct {
	ChunkID string // Format: "{page}-c{NN}", e.g. "p2-c03"
	Page    string // Source page label
	Text    string // Trimmed chunk text, never empty
}
