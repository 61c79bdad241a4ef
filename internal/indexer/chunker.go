package indexer

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// DefaultMaxLen is the default maximum chunk length in runes.
	DefaultMaxLen = 220
	// DefaultOverlap is the default number of runes shared by consecutive chunks.
	DefaultOverlap = 40
)

// ErrInvalidChunkConfig is returned when the window size and overlap cannot make progress.
var ErrInvalidChunkConfig = errors.New("invalid chunk configuration")

// ConfigError describes a rejected max_len/overlap pair.
type ConfigError struct {
	MaxLen  int
	Overlap int
	Reason  string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid chunk configuration (max_len=%d, overlap=%d): %s", e.MaxLen, e.Overlap, e.Reason)
}

// Unwrap allows errors.Is(err, ErrInvalidChunkConfig).
func (e *ConfigError) Unwrap() error {
	return ErrInvalidChunkConfig
}

// ValidateChunkConfig checks that a window of maxLen runes advancing by maxLen-overlap
// always moves forward.
func ValidateChunkConfig(maxLen, overlap int) error {
	switch {
	case maxLen <= 0:
		return &ConfigError{MaxLen: maxLen, Overlap: overlap, Reason: "max_len must be greater than 0"}
	case overlap < 0:
		return &ConfigError{MaxLen: maxLen, Overlap: overlap, Reason: "overlap must not be negative"}
	case overlap >= maxLen:
		return &ConfigError{MaxLen: maxLen, Overlap: overlap, Reason: "overlap must be less than max_len"}
	}
	return nil
}

// WindowChunker splits page text into overlapping fixed-length windows.
type WindowChunker struct {
	maxLen  int
	overlap int
}

// NewWindowChunker creates a chunker after validating the window configuration.
func NewWindowChunker(maxLen, overlap int) (*WindowChunker, error) {
	if err := ValidateChunkConfig(maxLen, overlap); err != nil {
		return nil, err
	}
	return &WindowChunker{maxLen: maxLen, overlap: overlap}, nil
}

// MaxLen returns the maximum chunk length in runes.
func (c *WindowChunker) MaxLen() int { return c.maxLen }

// Overlap returns the overlap between consecutive chunks in runes.
func (c *WindowChunker) Overlap() int { return c.overlap }

// Chunk splits every page in order and returns the chunks in page, then sequence, order.
// Pages whose text is empty after whitespace normalization produce no chunks.
func (c *WindowChunker) Chunk(pages []PageText) []Chunk {
	chunks := []Chunk{}
	for _, page := range pages {
		chunks = append(chunks, c.chunkPage(page)...)
	}
	return chunks
}

func (c *WindowChunker) chunkPage(page PageText) []Chunk {
	text := collapseWhitespace(page.Text)
	if text == "" {
		return nil
	}

	// Window bounds are measured in runes so CJK text is split by character.
	runes := []rune(text)
	var chunks []Chunk
	start := 0
	idx := 0

	for start < len(runes) {
		end := min(len(runes), start+c.maxLen)
		piece := strings.TrimSpace(string(runes[start:end]))
		if piece != "" {
			chunks = append(chunks, Chunk{
				ChunkID: fmt.Sprintf("%s-c%02d", page.Page, idx),
				Page:    page.Page,
				Text:    piece,
			})
			idx++
		}

		// The window that reached the end has been emitted.
		if end >= len(runes) {
			break
		}
		start = max(0, end-c.overlap)
	}

	return chunks
}

// BuildChunks validates maxLen/overlap and splits the pages in one call.
func BuildChunks(pages []PageText, maxLen, overlap int) ([]Chunk, error) {
	chunker, err := NewWindowChunker(maxLen, overlap)
	if err != nil {
		return nil, err
	}
	return chunker.Chunk(pages), nil
}

// collapseWhitespace replaces every whitespace run with a single space and trims the result.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
