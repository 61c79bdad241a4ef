package rag

import (
	"fmt"
	"strings"
	"testing"

	"pdfagent/internal/indexer"
)

func testChunks() []indexer.Chunk {
	return []indexer.Chunk{
		{ChunkID: "p1-c00", Page: "p1", Text: "课程介绍 course overview"},
		{ChunkID: "p1-c01", Page: "p1", Text: "检索增强生成 RAG pipeline"},
		{ChunkID: "p2-c00", Page: "p2", Text: "工具调用 function calling"},
		{ChunkID: "p2-c01", Page: "p2", Text: "RAG 检索 评估"},
		{ChunkID: "p3-c00", Page: "p3", Text: "unrelated text"},
	}
}

func TestRetrieveTopK(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		chunks  []indexer.Chunk
		topK    int
		wantIDs []string
	}{
		{
			name:    "best match first",
			query:   "什么是检索增强生成",
			chunks:  testChunks(),
			topK:    2,
			wantIDs: []string{"p1-c01", "p2-c01"},
		},
		{
			name:    "topK larger than chunks returns all",
			query:   "rag",
			chunks:  testChunks()[:2],
			topK:    10,
			wantIDs: []string{"p1-c01", "p1-c00"},
		},
		{
			name:    "empty chunks",
			query:   "rag",
			chunks:  nil,
			topK:    3,
			wantIDs: []string{},
		},
		{
			name:    "zero topK",
			query:   "rag",
			chunks:  testChunks(),
			topK:    0,
			wantIDs: []string{},
		},
		{
			name:    "no overlap keeps input order with zero scores",
			query:   "zzz",
			chunks:  testChunks(),
			topK:    3,
			wantIDs: []string{"p1-c00", "p1-c01", "p2-c00"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RetrieveTopK(tt.query, tt.chunks, tt.topK)
			if got == nil {
				t.Fatal("RetrieveTopK() returned nil, want empty slice")
			}
			ids := make([]string, 0, len(got))
			for _, r := range got {
				ids = append(ids, r.Chunk.ChunkID)
			}
			if strings.Join(ids, ",") != strings.Join(tt.wantIDs, ",") {
				t.Errorf("RetrieveTopK() = %v, want %v", ids, tt.wantIDs)
			}
		})
	}
}

func TestRetrieveTopK_Properties(t *testing.T) {
	var chunks []indexer.Chunk
	for i := 0; i < 20; i++ {
		chunks = append(chunks, indexer.Chunk{
			ChunkID: fmt.Sprintf("p1-c%02d", i),
			Page:    "p1",
			Text:    strings.Repeat("rag ", i%4) + fmt.Sprintf("item%d 检索", i%3),
		})
	}

	for _, k := range []int{1, 3, 7, 20, 50} {
		got := RetrieveTopK("rag item1 检索", chunks, k)
		if len(got) != min(k, len(chunks)) {
			t.Errorf("k=%d: len = %d, want %d", k, len(got), min(k, len(chunks)))
		}
		for i := 1; i < len(got); i++ {
			if got[i].Score > got[i-1].Score {
				t.Errorf("k=%d: scores not non-increasing at %d: %d > %d", k, i, got[i].Score, got[i-1].Score)
			}
			// Equal scores keep input order.
			if got[i].Score == got[i-1].Score && got[i].Chunk.ChunkID < got[i-1].Chunk.ChunkID {
				t.Errorf("k=%d: tie at %d not in input order", k, i)
			}
		}
	}
}

func TestRetrieveTopK_BigramOverlap(t *testing.T) {
	chunks := []indexer.Chunk{{ChunkID: "p1-c00", Page: "p1", Text: "你好世界"}}
	got := RetrieveTopK("世界你好", chunks, 1)
	// Shared bigrams 世界 and 你好.
	if len(got) != 1 || got[0].Score != 2 {
		t.Errorf("RetrieveTopK() = %+v, want one result with score 2", got)
	}
}

func TestRetrieveTopK_DoesNotModifyChunks(t *testing.T) {
	chunks := testChunks()
	before := fmt.Sprint(chunks)
	_ = RetrieveTopK("rag 检索", chunks, 5)
	if fmt.Sprint(chunks) != before {
		t.Error("RetrieveTopK() reordered the input slice")
	}
}

func TestAllZero(t *testing.T) {
	if !AllZero(nil) {
		t.Error("AllZero(nil) = false, want true")
	}
	if !AllZero([]ScoredChunk{{Score: 0}, {Score: 0}}) {
		t.Error("AllZero(zero scores) = false, want true")
	}
	if AllZero([]ScoredChunk{{Score: 0}, {Score: 1}}) {
		t.Error("AllZero(with hit) = true, want false")
	}
}

func TestPreview(t *testing.T) {
	tests := []struct {
		text string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is longer", 4, "this..."},
		{"一二三四五", 3, "一二三..."},
	}
	for _, tt := range tests {
		if got := Preview(tt.text, tt.n); got != tt.want {
			t.Errorf("Preview(%q, %d) = %q, want %q", tt.text, tt.n, got, tt.want)
		}
	}
}
