package rag

import (
	"slices"
	"testing"
)

func TestExtractCitations(t *testing.T) {
	tests := []struct {
		name   string
		answer string
		want   []string
	}{
		{"none", "文档未提供相关信息", []string{}},
		{"single", "答案如下 引用[p2-c03]。", []string{"p2-c03"}},
		{"ordered and unique", "见[p1-c01]和[p3-c00]，另见[p1-c01]", []string{"p1-c01", "p3-c00"}},
		{"three digit index", "[p1-c100]", []string{"p1-c100"}},
		{"malformed ids ignored", "[p1-c1] [x1-c00] [p1c00] p2-c03", []string{}},
		{"adjacent", "[p1-c00][p1-c01]", []string{"p1-c00", "p1-c01"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractCitations(tt.answer)
			if !slices.Equal(got, tt.want) {
				t.Errorf("ExtractCitations(%q) = %q, want %q", tt.answer, got, tt.want)
			}
		})
	}
}
