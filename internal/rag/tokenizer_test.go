package rag

import (
	"slices"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", []string{}},
		{"punctuation only", "!!! ，。", []string{}},
		{"mixed", "Hello 世界2024", []string{"hello", "世界", "世界", "2024"}},
		{"single cjk rune", "我", []string{"我"}},
		{"cjk bigrams", "你好世界", []string{"你好世界", "你好", "好世", "世界"}},
		{"lowercases latin", "RAG Demo", []string{"rag", "demo"}},
		{"latin letters and digits stay joined", "glm4 v2", []string{"glm4", "v2"}},
		{"keeps duplicates", "go go", []string{"go", "go"}},
		{"drops non ascii latin", "café", []string{"caf"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.in)
			if got == nil {
				t.Fatal("Tokenize() returned nil, want empty slice")
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("Tokenize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTokenize_CJKRunYieldsRunPlusBigrams(t *testing.T) {
	for _, run := range []string{"检索", "检索增强", "检索增强生成技术"} {
		n := len([]rune(run))
		got := Tokenize(run)
		if len(got) != 1+(n-1) {
			t.Errorf("Tokenize(%q) returned %d tokens, want %d", run, len(got), n)
		}
		if got[0] != run {
			t.Errorf("Tokenize(%q)[0] = %q, want the whole run", run, got[0])
		}
		for _, tok := range got[1:] {
			if len([]rune(tok)) != 2 {
				t.Errorf("Tokenize(%q) bigram %q is not 2 runes", run, tok)
			}
		}
	}
}
