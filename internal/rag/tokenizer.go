package rag

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// tokenPattern matches maximal runs of CJK ideographs or lowercase ASCII letters/digits.
var tokenPattern = regexp.MustCompile(`[\x{4e00}-\x{9fff}]+|[a-z0-9]+`)

// Tokenize lowercases s and splits it into tokens for set-overlap scoring.
//
// A Latin/digit run becomes one token. A CJK run yields the whole run followed by
// every overlapping two-character substring, approximating word segmentation
// without a dictionary; a single-character run yields just that character.
// Duplicates are kept; callers reduce to a set.
func Tokenize(s string) []string {
	runs := tokenPattern.FindAllString(strings.ToLower(s), -1)
	if len(runs) == 0 {
		return []string{}
	}

	tokens := make([]string, 0, len(runs))
	for _, run := range runs {
		first, _ := utf8.DecodeRuneInString(run)
		if first < utf8.RuneSelf {
			tokens = append(tokens, run)
			continue
		}
		tokens = appendCJKTokens(tokens, []rune(run))
	}
	return tokens
}

func appendCJKTokens(tokens []string, run []rune) []string {
	tokens = append(tokens, string(run))
	for i := 0; i+1 < len(run); i++ {
		tokens = append(tokens, string(run[i:i+2]))
	}
	return tokens
}

// tokenSet returns the distinct tokens of s.
func tokenSet(s string) map[string]struct{} {
	tokens := Tokenize(s)
	set := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		set[token] = struct{}{}
	}
	return set
}
