// Package outline checks the structure of a generated Markdown course outline.
package outline

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Structure limits requested from the model.
const (
	MinChapters = 3
	MaxChapters = 8
	MinPoints   = 3
	MaxPoints   = 7
)

// citationMarkers mark a point as carrying a source reference.
var citationMarkers = []string{"来源", "source"}

// Chapter is one chapter heading and the list items directly under it.
type Chapter struct {
	Title   string
	Points  []string
	Uncited []string
}

// Report summarizes an outline.
type Report struct {
	Chapters []Chapter
	Warnings []string
}

// OK reports whether the outline met every structural requirement.
func (r Report) OK() bool {
	return len(r.Warnings) == 0
}

// TotalPoints returns the number of points across all chapters.
func (r Report) TotalPoints() int {
	n := 0
	for _, c := range r.Chapters {
		n += len(c.Points)
	}
	return n
}

// CitedPoints returns the number of points that carry a citation.
func (r Report) CitedPoints() int {
	n := 0
	for _, c := range r.Chapters {
		n += len(c.Points) - len(c.Uncited)
	}
	return n
}

var md = goldmark.New()

// Check parses markdown and reports chapter and point structure.
// Chapters are level-2 headings, or level-1 headings when no level-2 heading exists.
func Check(markdown []byte) Report {
	doc := md.Parser().Parse(text.NewReader(markdown))
	level := chapterLevel(doc)

	var report Report
	var current *Chapter
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			if node.Level == level {
				report.Chapters = append(report.Chapters, Chapter{Title: nodeText(node, markdown)})
				current = &report.Chapters[len(report.Chapters)-1]
			} else if node.Level < level {
				current = nil
			}
		case *ast.List:
			if current == nil {
				continue
			}
			for item := node.FirstChild(); item != nil; item = item.NextSibling() {
				point := nodeText(item, markdown)
				current.Points = append(current.Points, point)
				if !hasCitation(point) {
					current.Uncited = append(current.Uncited, point)
				}
			}
		}
	}

	report.Warnings = warnings(report)
	return report
}

func chapterLevel(doc ast.Node) int {
	hasH1 := false
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if h, ok := n.(*ast.Heading); ok {
			if h.Level == 2 {
				return 2
			}
			if h.Level == 1 {
				hasH1 = true
			}
		}
	}
	if hasH1 {
		return 1
	}
	return 2
}

func warnings(r Report) []string {
	var out []string
	if n := len(r.Chapters); n < MinChapters || n > MaxChapters {
		out = append(out, fmt.Sprintf("章节数 %d 不在 %d~%d 范围内", n, MinChapters, MaxChapters))
	}
	for _, c := range r.Chapters {
		if n := len(c.Points); n < MinPoints || n > MaxPoints {
			out = append(out, fmt.Sprintf("章节「%s」要点数 %d 不在 %d~%d 范围内", c.Title, n, MinPoints, MaxPoints))
		}
		if len(c.Uncited) > 0 {
			out = append(out, fmt.Sprintf("章节「%s」有 %d 条要点缺少来源", c.Title, len(c.Uncited)))
		}
	}
	return out
}

func hasCitation(s string) bool {
	lower := strings.ToLower(s)
	for _, m := range citationMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

// nodeText concatenates the inline text under n, skipping nested lists.
func nodeText(n ast.Node, source []byte) string {
	var sb strings.Builder
	_ = ast.Walk(n, func(child ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := child.(type) {
		case *ast.List:
			if child != n {
				return ast.WalkSkipChildren, nil
			}
		case *ast.Text:
			sb.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				sb.WriteByte(' ')
			}
		case *ast.String:
			sb.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(sb.String())
}
