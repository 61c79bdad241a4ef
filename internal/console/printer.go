// Package console renders the user-facing run output.
package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"pdfagent/internal/outline"
	"pdfagent/internal/rag"
	"pdfagent/internal/service"
)

// PreviewRunes is how much of each chunk the retrieval trace shows.
const PreviewRunes = 120

// Printer writes coloured console output to w.
type Printer struct {
	w       io.Writer
	info    *color.Color
	section *color.Color
	warn    *color.Color
	err     *color.Color
	prompt  *color.Color
}

// NewPrinter creates a Printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{
		w:       w,
		info:    color.New(color.FgBlue),
		section: color.New(color.FgCyan, color.Bold),
		warn:    color.New(color.FgYellow),
		err:     color.New(color.FgRed),
		prompt:  color.New(color.FgGreen),
	}
}

// Info prints an [INFO] line.
func (p *Printer) Info(format string, args ...any) {
	p.info.Fprintf(p.w, "[INFO] "+format+"\n", args...)
}

// Warn prints a [WARN] line.
func (p *Printer) Warn(format string, args ...any) {
	p.warn.Fprintf(p.w, "[WARN] "+format+"\n", args...)
}

// Error prints an error line.
func (p *Printer) Error(format string, args ...any) {
	p.err.Fprintf(p.w, "错误: "+format+"\n", args...)
}

// Prompt prints s without a trailing newline.
func (p *Printer) Prompt(s string) {
	p.prompt.Fprint(p.w, s)
}

// Section prints a bold heading line.
func (p *Printer) Section(s string) {
	p.section.Fprintln(p.w, s)
}

// Println prints plain text.
func (p *Printer) Println(a ...any) {
	fmt.Fprintln(p.w, a...)
}

// FirstPrompt prints the rendered first prompt before the run starts.
func (p *Printer) FirstPrompt(prompt string) {
	p.Section("\n[First Prompt]")
	p.Println(prompt)
	p.Println()
	p.Section("=== 开始执行 ===")
}

// Trace prints the numbered steps of a tool-calling run.
func (p *Printer) Trace(t service.Trace) {
	p.Section("1. 模型第一次回复:")
	p.Println("content:", t.FirstContent)
	if len(t.ToolCalls) > 0 {
		p.Println("tool_calls:")
		for _, tc := range t.ToolCalls {
			p.Println(fmt.Sprintf("{id: %s, name: %s, arguments: %s}", tc.ID, tc.Function.Name, tc.Function.Arguments))
		}
	}

	if t.ToolCalled {
		p.Section("2. 触发工具: " + t.ToolName)
		p.Println("3. 工具入参:", string(t.ToolArgs))
		p.Println("   工具出参:", t.ToolOutput)
		p.Println()
	} else if len(t.ToolCalls) == 0 {
		p.Section("2. 工具未被调用")
	}

	p.Section("4. 模型最终输出:")
	p.Println(t.FinalAnswer)
}

// Retrieval prints the ranked chunks of one question.
func (p *Printer) Retrieval(results []rag.ScoredChunk) {
	p.Section("\n[RETRIEVAL] Top chunks:")
	if rag.AllZero(results) {
		p.Println("  (no hits, all scores=0)")
	}
	ids := make([]string, 0, len(results))
	for _, r := range results {
		p.Println(fmt.Sprintf("  - %s (score=%d) %s", r.Chunk.ChunkID, r.Score, rag.Preview(r.Chunk.Text, PreviewRunes)))
		ids = append(ids, r.Chunk.ChunkID)
	}
	p.Println("[RETRIEVAL] Top chunks IDs:", strings.Join(ids, ", "))
}

// Answer prints the model answer of one question.
func (p *Printer) Answer(resp rag.AskResponse) {
	p.Section("\n[ANSWER]")
	p.Println(resp.Answer)
	if len(resp.UnknownCitations) > 0 {
		p.Warn("回答引用了未检索到的片段: %s", strings.Join(resp.UnknownCitations, ", "))
	}
}

// OutlineReport prints the outline check summary.
func (p *Printer) OutlineReport(r outline.Report) {
	p.Section("\n[OUTLINE CHECK]")
	p.Println(fmt.Sprintf("章节数: %d, 要点数: %d, 带来源要点: %d", len(r.Chapters), r.TotalPoints(), r.CitedPoints()))
	for _, c := range r.Chapters {
		p.Println(fmt.Sprintf("  - %s: %d 要点", c.Title, len(c.Points)))
	}
	if r.OK() {
		p.Info("大纲结构检查通过")
		return
	}
	for _, w := range r.Warnings {
		p.Warn("%s", w)
	}
}
