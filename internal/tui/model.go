package tui

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pdfagent/internal/console"
	"pdfagent/internal/rag"
)

// Asker is the TUI-facing subset of the RAG engine.
type Asker interface {
	Ask(ctx context.Context, question string) (rag.AskResponse, error)
}

// answerMsg carries the result of an asynchronous Ask.
type answerMsg struct {
	question string
	resp     rag.AskResponse
	err      error
}

// Model is the Bubble Tea model for the RAG question loop.
type Model struct {
	ctx      context.Context
	engine   Asker
	input    textinput.Model
	viewport viewport.Model
	summary  string
	status   string
	resp     *rag.AskResponse
	cursor   int
	pending  bool
	ready    bool
	question string
}

// New creates a new TUI model. ctx bounds every model call started from the UI.
func New(ctx context.Context, engine Asker, summary string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "请输入问题（exit 退出）"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{ctx: ctx, engine: engine, input: ti, viewport: vp, summary: summary, status: "已加载，输入问题后按 Enter。"}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key, window and answer events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, rh := resultBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 2 + 1 + qh + 1 // header, summary, status, spacer
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, msg.Height-reserved-rh)
		m.viewport.SetContent(m.renderContent())
		return m, nil
	case answerMsg:
		m.pending = false
		if msg.err != nil {
			m.status = "错误: " + msg.err.Error()
			m.resp = nil
		} else {
			m.status = fmt.Sprintf("问题 %q 的回答", msg.question)
			resp := msg.resp
			m.resp = &resp
			m.cursor = 0
		}
		m.question = msg.question
		m.viewport.SetContent(m.renderContent())
		m.viewport.GotoTop()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			q := strings.TrimSpace(m.input.Value())
			if console.IsExit(q) {
				return m, tea.Quit
			}
			if q == "" || m.pending {
				return m, nil
			}
			m.pending = true
			m.status = "检索并生成回答中..."
			m.input.SetValue("")
			return m, m.ask(q)
		case "down":
			if m.resp != nil && len(m.resp.Retrieved) > 0 {
				m.cursor = (m.cursor + 1) % len(m.resp.Retrieved)
				m.viewport.SetContent(m.renderContent())
				return m, nil
			}
		case "up":
			if m.resp != nil && len(m.resp.Retrieved) > 0 {
				m.cursor = (m.cursor - 1 + len(m.resp.Retrieved)) % len(m.resp.Retrieved)
				m.viewport.SetContent(m.renderContent())
				return m, nil
			}
		case "pgdown", "pgup":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) ask(question string) tea.Cmd {
	ctx, engine := m.ctx, m.engine
	return func() tea.Msg {
		resp, err := engine.Ask(ctx, question)
		return answerMsg{question: question, resp: resp, err: err}
	}
}

// View renders the layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("PDF 问答 RAG（可观测检索）")
	summary := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(m.summary)
	results := resultBoxStyle.Render(m.viewport.View())
	input := queryBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	return header + "\n" + summary + "\n" + results + "\n" + input + "\n" + status
}

func (m Model) renderContent() string {
	if m.resp == nil {
		return "尚无结果。"
	}

	var sb strings.Builder
	sb.WriteString("[RETRIEVAL] Top chunks:\n")
	if rag.AllZero(m.resp.Retrieved) {
		sb.WriteString("  (no hits, all scores=0)\n")
	}
	for i, r := range m.resp.Retrieved {
		marker := "  "
		if i == m.cursor {
			marker = "> "
		}
		fmt.Fprintf(&sb, "%s%s (score=%d)\n", marker, r.Chunk.ChunkID, r.Score)
	}

	if len(m.resp.Retrieved) > 0 {
		r := m.resp.Retrieved[m.cursor]
		fmt.Fprintf(&sb, "\n片段 %d/%d  %s (%s)\n", m.cursor+1, len(m.resp.Retrieved), r.Chunk.ChunkID, r.Chunk.Page)
		sb.WriteString(renderHighlighted(r.Chunk.Text, m.question))
		sb.WriteString("\n")
	}

	sb.WriteString("\n[ANSWER]\n")
	sb.WriteString(m.resp.Answer)
	if len(m.resp.UnknownCitations) > 0 {
		sb.WriteString("\n\n")
		sb.WriteString(warnStyle.Render("回答引用了未检索到的片段: " + strings.Join(m.resp.UnknownCitations, ", ")))
	}
	return sb.String()
}

var (
	resultBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	warnStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// span is a run of text that either matches a query token or not.
type span struct {
	text string
	hit  bool
}

func renderHighlighted(text, query string) string {
	var sb strings.Builder
	for _, s := range highlightSpans(text, query) {
		if s.hit {
			sb.WriteString(highlightStyle.Render(s.text))
		} else {
			sb.WriteString(s.text)
		}
	}
	return sb.String()
}

// highlightSpans splits text into spans, marking every rune covered by an
// occurrence of a query token. Matching ignores case.
func highlightSpans(text, query string) []span {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}
	lower := make([]rune, len(runes))
	for i, r := range runes {
		lower[i] = unicode.ToLower(r)
	}

	marked := make([]bool, len(runes))
	for _, tok := range rag.Tokenize(query) {
		markOccurrences(lower, []rune(tok), marked)
	}

	var spans []span
	start := 0
	for i := 1; i <= len(runes); i++ {
		if i == len(runes) || marked[i] != marked[start] {
			spans = append(spans, span{text: string(runes[start:i]), hit: marked[start]})
			start = i
		}
	}
	return spans
}

func markOccurrences(haystack, needle []rune, marked []bool) {
	if len(needle) == 0 {
		return
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		match := true
		for j, r := range needle {
			if haystack[i+j] != r {
				match = false
				break
			}
		}
		if match {
			for j := range needle {
				marked[i+j] = true
			}
		}
	}
}
