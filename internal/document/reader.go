package document

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"pdfagent/internal/indexer"
)

const (
	// DefaultMaxPages is the number of leading pages read from a document.
	DefaultMaxPages = 3
	// DefaultPageChars is the per-page character budget.
	DefaultPageChars = 500

	emptyPageText = "（本页无文本内容）"
)

// Page is the cleaned text of one PDF page.
type Page struct {
	Label  string // "p1", "p2", ...
	Number int    // 1-based page number
	Text   string // Trimmed, single-line, truncated text
	Empty  bool   // True when the page had no extractable text
}

// Result is the text extracted from the leading pages of a PDF.
type Result struct {
	FileName string
	Pages    []Page
}

// HasText reports whether at least one page produced text.
func (r Result) HasText() bool {
	for _, p := range r.Pages {
		if !p.Empty {
			return true
		}
	}
	return false
}

// PageTexts converts the non-empty pages into chunk builder input, in page order.
func (r Result) PageTexts() []indexer.PageText {
	texts := make([]indexer.PageText, 0, len(r.Pages))
	for _, p := range r.Pages {
		if p.Empty {
			continue
		}
		texts = append(texts, indexer.PageText{Page: p.Label, Text: p.Text})
	}
	return texts
}

// Format renders the result as the tool output handed to the model:
// a "文件: name" header followed by one "pN: text" line per page.
func (r Result) Format() string {
	lines := make([]string, 0, len(r.Pages)+1)
	lines = append(lines, "文件: "+r.FileName)
	for _, p := range r.Pages {
		text := p.Text
		if p.Empty {
			text = emptyPageText
		}
		lines = append(lines, fmt.Sprintf("%s: %s", p.Label, text))
	}
	return strings.Join(lines, "\n")
}

// FormatError renders a read failure the way the tool reports it to the model.
func FormatError(err error) string {
	return "错误: 读取 PDF 文件失败 - " + err.Error()
}

// Reader extracts page text from local PDF files.
type Reader struct {
	maxPages  int
	pageChars int
}

// NewReader creates a Reader limited to maxPages pages of at most pageChars runes each.
// Non-positive values fall back to the defaults.
func NewReader(maxPages, pageChars int) *Reader {
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}
	if pageChars <= 0 {
		pageChars = DefaultPageChars
	}
	return &Reader{maxPages: maxPages, pageChars: pageChars}
}

// ReadPages reads the leading pages of the PDF at path.
// Failures are returned as *Error with a Kind describing the cause.
func (r *Reader) ReadPages(path string) (Result, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Result{}, &Error{Kind: KindNotFound, Path: path, Err: err}
		}
		return Result{}, &Error{Kind: KindUnreadable, Path: path, Err: err}
	}
	return r.parse(path, content)
}

func (r *Reader) parse(path string, content []byte) (res Result, err error) {
	if len(content) == 0 {
		return Result{}, &Error{Kind: KindInvalidFormat, Path: path, Err: errors.New("empty file")}
	}

	// ledongthuc/pdf panics on some malformed cross-reference tables.
	defer func() {
		if p := recover(); p != nil {
			res = Result{}
			err = &Error{Kind: KindInvalidFormat, Path: path, Err: fmt.Errorf("malformed pdf: %v", p)}
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return Result{}, &Error{Kind: KindInvalidFormat, Path: path, Err: err}
	}

	n := min(r.maxPages, reader.NumPage())
	res = Result{
		FileName: filepath.Base(path),
		Pages:    make([]Page, 0, n),
	}
	for i := 1; i <= n; i++ {
		text := r.cleanPageText(extractPageText(reader.Page(i)))
		res.Pages = append(res.Pages, Page{
			Label:  fmt.Sprintf("p%d", i),
			Number: i,
			Text:   text,
			Empty:  text == "",
		})
	}
	return res, nil
}

// RequireText returns a KindNoText error when no page of res has text.
func RequireText(path string, res Result) error {
	if res.HasText() {
		return nil
	}
	return &Error{Kind: KindNoText, Path: path}
}

// extractPageText returns the plain text of page, or "" when it has none.
func extractPageText(page pdf.Page) string {
	if page.V.IsNull() {
		return ""
	}
	text, err := page.GetPlainText(nil)
	if err != nil {
		return ""
	}
	return text
}

// cleanPageText trims, flattens newlines and truncates to the page budget.
func (r *Reader) cleanPageText(text string) string {
	text = strings.TrimSpace(text)
	text = strings.ReplaceAll(text, "\r\n", " ")
	text = strings.ReplaceAll(text, "\n", " ")
	runes := []rune(text)
	if len(runes) > r.pageChars {
		text = string(runes[:r.pageChars])
	}
	return text
}
