package document

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestNewReader_Defaults(t *testing.T) {
	r := NewReader(0, -1)
	if r.maxPages != DefaultMaxPages || r.pageChars != DefaultPageChars {
		t.Errorf("NewReader(0, -1) = (%d, %d), want defaults", r.maxPages, r.pageChars)
	}
}

func TestReader_ReadPages_Errors(t *testing.T) {
	dir := t.TempDir()

	garbage := filepath.Join(dir, "garbage.pdf")
	if err := os.WriteFile(garbage, []byte("this is not a pdf at all"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	empty := filepath.Join(dir, "empty.pdf")
	if err := os.WriteFile(empty, nil, 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	tests := []struct {
		name     string
		path     string
		wantKind Kind
		wantIs   error
	}{
		{"missing file", filepath.Join(dir, "missing.pdf"), KindNotFound, ErrNotFound},
		{"directory", dir, KindUnreadable, ErrUnreadable},
		{"not a pdf", garbage, KindInvalidFormat, ErrInvalidFormat},
		{"empty file", empty, KindInvalidFormat, ErrInvalidFormat},
	}

	reader := NewReader(3, 500)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := reader.ReadPages(tt.path)
			if err == nil {
				t.Fatal("ReadPages() expected error, got nil")
			}
			if KindOf(err) != tt.wantKind {
				t.Errorf("KindOf(%v) = %q, want %q", err, KindOf(err), tt.wantKind)
			}
			if !errors.Is(err, tt.wantIs) {
				t.Errorf("errors.Is(%v, %v) = false", err, tt.wantIs)
			}
			var docErr *Error
			if !errors.As(err, &docErr) || docErr.Path != tt.path {
				t.Errorf("error = %#v, want *Error with path %q", err, tt.path)
			}
		})
	}
}

func TestError_IsOnlyMatchesOwnKind(t *testing.T) {
	err := &Error{Kind: KindNotFound, Path: "a.pdf"}
	if errors.Is(err, ErrInvalidFormat) {
		t.Error("KindNotFound error should not match ErrInvalidFormat")
	}
	if !strings.Contains(err.Error(), "a.pdf") {
		t.Errorf("Error() = %q, want path included", err.Error())
	}
	if KindOf(errors.New("plain")) != "" {
		t.Error("KindOf(plain error) should be empty")
	}
}

func TestReader_CleanPageText(t *testing.T) {
	r := NewReader(3, 5)
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"trims", "  ab  ", "ab"},
		{"flattens newlines", "a\nb\r\nc", "a b c"},
		{"truncates runes", "一二三四五六七", "一二三四五"},
		{"empty", " \n ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.cleanPageText(tt.in)
			if got != tt.want {
				t.Errorf("cleanPageText(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Errorf("cleanPageText(%q) produced invalid UTF-8", tt.in)
			}
		})
	}
}

func testResult() Result {
	return Result{
		FileName: "course.pdf",
		Pages: []Page{
			{Label: "p1", Number: 1, Text: "第一页内容"},
			{Label: "p2", Number: 2, Empty: true},
			{Label: "p3", Number: 3, Text: "third page"},
		},
	}
}

func TestResult_Format(t *testing.T) {
	want := "文件: course.pdf\np1: 第一页内容\np2: （本页无文本内容）\np3: third page"
	if got := testResult().Format(); got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}

func TestResult_PageTexts(t *testing.T) {
	texts := testResult().PageTexts()
	if len(texts) != 2 {
		t.Fatalf("PageTexts() returned %d pages, want 2", len(texts))
	}
	if texts[0].Page != "p1" || texts[1].Page != "p3" || texts[1].Text != "third page" {
		t.Errorf("PageTexts() = %+v, want p1 and p3 in order", texts)
	}
}

func TestRequireText(t *testing.T) {
	if err := RequireText("a.pdf", testResult()); err != nil {
		t.Errorf("RequireText() error = %v, want nil", err)
	}

	blank := Result{FileName: "a.pdf", Pages: []Page{{Label: "p1", Number: 1, Empty: true}}}
	err := RequireText("a.pdf", blank)
	if !errors.Is(err, ErrNoText) {
		t.Errorf("RequireText() error = %v, want ErrNoText", err)
	}
}

func TestFormatError(t *testing.T) {
	got := FormatError(&Error{Kind: KindNotFound, Path: "x.pdf"})
	if !strings.HasPrefix(got, "错误: 读取 PDF 文件失败 - ") || !strings.Contains(got, "x.pdf") {
		t.Errorf("FormatError() = %q, unexpected", got)
	}
}
