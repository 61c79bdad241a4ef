package tools

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"pdfagent/internal/document"
	"pdfagent/internal/llm"
)

type fakeReader struct {
	res  document.Result
	err  error
	path string
}

func (f *fakeReader) ReadPages(path string) (document.Result, error) {
	f.path = path
	return f.res, f.err
}

type echoTool struct{ name string }

func (e echoTool) Definition() llm.ToolDefinition {
	return llm.NewFunctionTool(e.name, "echo", json.RawMessage(`{"type":"object"}`))
}

func (e echoTool) Call(_ context.Context, args json.RawMessage) (string, error) {
	return string(args), nil
}

func TestRegistry(t *testing.T) {
	reg, err := NewRegistry(DemoContextTool{}, NewReadPDFTool(&fakeReader{}), echoTool{name: "echo"})
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}

	defs := reg.Definitions()
	wantNames := []string{DemoContextName, ReadPDFName, "echo"}
	if len(defs) != len(wantNames) {
		t.Fatalf("Definitions() returned %d tools, want %d", len(defs), len(wantNames))
	}
	for i, name := range wantNames {
		if defs[i].Function.Name != name || defs[i].Type != "function" {
			t.Errorf("Definitions()[%d] = %+v, want function %s", i, defs[i], name)
		}
	}

	got, err := reg.Call(context.Background(), "echo", json.RawMessage(`{"x":1}`))
	if err != nil || got != `{"x":1}` {
		t.Errorf("Call(echo) = %q, %v", got, err)
	}

	_, err = reg.Call(context.Background(), "missing", nil)
	if !errors.Is(err, ErrUnknownTool) {
		t.Errorf("Call(missing) error = %v, want ErrUnknownTool", err)
	}
}

func TestRegistry_RejectsDuplicates(t *testing.T) {
	_, err := NewRegistry(echoTool{name: "a"}, echoTool{name: "a"})
	if !errors.Is(err, ErrDuplicateTool) {
		t.Errorf("NewRegistry() error = %v, want ErrDuplicateTool", err)
	}
}

func TestDemoContextTool(t *testing.T) {
	out, err := DemoContextTool{}.Call(context.Background(), json.RawMessage(`{}`))
	if err != nil {
		t.Fatalf("Call() error = %v", err)
	}
	if lines := strings.Split(out, "\n"); len(lines) != 3 {
		t.Errorf("Call() returned %d lines, want 3", len(lines))
	}
}

func TestReadPDFTool_Call(t *testing.T) {
	okResult := document.Result{
		FileName: "a.pdf",
		Pages:    []document.Page{{Label: "p1", Number: 1, Text: "hello"}},
	}

	tests := []struct {
		name     string
		args     string
		reader   *fakeReader
		want     string
		wantPath string
		wantErr  error
	}{
		{
			name:     "formats pages",
			args:     `{"file_path":" /tmp/a.pdf "}`,
			reader:   &fakeReader{res: okResult},
			want:     "文件: a.pdf\np1: hello",
			wantPath: "/tmp/a.pdf",
		},
		{
			name:     "read failure becomes tool text",
			args:     `{"file_path":"/tmp/missing.pdf"}`,
			reader:   &fakeReader{err: &document.Error{Kind: document.KindNotFound, Path: "/tmp/missing.pdf"}},
			want:     "错误: 读取 PDF 文件失败 - file not found: /tmp/missing.pdf",
			wantPath: "/tmp/missing.pdf",
		},
		{
			name:    "missing file_path",
			args:    `{}`,
			reader:  &fakeReader{},
			wantErr: ErrMissingFilePath,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewReadPDFTool(tt.reader).Call(context.Background(), json.RawMessage(tt.args))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Call() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Call() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Call() = %q, want %q", got, tt.want)
			}
			if tt.reader.path != tt.wantPath {
				t.Errorf("reader path = %q, want %q", tt.reader.path, tt.wantPath)
			}
		})
	}
}

func TestReadPDFTool_InvalidJSON(t *testing.T) {
	_, err := NewReadPDFTool(&fakeReader{}).Call(context.Background(), json.RawMessage(`{bad`))
	if err == nil {
		t.Error("Call() expected error for invalid JSON")
	}
}
