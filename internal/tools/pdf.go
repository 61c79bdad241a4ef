package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"pdfagent/internal/contextutil"
	"pdfagent/internal/document"
	"pdfagent/internal/llm"
)

// ReadPDFName is the name of the PDF reading tool.
const ReadPDFName = "read_local_pdf"

// ErrMissingFilePath is returned when read_local_pdf is called without file_path.
var ErrMissingFilePath = errors.New("file_path is required")

// PageReader reads the leading pages of a PDF.
type PageReader interface {
	ReadPages(path string) (document.Result, error)
}

// ReadPDFTool reads text from a local PDF file.
type ReadPDFTool struct {
	reader PageReader
}

// NewReadPDFTool creates a ReadPDFTool backed by reader.
func NewReadPDFTool(reader PageReader) *ReadPDFTool {
	return &ReadPDFTool{reader: reader}
}

type readPDFArgs struct {
	FilePath string `json:"file_path"`
}

func (t *ReadPDFTool) Definition() llm.ToolDefinition {
	return llm.NewFunctionTool(
		ReadPDFName,
		"读取本地 PDF 文件的前几页内容",
		json.RawMessage(`{"type":"object","properties":{"file_path":{"type":"string","description":"本地 PDF 文件的完整路径"}},"required":["file_path"]}`),
	)
}

// Call reads the PDF named by file_path. Read failures are reported to the
// model as text rather than returned, so the conversation can continue.
func (t *ReadPDFTool) Call(ctx context.Context, args json.RawMessage) (string, error) {
	var a readPDFArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return "", fmt.Errorf("failed to decode %s arguments: %w", ReadPDFName, err)
	}
	path := strings.TrimSpace(a.FilePath)
	if path == "" {
		return "", ErrMissingFilePath
	}

	res, err := t.reader.ReadPages(path)
	if err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "failed to read pdf",
			"path", path,
			"kind", document.KindOf(err),
			"error", err,
		)
		return document.FormatError(err), nil
	}
	return res.Format(), nil
}
