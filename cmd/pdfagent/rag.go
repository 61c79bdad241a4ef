package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"pdfagent/internal/console"
	"pdfagent/internal/contextutil"
	"pdfagent/internal/document"
	"pdfagent/internal/indexer"
	"pdfagent/internal/rag"
	"pdfagent/internal/tui"
)

type ragOptions struct {
	pdfPath string
	useTUI  bool
	topK    int
}

func newRAGCommand(app *application) *cobra.Command {
	var opts ragOptions
	cmd := &cobra.Command{
		Use:   "rag",
		Short: "Answer questions about a PDF with observable keyword retrieval",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.report(app.runRAG(cmd.Context(), opts))
		},
	}
	cmd.Flags().StringVar(&opts.pdfPath, "pdf", "", "path to the PDF file (prompted when empty)")
	cmd.Flags().BoolVar(&opts.useTUI, "tui", false, "run the question loop in a terminal UI")
	cmd.Flags().IntVar(&opts.topK, "top-k", 0, "number of chunks to retrieve (default RETRIEVAL_TOP_K)")
	return cmd
}

// runRAG reads the PDF, builds chunks and loops over questions.
func (a *application) runRAG(ctx context.Context, opts ragOptions) error {
	pdfPath, err := a.readPDFPath(opts.pdfPath)
	if err != nil {
		return err
	}

	ctx, _ = contextutil.WithSession(ctx, "rag")
	logger := contextutil.LoggerFromContext(ctx)

	a.printer.Info("正在读取 PDF: %s", pdfPath)
	res, err := document.NewReader(a.cfg.PDFMaxPages, a.cfg.PDFPageChars).ReadPages(pdfPath)
	if err != nil {
		return err
	}
	if err := document.RequireText(pdfPath, res); err != nil {
		a.printer.Warn("%v", err)
	}

	chunker, err := indexer.NewWindowChunker(a.cfg.ChunkMaxLen, a.cfg.ChunkOverlap)
	if err != nil {
		return err
	}
	chunks := chunker.Chunk(res.PageTexts())
	a.printer.Info("chunks built: %d", len(chunks))
	logger.InfoContext(ctx, "chunks built",
		"pages", len(res.Pages),
		"chunks", len(chunks),
		"max_len", chunker.MaxLen(),
		"overlap", chunker.Overlap(),
	)

	topK := a.cfg.TopK
	if opts.topK > 0 {
		topK = opts.topK
	}
	engine := rag.NewEngine(a.client, chunks, topK)

	if opts.useTUI {
		summary := fmt.Sprintf("%s | %d chunks | top-k %d", filepath.Base(pdfPath), len(chunks), topK)
		_, err := tea.NewProgram(tui.New(ctx, engine, summary), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	}
	return a.questionLoop(ctx, engine)
}

func (a *application) questionLoop(ctx context.Context, engine rag.Engine) error {
	for ctx.Err() == nil {
		q, ok := a.input.ReadLine("\n请输入问题（exit 退出）：")
		if !ok || console.IsExit(q) {
			break
		}
		if q == "" {
			continue
		}

		a.printer.Retrieval(engine.Retrieve(q))
		stop := a.printer.Spin("生成回答中...")
		resp, err := engine.Ask(ctx, q)
		stop()
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "question failed", "error", err)
			a.printer.Error("%v", err)
			continue
		}
		a.printer.Answer(resp)
	}
	return a.input.Err()
}
