package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"pdfagent/internal/contextutil"
	"pdfagent/internal/document"
	"pdfagent/internal/outline"
	"pdfagent/internal/prompts"
	"pdfagent/internal/service"
	"pdfagent/internal/tools"
)

func newToolCallCommand(app *application, setName, short string) *cobra.Command {
	var pdfPath string
	cmd := &cobra.Command{
		Use:   setName,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.report(app.runToolCall(cmd.Context(), setName, pdfPath))
		},
	}
	cmd.Flags().StringVar(&pdfPath, "pdf", "", "path to the PDF file (prompted when empty)")
	return cmd
}

// runToolCall runs the tool-calling round trip with the named prompt set.
func (a *application) runToolCall(ctx context.Context, setName, pdfFlag string) error {
	catalog, err := prompts.Load(a.cfg.PromptsFile)
	if err != nil {
		return err
	}
	set, err := catalog.Get(setName)
	if err != nil {
		return err
	}

	pdfPath, err := a.readPDFPath(pdfFlag)
	if err != nil {
		return err
	}

	registry, err := tools.NewRegistry(
		tools.DemoContextTool{},
		tools.NewReadPDFTool(document.NewReader(a.cfg.PDFMaxPages, a.cfg.PDFPageChars)),
	)
	if err != nil {
		return err
	}

	ctx, sessionID := contextutil.WithSession(ctx, setName)
	logger := contextutil.LoggerFromContext(ctx)
	logger.InfoContext(ctx, "tool-calling run started", "pdf_path", pdfPath)

	if firstPrompt, err := set.RenderFirst(pdfPath); err == nil {
		a.printer.FirstPrompt(firstPrompt)
	}

	svc := service.NewToolCallService(a.client, registry, set)
	trace, err := svc.Run(ctx, pdfPath)
	if err != nil {
		if trace.FirstPrompt != "" {
			a.printer.Trace(trace)
		}
		return fmt.Errorf("session %s: %w", sessionID, err)
	}
	a.printer.Trace(trace)

	if set.CheckOutline {
		report := outline.Check([]byte(trace.FinalAnswer))
		logger.InfoContext(ctx, "outline checked",
			"chapters", len(report.Chapters),
			"points", report.TotalPoints(),
			"cited", report.CitedPoints(),
			"warnings", len(report.Warnings),
		)
		a.printer.OutlineReport(report)
	}
	return nil
}
