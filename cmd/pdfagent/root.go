package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"pdfagent/internal/config"
	"pdfagent/internal/console"
	"pdfagent/internal/llm"
)

const modePrompt = "选择模式：1=课程大纲 2=项目说明（说明版） 3=问答RAG（可观测检索）："

// application holds what every mode needs once configuration is loaded.
type application struct {
	cfg     *config.Config
	client  *llm.Client
	printer *console.Printer
	input   *console.Input
	logOut  io.Writer
}

func newRootCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	printer := console.NewPrinter(stdout)
	app := &application{
		printer: printer,
		input:   console.NewInput(stdin, printer),
		logOut:  stderr,
	}

	root := &cobra.Command{
		Use:           "pdfagent",
		Short:         "Tool-calling and keyword RAG demo over local PDFs",
		Long:          `pdfagent asks a chat model about a local PDF, either through a tool-calling round trip (outline, brief) or through an observable keyword retrieval loop (rag).`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, ok := app.input.ReadLine(modePrompt)
			if !ok {
				return errors.New("no mode selected")
			}
			switch mode {
			case "3":
				return app.report(app.runRAG(cmd.Context(), ragOptions{}))
			case "2":
				return app.report(app.runToolCall(cmd.Context(), "brief", ""))
			default:
				return app.report(app.runToolCall(cmd.Context(), "outline", ""))
			}
		},
	}

	root.AddCommand(
		newToolCallCommand(app, "outline", "Generate a course outline from a PDF"),
		newToolCallCommand(app, "brief", "Generate a project brief from a PDF"),
		newRAGCommand(app),
	)
	return root
}

// setup loads configuration and configures logging on stderr.
func (a *application) setup() error {
	cfg, err := config.Load()
	if err != nil {
		a.printer.Error("%v", err)
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	a.cfg = cfg

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(a.logOut, opts)
	} else {
		handler = slog.NewTextHandler(a.logOut, opts)
	}
	slog.SetDefault(slog.New(handler))
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	a.client = llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModelName, llm.WithTimeout(cfg.LLMTimeout), llm.WithRequestLogging())
	slog.Debug("LLM client configured", "base_url", cfg.LLMBaseURL, "model", cfg.LLMModelName, "timeout", cfg.LLMTimeout)
	return nil
}

// report prints a failed run to the console and logs it.
func (a *application) report(err error) error {
	if err != nil {
		slog.Error("run failed", "error", err)
		a.printer.Error("%v", err)
	}
	return err
}

// readPDFPath returns flagValue or prompts for a path.
func (a *application) readPDFPath(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	path, ok := a.input.ReadLine("请输入 PDF 文件路径: ")
	if !ok {
		return "", errors.New("no pdf path given")
	}
	return path, nil
}
