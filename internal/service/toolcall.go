package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_llm_client.go -package=mocks pdfagent/internal/service LLMClient,ToolExecutor

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"pdfagent/internal/contextutil"
	"pdfagent/internal/llm"
	"pdfagent/internal/prompts"
)

// LLMClient is an interface for interacting with an LLM API.
// This interface is defined from the service layer's perspective (consumer-first).
type LLMClient interface {
	// Complete sends a conversation and returns the assistant message, including tool calls.
	Complete(ctx context.Context, messages []llm.Message, params llm.ChatParams) (llm.Message, error)
}

// ToolExecutor exposes the local tools offered to the model.
type ToolExecutor interface {
	// Definitions lists the tools in the order they are offered.
	Definitions() []llm.ToolDefinition
	// Call executes the named tool.
	Call(ctx context.Context, name string, args json.RawMessage) (string, error)
}

// Trace records every step of one tool-calling run.
type Trace struct {
	FirstPrompt  string
	FirstContent string
	ToolCalls    []llm.ToolCall
	// ToolCalled is true when the first tool call was executed.
	ToolCalled  bool
	ToolName    string
	ToolArgs    json.RawMessage
	ToolOutput  string
	FinalAnswer string
}

// ToolCallService runs the two-step tool-calling conversation.
type ToolCallService interface {
	// Run asks the model about the PDF at pdfPath, executing at most one tool call.
	Run(ctx context.Context, pdfPath string) (Trace, error)
}

// toolCallService implements ToolCallService.
type toolCallService struct {
	llmClient LLMClient
	tools     ToolExecutor
	set       prompts.Set
}

// NewToolCallService creates a new ToolCallService.
func NewToolCallService(llmClient LLMClient, tools ToolExecutor, set prompts.Set) ToolCallService {
	return &toolCallService{
		llmClient: llmClient,
		tools:     tools,
		set:       set,
	}
}

// Run executes the conversation and returns its trace.
// On error the trace holds the steps completed so far.
func (s *toolCallService) Run(ctx context.Context, pdfPath string) (Trace, error) {
	logger := contextutil.LoggerFromContext(ctx).With("prompt_set", s.set.Name)
	var trace Trace

	// Business validation
	pdfPath = strings.TrimSpace(pdfPath)
	if pdfPath == "" {
		logger.WarnContext(ctx, "empty pdf path")
		return trace, &ValidationError{Field: "pdf_path", Message: "cannot be empty"}
	}
	firstPrompt, err := s.set.RenderFirst(pdfPath)
	if err != nil {
		logger.WarnContext(ctx, "first prompt not rendered", "error", err)
		return trace, &ValidationError{Field: "pdf_path", Message: err.Error()}
	}
	trace.FirstPrompt = firstPrompt

	messages := []llm.Message{
		{Role: llm.RoleSystem, Content: s.set.System},
		{Role: llm.RoleUser, Content: firstPrompt},
	}

	first, err := s.llmClient.Complete(ctx, messages, llm.ChatParams{
		Tools:      s.tools.Definitions(),
		ToolChoice: "auto",
	})
	if err != nil {
		logger.ErrorContext(ctx, "first model call failed", "error", err)
		return trace, wrapExternal(err, "first model call")
	}
	trace.FirstContent = first.Content
	trace.ToolCalls = first.ToolCalls

	if !first.HasToolCalls() {
		logger.InfoContext(ctx, "model answered without tools", "reply_length", len(first.Content))
		trace.FinalAnswer = first.Content
		return trace, nil
	}

	call := first.ToolCalls[0]
	args, err := decodeArguments(call.Function.Arguments)
	if err != nil {
		logger.WarnContext(ctx, "invalid tool arguments", "tool", call.Function.Name, "arguments", call.Function.Arguments)
		return trace, err
	}
	trace.ToolName = call.Function.Name
	trace.ToolArgs = args

	logger.InfoContext(ctx, "executing tool", "tool", call.Function.Name, "tool_call_id", call.ID, "tool_calls", len(first.ToolCalls))
	output, err := s.tools.Call(ctx, call.Function.Name, args)
	if err != nil {
		logger.ErrorContext(ctx, "tool call failed", "tool", call.Function.Name, "error", err)
		return trace, WrapError(err, fmt.Sprintf("tool %s", call.Function.Name))
	}
	trace.ToolCalled = true
	trace.ToolOutput = output

	messages = append(messages,
		llm.Message{Role: llm.RoleAssistant, Content: first.Content, ToolCalls: first.ToolCalls},
		llm.Message{Role: llm.RoleTool, ToolCallID: call.ID, Name: call.Function.Name, Content: output},
		llm.Message{Role: llm.RoleUser, Content: s.set.Second},
	)
	final, err := s.llmClient.Complete(ctx, messages, llm.ChatParams{})
	if err != nil {
		logger.ErrorContext(ctx, "second model call failed", "error", err)
		return trace, wrapExternal(err, "second model call")
	}
	trace.FinalAnswer = final.Content

	logger.LogAttrs(ctx, slog.LevelInfo, "tool-calling run completed",
		slog.String("tool", call.Function.Name),
		slog.Int("tool_output_length", len(output)),
		slog.Int("answer_length", len(final.Content)),
	)
	return trace, nil
}

// decodeArguments checks that the model sent a JSON object. Empty arguments mean no arguments.
func decodeArguments(raw string) (json.RawMessage, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return json.RawMessage("{}"), nil
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(raw), &obj); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToolArguments, err)
	}
	return json.RawMessage(raw), nil
}
