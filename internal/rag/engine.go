package rag

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_chat_client.go -package=mocks pdfagent/internal/rag ChatClient

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pdfagent/internal/contextutil"
	"pdfagent/internal/indexer"
	"pdfagent/internal/llm"
)

// SystemPrompt is the system message of every grounded question.
const SystemPrompt = "你是一个专业的 RAG 助手。"

// ErrEmptyQuestion is returned when Ask receives a blank question.
var ErrEmptyQuestion = errors.New("question cannot be empty")

// ChatClient sends a conversation and returns the reply text.
type ChatClient interface {
	ChatWithMessages(ctx context.Context, messages []llm.Message, params llm.ChatParams) (string, error)
}

// AskResponse is the grounded answer plus the retrieval that produced it.
type AskResponse struct {
	// Answer is the model reply.
	Answer string
	// Retrieved holds the top-K chunks in rank order.
	Retrieved []ScoredChunk
	// Citations are the chunk IDs cited in Answer, in order of first appearance.
	Citations []string
	// UnknownCitations are cited IDs that were not among Retrieved.
	UnknownCitations []string
}

// Engine answers questions grounded on a fixed set of chunks.
type Engine interface {
	// Ask retrieves the top-K chunks for question and asks the model to answer from them.
	Ask(ctx context.Context, question string) (AskResponse, error)
	// Retrieve scores the chunks against question without calling the model.
	Retrieve(question string) []ScoredChunk
	// Chunks returns the chunks the engine searches.
	Chunks() []indexer.Chunk
}

// ragEngine implements the Engine interface.
type ragEngine struct {
	client ChatClient
	chunks []indexer.Chunk
	topK   int
}

// NewEngine creates a new RAG engine over chunks. The chunks are not modified.
func NewEngine(client ChatClient, chunks []indexer.Chunk, topK int) Engine {
	return &ragEngine{
		client: client,
		chunks: chunks,
		topK:   topK,
	}
}

func (e *ragEngine) Chunks() []indexer.Chunk {
	return e.chunks
}

func (e *ragEngine) Retrieve(question string) []ScoredChunk {
	return RetrieveTopK(question, e.chunks, e.topK)
}

// Ask answers a question using RAG.
func (e *ragEngine) Ask(ctx context.Context, question string) (AskResponse, error) {
	logger := contextutil.LoggerFromContext(ctx)

	question = strings.TrimSpace(question)
	if question == "" {
		return AskResponse{}, ErrEmptyQuestion
	}

	retrieved := e.Retrieve(question)
	logger.InfoContext(ctx, "chunks retrieved",
		"question_length", len([]rune(question)),
		"chunks_total", len(e.chunks),
		"retrieved", len(retrieved),
		"all_zero", AllZero(retrieved),
	)
	if len(retrieved) > 0 {
		ids := make([]string, 0, len(retrieved))
		for _, r := range retrieved {
			ids = append(ids, fmt.Sprintf("%s=%d", r.Chunk.ChunkID, r.Score))
		}
		logger.DebugContext(ctx, "retrieval scores", "scores", ids)
	}

	userMessage := BuildPrompt(question, retrieved)
	messages := []llm.Message{
		{Role: llm.RoleSystem, Content: SystemPrompt},
		{Role: llm.RoleUser, Content: userMessage},
	}
	logger.DebugContext(ctx, "LLM messages", "user_message_length", len(userMessage))

	answer, err := e.client.ChatWithMessages(ctx, messages, llm.ChatParams{})
	if err != nil {
		logger.ErrorContext(ctx, "failed to generate answer", "error", err)
		return AskResponse{Retrieved: retrieved}, fmt.Errorf("failed to generate answer: %w", err)
	}

	citations := ExtractCitations(answer)
	unknown := unknownCitations(citations, retrieved)
	if len(unknown) > 0 {
		logger.WarnContext(ctx, "answer cites chunks that were not retrieved", "unknown", unknown)
	}

	logger.InfoContext(ctx, "RAG query completed",
		"answer_length", len(answer),
		"citations", len(citations),
	)
	return AskResponse{
		Answer:           answer,
		Retrieved:        retrieved,
		Citations:        citations,
		UnknownCitations: unknown,
	}, nil
}

// BuildPrompt renders the grounded user prompt for question over the retrieved chunks.
func BuildPrompt(question string, retrieved []ScoredChunk) string {
	var sb strings.Builder
	sb.WriteString("你是一个工程型 RAG 助手。请严格基于给定的【检索片段】回答。\n")
	sb.WriteString("要求：\n")
	sb.WriteString("1) 如果检索片段不足以回答，请直接说'文档未提供相关信息'。\n")
	sb.WriteString("2) 回答中必须引用片段ID，如：引用[p2-c03]。\n")
	sb.WriteString("3) 不要编造。\n\n")
	fmt.Fprintf(&sb, "用户问题：%s\n\n", question)
	sb.WriteString("检索片段：\n")
	for i, r := range retrieved {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "[%s] (%s) %s", r.Chunk.ChunkID, r.Chunk.Page, r.Chunk.Text)
	}
	return sb.String()
}
