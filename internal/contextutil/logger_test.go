package contextutil

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestLoggerFromContext_Default(t *testing.T) {
	if got := LoggerFromContext(context.Background()); got != slog.Default() {
		t.Error("LoggerFromContext() should return slog.Default() when context has no logger")
	}
}

func TestWithLogger(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	ctx := WithLogger(context.Background(), logger)
	if got := LoggerFromContext(ctx); got != logger {
		t.Error("LoggerFromContext() should return the logger stored by WithLogger")
	}
}

func TestWithSession(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithLogger(context.Background(), slog.New(slog.NewTextHandler(&buf, nil)))

	ctx, sessionID := WithSession(ctx, "rag")
	if _, err := uuid.Parse(sessionID); err != nil {
		t.Fatalf("WithSession() session ID %q is not a UUID: %v", sessionID, err)
	}

	LoggerFromContext(ctx).Info("hello")
	out := buf.String()
	if !strings.Contains(out, "session_id="+sessionID) {
		t.Errorf("log output %q should contain session_id", out)
	}
	if !strings.Contains(out, "mode=rag") {
		t.Errorf("log output %q should contain mode", out)
	}
}
