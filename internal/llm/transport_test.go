package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pdfagent/internal/contextutil"
)

func TestWithRequestLogging(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		wantLevel  string
		wantErr    bool
	}{
		{"success logged at debug", http.StatusOK, "level=DEBUG", false},
		{"non-200 logged at warn", http.StatusTooManyRequests, "level=WARN", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				_ = json.NewEncoder(w).Encode(ChatResponse{Choices: []ChatChoice{{Message: Message{Content: "ok"}}}})
			}))
			defer server.Close()

			var logs bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
			ctx := contextutil.WithLogger(context.Background(), logger)

			client := NewClient(server.URL, "secret-key", "m", WithRequestLogging())
			_, err := client.ChatWithMessages(ctx, []Message{{Role: RoleUser, Content: "hi"}}, ChatParams{})
			if (err != nil) != tt.wantErr {
				t.Fatalf("ChatWithMessages() error = %v, wantErr %v", err, tt.wantErr)
			}

			out := logs.String()
			if !strings.Contains(out, "llm request completed") || !strings.Contains(out, tt.wantLevel) {
				t.Errorf("logs = %q, want completion at %s", out, tt.wantLevel)
			}
			if !strings.Contains(out, "path=/chat/completions") {
				t.Errorf("logs = %q, want request path", out)
			}
			if strings.Contains(out, "secret-key") {
				t.Error("logs must not contain the API key")
			}
		})
	}
}

func TestWithRequestLogging_DoesNotModifyDefaultClient(t *testing.T) {
	before := http.DefaultClient.Transport
	_ = NewClient("http://localhost", "k", "m", WithRequestLogging())
	if http.DefaultClient.Transport != before {
		t.Error("WithRequestLogging() modified http.DefaultClient")
	}
}

func TestWithRequestLogging_TransportError(t *testing.T) {
	var logs bytes.Buffer
	ctx := contextutil.WithLogger(context.Background(), slog.New(slog.NewTextHandler(&logs, nil)))

	client := NewClient("http://127.0.0.1:1", "k", "m", WithRequestLogging())
	if _, err := client.Complete(ctx, nil, ChatParams{}); err == nil {
		t.Fatal("Complete() expected connection error")
	}
	if !strings.Contains(logs.String(), "llm request failed") {
		t.Errorf("logs = %q, want failure line", logs.String())
	}
}
