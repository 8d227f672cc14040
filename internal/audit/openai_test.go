package audit

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestOpenAIProvider_RequiresKey(t *testing.T) {
	if _, err := NewOpenAIProvider(Config{}); err == nil {
		t.Error("Expected error without an API key")
	}
}

func TestOpenAIProvider_Complete(t *testing.T) {
	var gotAuth string
	var gotBody map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			http.NotFound(w, r)
			return
		}
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id":     "chatcmpl-test",
			"object": "chat.completion",
			"model":  "gpt-4o-mini",
			"choices": []map[string]interface{}{
				{
					"index":         0,
					"finish_reason": "stop",
					"message": map[string]interface{}{
						"role":    "assistant",
						"content": `{"party_name": "X"}`,
					},
				},
			},
			"usage": map[string]interface{}{
				"prompt_tokens":     120,
				"completion_tokens": 30,
				"total_tokens":      150,
			},
		})
	}))
	defer server.Close()

	provider, err := NewOpenAIProvider(Config{
		APIKey:  "test-key",
		BaseURL: server.URL + "/v1",
		Model:   "gpt-4o-mini",
	})
	if err != nil {
		t.Fatalf("NewOpenAIProvider failed: %v", err)
	}

	resp, err := provider.Complete(context.Background(), Request{
		System: "audit instructions",
		Prompt: "excerpt here",
	})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}

	if gotAuth != "Bearer test-key" {
		t.Errorf("Expected bearer auth, got %q", gotAuth)
	}
	if resp.Content != `{"party_name": "X"}` {
		t.Errorf("Unexpected content: %q", resp.Content)
	}
	if resp.TokensUsed != 150 {
		t.Errorf("Expected 150 tokens, got %d", resp.TokensUsed)
	}
	if gotBody["model"] != "gpt-4o-mini" {
		t.Errorf("Unexpected model in request: %v", gotBody["model"])
	}
	if rf, ok := gotBody["response_format"].(map[string]interface{}); !ok || rf["type"] != "json_object" {
		t.Errorf("Expected JSON response mode, got %v", gotBody["response_format"])
	}

	messages, _ := gotBody["messages"].([]interface{})
	if len(messages) != 2 {
		t.Fatalf("Expected system + user message, got %d", len(messages))
	}
	first, _ := messages[0].(map[string]interface{})
	if first["role"] != "system" {
		t.Errorf("First message must be the system context, got %v", first["role"])
	}
}

func TestOpenAIProvider_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": {"message": "rate limit", "type": "requests"}}`))
	}))
	defer server.Close()

	provider, err := NewOpenAIProvider(Config{APIKey: "test-key", BaseURL: server.URL + "/v1"})
	if err != nil {
		t.Fatalf("NewOpenAIProvider failed: %v", err)
	}

	if _, err := provider.Complete(context.Background(), Request{Prompt: "x"}); err == nil {
		t.Error("Expected error on 429 response")
	}
}
