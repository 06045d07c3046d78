package groq

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"ai-portgate-be/pkg/llm"
)

func TestChatSendsOpenAIWireShape(t *testing.T) {
	var captured chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer key-1" {
			t.Errorf("auth = %s", r.Header.Get("Authorization"))
		}

		// Decode into a raw map first so a wrongly-cased key fails loudly
		var raw map[string]json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			t.Fatal(err)
		}
		var messages []map[string]string
		if err := json.Unmarshal(raw["messages"], &messages); err != nil {
			t.Fatal(err)
		}
		if len(messages) != 1 {
			t.Fatalf("messages = %v", messages)
		}
		if messages[0]["role"] != "user" || messages[0]["content"] != "hello" {
			t.Errorf("wire message = %v, want lowercase role/content keys", messages[0])
		}
		json.Unmarshal(raw["model"], &captured.Model)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices": [{"message": {"content": "hi there"}}]}`))
	}))
	defer srv.Close()

	p := NewGroqProvider("key-1", srv.URL, "model-x")
	got, err := p.Generate(context.Background(), "hello")
	if err != nil {
		t.Fatal(err)
	}
	if got != "hi there" {
		t.Errorf("content = %q", got)
	}
	if captured.Model != "model-x" {
		t.Errorf("model = %q", captured.Model)
	}
}

func TestChatAppliesOptions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatal(err)
		}
		if req.Temperature != 0.0 {
			t.Errorf("temperature = %v", req.Temperature)
		}
		if req.MaxTokens != 300 {
			t.Errorf("max_tokens = %v", req.MaxTokens)
		}
		w.Write([]byte(`{"choices": [{"message": {"content": "ok"}}]}`))
	}))
	defer srv.Close()

	p := NewGroqProvider("key-1", srv.URL, "model-x")
	_, err := p.Chat(context.Background(),
		[]llm.Message{{Role: "user", Content: "classify this"}},
		llm.WithTemperature(0.0), llm.WithMaxTokens(300))
	if err != nil {
		t.Fatal(err)
	}
}

func TestChatSurfacesAPIErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "invalid api key"}}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	p := NewGroqProvider("bad-key", srv.URL, "model-x")
	if _, err := p.Generate(context.Background(), "hello"); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}
