package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"detectlab/domain/core"
)

func TestNewOpenAIProvider_Validation(t *testing.T) {
	if _, err := NewOpenAIProvider(Config{Model: "gpt-4o-mini"}); err == nil {
		t.Error("expected error for missing API key")
	}
	if _, err := NewOpenAIProvider(Config{APIKey: "sk-test"}); err == nil {
		t.Error("expected error for missing model")
	}

	p, err := NewOpenAIProvider(Config{APIKey: "sk-test", Model: "gpt-4o-mini"})
	if err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
	if p.config.BaseURL != "https://api.openai.com/v1" {
		t.Errorf("default base URL %q", p.config.BaseURL)
	}
	if p.config.MaxTokens != 1024 {
		t.Errorf("default max tokens %d", p.config.MaxTokens)
	}
}

func TestOpenAIProvider_Respond(t *testing.T) {
	var gotAuth string
	var gotBody map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path %s", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": "I wonder about that."}},
			},
		})
	}))
	defer server.Close()

	p, err := NewOpenAIProvider(Config{APIKey: "sk-test", Model: "gpt-4o-mini", BaseURL: server.URL})
	if err != nil {
		t.Fatal(err)
	}

	response, err := p.Respond(context.Background(), "What is it like?")
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}
	if response != "I wonder about that." {
		t.Errorf("response %q", response)
	}
	if gotAuth != "Bearer sk-test" {
		t.Errorf("auth header %q", gotAuth)
	}
	if gotBody["model"] != "gpt-4o-mini" {
		t.Errorf("model %v", gotBody["model"])
	}
}

func TestOpenAIProvider_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "rate limited"}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	p, err := NewOpenAIProvider(Config{APIKey: "sk-test", Model: "gpt-4o-mini", BaseURL: server.URL})
	if err != nil {
		t.Fatal(err)
	}

	_, err = p.Respond(context.Background(), "hello")
	if err == nil {
		t.Fatal("expected error on non-200 status")
	}
	if !errors.Is(err, core.ErrProviderFailure) {
		t.Errorf("error chain missing ErrProviderFailure: %v", err)
	}
}

func TestMockProvider_CyclesResponses(t *testing.T) {
	m := &MockProvider{Responses: []string{"one", "two"}}
	ctx := context.Background()

	for i, want := range []string{"one", "two", "one"} {
		got, err := m.Respond(ctx, "prompt")
		if err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
		if got != want {
			t.Errorf("call %d: %q, want %q", i, got, want)
		}
	}
	if m.Calls() != 3 {
		t.Errorf("calls %d, want 3", m.Calls())
	}
}

func TestMockProvider_DefaultScript(t *testing.T) {
	m := &MockProvider{}
	got, err := m.Respond(context.Background(), "prompt")
	if err != nil {
		t.Fatal(err)
	}
	if got == "" {
		t.Error("default script returned empty response")
	}
}
