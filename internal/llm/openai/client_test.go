package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"doclearn-backend/internal/llm"
)

func TestGenerateStudyAidsReturnsPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"summary\":{},\"quiz\":[]}"}}]}`))
	}))
	t.Cleanup(server.Close)

	t.Setenv("OPENAI_BASE_URL", server.URL)

	client, err := NewClient("test-key", "gpt-4o-mini")
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	raw, err := client.GenerateStudyAids(context.Background(), llm.GenerateInput{
		Content:       "some content",
		Title:         "doc",
		QuestionCount: 5,
	})
	if err != nil {
		t.Fatalf("GenerateStudyAids: %v", err)
	}
	if !json.Valid(raw) {
		t.Fatalf("expected valid JSON, got %s", raw)
	}
}

func TestGenerateStudyAidsSurfacesAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"error":{"message":"quota exceeded","type":"insufficient_quota"}}`))
	}))
	t.Cleanup(server.Close)

	t.Setenv("OPENAI_BASE_URL", server.URL)

	client, err := NewClient("test-key", "gpt-4o-mini")
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	if _, err := client.GenerateStudyAids(context.Background(), llm.GenerateInput{Content: "x"}); err == nil {
		t.Fatal("expected error from API error payload")
	}
}

func TestGenerateStudyAidsRejectsNonJSONContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"not json at all"}}]}`))
	}))
	t.Cleanup(server.Close)

	t.Setenv("OPENAI_BASE_URL", server.URL)

	client, err := NewClient("test-key", "gpt-4o-mini")
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	if _, err := client.GenerateStudyAids(context.Background(), llm.GenerateInput{Content: "x"}); err == nil {
		t.Fatal("expected error for non-JSON content")
	}
}
