package ollama

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestListReturnsModels(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(tagsResponse{Models: []ModelInfo{{Name: "llama3.2:1b"}, {Name: "mistral"}}})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	models, err := client.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(models) != 2 || models[0].Name != "llama3.2:1b" || models[1].Name != "mistral" {
		t.Errorf("models mismatch: %+v", models)
	}
}

func TestListBackendError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	_, err := client.List(context.Background())
	var backendErr *BackendError
	if !errors.As(err, &backendErr) {
		t.Fatalf("expected *BackendError, got %T: %v", err, err)
	}
}

func TestListConnectionRefused(t *testing.T) {
	// nothing listens here
	client := NewClient("http://127.0.0.1:1")

	_, err := client.List(context.Background())
	var backendErr *BackendError
	if !errors.As(err, &backendErr) {
		t.Fatalf("expected *BackendError, got %T: %v", err, err)
	}
}

func TestPullSendsModelName(t *testing.T) {
	var got pullRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/pull" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&got)
		json.NewEncoder(w).Encode(pullResponse{Status: "success"})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	if err := client.Pull(context.Background(), "mistral"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.Model != "mistral" || got.Stream {
		t.Errorf("request mismatch: %+v", got)
	}
}

func TestPullErrorNamesModel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(pullResponse{Error: "pull model manifest: file does not exist"})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	err := client.Pull(context.Background(), "badmodel")
	var pullErr *PullError
	if !errors.As(err, &pullErr) {
		t.Fatalf("expected *PullError, got %T: %v", err, err)
	}

	if pullErr.Model != "badmodel" {
		t.Errorf("expected model name in error, got %q", pullErr.Model)
	}
}

func TestPullErrorFieldOn200(t *testing.T) {
	// ollama reports some failures in the body with status 200
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(pullResponse{Error: "name required"})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	err := client.Pull(context.Background(), "")
	var pullErr *PullError
	if !errors.As(err, &pullErr) {
		t.Fatalf("expected *PullError, got %T: %v", err, err)
	}
}

func TestChatSingleTurn(t *testing.T) {
	var got chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&got)
		json.NewEncoder(w).Encode(chatResponse{Message: chatMessage{Role: "assistant", Content: "hi"}})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	reply, err := client.Chat(context.Background(), "llama3.2:1b", "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if reply != "hi" {
		t.Errorf("expected reply \"hi\", got %q", reply)
	}

	if got.Model != "llama3.2:1b" || got.Stream {
		t.Errorf("request mismatch: %+v", got)
	}

	// single-turn: exactly one user message, no history
	if len(got.Messages) != 1 || got.Messages[0].Role != "user" || got.Messages[0].Content != "hello" {
		t.Errorf("messages mismatch: %+v", got.Messages)
	}
}

func TestChatInferenceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(chatResponse{Error: "model not found"})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	_, err := client.Chat(context.Background(), "missing", "hello")
	var infErr *InferenceError
	if !errors.As(err, &infErr) {
		t.Fatalf("expected *InferenceError, got %T: %v", err, err)
	}

	if infErr.Model != "missing" {
		t.Errorf("expected model in error, got %q", infErr.Model)
	}

	if !strings.Contains(err.Error(), "missing") {
		t.Errorf("error text should name the model: %v", err)
	}
}
