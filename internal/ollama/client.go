package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Client talks to a single Ollama instance. It holds no state beyond the
// base URL; every call is an independent request/response round trip.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		// no Timeout: pulls can legitimately run for many minutes and the
		// caller imposes no deadline of its own
		http: &http.Client{},
	}
}

// List returns the models currently available on the backend.
func (c *Client) List(ctx context.Context) ([]ModelInfo, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/api/tags", nil)
	if err != nil {
		return nil, &BackendError{Op: "list", Err: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &BackendError{Op: "list", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &BackendError{Op: "list", Err: err}
	}

	if resp.StatusCode != 200 {
		return nil, &BackendError{Op: "list", Err: fmt.Errorf("status %d: %s", resp.StatusCode, string(body))}
	}

	var tags tagsResponse
	if err := json.Unmarshal(body, &tags); err != nil {
		return nil, &BackendError{Op: "list", Err: err}
	}

	return tags.Models, nil
}

// Pull asks the backend to download a model. Blocks until the backend
// reports completion or failure; the model name is passed through exactly
// as given, the backend is authoritative on validity.
func (c *Client) Pull(ctx context.Context, model string) error {
	reqBody := pullRequest{Model: model, Stream: false}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return &PullError{Model: model, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/api/pull", bytes.NewReader(jsonBody))
	if err != nil {
		return &PullError{Model: model, Err: err}
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &PullError{Model: model, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &PullError{Model: model, Err: err}
	}

	if resp.StatusCode != 200 {
		return &PullError{Model: model, Err: fmt.Errorf("status %d: %s", resp.StatusCode, string(body))}
	}

	var pullResp pullResponse
	if err := json.Unmarshal(body, &pullResp); err != nil {
		return &PullError{Model: model, Err: err}
	}

	if pullResp.Error != "" {
		return &PullError{Model: model, Err: fmt.Errorf("%s", pullResp.Error)}
	}

	return nil
}

// Chat submits text as a single-turn conversation and returns the reply.
// No history is kept across calls.
func (c *Client) Chat(ctx context.Context, model, text string) (string, error) {
	reqBody := chatRequest{
		Model:    model,
		Messages: []chatMessage{{Role: "user", Content: text}},
		Stream:   false,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", &InferenceError{Model: model, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/api/chat", bytes.NewReader(jsonBody))
	if err != nil {
		return "", &InferenceError{Model: model, Err: err}
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &InferenceError{Model: model, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &InferenceError{Model: model, Err: err}
	}

	if resp.StatusCode != 200 {
		return "", &InferenceError{Model: model, Err: fmt.Errorf("status %d: %s", resp.StatusCode, string(body))}
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", &InferenceError{Model: model, Err: err}
	}

	if chatResp.Error != "" {
		return "", &InferenceError{Model: model, Err: fmt.Errorf("%s", chatResp.Error)}
	}

	return chatResp.Message.Content, nil
}
