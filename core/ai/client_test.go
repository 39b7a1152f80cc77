package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gaurav-prasanna/recipepipe/core"
)

type capturedRequest struct {
	Model     string `json:"model"`
	MaxTokens int    `json:"max_tokens"`
	System    []struct {
		Text string `json:"text"`
	} `json:"system"`
	Messages []struct {
		Role    string `json:"role"`
		Content []struct {
			Type   string `json:"type"`
			Text   string `json:"text"`
			Source *struct {
				MediaType string `json:"media_type"`
				Data      string `json:"data"`
			} `json:"source"`
		} `json:"content"`
	} `json:"messages"`
}

func TestClient_Complete(t *testing.T) {
	var got capturedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" || r.Method != http.MethodPost {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("x-api-key") != "sk-test" || r.Header.Get("anthropic-version") == "" {
			t.Errorf("missing auth headers: %v", r.Header)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"msg_1","type":"message","role":"assistant","model":"test-model",` +
			`"content":[{"type":"text","text":"{\"title\":"},{"type":"text","text":"\"x\"}"}],` +
			`"stop_reason":"end_turn","usage":{"input_tokens":1,"output_tokens":1}}`))
	}))
	defer srv.Close()

	c := NewClient("sk-test", nil, WithBaseURL(srv.URL+"/"), WithModel("test-model"))
	reply, err := c.Complete(context.Background(), core.CompletionRequest{
		System: "sys",
		Text:   "hello",
		Image:  &core.ImageBlock{MediaType: "image/jpeg", Data: "AAAA"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != `{"title":"x"}` {
		t.Fatalf("reply = %q", reply)
	}
	if got.Model != "test-model" || len(got.System) != 1 || got.System[0].Text != "sys" || got.MaxTokens != DefaultMaxTokens {
		t.Errorf("unexpected payload %+v", got)
	}
	if len(got.Messages) != 1 || got.Messages[0].Role != "user" {
		t.Fatalf("unexpected messages %+v", got.Messages)
	}
	blocks := got.Messages[0].Content
	if len(blocks) != 2 || blocks[0].Source == nil || blocks[0].Type != "image" || blocks[0].Source.MediaType != "image/jpeg" || blocks[1].Text != "hello" {
		t.Errorf("unexpected content blocks %+v", blocks)
	}
}

func TestClient_MissingKey(t *testing.T) {
	for _, key := range []string{"", "  ", PlaceholderKey} {
		_, err := NewClient(key, nil).Complete(context.Background(), core.CompletionRequest{Text: "x"})
		if !errors.Is(err, ErrMissingAPIKey) {
			t.Errorf("key %q: err = %v", key, err)
		}
	}
}

func TestClient_APIErrors(t *testing.T) {
	cases := []struct {
		status int
		body   string
		kind   core.ErrorKind
	}{
		{401, `{"type":"error","error":{"type":"authentication_error","message":"invalid x-api-key"}}`, core.KindAIAuth},
		{429, `{"type":"error","error":{"type":"rate_limit_error","message":"slow down"}}`, core.KindAIRateLimit},
		{500, `{"type":"error","error":{"type":"api_error","message":"boom"}}`, core.KindAIFailure},
		{529, `{"type":"error","error":{"type":"overloaded_error","message":"busy"}}`, core.KindAIFailure},
	}
	for _, c := range cases {
		var calls int
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(c.status)
			w.Write([]byte(c.body))
		}))
		_, err := NewClient("sk-test", nil, WithBaseURL(srv.URL)).Complete(context.Background(), core.CompletionRequest{Text: "x"})
		srv.Close()
		if calls != 1 {
			t.Errorf("status %d: %d calls, want no retries", c.status, calls)
		}

		var apiErr *APIError
		if !errors.As(err, &apiErr) || apiErr.StatusCode != c.status || apiErr.Message == "" {
			t.Errorf("status %d: err = %v", c.status, err)
			continue
		}
		if res := Classify(err); res.Kind != c.kind {
			t.Errorf("status %d: kind = %q, want %q", c.status, res.Kind, c.kind)
		}
	}
}

func TestClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	_, err := NewClient("sk-test", nil, WithBaseURL(srv.URL), WithHTTPTimeout(20*time.Millisecond)).
		Complete(context.Background(), core.CompletionRequest{Text: "x"})
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if res := Classify(err); res.Kind != core.KindAITimeout {
		t.Fatalf("kind = %q (%v)", res.Kind, err)
	}
}

func TestKeyConfigured(t *testing.T) {
	if KeyConfigured("") || KeyConfigured(PlaceholderKey) || !KeyConfigured("sk-ant-123") {
		t.Fatal("unexpected KeyConfigured result")
	}
}
