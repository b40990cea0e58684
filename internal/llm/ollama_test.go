package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOllamaProvider_Stream(t *testing.T) {
	var got ollamaChatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		fmt.Fprintln(w, `{"model":"m","message":{"role":"assistant","content":"one "},"done":false}`)
		fmt.Fprintln(w, `{"model":"m","message":{"role":"assistant","content":"two"},"done":false}`)
		fmt.Fprintln(w, `{"model":"m","message":{"role":"assistant","content":""},"done":true,"prompt_eval_count":7,"eval_count":2}`)
	}))
	defer server.Close()

	p := NewOllamaProvider(server.URL+"/", "m")
	req := NewRequest("", "s", "u")
	req.TopP = 0.99
	req.JSON = true

	events, err := p.Stream(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}

	var text string
	var usage *Usage
	for ev := range events {
		if ev.Error != nil {
			t.Fatalf("stream error: %v", ev.Error)
		}
		if ev.Done {
			usage = ev.Usage
			break
		}
		text += ev.Chunk
	}

	if text != "one two" {
		t.Errorf("text = %q", text)
	}
	if usage == nil || usage.TotalTokens != 9 {
		t.Errorf("usage = %+v", usage)
	}
	if got.Format != "json" || got.Options.TopP != 0.99 {
		t.Errorf("request = %+v", got)
	}
}

func TestOllamaProvider_Complete_Error(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"error":"model \"x\" not found"}`)
	}))
	defer server.Close()

	p := NewOllamaProvider(server.URL, "x")
	if _, err := p.Complete(context.Background(), NewRequest("", "s", "u")); err == nil {
		t.Fatal("expected error")
	}
}

func TestOllamaProvider_Ping(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		fmt.Fprint(w, `{"models":[]}`)
	}))
	defer server.Close()

	if err := NewOllamaProvider(server.URL, "m").Ping(context.Background()); err != nil {
		t.Fatalf("Ping: %v", err)
	}
}
