package suggest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient("test-key", server.URL, "test-model", 5*time.Second)
}

func chatReply(t *testing.T, w http.ResponseWriter, tags []string) {
	t.Helper()

	content, err := json.Marshal(tagsPayload{Tags: tags})
	if err != nil {
		t.Fatalf("failed to marshal tags: %v", err)
	}
	reply := map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": string(content)}},
		},
	}
	if err := json.NewEncoder(w).Encode(reply); err != nil {
		t.Fatalf("failed to encode reply: %v", err)
	}
}

func TestSuggest(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected authorization header: %q", got)
		}

		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if req.Model != "test-model" {
			t.Errorf("unexpected model: %q", req.Model)
		}
		if len(req.Messages) != 2 || !strings.Contains(req.Messages[1].Content, "Discuss Q4 proposal") {
			t.Errorf("description missing from messages: %+v", req.Messages)
		}

		chatReply(t, w, []string{"sales", "proposal"})
	})

	tags, err := client.Suggest(context.Background(), "Discuss Q4 proposal")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []string{"sales", "proposal"}; !reflect.DeepEqual(tags, want) {
		t.Fatalf("expected %v, got %v", want, tags)
	}
}

func TestSuggestTruncatesToMaxTags(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		chatReply(t, w, []string{"a", "b", "c", "d", "e", "f", "g"})
	})

	tags, err := client.Suggest(context.Background(), "a long note")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tags) != MaxTags {
		t.Fatalf("expected %d tags, got %d", MaxTags, len(tags))
	}
}

func TestSuggestDropsBlankTags(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		chatReply(t, w, []string{" sales ", "", "  "})
	})

	tags, err := client.Suggest(context.Background(), "a note")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []string{"sales"}; !reflect.DeepEqual(tags, want) {
		t.Fatalf("expected %v, got %v", want, tags)
	}
}

func TestSuggestEmptyDescription(t *testing.T) {
	called := false
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	if _, err := client.Suggest(context.Background(), "   "); err == nil {
		t.Fatal("expected an error for a blank description")
	}
	if called {
		t.Fatal("provider must not be called for a blank description")
	}
}

func TestSuggestMissingAPIKey(t *testing.T) {
	client := NewClient("", "http://localhost:0", "test-model", time.Second)

	if _, err := client.Suggest(context.Background(), "a note"); err == nil {
		t.Fatal("expected an error without an api key")
	}
}

func TestSuggestClientErrorNotRetried(t *testing.T) {
	calls := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"message": "bad request", "type": "invalid_request_error"},
		})
	})

	_, err := client.Suggest(context.Background(), "a note")
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "bad request") {
		t.Fatalf("expected provider message in error, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected exactly 1 call, got %d", calls)
	}
}
