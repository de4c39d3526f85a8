package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/adanyl0v/go-taskboard/internal/services"
)

func TestHandleSuggestTags(t *testing.T) {
	mock := &mockTaskService{SuggestTagsFunc: func(_ context.Context, note string) ([]string, error) {
		if note != "Discuss Q4 proposal" {
			t.Fatalf("unexpected note: %q", note)
		}
		return []string{"proposal", "sales"}, nil
	}}
	router := newTestRouter(mock)

	body, _ := json.Marshal(map[string]any{
		"note": "Discuss Q4 proposal",
		"tags": []string{"sales", "q4"},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/tags/suggest", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp suggestTagsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	// Suggested tags are merged into the submitted set without
	// duplicates, keeping first-appearance order.
	want := []string{"sales", "q4", "proposal"}
	if !reflect.DeepEqual(resp.Tags, want) {
		t.Fatalf("expected %v, got %v", want, resp.Tags)
	}
}

func TestHandleSuggestTagsBlankNote(t *testing.T) {
	mock := &mockTaskService{SuggestTagsFunc: func(context.Context, string) ([]string, error) {
		return nil, services.ErrEmptyNote
	}}
	router := newTestRouter(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/tags/suggest", bytes.NewBufferString(`{"note":" "}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestHandleSuggestTagsServiceFailure(t *testing.T) {
	mock := &mockTaskService{SuggestTagsFunc: func(context.Context, string) ([]string, error) {
		return nil, errors.New("provider down")
	}}
	router := newTestRouter(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/tags/suggest", bytes.NewBufferString(`{"note":"some note"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", w.Code)
	}
}
