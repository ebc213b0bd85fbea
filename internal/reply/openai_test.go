package reply

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/adhaka3/whatsapp-llm-agent/internal/model"
)

func TestOpenAIFormatter_FormatMeal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Fatalf("missing bearer token: %q", r.Header.Get("Authorization"))
		}
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Model != "gpt-4o-mini" || req.MaxTokens != 250 || req.Temperature != 0.2 {
			t.Fatalf("unexpected request parameters: %+v", req)
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" || req.Messages[1].Role != "user" {
			t.Fatalf("unexpected messages: %+v", req.Messages)
		}
		if !strings.Contains(req.Messages[1].Content, "Original message: idli and dosa") {
			t.Fatalf("user prompt missing original message: %q", req.Messages[1].Content)
		}
		if !strings.Contains(req.Messages[1].Content, "1 serving idli -> 39.0 kcal, 2.0 g protein") {
			t.Fatalf("user prompt missing item lines: %q", req.Messages[1].Content)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "  Nice choice! Idli and dosa logged.\n"}},
			},
		})
	}))
	defer srv.Close()

	f := NewOpenAIFormatter(srv.URL, "test-key", "gpt-4o-mini", 5*time.Second)
	daily := &model.DailyTotals{TotalCalories: 511, TotalProteinG: 20.9}

	got, err := f.FormatMeal(context.Background(), "idli and dosa", sampleResult(), daily)
	if err != nil {
		t.Fatalf("format meal: %v", err)
	}
	want := "Nice choice! Idli and dosa logged." +
		"\n\nMeal totals: 172 kcal, 4.7 g protein." +
		"\nToday's running totals: 511 kcal, 20.9 g protein."
	if got != want {
		t.Fatalf("unexpected reply:\n got: %q\nwant: %q", got, want)
	}
}

func TestOpenAIFormatter_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "rate limited"}}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	f := NewOpenAIFormatter(srv.URL, "test-key", "gpt-4o-mini", 5*time.Second)
	if _, err := f.FormatMeal(context.Background(), "idli", sampleResult(), &model.DailyTotals{}); err == nil {
		t.Fatalf("expected error on non-200 status")
	}
}

func TestOpenAIFormatter_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices": []}`))
	}))
	defer srv.Close()

	f := NewOpenAIFormatter(srv.URL, "test-key", "gpt-4o-mini", 5*time.Second)
	if _, err := f.FormatMeal(context.Background(), "idli", sampleResult(), &model.DailyTotals{}); err == nil {
		t.Fatalf("expected error when no choices returned")
	}
}
