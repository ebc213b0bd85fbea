package nutrition

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/adhaka3/whatsapp-llm-agent/internal/model"
)

func TestNutritionixQuery(t *testing.T) {
	// create fake server
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/natural/nutrients" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method %s", r.Method)
		}
		if r.Header.Get("x-app-id") != "app-id" || r.Header.Get("x-app-key") != "app-key" {
			t.Fatalf("credentials headers missing: %v", r.Header)
		}
		var req nutrientsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Query != "2 eggs and a slice of toast" {
			t.Fatalf("unexpected query: %q", req.Query)
		}
		_ = json.NewEncoder(w).Encode(nutrientsResponse{Foods: []nutrientsFood{
			{FoodName: "egg", ServingQty: 2, ServingUnit: "large", NfCalories: 143.1, NfProtein: 12.6},
			{FoodName: "toast", ServingQty: 1, ServingUnit: "slice", NfCalories: 64.2, NfProtein: 2.4},
		}})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "app-id", "app-key", 5*time.Second)
	items, err := c.Query(context.Background(), "2 eggs and a slice of toast")
	if err != nil {
		t.Fatalf("query error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %+v", items)
	}
	first := items[0]
	if first.Name != "egg" || first.Quantity != 2 || first.Unit != "large" || first.Calories != 143.1 || first.ProteinG != 12.6 {
		t.Fatalf("unexpected first item: %+v", first)
	}
	if items[1].Name != "toast" {
		t.Fatalf("unexpected second item: %+v", items[1])
	}
}

func TestNutritionixQuery_MissingFieldsDefaultToZero(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"foods": [{"food_name": "mystery stew"}, {"serving_unit": "bowl"}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "id", "key", 5*time.Second)
	items, err := c.Query(context.Background(), "mystery stew")
	if err != nil {
		t.Fatalf("query error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %+v", items)
	}
	if items[0].Quantity != 0 || items[0].Calories != 0 || items[0].ProteinG != 0 {
		t.Fatalf("missing numerics should default to zero: %+v", items[0])
	}
	if items[1].Name != "" || items[1].Unit != "bowl" {
		t.Fatalf("missing name should stay empty: %+v", items[1])
	}
}

func TestNutritionixQuery_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "id", "key", 5*time.Second)
	if _, err := c.Query(context.Background(), "anything"); !errors.Is(err, model.ErrNutritionUnavailable) {
		t.Fatalf("expected ErrNutritionUnavailable, got %v", err)
	}
}

func TestNutritionixQuery_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json at all"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "id", "key", 5*time.Second)
	if _, err := c.Query(context.Background(), "anything"); !errors.Is(err, model.ErrNutritionUnavailable) {
		t.Fatalf("expected ErrNutritionUnavailable, got %v", err)
	}
}

func TestNutritionixQuery_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	c := NewClient(srv.URL, "id", "key", time.Second)
	if _, err := c.Query(context.Background(), "anything"); !errors.Is(err, model.ErrNutritionUnavailable) {
		t.Fatalf("expected ErrNutritionUnavailable, got %v", err)
	}
}
