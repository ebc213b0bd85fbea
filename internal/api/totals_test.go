package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	respond "github.com/adhaka3/whatsapp-llm-agent/internal/api/respond"
	"github.com/adhaka3/whatsapp-llm-agent/internal/model"
	"github.com/adhaka3/whatsapp-llm-agent/internal/services"
	"github.com/adhaka3/whatsapp-llm-agent/internal/store"
)

type mockMeals struct {
	sums   map[string]model.DailyTotals
	sumErr error
}

func (m *mockMeals) Append(ctx context.Context, rec *model.MealRecord) (*model.MealRecord, error) {
	return rec, nil
}

func (m *mockMeals) SumForDate(ctx context.Context, userID, date string) (float64, float64, error) {
	if m.sumErr != nil {
		return 0, 0, m.sumErr
	}
	s := m.sums[userID+"|"+date]
	return s.TotalCalories, s.TotalProteinG, nil
}

func (m *mockMeals) DeleteForDate(ctx context.Context, userID, date string) (int64, error) {
	return 0, nil
}

type mockStore struct {
	meals mockMeals
}

func (m *mockStore) Meals() store.Meals { return &m.meals }

func getTotals(h *TotalsHandler, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.GetTotals(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestTotalsEndpoint(t *testing.T) {
	const user = "whatsapp:+15550001111"
	ms := &mockStore{meals: mockMeals{sums: map[string]model.DailyTotals{
		user + "|2025-03-10": {TotalCalories: 471.5, TotalProteinG: 23.9},
	}}}
	h := NewTotalsHandler(services.NewDailyAggregator(ms))

	t.Run("Missing User", func(t *testing.T) {
		w := getTotals(h, "/totals")
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var er respond.ErrorResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&er))
		assert.Equal(t, http.StatusBadRequest, er.Code)
		assert.Equal(t, "provide user param (whatsapp:+NNN)", er.Message)
	})

	t.Run("Invalid Date", func(t *testing.T) {
		w := getTotals(h, "/totals?user=whatsapp:%2B15550001111&date=10-03-2025")
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var er respond.ErrorResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&er))
		assert.Equal(t, "invalid date param, expected YYYY-MM-DD", er.Message)
	})

	t.Run("Explicit Date", func(t *testing.T) {
		// The plus sign must arrive percent-encoded or query parsing turns
		// it into a space.
		w := getTotals(h, "/totals?user=whatsapp:%2B15550001111&date=2025-03-10")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

		var got model.DailyTotals
		require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
		assert.Equal(t, user, got.UserID)
		assert.Equal(t, "2025-03-10", got.Date)
		assert.Equal(t, 471.5, got.TotalCalories)
		assert.Equal(t, 23.9, got.TotalProteinG)
	})

	t.Run("Date Defaults To Today", func(t *testing.T) {
		before := services.Today()
		ms.meals.sums[user+"|"+before] = model.DailyTotals{TotalCalories: 99, TotalProteinG: 9}

		w := getTotals(h, "/totals?user=whatsapp:%2B15550001111")
		require.Equal(t, http.StatusOK, w.Code)
		after := services.Today()

		var got model.DailyTotals
		require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
		if before == after {
			assert.Equal(t, before, got.Date)
			assert.Equal(t, float64(99), got.TotalCalories)
		}
	})

	t.Run("Unknown User Is Zero", func(t *testing.T) {
		w := getTotals(h, "/totals?user=whatsapp:%2B10000000000&date=2025-03-10")
		require.Equal(t, http.StatusOK, w.Code)

		var got model.DailyTotals
		require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
		assert.Zero(t, got.TotalCalories)
		assert.Zero(t, got.TotalProteinG)
	})

	t.Run("Store Failure", func(t *testing.T) {
		broken := &mockStore{meals: mockMeals{sumErr: errors.New("connection reset")}}
		bh := NewTotalsHandler(services.NewDailyAggregator(broken))

		w := getTotals(bh, "/totals?user=whatsapp:%2B15550001111&date=2025-03-10")
		assert.Equal(t, http.StatusInternalServerError, w.Code)

		var er respond.ErrorResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&er))
		assert.Equal(t, "failed to compute totals", er.Message)
	})
}
