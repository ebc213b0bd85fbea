package api

import (
	"net/http"
	"time"

	respond "github.com/adhaka3/whatsapp-llm-agent/internal/api/respond"
	"github.com/adhaka3/whatsapp-llm-agent/internal/model"
	"github.com/adhaka3/whatsapp-llm-agent/internal/services"
)

// TotalsHandler exposes a read-only debug lookup of daily totals.
type TotalsHandler struct {
	agg *services.DailyAggregator
}

// NewTotalsHandler creates a new totals handler.
func NewTotalsHandler(agg *services.DailyAggregator) *TotalsHandler {
	return &TotalsHandler{agg: agg}
}

// GetTotals handles GET /totals?user=whatsapp:+NNN[&date=YYYY-MM-DD].
// The date defaults to today.
func (h *TotalsHandler) GetTotals(w http.ResponseWriter, r *http.Request) {
	user := r.URL.Query().Get("user")
	if user == "" {
		respond.WriteBadRequest(w, "provide user param (whatsapp:+NNN)")
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		date = services.Today()
	} else if _, err := time.Parse(model.DateLayout, date); err != nil {
		respond.WriteBadRequest(w, "invalid date param, expected YYYY-MM-DD")
		return
	}

	totals, err := h.agg.TotalsFor(r.Context(), user, date)
	if err != nil {
		respond.WriteInternalError(w, "failed to compute totals")
		return
	}
	respond.WriteJSON(w, http.StatusOK, totals)
}
