package services

import (
	"context"
	"time"

	"github.com/adhaka3/whatsapp-llm-agent/internal/model"
	"github.com/adhaka3/whatsapp-llm-agent/internal/store"
)

// DailyAggregator computes a user's running totals for one calendar date.
type DailyAggregator struct {
	store store.Store
}

func NewDailyAggregator(s store.Store) *DailyAggregator { return &DailyAggregator{store: s} }

// TotalsFor returns the calorie/protein totals for userID on date. It is a
// pure read over the store; every call re-queries, the store is the single
// source of truth.
func (a *DailyAggregator) TotalsFor(ctx context.Context, userID, date string) (*model.DailyTotals, error) {
	calories, proteinG, err := a.store.Meals().SumForDate(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	return &model.DailyTotals{
		UserID:        userID,
		Date:          date,
		TotalCalories: calories,
		TotalProteinG: proteinG,
	}, nil
}

// Today returns the process-local calendar date. Records are stored with
// UTC timestamps, so near midnight this window can disagree with the
// stored date; a known limitation kept for compatibility.
func Today() string {
	return time.Now().Format(model.DateLayout)
}
