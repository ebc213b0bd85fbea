package store

import (
	"context"

	"github.com/adhaka3/whatsapp-llm-agent/internal/model"
)

// Store exposes persistence operations required by services.
// Implementations live under internal/store/<driver>/ (e.g., postgres, sqlite).
type Store interface {
	Meals() Meals
}

// Meals is the append-only meal log. Records are keyed by user and
// timestamp; they are deleted in date-scoped batches, never updated.
//
// Date parameters are calendar-date strings ("2006-01-02") compared by
// prefix against the stored ISO-8601 UTC timestamp.
type Meals interface {
	// Append persists rec and returns the stored copy. A missing ID or
	// zero Timestamp is filled in (new UUID, current UTC instant); the
	// record is durable when Append returns.
	Append(ctx context.Context, rec *model.MealRecord) (*model.MealRecord, error)

	// SumForDate returns the calorie and protein sums over the user's
	// records on date. Both are 0 when nothing matches.
	SumForDate(ctx context.Context, userID, date string) (calories, proteinG float64, err error)

	// DeleteForDate removes all of the user's records on date and
	// returns how many were deleted. Idempotent.
	DeleteForDate(ctx context.Context, userID, date string) (int64, error)
}
