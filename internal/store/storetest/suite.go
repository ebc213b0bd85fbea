package storetest

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/adhaka3/whatsapp-llm-agent/internal/model"
	"github.com/adhaka3/whatsapp-llm-agent/internal/store"
)

// Run exercises a compliance suite against a store.Store implementation.
// Implementations should provide a clean, isolated store and return it from makeStore.
func Run(t *testing.T, makeStore func(t *testing.T) store.Store) {
	t.Helper()

	s := makeStore(t)
	ctx := context.Background()

	// Unique test identifiers
	userA := "whatsapp:+u-" + uuid.New().String()
	userB := "whatsapp:+u-" + uuid.New().String()

	const day = "2025-03-10"
	const nextDay = "2025-03-11"

	at := func(stamp string) time.Time {
		ts, err := time.Parse(time.RFC3339, stamp)
		if err != nil {
			t.Fatalf("parse test timestamp %s: %v", stamp, err)
		}
		return ts
	}

	// Empty store sums to zero, never errors
	if cal, prot, err := s.Meals().SumForDate(ctx, userA, day); err != nil || cal != 0 || prot != 0 {
		t.Fatalf("SumForDate on empty store: cal=%f prot=%f err=%v", cal, prot, err)
	}

	// Appends for userA across the day, one right at the date boundary
	mustAppend := func(userID string, ts time.Time, text string, cal, prot float64) *model.MealRecord {
		rec, err := s.Meals().Append(ctx, &model.MealRecord{
			UserID:        userID,
			Timestamp:     ts,
			RawText:       text,
			TotalCalories: cal,
			TotalProteinG: prot,
			Items: []model.ResolvedItem{
				{Name: text, Quantity: 1, Unit: "serving", Calories: cal, ProteinG: prot},
			},
		})
		if err != nil {
			t.Fatalf("Append %s: %v", text, err)
		}
		return rec
	}

	r1 := mustAppend(userA, at(day+"T08:30:00Z"), "idli", 120, 8.5)
	mustAppend(userA, at(day+"T13:05:00Z"), "dosa and sambar", 342.5, 21.25)
	mustAppend(userA, at(day+"T23:59:59Z"), "late snack", 50, 1.125)
	mustAppend(userA, at(nextDay+"T00:00:00Z"), "midnight dosa", 200, 10)
	mustAppend(userB, at(day+"T12:00:00Z"), "egg", 99, 9)

	if r1.ID == "" {
		t.Fatalf("Append must return a record ID")
	}
	if !r1.Timestamp.Equal(at(day + "T08:30:00Z")) {
		t.Fatalf("Append must keep the provided timestamp, got %v", r1.Timestamp)
	}

	// Date-prefix sums are user- and date-scoped. Values are dyadic
	// fractions so float sums are exact in any accumulation order.
	if cal, prot, err := s.Meals().SumForDate(ctx, userA, day); err != nil || cal != 120+342.5+50 || prot != 8.5+21.25+1.125 {
		t.Fatalf("SumForDate userA %s: cal=%f prot=%f err=%v", day, cal, prot, err)
	}
	if cal, prot, err := s.Meals().SumForDate(ctx, userA, nextDay); err != nil || cal != 200 || prot != 10 {
		t.Fatalf("SumForDate userA %s: cal=%f prot=%f err=%v", nextDay, cal, prot, err)
	}
	if cal, prot, err := s.Meals().SumForDate(ctx, userB, day); err != nil || cal != 99 || prot != 9 {
		t.Fatalf("SumForDate userB %s: cal=%f prot=%f err=%v", day, cal, prot, err)
	}

	// Delete removes exactly the user's records on that date
	n, err := s.Meals().DeleteForDate(ctx, userA, day)
	if err != nil || n != 3 {
		t.Fatalf("DeleteForDate: n=%d err=%v", n, err)
	}
	if cal, prot, err := s.Meals().SumForDate(ctx, userA, day); err != nil || cal != 0 || prot != 0 {
		t.Fatalf("SumForDate after delete: cal=%f prot=%f err=%v", cal, prot, err)
	}
	if cal, _, err := s.Meals().SumForDate(ctx, userA, nextDay); err != nil || cal != 200 {
		t.Fatalf("delete must not cross the date boundary: cal=%f err=%v", cal, err)
	}
	if cal, _, err := s.Meals().SumForDate(ctx, userB, day); err != nil || cal != 99 {
		t.Fatalf("delete must not cross users: cal=%f err=%v", cal, err)
	}

	// Idempotent: a second delete finds nothing
	if n, err := s.Meals().DeleteForDate(ctx, userA, day); err != nil || n != 0 {
		t.Fatalf("second DeleteForDate: n=%d err=%v", n, err)
	}

	// Append fills in ID and timestamp when unset
	auto, err := s.Meals().Append(ctx, &model.MealRecord{UserID: userA, RawText: "rice", TotalCalories: 130, TotalProteinG: 2.4})
	if err != nil {
		t.Fatalf("Append without ID/timestamp: %v", err)
	}
	if auto.ID == "" || auto.Timestamp.IsZero() {
		t.Fatalf("Append must assign ID and timestamp: %+v", auto)
	}
	if auto.Timestamp.Location() != time.UTC {
		t.Fatalf("assigned timestamp must be UTC, got %v", auto.Timestamp.Location())
	}

	// Concurrent appends for one user must all be durable and summable
	concUser := "whatsapp:+u-" + uuid.New().String()
	const workers = 4
	const perWorker = 2
	var wg sync.WaitGroup
	errCh := make(chan error, workers*perWorker)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				_, err := s.Meals().Append(ctx, &model.MealRecord{
					UserID:        concUser,
					Timestamp:     at(day + "T10:00:00Z"),
					RawText:       "snack",
					TotalCalories: 10.5,
					TotalProteinG: 1.25,
				})
				if err != nil {
					errCh <- err
				}
			}
		}()
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		t.Fatalf("concurrent Append: %v", err)
	}
	if cal, prot, err := s.Meals().SumForDate(ctx, concUser, day); err != nil || cal != workers*perWorker*10.5 || prot != workers*perWorker*1.25 {
		t.Fatalf("sum after concurrent appends: cal=%f prot=%f err=%v", cal, prot, err)
	}
}
