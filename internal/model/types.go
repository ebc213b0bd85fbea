package model

import "time"

// DateLayout is the calendar-date form used for daily partitioning.
const DateLayout = "2006-01-02"

// Source identifies which resolution path produced a NutritionResult.
type Source string

const (
	SourceLocal  Source = "local"
	SourceRemote Source = "remote"
)

// FoodEntry is one row of the local food catalog: a lowercase food name with
// its per-serving nutrition values.
type FoodEntry struct {
	Name     string  `json:"name"`
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
}

// ResolvedItem is a single food identified in a meal description. Quantity
// and unit default to 1 / "serving" on the local path; the remote API may
// supply richer values. JSON field names match the details blobs written by
// earlier deployments, so old rows stay readable.
type ResolvedItem struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"qty"`
	Unit     string  `json:"unit"`
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
}

// NutritionResult is the outcome of resolving one meal description.
// Items keep resolution order; duplicates are not merged.
type NutritionResult struct {
	Items         []ResolvedItem `json:"items"`
	TotalCalories float64        `json:"totalCalories"`
	TotalProteinG float64        `json:"totalProteinG"`
	Source        Source         `json:"source"`
}

// MealRecord is one immutable logged meal. Records are only created and
// deleted, never updated; totals equal the sum of the embedded items at
// creation time.
type MealRecord struct {
	ID            string         `json:"id"`
	UserID        string         `json:"userId"`
	Timestamp     time.Time      `json:"timestamp"`
	RawText       string         `json:"rawText"`
	TotalCalories float64        `json:"totalCalories"`
	TotalProteinG float64        `json:"totalProteinG"`
	Items         []ResolvedItem `json:"items"`
}

// DailyTotals is the derived sum for one user over one calendar date.
// It is recomputed per query, never persisted.
type DailyTotals struct {
	UserID        string  `json:"userId"`
	Date          string  `json:"date"`
	TotalCalories float64 `json:"totalCalories"`
	TotalProteinG float64 `json:"totalProteinG"`
}
