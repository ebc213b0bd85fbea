// Package reply renders user-facing confirmation messages for logged meals.
package reply

import (
	"context"
	"fmt"
	"strings"

	"github.com/adhaka3/whatsapp-llm-agent/internal/model"
)

// Formatter produces the reply sent after a meal is logged. Implementations
// may call out to an LLM for friendlier phrasing; callers fall back to
// Template when FormatMeal fails.
type Formatter interface {
	FormatMeal(ctx context.Context, rawText string, result *model.NutritionResult, daily *model.DailyTotals) (string, error)
}

// Template renders the deterministic meal confirmation: a header, one line
// per item, then meal totals and the day's running totals. This exact
// layout is relied on by clients parsing replies, so keep it stable.
func Template(result *model.NutritionResult, daily *model.DailyTotals) string {
	var b strings.Builder
	b.WriteString("I logged this meal:")
	for _, it := range result.Items {
		fmt.Fprintf(&b, "\n- %g %s %s: %.0f kcal, %.1f g protein", it.Quantity, it.Unit, it.Name, it.Calories, it.ProteinG)
	}
	fmt.Fprintf(&b, "\n\nMeal totals: %.0f kcal, %.1f g protein", result.TotalCalories, result.TotalProteinG)
	fmt.Fprintf(&b, "\nToday's running totals: %.0f kcal, %.1f g protein", daily.TotalCalories, daily.TotalProteinG)
	return b.String()
}

// NullFormatter renders the deterministic template and never fails. It is
// the formatter of record when no LLM is configured.
type NullFormatter struct{}

// FormatMeal implements Formatter.
func (NullFormatter) FormatMeal(_ context.Context, _ string, result *model.NutritionResult, daily *model.DailyTotals) (string, error) {
	return Template(result, daily), nil
}
