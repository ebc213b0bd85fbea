// Package services holds the message-handling core: command classification,
// meal logging and daily aggregation.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/adhaka3/whatsapp-llm-agent/internal/model"
	"github.com/adhaka3/whatsapp-llm-agent/internal/reply"
	"github.com/adhaka3/whatsapp-llm-agent/internal/store"
)

// Command identifies how one inbound message is handled. Classification is
// per message; there is no conversational state across messages.
type Command int

const (
	CmdMalformed Command = iota
	CmdQueryTotals
	CmdClearToday
	CmdLogMeal
)

// Canned replies. Every error leaving the router is converted to one of
// these; raw errors never reach the user.
const (
	replyUsage = "Sorry — couldn't understand your message. Please send text like: 'I had 2 eggs and a slice of toast' or 'totals' or 'clear'."

	replyNutritionDown = "Sorry, I couldn't reach the nutrition database. Please try again later."

	replyStorageDown = "Sorry, something went wrong. Please try again later."

	replyCleared = "Cleared today's meal records."
)

// NutritionResolver turns raw meal text into resolved items with totals.
type NutritionResolver interface {
	Resolve(ctx context.Context, text string) (*model.NutritionResult, error)
}

// CommandRouter classifies inbound messages and orchestrates resolution,
// persistence and reply formatting. Handle always returns a reply string;
// component failures are logged and mapped to canned replies.
type CommandRouter struct {
	resolver     NutritionResolver
	store        store.Store
	agg          *DailyAggregator
	formatter    reply.Formatter
	log          zerolog.Logger
	storeTimeout time.Duration
}

// NewCommandRouter wires the router. formatter may be nil; the
// deterministic template is used in that case.
func NewCommandRouter(res NutritionResolver, st store.Store, agg *DailyAggregator, f reply.Formatter, log zerolog.Logger, storeTimeout time.Duration) *CommandRouter {
	if f == nil {
		f = reply.NullFormatter{}
	}
	if storeTimeout <= 0 {
		storeTimeout = 5 * time.Second
	}
	return &CommandRouter{
		resolver:     res,
		store:        st,
		agg:          agg,
		formatter:    f,
		log:          log,
		storeTimeout: storeTimeout,
	}
}

// Classify maps an inbound (sender, text) pair to a command.
// Comparison is case-insensitive on the trimmed text; anything that is not
// a recognized command is treated as a meal description.
func Classify(senderID, text string) Command {
	trimmed := strings.TrimSpace(text)
	if senderID == "" || trimmed == "" {
		return CmdMalformed
	}
	switch strings.ToLower(trimmed) {
	case "totals", "total", "today":
		return CmdQueryTotals
	case "clear", "clear today", "reset":
		return CmdClearToday
	}
	return CmdLogMeal
}

// Handle processes one inbound message and returns the reply text.
func (r *CommandRouter) Handle(ctx context.Context, senderID, text string) string {
	switch Classify(senderID, text) {
	case CmdQueryTotals:
		return r.handleQueryTotals(ctx, senderID)
	case CmdClearToday:
		return r.handleClearToday(ctx, senderID)
	case CmdLogMeal:
		return r.handleLogMeal(ctx, senderID, strings.TrimSpace(text))
	default:
		return replyUsage
	}
}

func (r *CommandRouter) handleQueryTotals(ctx context.Context, senderID string) string {
	opCtx, cancel := context.WithTimeout(ctx, r.storeTimeout)
	defer cancel()

	totals, err := r.agg.TotalsFor(opCtx, senderID, Today())
	if err != nil {
		r.log.Error().Err(err).Str("userId", senderID).Msg("totals query failed")
		return replyStorageDown
	}
	return fmt.Sprintf("Your totals for %s:\nCalories: %.0f kcal\nProtein: %.1f g",
		totals.Date, totals.TotalCalories, totals.TotalProteinG)
}

func (r *CommandRouter) handleClearToday(ctx context.Context, senderID string) string {
	opCtx, cancel := context.WithTimeout(ctx, r.storeTimeout)
	defer cancel()

	n, err := r.store.Meals().DeleteForDate(opCtx, senderID, Today())
	if err != nil {
		r.log.Error().Err(err).Str("userId", senderID).Msg("clear failed")
		return replyStorageDown
	}
	r.log.Info().Str("userId", senderID).Int64("deleted", n).Msg("cleared today's meals")
	return replyCleared
}

func (r *CommandRouter) handleLogMeal(ctx context.Context, senderID, text string) string {
	result, err := r.resolver.Resolve(ctx, text)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrNoFoodFound):
			return replyUsage
		case errors.Is(err, model.ErrNutritionUnavailable):
			r.log.Warn().Err(err).Str("userId", senderID).Msg("nutrition resolution unavailable")
			return replyNutritionDown
		default:
			r.log.Error().Err(err).Str("userId", senderID).Msg("nutrition resolution failed")
			return replyNutritionDown
		}
	}

	appendCtx, cancel := context.WithTimeout(ctx, r.storeTimeout)
	defer cancel()
	rec, err := r.store.Meals().Append(appendCtx, &model.MealRecord{
		UserID:        senderID,
		RawText:       text,
		TotalCalories: result.TotalCalories,
		TotalProteinG: result.TotalProteinG,
		Items:         result.Items,
	})
	if err != nil {
		r.log.Error().Err(err).Str("userId", senderID).Msg("meal append failed")
		return replyStorageDown
	}

	sumCtx, cancel := context.WithTimeout(ctx, r.storeTimeout)
	defer cancel()
	daily, err := r.agg.TotalsFor(sumCtx, senderID, Today())
	if err != nil {
		// The meal is saved; only the running-totals read failed.
		r.log.Error().Err(err).Str("userId", senderID).Str("mealId", rec.ID).Msg("running totals query failed")
		return replyStorageDown
	}

	formatted, err := r.formatter.FormatMeal(ctx, text, result, daily)
	if err != nil {
		r.log.Warn().Err(err).Str("userId", senderID).Msg("reply formatter failed, using template")
		return reply.Template(result, daily)
	}
	return formatted
}
