// Package nutrition resolves free-text meal descriptions into food items
// with calorie and protein values, using the local catalog first and an
// external API as fallback.
package nutrition

import (
	"context"
	"errors"

	"github.com/adhaka3/whatsapp-llm-agent/internal/catalog"
	"github.com/adhaka3/whatsapp-llm-agent/internal/model"
)

// Mode selects the resolution policy.
type Mode string

const (
	// ModeLocal resolves against the catalog only.
	ModeLocal Mode = "local"
	// ModeRemote resolves against the remote API only.
	ModeRemote Mode = "remote"
	// ModeAuto tries the catalog first and falls back to the remote API
	// when nothing matches locally.
	ModeAuto Mode = "auto"
)

// RemoteSource resolves free text via an external nutrition API.
type RemoteSource interface {
	Query(ctx context.Context, text string) ([]model.ResolvedItem, error)
}

// Resolver turns raw meal text into a NutritionResult. The catalog is
// injected at construction and never mutated; remote may be nil when no
// API credentials are configured.
type Resolver struct {
	catalog *catalog.Catalog
	remote  RemoteSource
	mode    Mode
}

// NewResolver creates a Resolver with the given policy.
func NewResolver(cat *catalog.Catalog, remote RemoteSource, mode Mode) *Resolver {
	return &Resolver{catalog: cat, remote: remote, mode: mode}
}

// Resolve produces resolved items and totals for text.
//
// It returns model.ErrNoFoodFound when neither the catalog nor the remote
// source recognizes any food, and model.ErrNutritionUnavailable when the
// remote call fails. Both are recoverable; callers reply to the user
// instead of propagating.
func (r *Resolver) Resolve(ctx context.Context, text string) (*model.NutritionResult, error) {
	switch r.mode {
	case ModeLocal:
		return r.resolveLocal(text)
	case ModeRemote:
		return r.resolveRemote(ctx, text)
	default:
		result, err := r.resolveLocal(text)
		if err == nil {
			return result, nil
		}
		if !errors.Is(err, model.ErrNoFoodFound) || r.remote == nil {
			return nil, err
		}
		return r.resolveRemote(ctx, text)
	}
}

func (r *Resolver) resolveLocal(text string) (*model.NutritionResult, error) {
	matched := r.catalog.LookupContains(text)
	if len(matched) == 0 {
		return nil, model.ErrNoFoodFound
	}

	items := make([]model.ResolvedItem, 0, len(matched))
	var totalCal, totalProt float64
	for _, e := range matched {
		items = append(items, model.ResolvedItem{
			Name:     e.Name,
			Quantity: 1,
			Unit:     "serving",
			Calories: e.Calories,
			ProteinG: e.ProteinG,
		})
		totalCal += e.Calories
		totalProt += e.ProteinG
	}

	return &model.NutritionResult{
		Items:         items,
		TotalCalories: totalCal,
		TotalProteinG: totalProt,
		Source:        model.SourceLocal,
	}, nil
}

func (r *Resolver) resolveRemote(ctx context.Context, text string) (*model.NutritionResult, error) {
	if r.remote == nil {
		return nil, model.ErrNutritionUnavailable
	}

	items, err := r.remote.Query(ctx, text)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, model.ErrNoFoodFound
	}

	var totalCal, totalProt float64
	for _, it := range items {
		totalCal += it.Calories
		totalProt += it.ProteinG
	}

	return &model.NutritionResult{
		Items:         items,
		TotalCalories: totalCal,
		TotalProteinG: totalProt,
		Source:        model.SourceRemote,
	}, nil
}
