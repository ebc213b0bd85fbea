package factory

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/adhaka3/whatsapp-llm-agent/internal/catalog"
	"github.com/adhaka3/whatsapp-llm-agent/internal/config"
	"github.com/adhaka3/whatsapp-llm-agent/internal/nutrition"
)

// NewResolver builds the nutrition resolver from the local food catalog and,
// when credentials are present, a Nutritionix client for fallback lookups.
// A missing or unreadable catalog is a startup failure.
func NewResolver(cfg *config.Config, log zerolog.Logger) (*nutrition.Resolver, error) {
	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("load food catalog: %w", err)
	}
	log.Info().Int("foods", cat.Len()).Str("path", cfg.CatalogPath).Msg("food catalog loaded")

	var remote nutrition.RemoteSource
	if cfg.HasNutritionixCredentials() {
		remote = nutrition.NewClient(
			cfg.NutritionixBaseURL,
			cfg.NutritionixAppID,
			cfg.NutritionixAppKey,
			time.Duration(cfg.RemoteTimeoutSeconds)*time.Second,
		)
	}

	mode := nutrition.Mode(cfg.ResolverMode)
	if remote == nil && mode != nutrition.ModeLocal {
		log.Warn().Str("mode", cfg.ResolverMode).
			Msg("nutritionix credentials missing; unmatched meals will not reach the remote API")
	}
	return nutrition.NewResolver(cat, remote, mode), nil
}
