package factory

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/adhaka3/whatsapp-llm-agent/internal/config"
	"github.com/adhaka3/whatsapp-llm-agent/internal/reply"
)

// NewFormatter returns the OpenAI reply formatter when an API key is
// configured, otherwise the deterministic template formatter.
func NewFormatter(cfg *config.Config, log zerolog.Logger) reply.Formatter {
	if cfg.OpenAIAPIKey == "" {
		log.Info().Msg("OPENAI_API_KEY not set; using template replies")
		return reply.NullFormatter{}
	}
	return reply.NewOpenAIFormatter(
		cfg.OpenAIBaseURL,
		cfg.OpenAIAPIKey,
		cfg.OpenAIModel,
		time.Duration(cfg.RemoteTimeoutSeconds)*time.Second,
	)
}
