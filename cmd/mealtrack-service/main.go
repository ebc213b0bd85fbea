package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/adhaka3/whatsapp-llm-agent/mealservice"
)

func main() {
	// .env is optional; deployed environments set real variables.
	_ = godotenv.Load()

	if err := mealservice.Run(); err != nil {
		log.Error().Err(err).Msg("mealtrack-service exited with error")
		os.Exit(1)
	}
}
