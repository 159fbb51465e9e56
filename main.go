package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	_ = godotenv.Load()
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("wordsolver failed")
		os.Exit(1)
	}
}
