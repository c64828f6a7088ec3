package main

import (
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordscramble/internal/cli"
)

func main() {
	// .env is optional; real environment wins.
	_ = godotenv.Load()

	if err := cli.NewRootCommand().Execute(); err != nil {
		log.Fatal().Err(err).Msg("wordscramble failed")
	}
}
