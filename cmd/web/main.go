package main

import (
	"os"

	"buzzroom/internal/server"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := server.Run(); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
