package main

import (
	"os"

	"timing-grid/internal/app"
	"timing-grid/internal/config"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfgPath, err := config.DefaultPath()
	if err != nil {
		log.Warn().Err(err).Msg("no user config directory, settings will not be saved")
		cfgPath = ""
	}

	application, err := app.NewApplication(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("application initialization failed")
	}

	if err := application.Run(); err != nil {
		log.Fatal().Err(err).Msg("application execution failed")
	}
}
