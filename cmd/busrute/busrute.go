package main

import (
	"os"
	"time"

	"github.com/busrute/busrute/pkg/api"
	"github.com/busrute/busrute/pkg/events"
	"github.com/busrute/busrute/pkg/planner"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	_ "time/tzdata"
)

func main() {
	// Arrival estimates are printed in Korean local time
	if loc, err := time.LoadLocation("Asia/Seoul"); err == nil {
		time.Local = loc
	}

	if os.Getenv("BUSRUTE_LOG_FORMAT") != "JSON" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	if os.Getenv("BUSRUTE_DEBUG") == "YES" {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}

	app := &cli.App{
		Name:        "busrute",
		Description: "Transit itinerary composition service",

		Commands: []*cli.Command{
			api.RegisterCLI(),
			planner.RegisterCLI(),
			events.RegisterCLI(),
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
}
