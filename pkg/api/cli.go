package api

import (
	"context"

	"github.com/busrute/busrute/pkg/config"
	"github.com/busrute/busrute/pkg/dataaggregator"
	"github.com/busrute/busrute/pkg/dataaggregator/global"
	"github.com/busrute/busrute/pkg/events"
	"github.com/busrute/busrute/pkg/planner"
	"github.com/busrute/busrute/pkg/redis_client"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "web-api",
		Usage: "Provides the core web API",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run web api server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Usage: "listen target for the web server, overrides BUSRUTE_LISTEN_ADDRESS",
					},
				},
				Action: func(c *cli.Context) error {
					cfg, err := config.Load()
					if err != nil {
						return err
					}

					var publisher planner.EventPublisher = events.NopPublisher{}

					if cfg.RedisEnabled() {
						if err := redis_client.Connect(cfg.Redis); err != nil {
							return err
						}

						queuePublisher, err := events.NewQueuePublisher(redis_client.QueueConnection, cfg.Events.Queue)
						if err != nil {
							return err
						}
						publisher = queuePublisher
					} else {
						log.Info().Msg("Redis not configured, place cache and composition events disabled")
					}

					global.Setup(cfg)

					manager := planner.NewSessionManager(
						planner.NewAggregatorProvider(dataaggregator.GlobalAggregator),
						publisher,
						cfg.Sessions.IdleTTL,
					)

					ctx, cancel := context.WithCancel(context.Background())
					defer cancel()
					go manager.Run(ctx)

					listen := cfg.ListenAddress
					if c.String("listen") != "" {
						listen = c.String("listen")
					}

					return SetupServer(listen, manager)
				},
			},
		},
	}
}
