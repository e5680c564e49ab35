package events

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/busrute/busrute/pkg/config"
	"github.com/busrute/busrute/pkg/consumer"
	"github.com/busrute/busrute/pkg/ctdf"
	"github.com/busrute/busrute/pkg/elastic_client"
	"github.com/busrute/busrute/pkg/redis_client"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "events",
		Usage: "Provides the composition events indexer",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run events indexer",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "stats-listen",
						Value: ":3333",
						Usage: "address for the queue stats server, empty to disable",
					},
				},
				Action: func(c *cli.Context) error {
					cfg, err := config.Load()
					if err != nil {
						return err
					}

					if err := redis_client.Connect(cfg.Redis); err != nil {
						return err
					}
					if !cfg.ElasticsearchEnabled() {
						return elastic_client.ErrNotConfigured
					}
					if err := elastic_client.Connect(cfg.Elasticsearch); err != nil {
						return err
					}

					redisConsumer := consumer.RedisConsumer{
						QueueName:       cfg.Events.Queue,
						NumberConsumers: 2,
						BatchSize:       int(cfg.Events.BatchSize),
						Timeout:         2 * time.Second,
						Consumer:        NewBatchConsumer(cfg.Elasticsearch.Index),
						StatsAddress:    c.String("stats-listen"),
					}
					if err := redisConsumer.Setup(); err != nil {
						return err
					}

					signals := make(chan os.Signal, 1)
					signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
					defer signal.Stop(signals)

					<-signals // wait for signal
					go func() {
						<-signals // hard exit on second signal (in case shutdown gets stuck)
						os.Exit(1)
					}()

					<-redis_client.QueueConnection.StopAllConsuming() // wait for all Consume() calls to finish
					elastic_client.WaitUntilQueueEmpty()

					return nil
				},
			},
			{
				Name:  "test-event",
				Usage: "publish a test composition event",
				Action: func(c *cli.Context) error {
					cfg, err := config.Load()
					if err != nil {
						return err
					}

					if err := redis_client.Connect(cfg.Redis); err != nil {
						return err
					}

					publisher, err := NewQueuePublisher(redis_client.QueueConnection, cfg.Events.Queue)
					if err != nil {
						return err
					}

					publisher.Publish(ctdf.Event{
						Type:      ctdf.EventTypeSearchCompleted,
						SessionID: "test-event",
						Body: ctdf.SearchEventBody{
							Origin:         ctdf.GeoPoint{Lat: 36.815, Lng: 127.113},
							Destination:    ctdf.GeoPoint{Lat: 36.810, Lng: 127.130},
							CandidateCount: 1,
						},
					})

					return nil
				},
			},
		},
	}
}
