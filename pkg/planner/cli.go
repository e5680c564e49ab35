package planner

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/busrute/busrute/pkg/config"
	"github.com/busrute/busrute/pkg/ctdf"
	"github.com/busrute/busrute/pkg/dataaggregator"
	"github.com/busrute/busrute/pkg/dataaggregator/global"
	"github.com/busrute/busrute/pkg/dataaggregator/query"
	"github.com/kr/pretty"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "plan",
		Usage: "Compose a single journey and print it",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "from",
				Usage:    "origin as \"lat,lng\" or a place name",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "to",
				Usage:    "destination as \"lat,lng\" or a place name",
				Required: true,
			},
			&cli.IntFlag{
				Name:  "select",
				Usage: "candidate index to compose",
			},
			&cli.BoolFlag{
				Name:  "dump",
				Usage: "dump the full session view",
			},
		},
		Action: func(c *cli.Context) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			global.Setup(cfg)

			ctx := c.Context

			origin, err := resolvePlace(ctx, c.String("from"))
			if err != nil {
				return err
			}
			destination, err := resolvePlace(ctx, c.String("to"))
			if err != nil {
				return err
			}

			session := NewSession("cli", NewAggregatorProvider(dataaggregator.GlobalAggregator), nil)
			session.SetOrigin(origin)
			session.SetDestination(destination)

			if err := session.Search(ctx); err != nil {
				return err
			}
			if index := c.Int("select"); index != 0 {
				if err := session.Select(ctx, index); err != nil {
					return err
				}
			}

			view := session.View()

			if c.Bool("dump") {
				pretty.Println(view)
				return nil
			}

			fmt.Printf("%s → %s\n", origin.Name, destination.Name)
			for _, route := range view.Routes {
				marker := " "
				if route.Selected {
					marker = "*"
				}
				fmt.Printf("%s [%d] %3d분  %s  %s  %s  도착 %s\n", marker, route.Index, route.TotalMinutes, route.Lines, route.TransferText, route.WalkText, route.ArrivalTime.Format("15:04"))
			}

			fmt.Println()
			for _, segment := range view.Segments {
				fmt.Printf("%-6s %-12s %-20s %3d points %s\n", segment.Kind, segment.Label, segment.OriginStationLabel, len(segment.Polyline), segment.Colour)
			}

			for _, notice := range view.Notices {
				log.Warn().Str("kind", string(notice.Kind)).Msg(notice.Message)
			}

			return nil
		},
	}
}

// resolvePlace accepts either a "lat,lng" pair or free text, which is looked
// up with the place search and resolved to the best match.
func resolvePlace(ctx context.Context, value string) (ctdf.Place, error) {
	if parts := strings.Split(value, ","); len(parts) == 2 {
		if point, ok := ctdf.LatLng(parts[0], parts[1]).Sanitize(); ok {
			return ctdf.Place{Name: value, Point: point}, nil
		}
	}

	places, err := dataaggregator.Lookup[[]ctdf.Place](ctx, query.PlaceSearch{Keyword: value})
	if err != nil {
		return ctdf.Place{}, fmt.Errorf("looking up %q: %w", value, err)
	}
	if len(places) == 0 {
		return ctdf.Place{}, errors.New("no place found for " + value)
	}

	return places[0], nil
}
