package planner

import (
	"context"
	"errors"
	"fmt"

	"github.com/busrute/busrute/pkg/ctdf"
	"github.com/busrute/busrute/pkg/dataaggregator"
	"github.com/busrute/busrute/pkg/dataaggregator/query"
	"github.com/busrute/busrute/pkg/dataaggregator/source"
)

type TripPlanner interface {
	PlanJourney(ctx context.Context, origin ctdf.GeoPoint, destination ctdf.GeoPoint) ([]ctdf.Itinerary, error)
}

// LaneDetailFetcher resolves an itinerary's detail token into per transit leg
// geometry. Failures are always one of source.ErrNetwork or
// source.ErrEmptyResult.
type LaneDetailFetcher interface {
	FetchLaneDetail(ctx context.Context, detailToken string) ([]ctdf.LaneGeometry, error)
}

type Provider interface {
	TripPlanner
	LaneDetailFetcher
}

// AggregatorProvider answers planner lookups through a data aggregator.
type AggregatorProvider struct {
	Aggregator *dataaggregator.Aggregator
}

func NewAggregatorProvider(aggregator *dataaggregator.Aggregator) *AggregatorProvider {
	return &AggregatorProvider{Aggregator: aggregator}
}

func (p *AggregatorProvider) PlanJourney(ctx context.Context, origin ctdf.GeoPoint, destination ctdf.GeoPoint) ([]ctdf.Itinerary, error) {
	itineraries, err := dataaggregator.LookupWith[[]ctdf.Itinerary](ctx, p.aggregator(), query.JourneyPlan{
		Origin:      origin,
		Destination: destination,
	})

	return itineraries, classifyProviderError(err)
}

func (p *AggregatorProvider) FetchLaneDetail(ctx context.Context, detailToken string) ([]ctdf.LaneGeometry, error) {
	if detailToken == "" {
		return nil, fmt.Errorf("%w: itinerary has no detail token", source.ErrEmptyResult)
	}

	lanes, err := dataaggregator.LookupWith[[]ctdf.LaneGeometry](ctx, p.aggregator(), query.LaneDetail{
		DetailToken: detailToken,
	})

	return lanes, classifyProviderError(err)
}

func (p *AggregatorProvider) aggregator() *dataaggregator.Aggregator {
	if p.Aggregator == nil {
		return dataaggregator.GlobalAggregator
	}

	return p.Aggregator
}

// classifyProviderError keeps raw transport failures from leaking past the
// fetch boundary.
func classifyProviderError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, source.ErrNetwork) || errors.Is(err, source.ErrEmptyResult) {
		return err
	}

	return fmt.Errorf("%w: %w", source.ErrNetwork, err)
}
