package odsay

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/busrute/busrute/pkg/ctdf"
	"github.com/busrute/busrute/pkg/dataaggregator/query"
	"github.com/busrute/busrute/pkg/dataaggregator/source"
	"github.com/busrute/busrute/pkg/odsay"
)

type Source struct {
	Client *odsay.Client
}

func (s Source) GetName() string {
	return "ODsay Public Transit API"
}

func (s Source) Supports() []reflect.Type {
	return []reflect.Type{
		reflect.TypeOf([]ctdf.Itinerary{}),
		reflect.TypeOf([]ctdf.LaneGeometry{}),
	}
}

func (s Source) Lookup(ctx context.Context, q any) (interface{}, error) {
	switch q := q.(type) {
	case query.JourneyPlan:
		itineraries, err := s.Client.SearchPubTransPath(ctx, q.Origin, q.Destination)
		if err != nil {
			return nil, classifyError(err)
		}
		if len(itineraries) == 0 {
			return nil, source.ErrEmptyResult
		}

		return itineraries, nil
	case query.LaneDetail:
		lanes, err := s.Client.LoadLane(ctx, q.DetailToken)
		if err != nil {
			return nil, classifyError(err)
		}
		if len(lanes) == 0 {
			return nil, source.ErrEmptyResult
		}

		return lanes, nil
	default:
		return nil, source.UnsupportedSourceError
	}
}

func classifyError(err error) error {
	var apiError *odsay.APIError
	if errors.As(err, &apiError) && apiError.NoResult() {
		return fmt.Errorf("%w: %w", source.ErrEmptyResult, err)
	}

	return fmt.Errorf("%w: %w", source.ErrNetwork, err)
}
