package kakao

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/busrute/busrute/pkg/ctdf"
	"github.com/busrute/busrute/pkg/dataaggregator/query"
	"github.com/busrute/busrute/pkg/dataaggregator/source"
	"github.com/busrute/busrute/pkg/dataaggregator/source/cachedresults"
	"github.com/busrute/busrute/pkg/kakao"
	"github.com/rs/zerolog/log"
)

type Source struct {
	Client *kakao.Client

	// Cache is optional, place lookups go straight to Kakao without it.
	Cache *cachedresults.Cache
}

func (s Source) GetName() string {
	return "Kakao Local Keyword Search"
}

func (s Source) Supports() []reflect.Type {
	return []reflect.Type{
		reflect.TypeOf([]ctdf.Place{}),
	}
}

func (s Source) Lookup(ctx context.Context, q any) (interface{}, error) {
	placeSearch, ok := q.(query.PlaceSearch)
	if !ok {
		return nil, source.UnsupportedSourceError
	}

	cacheKey := placeSearch.CacheKey()

	if s.Cache != nil {
		if cached, err := s.Cache.Get(ctx, cacheKey); err == nil {
			var places []ctdf.Place
			if err := json.Unmarshal([]byte(cached), &places); err == nil {
				return places, nil
			}
		}
	}

	places, err := s.Client.KeywordSearch(ctx, placeSearch.Keyword, placeSearch.Near)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", source.ErrNetwork, err)
	}

	if s.Cache != nil && len(places) > 0 {
		placesJSON, _ := json.Marshal(places)
		if err := s.Cache.Set(ctx, cacheKey, string(placesJSON)); err != nil {
			log.Error().Err(err).Str("key", cacheKey).Msg("Failed to cache place search")
		}
	}

	return places, nil
}
