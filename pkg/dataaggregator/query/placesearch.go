package query

import (
	"fmt"
	"strings"

	"github.com/busrute/busrute/pkg/ctdf"
)

type PlaceSearch struct {
	Keyword string
	Near    *ctdf.GeoPoint
}

func (p PlaceSearch) CacheKey() string {
	key := fmt.Sprintf("places/%s", strings.ToLower(strings.TrimSpace(p.Keyword)))

	if p.Near != nil {
		// ~1km buckets so nearby bias points share a cache entry
		key = fmt.Sprintf("%s@%.2f,%.2f", key, p.Near.Lat, p.Near.Lng)
	}

	return key
}
