package query

import "github.com/busrute/busrute/pkg/ctdf"

type JourneyPlan struct {
	Origin      ctdf.GeoPoint
	Destination ctdf.GeoPoint
}
