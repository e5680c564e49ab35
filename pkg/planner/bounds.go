package planner

import (
	"github.com/busrute/busrute/pkg/ctdf"
	"github.com/paulmach/orb"
)

// boundsSampleStride keeps long lane polylines cheap to frame; endpoints are
// always covered by the origin and destination.
const boundsSampleStride = 10

func ComputeBounds(origin ctdf.GeoPoint, destination ctdf.GeoPoint, segments []ctdf.RouteSegment) ctdf.BoundingRegion {
	var bound orb.Bound = origin.OrbPoint().Bound().Extend(destination.OrbPoint())

	for _, segment := range segments {
		for i := 0; i < len(segment.Polyline); i += boundsSampleStride {
			bound = bound.Extend(segment.Polyline[i].OrbPoint())
		}
	}

	return ctdf.BoundingRegionFromOrb(bound)
}
