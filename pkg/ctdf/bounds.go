package ctdf

import "github.com/paulmach/orb"

type BoundingRegion struct {
	SouthWest GeoPoint `json:"south_west" groups:"basic"`
	NorthEast GeoPoint `json:"north_east" groups:"basic"`
}

func BoundingRegionFromOrb(bound orb.Bound) BoundingRegion {
	return BoundingRegion{
		SouthWest: GeoPointFromOrb(bound.Min),
		NorthEast: GeoPointFromOrb(bound.Max),
	}
}

func (b BoundingRegion) Orb() orb.Bound {
	return orb.Bound{Min: b.SouthWest.OrbPoint(), Max: b.NorthEast.OrbPoint()}
}

func (b BoundingRegion) Contains(point GeoPoint) bool {
	return point.Lat >= b.SouthWest.Lat && point.Lat <= b.NorthEast.Lat &&
		point.Lng >= b.SouthWest.Lng && point.Lng <= b.NorthEast.Lng
}
