package ctdf

import "github.com/paulmach/orb"

type GeoPoint struct {
	Lat float64 `json:"lat" groups:"basic"`
	Lng float64 `json:"lng" groups:"basic"`
}

// Raw wraps an already validated point back into a RawCoordinate so it can
// flow through the same sanitisation path as provider data.
func (p GeoPoint) Raw() RawCoordinate {
	return LatLng(p.Lat, p.Lng)
}

// OrbPoint returns the point in orb's x=longitude, y=latitude order.
func (p GeoPoint) OrbPoint() orb.Point {
	return orb.Point{p.Lng, p.Lat}
}

func GeoPointFromOrb(point orb.Point) GeoPoint {
	return GeoPoint{Lat: point.Lat(), Lng: point.Lon()}
}

type Station struct {
	Name  string   `json:"name" groups:"basic"`
	Point GeoPoint `json:"point" groups:"basic"`
}

type RawStation struct {
	Name  string
	Point RawCoordinate
}
