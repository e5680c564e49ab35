// Package mapview draws composed routes onto a map surface.
package mapview

import "github.com/busrute/busrute/pkg/ctdf"

const (
	WalkColour    = "#888888"
	WalkWeight    = 5
	WalkOpacity   = 0.7
	WalkStroke    = "shortdot"
	TransitWeight = 7
	SolidStroke   = "solid"

	// StationMarkerMaxLevel is the most zoomed out map level that still shows
	// individual stations. Lower levels are closer to the ground.
	StationMarkerMaxLevel = 4
)

type PolylineStyle struct {
	Colour  string
	Weight  int
	Opacity float64
	Stroke  string
}

// Surface is whatever the route ends up drawn on.
type Surface interface {
	DrawPolyline(points []ctdf.GeoPoint, style PolylineStyle)
	DrawCallout(at ctdf.GeoPoint, title string, subtitle string, colour string)
	DrawMarker(at ctdf.GeoPoint, label string)
	FitBounds(bounds ctdf.BoundingRegion)
}

func Render(surface Surface, segments []ctdf.RouteSegment, bounds *ctdf.BoundingRegion, zoomLevel int) {
	for _, segment := range segments {
		if len(segment.Polyline) == 0 {
			continue
		}

		if !segment.Kind.IsTransit() {
			surface.DrawPolyline(segment.Polyline, PolylineStyle{
				Colour:  WalkColour,
				Weight:  WalkWeight,
				Opacity: WalkOpacity,
				Stroke:  WalkStroke,
			})
			continue
		}

		surface.DrawPolyline(segment.Polyline, PolylineStyle{
			Colour:  segment.Colour,
			Weight:  TransitWeight,
			Opacity: 1,
			Stroke:  SolidStroke,
		})

		surface.DrawCallout(segment.Polyline[0], segment.Label, segment.OriginStationLabel, segment.Colour)

		if zoomLevel <= StationMarkerMaxLevel {
			for _, station := range segment.Stations {
				surface.DrawMarker(station.Point, station.Name)
			}
		}
	}

	if bounds != nil && len(segments) > 0 {
		surface.FitBounds(*bounds)
	}
}
