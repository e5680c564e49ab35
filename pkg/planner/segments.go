package planner

import "github.com/busrute/busrute/pkg/ctdf"

// BuildSegments turns an itinerary plus its lane geometry into renderable
// segments. Lanes are matched to transit legs by position: the cursor only
// moves when a transit leg actually consumes a lane, so a short lane list
// leaves the trailing transit legs on their station fallback.
func BuildSegments(itinerary ctdf.Itinerary, lanes []ctdf.LaneGeometry) []ctdf.RouteSegment {
	segments := []ctdf.RouteSegment{}
	laneCursor := 0

	for _, leg := range itinerary.Legs {
		switch leg := leg.(type) {
		case *ctdf.WalkLeg:
			if segment, ok := walkSegment(leg); ok {
				segments = append(segments, segment)
			}
		case *ctdf.TransitLeg:
			var lane *ctdf.LaneGeometry
			if laneCursor < len(lanes) {
				lane = &lanes[laneCursor]
				laneCursor++
			}

			if segment, ok := transitSegment(leg, lane); ok {
				segments = append(segments, segment)
			}
		}
	}

	return segments
}

func walkSegment(leg *ctdf.WalkLeg) (ctdf.RouteSegment, bool) {
	start, startOK := leg.Start.Sanitize()
	end, endOK := leg.End.Sanitize()
	if !startOK || !endOK {
		return ctdf.RouteSegment{}, false
	}

	return ctdf.RouteSegment{
		Kind:     ctdf.TransportTypeWalk,
		Polyline: []ctdf.GeoPoint{start, end},
	}, true
}

func transitSegment(leg *ctdf.TransitLeg, lane *ctdf.LaneGeometry) (ctdf.RouteSegment, bool) {
	stations := []ctdf.Station{}
	for _, passStation := range leg.PassStations {
		if point, ok := passStation.Point.Sanitize(); ok {
			stations = append(stations, ctdf.Station{Name: passStation.Name, Point: point})
		}
	}

	polyline := []ctdf.GeoPoint{}
	if lane != nil {
		for _, section := range lane.Sections {
			polyline = append(polyline, ctdf.SanitizeAll(section)...)
		}
	}

	if len(polyline) == 0 {
		for _, station := range stations {
			polyline = append(polyline, station.Point)
		}
	}

	if len(polyline) == 0 {
		return ctdf.RouteSegment{}, false
	}

	return ctdf.RouteSegment{
		Kind:               leg.Mode,
		Polyline:           polyline,
		Label:              SegmentLabel(leg),
		OriginStationLabel: leg.StartStationName,
		Colour:             SegmentColour(leg),
		Stations:           stations,
	}, true
}
