package odsay

import (
	"strings"

	"github.com/busrute/busrute/pkg/ctdf"
)

func parseItineraries(paths []pathData, origin ctdf.GeoPoint, destination ctdf.GeoPoint) []ctdf.Itinerary {
	itineraries := make([]ctdf.Itinerary, 0, len(paths))

	for _, path := range paths {
		transferCount := int(path.Info.BusTransitCount) + int(path.Info.SubwayTransitCount) - 1
		if transferCount < 0 {
			transferCount = 0
		}

		itineraries = append(itineraries, ctdf.Itinerary{
			Summary: ctdf.ItinerarySummary{
				TotalMinutes:        int(path.Info.TotalTime),
				TotalWalkMeters:     int(path.Info.TotalWalk),
				TotalDistanceMeters: int(path.Info.TotalDistance),
				TransferCount:       transferCount,
				FareWon:             int(path.Info.Payment),
			},
			Legs:        parseLegs(path.SubPath, origin, destination),
			DetailToken: path.Info.MapObj,
		})
	}

	return itineraries
}

// parseLegs converts the sub paths into legs. Unknown traffic types are
// skipped. ODsay usually leaves walk sub paths without coordinates, so their
// endpoints are taken from the neighbouring legs (or the trip's origin and
// destination at either end).
func parseLegs(subPaths []subPath, origin ctdf.GeoPoint, destination ctdf.GeoPoint) []ctdf.Leg {
	var legs []ctdf.Leg

	for i, sub := range subPaths {
		switch int(sub.TrafficType) {
		case trafficTypeWalk:
			walkLeg := &ctdf.WalkLeg{
				Start:          ctdf.XY(sub.StartX, sub.StartY),
				End:            ctdf.XY(sub.EndX, sub.EndY),
				DistanceMeters: int(sub.Distance),
				Minutes:        int(sub.SectionTime),
			}

			if sub.StartX == nil && sub.StartY == nil {
				walkLeg.Start = previousEnd(subPaths, i, origin)
			}
			if sub.EndX == nil && sub.EndY == nil {
				walkLeg.End = nextStart(subPaths, i, destination)
			}

			legs = append(legs, walkLeg)
		case trafficTypeBus, trafficTypeSubway:
			legs = append(legs, parseTransitLeg(sub))
		}
	}

	return legs
}

func parseTransitLeg(sub subPath) *ctdf.TransitLeg {
	transitLeg := &ctdf.TransitLeg{
		Mode:             ctdf.TransportTypeBus,
		StartStationName: strings.TrimSpace(sub.StartName),
		EndStationName:   strings.TrimSpace(sub.EndName),
		Minutes:          int(sub.SectionTime),
		StationCount:     int(sub.StationCount),
	}

	if int(sub.TrafficType) == trafficTypeSubway {
		transitLeg.Mode = ctdf.TransportTypeSubway
	}

	if len(sub.Lane) > 0 {
		primaryLane := sub.Lane[0]

		transitLeg.LineNumber = strings.TrimSpace(primaryLane.BusNo)
		transitLeg.LineName = strings.TrimSpace(primaryLane.Name)

		if transitLeg.Mode == ctdf.TransportTypeSubway {
			transitLeg.LineID = primaryLane.SubwayCode.String()
		} else {
			transitLeg.LineID = primaryLane.BusID.String()
			transitLeg.LaneTypeCode = int(primaryLane.Type)
		}
	}

	if sub.PassStopList != nil {
		for _, station := range sub.PassStopList.Stations {
			transitLeg.PassStations = append(transitLeg.PassStations, ctdf.RawStation{
				Name:  strings.TrimSpace(station.StationName),
				Point: ctdf.XY(station.X, station.Y),
			})
		}
	}

	return transitLeg
}

func previousEnd(subPaths []subPath, index int, origin ctdf.GeoPoint) ctdf.RawCoordinate {
	for i := index - 1; i >= 0; i-- {
		if subPaths[i].EndX != nil || subPaths[i].EndY != nil {
			return ctdf.XY(subPaths[i].EndX, subPaths[i].EndY)
		}
	}

	return origin.Raw()
}

func nextStart(subPaths []subPath, index int, destination ctdf.GeoPoint) ctdf.RawCoordinate {
	for i := index + 1; i < len(subPaths); i++ {
		if subPaths[i].StartX != nil || subPaths[i].StartY != nil {
			return ctdf.XY(subPaths[i].StartX, subPaths[i].StartY)
		}
	}

	return destination.Raw()
}

func parseLanes(lanes []laneData) []ctdf.LaneGeometry {
	geometries := make([]ctdf.LaneGeometry, 0, len(lanes))

	for _, laneItem := range lanes {
		geometry := ctdf.LaneGeometry{}

		for _, section := range laneItem.Section {
			coordinates := make([]ctdf.RawCoordinate, 0, len(section.GraphPos))
			for _, pos := range section.GraphPos {
				coordinates = append(coordinates, ctdf.XY(pos.X, pos.Y))
			}

			geometry.Sections = append(geometry.Sections, coordinates)
		}

		geometries = append(geometries, geometry)
	}

	return geometries
}
