package planner

import "github.com/busrute/busrute/pkg/ctdf"

const (
	DefaultColour = "#3B82F6"
	SubwayColour  = "#FF9500"

	TrunkBusColour   = "#3B82F6"
	BranchBusColour  = "#10B981"
	ExpressBusColour = "#EF4444"

	DefaultLabel = "경로"
)

// Bus class codes as reported by the trip planner.
const (
	BusTypeTrunk   = 11
	BusTypeBranch  = 12
	BusTypeExpress = 14
)

var busColours = map[int]string{
	BusTypeTrunk:   TrunkBusColour,
	BusTypeBranch:  BranchBusColour,
	BusTypeExpress: ExpressBusColour,
}

// SegmentColour picks the display colour for a transit leg. Bus classes not
// in the table fall back to the default colour.
func SegmentColour(leg *ctdf.TransitLeg) string {
	switch leg.Mode {
	case ctdf.TransportTypeSubway:
		return SubwayColour
	case ctdf.TransportTypeBus:
		if colour, ok := busColours[leg.LaneTypeCode]; ok {
			return colour
		}
	}

	return DefaultColour
}

func SegmentLabel(leg *ctdf.TransitLeg) string {
	if leg.LineNumber != "" {
		return leg.LineNumber
	}
	if leg.LineName != "" {
		return leg.LineName
	}

	return DefaultLabel
}
