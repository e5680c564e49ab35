package ctdf

type Itinerary struct {
	Summary ItinerarySummary `json:"summary" groups:"basic"`
	Legs    []Leg            `json:"legs" groups:"detailed"`

	// DetailToken is the provider's opaque map object reference. It is only
	// meaningful as input to a lane detail lookup.
	DetailToken string `json:"-"`
}

type ItinerarySummary struct {
	TotalMinutes        int `json:"total_minutes" groups:"basic"`
	TotalWalkMeters     int `json:"total_walk_meters" groups:"basic"`
	TotalDistanceMeters int `json:"total_distance_meters" groups:"basic"`
	TransferCount       int `json:"transfer_count" groups:"basic"`
	FareWon             int `json:"fare_won" groups:"basic"`
}

// TransitLegs returns the bus and subway legs in itinerary order.
func (i *Itinerary) TransitLegs() []*TransitLeg {
	var transitLegs []*TransitLeg

	for _, leg := range i.Legs {
		if transitLeg, ok := leg.(*TransitLeg); ok {
			transitLegs = append(transitLegs, transitLeg)
		}
	}

	return transitLegs
}

type Leg interface {
	TransportType() TransportType
}

type WalkLeg struct {
	Start RawCoordinate `json:"-"`
	End   RawCoordinate `json:"-"`

	DistanceMeters int `json:"distance_meters" groups:"detailed"`
	Minutes        int `json:"minutes" groups:"detailed"`
}

func (w *WalkLeg) TransportType() TransportType {
	return TransportTypeWalk
}

type TransitLeg struct {
	Mode TransportType `json:"mode" groups:"detailed"`

	LineID     string `json:"line_id" groups:"detailed"`
	LineNumber string `json:"line_number" groups:"detailed"`
	LineName   string `json:"line_name" groups:"detailed"`

	StartStationName string `json:"start_station_name" groups:"detailed"`
	EndStationName   string `json:"end_station_name" groups:"detailed"`

	PassStations []RawStation `json:"-"`

	// LaneTypeCode is the provider's bus class code, zero when absent.
	LaneTypeCode int `json:"lane_type_code" groups:"detailed"`

	Minutes      int `json:"minutes" groups:"detailed"`
	StationCount int `json:"station_count" groups:"detailed"`
}

func (t *TransitLeg) TransportType() TransportType {
	return t.Mode
}

// LaneGeometry is the detailed polyline of a single transit leg, split into
// the provider's sections. Lane geometries are correlated with transit legs by
// position only.
type LaneGeometry struct {
	Sections [][]RawCoordinate
}
