package ctdf

type RouteSegment struct {
	Kind     TransportType `json:"kind" groups:"basic"`
	Polyline []GeoPoint    `json:"polyline" groups:"basic"`

	Label              string `json:"label,omitempty" groups:"basic"`
	OriginStationLabel string `json:"origin_station_label,omitempty" groups:"basic"`
	Colour             string `json:"colour,omitempty" groups:"basic"`

	Stations []Station `json:"stations,omitempty" groups:"detailed"`
}
