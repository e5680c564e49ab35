package ctdf

type Place struct {
	Name    string   `json:"name" groups:"basic"`
	Address string   `json:"address" groups:"basic"`
	Point   GeoPoint `json:"point" groups:"basic"`
}
