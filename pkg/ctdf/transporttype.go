package ctdf

type TransportType string

//goland:noinspection GoUnusedConst
const (
	TransportTypeWalk   TransportType = "WALK"
	TransportTypeBus    TransportType = "BUS"
	TransportTypeSubway TransportType = "SUBWAY"
)

func (t TransportType) IsTransit() bool {
	return t == TransportTypeBus || t == TransportTypeSubway
}
