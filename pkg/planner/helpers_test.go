package planner

import (
	"context"
	"strconv"
	"sync"

	"github.com/busrute/busrute/pkg/ctdf"
)

var (
	cheonanOrigin      = ctdf.GeoPoint{Lat: 36.815, Lng: 127.113}
	cheonanDestination = ctdf.GeoPoint{Lat: 36.810, Lng: 127.130}
)

func walkLeg(from ctdf.GeoPoint, to ctdf.GeoPoint) *ctdf.WalkLeg {
	return &ctdf.WalkLeg{
		Start:          ctdf.XY(from.Lng, from.Lat),
		End:            ctdf.XY(to.Lng, to.Lat),
		DistanceMeters: 150,
		Minutes:        2,
	}
}

func busLeg(number string, laneType int, stations ...ctdf.RawStation) *ctdf.TransitLeg {
	startName := ""
	if len(stations) > 0 {
		startName = stations[0].Name
	}

	return &ctdf.TransitLeg{
		Mode:             ctdf.TransportTypeBus,
		LineNumber:       number,
		LaneTypeCode:     laneType,
		StartStationName: startName,
		PassStations:     stations,
		Minutes:          12,
		StationCount:     len(stations),
	}
}

func subwayLeg(name string, stations ...ctdf.RawStation) *ctdf.TransitLeg {
	leg := busLeg("", 0, stations...)
	leg.Mode = ctdf.TransportTypeSubway
	leg.LineName = name

	return leg
}

// station uses the provider's string encoded x/y form.
func station(name string, lat float64, lng float64) ctdf.RawStation {
	return ctdf.RawStation{
		Name:  name,
		Point: ctdf.XY(strconv.FormatFloat(lng, 'f', -1, 64), strconv.FormatFloat(lat, 'f', -1, 64)),
	}
}

func lane(points ...ctdf.GeoPoint) ctdf.LaneGeometry {
	section := make([]ctdf.RawCoordinate, 0, len(points))
	for _, point := range points {
		section = append(section, ctdf.XY(point.Lng, point.Lat))
	}

	return ctdf.LaneGeometry{Sections: [][]ctdf.RawCoordinate{section}}
}

func stationPoints(stations ...ctdf.RawStation) []ctdf.GeoPoint {
	var points []ctdf.GeoPoint
	for _, s := range stations {
		point, ok := s.Point.Sanitize()
		if ok {
			points = append(points, point)
		}
	}

	return points
}

type fakeProvider struct {
	mutex sync.Mutex

	itineraries []ctdf.Itinerary
	searchErr   error

	lanes   map[string][]ctdf.LaneGeometry
	laneErr map[string]error
	gates   map[string]chan struct{}

	searchCalls int
	detailCalls []string
}

func newFakeProvider(itineraries ...ctdf.Itinerary) *fakeProvider {
	return &fakeProvider{
		itineraries: itineraries,
		lanes:       map[string][]ctdf.LaneGeometry{},
		laneErr:     map[string]error{},
		gates:       map[string]chan struct{}{},
	}
}

func (f *fakeProvider) PlanJourney(ctx context.Context, origin ctdf.GeoPoint, destination ctdf.GeoPoint) ([]ctdf.Itinerary, error) {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	f.searchCalls++

	return f.itineraries, f.searchErr
}

func (f *fakeProvider) FetchLaneDetail(ctx context.Context, detailToken string) ([]ctdf.LaneGeometry, error) {
	f.mutex.Lock()
	f.detailCalls = append(f.detailCalls, detailToken)
	gate := f.gates[detailToken]
	f.mutex.Unlock()

	if gate != nil {
		<-gate
	}

	f.mutex.Lock()
	defer f.mutex.Unlock()

	return f.lanes[detailToken], f.laneErr[detailToken]
}

func (f *fakeProvider) gate(detailToken string) chan struct{} {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	gate := make(chan struct{})
	f.gates[detailToken] = gate

	return gate
}

type recordingPublisher struct {
	mutex  sync.Mutex
	events []ctdf.Event
}

func (r *recordingPublisher) Publish(event ctdf.Event) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.events = append(r.events, event)
}

func (r *recordingPublisher) selections() []ctdf.SelectionEventBody {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	var bodies []ctdf.SelectionEventBody
	for _, event := range r.events {
		if body, ok := event.Body.(ctdf.SelectionEventBody); ok {
			bodies = append(bodies, body)
		}
	}

	return bodies
}

func (r *recordingPublisher) types() []ctdf.EventType {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	var types []ctdf.EventType
	for _, event := range r.events {
		types = append(types, event.Type)
	}

	return types
}
