package ctdf

import (
	"fmt"
	"time"
)

type Event struct {
	Type      EventType
	Timestamp time.Time
	SessionID string
	Body      interface{}
}

type EventType string

const (
	EventTypeSearchCompleted   EventType = "SearchCompleted"
	EventTypeNoRouteFound      EventType = "NoRouteFound"
	EventTypeSearchFailed      EventType = "SearchFailed"
	EventTypeItinerarySelected EventType = "ItinerarySelected"
	EventTypeDetailFetchFailed EventType = "DetailFetchFailed"
)

type SearchEventBody struct {
	Origin         GeoPoint
	Destination    GeoPoint
	CandidateCount int
}

type SelectionEventBody struct {
	Index        int
	Generation   uint64
	SegmentCount int
	FailReason   string
}

// ElasticDocument flattens the event into the shape stored in the events index.
func (e *Event) ElasticDocument() map[string]interface{} {
	document := map[string]interface{}{
		"Timestamp": e.Timestamp,
		"Type":      e.Type,
		"SessionID": e.SessionID,
	}

	switch body := e.Body.(type) {
	case SearchEventBody:
		document["Origin"] = fmt.Sprintf("%f,%f", body.Origin.Lat, body.Origin.Lng)
		document["Destination"] = fmt.Sprintf("%f,%f", body.Destination.Lat, body.Destination.Lng)
		document["CandidateCount"] = body.CandidateCount
	case SelectionEventBody:
		document["Index"] = body.Index
		document["Generation"] = body.Generation
		document["SegmentCount"] = body.SegmentCount
		document["FailReason"] = body.FailReason
	case map[string]interface{}:
		for key, value := range body {
			document[key] = value
		}
	}

	return document
}
