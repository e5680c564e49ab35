package planner

import "errors"

var (
	ErrInputIncomplete   = errors.New("origin and destination must both be set")
	ErrNoRouteFound      = errors.New("no public transport route found")
	ErrDetailFetchFailed = errors.New("failed to load detailed route geometry")
	ErrIndexOutOfRange   = errors.New("itinerary index out of range")
)
