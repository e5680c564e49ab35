package ctdf

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

type AxisOrder int

const (
	// AxisXY is the geographic convention used by most provider payloads:
	// x is longitude and y is latitude.
	AxisXY AxisOrder = iota
	AxisLatLng
)

// RawCoordinate is an unvalidated coordinate pair exactly as delivered by a
// provider. The components may be numbers, numeric strings or garbage.
type RawCoordinate struct {
	Order AxisOrder
	A     any
	B     any
}

func XY(x any, y any) RawCoordinate {
	return RawCoordinate{Order: AxisXY, A: x, B: y}
}

func LatLng(lat any, lng any) RawCoordinate {
	return RawCoordinate{Order: AxisLatLng, A: lat, B: lng}
}

// Sanitize parses both components and returns false if either one is not a
// finite number. A rejected point is dropped by callers, never reported.
func (r RawCoordinate) Sanitize() (GeoPoint, bool) {
	a, ok := parseComponent(r.A)
	if !ok {
		return GeoPoint{}, false
	}
	b, ok := parseComponent(r.B)
	if !ok {
		return GeoPoint{}, false
	}

	if r.Order == AxisLatLng {
		return GeoPoint{Lat: a, Lng: b}, true
	}

	return GeoPoint{Lat: b, Lng: a}, true
}

// SanitizeAll keeps the valid points of raw in their original order.
func SanitizeAll(raw []RawCoordinate) []GeoPoint {
	points := make([]GeoPoint, 0, len(raw))

	for _, coordinate := range raw {
		if point, ok := coordinate.Sanitize(); ok {
			points = append(points, point)
		}
	}

	return points
}

func parseComponent(value any) (float64, bool) {
	var parsed float64

	switch v := value.(type) {
	case float64:
		parsed = v
	case float32:
		parsed = float64(v)
	case int:
		parsed = float64(v)
	case int32:
		parsed = float64(v)
	case int64:
		parsed = float64(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		parsed = f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		parsed = f
	default:
		return 0, false
	}

	if math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return 0, false
	}

	return parsed, true
}
