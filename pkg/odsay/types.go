package odsay

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

const (
	trafficTypeSubway = 1
	trafficTypeBus    = 2
	trafficTypeWalk   = 3
)

// Codes ODsay uses when the request was fine but no route could be built.
var noResultCodes = []string{"-98", "-99", "3", "4", "5", "6"}

type searchResponse struct {
	Result *searchResult   `json:"result"`
	Error  json.RawMessage `json:"error"`
}

type searchResult struct {
	SearchType int        `json:"searchType"`
	Path       []pathData `json:"path"`
}

type pathData struct {
	PathType flexInt   `json:"pathType"`
	Info     pathInfo  `json:"info"`
	SubPath  []subPath `json:"subPath"`
}

type pathInfo struct {
	TotalTime          flexInt `json:"totalTime"`
	TotalWalk          flexInt `json:"totalWalk"`
	TotalDistance      flexInt `json:"totalDistance"`
	Payment            flexInt `json:"payment"`
	BusTransitCount    flexInt `json:"busTransitCount"`
	SubwayTransitCount flexInt `json:"subwayTransitCount"`
	MapObj             string  `json:"mapObj"`
	FirstStartStation  string  `json:"firstStartStation"`
	LastEndStation     string  `json:"lastEndStation"`
}

type subPath struct {
	TrafficType  flexInt `json:"trafficType"`
	Distance     flexInt `json:"distance"`
	SectionTime  flexInt `json:"sectionTime"`
	StationCount flexInt `json:"stationCount"`

	Lane []lane `json:"lane"`

	StartName string `json:"startName"`
	StartX    any    `json:"startX"`
	StartY    any    `json:"startY"`
	EndName   string `json:"endName"`
	EndX      any    `json:"endX"`
	EndY      any    `json:"endY"`

	PassStopList *passStopList `json:"passStopList"`
}

type lane struct {
	Name       string  `json:"name"`
	BusNo      string  `json:"busNo"`
	Type       flexInt `json:"type"`
	BusID      flexInt `json:"busID"`
	SubwayCode flexInt `json:"subwayCode"`
}

type passStopList struct {
	Stations []passStation `json:"stations"`
}

type passStation struct {
	Index       flexInt `json:"index"`
	StationID   flexInt `json:"stationID"`
	StationName string  `json:"stationName"`
	X           any     `json:"x"`
	Y           any     `json:"y"`
}

type laneResponse struct {
	Result *laneResult     `json:"result"`
	Error  json.RawMessage `json:"error"`
}

type laneResult struct {
	Lane []laneData `json:"lane"`
}

type laneData struct {
	Class   flexInt       `json:"class"`
	Type    flexInt       `json:"type"`
	Section []laneSection `json:"section"`
}

type laneSection struct {
	GraphPos []graphPos `json:"graphPos"`
}

type graphPos struct {
	X any `json:"x"`
	Y any `json:"y"`
}

// APIError is an error object returned by ODsay in place of a result.
type APIError struct {
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("odsay error %s: %s", e.Code, e.Message)
}

// NoResult reports whether the provider is saying "no route" rather than
// signalling a broken request.
func (e *APIError) NoResult() bool {
	for _, code := range noResultCodes {
		if e.Code == code {
			return true
		}
	}
	return false
}

type apiErrorBody struct {
	Code    any    `json:"code"`
	Msg     string `json:"msg"`
	Message string `json:"message"`
}

func (b apiErrorBody) toError() *APIError {
	message := b.Msg
	if message == "" {
		message = b.Message
	}

	return &APIError{Code: strings.TrimSpace(fmt.Sprint(b.Code)), Message: message}
}

// parseAPIError understands both the object and the array shape of the
// error field.
func parseAPIError(raw json.RawMessage) *APIError {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	var single apiErrorBody
	if err := json.Unmarshal(raw, &single); err == nil {
		return single.toError()
	}

	var list []apiErrorBody
	if err := json.Unmarshal(raw, &list); err == nil && len(list) > 0 {
		return list[0].toError()
	}

	return &APIError{Code: "unknown", Message: string(raw)}
}

// flexInt accepts numbers, numeric strings and null. Anything unparsable
// decodes to zero instead of failing the whole payload.
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return nil
	}

	switch v := value.(type) {
	case float64:
		*f = flexInt(v)
	case string:
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			*f = flexInt(parsed)
		}
	}

	return nil
}

func (f flexInt) String() string {
	if f == 0 {
		return ""
	}

	return strconv.Itoa(int(f))
}
