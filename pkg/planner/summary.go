package planner

import (
	"fmt"
	"strings"
	"time"

	"github.com/busrute/busrute/pkg/ctdf"
	iso8601 "github.com/senseyeio/duration"
)

// RouteSummary is one row of the candidate list.
type RouteSummary struct {
	Index    int  `json:"index" groups:"basic"`
	Best     bool `json:"best" groups:"basic"`
	Selected bool `json:"selected" groups:"basic"`

	Lines        string `json:"lines" groups:"basic"`
	TotalMinutes int    `json:"total_minutes" groups:"basic"`
	Duration     string `json:"duration" groups:"basic"`

	TransferCount int    `json:"transfer_count" groups:"basic"`
	TransferText  string `json:"transfer_text" groups:"basic"`
	WalkMeters    int    `json:"walk_meters" groups:"basic"`
	WalkText      string `json:"walk_text" groups:"basic"`
	FareWon       int    `json:"fare_won" groups:"basic"`

	ArrivalTime time.Time `json:"arrival_time" groups:"basic"`
}

// Summarise describes candidates in provider order. The first candidate is
// always flagged as best; no re-ranking happens here.
func Summarise(candidates []ctdf.Itinerary, selectedIndex *int, now time.Time) []RouteSummary {
	summaries := make([]RouteSummary, 0, len(candidates))

	for index, itinerary := range candidates {
		travelTime := iso8601.Duration{TM: itinerary.Summary.TotalMinutes}

		summaries = append(summaries, RouteSummary{
			Index:    index,
			Best:     index == 0,
			Selected: selectedIndex != nil && *selectedIndex == index,

			Lines:        lineSummary(itinerary),
			TotalMinutes: itinerary.Summary.TotalMinutes,
			Duration:     travelTime.String(),

			TransferCount: itinerary.Summary.TransferCount,
			TransferText:  fmt.Sprintf("환승 %d회", itinerary.Summary.TransferCount),
			WalkMeters:    itinerary.Summary.TotalWalkMeters,
			WalkText:      fmt.Sprintf("도보 %dm", itinerary.Summary.TotalWalkMeters),
			FareWon:       itinerary.Summary.FareWon,

			ArrivalTime: travelTime.Shift(now),
		})
	}

	return summaries
}

func lineSummary(itinerary ctdf.Itinerary) string {
	var labels []string
	for _, leg := range itinerary.TransitLegs() {
		labels = append(labels, SegmentLabel(leg))
	}

	return strings.Join(labels, " → ")
}
