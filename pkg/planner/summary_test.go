package planner

import (
	"testing"
	"time"

	"github.com/busrute/busrute/pkg/ctdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarise(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.Local)

	candidates := []ctdf.Itinerary{
		{
			Summary: ctdf.ItinerarySummary{TotalMinutes: 25, TotalWalkMeters: 420, TransferCount: 1, FareWon: 1500},
			Legs: []ctdf.Leg{
				walkLeg(cheonanOrigin, cheonanOrigin),
				busLeg("24", BusTypeTrunk),
				subwayLeg("수도권 1호선"),
				busLeg("", 0),
			},
		},
		{
			Summary: ctdf.ItinerarySummary{TotalMinutes: 40, TotalWalkMeters: 100},
			Legs:    []ctdf.Leg{walkLeg(cheonanOrigin, cheonanDestination)},
		},
	}

	selected := 1
	summaries := Summarise(candidates, &selected, now)
	require.Len(t, summaries, 2)

	first := summaries[0]
	assert.True(t, first.Best)
	assert.False(t, first.Selected)
	assert.Equal(t, "24 → 수도권 1호선 → 경로", first.Lines)
	assert.Equal(t, "PT25M", first.Duration)
	assert.Equal(t, "환승 1회", first.TransferText)
	assert.Equal(t, "도보 420m", first.WalkText)
	assert.Equal(t, now.Add(25*time.Minute), first.ArrivalTime)

	second := summaries[1]
	assert.False(t, second.Best)
	assert.True(t, second.Selected)
	assert.Empty(t, second.Lines)
	assert.Equal(t, now.Add(40*time.Minute), second.ArrivalTime)
}

func TestSummariseWithoutSelection(t *testing.T) {
	summaries := Summarise([]ctdf.Itinerary{{}}, nil, time.Now())
	require.Len(t, summaries, 1)
	assert.False(t, summaries[0].Selected)

	assert.Empty(t, Summarise(nil, nil, time.Now()))
}
