package planner

import (
	"errors"
	"sync"
	"testing"

	"github.com/busrute/busrute/pkg/ctdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoCandidates() []ctdf.Itinerary {
	return []ctdf.Itinerary{
		{
			DetailToken: "first",
			Summary:     ctdf.ItinerarySummary{TotalMinutes: 25},
			Legs:        []ctdf.Leg{busLeg("100", BusTypeTrunk, station("A", 36.811, 127.114), station("B", 36.812, 127.120))},
		},
		{
			DetailToken: "second",
			Summary:     ctdf.ItinerarySummary{TotalMinutes: 31},
			Legs:        []ctdf.Leg{subwayLeg("1호선", station("C", 36.813, 127.121), station("D", 36.814, 127.125), station("E", 36.815, 127.128))},
		},
	}
}

func TestStoreSearchLifecycle(t *testing.T) {
	store := NewItineraryStore()
	assert.Equal(t, PhaseEmpty, store.Snapshot().Phase)

	search := store.BeginSearch(cheonanOrigin, cheonanDestination)
	state := store.Snapshot()
	assert.Equal(t, PhaseSearching, state.Phase)
	assert.Nil(t, state.SelectedIndex)

	ticket, err := store.ApplyResults(search, twoCandidates())
	require.NoError(t, err)
	assert.Equal(t, 0, ticket.Index)
	assert.Equal(t, "first", ticket.DetailToken)

	state = store.Snapshot()
	assert.Equal(t, PhaseResultsShown, state.Phase)
	assert.True(t, state.ListVisible)
	assert.True(t, state.HasResults)
	assert.True(t, state.IsLoadingDetail)
	require.NotNil(t, state.SelectedIndex)
	assert.Equal(t, 0, *state.SelectedIndex)

	segmentCount, applied := store.ApplyDetail(ticket, nil, nil)
	assert.True(t, applied)
	assert.Equal(t, 1, segmentCount)

	state = store.Snapshot()
	assert.False(t, state.IsLoadingDetail)
	require.Len(t, state.Segments, 1)
	require.NotNil(t, state.Bounds)
	assert.True(t, state.Bounds.Contains(cheonanOrigin))
}

func TestStoreEmptyResults(t *testing.T) {
	store := NewItineraryStore()

	search := store.BeginSearch(cheonanOrigin, cheonanDestination)
	_, err := store.ApplyResults(search, nil)
	assert.ErrorIs(t, err, ErrNoRouteFound)

	state := store.Snapshot()
	assert.Equal(t, PhaseEmpty, state.Phase)
	assert.False(t, state.HasResults)
	assert.Empty(t, state.Candidates)
}

func TestStoreFailSearch(t *testing.T) {
	store := NewItineraryStore()

	search := store.BeginSearch(cheonanOrigin, cheonanDestination)
	assert.True(t, store.FailSearch(search))
	assert.Equal(t, PhaseEmpty, store.Snapshot().Phase)

	assert.False(t, store.FailSearch(search))
}

func TestStoreNewSearchDiscardsPreviousResults(t *testing.T) {
	store := NewItineraryStore()

	first := store.BeginSearch(cheonanOrigin, cheonanDestination)
	ticket, err := store.ApplyResults(first, twoCandidates())
	require.NoError(t, err)

	second := store.BeginSearch(cheonanDestination, cheonanOrigin)
	state := store.Snapshot()
	assert.Empty(t, state.Candidates)
	assert.Nil(t, state.SelectedIndex)
	assert.False(t, state.HasResults)

	_, err = store.ApplyResults(first, twoCandidates())
	assert.ErrorIs(t, err, ErrSuperseded)

	_, applied := store.ApplyDetail(ticket, nil, nil)
	assert.False(t, applied)

	_, err = store.ApplyResults(second, twoCandidates()[1:])
	require.NoError(t, err)
	assert.Len(t, store.Snapshot().Candidates, 1)
}

func TestStoreVisibility(t *testing.T) {
	store := NewItineraryStore()
	assert.False(t, store.Hide())
	assert.False(t, store.Show())

	search := store.BeginSearch(cheonanOrigin, cheonanDestination)
	_, err := store.ApplyResults(search, twoCandidates())
	require.NoError(t, err)

	assert.False(t, store.Show())
	assert.True(t, store.Hide())

	state := store.Snapshot()
	assert.Equal(t, PhaseResultsHidden, state.Phase)
	assert.False(t, state.ListVisible)
	assert.True(t, state.HasResults)

	assert.True(t, store.Show())
	assert.Equal(t, PhaseResultsShown, store.Snapshot().Phase)
}

func TestStoreSelectWhileHidden(t *testing.T) {
	store := NewItineraryStore()

	search := store.BeginSearch(cheonanOrigin, cheonanDestination)
	_, err := store.ApplyResults(search, twoCandidates())
	require.NoError(t, err)
	require.True(t, store.Hide())

	ticket, err := store.Select(1)
	require.NoError(t, err)
	assert.Equal(t, 1, ticket.Index)

	state := store.Snapshot()
	assert.Equal(t, PhaseResultsHidden, state.Phase)
	assert.False(t, state.ListVisible)
	assert.True(t, state.IsLoadingDetail)
	require.NotNil(t, state.SelectedIndex)
	assert.Equal(t, 1, *state.SelectedIndex)
}

func TestStoreSelect(t *testing.T) {
	store := NewItineraryStore()

	_, err := store.Select(0)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	search := store.BeginSearch(cheonanOrigin, cheonanDestination)
	_, err = store.ApplyResults(search, twoCandidates())
	require.NoError(t, err)

	for _, index := range []int{-1, 2, 100} {
		_, err := store.Select(index)
		assert.ErrorIs(t, err, ErrIndexOutOfRange)
	}

	ticket, err := store.Select(1)
	require.NoError(t, err)
	assert.Equal(t, "second", ticket.DetailToken)
	assert.Equal(t, 1, *store.Snapshot().SelectedIndex)
}

func TestStoreStaleDetailIsIgnored(t *testing.T) {
	store := NewItineraryStore()

	search := store.BeginSearch(cheonanOrigin, cheonanDestination)
	firstTicket, err := store.ApplyResults(search, twoCandidates())
	require.NoError(t, err)

	secondTicket, err := store.Select(1)
	require.NoError(t, err)

	secondLane := lane(ctdf.GeoPoint{Lat: 36.813, Lng: 127.121}, ctdf.GeoPoint{Lat: 36.815, Lng: 127.128})
	_, ok := store.ApplyDetail(secondTicket, []ctdf.LaneGeometry{secondLane}, nil)
	require.True(t, ok)
	applied := store.Snapshot()

	firstLane := lane(ctdf.GeoPoint{Lat: 1, Lng: 1}, ctdf.GeoPoint{Lat: 2, Lng: 2})
	segmentCount, ok := store.ApplyDetail(firstTicket, []ctdf.LaneGeometry{firstLane}, nil)
	assert.False(t, ok)
	assert.Zero(t, segmentCount)

	after := store.Snapshot()
	assert.Equal(t, applied, after)
	assert.Equal(t, 1, *after.SelectedIndex)
	require.Len(t, after.Segments, 1)
	assert.Equal(t, ctdf.TransportTypeSubway, after.Segments[0].Kind)
}

func TestStoreFailedDetailUsesStations(t *testing.T) {
	store := NewItineraryStore()

	search := store.BeginSearch(cheonanOrigin, cheonanDestination)
	ticket, err := store.ApplyResults(search, twoCandidates())
	require.NoError(t, err)

	ignoredLane := lane(ctdf.GeoPoint{Lat: 1, Lng: 1})
	segmentCount, applied := store.ApplyDetail(ticket, []ctdf.LaneGeometry{ignoredLane}, errors.New("timeout"))
	require.True(t, applied)
	assert.Equal(t, 1, segmentCount)

	state := store.Snapshot()
	assert.False(t, state.IsLoadingDetail)
	require.Len(t, state.Segments, 1)
	assert.Equal(t, []ctdf.GeoPoint{{Lat: 36.811, Lng: 127.114}, {Lat: 36.812, Lng: 127.120}}, state.Segments[0].Polyline)
}

func TestStoreSnapshotIsIndependent(t *testing.T) {
	store := NewItineraryStore()

	search := store.BeginSearch(cheonanOrigin, cheonanDestination)
	ticket, err := store.ApplyResults(search, twoCandidates())
	require.NoError(t, err)
	_, applied := store.ApplyDetail(ticket, nil, nil)
	require.True(t, applied)

	snapshot := store.Snapshot()
	*snapshot.SelectedIndex = 1
	snapshot.Segments[0].Polyline[0] = ctdf.GeoPoint{}
	snapshot.Bounds.SouthWest = ctdf.GeoPoint{}

	state := store.Snapshot()
	assert.Equal(t, 0, *state.SelectedIndex)
	assert.Equal(t, ctdf.GeoPoint{Lat: 36.811, Lng: 127.114}, state.Segments[0].Polyline[0])
	assert.NotEqual(t, ctdf.GeoPoint{}, state.Bounds.SouthWest)
}

func TestStoreConcurrentSelections(t *testing.T) {
	store := NewItineraryStore()

	search := store.BeginSearch(cheonanOrigin, cheonanDestination)
	_, err := store.ApplyResults(search, twoCandidates())
	require.NoError(t, err)

	var wg sync.WaitGroup
	tickets := make(chan DetailTicket, 100)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			ticket, err := store.Select(i % 2)
			if err == nil {
				tickets <- ticket
			}
		}(i)
	}
	wg.Wait()
	close(tickets)

	var latest DetailTicket
	appliedCount := 0
	for ticket := range tickets {
		if ticket.Generation > latest.Generation {
			latest = ticket
		}
		if _, applied := store.ApplyDetail(ticket, nil, nil); applied {
			appliedCount++
		}
	}

	assert.Equal(t, 1, appliedCount)

	state := store.Snapshot()
	assert.Equal(t, latest.Index, *state.SelectedIndex)
	assert.Equal(t, latest.Generation, state.Generation)
}
