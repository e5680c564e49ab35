package planner

import (
	"errors"
	"sync"

	"github.com/busrute/busrute/pkg/ctdf"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
)

type Phase string

const (
	PhaseEmpty         Phase = "EMPTY"
	PhaseSearching     Phase = "SEARCHING"
	PhaseResultsShown  Phase = "RESULTS_SHOWN"
	PhaseResultsHidden Phase = "RESULTS_HIDDEN"
)

// ErrSuperseded is returned when search results arrive for a search that a
// newer one has already replaced.
var ErrSuperseded = errors.New("search superseded by a newer search")

type SelectionState struct {
	Phase Phase

	Origin      ctdf.GeoPoint
	Destination ctdf.GeoPoint

	Candidates    []ctdf.Itinerary `copier:"-"`
	SelectedIndex *int

	ListVisible     bool
	HasResults      bool
	IsLoadingDetail bool

	Generation uint64

	Segments []ctdf.RouteSegment
	Bounds   *ctdf.BoundingRegion
}

// SearchTicket identifies one BeginSearch call.
type SearchTicket struct {
	Generation uint64
}

// DetailTicket is issued whenever an itinerary becomes selected. Only the
// ticket carrying the store's current generation may apply detail.
type DetailTicket struct {
	Generation  uint64
	Index       int
	DetailToken string
}

// ItineraryStore holds the candidate list and the active selection for one
// user. All mutation goes through its transition methods.
type ItineraryStore struct {
	mutex sync.Mutex
	state SelectionState
}

func NewItineraryStore() *ItineraryStore {
	return &ItineraryStore{
		state: SelectionState{Phase: PhaseEmpty},
	}
}

func (s *ItineraryStore) BeginSearch(origin ctdf.GeoPoint, destination ctdf.GeoPoint) SearchTicket {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.state = SelectionState{
		Phase:       PhaseSearching,
		Origin:      origin,
		Destination: destination,
		Generation:  s.state.Generation + 1,
	}

	return SearchTicket{Generation: s.state.Generation}
}

// ApplyResults installs a search's candidates and selects the first one. An
// empty candidate list returns the store to EMPTY with ErrNoRouteFound.
func (s *ItineraryStore) ApplyResults(search SearchTicket, candidates []ctdf.Itinerary) (DetailTicket, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.state.Phase != PhaseSearching || search.Generation != s.state.Generation {
		return DetailTicket{}, ErrSuperseded
	}

	if len(candidates) == 0 {
		s.state.Phase = PhaseEmpty
		return DetailTicket{}, ErrNoRouteFound
	}

	s.state.Candidates = slices.Clone(candidates)
	s.state.Phase = PhaseResultsShown
	s.state.ListVisible = true
	s.state.HasResults = true

	return s.selectLocked(0), nil
}

func (s *ItineraryStore) FailSearch(search SearchTicket) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.state.Phase != PhaseSearching || search.Generation != s.state.Generation {
		return false
	}

	s.state.Phase = PhaseEmpty

	return true
}

func (s *ItineraryStore) Hide() bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.state.Phase != PhaseResultsShown {
		return false
	}

	s.state.Phase = PhaseResultsHidden
	s.state.ListVisible = false

	return true
}

func (s *ItineraryStore) Show() bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.state.Phase != PhaseResultsHidden {
		return false
	}

	s.state.Phase = PhaseResultsShown
	s.state.ListVisible = true

	return true
}

// Select makes candidate i active. Any detail fetch still running for an
// earlier selection is superseded rather than cancelled.
func (s *ItineraryStore) Select(i int) (DetailTicket, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if i < 0 || i >= len(s.state.Candidates) {
		return DetailTicket{}, ErrIndexOutOfRange
	}

	return s.selectLocked(i), nil
}

func (s *ItineraryStore) selectLocked(i int) DetailTicket {
	s.state.Generation++
	s.state.SelectedIndex = &i
	s.state.IsLoadingDetail = true
	s.state.Segments = nil
	s.state.Bounds = nil

	return DetailTicket{
		Generation:  s.state.Generation,
		Index:       i,
		DetailToken: s.state.Candidates[i].DetailToken,
	}
}

// ApplyDetail rebuilds segments and bounds for the ticket's itinerary and
// returns how many segments were built. Stale tickets are ignored and report
// false. A failed fetch still builds segments, falling back to station
// coordinates.
func (s *ItineraryStore) ApplyDetail(ticket DetailTicket, lanes []ctdf.LaneGeometry, fetchErr error) (int, bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if ticket.Generation != s.state.Generation || s.state.SelectedIndex == nil {
		log.Debug().Uint64("ticket", ticket.Generation).Uint64("current", s.state.Generation).Msg("Dropping stale lane detail")
		return 0, false
	}

	if fetchErr != nil {
		lanes = nil
	}

	segments := BuildSegments(s.state.Candidates[ticket.Index], lanes)
	bounds := ComputeBounds(s.state.Origin, s.state.Destination, segments)

	s.state.IsLoadingDetail = false
	s.state.Segments = segments
	s.state.Bounds = &bounds

	return len(segments), true
}

// Snapshot returns a copy that is safe to read while the store keeps
// changing. Candidates are shared as they are never mutated once applied.
func (s *ItineraryStore) Snapshot() SelectionState {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	var snapshot SelectionState
	if err := copier.CopyWithOption(&snapshot, &s.state, copier.Option{DeepCopy: true}); err != nil {
		log.Error().Err(err).Msg("Failed to copy selection state")
	}
	snapshot.Candidates = slices.Clone(s.state.Candidates)

	return snapshot
}
