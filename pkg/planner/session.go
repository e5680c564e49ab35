package planner

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/busrute/busrute/pkg/ctdf"
	"github.com/busrute/busrute/pkg/dataaggregator/source"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc"
	"golang.org/x/exp/slices"
)

const maxNotices = 10

type EventPublisher interface {
	Publish(event ctdf.Event)
}

// Session is one user's composition flow: endpoints, the itinerary store and
// the notices raised along the way.
type Session struct {
	ID string

	provider  Provider
	publisher EventPublisher

	store *ItineraryStore

	mutex       sync.Mutex
	origin      *ctdf.Place
	destination *ctdf.Place
	notices     []Notice
	lastUsed    time.Time

	fetches conc.WaitGroup
}

type View struct {
	ID string `json:"id" groups:"basic"`

	Origin      *ctdf.Place `json:"origin" groups:"basic"`
	Destination *ctdf.Place `json:"destination" groups:"basic"`

	Phase           Phase `json:"phase" groups:"basic"`
	ListVisible     bool  `json:"list_visible" groups:"basic"`
	HasResults      bool  `json:"has_results" groups:"basic"`
	IsLoadingDetail bool  `json:"is_loading_detail" groups:"basic"`
	SelectedIndex   *int  `json:"selected_index" groups:"basic"`

	Routes []RouteSummary `json:"routes" groups:"basic"`

	Segments []ctdf.RouteSegment  `json:"segments" groups:"detailed"`
	Bounds   *ctdf.BoundingRegion `json:"bounds" groups:"detailed"`

	Notices []Notice `json:"notices" groups:"basic"`
}

func NewSession(id string, provider Provider, publisher EventPublisher) *Session {
	return &Session{
		ID:        id,
		provider:  provider,
		publisher: publisher,
		store:     NewItineraryStore(),
		lastUsed:  time.Now(),
	}
}

func (s *Session) SetOrigin(place ctdf.Place) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.origin = &place
}

func (s *Session) SetDestination(place ctdf.Place) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.destination = &place
}

// Swap exchanges origin and destination. Existing results are kept until the
// next search.
func (s *Session) Swap() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.origin, s.destination = s.destination, s.origin
}

// Search queries the trip planner and, on success, selects the first
// candidate and loads its detail before returning.
func (s *Session) Search(ctx context.Context) error {
	origin, destination, ok := s.endpoints()
	if !ok {
		s.addNotice(NoticeInputIncomplete)
		return ErrInputIncomplete
	}

	search := s.store.BeginSearch(origin.Point, destination.Point)

	itineraries, err := s.provider.PlanJourney(ctx, origin.Point, destination.Point)
	if err != nil && !errors.Is(err, source.ErrEmptyResult) {
		if s.store.FailSearch(search) {
			log.Error().Err(err).Str("session", s.ID).Msg("Journey planning failed")

			s.addNotice(NoticeSearchFailed)
			s.publish(ctdf.EventTypeSearchFailed, s.searchEventBody(origin, destination, 0))
		}

		return fmt.Errorf("planning journey: %w", err)
	}

	ticket, err := s.store.ApplyResults(search, itineraries)
	if errors.Is(err, ErrNoRouteFound) {
		s.addNotice(NoticeNoRouteFound)
		s.publish(ctdf.EventTypeNoRouteFound, s.searchEventBody(origin, destination, 0))

		return err
	} else if err != nil {
		return err
	}

	log.Info().Str("session", s.ID).Int("candidates", len(itineraries)).Msg("Journey search completed")
	s.publish(ctdf.EventTypeSearchCompleted, s.searchEventBody(origin, destination, len(itineraries)))

	s.fetchDetail(ctx, ticket)

	return nil
}

// Select makes candidate i active and waits for its detail.
func (s *Session) Select(ctx context.Context, i int) error {
	ticket, err := s.store.Select(i)
	if err != nil {
		return err
	}

	s.fetchDetail(ctx, ticket)

	return nil
}

// SelectAsync makes candidate i active and loads its detail in the
// background. Use Wait to block until outstanding fetches finish.
func (s *Session) SelectAsync(ctx context.Context, i int) error {
	ticket, err := s.store.Select(i)
	if err != nil {
		return err
	}

	fetchCtx := context.WithoutCancel(ctx)
	s.fetches.Go(func() {
		s.fetchDetail(fetchCtx, ticket)
	})

	return nil
}

func (s *Session) Wait() {
	s.fetches.Wait()
}

func (s *Session) Show() bool {
	return s.store.Show()
}

func (s *Session) Hide() bool {
	return s.store.Hide()
}

func (s *Session) State() SelectionState {
	return s.store.Snapshot()
}

func (s *Session) Notices() []Notice {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return slices.Clone(s.notices)
}

func (s *Session) View() View {
	state := s.store.Snapshot()

	s.mutex.Lock()
	view := View{
		ID:          s.ID,
		Origin:      clonePlace(s.origin),
		Destination: clonePlace(s.destination),
		Notices:     slices.Clone(s.notices),
	}
	s.mutex.Unlock()

	view.Phase = state.Phase
	view.ListVisible = state.ListVisible
	view.HasResults = state.HasResults
	view.IsLoadingDetail = state.IsLoadingDetail
	view.SelectedIndex = state.SelectedIndex
	view.Routes = Summarise(state.Candidates, state.SelectedIndex, time.Now())
	view.Segments = state.Segments
	view.Bounds = state.Bounds

	return view
}

func (s *Session) touch(now time.Time) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.lastUsed = now
}

func (s *Session) idleSince() time.Time {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return s.lastUsed
}

func (s *Session) fetchDetail(ctx context.Context, ticket DetailTicket) {
	lanes, err := s.provider.FetchLaneDetail(ctx, ticket.DetailToken)

	segmentCount, applied := s.store.ApplyDetail(ticket, lanes, err)
	if !applied {
		return
	}

	body := ctdf.SelectionEventBody{
		Index:        ticket.Index,
		Generation:   ticket.Generation,
		SegmentCount: segmentCount,
	}

	if err != nil {
		log.Warn().Err(err).Str("session", s.ID).Int("index", ticket.Index).Msg("Lane detail unavailable, using station fallback")

		s.addNotice(NoticeDetailFetchFailed)
		body.FailReason = fmt.Errorf("%w: %w", ErrDetailFetchFailed, err).Error()
		s.publish(ctdf.EventTypeDetailFetchFailed, body)

		return
	}

	s.publish(ctdf.EventTypeItinerarySelected, body)
}

func (s *Session) endpoints() (ctdf.Place, ctdf.Place, bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.origin == nil || s.destination == nil {
		return ctdf.Place{}, ctdf.Place{}, false
	}

	return *s.origin, *s.destination, true
}

func (s *Session) addNotice(kind NoticeKind) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.notices = append(s.notices, newNotice(kind))
	if len(s.notices) > maxNotices {
		s.notices = s.notices[len(s.notices)-maxNotices:]
	}
}

func (s *Session) publish(eventType ctdf.EventType, body interface{}) {
	if s.publisher == nil {
		return
	}

	s.publisher.Publish(ctdf.Event{
		Type:      eventType,
		Timestamp: time.Now(),
		SessionID: s.ID,
		Body:      body,
	})
}

func (s *Session) searchEventBody(origin ctdf.Place, destination ctdf.Place, candidates int) ctdf.SearchEventBody {
	return ctdf.SearchEventBody{
		Origin:         origin.Point,
		Destination:    destination.Point,
		CandidateCount: candidates,
	}
}

func clonePlace(place *ctdf.Place) *ctdf.Place {
	if place == nil {
		return nil
	}

	clone := *place
	return &clone
}
