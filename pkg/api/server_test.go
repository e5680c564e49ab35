package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/busrute/busrute/pkg/ctdf"
	"github.com/busrute/busrute/pkg/dataaggregator"
	"github.com/busrute/busrute/pkg/dataaggregator/source"
	kakaosource "github.com/busrute/busrute/pkg/dataaggregator/source/kakao"
	"github.com/busrute/busrute/pkg/kakao"
	"github.com/busrute/busrute/pkg/planner"
	"github.com/gofiber/fiber/v2"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	itineraries []ctdf.Itinerary
	searchErr   error
}

func (s stubProvider) PlanJourney(ctx context.Context, origin ctdf.GeoPoint, destination ctdf.GeoPoint) ([]ctdf.Itinerary, error) {
	return s.itineraries, s.searchErr
}

func (s stubProvider) FetchLaneDetail(ctx context.Context, detailToken string) ([]ctdf.LaneGeometry, error) {
	return nil, fmt.Errorf("%w: no lanes", source.ErrEmptyResult)
}

func cheonanItinerary() ctdf.Itinerary {
	return ctdf.Itinerary{
		DetailToken: "1:2:3",
		Summary:     ctdf.ItinerarySummary{TotalMinutes: 14, TotalWalkMeters: 80},
		Legs: []ctdf.Leg{
			&ctdf.WalkLeg{Start: ctdf.XY(127.113, 36.815), End: ctdf.XY(127.1139, 36.8151)},
			&ctdf.TransitLeg{
				Mode:             ctdf.TransportTypeBus,
				LineNumber:       "24",
				LaneTypeCode:     planner.BusTypeTrunk,
				StartStationName: "천안시청",
				PassStations: []ctdf.RawStation{
					{Name: "천안시청", Point: ctdf.XY("127.1139", "36.8151")},
					{Name: "불당중학교", Point: ctdf.XY("127.1215", "36.8132")},
					{Name: "신불당", Point: ctdf.XY("127.1296", "36.8104")},
				},
			},
		},
	}
}

type response struct {
	status int
	body   map[string]any
	raw    []byte
}

func request(t *testing.T, app *fiber.App, method string, path string, body string) response {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}

	res, err := app.Test(req, -1)
	require.NoError(t, err)
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	parsed := map[string]any{}
	_ = json.Unmarshal(raw, &parsed)

	return response{status: res.StatusCode, body: parsed, raw: raw}
}

func TestVersion(t *testing.T) {
	app := NewApp(planner.NewSessionManager(stubProvider{}, nil, time.Minute))

	res := request(t, app, http.MethodGet, "/core/version", "")
	assert.Equal(t, http.StatusOK, res.status)
	assert.Equal(t, "v0.1", res.body["version"])
}

func TestSessionFlow(t *testing.T) {
	app := NewApp(planner.NewSessionManager(stubProvider{itineraries: []ctdf.Itinerary{cheonanItinerary()}}, nil, time.Minute))

	created := request(t, app, http.MethodPost, "/core/sessions", "")
	require.Equal(t, http.StatusCreated, created.status)
	id := created.body["id"].(string)
	base := "/core/sessions/" + id

	res := request(t, app, http.MethodPut, base+"/origin", `{"name": "천안시청", "lat": 36.815, "lng": 127.113}`)
	require.Equal(t, http.StatusOK, res.status)

	res = request(t, app, http.MethodPost, base+"/search", "")
	assert.Equal(t, http.StatusBadRequest, res.status)
	assert.Contains(t, res.body["error"], "origin and destination")

	res = request(t, app, http.MethodPut, base+"/destination", `{"name": "신불당", "lat": "36.810", "lng": "127.130"}`)
	require.Equal(t, http.StatusOK, res.status)
	assert.Equal(t, "신불당", res.body["destination"].(map[string]any)["name"])

	res = request(t, app, http.MethodPost, base+"/search", "")
	require.Equal(t, http.StatusOK, res.status)
	assert.Equal(t, "RESULTS_SHOWN", res.body["phase"])
	assert.NotContains(t, res.body, "segments")

	routes := res.body["routes"].([]any)
	require.Len(t, routes, 1)
	assert.Equal(t, "24", routes[0].(map[string]any)["lines"])
	assert.Equal(t, true, routes[0].(map[string]any)["best"])

	res = request(t, app, http.MethodPost, base+"/select/3", "")
	assert.Equal(t, http.StatusBadRequest, res.status)

	res = request(t, app, http.MethodPost, base+"/select/first", "")
	assert.Equal(t, http.StatusBadRequest, res.status)

	res = request(t, app, http.MethodPost, base+"/select/0", "")
	require.Equal(t, http.StatusOK, res.status)
	segments := res.body["segments"].([]any)
	require.Len(t, segments, 2)
	assert.Equal(t, "#3B82F6", segments[1].(map[string]any)["colour"])
	assert.Len(t, segments[1].(map[string]any)["stations"], 3)

	res = request(t, app, http.MethodPost, base+"/list/hide", "")
	assert.Equal(t, false, res.body["list_visible"])
	res = request(t, app, http.MethodPost, base+"/list/show", "")
	assert.Equal(t, true, res.body["list_visible"])

	res = request(t, app, http.MethodGet, base+"/map?zoom=2", "")
	require.Equal(t, http.StatusOK, res.status)

	collection, err := geojson.UnmarshalFeatureCollection(res.raw)
	require.NoError(t, err)
	assert.Len(t, collection.Features, 6)
	assert.NotNil(t, collection.BBox)

	res = request(t, app, http.MethodGet, base+"/map?zoom=8", "")
	collection, err = geojson.UnmarshalFeatureCollection(res.raw)
	require.NoError(t, err)
	assert.Len(t, collection.Features, 3)

	res = request(t, app, http.MethodGet, base, "")
	require.Equal(t, http.StatusOK, res.status)
	notices := res.body["notices"].([]any)
	assert.Equal(t, "InputIncomplete", notices[0].(map[string]any)["kind"])
	assert.Equal(t, "DetailFetchFailed", notices[len(notices)-1].(map[string]any)["kind"])
}

func TestSessionErrors(t *testing.T) {
	tests := []struct {
		name     string
		provider stubProvider
		want     int
	}{
		{"no route", stubProvider{}, http.StatusNotFound},
		{"upstream failure", stubProvider{searchErr: fmt.Errorf("%w: 503", source.ErrNetwork)}, http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := NewApp(planner.NewSessionManager(tt.provider, nil, time.Minute))

			created := request(t, app, http.MethodPost, "/core/sessions", "")
			base := "/core/sessions/" + created.body["id"].(string)

			request(t, app, http.MethodPut, base+"/origin", `{"lat": 36.815, "lng": 127.113}`)
			request(t, app, http.MethodPut, base+"/destination", `{"lat": 36.810, "lng": 127.130}`)

			res := request(t, app, http.MethodPost, base+"/search", "")
			assert.Equal(t, tt.want, res.status)
			assert.NotEmpty(t, res.body["error"])
		})
	}
}

func TestUnknownSessionAndBadInput(t *testing.T) {
	app := NewApp(planner.NewSessionManager(stubProvider{}, nil, time.Minute))

	res := request(t, app, http.MethodGet, "/core/sessions/does-not-exist", "")
	assert.Equal(t, http.StatusNotFound, res.status)

	created := request(t, app, http.MethodPost, "/core/sessions", "")
	base := "/core/sessions/" + created.body["id"].(string)

	res = request(t, app, http.MethodPut, base+"/origin", `{"lat": "north", "lng": 127.113}`)
	assert.Equal(t, http.StatusBadRequest, res.status)

	res = request(t, app, http.MethodPut, base+"/origin", `not json`)
	assert.Equal(t, http.StatusBadRequest, res.status)
}

func TestSwap(t *testing.T) {
	app := NewApp(planner.NewSessionManager(stubProvider{}, nil, time.Minute))

	created := request(t, app, http.MethodPost, "/core/sessions", "")
	base := "/core/sessions/" + created.body["id"].(string)

	request(t, app, http.MethodPut, base+"/origin", `{"name": "A", "lat": 36.815, "lng": 127.113}`)

	res := request(t, app, http.MethodPost, base+"/swap", "")
	require.Equal(t, http.StatusOK, res.status)
	assert.Nil(t, res.body["origin"])
	assert.Equal(t, "A", res.body["destination"].(map[string]any)["name"])
}

func TestPlaces(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "천안역", r.URL.Query().Get("query"))
		w.Write([]byte(`{"documents": [{"place_name": "천안역", "address_name": "충남 천안시 동남구 대흥동", "road_address_name": "충남 천안시 동남구 대흥로 239", "x": "127.1464", "y": "36.8101"}]}`))
	}))
	defer server.Close()

	previous := dataaggregator.GlobalAggregator
	defer func() { dataaggregator.GlobalAggregator = previous }()

	dataaggregator.GlobalAggregator = &dataaggregator.Aggregator{}
	dataaggregator.GlobalAggregator.RegisterSource(kakaosource.Source{Client: kakao.NewClient(server.URL, "key", time.Second)})

	app := NewApp(planner.NewSessionManager(stubProvider{}, nil, time.Minute))

	req := httptest.NewRequest(http.MethodGet, "/core/places?query=%EC%B2%9C%EC%95%88%EC%97%AD&lat=36.81&lng=127.14", nil)
	res, err := app.Test(req, -1)
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var places []ctdf.Place
	require.NoError(t, json.NewDecoder(res.Body).Decode(&places))
	require.Len(t, places, 1)
	assert.Equal(t, "충남 천안시 동남구 대흥로 239", places[0].Address)
	assert.Equal(t, ctdf.GeoPoint{Lat: 36.8101, Lng: 127.1464}, places[0].Point)

	missing := request(t, app, http.MethodGet, "/core/places", "")
	assert.Equal(t, http.StatusBadRequest, missing.status)

	badBias := request(t, app, http.MethodGet, "/core/places?query=x&lat=abc", "")
	assert.Equal(t, http.StatusBadRequest, badBias.status)
}
