package odsay

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/busrute/busrute/pkg/ctdf"
	"github.com/rs/zerolog/log"
)

const (
	DefaultBaseURL = "https://api.odsay.com/v1/api"
	DefaultTimeout = 10 * time.Second

	searchEndpoint = "/searchPubTransPathT"
	laneEndpoint   = "/loadLane"

	mapObjectPrefix = "0:0@"
)

// Client talks to the ODsay public transit API.
type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

func NewClient(baseURL string, apiKey string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		APIKey:     apiKey,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// SearchPubTransPath asks for transit itineraries between two points. ODsay
// takes geographic x/y, so longitude goes first.
func (c *Client) SearchPubTransPath(ctx context.Context, origin ctdf.GeoPoint, destination ctdf.GeoPoint) ([]ctdf.Itinerary, error) {
	params := url.Values{}
	params.Set("SX", formatCoordinate(origin.Lng))
	params.Set("SY", formatCoordinate(origin.Lat))
	params.Set("EX", formatCoordinate(destination.Lng))
	params.Set("EY", formatCoordinate(destination.Lat))

	var response searchResponse
	if err := c.get(ctx, searchEndpoint, params, &response); err != nil {
		return nil, err
	}

	if apiError := parseAPIError(response.Error); apiError != nil {
		return nil, apiError
	}

	if response.Result == nil {
		return nil, nil
	}

	return parseItineraries(response.Result.Path, origin, destination), nil
}

// LoadLane resolves an itinerary's map object into per transit leg geometry.
func (c *Client) LoadLane(ctx context.Context, mapObj string) ([]ctdf.LaneGeometry, error) {
	params := url.Values{}
	params.Set("mapObject", MapObject(mapObj))

	var response laneResponse
	if err := c.get(ctx, laneEndpoint, params, &response); err != nil {
		return nil, err
	}

	if apiError := parseAPIError(response.Error); apiError != nil {
		return nil, apiError
	}

	if response.Result == nil {
		return nil, nil
	}

	return parseLanes(response.Result.Lane), nil
}

// MapObject turns an itinerary's mapObj into the loadLane mapObject parameter.
func MapObject(mapObj string) string {
	if strings.Contains(mapObj, "@") {
		return mapObj
	}

	return mapObjectPrefix + mapObj
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values, target any) error {
	params.Set("apiKey", c.APIKey)
	requestURL := fmt.Sprintf("%s%s?%s", c.BaseURL, endpoint, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	startTime := time.Now()
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	log.Debug().
		Str("endpoint", endpoint).
		Int("status", resp.StatusCode).
		Str("latency", time.Since(startTime).String()).
		Msg("ODsay request")

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("odsay %s returned status %d", endpoint, resp.StatusCode)
	}

	byteValue, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(byteValue, target); err != nil {
		return fmt.Errorf("decoding odsay %s response: %w", endpoint, err)
	}

	return nil
}

func formatCoordinate(value float64) string {
	return fmt.Sprintf("%.7f", value)
}
