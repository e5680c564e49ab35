package kakao

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
	"github.com/busrute/busrute/pkg/util"
)

const (
	DefaultBaseURL = "https://dapi.kakao.com"
	DefaultTimeout = 10 * time.Second

	keywordEndpoint = "/v2/local/search/keyword.json"
)

// Client is a minimal Kakao Local keyword search client.
type Client struct {
	BaseURL    string
	RESTKey    string
	HTTPClient *http.Client
}

func NewClient(baseURL string, restKey string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		RESTKey:    restKey,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

type keywordResponse struct {
	Documents []document `json:"documents"`
}

type document struct {
	ID              string `json:"id"`
	PlaceName       string `json:"place_name"`
	AddressName     string `json:"address_name"`
	RoadAddressName string `json:"road_address_name"`
	X               any    `json:"x"`
	Y               any    `json:"y"`
}

// KeywordSearch returns places ranked by accuracy. When near is set the
// search is biased towards that point. Places with unusable coordinates are
// left out.
func (c *Client) KeywordSearch(ctx context.Context, keyword string, near *ctdf.GeoPoint) ([]ctdf.Place, error) {
	params := url.Values{}
	params.Set("query", keyword)
	params.Set("sort", "accuracy")
	if near != nil {
		params.Set("x", fmt.Sprintf("%.7f", near.Lng))
		params.Set("y", fmt.Sprintf("%.7f", near.Lat))
	}

	requestURL := fmt.Sprintf("%s%s?%s", c.BaseURL, keywordEndpoint, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "KakaoAK "+c.RESTKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("kakao keyword search returned status %d", resp.StatusCode)
	}

	byteValue, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var response keywordResponse
	if err := json.Unmarshal(byteValue, &response); err != nil {
		return nil, fmt.Errorf("decoding kakao keyword response: %w", err)
	}

	places := make([]ctdf.Place, 0, len(response.Documents))
	for _, doc := range response.Documents {
		point, ok := ctdf.XY(doc.X, doc.Y).Sanitize()
		if !ok {
			continue
		}

		address := doc.RoadAddressName
		if address == "" {
			address = doc.AddressName
		}

		places = append(places, ctdf.Place{
			Name:    doc.PlaceName,
			Address: address,
			Point:   point,
		})
	}

	util.InPlaceFilter(&places, func(place ctdf.Place) bool {
		return strings.TrimSpace(place.Name) != ""
	})

	return places, nil
}
