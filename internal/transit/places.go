package transit

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/randytsao24/tripmate/internal/models"
)

// placePageSize is the largest page the keyword search accepts
const placePageSize = 15

type placeSearchResponse struct {
	Documents []placeDocument `json:"documents"`
	Meta      struct {
		TotalCount int  `json:"total_count"`
		IsEnd      bool `json:"is_end"`
	} `json:"meta"`
}

type placeDocument struct {
	ID                string `json:"id"`
	PlaceName         string `json:"place_name"`
	AddressName       string `json:"address_name"`
	RoadAddressName   string `json:"road_address_name"`
	X                 string `json:"x"`
	Y                 string `json:"y"`
	CategoryGroupCode string `json:"category_group_code"`
}

// PlaceClient searches places by keyword within a category group
type PlaceClient struct {
	api    apiClient
	apiKey string
}

// NewPlaceClient creates a place search client for the keyword endpoint, e.g.
// https://dapi.kakao.com/v2/local/search/keyword.json
func NewPlaceClient(endpoint, apiKey string, timeout time.Duration) *PlaceClient {
	c := &PlaceClient{
		api:    newAPIClient(endpoint, timeout),
		apiKey: apiKey,
	}
	c.api.header.Set("Authorization", "KakaoAK "+apiKey)
	return c
}

// HasAPIKey returns true if the client has an API key configured
func (c *PlaceClient) HasAPIKey() bool {
	return c.apiKey != ""
}

// Search returns places matching keyword in category, in provider order.
// Documents with unparseable coordinates are dropped.
func (c *PlaceClient) Search(ctx context.Context, keyword string, category models.Category) ([]models.Place, error) {
	params := url.Values{}
	params.Set("query", keyword)
	params.Set("category_group_code", string(category))
	params.Set("size", strconv.Itoa(placePageSize))

	var resp placeSearchResponse
	if err := c.api.get(ctx, "", params, &resp); err != nil {
		return nil, fmt.Errorf("searching places %q/%s: %w", keyword, category, err)
	}

	places := make([]models.Place, 0, len(resp.Documents))
	for _, doc := range resp.Documents {
		lat, errLat := strconv.ParseFloat(doc.Y, 64)
		lng, errLng := strconv.ParseFloat(doc.X, 64)
		if errLat != nil || errLng != nil {
			continue
		}

		address := doc.RoadAddressName
		if address == "" {
			address = doc.AddressName
		}

		code := models.Category(doc.CategoryGroupCode)
		if code == "" {
			code = category
		}

		places = append(places, models.Place{
			ID:           doc.ID,
			Name:         doc.PlaceName,
			Address:      address,
			Lat:          lat,
			Lng:          lng,
			CategoryCode: code,
		})
	}
	return places, nil
}
