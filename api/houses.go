package api

import (
	"context"
	"net/http"
	"net/url"

	"house-portal/models"
)

// HouseClient consumes the house service.
type HouseClient struct {
	*Client
}

func NewHouseClient(c *Client) *HouseClient {
	return &HouseClient{Client: c}
}

// ListHouses fetches the listing collection. Query parameters are passed
// through unmodified.
func (c *HouseClient) ListHouses(ctx context.Context, params url.Values) ([]models.House, error) {
	path := "/api/houses"
	if encoded := params.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var houses []models.House
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &houses); err != nil {
		return nil, err
	}
	return houses, nil
}

// GetHouse fetches a single record. The identifier is forwarded verbatim:
// the house service owns its parsing.
func (c *HouseClient) GetHouse(ctx context.Context, id string) (*models.House, error) {
	var house models.House
	if err := c.doJSON(ctx, http.MethodGet, "/api/houses/"+url.PathEscape(id), nil, &house); err != nil {
		return nil, err
	}
	return &house, nil
}

// GetHouseByZillowID fetches a record by its Zillow listing identifier.
func (c *HouseClient) GetHouseByZillowID(ctx context.Context, zillowID string) (*models.House, error) {
	var house models.House
	if err := c.doJSON(ctx, http.MethodGet, "/api/houses/zillow/"+url.PathEscape(zillowID), nil, &house); err != nil {
		return nil, err
	}
	return &house, nil
}

// SearchByLocation posts a radius search. The house service computes the
// inclusion set remotely and returns wrapped results with distances.
func (c *HouseClient) SearchByLocation(ctx context.Context, q models.LocationSearch) ([]models.LocationResult, error) {
	var results []models.LocationResult
	if err := c.doJSON(ctx, http.MethodPost, "/api/houses/search/location", q, &results); err != nil {
		return nil, err
	}
	return results, nil
}
