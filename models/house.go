package models

import "time"

// House types and statuses as delivered by the house service.
const (
	HouseTypeHouse     = "House"
	HouseTypeCondo     = "Condo"
	HouseTypeTownhouse = "Townhouse"
	HouseTypeApartment = "Apartment"

	HouseStatusForSale = "FOR_SALE"
	HouseStatusPending = "PENDING"
	HouseStatusSold    = "SOLD"
)

// House is a single property record. It is never mutated after it enters
// the store; fetches replace the whole collection. Absent numeric fields
// arrive as zero and are excluded from aggregate computations.
type House struct {
	ID          int64     `json:"id"`
	Address     string    `json:"address"`
	City        string    `json:"city"`
	State       string    `json:"state"`
	ZipCode     string    `json:"zipCode"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	HouseType   string    `json:"houseType"`
	AreaSqft    float64   `json:"areaSqft"`
	LotAreaSqft float64   `json:"lotAreaSqft"`
	HouseStatus string    `json:"houseStatus"`
	BuildYear   int       `json:"buildYear"`
	Bathrooms   float64   `json:"bathrooms"`
	Bedrooms    int       `json:"bedrooms"`
	Price       int64     `json:"price"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl"`
	ZillowID    string    `json:"zillowId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Filters holds the active listing constraints. Nil means unconstrained.
// City and state are sent to the house service as query parameters; they
// are not applied by the local filtered view.
type Filters struct {
	City         string   `json:"city"`
	State        string   `json:"state"`
	MinPrice     *int64   `json:"minPrice"`
	MaxPrice     *int64   `json:"maxPrice"`
	MinBedrooms  *int     `json:"minBedrooms"`
	MinBathrooms *float64 `json:"minBathrooms"`
	HouseType    *string  `json:"houseType"`
	HouseStatus  *string  `json:"houseStatus"`
}

// FilterUpdate is a partial filter change. Only non-nil fields are applied.
type FilterUpdate struct {
	City         *string  `json:"city"`
	State        *string  `json:"state"`
	MinPrice     *int64   `json:"minPrice"`
	MaxPrice     *int64   `json:"maxPrice"`
	MinBedrooms  *int     `json:"minBedrooms"`
	MinBathrooms *float64 `json:"minBathrooms"`
	HouseType    *string  `json:"houseType" validate:"omitempty,housetype"`
	HouseStatus  *string  `json:"houseStatus" validate:"omitempty,housestatus"`
}

// Pagination tracks the browsing position. Total counts the fetched
// collection, not the filtered view.
type Pagination struct {
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
	Total    int `json:"total"`
}

// HouseStats aggregates the full collection. Averages skip records with
// an absent value for that field; HouseTypes omits zero counts.
type HouseStats struct {
	Total        int            `json:"total"`
	AvgPrice     int64          `json:"avgPrice"`
	MinPrice     int64          `json:"minPrice"`
	MaxPrice     int64          `json:"maxPrice"`
	AvgBedrooms  float64        `json:"avgBedrooms"`
	AvgBathrooms float64        `json:"avgBathrooms"`
	HouseTypes   map[string]int `json:"houseTypes"`
}

// LocationSearch is the body of POST /houses/search/location.
type LocationSearch struct {
	Latitude    float64 `json:"latitude" validate:"latitude"`
	Longitude   float64 `json:"longitude" validate:"longitude"`
	RadiusKm    float64 `json:"radiusKm" validate:"radiuskm"`
	HouseType   *string `json:"houseType,omitempty" validate:"omitempty,housetype"`
	HouseStatus *string `json:"houseStatus,omitempty" validate:"omitempty,housestatus"`
}

// LocationResult wraps a house in a geospatial search response.
type LocationResult struct {
	House          House   `json:"house"`
	DistanceKm     float64 `json:"distanceKm"`
	DistanceMeters float64 `json:"distanceMeters"`
}
