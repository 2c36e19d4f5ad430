package mockdata

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"house-portal/models"
)

func TestHouses_Deterministic(t *testing.T) {
	first := Houses()
	second := Houses()

	assert.Len(t, first, 5)
	assert.Equal(t, first, second)
}

func TestHouses_CallersCannotMutateSharedState(t *testing.T) {
	tampered := Houses()
	tampered[0].Price = 1
	tampered[0].City = "Nowhere"

	fresh := Houses()
	assert.Equal(t, int64(1200000), fresh[0].Price)
	assert.Equal(t, "Irvine", fresh[0].City)
}

func TestHouses_UniqueIDs(t *testing.T) {
	seen := make(map[int64]bool)
	for _, h := range Houses() {
		assert.False(t, seen[h.ID], "duplicate id %d", h.ID)
		seen[h.ID] = true
	}
}

// The dataset has to exercise every filter and the radius search: several
// property types, a price spread and coordinates clustered around Irvine.
func TestHouses_FieldDiversity(t *testing.T) {
	houses := Houses()

	types := make(map[string]int)
	var minPrice, maxPrice int64
	for i, h := range houses {
		types[h.HouseType]++
		if i == 0 || h.Price < minPrice {
			minPrice = h.Price
		}
		if h.Price > maxPrice {
			maxPrice = h.Price
		}

		assert.Equal(t, "Irvine", h.City)
		assert.Equal(t, "CA", h.State)
		assert.Equal(t, models.HouseStatusForSale, h.HouseStatus)
		assert.InDelta(t, 33.68, h.Latitude, 0.05)
		assert.InDelta(t, -117.82, h.Longitude, 0.05)
		assert.Positive(t, h.Bedrooms)
		assert.Positive(t, h.Bathrooms)
	}

	assert.Equal(t, map[string]int{
		models.HouseTypeHouse:     3,
		models.HouseTypeCondo:     1,
		models.HouseTypeTownhouse: 1,
	}, types)
	assert.Equal(t, int64(850000), minPrice)
	assert.Equal(t, int64(1500000), maxPrice)
}
