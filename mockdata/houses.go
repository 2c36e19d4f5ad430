// Package mockdata holds the fixed fallback dataset the house store
// serves when the house service is unreachable, so the UI never sees an
// empty collection. The five records spread property types, prices and
// coordinates around the Irvine metro area.
package mockdata

import (
	"time"

	"house-portal/models"
)

var referenceDate = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

var houses = []models.House{
	{
		ID:          1,
		Address:     "123 Harvard Ave",
		City:        "Irvine",
		State:       "CA",
		ZipCode:     "92614",
		Latitude:    33.6846,
		Longitude:   -117.8265,
		HouseType:   models.HouseTypeHouse,
		AreaSqft:    2500,
		LotAreaSqft: 8000,
		HouseStatus: models.HouseStatusForSale,
		BuildYear:   2010,
		Bathrooms:   3.0,
		Bedrooms:    4,
		Price:       1200000,
		Description: "Beautiful single-family home in Irvine with modern amenities",
		ImageURL:    "https://images.unsplash.com/photo-1600596542815-ffad4c1539a9?w=400",
		CreatedAt:   referenceDate,
	},
	{
		ID:          2,
		Address:     "456 Yale Loop",
		City:        "Irvine",
		State:       "CA",
		ZipCode:     "92620",
		Latitude:    33.6900,
		Longitude:   -117.8200,
		HouseType:   models.HouseTypeCondo,
		AreaSqft:    1800,
		LotAreaSqft: 0,
		HouseStatus: models.HouseStatusForSale,
		BuildYear:   2015,
		Bathrooms:   2.5,
		Bedrooms:    3,
		Price:       850000,
		Description: "Modern condominium with updated kitchen and bathrooms",
		ImageURL:    "https://images.unsplash.com/photo-1600607687939-ce8a6c25118c?w=400",
		CreatedAt:   referenceDate,
	},
	{
		ID:          3,
		Address:     "789 Stanford Dr",
		City:        "Irvine",
		State:       "CA",
		ZipCode:     "92612",
		Latitude:    33.6750,
		Longitude:   -117.8350,
		HouseType:   models.HouseTypeHouse,
		AreaSqft:    3200,
		LotAreaSqft: 12000,
		HouseStatus: models.HouseStatusForSale,
		BuildYear:   2008,
		Bathrooms:   4.0,
		Bedrooms:    5,
		Price:       1500000,
		Description: "Spacious family home with pool and large backyard",
		ImageURL:    "https://images.unsplash.com/photo-1600585154340-be6161a56a0c?w=400",
		CreatedAt:   referenceDate,
	},
	{
		ID:          4,
		Address:     "321 MIT Way",
		City:        "Irvine",
		State:       "CA",
		ZipCode:     "92618",
		Latitude:    33.6800,
		Longitude:   -117.8150,
		HouseType:   models.HouseTypeTownhouse,
		AreaSqft:    2200,
		LotAreaSqft: 4000,
		HouseStatus: models.HouseStatusForSale,
		BuildYear:   2012,
		Bathrooms:   2.5,
		Bedrooms:    3,
		Price:       950000,
		Description: "Charming townhouse with private garage and courtyard",
		ImageURL:    "https://images.unsplash.com/photo-1600566753190-17f0baa2a6c3?w=400",
		CreatedAt:   referenceDate,
	},
	{
		ID:          5,
		Address:     "654 Berkeley St",
		City:        "Irvine",
		State:       "CA",
		ZipCode:     "92617",
		Latitude:    33.6850,
		Longitude:   -117.8250,
		HouseType:   models.HouseTypeHouse,
		AreaSqft:    2800,
		LotAreaSqft: 9000,
		HouseStatus: models.HouseStatusForSale,
		BuildYear:   2018,
		Bathrooms:   3.5,
		Bedrooms:    4,
		Price:       1350000,
		Description: "New construction home with smart home features",
		ImageURL:    "https://images.unsplash.com/photo-1600585154526-990dced4db0d?w=400",
		CreatedAt:   referenceDate,
	},
}

// Houses returns a fresh copy of the fallback dataset. Callers may mutate
// the result freely; repeated calls always return equal data.
func Houses() []models.House {
	out := make([]models.House, len(houses))
	copy(out, houses)
	return out
}
