package handlers

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"house-portal/app"
	"house-portal/models"
	"house-portal/pkg/geo"
)

// GetHouses fetches the listing collection, passing the request's query
// string through to the house service unmodified. It never fails: on a
// house service outage the store serves its fallback dataset.
func GetHouses(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		params := url.Values{}
		for key, values := range c.Queries() {
			params.Set(key, values)
		}

		houses := a.Houses.FetchHouses(c.Context(), params)

		return success(c, fiber.Map{
			"houses":     houses,
			"total":      a.Houses.Total(),
			"pagination": a.Houses.Pagination(),
		})
	}
}

// GetHouseStats returns the aggregate view over the full collection.
func GetHouseStats(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stats := a.Houses.Stats()
		if stats == nil {
			return success(c, fiber.Map{"stats": nil})
		}
		return success(c, fiber.Map{"stats": stats})
	}
}

// GetHouse fetches one record and selects it as the current house.
func GetHouse(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return badRequest(c, "house id is required")
		}

		house := a.Houses.FetchHouseByID(c.Context(), id)
		if house == nil {
			return notFound(c, "house not found")
		}

		return success(c, fiber.Map{
			"house":   house,
			"geohash": geo.Encode(house.Latitude, house.Longitude),
		})
	}
}

// GetHouseByZillowID fetches one record by its Zillow listing identifier
// and selects it as the current house.
func GetHouseByZillowID(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		zillowID := c.Params("zillowId")
		if zillowID == "" {
			return badRequest(c, "zillow id is required")
		}

		house := a.Houses.FetchHouseByZillowID(c.Context(), zillowID)
		if house == nil {
			return notFound(c, "house not found")
		}

		return success(c, fiber.Map{
			"house":   house,
			"geohash": geo.Encode(house.Latitude, house.Longitude),
		})
	}
}

// SearchByLocation runs a radius search around a coordinate.
func SearchByLocation(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var q models.LocationSearch
		if err := c.BodyParser(&q); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if err := a.Validator.Validate(q); err != nil {
			return validationFailed(c, err)
		}

		houses := a.Houses.SearchByLocation(c.Context(), q)

		return success(c, fiber.Map{
			"houses": houses,
			"count":  len(houses),
		})
	}
}

// UpdateFilters merges a partial filter change and returns the filtered
// view. Ranges are not validated; an impossible range yields an empty
// view.
func UpdateFilters(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var patch models.FilterUpdate
		if err := c.BodyParser(&patch); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if err := a.Validator.Validate(patch); err != nil {
			return validationFailed(c, err)
		}

		a.Houses.UpdateFilters(patch)

		return success(c, fiber.Map{
			"filters":    a.Houses.Filters(),
			"houses":     a.Houses.FilteredHouses(),
			"pagination": a.Houses.Pagination(),
		})
	}
}

// ResetFilters restores the default metro-constrained filters.
func ResetFilters(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		a.Houses.ResetFilters()

		return success(c, fiber.Map{
			"filters":    a.Houses.Filters(),
			"houses":     a.Houses.FilteredHouses(),
			"pagination": a.Houses.Pagination(),
		})
	}
}
