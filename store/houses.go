// Package store holds the session-scoped reactive state: the listing
// collection with its derived views, and the login session. Stores are
// constructed explicitly at session start and passed to their consumers;
// there are no package-level singletons.
package store

import (
	"context"
	"log/slog"
	"math"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"house-portal/mockdata"
	"house-portal/models"
	"house-portal/pkg/geo"
)

// HouseStore owns the canonical in-memory listing collection, the active
// filters and the pagination cursor. Listing fetches never fail from the
// caller's perspective: any transport error is collapsed into serving the
// fallback dataset, and only the log line tells the difference.
type HouseStore struct {
	mu sync.Mutex

	api    HouseAPI
	logger *slog.Logger

	defaultCity  string
	defaultState string

	houses       []models.House
	currentHouse *models.House
	loading      bool
	total        int
	filters      models.Filters
	pagination   models.Pagination

	// rev bumps on every collection or filter change; the derived views
	// below are recomputed on read only when their rev is stale.
	rev         uint64
	filteredRev uint64
	filtered    []models.House
	statsRev    uint64
	stats       *models.HouseStats
}

func NewHouseStore(api HouseAPI, logger *slog.Logger, defaultCity, defaultState string, pageSize int) *HouseStore {
	s := &HouseStore{
		api:          api,
		logger:       logger,
		defaultCity:  defaultCity,
		defaultState: defaultState,
		rev:          1,
	}
	s.filters = s.defaultFilters()
	s.pagination = models.Pagination{Page: 1, PageSize: pageSize}
	return s
}

func (s *HouseStore) defaultFilters() models.Filters {
	return models.Filters{City: s.defaultCity, State: s.defaultState}
}

// FetchHouses replaces the collection from the house service, passing
// params through unmodified. On any failure it substitutes the fallback
// dataset instead of returning an error. Overlapping fetches are not
// serialized: whichever call resolves last overwrites the collection
// (last-resolved-wins, see TestHouseStore_ConcurrentFetchLastResolvedWins).
func (s *HouseStore) FetchHouses(ctx context.Context, params url.Values) []models.House {
	s.setLoading(true)
	defer s.setLoading(false)

	houses, err := s.api.ListHouses(ctx, params)
	if err != nil {
		houses = mockdata.Houses()
		s.logger.Warn("house fetch failed, serving fallback dataset",
			"cause", err, "fallback_count", len(houses))
	}
	if houses == nil {
		houses = []models.House{}
	}

	s.replaceCollection(houses)
	return copyHouses(houses)
}

// FetchHouseByID retrieves a single record and makes it the currently
// selected house. On failure it searches the fallback dataset instead,
// matching identifiers loosely: the raw id matches a fallback record when
// both render to the same decimal integer ("7", " 7 " and "7.0" all
// match id 7). Returns nil when no record is found anywhere.
func (s *HouseStore) FetchHouseByID(ctx context.Context, id string) *models.House {
	s.setLoading(true)
	defer s.setLoading(false)

	house, err := s.api.GetHouse(ctx, id)
	if err != nil {
		s.logger.Warn("house detail fetch failed, searching fallback dataset",
			"cause", err, "id", id)
		house = fallbackByID(id)
	}

	s.mu.Lock()
	s.currentHouse = house
	s.mu.Unlock()

	if house == nil {
		return nil
	}
	cp := *house
	return &cp
}

// FetchHouseByZillowID retrieves a record by its Zillow listing
// identifier and makes it the currently selected house. On failure it
// scans the fallback dataset for an exact identifier match. Returns nil
// when no record is found anywhere.
func (s *HouseStore) FetchHouseByZillowID(ctx context.Context, zillowID string) *models.House {
	s.setLoading(true)
	defer s.setLoading(false)

	house, err := s.api.GetHouseByZillowID(ctx, zillowID)
	if err != nil {
		s.logger.Warn("zillow lookup failed, searching fallback dataset",
			"cause", err, "zillow_id", zillowID)
		house = fallbackByZillowID(zillowID)
	}

	s.mu.Lock()
	s.currentHouse = house
	s.mu.Unlock()

	if house == nil {
		return nil
	}
	cp := *house
	return &cp
}

// SearchByLocation posts a radius search and replaces the collection with
// the unwrapped results. On failure it filters the fallback dataset
// locally with the same inclusion rule the house service applies:
// distance from the center at most q.RadiusKm.
func (s *HouseStore) SearchByLocation(ctx context.Context, q models.LocationSearch) []models.House {
	s.setLoading(true)
	defer s.setLoading(false)

	var houses []models.House
	results, err := s.api.SearchByLocation(ctx, q)
	if err != nil {
		houses = geo.FilterWithinRadius(mockdata.Houses(), q.Latitude, q.Longitude, q.RadiusKm)
		s.logger.Warn("location search failed, filtering fallback dataset locally",
			"cause", err, "radius_km", q.RadiusKm, "matched", len(houses))
	} else {
		houses = make([]models.House, len(results))
		for i, r := range results {
			houses[i] = r.House
		}
	}
	if houses == nil {
		houses = []models.House{}
	}

	s.replaceCollection(houses)
	return copyHouses(houses)
}

// UpdateFilters merges the non-nil fields of patch into the active
// filters and resets the page to 1. Ranges are not validated: a minimum
// above the maximum is accepted and simply yields an empty filtered view.
func (s *HouseStore) UpdateFilters(patch models.FilterUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if patch.City != nil {
		s.filters.City = *patch.City
	}
	if patch.State != nil {
		s.filters.State = *patch.State
	}
	if patch.MinPrice != nil {
		s.filters.MinPrice = patch.MinPrice
	}
	if patch.MaxPrice != nil {
		s.filters.MaxPrice = patch.MaxPrice
	}
	if patch.MinBedrooms != nil {
		s.filters.MinBedrooms = patch.MinBedrooms
	}
	if patch.MinBathrooms != nil {
		s.filters.MinBathrooms = patch.MinBathrooms
	}
	if patch.HouseType != nil {
		s.filters.HouseType = patch.HouseType
	}
	if patch.HouseStatus != nil {
		s.filters.HouseStatus = patch.HouseStatus
	}

	s.pagination.Page = 1
	s.rev++
}

// ResetFilters restores the default metro-constrained filters and resets
// the page to 1.
func (s *HouseStore) ResetFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.filters = s.defaultFilters()
	s.pagination.Page = 1
	s.rev++
}

// FilteredHouses is the conjunction of every non-nil filter applied to
// the collection. City and state are deliberately not applied here: they
// are query parameters for the house service, not local predicates.
func (s *HouseStore) FilteredHouses() []models.House {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.filteredRev != s.rev {
		s.filtered = applyFilters(s.houses, s.filters)
		s.filteredRev = s.rev
	}
	return copyHouses(s.filtered)
}

// Stats aggregates the full collection, not the filtered view. Returns
// nil while the collection is empty.
func (s *HouseStore) Stats() *models.HouseStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.statsRev != s.rev {
		s.stats = computeStats(s.houses)
		s.statsRev = s.rev
	}
	if s.stats == nil {
		return nil
	}

	cp := *s.stats
	cp.HouseTypes = make(map[string]int, len(s.stats.HouseTypes))
	for k, v := range s.stats.HouseTypes {
		cp.HouseTypes[k] = v
	}
	return &cp
}

func (s *HouseStore) Houses() []models.House {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyHouses(s.houses)
}

func (s *HouseStore) CurrentHouse() *models.House {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentHouse == nil {
		return nil
	}
	cp := *s.currentHouse
	return &cp
}

func (s *HouseStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *HouseStore) Filters() models.Filters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters
}

func (s *HouseStore) Pagination() models.Pagination {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pagination
}

func (s *HouseStore) Total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

// Reset tears the store down to its initial state. Called on logout and
// navigation away.
func (s *HouseStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.houses = nil
	s.currentHouse = nil
	s.total = 0
	s.filters = s.defaultFilters()
	s.pagination = models.Pagination{Page: 1, PageSize: s.pagination.PageSize}
	s.rev++
}

func (s *HouseStore) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

// replaceCollection swaps the whole collection: no incremental merge, and
// the selected house is implicitly cleared.
func (s *HouseStore) replaceCollection(houses []models.House) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.houses = houses
	s.currentHouse = nil
	s.total = len(houses)
	s.pagination.Total = len(houses)
	s.rev++
}

func fallbackByID(raw string) *models.House {
	id, ok := parseLooseID(raw)
	if !ok {
		return nil
	}
	for _, h := range mockdata.Houses() {
		if h.ID == id {
			cp := h
			return &cp
		}
	}
	return nil
}

func fallbackByZillowID(raw string) *models.House {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, h := range mockdata.Houses() {
		if h.ZillowID == raw {
			cp := h
			return &cp
		}
	}
	return nil
}

// parseLooseID renders the incoming identifier to a decimal integer when
// possible. Remote identifiers may arrive in different numeric shapes;
// anything that truncates cleanly to an integer matches.
func parseLooseID(raw string) (int64, bool) {
	raw = strings.TrimSpace(raw)
	if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return id, true
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int64(f), true
}

func applyFilters(houses []models.House, f models.Filters) []models.House {
	result := houses
	if f.MinPrice != nil {
		result = keep(result, func(h models.House) bool { return h.Price >= *f.MinPrice })
	}
	if f.MaxPrice != nil {
		result = keep(result, func(h models.House) bool { return h.Price <= *f.MaxPrice })
	}
	if f.MinBedrooms != nil {
		result = keep(result, func(h models.House) bool { return h.Bedrooms >= *f.MinBedrooms })
	}
	if f.MinBathrooms != nil {
		result = keep(result, func(h models.House) bool { return h.Bathrooms >= *f.MinBathrooms })
	}
	if f.HouseType != nil {
		result = keep(result, func(h models.House) bool { return h.HouseType == *f.HouseType })
	}
	if f.HouseStatus != nil {
		result = keep(result, func(h models.House) bool { return h.HouseStatus == *f.HouseStatus })
	}
	return result
}

func keep(houses []models.House, pred func(models.House) bool) []models.House {
	var out []models.House
	for _, h := range houses {
		if pred(h) {
			out = append(out, h)
		}
	}
	return out
}

func computeStats(houses []models.House) *models.HouseStats {
	if len(houses) == 0 {
		return nil
	}

	stats := &models.HouseStats{
		Total:      len(houses),
		HouseTypes: make(map[string]int),
	}

	var priceSum, priceCount int64
	var bedSum, bedCount int
	var bathSum float64
	var bathCount int

	for _, h := range houses {
		if h.Price > 0 {
			if priceCount == 0 || h.Price < stats.MinPrice {
				stats.MinPrice = h.Price
			}
			if h.Price > stats.MaxPrice {
				stats.MaxPrice = h.Price
			}
			priceSum += h.Price
			priceCount++
		}
		if h.Bedrooms > 0 {
			bedSum += h.Bedrooms
			bedCount++
		}
		if h.Bathrooms > 0 {
			bathSum += h.Bathrooms
			bathCount++
		}
		stats.HouseTypes[h.HouseType]++
	}

	if priceCount > 0 {
		stats.AvgPrice = int64(math.Round(float64(priceSum) / float64(priceCount)))
	}
	if bedCount > 0 {
		stats.AvgBedrooms = roundTo1(float64(bedSum) / float64(bedCount))
	}
	if bathCount > 0 {
		stats.AvgBathrooms = roundTo1(bathSum / float64(bathCount))
	}
	return stats
}

func roundTo1(v float64) float64 {
	return math.Round(v*10) / 10
}

func copyHouses(houses []models.House) []models.House {
	out := make([]models.House, len(houses))
	copy(out, houses)
	return out
}
