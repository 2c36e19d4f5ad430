package store

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"house-portal/mockdata"
	"house-portal/models"
	"house-portal/pkg/geo"
)

// ==================== MOCKS ====================

// MockHouseAPI is a mock implementation of the HouseAPI interface
type MockHouseAPI struct {
	mock.Mock
}

// Ensure MockHouseAPI implements HouseAPI interface
var _ HouseAPI = (*MockHouseAPI)(nil)

func (m *MockHouseAPI) ListHouses(ctx context.Context, params url.Values) ([]models.House, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.House), args.Error(1)
}

func (m *MockHouseAPI) GetHouse(ctx context.Context, id string) (*models.House, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.House), args.Error(1)
}

func (m *MockHouseAPI) GetHouseByZillowID(ctx context.Context, zillowID string) (*models.House, error) {
	args := m.Called(ctx, zillowID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.House), args.Error(1)
}

func (m *MockHouseAPI) SearchByLocation(ctx context.Context, q models.LocationSearch) ([]models.LocationResult, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.LocationResult), args.Error(1)
}

func newTestStore(api HouseAPI) *HouseStore {
	return NewHouseStore(api, slog.Default(), "Irvine", "CA", 12)
}

func ptrTo[T any](v T) *T { return &v }

// ==================== FETCH ====================

func TestHouseStore_FetchHousesSuccess(t *testing.T) {
	live := []models.House{
		{ID: 10, City: "Irvine", HouseType: models.HouseTypeHouse, Price: 2000000},
		{ID: 11, City: "Irvine", HouseType: models.HouseTypeCondo, Price: 700000},
	}

	api := new(MockHouseAPI)
	api.On("ListHouses", mock.Anything, mock.Anything).Return(live, nil)

	s := newTestStore(api)
	got := s.FetchHouses(context.Background(), nil)

	assert.Equal(t, live, got)
	assert.Equal(t, live, s.Houses())
	assert.Equal(t, 2, s.Total())
	assert.Equal(t, 2, s.Pagination().Total)
	assert.False(t, s.Loading())
	api.AssertExpectations(t)
}

func TestHouseStore_FetchHousesFallsBackOnError(t *testing.T) {
	api := new(MockHouseAPI)
	api.On("ListHouses", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))

	s := newTestStore(api)
	got := s.FetchHouses(context.Background(), nil)

	assert.Equal(t, mockdata.Houses(), got)
	assert.Equal(t, 5, s.Total())
	assert.False(t, s.Loading())

	stats := s.Stats()
	require.NotNil(t, stats)
	// (1200000+850000+1500000+950000+1350000) / 5
	assert.Equal(t, int64(1170000), stats.AvgPrice)
	assert.Equal(t, int64(850000), stats.MinPrice)
	assert.Equal(t, int64(1500000), stats.MaxPrice)
}

func TestHouseStore_FetchReplacesCollectionAndClearsSelection(t *testing.T) {
	api := new(MockHouseAPI)
	api.On("GetHouse", mock.Anything, "1").Return(&models.House{ID: 1}, nil)
	api.On("ListHouses", mock.Anything, mock.Anything).Return([]models.House{{ID: 20}}, nil)

	s := newTestStore(api)
	s.FetchHouseByID(context.Background(), "1")
	require.NotNil(t, s.CurrentHouse())

	s.FetchHouses(context.Background(), nil)
	assert.Nil(t, s.CurrentHouse())
	assert.Equal(t, []models.House{{ID: 20}}, s.Houses())
}

func TestHouseStore_FetchHousesPassesParamsThrough(t *testing.T) {
	params := url.Values{"city": {"Irvine"}, "minPrice": {"500000"}}

	api := new(MockHouseAPI)
	api.On("ListHouses", mock.Anything, params).Return([]models.House{}, nil)

	s := newTestStore(api)
	s.FetchHouses(context.Background(), params)
	api.AssertExpectations(t)
}

// ==================== FETCH BY ID ====================

func TestHouseStore_FetchHouseByID(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		mockSetup  func(*MockHouseAPI)
		expectedID int64
		expectNil  bool
	}{
		{
			name: "remote success",
			id:   "42",
			mockSetup: func(api *MockHouseAPI) {
				api.On("GetHouse", mock.Anything, "42").Return(&models.House{ID: 42}, nil)
			},
			expectedID: 42,
		},
		{
			name: "remote failure falls back to mock dataset",
			id:   "2",
			mockSetup: func(api *MockHouseAPI) {
				api.On("GetHouse", mock.Anything, "2").Return(nil, errors.New("gateway timeout"))
			},
			expectedID: 2,
		},
		{
			name: "loose equality accepts surrounding whitespace",
			id:   " 3 ",
			mockSetup: func(api *MockHouseAPI) {
				api.On("GetHouse", mock.Anything, " 3 ").Return(nil, errors.New("boom"))
			},
			expectedID: 3,
		},
		{
			name: "loose equality accepts a float rendering",
			id:   "4.0",
			mockSetup: func(api *MockHouseAPI) {
				api.On("GetHouse", mock.Anything, "4.0").Return(nil, errors.New("boom"))
			},
			expectedID: 4,
		},
		{
			name: "unknown id yields nil",
			id:   "999",
			mockSetup: func(api *MockHouseAPI) {
				api.On("GetHouse", mock.Anything, "999").Return(nil, errors.New("boom"))
			},
			expectNil: true,
		},
		{
			name: "non-numeric id yields nil",
			id:   "abc",
			mockSetup: func(api *MockHouseAPI) {
				api.On("GetHouse", mock.Anything, "abc").Return(nil, errors.New("boom"))
			},
			expectNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := new(MockHouseAPI)
			tt.mockSetup(api)

			s := newTestStore(api)
			house := s.FetchHouseByID(context.Background(), tt.id)

			if tt.expectNil {
				assert.Nil(t, house)
				assert.Nil(t, s.CurrentHouse())
			} else {
				require.NotNil(t, house)
				assert.Equal(t, tt.expectedID, house.ID)
				require.NotNil(t, s.CurrentHouse())
				assert.Equal(t, tt.expectedID, s.CurrentHouse().ID)
			}
			assert.False(t, s.Loading())
		})
	}
}

func TestHouseStore_FetchHouseByZillowID(t *testing.T) {
	t.Run("remote success selects the house", func(t *testing.T) {
		api := new(MockHouseAPI)
		api.On("GetHouseByZillowID", mock.Anything, "zpid-300").
			Return(&models.House{ID: 3, ZillowID: "zpid-300"}, nil)

		s := newTestStore(api)
		house := s.FetchHouseByZillowID(context.Background(), "zpid-300")

		require.NotNil(t, house)
		assert.Equal(t, int64(3), house.ID)
		require.NotNil(t, s.CurrentHouse())
		assert.Equal(t, "zpid-300", s.CurrentHouse().ZillowID)
	})

	t.Run("fallback has no zillow identifiers", func(t *testing.T) {
		api := new(MockHouseAPI)
		api.On("GetHouseByZillowID", mock.Anything, mock.Anything).
			Return(nil, errors.New("connection refused"))

		s := newTestStore(api)
		assert.Nil(t, s.FetchHouseByZillowID(context.Background(), "zpid-300"))
		assert.Nil(t, s.CurrentHouse())
	})
}

// ==================== LOCATION SEARCH ====================

func TestHouseStore_SearchByLocationUnwrapsResults(t *testing.T) {
	results := []models.LocationResult{
		{House: models.House{ID: 7}, DistanceKm: 0.4},
		{House: models.House{ID: 8}, DistanceKm: 0.9},
	}

	api := new(MockHouseAPI)
	api.On("SearchByLocation", mock.Anything, mock.Anything).Return(results, nil)

	s := newTestStore(api)
	got := s.SearchByLocation(context.Background(), models.LocationSearch{
		Latitude: 33.6846, Longitude: -117.8265, RadiusKm: 1,
	})

	assert.Equal(t, []models.House{{ID: 7}, {ID: 8}}, got)
	assert.Equal(t, got, s.Houses())
}

func TestHouseStore_SearchByLocationFallbackFiltersByRadius(t *testing.T) {
	q := models.LocationSearch{Latitude: 33.6846, Longitude: -117.8265, RadiusKm: 1}

	api := new(MockHouseAPI)
	api.On("SearchByLocation", mock.Anything, q).Return(nil, errors.New("service unavailable"))

	s := newTestStore(api)
	got := s.SearchByLocation(context.Background(), q)

	// Verify against an independent recomputation of the inclusion rule.
	var expected []models.House
	for _, h := range mockdata.Houses() {
		if geo.DistanceKm(q.Latitude, q.Longitude, h.Latitude, h.Longitude) <= q.RadiusKm {
			expected = append(expected, h)
		}
	}
	assert.Equal(t, expected, got)

	ids := make([]int64, 0, len(got))
	for _, h := range got {
		ids = append(ids, h.ID)
	}
	assert.Equal(t, []int64{1, 2, 5}, ids)
}

// ==================== FILTERS ====================

func loadFallback(t *testing.T) *HouseStore {
	t.Helper()
	api := new(MockHouseAPI)
	api.On("ListHouses", mock.Anything, mock.Anything).Return(nil, errors.New("down"))
	s := newTestStore(api)
	s.FetchHouses(context.Background(), nil)
	return s
}

func TestHouseStore_FilteredHousesApplyConjunctively(t *testing.T) {
	s := loadFallback(t)
	s.UpdateFilters(models.FilterUpdate{
		MinPrice:  ptrTo(int64(900000)),
		HouseType: ptrTo(models.HouseTypeHouse),
	})

	filtered := s.FilteredHouses()
	full := s.Houses()

	assert.NotEmpty(t, filtered)
	assert.Less(t, len(filtered), len(full))
	for _, h := range filtered {
		assert.GreaterOrEqual(t, h.Price, int64(900000))
		assert.Equal(t, models.HouseTypeHouse, h.HouseType)
		assert.Contains(t, full, h)
	}
}

func TestHouseStore_FilteredHousesEachPredicate(t *testing.T) {
	tests := []struct {
		name        string
		patch       models.FilterUpdate
		expectedIDs []int64
	}{
		{"minPrice", models.FilterUpdate{MinPrice: ptrTo(int64(1200000))}, []int64{1, 3, 5}},
		{"maxPrice", models.FilterUpdate{MaxPrice: ptrTo(int64(950000))}, []int64{2, 4}},
		{"minBedrooms", models.FilterUpdate{MinBedrooms: ptrTo(4)}, []int64{1, 3, 5}},
		{"minBathrooms", models.FilterUpdate{MinBathrooms: ptrTo(3.5)}, []int64{3, 5}},
		{"houseType", models.FilterUpdate{HouseType: ptrTo(models.HouseTypeCondo)}, []int64{2}},
		{"houseStatus", models.FilterUpdate{HouseStatus: ptrTo(models.HouseStatusSold)}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := loadFallback(t)
			s.UpdateFilters(tt.patch)

			ids := make([]int64, 0)
			for _, h := range s.FilteredHouses() {
				ids = append(ids, h.ID)
			}
			if tt.expectedIDs == nil {
				assert.Empty(t, ids)
			} else {
				assert.Equal(t, tt.expectedIDs, ids)
			}
		})
	}
}

func TestHouseStore_NoConstraintsYieldsFullCollection(t *testing.T) {
	s := loadFallback(t)
	assert.Equal(t, s.Houses(), s.FilteredHouses())
}

// City and state ride along to the house service as query parameters;
// the local projection ignores them.
func TestHouseStore_CityStateNotAppliedLocally(t *testing.T) {
	s := loadFallback(t)
	s.UpdateFilters(models.FilterUpdate{City: ptrTo("Nowhere"), State: ptrTo("ZZ")})

	assert.Equal(t, s.Houses(), s.FilteredHouses())
	assert.Equal(t, "Nowhere", s.Filters().City)
}

func TestHouseStore_UpdateFiltersResetsPage(t *testing.T) {
	s := loadFallback(t)
	s.mu.Lock()
	s.pagination.Page = 3
	s.mu.Unlock()

	s.UpdateFilters(models.FilterUpdate{MinPrice: ptrTo(int64(1000000))})
	assert.Equal(t, 1, s.Pagination().Page)
}

// Ranges are accepted as-is; min above max just drains the view.
func TestHouseStore_ImpossibleRangeYieldsEmptyView(t *testing.T) {
	s := loadFallback(t)
	s.UpdateFilters(models.FilterUpdate{
		MinPrice: ptrTo(int64(2000000)),
		MaxPrice: ptrTo(int64(100)),
	})
	assert.Empty(t, s.FilteredHouses())
}

func TestHouseStore_ResetFilters(t *testing.T) {
	s := loadFallback(t)
	s.UpdateFilters(models.FilterUpdate{
		MinPrice:  ptrTo(int64(1000000)),
		HouseType: ptrTo(models.HouseTypeHouse),
		City:      ptrTo("Tustin"),
	})
	s.mu.Lock()
	s.pagination.Page = 4
	s.mu.Unlock()

	s.ResetFilters()

	f := s.Filters()
	assert.Equal(t, "Irvine", f.City)
	assert.Equal(t, "CA", f.State)
	assert.Nil(t, f.MinPrice)
	assert.Nil(t, f.MaxPrice)
	assert.Nil(t, f.MinBedrooms)
	assert.Nil(t, f.MinBathrooms)
	assert.Nil(t, f.HouseType)
	assert.Nil(t, f.HouseStatus)
	assert.Equal(t, 1, s.Pagination().Page)
}

// ==================== STATS ====================

func TestHouseStore_StatsNilWhenEmpty(t *testing.T) {
	api := new(MockHouseAPI)
	s := newTestStore(api)
	assert.Nil(t, s.Stats())
}

func TestHouseStore_StatsOverFullCollection(t *testing.T) {
	s := loadFallback(t)
	// Filters must not affect the aggregate view.
	s.UpdateFilters(models.FilterUpdate{MinPrice: ptrTo(int64(99000000))})

	stats := s.Stats()
	require.NotNil(t, stats)
	assert.Equal(t, 5, stats.Total)
	assert.Equal(t, int64(1170000), stats.AvgPrice)
	assert.LessOrEqual(t, stats.MinPrice, stats.AvgPrice)
	assert.LessOrEqual(t, stats.AvgPrice, stats.MaxPrice)
	assert.Equal(t, 3.8, stats.AvgBedrooms)
	assert.Equal(t, 3.1, stats.AvgBathrooms)

	sum := 0
	for _, n := range stats.HouseTypes {
		sum += n
	}
	assert.Equal(t, stats.Total, sum)
	assert.Equal(t, 3, stats.HouseTypes[models.HouseTypeHouse])
	assert.NotContains(t, stats.HouseTypes, models.HouseTypeApartment)
}

func TestHouseStore_StatsExcludeAbsentValues(t *testing.T) {
	api := new(MockHouseAPI)
	api.On("ListHouses", mock.Anything, mock.Anything).Return([]models.House{
		{ID: 1, HouseType: models.HouseTypeHouse, Price: 1000000, Bedrooms: 4, Bathrooms: 2},
		{ID: 2, HouseType: models.HouseTypeCondo, Price: 0, Bedrooms: 0, Bathrooms: 3}, // absent price and bedrooms
	}, nil)

	s := newTestStore(api)
	s.FetchHouses(context.Background(), nil)

	stats := s.Stats()
	require.NotNil(t, stats)
	assert.Equal(t, int64(1000000), stats.AvgPrice)
	assert.Equal(t, int64(1000000), stats.MinPrice)
	assert.Equal(t, int64(1000000), stats.MaxPrice)
	assert.Equal(t, 4.0, stats.AvgBedrooms)
	assert.Equal(t, 2.5, stats.AvgBathrooms)
}

// Derived views recompute on read after a mutation, and only then.
func TestHouseStore_DerivedViewsTrackMutations(t *testing.T) {
	s := loadFallback(t)

	before := s.FilteredHouses()
	assert.Len(t, before, 5)
	assert.Equal(t, before, s.FilteredHouses())

	s.UpdateFilters(models.FilterUpdate{HouseType: ptrTo(models.HouseTypeTownhouse)})
	after := s.FilteredHouses()
	assert.Len(t, after, 1)

	statsBefore := s.Stats()
	s.Reset()
	assert.Nil(t, s.Stats())
	require.NotNil(t, statsBefore)
	assert.Equal(t, 5, statsBefore.Total)
}

// ==================== CONCURRENCY ====================

// slowFirstAPI serves the first ListHouses call only after release is
// closed; later calls return immediately.
type slowFirstAPI struct {
	MockHouseAPI
	release chan struct{}
	started chan struct{}
	first   []models.House
	second  []models.House
	calls   int
}

func (a *slowFirstAPI) ListHouses(ctx context.Context, params url.Values) ([]models.House, error) {
	a.calls++
	if a.calls == 1 {
		close(a.started)
		<-a.release
		return a.first, nil
	}
	return a.second, nil
}

// Overlapping fetches are not sequenced: the collection ends up with
// whichever response resolved last, not whichever call was issued last.
func TestHouseStore_ConcurrentFetchLastResolvedWins(t *testing.T) {
	api := &slowFirstAPI{
		release: make(chan struct{}),
		started: make(chan struct{}),
		first:   []models.House{{ID: 100, Address: "first response"}},
		second:  []models.House{{ID: 200, Address: "second response"}},
	}

	s := newTestStore(api)

	done := make(chan struct{})
	go func() {
		s.FetchHouses(context.Background(), nil)
		close(done)
	}()

	<-api.started

	// The second fetch starts later but resolves first.
	s.FetchHouses(context.Background(), nil)
	assert.Equal(t, api.second, s.Houses())

	// Releasing the first call lets its response land last and win.
	close(api.release)
	<-done
	assert.Equal(t, api.first, s.Houses())
	assert.Equal(t, 1, s.Total())
}
