package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"car-dealer/domain"
	"car-dealer/repository"
	"car-dealer/service"
)

func newTestRouter(t *testing.T, rateLimit int) (http.Handler, *service.InventoryService) {
	t.Helper()
	log, _ := test.NewNullLogger()

	inventory := service.NewInventoryService(repository.NewVehicleRepositoryEmbedded(), 16, time.Minute, log)
	require.NoError(t, inventory.Reload(context.Background()))

	loan := service.NewLoanService(repository.NewEstimateRepositoryMemory(10), nil, log)
	limiter := NewRateLimiter(rateLimit, time.Minute)
	t.Cleanup(limiter.Stop)

	router := NewRouter(Services{
		Inventory:          inventory,
		Loan:               loan,
		TermRecommendation: service.NewTermRecommendationService(loan, log),
	}, limiter, log)
	return router, inventory
}

func doRequest(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(w.Body).Decode(&out))
	return out
}

func vehicleIDs(vehicles []domain.Vehicle) []int {
	out := make([]int, len(vehicles))
	for i, v := range vehicles {
		out[i] = v.ID
	}
	return out
}

func TestHealthz(t *testing.T) {
	router, _ := newTestRouter(t, 10)

	w := doRequest(t, router, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))

	health := decodeBody[HealthResponse](t, w)
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, 12, health.Vehicles)
	assert.Equal(t, uint64(1), health.CatalogVersion)
}

func TestRequestIDIsEchoed(t *testing.T) {
	router, _ := newTestRouter(t, 10)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get(requestIDHeader))
}

func TestInventoryQuery(t *testing.T) {
	router, _ := newTestRouter(t, 10)

	tests := []struct {
		name         string
		target       string
		wantIDs      []int
		wantMatched  int
		wantPages    int
		wantPageSize int
	}{
		{
			name:         "defaults",
			target:       "/api/v1/inventory",
			wantIDs:      []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12},
			wantMatched:  12,
			wantPages:    1,
			wantPageSize: 12,
		},
		{
			name:         "body type sorted by price",
			target:       "/api/v1/inventory?bodyType=SUV&sort=price-low&pageSize=2",
			wantIDs:      []int{7, 11},
			wantMatched:  4,
			wantPages:    2,
			wantPageSize: 2,
		},
		{
			name:         "comma separated body types",
			target:       "/api/v1/inventory?bodyType=SUV,Wagon&page=2&pageSize=4",
			wantIDs:      []int{12},
			wantMatched:  5,
			wantPages:    2,
			wantPageSize: 4,
		},
		{
			name:         "repeated body types",
			target:       "/api/v1/inventory?bodyType=Coupe&bodyType=Wagon",
			wantIDs:      []int{8, 9, 10, 12},
			wantMatched:  4,
			wantPages:    1,
			wantPageSize: 12,
		},
		{
			name:         "page size capped",
			target:       "/api/v1/inventory?pageSize=1000",
			wantMatched:  12,
			wantPages:    1,
			wantPageSize: service.MaxPageSize,
		},
		{
			name:         "unknown sort keeps order",
			target:       "/api/v1/inventory?sort=cheapest&make=BMW",
			wantIDs:      []int{1},
			wantMatched:  1,
			wantPages:    1,
			wantPageSize: 12,
		},
		{
			name:         "page past the end",
			target:       "/api/v1/inventory?page=9",
			wantIDs:      []int{},
			wantMatched:  12,
			wantPages:    1,
			wantPageSize: 12,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, router, http.MethodGet, tt.target, "")
			require.Equal(t, http.StatusOK, w.Code)

			result := decodeBody[domain.QueryResult](t, w)
			assert.Equal(t, tt.wantPageSize, result.PageSize)
			if tt.wantIDs != nil {
				assert.Equal(t, tt.wantIDs, vehicleIDs(result.Items))
			}
			assert.Equal(t, tt.wantMatched, result.TotalMatched)
			assert.Equal(t, tt.wantPages, result.TotalPages)
		})
	}
}

func TestInventoryQuery_SearchAndBounds(t *testing.T) {
	router, _ := newTestRouter(t, 10)

	w := doRequest(t, router, http.MethodGet, "/api/v1/inventory?search=%20TESLA%20", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []int{2}, vehicleIDs(decodeBody[domain.QueryResult](t, w).Items))

	w = doRequest(t, router, http.MethodGet, "/api/v1/inventory?minYear=2024&maxMileage=10000&sort=mileage-low", "")
	require.Equal(t, http.StatusOK, w.Code)

	result := decodeBody[domain.QueryResult](t, w)
	require.NotEmpty(t, result.Items)
	for _, v := range result.Items {
		assert.GreaterOrEqual(t, v.Year, 2024)
		assert.LessOrEqual(t, v.Mileage, 10000)
	}
	assert.Equal(t, result.TotalMatched, result.Stats.Count)
}

func TestInventoryQuery_InvalidParams(t *testing.T) {
	router, _ := newTestRouter(t, 10)

	tests := map[string]string{
		"minPrice":   "/api/v1/inventory?minPrice=cheap",
		"maxPrice":   "/api/v1/inventory?maxPrice=NaN",
		"maxYear":    "/api/v1/inventory?maxYear=2024.5",
		"maxMileage": "/api/v1/inventory?maxMileage=lots",
		"page":       "/api/v1/inventory?page=0",
		"pageSize":   "/api/v1/inventory?pageSize=-3",
	}

	for field, target := range tests {
		t.Run(field, func(t *testing.T) {
			w := doRequest(t, router, http.MethodGet, target, "")
			require.Equal(t, http.StatusBadRequest, w.Code)

			resp := decodeBody[ErrorResponse](t, w)
			assert.Contains(t, resp.Details, field)
		})
	}
}

func TestInventoryQuery_NonFinitePrices(t *testing.T) {
	router, _ := newTestRouter(t, 10)

	for _, raw := range []string{"NaN", "nan", "Inf", "-Inf", "+Infinity"} {
		w := doRequest(t, router, http.MethodGet, "/api/v1/inventory?minPrice="+raw, "")
		require.Equal(t, http.StatusBadRequest, w.Code, raw)

		resp := decodeBody[ErrorResponse](t, w)
		assert.Equal(t, "must be a finite number", resp.Details["minPrice"], raw)
	}
}

func TestInventoryLookups(t *testing.T) {
	router, _ := newTestRouter(t, 10)

	w := doRequest(t, router, http.MethodGet, "/api/v1/inventory/makes", "")
	require.Equal(t, http.StatusOK, w.Code)
	makes := decodeBody[map[string][]string](t, w)
	assert.Equal(t, []string{
		"Audi", "BMW", "Chevrolet", "Ford", "Honda", "Jeep",
		"Lexus", "Mercedes-Benz", "Porsche", "Subaru", "Tesla", "Toyota",
	}, makes["makes"])

	w = doRequest(t, router, http.MethodGet, "/api/v1/inventory/makes/Tesla/models", "")
	require.Equal(t, http.StatusOK, w.Code)
	models := decodeBody[map[string]any](t, w)
	assert.Equal(t, []any{"Model S"}, models["models"])

	w = doRequest(t, router, http.MethodGet, "/api/v1/inventory/ranges", "")
	require.Equal(t, http.StatusOK, w.Code)
	ranges := decodeBody[domain.InventoryRanges](t, w)
	assert.Equal(t, domain.FloatRange{Min: 32900, Max: 115900}, ranges.Price)
	assert.Equal(t, domain.IntRange{Min: 2023, Max: 2024}, ranges.Year)

	w = doRequest(t, router, http.MethodGet, "/api/v1/inventory/facets", "")
	require.Equal(t, http.StatusOK, w.Code)
	facets := decodeBody[facetsResponse](t, w)
	assert.Equal(t, map[string]int{"SUV": 4, "Sedan": 4, "Coupe": 3, "Wagon": 1}, facets.BodyTypes)
	assert.Equal(t, []string{"Coupe", "SUV", "Sedan", "Wagon"}, facets.BodyTypeNames)
	assert.Equal(t, []string{"Electric", "Gasoline", "Hybrid"}, facets.FuelTypeNames)
}

func TestInventoryReload(t *testing.T) {
	router, inventory := newTestRouter(t, 10)

	w := doRequest(t, router, http.MethodPost, "/api/v1/inventory/reload", "")
	require.Equal(t, http.StatusOK, w.Code)

	resp := decodeBody[reloadResponse](t, w)
	assert.Equal(t, uint64(2), resp.Version)
	assert.Equal(t, 12, resp.Vehicles)
	assert.Equal(t, uint64(2), inventory.Version())
}

func TestVehicleRoutes(t *testing.T) {
	router, _ := newTestRouter(t, 10)

	w := doRequest(t, router, http.MethodGet, "/api/v1/vehicles/2", "")
	require.Equal(t, http.StatusOK, w.Code)
	vehicle := decodeBody[domain.Vehicle](t, w)
	assert.Equal(t, "Tesla", vehicle.Make)
	require.NotNil(t, vehicle.ElectricRange)

	w = doRequest(t, router, http.MethodGet, "/api/v1/vehicles/999", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, router, http.MethodGet, "/api/v1/vehicles/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSimilarVehicles(t *testing.T) {
	router, _ := newTestRouter(t, 10)

	w := doRequest(t, router, http.MethodGet, "/api/v1/vehicles/1/similar", "")
	require.Equal(t, http.StatusOK, w.Code)
	similar := decodeBody[map[string][]domain.Vehicle](t, w)
	assert.Equal(t, []int{5, 7, 11, 12}, vehicleIDs(similar["vehicles"]))

	w = doRequest(t, router, http.MethodGet, "/api/v1/vehicles/1/similar?limit=2", "")
	require.Equal(t, http.StatusOK, w.Code)
	similar = decodeBody[map[string][]domain.Vehicle](t, w)
	assert.Equal(t, []int{5, 7}, vehicleIDs(similar["vehicles"]))

	w = doRequest(t, router, http.MethodGet, "/api/v1/vehicles/1/similar?limit=0", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, router, http.MethodGet, "/api/v1/vehicles/404/similar", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLoanRoutes(t *testing.T) {
	router, _ := newTestRouter(t, 10)

	w := doRequest(t, router, http.MethodPost, "/api/v1/loan/calculate",
		`{"vehiclePrice": 1300, "downPayment": 100, "interestRate": 0, "termMonths": 12}`)
	require.Equal(t, http.StatusOK, w.Code)
	financing := decodeBody[domain.FinancingResult](t, w)
	assert.Equal(t, 100.0, financing.MonthlyPayment)

	w = doRequest(t, router, http.MethodGet, "/api/v1/loan/calculate", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)

	w = doRequest(t, router, http.MethodPost, "/api/v1/loan/affordability",
		`{"monthlyIncome": 3000, "monthlyDebt": 1500, "creditTier": "poor", "loanTermMonths": 60}`)
	require.Equal(t, http.StatusOK, w.Code)
	estimate := decodeBody[domain.AffordabilityResult](t, w)
	assert.Equal(t, 50.0, estimate.DebtToIncomeRatio)
	assert.Equal(t, domain.ApprovalLow, estimate.ApprovalLikelihood.Level)
}

func TestRecommendTermRoute(t *testing.T) {
	router, _ := newTestRouter(t, 10)

	body := `{"vehiclePrice": 22000, "downPayment": 2000, "interestRate": 6,
		"minTermMonths": 36, "maxTermMonths": 48, "maxMonthlyPayment": 600, "preference": "balanced"}`

	w := doRequest(t, router, http.MethodPost, "/api/v1/loan/recommend-term", body)
	require.Equal(t, http.StatusOK, w.Code)
	result := decodeBody[domain.TermRecommendationResult](t, w)
	assert.Len(t, result.Recommendations, 12)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/loan/recommend-term", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)

	w = doRequest(t, router, http.MethodPost, "/api/v1/loan/recommend-term",
		`{"vehiclePrice": 22000, "downPayment": 2000, "interestRate": 6,
		"minTermMonths": 36, "maxTermMonths": 48, "maxMonthlyPayment": 10, "preference": "balanced"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = doRequest(t, router, http.MethodPost, "/api/v1/loan/recommend-term",
		`{"vehiclePrice": 22000, "downPayment": 2000, "interestRate": 6,
		"minTermMonths": 48, "maxTermMonths": 36, "maxMonthlyPayment": 600, "preference": "balanced"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoanRoutesAreRateLimited(t *testing.T) {
	router, _ := newTestRouter(t, 2)
	body := `{"vehiclePrice": 1300, "downPayment": 100, "interestRate": 0, "termMonths": 12}`

	for i := 0; i < 2; i++ {
		w := doRequest(t, router, http.MethodPost, "/api/v1/loan/calculate", body)
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := doRequest(t, router, http.MethodPost, "/api/v1/loan/calculate", body)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	// inventory routes are not limited
	w = doRequest(t, router, http.MethodGet, "/api/v1/inventory", "")
	assert.Equal(t, http.StatusOK, w.Code)
}
