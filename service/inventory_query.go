package service

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"car-dealer/domain"
)

// QueryInventory filters, sorts and paginates records. It never fails:
// out-of-range pages produce an empty page, and statistics always cover
// the full filtered set.
func QueryInventory(
	records []domain.Vehicle,
	filters domain.FilterCriteria,
	sortKey domain.SortKey,
	page, pageSize int,
) domain.QueryResult {
	matched := FilterVehicles(records, filters)
	sorted := SortVehicles(matched, sortKey)

	result := domain.QueryResult{
		Items:        Paginate(sorted, page, pageSize),
		TotalMatched: len(sorted),
		Page:         page,
		PageSize:     pageSize,
		Stats:        ComputeStats(sorted),
	}
	if pageSize > 0 {
		result.TotalPages = pageCount(len(sorted), pageSize)
	}
	return result
}

// FilterVehicles returns, in input order, the records that satisfy every
// set criterion.
func FilterVehicles(records []domain.Vehicle, f domain.FilterCriteria) []domain.Vehicle {
	search := strings.ToLower(strings.TrimSpace(f.Search))

	out := make([]domain.Vehicle, 0, len(records))
	for _, v := range records {
		if matches(v, f, search) {
			out = append(out, v)
		}
	}
	return out
}

func matches(v domain.Vehicle, f domain.FilterCriteria, search string) bool {
	if f.Make != "" && v.Make != f.Make {
		return false
	}
	if f.Model != "" && v.Model != f.Model {
		return false
	}
	if len(f.BodyTypes) > 0 && !slices.Contains(f.BodyTypes, v.BodyType) {
		return false
	}
	if len(f.FuelTypes) > 0 && !slices.Contains(f.FuelTypes, v.FuelType) {
		return false
	}
	if f.Transmission != "" && v.Transmission != f.Transmission {
		return false
	}
	if f.Drivetrain != "" && v.Drivetrain != f.Drivetrain {
		return false
	}
	if f.MinPrice != nil && v.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && v.Price > *f.MaxPrice {
		return false
	}
	if f.MinYear != nil && v.Year < *f.MinYear {
		return false
	}
	if f.MaxYear != nil && v.Year > *f.MaxYear {
		return false
	}
	if f.MaxMileage != nil && v.Mileage > *f.MaxMileage {
		return false
	}
	if search != "" && !matchesSearch(v, search) {
		return false
	}
	return true
}

// matchesSearch expects term to be lower-cased already.
func matchesSearch(v domain.Vehicle, term string) bool {
	return strings.Contains(strings.ToLower(v.Make), term) ||
		strings.Contains(strings.ToLower(v.Model), term) ||
		strings.Contains(strconv.Itoa(v.Year), term) ||
		strings.Contains(strings.ToLower(v.Color), term)
}

// SortVehicles returns a sorted copy of records. The sort is stable and
// SortNone (or any unknown key) keeps input order.
func SortVehicles(records []domain.Vehicle, key domain.SortKey) []domain.Vehicle {
	sorted := slices.Clone(records)

	var compare func(a, b domain.Vehicle) int
	switch key {
	case domain.SortPriceLow:
		compare = func(a, b domain.Vehicle) int { return cmp.Compare(a.Price, b.Price) }
	case domain.SortPriceHigh:
		compare = func(a, b domain.Vehicle) int { return cmp.Compare(b.Price, a.Price) }
	case domain.SortYearNew:
		compare = func(a, b domain.Vehicle) int { return cmp.Compare(b.Year, a.Year) }
	case domain.SortYearOld:
		compare = func(a, b domain.Vehicle) int { return cmp.Compare(a.Year, b.Year) }
	case domain.SortMileageLow:
		compare = func(a, b domain.Vehicle) int { return cmp.Compare(a.Mileage, b.Mileage) }
	case domain.SortMileageHigh:
		compare = func(a, b domain.Vehicle) int { return cmp.Compare(b.Mileage, a.Mileage) }
	case domain.SortMake:
		// Collators keep internal buffers; one per call.
		c := collate.New(language.English)
		compare = func(a, b domain.Vehicle) int { return c.CompareString(a.Make, b.Make) }
	case domain.SortModel:
		c := collate.New(language.English)
		compare = func(a, b domain.Vehicle) int { return c.CompareString(a.Model, b.Model) }
	default:
		return sorted
	}

	slices.SortStableFunc(sorted, compare)
	return sorted
}

// Paginate returns the 1-based page of records. Invalid or out-of-range
// arguments yield an empty, non-nil slice.
func Paginate(records []domain.Vehicle, page, pageSize int) []domain.Vehicle {
	if page < 1 || pageSize < 1 {
		return []domain.Vehicle{}
	}
	// compare before multiplying so huge pages cannot overflow
	if page > pageCount(len(records), pageSize) {
		return []domain.Vehicle{}
	}
	start := (page - 1) * pageSize
	end := min(start+pageSize, len(records))
	return slices.Clone(records[start:end])
}

func pageCount(total, pageSize int) int {
	pages := total / pageSize
	if total%pageSize != 0 {
		pages++
	}
	return pages
}

// ComputeStats aggregates over the given (filtered) records.
func ComputeStats(records []domain.Vehicle) domain.InventoryStats {
	stats := domain.InventoryStats{Count: len(records)}
	if len(records) == 0 {
		return stats
	}

	total := 0.0
	makes := make(map[string]struct{})
	for _, v := range records {
		total += v.Price
		makes[v.Make] = struct{}{}
	}
	stats.AveragePrice = roundTo2Decimals(total / float64(len(records)))
	stats.DistinctMakes = len(makes)
	return stats
}
