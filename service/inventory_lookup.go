package service

import (
	"fmt"
	"slices"
	"sort"

	"car-dealer/domain"
)

// Makes returns the distinct makes, sorted.
func Makes(records []domain.Vehicle) []string {
	return distinct(records, func(v domain.Vehicle) string { return v.Make })
}

// Models returns the distinct models of the given make, sorted.
func Models(records []domain.Vehicle, vehicleMake string) []string {
	ofMake := slices.DeleteFunc(slices.Clone(records), func(v domain.Vehicle) bool {
		return v.Make != vehicleMake
	})
	return distinct(ofMake, func(v domain.Vehicle) string { return v.Model })
}

func BodyTypes(records []domain.Vehicle) []string {
	return distinct(records, func(v domain.Vehicle) string { return v.BodyType })
}

func FuelTypes(records []domain.Vehicle) []string {
	return distinct(records, func(v domain.Vehicle) string { return v.FuelType })
}

func distinct(records []domain.Vehicle, field func(domain.Vehicle) string) []string {
	values := []string{}
	seen := make(map[string]struct{})
	for _, v := range records {
		key := field(v)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		values = append(values, key)
	}
	sort.Strings(values)
	return values
}

// Ranges returns the global price, year and mileage bounds. An empty
// collection yields zero ranges.
func Ranges(records []domain.Vehicle) domain.InventoryRanges {
	var r domain.InventoryRanges
	for i, v := range records {
		if i == 0 {
			r.Price = domain.FloatRange{Min: v.Price, Max: v.Price}
			r.Year = domain.IntRange{Min: v.Year, Max: v.Year}
			r.Mileage = domain.IntRange{Min: v.Mileage, Max: v.Mileage}
			continue
		}
		r.Price.Min = min(r.Price.Min, v.Price)
		r.Price.Max = max(r.Price.Max, v.Price)
		r.Year.Min = min(r.Year.Min, v.Year)
		r.Year.Max = max(r.Year.Max, v.Year)
		r.Mileage.Min = min(r.Mileage.Min, v.Mileage)
		r.Mileage.Max = max(r.Mileage.Max, v.Mileage)
	}
	return r
}

// ComputeFacets counts vehicles per body type and fuel type.
func ComputeFacets(records []domain.Vehicle) domain.Facets {
	f := domain.Facets{
		BodyTypes: make(map[string]int),
		FuelTypes: make(map[string]int),
	}
	for _, v := range records {
		f.BodyTypes[v.BodyType]++
		f.FuelTypes[v.FuelType]++
	}
	return f
}

// FindByID returns the record with the given id. The boolean is false when
// no record matches.
func FindByID(records []domain.Vehicle, id int) (domain.Vehicle, bool) {
	i := slices.IndexFunc(records, func(v domain.Vehicle) bool { return v.ID == id })
	if i < 0 {
		return domain.Vehicle{}, false
	}
	return records[i], true
}

// SimilarVehicles returns up to limit records sharing the target's make or
// category, in collection order, never including the target itself.
func SimilarVehicles(records []domain.Vehicle, target domain.Vehicle, limit int) []domain.Vehicle {
	similar := []domain.Vehicle{}
	if limit <= 0 {
		return similar
	}
	for _, v := range records {
		if v.ID == target.ID {
			continue
		}
		if v.Make != target.Make && v.Category != target.Category {
			continue
		}
		similar = append(similar, v)
		if len(similar) == limit {
			break
		}
	}
	return similar
}

// ValidateVehicles checks collection invariants: unique ids and
// non-negative price, mileage and year.
func ValidateVehicles(records []domain.Vehicle) error {
	ids := make(map[int]struct{}, len(records))
	for _, v := range records {
		if _, dup := ids[v.ID]; dup {
			return fmt.Errorf("%w: %d", domain.ErrDuplicateID, v.ID)
		}
		ids[v.ID] = struct{}{}

		if v.Price < 0 || v.Mileage < 0 || v.Year < 0 {
			return fmt.Errorf("%w: id %d has a negative price, mileage or year", domain.ErrInvalidVehicle, v.ID)
		}
	}
	return nil
}
