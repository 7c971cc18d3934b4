package domain

// Vehicle is a single inventory record. Records are supplied by a
// VehicleSource and never mutated once loaded.
type Vehicle struct {
	ID             int      `json:"id"`
	Make           string   `json:"make"`
	Model          string   `json:"model"`
	Year           int      `json:"year"`
	Price          float64  `json:"price"`
	MonthlyPayment float64  `json:"monthlyPayment"`
	Category       string   `json:"category"`
	BodyType       string   `json:"bodyType"`
	FuelType       string   `json:"fuelType"`
	Transmission   string   `json:"transmission"`
	Drivetrain     string   `json:"drivetrain"`
	Mileage        int      `json:"mileage"`
	Color          string   `json:"color"`
	ElectricRange  *int     `json:"range,omitempty"` // only for electric vehicles
	Engine         string   `json:"engine,omitempty"`
	Horsepower     int      `json:"horsepower,omitempty"`
	MPG            string   `json:"mpg,omitempty"`
	Interior       string   `json:"interior,omitempty"`
	VIN            string   `json:"vin,omitempty"`
	Condition      string   `json:"condition,omitempty"`
	Features       []string `json:"features,omitempty"`
	SafetyRating   int      `json:"safetyRating,omitempty"`
	Image          string   `json:"image,omitempty"`
	Images         []string `json:"images,omitempty"`
	Description    string   `json:"description,omitempty"`
	Location       string   `json:"location,omitempty"`
	Availability   string   `json:"availability,omitempty"`
}

// FilterCriteria holds the inventory filters.
// Zero values (empty string, empty slice, nil pointer) impose no constraint.
type FilterCriteria struct {
	Make         string   `json:"make,omitempty"`
	Model        string   `json:"model,omitempty"`
	BodyTypes    []string `json:"bodyTypes,omitempty"`
	FuelTypes    []string `json:"fuelTypes,omitempty"`
	Transmission string   `json:"transmission,omitempty"`
	Drivetrain   string   `json:"drivetrain,omitempty"`
	MinPrice     *float64 `json:"minPrice,omitempty"`
	MaxPrice     *float64 `json:"maxPrice,omitempty"`
	MinYear      *int     `json:"minYear,omitempty"`
	MaxYear      *int     `json:"maxYear,omitempty"`
	MaxMileage   *int     `json:"maxMileage,omitempty"`
	Search       string   `json:"search,omitempty"`
}

// SortKey selects the ordering of query results.
type SortKey string

const (
	SortNone        SortKey = ""
	SortPriceLow    SortKey = "price-low"
	SortPriceHigh   SortKey = "price-high"
	SortYearNew     SortKey = "year-new"
	SortYearOld     SortKey = "year-old"
	SortMileageLow  SortKey = "mileage-low"
	SortMileageHigh SortKey = "mileage-high"
	SortMake        SortKey = "make"
	SortModel       SortKey = "model"
)

// ParseSortKey maps a raw value to a SortKey. Unknown values fall back to
// SortNone, which keeps input order.
func ParseSortKey(s string) SortKey {
	switch k := SortKey(s); k {
	case SortPriceLow, SortPriceHigh, SortYearNew, SortYearOld,
		SortMileageLow, SortMileageHigh, SortMake, SortModel:
		return k
	}
	return SortNone
}

// InventoryStats are computed over the full filtered set, not the page.
type InventoryStats struct {
	Count         int     `json:"count"`
	AveragePrice  float64 `json:"avgPrice"`
	DistinctMakes int     `json:"distinctMakes"`
}

// QueryResult is one page of a filtered and sorted inventory.
type QueryResult struct {
	Items        []Vehicle      `json:"items"`
	TotalMatched int            `json:"totalMatched"`
	TotalPages   int            `json:"totalPages"`
	Page         int            `json:"page"`
	PageSize     int            `json:"pageSize"`
	Stats        InventoryStats `json:"stats"`
}

// InventoryQuery bundles the arguments of a query call.
type InventoryQuery struct {
	Filters  FilterCriteria
	Sort     SortKey
	Page     int
	PageSize int
}

type FloatRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type IntRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// InventoryRanges are the global bounds across the whole collection.
type InventoryRanges struct {
	Price   FloatRange `json:"price"`
	Year    IntRange   `json:"year"`
	Mileage IntRange   `json:"mileage"`
}

// Facets counts vehicles per body type and fuel type across the whole
// collection.
type Facets struct {
	BodyTypes map[string]int `json:"bodyTypes"`
	FuelTypes map[string]int `json:"fuelTypes"`
}
