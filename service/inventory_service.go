package service

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/sirupsen/logrus"

	"car-dealer/domain"
	"car-dealer/logger"
	"car-dealer/metrics"
	"car-dealer/repository"
)

// catalog is an immutable snapshot of the collection together with the
// aggregates derived from it.
type catalog struct {
	version   uint64
	loadedAt  time.Time
	vehicles  []domain.Vehicle
	ranges    domain.InventoryRanges
	makes     []string
	bodyTypes []string
	fuelTypes []string
	facets    domain.Facets
}

func newCatalog(version uint64, vehicles []domain.Vehicle) *catalog {
	return &catalog{
		version:   version,
		loadedAt:  time.Now(),
		vehicles:  vehicles,
		ranges:    Ranges(vehicles),
		makes:     Makes(vehicles),
		bodyTypes: BodyTypes(vehicles),
		fuelTypes: FuelTypes(vehicles),
		facets:    ComputeFacets(vehicles),
	}
}

// InventoryService serves queries against the current catalog snapshot.
// Readers never block; Reload swaps the snapshot atomically and drops
// every cached query result.
type InventoryService struct {
	source   repository.VehicleSource
	snapshot atomic.Pointer[catalog]
	queries  *expirable.LRU[string, domain.QueryResult]
	reloadMu sync.Mutex
	log      logrus.FieldLogger
}

// NewInventoryService starts with an empty catalog; call Reload to load
// the source.
func NewInventoryService(
	source repository.VehicleSource,
	cacheSize int,
	cacheTTL time.Duration,
	log logrus.FieldLogger,
) *InventoryService {
	s := &InventoryService{
		source:  source,
		queries: expirable.NewLRU[string, domain.QueryResult](cacheSize, nil, cacheTTL),
		log:     log,
	}
	s.snapshot.Store(newCatalog(0, []domain.Vehicle{}))
	return s
}

// Reload fetches the collection, validates it and publishes it as a new
// snapshot. On error the current snapshot stays in place.
func (s *InventoryService) Reload(ctx context.Context) error {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	log := logger.FromContext(ctx, s.log)

	vehicles, err := s.source.LoadVehicles(ctx)
	if err != nil {
		metrics.CatalogReloads.WithLabelValues("error").Inc()
		return fmt.Errorf("load vehicles: %w", err)
	}
	if err := ValidateVehicles(vehicles); err != nil {
		metrics.CatalogReloads.WithLabelValues("invalid").Inc()
		return fmt.Errorf("validate vehicles: %w", err)
	}

	next := newCatalog(s.snapshot.Load().version+1, vehicles)
	s.snapshot.Store(next)
	s.queries.Purge()

	metrics.CatalogReloads.WithLabelValues("ok").Inc()
	metrics.CatalogVehicles.Set(float64(len(vehicles)))
	log.WithFields(logrus.Fields{
		"version":  next.version,
		"vehicles": len(vehicles),
	}).Info("Inventory catalog loaded")
	return nil
}

// Version identifies the current snapshot; it increases on every
// successful reload.
func (s *InventoryService) Version() uint64 {
	return s.snapshot.Load().version
}

func (s *InventoryService) LoadedAt() time.Time {
	return s.snapshot.Load().loadedAt
}

func (s *InventoryService) Count() int {
	return len(s.snapshot.Load().vehicles)
}

// Query filters, sorts and paginates the current snapshot.
func (s *InventoryService) Query(ctx context.Context, q domain.InventoryQuery) domain.QueryResult {
	snap := s.snapshot.Load()
	key, err := queryCacheKey(snap.version, q)
	if err != nil {
		logger.FromContext(ctx, s.log).WithError(err).Warn("Inventory query is not cacheable")
		metrics.InventoryQueries.WithLabelValues("bypass").Inc()
		return QueryInventory(snap.vehicles, q.Filters, q.Sort, q.Page, q.PageSize)
	}

	if cached, ok := s.queries.Get(key); ok {
		metrics.InventoryQueries.WithLabelValues("hit").Inc()
		return cached
	}

	result := QueryInventory(snap.vehicles, q.Filters, q.Sort, q.Page, q.PageSize)
	// a reload may have happened meanwhile; only cache current-version results
	if s.snapshot.Load().version == snap.version {
		s.queries.Add(key, result)
	}
	metrics.InventoryQueries.WithLabelValues("miss").Inc()
	return result
}

func queryCacheKey(version uint64, q domain.InventoryQuery) (string, error) {
	encoded, err := json.Marshal(struct {
		Filters  domain.FilterCriteria
		Sort     domain.SortKey
		Page     int
		PageSize int
	}{q.Filters, q.Sort, q.Page, q.PageSize})
	if err != nil {
		return "", err
	}
	return strconv.FormatUint(version, 10) + ":" + string(encoded), nil
}

// Vehicle looks a record up by id.
func (s *InventoryService) Vehicle(id int) (domain.Vehicle, bool) {
	return FindByID(s.snapshot.Load().vehicles, id)
}

// Similar returns up to limit vehicles similar to the one with the given
// id. The boolean is false when that vehicle does not exist.
func (s *InventoryService) Similar(id, limit int) ([]domain.Vehicle, bool) {
	snap := s.snapshot.Load()
	target, ok := FindByID(snap.vehicles, id)
	if !ok {
		return nil, false
	}
	return SimilarVehicles(snap.vehicles, target, limit), true
}

func (s *InventoryService) Makes() []string {
	return slices.Clone(s.snapshot.Load().makes)
}

func (s *InventoryService) Models(vehicleMake string) []string {
	return Models(s.snapshot.Load().vehicles, vehicleMake)
}

func (s *InventoryService) BodyTypes() []string {
	return slices.Clone(s.snapshot.Load().bodyTypes)
}

func (s *InventoryService) FuelTypes() []string {
	return slices.Clone(s.snapshot.Load().fuelTypes)
}

func (s *InventoryService) Ranges() domain.InventoryRanges {
	return s.snapshot.Load().ranges
}

func (s *InventoryService) Facets() domain.Facets {
	f := s.snapshot.Load().facets
	return domain.Facets{
		BodyTypes: maps.Clone(f.BodyTypes),
		FuelTypes: maps.Clone(f.FuelTypes),
	}
}
