package http

import (
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"car-dealer/domain"
	"car-dealer/logger"
	"car-dealer/service"
)

type InventoryHandler struct {
	service *service.InventoryService
	log     logrus.FieldLogger
}

func NewInventoryHandler(service *service.InventoryService, log logrus.FieldLogger) *InventoryHandler {
	return &InventoryHandler{service: service, log: log}
}

// Query serves GET /inventory. Numeric parameters that fail to parse are
// rejected; an unknown sort keeps collection order.
func (h *InventoryHandler) Query(w http.ResponseWriter, r *http.Request) {
	q, problems := parseInventoryQuery(r.URL.Query())
	if len(problems) > 0 {
		writeError(w, r, h.log, http.StatusBadRequest, "invalid query parameters", problems)
		return
	}

	writeJSON(w, r, h.log, http.StatusOK, h.service.Query(r.Context(), q))
}

func (h *InventoryHandler) Makes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, h.log, http.StatusOK, map[string][]string{"makes": h.service.Makes()})
}

func (h *InventoryHandler) Models(w http.ResponseWriter, r *http.Request) {
	vehicleMake := chi.URLParam(r, "make")
	if unescaped, err := url.PathUnescape(vehicleMake); err == nil {
		vehicleMake = unescaped
	}
	writeJSON(w, r, h.log, http.StatusOK, map[string]any{
		"make":   vehicleMake,
		"models": h.service.Models(vehicleMake),
	})
}

func (h *InventoryHandler) Ranges(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, h.log, http.StatusOK, h.service.Ranges())
}

type facetsResponse struct {
	domain.Facets
	BodyTypeNames []string `json:"bodyTypeNames"`
	FuelTypeNames []string `json:"fuelTypeNames"`
}

func (h *InventoryHandler) Facets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, h.log, http.StatusOK, facetsResponse{
		Facets:        h.service.Facets(),
		BodyTypeNames: h.service.BodyTypes(),
		FuelTypeNames: h.service.FuelTypes(),
	})
}

type reloadResponse struct {
	Version  uint64    `json:"version"`
	Vehicles int       `json:"vehicles"`
	LoadedAt time.Time `json:"loadedAt"`
}

// Reload re-reads the inventory source. A failed reload leaves the served
// catalog untouched and answers 503.
func (h *InventoryHandler) Reload(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Reload(r.Context()); err != nil {
		logger.FromContext(r.Context(), h.log).WithError(err).Error("Inventory reload failed")
		writeError(w, r, h.log, http.StatusServiceUnavailable, "inventory reload failed", nil)
		return
	}

	writeJSON(w, r, h.log, http.StatusOK, reloadResponse{
		Version:  h.service.Version(),
		Vehicles: h.service.Count(),
		LoadedAt: h.service.LoadedAt(),
	})
}

func parseInventoryQuery(values url.Values) (domain.InventoryQuery, map[string]string) {
	problems := make(map[string]string)

	q := domain.InventoryQuery{
		Filters: domain.FilterCriteria{
			Make:         strings.TrimSpace(values.Get("make")),
			Model:        strings.TrimSpace(values.Get("model")),
			BodyTypes:    listParam(values, "bodyType"),
			FuelTypes:    listParam(values, "fuelType"),
			Transmission: strings.TrimSpace(values.Get("transmission")),
			Drivetrain:   strings.TrimSpace(values.Get("drivetrain")),
			Search:       values.Get("search"),
		},
		Sort:     domain.ParseSortKey(values.Get("sort")),
		Page:     1,
		PageSize: service.DefaultPageSize,
	}

	q.Filters.MinPrice = floatParam(values, "minPrice", problems)
	q.Filters.MaxPrice = floatParam(values, "maxPrice", problems)
	q.Filters.MinYear = intParam(values, "minYear", problems)
	q.Filters.MaxYear = intParam(values, "maxYear", problems)
	q.Filters.MaxMileage = intParam(values, "maxMileage", problems)

	if page := intParam(values, "page", problems); page != nil {
		if *page < 1 {
			problems["page"] = "must be at least 1"
		} else {
			q.Page = *page
		}
	}
	if size := intParam(values, "pageSize", problems); size != nil {
		if *size < 1 {
			problems["pageSize"] = "must be at least 1"
		} else {
			q.PageSize = min(*size, service.MaxPageSize)
		}
	}

	return q, problems
}

// listParam accepts both repeated keys and comma separated values.
func listParam(values url.Values, key string) []string {
	var out []string
	for _, raw := range values[key] {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func floatParam(values url.Values, key string, problems map[string]string) *float64 {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		problems[key] = "must be a finite number"
		return nil
	}
	return &v
}

func intParam(values url.Values, key string, problems map[string]string) *int {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		problems[key] = "must be an integer"
		return nil
	}
	return &v
}
