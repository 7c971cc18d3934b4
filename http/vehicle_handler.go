package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"car-dealer/domain"
	"car-dealer/service"
)

type VehicleHandler struct {
	service *service.InventoryService
	log     logrus.FieldLogger
}

func NewVehicleHandler(service *service.InventoryService, log logrus.FieldLogger) *VehicleHandler {
	return &VehicleHandler{service: service, log: log}
}

func (h *VehicleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.vehicleID(w, r)
	if !ok {
		return
	}

	vehicle, found := h.service.Vehicle(id)
	if !found {
		writeError(w, r, h.log, http.StatusNotFound, domain.ErrVehicleNotFound.Error(), nil)
		return
	}

	writeJSON(w, r, h.log, http.StatusOK, vehicle)
}

// Similar serves vehicles sharing the make or category, limit defaulting
// to four.
func (h *VehicleHandler) Similar(w http.ResponseWriter, r *http.Request) {
	id, ok := h.vehicleID(w, r)
	if !ok {
		return
	}

	limit := service.DefaultSimilarLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeError(w, r, h.log, http.StatusBadRequest, "invalid query parameters",
				map[string]string{"limit": "must be a positive integer"})
			return
		}
		limit = min(parsed, service.MaxPageSize)
	}

	similar, found := h.service.Similar(id, limit)
	if !found {
		writeError(w, r, h.log, http.StatusNotFound, domain.ErrVehicleNotFound.Error(), nil)
		return
	}

	writeJSON(w, r, h.log, http.StatusOK, map[string][]domain.Vehicle{"vehicles": similar})
}

func (h *VehicleHandler) vehicleID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.log, http.StatusBadRequest, "invalid vehicle id", nil)
		return 0, false
	}
	return id, true
}
