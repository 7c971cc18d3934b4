package http

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"car-dealer/service"
)

type HealthResponse struct {
	Status         string    `json:"status"`
	CatalogVersion uint64    `json:"catalogVersion"`
	Vehicles       int       `json:"vehicles"`
	LoadedAt       time.Time `json:"loadedAt"`
}

// HandleHealthz is a liveness check that also reports the served catalog.
func HandleHealthz(inventory *service.InventoryService, log logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, log, http.StatusOK, HealthResponse{
			Status:         "ok",
			CatalogVersion: inventory.Version(),
			Vehicles:       inventory.Count(),
			LoadedAt:       inventory.LoadedAt(),
		})
	}
}
