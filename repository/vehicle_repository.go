package repository

import (
	"context"

	"car-dealer/domain"
)

// VehicleSource supplies the full vehicle collection.
type VehicleSource interface {
	LoadVehicles(ctx context.Context) ([]domain.Vehicle, error)
}
