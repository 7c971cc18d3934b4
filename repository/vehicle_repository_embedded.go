package repository

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"car-dealer/domain"
)

//go:embed data/vehicles.json
var embeddedVehicles []byte

// VehicleRepositoryEmbedded serves the showroom dataset compiled into the
// binary, or any JSON document with the same shape.
type VehicleRepositoryEmbedded struct {
	raw []byte
}

// NewVehicleRepositoryEmbedded returns a source backed by the bundled
// dataset.
func NewVehicleRepositoryEmbedded() *VehicleRepositoryEmbedded {
	return &VehicleRepositoryEmbedded{raw: embeddedVehicles}
}

// NewVehicleRepositoryJSON returns a source backed by raw, a JSON array of
// vehicles.
func NewVehicleRepositoryJSON(raw []byte) *VehicleRepositoryEmbedded {
	return &VehicleRepositoryEmbedded{raw: raw}
}

// LoadVehicles decodes a fresh copy of the dataset on every call.
func (r *VehicleRepositoryEmbedded) LoadVehicles(ctx context.Context) ([]domain.Vehicle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var vehicles []domain.Vehicle
	if err := json.Unmarshal(r.raw, &vehicles); err != nil {
		return nil, fmt.Errorf("decode vehicle dataset: %w", err)
	}
	return vehicles, nil
}
