package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"car-dealer/domain"
)

const selectVehiclesQuery = `
SELECT id, make, model, year, price, monthly_payment, category, body_type,
       fuel_type, transmission, drivetrain, mileage, color, electric_range,
       engine, horsepower, mpg, interior, vin, condition, features,
       safety_rating, image, images, description, location, availability
FROM vehicles
ORDER BY id`

// VehicleRepositoryPostgres reads the inventory from a "vehicles" table.
type VehicleRepositoryPostgres struct {
	db *sql.DB
}

func NewVehicleRepositoryPostgres(db *sql.DB) *VehicleRepositoryPostgres {
	return &VehicleRepositoryPostgres{db: db}
}

// LoadVehicles returns every row ordered by id, which becomes the
// collection order.
func (r *VehicleRepositoryPostgres) LoadVehicles(ctx context.Context) ([]domain.Vehicle, error) {
	rows, err := r.db.QueryContext(ctx, selectVehiclesQuery)
	if err != nil {
		return nil, fmt.Errorf("query vehicles: %w", err)
	}
	defer rows.Close()

	vehicles := []domain.Vehicle{}
	for rows.Next() {
		var (
			v             domain.Vehicle
			electricRange sql.NullInt64
			engine        sql.NullString
			horsepower    sql.NullInt64
			mpg           sql.NullString
			interior      sql.NullString
			vin           sql.NullString
			condition     sql.NullString
			safetyRating  sql.NullInt64
			image         sql.NullString
			description   sql.NullString
			location      sql.NullString
			availability  sql.NullString
		)
		if err := rows.Scan(
			&v.ID, &v.Make, &v.Model, &v.Year, &v.Price, &v.MonthlyPayment,
			&v.Category, &v.BodyType, &v.FuelType, &v.Transmission, &v.Drivetrain,
			&v.Mileage, &v.Color, &electricRange,
			&engine, &horsepower, &mpg, &interior, &vin, &condition, pq.Array(&v.Features),
			&safetyRating, &image, pq.Array(&v.Images), &description, &location, &availability,
		); err != nil {
			return nil, fmt.Errorf("scan vehicle: %w", err)
		}

		if electricRange.Valid {
			rng := int(electricRange.Int64)
			v.ElectricRange = &rng
		}
		v.Engine = engine.String
		v.Horsepower = int(horsepower.Int64)
		v.MPG = mpg.String
		v.Interior = interior.String
		v.VIN = vin.String
		v.Condition = condition.String
		v.SafetyRating = int(safetyRating.Int64)
		v.Image = image.String
		v.Description = description.String
		v.Location = location.String
		v.Availability = availability.String

		vehicles = append(vehicles, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate vehicles: %w", err)
	}
	return vehicles, nil
}
