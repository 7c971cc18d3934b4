package service

import "car-dealer/domain"

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

// testVehicles mixes equal prices/years to exercise stable ordering.
func testVehicles() []domain.Vehicle {
	rng := 405
	return []domain.Vehicle{
		{ID: 1, Make: "BMW", Model: "X5", Year: 2024, Price: 67900, Category: "SUV", BodyType: "SUV", FuelType: "Gasoline", Transmission: "Automatic", Drivetrain: "AWD", Mileage: 15420, Color: "Alpine White"},
		{ID: 2, Make: "Tesla", Model: "Model S", Year: 2023, Price: 89900, Category: "Sedan", BodyType: "Sedan", FuelType: "Electric", Transmission: "Single Speed", Drivetrain: "AWD", Mileage: 8250, Color: "Midnight Silver", ElectricRange: &rng},
		{ID: 3, Make: "audi", Model: "A4", Year: 2023, Price: 48500, Category: "Sedan", BodyType: "Sedan", FuelType: "Gasoline", Transmission: "Automatic", Drivetrain: "AWD", Mileage: 18340, Color: "Mythos Black"},
		{ID: 4, Make: "Toyota", Model: "Camry", Year: 2024, Price: 32900, Category: "Sedan", BodyType: "Sedan", FuelType: "Hybrid", Transmission: "CVT", Drivetrain: "FWD", Mileage: 8420, Color: "Super White"},
		{ID: 5, Make: "Jeep", Model: "Wrangler", Year: 2023, Price: 48500, Category: "SUV", BodyType: "SUV", FuelType: "Gasoline", Transmission: "Automatic", Drivetrain: "4WD", Mileage: 12450, Color: "Granite Crystal"},
		{ID: 6, Make: "BMW", Model: "M4", Year: 2022, Price: 74900, Category: "Sports Car", BodyType: "Coupe", FuelType: "Gasoline", Transmission: "Manual", Drivetrain: "RWD", Mileage: 21000, Color: "Isle of Man Green"},
		{ID: 7, Make: "Subaru", Model: "Outback", Year: 2024, Price: 39900, Category: "SUV", BodyType: "Wagon", FuelType: "Gasoline", Transmission: "CVT", Drivetrain: "AWD", Mileage: 7820, Color: "Crystal White"},
	}
}

func ids(vehicles []domain.Vehicle) []int {
	out := make([]int, len(vehicles))
	for i, v := range vehicles {
		out[i] = v.ID
	}
	return out
}
