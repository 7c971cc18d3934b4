package repository

import "car-dealer/domain"

// EstimateRepository records affordability estimates.
type EstimateRepository interface {
	Save(input domain.AffordabilityInput, result domain.AffordabilityResult) error
}
