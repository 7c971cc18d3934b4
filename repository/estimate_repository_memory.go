package repository

import (
	"sync"
	"time"

	"car-dealer/domain"
)

// EstimateRecord is one logged estimate.
type EstimateRecord struct {
	Input     domain.AffordabilityInput
	Result    domain.AffordabilityResult
	CreatedAt time.Time
}

// EstimateRepositoryMemory is an in-memory implementation of
// EstimateRepository. It keeps at most limit records, dropping the oldest.
type EstimateRepositoryMemory struct {
	mu    sync.Mutex
	limit int
	data  []EstimateRecord
}

// NewEstimateRepositoryMemory creates a new in-memory estimate log.
// A non-positive limit keeps everything.
func NewEstimateRepositoryMemory(limit int) *EstimateRepositoryMemory {
	return &EstimateRepositoryMemory{
		limit: limit,
		data:  []EstimateRecord{},
	}
}

// Save stores the estimate in memory.
func (r *EstimateRepositoryMemory) Save(
	input domain.AffordabilityInput,
	result domain.AffordabilityResult,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.data = append(r.data, EstimateRecord{Input: input, Result: result, CreatedAt: time.Now()})
	if r.limit > 0 && len(r.data) > r.limit {
		r.data = r.data[len(r.data)-r.limit:]
	}
	return nil
}

// Recent returns a copy of the stored records, oldest first.
func (r *EstimateRepositoryMemory) Recent() []EstimateRecord {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]EstimateRecord, len(r.data))
	copy(out, r.data)
	return out
}
