package district

import (
	"context"
	"sort"
	"sync"
)

// InMemoryRepository is an in-memory implementation of Repository.
// This is intended for testing. Production should use PostgresRepository.
type InMemoryRepository struct {
	mu        sync.RWMutex
	districts map[int64]*District
	snapshots map[int64]*MetricSnapshot
}

// NewInMemoryRepository creates a new in-memory district repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		districts: make(map[int64]*District),
		snapshots: make(map[int64]*MetricSnapshot),
	}
}

// ListDistricts retrieves the full catalog ordered by ID.
func (r *InMemoryRepository) ListDistricts(_ context.Context) ([]*District, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	districts := make([]*District, 0, len(r.districts))
	for _, d := range r.districts {
		cpy := *d
		districts = append(districts, &cpy)
	}

	sort.Slice(districts, func(i, j int) bool {
		return districts[i].ID < districts[j].ID
	})

	return districts, nil
}

// GetDistrict retrieves a district by ID.
func (r *InMemoryRepository) GetDistrict(_ context.Context, id int64) (*District, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.districts[id]
	if !ok {
		return nil, ErrDistrictNotFound
	}

	// Return a copy
	cpy := *d
	return &cpy, nil
}

// UpsertDistrict inserts or updates a catalog entry keyed by name.
func (r *InMemoryRepository) UpsertDistrict(_ context.Context, d *District) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, existing := range r.districts {
		if existing.Name == d.Name {
			cpy := *d
			cpy.ID = existing.ID
			r.districts[id] = &cpy
			return false, nil
		}
	}

	cpy := *d
	r.districts[d.ID] = &cpy
	return true, nil
}

// ListSnapshots retrieves all metric snapshots.
func (r *InMemoryRepository) ListSnapshots(_ context.Context) ([]*MetricSnapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshots := make([]*MetricSnapshot, 0, len(r.snapshots))
	for _, s := range r.snapshots {
		cpy := *s
		snapshots = append(snapshots, &cpy)
	}

	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].DistrictID < snapshots[j].DistrictID
	})

	return snapshots, nil
}

// UpsertSnapshots writes all snapshots atomically under one lock.
func (r *InMemoryRepository) UpsertSnapshots(_ context.Context, snapshots []*MetricSnapshot) (int, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var created, updated int
	for _, s := range snapshots {
		cpy := *s
		if _, ok := r.snapshots[s.DistrictID]; ok {
			updated++
		} else {
			created++
		}
		r.snapshots[s.DistrictID] = &cpy
	}

	return created, updated, nil
}

// Ensure InMemoryRepository implements Repository interface.
var _ Repository = (*InMemoryRepository)(nil)
