package district

import "context"

// Repository defines the interface for district and metric persistence.
type Repository interface {
	// ListDistricts retrieves the full catalog in stable (ID ascending)
	// order.
	ListDistricts(ctx context.Context) ([]*District, error)

	// GetDistrict retrieves a district by ID.
	// Returns ErrDistrictNotFound if it doesn't exist.
	GetDistrict(ctx context.Context, id int64) (*District, error)

	// UpsertDistrict inserts or updates a catalog entry keyed by name.
	// Returns true when a new row was created.
	UpsertDistrict(ctx context.Context, d *District) (bool, error)

	// ListSnapshots retrieves all metric snapshots.
	ListSnapshots(ctx context.Context) ([]*MetricSnapshot, error)

	// UpsertSnapshots writes all snapshots in a single transaction: either
	// every snapshot lands or none do. Returns how many rows were created
	// versus updated.
	UpsertSnapshots(ctx context.Context, snapshots []*MetricSnapshot) (created, updated int, err error)
}
