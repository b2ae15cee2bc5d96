package district

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository is a PostgreSQL implementation of Repository.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL district repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// ListDistricts retrieves the full catalog ordered by ID.
func (r *PostgresRepository) ListDistricts(ctx context.Context) ([]*District, error) {
	query := `
		SELECT id, name, name_bn, lat, lon, division_id
		FROM districts
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var districts []*District
	for rows.Next() {
		var d District
		if err := rows.Scan(&d.ID, &d.Name, &d.NameBN, &d.Lat, &d.Lon, &d.DivisionID); err != nil {
			return nil, err
		}
		districts = append(districts, &d)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return districts, nil
}

// GetDistrict retrieves a district by ID.
func (r *PostgresRepository) GetDistrict(ctx context.Context, id int64) (*District, error) {
	query := `
		SELECT id, name, name_bn, lat, lon, division_id
		FROM districts
		WHERE id = $1
	`

	var d District
	err := r.pool.QueryRow(ctx, query, id).Scan(&d.ID, &d.Name, &d.NameBN, &d.Lat, &d.Lon, &d.DivisionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDistrictNotFound
		}
		return nil, err
	}

	return &d, nil
}

// UpsertDistrict inserts or updates a catalog entry keyed by name.
func (r *PostgresRepository) UpsertDistrict(ctx context.Context, d *District) (bool, error) {
	query := `
		INSERT INTO districts (id, name, name_bn, lat, lon, division_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (name) DO UPDATE SET
			name_bn = EXCLUDED.name_bn,
			lat = EXCLUDED.lat,
			lon = EXCLUDED.lon,
			division_id = EXCLUDED.division_id
		RETURNING (xmax = 0) AS inserted
	`

	var inserted bool
	err := r.pool.QueryRow(ctx, query, d.ID, d.Name, d.NameBN, d.Lat, d.Lon, d.DivisionID).Scan(&inserted)
	if err != nil {
		return false, err
	}

	return inserted, nil
}

// ListSnapshots retrieves all metric snapshots with their district names.
func (r *PostgresRepository) ListSnapshots(ctx context.Context) ([]*MetricSnapshot, error) {
	query := `
		SELECT m.district_id, d.name, m.avg_temp_2pm, m.avg_pm25, m.updated_at
		FROM district_metrics m
		JOIN districts d ON d.id = m.district_id
		ORDER BY m.district_id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snapshots []*MetricSnapshot
	for rows.Next() {
		var s MetricSnapshot
		if err := rows.Scan(&s.DistrictID, &s.DistrictName, &s.AvgTemp2PM, &s.AvgPM25, &s.UpdatedAt); err != nil {
			return nil, err
		}
		snapshots = append(snapshots, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return snapshots, nil
}

// UpsertSnapshots writes all snapshots in a single transaction. Either every
// snapshot lands or none do.
func (r *PostgresRepository) UpsertSnapshots(ctx context.Context, snapshots []*MetricSnapshot) (int, int, error) {
	if len(snapshots) == 0 {
		return 0, 0, nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, 0, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	query := `
		INSERT INTO district_metrics (district_id, avg_temp_2pm, avg_pm25, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (district_id) DO UPDATE SET
			avg_temp_2pm = EXCLUDED.avg_temp_2pm,
			avg_pm25 = EXCLUDED.avg_pm25,
			updated_at = EXCLUDED.updated_at
		RETURNING (xmax = 0) AS inserted
	`

	var created, updated int
	for _, s := range snapshots {
		var inserted bool
		err := tx.QueryRow(ctx, query, s.DistrictID, s.AvgTemp2PM, s.AvgPM25, s.UpdatedAt).Scan(&inserted)
		if err != nil {
			return 0, 0, err
		}
		if inserted {
			created++
		} else {
			updated++
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, 0, err
	}

	return created, updated, nil
}

// Ensure PostgresRepository implements Repository interface.
var _ Repository = (*PostgresRepository)(nil)
