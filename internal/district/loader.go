package district

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// catalogFile matches the bd-districts.json layout. All fields are strings
// in the source data, including numeric ones.
type catalogFile struct {
	Districts []catalogEntry `json:"districts"`
}

type catalogEntry struct {
	ID         string `json:"id"`
	DivisionID string `json:"division_id"`
	Name       string `json:"name"`
	NameBN     string `json:"bn_name"`
	Lat        string `json:"lat"`
	Lon        string `json:"long"`
}

// LoadCatalog reads a district catalog and upserts every valid entry keyed
// by name. Rows with a missing name or unparseable numeric fields are
// skipped with a warning rather than failing the load. Returns how many
// districts were created versus updated.
func LoadCatalog(ctx context.Context, repo Repository, r io.Reader, logger zerolog.Logger) (int, int, error) {
	var file catalogFile
	if err := json.NewDecoder(r).Decode(&file); err != nil {
		return 0, 0, fmt.Errorf("decode catalog: %w", err)
	}

	var created, updated int
	for _, entry := range file.Districts {
		d, err := entry.toDistrict()
		if err != nil {
			logger.Warn().
				Str("name", entry.Name).
				Err(err).
				Msg("skipping invalid catalog entry")
			continue
		}

		inserted, err := repo.UpsertDistrict(ctx, d)
		if err != nil {
			return created, updated, fmt.Errorf("upsert district %q: %w", d.Name, err)
		}
		if inserted {
			created++
		} else {
			updated++
		}
	}

	logger.Info().
		Int("created", created).
		Int("updated", updated).
		Msg("district catalog loaded")

	return created, updated, nil
}

// toDistrict parses the string-typed catalog fields.
func (e catalogEntry) toDistrict() (*District, error) {
	name := strings.TrimSpace(e.Name)
	if name == "" {
		return nil, fmt.Errorf("empty name")
	}

	id, err := strconv.ParseInt(e.ID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse id %q: %w", e.ID, err)
	}

	divisionID, err := strconv.ParseInt(e.DivisionID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse division_id %q: %w", e.DivisionID, err)
	}

	lat, err := strconv.ParseFloat(e.Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("parse lat %q: %w", e.Lat, err)
	}

	lon, err := strconv.ParseFloat(e.Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("parse long %q: %w", e.Lon, err)
	}

	return &District{
		ID:         id,
		Name:       name,
		NameBN:     e.NameBN,
		Lat:        lat,
		Lon:        lon,
		DivisionID: divisionID,
	}, nil
}
