package district_test

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelcast/travelcast/internal/district"
)

const catalogJSON = `{
	"districts": [
		{"id": "1", "division_id": "3", "name": "Dhaka", "bn_name": "ঢাকা", "lat": "23.7115253", "long": "90.4111451"},
		{"id": "2", "division_id": "5", "name": "Sylhet", "bn_name": "সিলেট", "lat": "24.8897956", "long": "91.8697894"}
	]
}`

func TestLoadCatalog_CreatesDistricts(t *testing.T) {
	repo := district.NewInMemoryRepository()

	created, updated, err := district.LoadCatalog(context.Background(), repo, strings.NewReader(catalogJSON), zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, 2, created)
	assert.Equal(t, 0, updated)

	d, err := repo.GetDistrict(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Dhaka", d.Name)
	assert.Equal(t, "ঢাকা", d.NameBN)
	assert.Equal(t, 23.7115253, d.Lat)
	assert.Equal(t, 90.4111451, d.Lon)
	assert.Equal(t, int64(3), d.DivisionID)
}

func TestLoadCatalog_RerunUpdatesByName(t *testing.T) {
	repo := district.NewInMemoryRepository()

	_, _, err := district.LoadCatalog(context.Background(), repo, strings.NewReader(catalogJSON), zerolog.Nop())
	require.NoError(t, err)

	created, updated, err := district.LoadCatalog(context.Background(), repo, strings.NewReader(catalogJSON), zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, 0, created)
	assert.Equal(t, 2, updated)

	districts, err := repo.ListDistricts(context.Background())
	require.NoError(t, err)
	assert.Len(t, districts, 2, "reloading must not duplicate the catalog")
}

func TestLoadCatalog_SkipsInvalidEntries(t *testing.T) {
	input := `{
		"districts": [
			{"id": "1", "division_id": "3", "name": "Dhaka", "bn_name": "ঢাকা", "lat": "23.71", "long": "90.41"},
			{"id": "2", "division_id": "5", "name": "", "bn_name": "", "lat": "24.88", "long": "91.86"},
			{"id": "3", "division_id": "5", "name": "Moulvibazar", "bn_name": "মৌলভীবাজার", "lat": "not-a-number", "long": "91.77"}
		]
	}`

	repo := district.NewInMemoryRepository()

	created, updated, err := district.LoadCatalog(context.Background(), repo, strings.NewReader(input), zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, 1, created)
	assert.Equal(t, 0, updated)

	districts, err := repo.ListDistricts(context.Background())
	require.NoError(t, err)
	require.Len(t, districts, 1)
	assert.Equal(t, "Dhaka", districts[0].Name)
}

func TestLoadCatalog_MalformedJSON(t *testing.T) {
	repo := district.NewInMemoryRepository()

	_, _, err := district.LoadCatalog(context.Background(), repo, strings.NewReader(`{"districts": [`), zerolog.Nop())
	assert.Error(t, err)
}
