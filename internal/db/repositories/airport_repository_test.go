package repositories

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecofly/radar/internal/db"
	"ecofly/radar/internal/models/gorm"
)

func newRepo(t *testing.T) *AirportRepository {
	t.Helper()
	orm, err := db.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()), nil)
	require.NoError(t, err)
	return NewAirportRepository(orm)
}

func TestAirportRepositoryUpsertAndFind(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	require.NoError(t, repo.Upsert(ctx, []gorm.Airport{
		{IATA: "LHR", City: "London", Latitude: 51.47, Longitude: -0.45},
		{IATA: "JFK", City: "New York", Latitude: 40.64, Longitude: -73.78},
	}))
	require.NoError(t, repo.Upsert(ctx, []gorm.Airport{
		{IATA: "LHR", City: "London Heathrow", Latitude: 51.47, Longitude: -0.45},
	}))

	got, err := repo.FindByIATA(ctx, "lhr")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "London Heathrow", got.City)

	missing, err := repo.FindByIATA(ctx, "XXX")
	require.NoError(t, err)
	assert.Nil(t, missing)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "JFK", list[0].IATA)

	require.NoError(t, repo.DeleteAll(ctx))
	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}
