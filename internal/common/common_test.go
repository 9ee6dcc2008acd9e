package common

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecofly/radar/internal/db"
)

func TestMemoryCacheGetOrSet(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	calls := 0
	load := func() (any, error) {
		calls++
		return 42.0, nil
	}

	v, err := c.GetOrSet("k", time.Minute, load)
	require.NoError(t, err)
	assert.Equal(t, 42.0, v)
	v, err = c.GetOrSet("k", time.Minute, load)
	require.NoError(t, err)
	assert.Equal(t, 42.0, v)
	assert.Equal(t, 1, calls)

	_, err = c.GetOrSet("bad", time.Minute, func() (any, error) { return nil, errors.New("boom") })
	assert.Error(t, err)
	_, found := c.Get("bad")
	assert.False(t, found, "failed loads are not cached")

	c.Delete("k")
	assert.Equal(t, 0, c.ItemCount())
}

func TestNewCacheBackends(t *testing.T) {
	c, err := NewCache("", nil, nil)
	require.NoError(t, err)
	assert.IsType(t, &MemoryCache{}, c)

	_, err = NewCache(CacheBackendRedis, nil, nil)
	assert.Error(t, err)
	_, err = NewCache("memcached", nil, nil)
	assert.Error(t, err)
}

func TestNewRedisClientRequiresAddr(t *testing.T) {
	_, err := NewRedisClient(context.Background(), RedisOptions{}, nil)
	assert.Error(t, err)
}

func openCatalog(t *testing.T) *AirportLoader {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	gdb, err := db.Open(dsn, nil)
	require.NoError(t, err)
	return NewAirportLoader(gdb, nil)
}

func TestAirportLoaderSeedsDefaults(t *testing.T) {
	l := openCatalog(t)
	ctx := context.Background()

	n, err := l.SeedDefaults(ctx)
	require.NoError(t, err)
	assert.Equal(t, 14, n)

	n, err = l.SeedDefaults(ctx)
	require.NoError(t, err)
	assert.Zero(t, n, "non-empty store is left alone")

	airports, err := l.Airports(ctx)
	require.NoError(t, err)
	assert.Equal(t, 14, airports.Len())
	lhr, ok := airports.Lookup("lhr")
	require.True(t, ok)
	assert.Equal(t, "London", lhr.City)
}

func TestAirportLoaderFromJSON(t *testing.T) {
	l := openCatalog(t)
	ctx := context.Background()
	_, err := l.SeedDefaults(ctx)
	require.NoError(t, err)

	doc := `{
		"EGLL": {"icao": "EGLL", "iata": "lhr", "name": "Heathrow", "city": "London Heathrow", "country": "GB", "lat": 51.47, "lon": -0.4543},
		"LEMD": {"icao": "LEMD", "iata": "MAD", "name": "Barajas", "city": "Madrid", "country": "ES", "lat": 40.47, "lon": -3.56},
		"XXXX": {"icao": "XXXX", "iata": "", "name": "Strip", "city": "Nowhere", "lat": 1, "lon": 1}
	}`
	n, err := l.LoadFromJSON(ctx, strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	airports, err := l.Airports(ctx)
	require.NoError(t, err)
	assert.Equal(t, 15, airports.Len())
	lhr, _ := airports.Lookup("LHR")
	assert.Equal(t, "London Heathrow", lhr.City)

	stats, err := l.GetStats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 15, stats["total_airports"])

	_, err = l.LoadFromJSON(ctx, strings.NewReader(`{}`))
	assert.Error(t, err)
}
