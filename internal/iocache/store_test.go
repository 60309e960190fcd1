package iocache

import (
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/datakit/wefarm/internal/contract"
	"github.com/datakit/wefarm/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cacheDay = time.Date(2016, time.July, 1, 0, 0, 0, 0, time.UTC)

// newSQLiteStore opens a throwaway SQLite cache for one test.
func newSQLiteStore(t *testing.T) contract.ObservationStore {
	t.Helper()
	store, err := NewObservationStore(schema.SQLiteBackend, filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// TestSQLiteStoreRoundTrip writes a series and reads it back, including a
// missing reading stored as NULL.
func TestSQLiteStoreRoundTrip(t *testing.T) {
	store := newSQLiteStore(t)
	series := schema.NewTimeSeries([]schema.Observation{
		{Date: cacheDay, Value: 24.5},
		{Date: cacheDay.AddDate(0, 0, 1), Value: math.NaN()},
		{Date: cacheDay.AddDate(0, 0, 2), Value: 26.0},
	})

	require.NoError(t, store.PutSeries("kenya", schema.TempMean, series))

	got, found, err := store.GetSeries("kenya", schema.TempMean, cacheDay, cacheDay.AddDate(0, 0, 2))
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, 3, got.Len())

	v, ok := got.At(cacheDay)
	require.True(t, ok)
	assert.InDelta(t, 24.5, v, 1e-9)

	v, ok = got.At(cacheDay.AddDate(0, 0, 1))
	require.True(t, ok)
	assert.True(t, math.IsNaN(v))
}

// TestSQLiteStoreRangeFilter only returns observations inside the window.
func TestSQLiteStoreRangeFilter(t *testing.T) {
	store := newSQLiteStore(t)
	var obs []schema.Observation
	for i := range 10 {
		obs = append(obs, schema.Observation{Date: cacheDay.AddDate(0, 0, i), Value: float64(i)})
	}
	require.NoError(t, store.PutSeries("uganda", schema.Precipitation, schema.NewTimeSeries(obs)))

	got, found, err := store.GetSeries("uganda", schema.Precipitation, cacheDay.AddDate(0, 0, 2), cacheDay.AddDate(0, 0, 4))
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 3, got.Len())
}

// TestSQLiteStoreMiss reports not-found for countries and parameters that
// were never written.
func TestSQLiteStoreMiss(t *testing.T) {
	store := newSQLiteStore(t)

	_, found, err := store.GetSeries("kenya", schema.TempMean, cacheDay, cacheDay.AddDate(0, 0, 7))
	require.NoError(t, err)
	assert.False(t, found)
}

// TestSQLiteStoreUpsert replaces an existing observation instead of
// duplicating it.
func TestSQLiteStoreUpsert(t *testing.T) {
	store := newSQLiteStore(t)
	first := schema.NewTimeSeries([]schema.Observation{{Date: cacheDay, Value: 1.0}})
	second := schema.NewTimeSeries([]schema.Observation{{Date: cacheDay, Value: 2.0}})

	require.NoError(t, store.PutSeries("kenya", schema.Humidity, first))
	require.NoError(t, store.PutSeries("kenya", schema.Humidity, second))

	got, found, err := store.GetSeries("kenya", schema.Humidity, cacheDay, cacheDay)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, 1, got.Len())
	v, _ := got.At(cacheDay)
	assert.InDelta(t, 2.0, v, 1e-9)

	status, err := store.Status()
	require.NoError(t, err)
	assert.Equal(t, int64(1), status.TotalEntries)
}

// TestSQLiteStoreStatusAndClear covers the summary counters and the
// destructive clear path.
func TestSQLiteStoreStatusAndClear(t *testing.T) {
	store := newSQLiteStore(t)
	series := schema.NewTimeSeries([]schema.Observation{
		{Date: cacheDay, Value: 10},
		{Date: cacheDay.AddDate(0, 0, 1), Value: 11},
	})
	require.NoError(t, store.PutSeries("kenya", schema.TempMean, series))
	require.NoError(t, store.PutSeries("tanzania", schema.TempMean, series))

	status, err := store.Status()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", status.Backend)
	assert.True(t, status.Connected)
	assert.Equal(t, int64(4), status.TotalEntries)
	assert.Equal(t, 2, status.Countries)
	assert.False(t, status.LastEntryTime.IsZero())
	assert.Greater(t, status.TableSizeBytes, int64(0))

	require.NoError(t, store.Clear())
	status, err = store.Status()
	require.NoError(t, err)
	assert.Equal(t, int64(0), status.TotalEntries)
}

// TestNoneBackendNoOps ensures the disabled cache behaves as a silent pass-through.
func TestNoneBackendNoOps(t *testing.T) {
	store, err := NewObservationStore(schema.NoneBackend, "")
	require.NoError(t, err)

	series := schema.NewTimeSeries([]schema.Observation{{Date: cacheDay, Value: 1}})
	assert.NoError(t, store.PutSeries("kenya", schema.TempMean, series))

	_, found, err := store.GetSeries("kenya", schema.TempMean, cacheDay, cacheDay)
	assert.NoError(t, err)
	assert.False(t, found)

	status, err := store.Status()
	assert.NoError(t, err)
	assert.False(t, status.Connected)

	assert.NoError(t, store.Clear())
	assert.NoError(t, store.Close())
}

// TestNewObservationStoreUnsupported rejects unknown backends.
func TestNewObservationStoreUnsupported(t *testing.T) {
	_, err := NewObservationStore(schema.DatabaseBackend("oracle"), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported cache backend")
}

// TestPlaceholderPerBackend checks parameter placeholder syntax.
func TestPlaceholderPerBackend(t *testing.T) {
	assert.Equal(t, "?", (&ObservationStoreImpl{backend: schema.SQLiteBackend}).placeholder(1))
	assert.Equal(t, "?", (&ObservationStoreImpl{backend: schema.MySQLBackend}).placeholder(2))
	assert.Equal(t, "$3", (&ObservationStoreImpl{backend: schema.PostgreSQLBackend}).placeholder(3))
}

// TestUpsertQueryPerBackend checks each backend gets its own conflict clause.
func TestUpsertQueryPerBackend(t *testing.T) {
	mysqlQuery := (&ObservationStoreImpl{backend: schema.MySQLBackend}).upsertQuery()
	assert.Contains(t, mysqlQuery, "ON DUPLICATE KEY UPDATE")

	pgQuery := (&ObservationStoreImpl{backend: schema.PostgreSQLBackend}).upsertQuery()
	assert.Contains(t, pgQuery, "ON CONFLICT")
	assert.Contains(t, pgQuery, "$5")

	sqliteQuery := (&ObservationStoreImpl{backend: schema.SQLiteBackend}).upsertQuery()
	assert.Contains(t, sqliteQuery, "INSERT OR REPLACE")
}
