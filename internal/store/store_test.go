package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

func TestMemoryListStore(t *testing.T) {
	s := NewMemoryListStore()

	got, err := s.ReadList("favorites")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	items := []string{"Paris", "Rome"}
	require.NoError(t, s.WriteList("favorites", items))
	items[0] = "mutated"

	got, err = s.ReadList("favorites")
	require.NoError(t, err)
	assert.Equal(t, []string{"Paris", "Rome"}, got)

	got[1] = "mutated"
	again, err := s.ReadList("favorites")
	require.NoError(t, err)
	assert.Equal(t, []string{"Paris", "Rome"}, again)
}

func TestSQLiteListStore(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "prefs.db")

	s, err := NewSQLiteListStore(dbPath)
	require.NoError(t, err)

	got, err := s.ReadList("searchHistory")
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, s.WriteList("searchHistory", []string{"Oslo", "São Paulo"}))
	require.NoError(t, s.WriteList("favorites", nil))
	require.NoError(t, s.WriteList("searchHistory", []string{"Lima", "Oslo", "São Paulo"}))
	require.NoError(t, s.Close())

	// Lists survive reopening the database.
	s, err = NewSQLiteListStore(dbPath)
	require.NoError(t, err)
	defer s.Close()

	got, err = s.ReadList("searchHistory")
	require.NoError(t, err)
	assert.Equal(t, []string{"Lima", "Oslo", "São Paulo"}, got)

	favs, err := s.ReadList("favorites")
	require.NoError(t, err)
	assert.NotNil(t, favs)
	assert.Empty(t, favs)
}

func observation(city string, ts time.Time) weather.Observation {
	return weather.Observation{City: city, Timestamp: ts}
}

func TestMemoryStoreRetentionByCount(t *testing.T) {
	s := NewMemoryStore(2, 0)
	base := time.Now().UTC()
	for i := 0; i < 3; i++ {
		s.Save(observation("Paris", base.Add(time.Duration(i)*time.Minute)))
	}

	all, err := s.Range("paris", base.Add(-time.Hour), base.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, base.Add(time.Minute), all[0].Timestamp)
	assert.NotEmpty(t, all[0].ID)
	assert.NotEqual(t, all[0].ID, all[1].ID)

	latest, err := s.Latest("PARIS")
	require.NoError(t, err)
	assert.Equal(t, base.Add(2*time.Minute), latest.Timestamp)
}

func TestMemoryStoreRetentionByAge(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s := NewMemoryStore(0, time.Hour)
	s.now = func() time.Time { return now }

	s.Save(observation("Rome", now.Add(-3*time.Hour)))
	s.Save(observation("Rome", now.Add(-2*time.Hour)))
	_, err := s.Latest("Rome")
	assert.ErrorIs(t, err, ErrNotFound, "everything older than max age is dropped")

	s.Save(observation("Rome", now.Add(-30*time.Minute)))
	s.Save(observation("Rome", now))
	got, err := s.Range("Rome", now.Add(-24*time.Hour), now)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestMemoryStoreRange(t *testing.T) {
	s := NewMemoryStore(0, 0)
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	for h := 0; h < 5; h++ {
		s.Save(observation("Oslo", base.Add(time.Duration(h)*time.Hour)))
	}

	got, err := s.Range("Oslo", base.Add(time.Hour), base.Add(3*time.Hour))
	require.NoError(t, err)
	assert.Len(t, got, 3)

	_, err = s.Range("Oslo", base.Add(10*time.Hour), base.Add(11*time.Hour))
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Range("Lima", base, base)
	assert.ErrorIs(t, err, ErrNotFound)
}
