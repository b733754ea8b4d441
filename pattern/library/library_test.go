package library

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-patgen/pattern"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "patterns.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func fixedClock(times ...time.Time) func() time.Time {
	i := 0
	return func() time.Time {
		now := times[min(i, len(times)-1)]
		i++
		return now
	}
}

func newPRBS(t *testing.T, channels, steps int) *pattern.Engine {
	t.Helper()
	e, err := pattern.New(pattern.WithShape(channels, steps), pattern.WithMode(pattern.ModePRBS))
	require.NoError(t, err)
	_, err = e.Generate()
	require.NoError(t, err)
	return e
}

func TestSaveAndLoad(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	e := newPRBS(t, 3, 16)

	entry, err := s.Save(ctx, " prbs-3x16 ", e)
	require.NoError(t, err)
	assert.Equal(t, "prbs-3x16", entry.Name)
	assert.Equal(t, pattern.ModePRBS, entry.Mode)
	assert.Equal(t, 3, entry.Channels)
	assert.Equal(t, 16, entry.Steps)

	id, err := uuid.Parse(entry.ID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), id.Version())

	byID, err := s.Load(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, e.Cells(), byID.Cells())
	assert.Equal(t, e.Config(), byID.Config())

	byName, err := s.LoadByName(ctx, "prbs-3x16")
	require.NoError(t, err)
	assert.Equal(t, e.Cells(), byName.Cells())
}

func TestSaveReplacesByName(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	t0 := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	t1 := t0.Add(time.Hour)
	s.now = fixedClock(t0, t1)

	first, err := s.Save(ctx, "clock", newPRBS(t, 1, 4))
	require.NoError(t, err)

	e, err := pattern.New(pattern.WithShape(2, 8), pattern.WithMode(pattern.ModeClock), pattern.WithTargetFrequency(250_000))
	require.NoError(t, err)
	_, err = e.Generate()
	require.NoError(t, err)
	second, err := s.Save(ctx, "clock", e)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, t0, second.CreatedAt)
	assert.Equal(t, t1, second.UpdatedAt)

	entries, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, pattern.ModeClock, entries[0].Mode)
	assert.Equal(t, 2, entries[0].Channels)
	assert.Equal(t, t0, entries[0].CreatedAt)
	assert.Equal(t, t1, entries[0].UpdatedAt)

	got, err := s.Load(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, e.Cells(), got.Cells())
}

func TestListOrderedByName(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	entries, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)

	for _, name := range []string{"zeta", "alpha", "mid"} {
		_, err := s.Save(ctx, name, newPRBS(t, 1, 8))
		require.NoError(t, err)
	}

	entries, err = s.List(ctx)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, names)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	a, err := s.Save(ctx, "a", newPRBS(t, 1, 8))
	require.NoError(t, err)
	_, err = s.Save(ctx, "b", newPRBS(t, 1, 8))
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, a.ID))
	require.NoError(t, s.Delete(ctx, "b"))
	require.ErrorIs(t, s.Delete(ctx, "b"), ErrNotFound)

	_, err = s.Load(ctx, a.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLoadMissing(t *testing.T) {
	s := openTestStore(t)
	_, err := s.LoadByName(context.Background(), "nope")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSaveRejectsEmptyName(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Save(context.Background(), "  ", newPRBS(t, 1, 2))
	require.ErrorIs(t, err, ErrInvalidName)
}

func TestOpenPersists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "lib.db")

	s, err := Open(path)
	require.NoError(t, err)
	_, err = s.Save(ctx, "kept", newPRBS(t, 2, 4))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	e, err := s.LoadByName(ctx, "kept")
	require.NoError(t, err)
	assert.Equal(t, 2, e.Channels())
}

func TestOpenInMemory(t *testing.T) {
	s, err := Open(":memory:")
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Save(context.Background(), "mem", newPRBS(t, 1, 3))
	require.NoError(t, err)
	entries, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
