package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T) *SQLiteStorage {
	t.Helper()
	s, err := NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteGetMissingKey(t *testing.T) {
	s := newTestSQLite(t)

	_, err := s.Get(context.Background(), "todo-boards-v1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteSetReplacesValue(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k", `{"a":1}`))
	require.NoError(t, s.Set(ctx, "k", `{"a":2}`))

	v, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `{"a":2}`, v)

	keys, err := s.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"k"}, keys)
}

func TestSQLiteDelete(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "a", "1"))
	require.NoError(t, s.Set(ctx, "b", "2"))
	require.NoError(t, s.Delete(ctx, "a"))
	require.NoError(t, s.Delete(ctx, "missing"))

	keys, err := s.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, keys)
}

func TestSQLiteMigrationsAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boards.db")
	ctx := context.Background()

	s, err := NewSQLiteStorage(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "k", "v"))
	require.NoError(t, s.Close())

	s, err = NewSQLiteStorage(path)
	require.NoError(t, err)
	defer s.Close()

	v, err := s.SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, latestVersion(), v)

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}

func TestMemoryStorage(t *testing.T) {
	m := NewMemoryStorage()
	ctx := context.Background()

	_, err := m.Get(ctx, "x")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, m.Set(ctx, "x", "1"))
	v, err := m.Get(ctx, "x")
	require.NoError(t, err)
	assert.Equal(t, "1", v)

	m.FailWrites = assert.AnError
	assert.ErrorIs(t, m.Set(ctx, "x", "2"), assert.AnError)

	v, _ = m.Get(ctx, "x")
	assert.Equal(t, "1", v)
}
