package testutil

import (
	"testing"

	"github.com/nhle/glassboard/internal/store"
)

// NewTestStorage creates an in-memory SQLiteStorage with all migrations applied.
// It automatically closes the storage when the test completes.
func NewTestStorage(t *testing.T) *store.SQLiteStorage {
	t.Helper()

	s, err := store.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("creating test storage: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test storage: %v", err)
		}
	})

	return s
}
