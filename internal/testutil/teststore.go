package testutil

import (
	"testing"

	"github.com/alexanderramin/focusdo/internal/kv"
	"github.com/alexanderramin/focusdo/internal/storage"
)

// NewTestStore creates an in-memory SQLite store with the schema applied.
// The store is closed when the test completes.
func NewTestStore(t *testing.T) *kv.SQLiteStore {
	t.Helper()
	store, err := kv.Open(":memory:")
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// NewTestStorage creates a storage service over an in-memory SQLite store.
func NewTestStorage(t *testing.T) *storage.Service {
	t.Helper()
	return storage.NewService(NewTestStore(t), nil)
}
