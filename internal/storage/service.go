package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/alexanderramin/focusdo/internal/kv"
)

// Service wraps a kv.Store with JSON (de)serialization and the closed key
// namespace. It is the single source of truth for all persisted state.
//
// Failure semantics: write failures propagate to the caller; read failures
// caused by corrupt persisted JSON degrade to "missing" and are logged,
// which is the repositories' only defense against a bad stored blob.
type Service struct {
	store  kv.Store
	logger *slog.Logger
}

// NewService creates a storage service over the given adapter. A nil logger
// discards corruption warnings.
func NewService(store kv.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{store: store, logger: logger}
}

// SetItem serializes v to JSON and writes it under key.
func (s *Service) SetItem(ctx context.Context, key Key, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	if err := s.store.Set(ctx, string(key), string(data)); err != nil {
		return fmt.Errorf("storing %s: %w", key, err)
	}
	return nil
}

// GetItem reads and deserializes the value under key into out. Returns false
// when the key is absent or its contents fail to decode; the caller's default
// (whatever out already holds) stands in both cases. Adapter read errors
// propagate.
func (s *Service) GetItem(ctx context.Context, key Key, out any) (bool, error) {
	raw, ok, err := s.store.Get(ctx, string(key))
	if err != nil {
		return false, fmt.Errorf("loading %s: %w", key, err)
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		s.logger.Warn("discarding corrupt stored value",
			"key", string(key),
			"error", err.Error(),
		)
		return false, nil
	}
	return true, nil
}

// RemoveItem deletes the value under key.
func (s *Service) RemoveItem(ctx context.Context, key Key) error {
	return s.store.Remove(ctx, string(key))
}

// ClearAll wipes the entire namespace.
func (s *Service) ClearAll(ctx context.Context) error {
	return s.store.Clear(ctx)
}

// HasKey reports whether key currently holds a value.
func (s *Service) HasKey(ctx context.Context, key Key) (bool, error) {
	return s.store.Contains(ctx, string(key))
}

// AllKeys lists every stored key.
func (s *Service) AllKeys(ctx context.Context) ([]string, error) {
	return s.store.Keys(ctx)
}
