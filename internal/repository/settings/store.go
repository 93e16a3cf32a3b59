package settings

import (
	"context"
	"errors"
	"fmt"
	"sync"

	domain "github.com/oshokin/wakey-wakey/internal/domain/settings"
	"github.com/oshokin/wakey-wakey/internal/logger"
	"github.com/oshokin/wakey-wakey/internal/repository/kv"
	"github.com/oshokin/wakey-wakey/internal/wire"
)

// StorageKey is the well-known key the settings record is stored under.
const StorageKey = "appSettings"

// Store owns the persisted AppSettings.
type Store struct {
	// kv holds the encoded settings record.
	kv kv.Store
	// current is the in-memory settings value.
	current domain.AppSettings
	// mu protects current and serializes writes.
	mu sync.RWMutex
}

// NewStore loads the settings from store, falling back to factory defaults
// when nothing usable was persisted.
func NewStore(ctx context.Context, store kv.Store) *Store {
	s := &Store{
		kv:      store,
		current: domain.Default(),
	}

	contents, err := store.Get(ctx, StorageKey)

	switch {
	case errors.Is(err, kv.ErrNotFound):
		// Keep defaults.
	case err != nil:
		logger.WarnKV(ctx, "Unable to read settings, using defaults", "error", err)
	default:
		decoded, decodeErr := wire.UnmarshalSettings(contents)
		if decodeErr != nil {
			logger.WarnKV(ctx, "Unable to decode settings, using defaults", "error", decodeErr)
			break
		}

		if validateErr := decoded.Validate(); validateErr != nil {
			logger.WarnKV(ctx, "Stored settings are invalid, using defaults", "error", validateErr)
			break
		}

		s.current = decoded
	}

	return s
}

// Get returns a copy of the current settings.
func (s *Store) Get() domain.AppSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.current.Clone()
}

// Defaults returns the values used to seed a new alarm.
func (s *Store) Defaults() domain.Defaults {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.current.Defaults()
}

// Update validates and persists new settings.
func (s *Store) Update(ctx context.Context, next domain.AppSettings) error {
	if err := next.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = next.Clone()

	return s.persist(ctx)
}

// UseAIQuota consumes one free AI generation. It reports false, leaving the
// quota untouched, when nothing is left.
func (s *Store) UseAIQuota(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current.FreeQuotaRemaining <= 0 {
		return false
	}

	s.current.FreeQuotaRemaining--

	if err := s.persist(ctx); err != nil {
		logger.ErrorKV(ctx, "Failed to persist AI quota", "error", err)
	}

	return true
}

// ResetQuota restores the free AI generations to the default amount.
func (s *Store) ResetQuota(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current.FreeQuotaRemaining = domain.DefaultFreeQuota

	if err := s.persist(ctx); err != nil {
		logger.ErrorKV(ctx, "Failed to persist AI quota reset", "error", err)
	}
}

// persist writes the current value. Callers must hold mu.
func (s *Store) persist(ctx context.Context) error {
	if err := s.kv.Put(ctx, StorageKey, wire.MarshalSettings(&s.current)); err != nil {
		return fmt.Errorf("persist settings: %w", err)
	}

	return nil
}
