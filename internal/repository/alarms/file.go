package alarms

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/oshokin/wakey-wakey/internal/domain/alarm"
	"github.com/oshokin/wakey-wakey/internal/logger"
	"github.com/oshokin/wakey-wakey/internal/repository/kv"
	"github.com/oshokin/wakey-wakey/internal/wire"
)

// StorageKey is the well-known key the alarm collection is stored under.
const StorageKey = "savedAlarms"

// Repository defines persistence operations for the alarm collection.
type Repository interface {
	Load(ctx context.Context) []domain.Alarm
	Save(ctx context.Context, all []domain.Alarm) error
}

// ErrDuplicateID is returned when two alarms in one collection share an id.
var ErrDuplicateID = errors.New("duplicate alarm id")

// PersistenceError reports a failure to encode or write the collection.
type PersistenceError struct {
	// Op is the failed step, "encode" or "write".
	Op string
	// Err is the underlying failure.
	Err error
}

// Error implements the error interface.
func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist alarms: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying failure.
func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// FileRepository persists the alarm collection through a kv.Store.
type FileRepository struct {
	// store holds the encoded collection.
	store kv.Store
	// key is the storage key, StorageKey unless overridden in tests.
	key string
}

// NewFileRepository creates a repository backed by store.
func NewFileRepository(store kv.Store) *FileRepository {
	return &FileRepository{
		store: store,
		key:   StorageKey,
	}
}

// Load reads the collection. Missing or undecodable data yields an empty collection.
func (r *FileRepository) Load(ctx context.Context) []domain.Alarm {
	contents, err := r.store.Get(ctx, r.key)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			logger.WarnKV(ctx, "Unable to read alarms, starting empty", "error", err)
		}

		return nil
	}

	all, err := wire.UnmarshalAlarms(contents)
	if err != nil {
		logger.WarnKV(ctx, "Unable to decode alarms, starting empty", "error", err)
		return nil
	}

	return all
}

// Save writes the full collection, replacing whatever was stored before.
func (r *FileRepository) Save(ctx context.Context, all []domain.Alarm) error {
	seen := make(map[string]struct{}, len(all))
	for i := range all {
		if _, ok := seen[all[i].ID]; ok {
			return &PersistenceError{
				Op:  "encode",
				Err: fmt.Errorf("%w: %q", ErrDuplicateID, all[i].ID),
			}
		}

		seen[all[i].ID] = struct{}{}
	}

	data := wire.MarshalAlarms(all)

	if err := r.store.Put(ctx, r.key, data); err != nil {
		return &PersistenceError{
			Op:  "write",
			Err: err,
		}
	}

	return nil
}
