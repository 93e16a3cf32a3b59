package settings

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	domain "github.com/oshokin/wakey-wakey/internal/domain/settings"
	"github.com/oshokin/wakey-wakey/internal/repository/kv"
)

var errReadOnly = errors.New("read-only filesystem")

// readOnlyStore has nothing stored and rejects every write.
type readOnlyStore struct{}

// Get reports that nothing is stored.
func (readOnlyStore) Get(context.Context, string) ([]byte, error) {
	return nil, kv.ErrNotFound
}

// Put always fails.
func (readOnlyStore) Put(context.Context, string, []byte) error {
	return errReadOnly
}

func newFileStore(t *testing.T) kv.Store {
	t.Helper()

	store, err := kv.NewFileStore(t.TempDir())
	require.NoError(t, err)

	return store
}

// TestNewStore_Defaults verifies a fresh store starts from factory settings.
func TestNewStore_Defaults(t *testing.T) {
	t.Parallel()

	s := NewStore(context.Background(), newFileStore(t))
	require.Equal(t, domain.Default(), s.Get())
	defaults := domain.Default()
	require.Equal(t, defaults.Defaults(), s.Defaults())
}

// TestStore_UpdatePersists checks that updates survive a reload and invalid values are rejected.
func TestStore_UpdatePersists(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	backing := newFileStore(t)
	s := NewStore(ctx, backing)

	next := s.Get()
	next.SnoozeDurationMinutes = 9
	next.DefaultDismissTaps = 7

	require.NoError(t, s.Update(ctx, next))

	reloaded := NewStore(ctx, backing)
	require.Equal(t, next, reloaded.Get())

	next.SoundVolume = 3
	require.ErrorIs(t, s.Update(ctx, next), domain.ErrInvalidSettings)
	require.InDelta(t, 0.8, s.Get().SoundVolume, 1e-9)
}

// TestStore_QuotaScenario uses the quota five times, fails the sixth and resets.
func TestStore_QuotaScenario(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewStore(ctx, newFileStore(t))

	for range 5 {
		require.True(t, s.UseAIQuota(ctx))
	}

	require.Equal(t, 0, s.Get().FreeQuotaRemaining)
	require.False(t, s.UseAIQuota(ctx))
	require.Equal(t, 0, s.Get().FreeQuotaRemaining)

	s.ResetQuota(ctx)
	require.Equal(t, domain.DefaultFreeQuota, s.Get().FreeQuotaRemaining)
}

// TestStore_WriteFailureKeepsMemory ensures in-memory effects apply even when persistence fails.
func TestStore_WriteFailureKeepsMemory(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewStore(ctx, readOnlyStore{})

	require.True(t, s.UseAIQuota(ctx))
	require.Equal(t, domain.DefaultFreeQuota-1, s.Get().FreeQuotaRemaining)

	next := s.Get()
	next.VibrationEnabled = false

	require.ErrorIs(t, s.Update(ctx, next), errReadOnly)
	require.False(t, s.Get().VibrationEnabled)
}
