package alarms

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	domain "github.com/oshokin/wakey-wakey/internal/domain/alarm"
	"github.com/oshokin/wakey-wakey/internal/repository/kv"
)

var errDiskFull = errors.New("disk full")

// brokenStore fails every write and returns canned data on read.
type brokenStore struct {
	// contents is returned from Get.
	contents []byte
}

// Get returns the canned contents.
func (b *brokenStore) Get(context.Context, string) ([]byte, error) {
	return b.contents, nil
}

// Put always fails.
func (b *brokenStore) Put(context.Context, string, []byte) error {
	return errDiskFull
}

func newRepository(t *testing.T) *FileRepository {
	t.Helper()

	store, err := kv.NewFileStore(t.TempDir())
	require.NoError(t, err)

	return NewFileRepository(store)
}

// TestFileRepository_LoadEmpty verifies a fresh store yields no alarms.
func TestFileRepository_LoadEmpty(t *testing.T) {
	t.Parallel()

	require.Empty(t, newRepository(t).Load(context.Background()))
}

// TestFileRepository_SaveLoad_Roundtrip ensures Save followed by Load returns equal alarms.
func TestFileRepository_SaveLoad_Roundtrip(t *testing.T) {
	t.Parallel()

	repo := newRepository(t)
	ctx := context.Background()

	want := []domain.Alarm{
		{
			ID:           domain.NewID(),
			Time:         time.Date(2026, time.October, 17, 7, 0, 0, 0, time.UTC),
			IsEnabled:    true,
			Label:        domain.DefaultLabel,
			ImageType:    domain.ImageDefaultLobster,
			SnoozeCount:  1,
			DismissCount: 3,
			MoveSpeed:    0.5,
		},
		{
			ID:              domain.NewID(),
			Time:            time.Date(2026, time.October, 18, 6, 30, 0, 0, time.UTC),
			RepeatDays:      []time.Weekday{time.Saturday, time.Sunday},
			Label:           "Weekend",
			ImageType:       domain.ImageCustomPhoto,
			CustomImageData: []byte("jpeg"),
			SnoozeCount:     4,
			DismissCount:    5,
			MoveSpeed:       0.9,
		},
	}

	require.NoError(t, repo.Save(ctx, want))
	require.Equal(t, want, repo.Load(ctx))

	// Save(Load()) is stable.
	require.NoError(t, repo.Save(ctx, repo.Load(ctx)))
	require.Equal(t, want, repo.Load(ctx))
}

// TestFileRepository_CorruptData verifies decode failures are swallowed.
func TestFileRepository_CorruptData(t *testing.T) {
	t.Parallel()

	repo := NewFileRepository(&brokenStore{contents: []byte{0xff, 0xff, 0xff}})

	require.Empty(t, repo.Load(context.Background()))
}

// TestFileRepository_WriteFailure checks that write errors surface as PersistenceError.
func TestFileRepository_WriteFailure(t *testing.T) {
	t.Parallel()

	repo := NewFileRepository(new(brokenStore))

	err := repo.Save(context.Background(), nil)

	var persistenceErr *PersistenceError
	require.ErrorAs(t, err, &persistenceErr)
	require.Equal(t, "write", persistenceErr.Op)
	require.ErrorIs(t, err, errDiskFull)
}

// TestFileRepository_DuplicateID rejects collections that break id uniqueness.
func TestFileRepository_DuplicateID(t *testing.T) {
	t.Parallel()

	repo := newRepository(t)
	a := domain.Alarm{ID: "same", Time: time.Now()}

	err := repo.Save(context.Background(), []domain.Alarm{a, a})

	var persistenceErr *PersistenceError
	require.ErrorAs(t, err, &persistenceErr)
	require.Equal(t, "encode", persistenceErr.Op)
	require.ErrorIs(t, err, ErrDuplicateID)
}
