package wire

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"

	domain "github.com/oshokin/wakey-wakey/internal/domain/alarm"
	"github.com/oshokin/wakey-wakey/internal/domain/settings"
)

func sampleAlarms() []domain.Alarm {
	return []domain.Alarm{
		{
			ID:           "6f1c2a4e-0000-4000-8000-000000000001",
			Time:         time.Date(2026, time.October, 17, 7, 0, 0, 0, time.UTC),
			IsEnabled:    true,
			Label:        "Morning run",
			ImageType:    domain.ImageDefaultBunny,
			SnoozeCount:  1,
			DismissCount: 3,
			MoveSpeed:    0.5,
		},
		{
			ID:              "6f1c2a4e-0000-4000-8000-000000000002",
			Time:            time.Date(2026, time.October, 17, 21, 45, 30, 123456789, time.UTC),
			RepeatDays:      []time.Weekday{time.Monday, time.Wednesday, time.Saturday},
			Label:           "",
			ImageType:       domain.ImageCustomPhoto,
			CustomImageData: []byte{0xff, 0xd8, 0xff, 0x00},
			SnoozeCount:     10,
			DismissCount:    1,
			MoveSpeed:       1,
		},
		{
			ID:              "6f1c2a4e-0000-4000-8000-000000000003",
			Time:            time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
			ImageType:       domain.ImageAIGenerated,
			CustomImageData: []byte{},
			SnoozeCount:     2,
			DismissCount:    2,
			MoveSpeed:       0.1,
		},
	}
}

// TestAlarms_Roundtrip ensures every field, including the optional blob, survives encoding.
func TestAlarms_Roundtrip(t *testing.T) {
	t.Parallel()

	want := sampleAlarms()

	got, err := UnmarshalAlarms(MarshalAlarms(want))
	require.NoError(t, err)
	require.Equal(t, want, got)
}

// TestAlarms_Deterministic checks that equal input produces identical bytes.
func TestAlarms_Deterministic(t *testing.T) {
	t.Parallel()

	require.Equal(t, MarshalAlarms(sampleAlarms()), MarshalAlarms(sampleAlarms()))
}

// TestAlarms_Empty verifies an empty collection decodes to no alarms.
func TestAlarms_Empty(t *testing.T) {
	t.Parallel()

	got, err := UnmarshalAlarms(MarshalAlarms(nil))
	require.NoError(t, err)
	require.Empty(t, got)
}

// TestAlarms_SkipsUnknownFields ensures records from newer writers stay readable.
func TestAlarms_SkipsUnknownFields(t *testing.T) {
	t.Parallel()

	data := MarshalAlarms(sampleAlarms()[:1])
	data = protowire.AppendTag(data, 42, protowire.BytesType)
	data = protowire.AppendString(data, "future")

	got, err := UnmarshalAlarms(data)
	require.NoError(t, err)
	require.Len(t, got, 1)
}

// TestAlarms_RejectsGarbage verifies malformed input is reported.
func TestAlarms_RejectsGarbage(t *testing.T) {
	t.Parallel()

	_, err := UnmarshalAlarms([]byte("this is not a record"))
	require.Error(t, err)

	newer := protowire.AppendTag(nil, collectionVersionField, protowire.VarintType)
	newer = protowire.AppendVarint(newer, FormatVersion+1)

	_, err = UnmarshalAlarms(newer)
	require.ErrorIs(t, err, ErrUnsupportedVersion)
}

// TestSettings_Roundtrip covers the optional API key and a zero quota.
func TestSettings_Roundtrip(t *testing.T) {
	t.Parallel()

	want := settings.Default()
	want.FreeQuotaRemaining = 0

	got, err := UnmarshalSettings(MarshalSettings(&want))
	require.NoError(t, err)
	require.Equal(t, want, got)

	key := "sk-test"
	want.UserAPIKey = &key
	want.AIProvider = settings.ProviderUserCustom

	got, err = UnmarshalSettings(MarshalSettings(&want))
	require.NoError(t, err)
	require.Equal(t, want, got)
}
