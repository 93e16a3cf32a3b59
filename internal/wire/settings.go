package wire

import (
	"math"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/oshokin/wakey-wakey/internal/domain/settings"
)

// Field numbers of the settings record.
const (
	settingsSnoozeTapsField  protowire.Number = 1
	settingsDismissTapsField protowire.Number = 2
	settingsMoveSpeedField   protowire.Number = 3
	settingsSnoozeMinField   protowire.Number = 4
	settingsSoundVolumeField protowire.Number = 5
	settingsVibrationField   protowire.Number = 6
	settingsAIProviderField  protowire.Number = 7
	settingsUserAPIKeyField  protowire.Number = 8
	settingsFreeQuotaField   protowire.Number = 9
)

// MarshalSettings encodes the settings record. Every scalar is written so a
// zero quota survives the round trip.
func MarshalSettings(s *settings.AppSettings) []byte {
	var b []byte

	b = appendInt(b, settingsSnoozeTapsField, s.DefaultSnoozeTaps)
	b = appendInt(b, settingsDismissTapsField, s.DefaultDismissTaps)
	b = appendFloat(b, settingsMoveSpeedField, s.DefaultMoveSpeed)
	b = appendInt(b, settingsSnoozeMinField, s.SnoozeDurationMinutes)
	b = appendFloat(b, settingsSoundVolumeField, s.SoundVolume)
	b = appendBool(b, settingsVibrationField, s.VibrationEnabled)
	b = appendString(b, settingsAIProviderField, string(s.AIProvider))

	if s.UserAPIKey != nil {
		b = appendString(b, settingsUserAPIKeyField, *s.UserAPIKey)
	}

	b = appendInt(b, settingsFreeQuotaField, s.FreeQuotaRemaining)

	return b
}

// UnmarshalSettings decodes a record produced by MarshalSettings.
func UnmarshalSettings(b []byte) (settings.AppSettings, error) {
	var s settings.AppSettings

	err := consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case settingsSnoozeTapsField:
			v, n, err := consumeVarint(typ, b)
			s.DefaultSnoozeTaps = int(int64(v))

			return n, err
		case settingsDismissTapsField:
			v, n, err := consumeVarint(typ, b)
			s.DefaultDismissTaps = int(int64(v))

			return n, err
		case settingsMoveSpeedField:
			v, n, err := consumeFixed64(typ, b)
			s.DefaultMoveSpeed = math.Float64frombits(v)

			return n, err
		case settingsSnoozeMinField:
			v, n, err := consumeVarint(typ, b)
			s.SnoozeDurationMinutes = int(int64(v))

			return n, err
		case settingsSoundVolumeField:
			v, n, err := consumeFixed64(typ, b)
			s.SoundVolume = math.Float64frombits(v)

			return n, err
		case settingsVibrationField:
			v, n, err := consumeVarint(typ, b)
			s.VibrationEnabled = protowire.DecodeBool(v)

			return n, err
		case settingsAIProviderField:
			v, n, err := consumeBytes(typ, b)
			s.AIProvider = settings.AIProvider(v)

			return n, err
		case settingsUserAPIKeyField:
			v, n, err := consumeBytes(typ, b)
			key := string(v)
			s.UserAPIKey = &key

			return n, err
		case settingsFreeQuotaField:
			v, n, err := consumeVarint(typ, b)
			s.FreeQuotaRemaining = int(int64(v))

			return n, err
		default:
			return -1, nil
		}
	})
	if err != nil {
		return settings.AppSettings{}, err
	}

	return s, nil
}
