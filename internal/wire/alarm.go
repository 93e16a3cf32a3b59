package wire

import (
	"errors"
	"fmt"
	"math"
	"time"

	"google.golang.org/protobuf/encoding/protowire"

	domain "github.com/oshokin/wakey-wakey/internal/domain/alarm"
)

// FormatVersion is written at the head of every alarm collection.
const FormatVersion = 1

// Field numbers of the collection message.
const (
	collectionVersionField protowire.Number = 1
	collectionAlarmField   protowire.Number = 2
)

// Field numbers of the alarm record.
const (
	alarmIDField           protowire.Number = 1
	alarmSecondsField      protowire.Number = 2
	alarmNanosField        protowire.Number = 3
	alarmEnabledField      protowire.Number = 4
	alarmRepeatDaysField   protowire.Number = 5
	alarmLabelField        protowire.Number = 6
	alarmImageTypeField    protowire.Number = 7
	alarmCustomImageField  protowire.Number = 8
	alarmSnoozeCountField  protowire.Number = 9
	alarmDismissCountField protowire.Number = 10
	alarmMoveSpeedField    protowire.Number = 11
)

var (
	// ErrUnsupportedVersion is returned for collections written by a newer format.
	ErrUnsupportedVersion = errors.New("unsupported format version")
	// errWrongWireType is returned when a known field carries an unexpected wire type.
	errWrongWireType = errors.New("unexpected wire type")
)

// MarshalAlarms encodes the whole collection.
func MarshalAlarms(alarms []domain.Alarm) []byte {
	b := protowire.AppendTag(nil, collectionVersionField, protowire.VarintType)
	b = protowire.AppendVarint(b, FormatVersion)

	for i := range alarms {
		b = protowire.AppendTag(b, collectionAlarmField, protowire.BytesType)
		b = protowire.AppendBytes(b, appendAlarm(nil, &alarms[i]))
	}

	return b
}

// UnmarshalAlarms decodes a collection produced by MarshalAlarms.
func UnmarshalAlarms(b []byte) ([]domain.Alarm, error) {
	var alarms []domain.Alarm

	err := consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case collectionVersionField:
			v, n, err := consumeVarint(typ, b)
			if err != nil {
				return 0, fmt.Errorf("version: %w", err)
			}

			if v > FormatVersion {
				return 0, fmt.Errorf("%w: %d", ErrUnsupportedVersion, v)
			}

			return n, nil
		case collectionAlarmField:
			record, n, err := consumeBytes(typ, b)
			if err != nil {
				return 0, fmt.Errorf("alarm record: %w", err)
			}

			a, err := unmarshalAlarm(record)
			if err != nil {
				return 0, fmt.Errorf("alarm record %d: %w", len(alarms), err)
			}

			alarms = append(alarms, a)

			return n, nil
		default:
			return -1, nil
		}
	})
	if err != nil {
		return nil, err
	}

	return alarms, nil
}

func appendAlarm(b []byte, a *domain.Alarm) []byte {
	b = appendString(b, alarmIDField, a.ID)

	b = protowire.AppendTag(b, alarmSecondsField, protowire.VarintType)
	b = protowire.AppendVarint(b, protowire.EncodeZigZag(a.Time.Unix()))
	b = protowire.AppendTag(b, alarmNanosField, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(a.Time.Nanosecond()))

	b = appendBool(b, alarmEnabledField, a.IsEnabled)

	if len(a.RepeatDays) > 0 {
		var packed []byte
		for _, day := range a.RepeatDays {
			packed = protowire.AppendVarint(packed, uint64(day))
		}

		b = protowire.AppendTag(b, alarmRepeatDaysField, protowire.BytesType)
		b = protowire.AppendBytes(b, packed)
	}

	b = appendString(b, alarmLabelField, a.Label)
	b = appendString(b, alarmImageTypeField, string(a.ImageType))

	if a.CustomImageData != nil {
		b = protowire.AppendTag(b, alarmCustomImageField, protowire.BytesType)
		b = protowire.AppendBytes(b, a.CustomImageData)
	}

	b = appendInt(b, alarmSnoozeCountField, a.SnoozeCount)
	b = appendInt(b, alarmDismissCountField, a.DismissCount)
	b = appendFloat(b, alarmMoveSpeedField, a.MoveSpeed)

	return b
}

//nolint:cyclop,funlen // One case per field reads better than a dispatch table.
func unmarshalAlarm(b []byte) (domain.Alarm, error) {
	var (
		a              domain.Alarm
		seconds, nanos int64
	)

	err := consumeFields(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case alarmIDField:
			v, n, err := consumeBytes(typ, b)
			a.ID = string(v)

			return n, err
		case alarmSecondsField:
			v, n, err := consumeVarint(typ, b)
			seconds = protowire.DecodeZigZag(v)

			return n, err
		case alarmNanosField:
			v, n, err := consumeVarint(typ, b)
			nanos = int64(v)

			return n, err
		case alarmEnabledField:
			v, n, err := consumeVarint(typ, b)
			a.IsEnabled = protowire.DecodeBool(v)

			return n, err
		case alarmRepeatDaysField:
			packed, n, err := consumeBytes(typ, b)
			if err != nil {
				return 0, err
			}

			for len(packed) > 0 {
				day, m := protowire.ConsumeVarint(packed)
				if m < 0 {
					return 0, protowire.ParseError(m)
				}

				a.RepeatDays = append(a.RepeatDays, time.Weekday(day))
				packed = packed[m:]
			}

			return n, nil
		case alarmLabelField:
			v, n, err := consumeBytes(typ, b)
			a.Label = string(v)

			return n, err
		case alarmImageTypeField:
			v, n, err := consumeBytes(typ, b)
			a.ImageType = domain.ImageType(v)

			return n, err
		case alarmCustomImageField:
			v, n, err := consumeBytes(typ, b)
			a.CustomImageData = append([]byte{}, v...)

			return n, err
		case alarmSnoozeCountField:
			v, n, err := consumeVarint(typ, b)
			a.SnoozeCount = int(int64(v))

			return n, err
		case alarmDismissCountField:
			v, n, err := consumeVarint(typ, b)
			a.DismissCount = int(int64(v))

			return n, err
		case alarmMoveSpeedField:
			v, n, err := consumeFixed64(typ, b)
			a.MoveSpeed = math.Float64frombits(v)

			return n, err
		default:
			return -1, nil
		}
	})
	if err != nil {
		return domain.Alarm{}, err
	}

	a.Time = time.Unix(seconds, nanos).UTC()

	return a, nil
}
