package alarm

// AlarmMessage is the wire form of an alarm. Times travel as Unix nanoseconds.
type AlarmMessage struct {
	ID           string  `cbor:"id"`
	TimeUnixNano int64   `cbor:"time"`
	Enabled      bool    `cbor:"enabled"`
	RepeatDays   []int   `cbor:"repeat_days,omitempty"`
	Label        string  `cbor:"label"`
	ImageType    string  `cbor:"image_type"`
	CustomImage  []byte  `cbor:"custom_image,omitempty"`
	SnoozeCount  int     `cbor:"snooze_count"`
	DismissCount int     `cbor:"dismiss_count"`
	MoveSpeed    float64 `cbor:"move_speed"`
}

// TriggerStateMessage is the wire form of the trigger state.
type TriggerStateMessage struct {
	Triggering bool          `cbor:"triggering"`
	Current    *AlarmMessage `cbor:"current,omitempty"`
	Queued     []string      `cbor:"queued,omitempty"`
}

// SettingsMessage is the wire form of the application settings.
type SettingsMessage struct {
	DefaultSnoozeTaps     int     `cbor:"default_snooze_taps"`
	DefaultDismissTaps    int     `cbor:"default_dismiss_taps"`
	DefaultMoveSpeed      float64 `cbor:"default_move_speed"`
	SnoozeDurationMinutes int     `cbor:"snooze_duration_minutes"`
	SoundVolume           float64 `cbor:"sound_volume"`
	VibrationEnabled      bool    `cbor:"vibration_enabled"`
	AIProvider            string  `cbor:"ai_provider"`
	UserAPIKey            *string `cbor:"user_api_key,omitempty"`
	FreeQuotaRemaining    int     `cbor:"free_quota_remaining"`
}

// Empty is used by methods without parameters.
type Empty struct{}

// AlarmRequest carries a full alarm for AddAlarm and UpdateAlarm.
type AlarmRequest struct {
	Alarm AlarmMessage `cbor:"alarm"`
}

// AlarmIDRequest addresses a single alarm.
type AlarmIDRequest struct {
	ID string `cbor:"id"`
}

// AlarmResponse returns the stored alarm.
// Warnings hold persistence or scheduling failures the daemon recovered from.
type AlarmResponse struct {
	Alarm    AlarmMessage `cbor:"alarm"`
	Warnings []string     `cbor:"warnings,omitempty"`
}

// MutationResponse acknowledges a mutation.
type MutationResponse struct {
	Warnings []string `cbor:"warnings,omitempty"`
}

// ListAlarmsResponse holds the collection and the pending notification ids.
type ListAlarmsResponse struct {
	Alarms  []AlarmMessage `cbor:"alarms"`
	Pending []string       `cbor:"pending,omitempty"`
}

// TriggerStateResponse holds the trigger state after a transition.
type TriggerStateResponse struct {
	Triggered bool                `cbor:"triggered,omitempty"`
	State     TriggerStateMessage `cbor:"state"`
	Warnings  []string            `cbor:"warnings,omitempty"`
}

// DeliverRequest forwards a notification delivery or response.
// A zero FireTimeUnixNano refers to the most recent delivery of the alarm.
type DeliverRequest struct {
	AlarmID          string `cbor:"alarm_id"`
	Action           string `cbor:"action"`
	FireTimeUnixNano int64  `cbor:"fire_time,omitempty"`
}

// ReconcileResponse is the outcome of a reconciliation pass.
type ReconcileResponse struct {
	Scheduled []string `cbor:"scheduled,omitempty"`
	Cancelled []string `cbor:"cancelled,omitempty"`
	Failed    []string `cbor:"failed,omitempty"`
	Warnings  []string `cbor:"warnings,omitempty"`
}

// SettingsRequest carries new settings for UpdateSettings.
type SettingsRequest struct {
	Settings SettingsMessage `cbor:"settings"`
}

// SettingsResponse returns the current settings.
type SettingsResponse struct {
	Settings SettingsMessage `cbor:"settings"`
	Warnings []string        `cbor:"warnings,omitempty"`
}

// QuotaResponse reports the free AI quota.
type QuotaResponse struct {
	Allowed   bool `cbor:"allowed"`
	Remaining int  `cbor:"remaining"`
}

// WatchEvent is one snapshot pushed by Watch.
type WatchEvent struct {
	Alarms []AlarmMessage      `cbor:"alarms"`
	State  TriggerStateMessage `cbor:"state"`
}
