package models

// Unit systems selectable in user settings.
const (
	UnitSystemMetric   = "metric"
	UnitSystemImperial = "imperial"
)

// UserSettings is the flat record of user preferences subject to sync.
//
// The whole object is replaced atomically during reconciliation: settings
// conflicts are resolved by recency of LastSyncedAt, never by per-field
// merging. JSON tags match the cloud document shape.
type UserSettings struct {
	// UserName is the display name shown on the main screen.
	UserName string `json:"userName"`

	// Height is the user's height in the unit implied by UnitSystem.
	Height float64 `json:"height"`

	// Weight is the user's weight in the unit implied by UnitSystem.
	Weight float64 `json:"weight"`

	// DateOfBirth is stored as an ISO-8601 date string (YYYY-MM-DD).
	DateOfBirth string `json:"dateOfBirth"`

	// KeepScreenOn prevents the device screen from sleeping during a
	// workout session.
	KeepScreenOn bool `json:"keepScreenOn"`

	// Language is the preferred UI language kept inside settings for
	// backward compatibility with older documents; the authoritative
	// value lives on LocalState.Language.
	Language string `json:"language"`

	// UnitSystem is either UnitSystemMetric or UnitSystemImperial.
	UnitSystem string `json:"unitSystem"`

	// ReminderEnabled toggles workout reminders.
	ReminderEnabled bool `json:"reminderEnabled"`

	// ReminderDays lists weekdays (0-6, Sunday-Saturday) on which a
	// reminder fires.
	ReminderDays []int `json:"reminderDays"`

	// ReminderTime is the reminder time of day in "HH:mm" format.
	ReminderTime string `json:"reminderTime"`

	// TTSEnabled toggles spoken exercise narration.
	TTSEnabled bool `json:"ttsEnabled"`

	// PauseBetweenExercises is the rest gap between exercises in seconds.
	PauseBetweenExercises int `json:"pauseBetweenExercises"`

	// LastSyncedAt is the ISO-8601 UTC instant of the last successful
	// settings write. Empty means the settings were never synced; during
	// reconciliation the chronologically later side wins wholesale.
	LastSyncedAt string `json:"lastSyncedAt,omitempty"`

	// CloudSyncEnabled records whether the user opted into cloud sync.
	CloudSyncEnabled bool `json:"cloudSyncEnabled"`
}

// Clone returns a deep copy of the settings.
func (s UserSettings) Clone() UserSettings {
	out := s
	if s.ReminderDays != nil {
		out.ReminderDays = make([]int, len(s.ReminderDays))
		copy(out.ReminderDays, s.ReminderDays)
	}
	return out
}
