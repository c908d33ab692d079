package models

import "time"

// Alarm is a wake-up alarm owned by a user.
type Alarm struct {
	ID         int64     `json:"id" yaml:"id"`
	UserID     int64     `json:"userId" yaml:"userId"`
	Label      *string   `json:"label" yaml:"label"`
	AlarmTime  string    `json:"alarmTime" yaml:"alarmTime"`   // HH:MM
	Recurrence *string   `json:"recurrence" yaml:"recurrence"` // free-form rule, e.g. "weekdays"
	Enabled    bool      `json:"enabled" yaml:"enabled"`
	CreatedAt  time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt" yaml:"updatedAt"`
}

// CreateAlarmInput holds the fields accepted when creating an alarm.
// A nil Enabled creates an enabled alarm.
type CreateAlarmInput struct {
	Label      *string
	Recurrence *string
	Enabled    *bool
	AlarmTime  string
	UserID     int64
}

// AlarmPatch lists the alarm fields an update may touch.
type AlarmPatch struct {
	Label      Field[*string]
	AlarmTime  Field[string]
	Recurrence Field[*string]
	Enabled    Field[bool]
}

// IsEmpty reports whether the patch assigns no fields.
func (p AlarmPatch) IsEmpty() bool {
	return !p.Label.Set && !p.AlarmTime.Set && !p.Recurrence.Set && !p.Enabled.Set
}
