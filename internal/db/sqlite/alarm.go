package sqlite

import (
	"context"
	"database/sql"

	"github.com/thebtf/dreamlog/pkg/models"
)

const alarmColumns = `id, user_id, label, alarm_time, recurrence, enabled, created_at, updated_at`

// AlarmRepository provides alarm database operations.
type AlarmRepository struct {
	t *table[models.Alarm]
}

// NewAlarmRepository creates an alarm repository over store.
func NewAlarmRepository(store *Store) *AlarmRepository {
	return newAlarmRepository(store, nil)
}

func newAlarmRepository(store *Store, g gate) *AlarmRepository {
	return &AlarmRepository{t: &table[models.Alarm]{
		store:   store,
		gate:    g,
		scan:    scanAlarm,
		name:    "alarms",
		columns: alarmColumns,
		orderBy: "alarm_time ASC, id ASC",
		touch:   true,
	}}
}

// GetAll returns every alarm, earliest alarm time first.
func (r *AlarmRepository) GetAll(ctx context.Context) ([]*models.Alarm, error) {
	return r.t.list(ctx, "")
}

// GetByID returns the alarm with id, or nil.
func (r *AlarmRepository) GetByID(ctx context.Context, id int64) (*models.Alarm, error) {
	return r.t.get(ctx, id)
}

// GetByUser returns the user's alarms, earliest alarm time first.
func (r *AlarmRepository) GetByUser(ctx context.Context, userID int64) ([]*models.Alarm, error) {
	return r.t.list(ctx, "user_id = ?", userID)
}

// Create adds an alarm. A nil input.Enabled creates it enabled.
func (r *AlarmRepository) Create(ctx context.Context, input models.CreateAlarmInput) (*models.Alarm, error) {
	enabled := true
	if input.Enabled != nil {
		enabled = *input.Enabled
	}
	return r.t.insert(ctx,
		[]string{"user_id", "label", "alarm_time", "recurrence", "enabled"},
		[]any{input.UserID, nullable(input.Label), input.AlarmTime, nullable(input.Recurrence), BoolToInt(enabled)},
	)
}

// Update applies the present fields of patch.
func (r *AlarmRepository) Update(ctx context.Context, id int64, patch models.AlarmPatch) (*models.Alarm, error) {
	if patch.IsEmpty() {
		return r.t.get(ctx, id)
	}
	var sets []assignment
	sets = assignNullable(sets, "label", patch.Label)
	sets = assign(sets, "alarm_time", patch.AlarmTime)
	sets = assignNullable(sets, "recurrence", patch.Recurrence)
	if patch.Enabled.Set {
		sets = append(sets, assignment{column: "enabled", value: BoolToInt(patch.Enabled.Value)})
	}
	return r.t.update(ctx, id, sets)
}

// SetEnabled toggles an alarm on or off.
func (r *AlarmRepository) SetEnabled(ctx context.Context, id int64, enabled bool) (*models.Alarm, error) {
	return r.Update(ctx, id, models.AlarmPatch{Enabled: models.Set(enabled)})
}

// Delete removes the alarm.
func (r *AlarmRepository) Delete(ctx context.Context, id int64) (bool, error) {
	return r.t.delete(ctx, id)
}

func scanAlarm(s scanner) (*models.Alarm, error) {
	var (
		a                 models.Alarm
		label, recurrence sql.Null[string]
		enabled           any
		created, updated  string
	)
	if err := s.Scan(&a.ID, &a.UserID, &label, &a.AlarmTime, &recurrence, &enabled, &created, &updated); err != nil {
		return nil, err
	}

	a.Label = ptrOf(label)
	a.Recurrence = ptrOf(recurrence)
	a.Enabled = CoerceBool(enabled)

	var err error
	if a.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	if a.UpdatedAt, err = parseTime(updated); err != nil {
		return nil, err
	}
	return &a, nil
}
