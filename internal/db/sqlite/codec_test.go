package sqlite

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnakeToCamel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"lucidity_level", "lucidityLevel"},
		{"created_at", "createdAt"},
		{"id", "id"},
		{"correlation_score", "correlationScore"},
		{"user_id", "userId"},
		{"a_b_c", "aBC"},
		{"trailing_", "trailing_"},
		{"digit_1", "digit_1"},
		{"upper_Case", "upper_Case"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SnakeToCamel(tt.in))
		})
	}
}

func TestCamelToSnake(t *testing.T) {
	assert.Equal(t, "lucidity_level", CamelToSnake("lucidityLevel"))
	assert.Equal(t, "dream_date", CamelToSnake("dreamDate"))
	assert.Equal(t, "id", CamelToSnake("id"))

	for _, col := range []string{"sleep_quality", "zodiac_sign", "lucky_numbers", "occurred_on"} {
		assert.Equal(t, col, CamelToSnake(SnakeToCamel(col)))
	}
}

func TestCoerceBool(t *testing.T) {
	assert.True(t, CoerceBool(int64(1)))
	assert.True(t, CoerceBool(1))
	assert.True(t, CoerceBool(true))

	assert.False(t, CoerceBool(int64(0)))
	assert.False(t, CoerceBool(int64(2)))
	assert.False(t, CoerceBool(false))
	assert.False(t, CoerceBool(nil))
	assert.False(t, CoerceBool("1"))
	assert.False(t, CoerceBool(1.0))
}

func TestBoolToInt(t *testing.T) {
	assert.Equal(t, int64(1), BoolToInt(true))
	assert.Equal(t, int64(0), BoolToInt(false))
}

func TestDecodeRow(t *testing.T) {
	row := map[string]any{
		"id":         int64(4),
		"alarm_time": "06:30",
		"enabled":    int64(0),
		"label":      nil,
	}

	out := DecodeRow(row, "enabled")
	assert.Equal(t, map[string]any{
		"id":        int64(4),
		"alarmTime": "06:30",
		"enabled":   false,
		"label":     nil,
	}, out)

	// The input is not modified.
	assert.Equal(t, int64(0), row["enabled"])
}

func TestDecodeRow_MissingBoolColumn(t *testing.T) {
	out := DecodeRow(map[string]any{"id": int64(1)}, "enabled")
	_, ok := out["enabled"]
	assert.False(t, ok)
}

func TestParseTime(t *testing.T) {
	want := time.Date(2024, 3, 1, 10, 20, 30, 123e6, time.UTC)

	got, err := parseTime(formatTime(want))
	require.NoError(t, err)
	assert.True(t, want.Equal(got))

	legacy, err := parseTime("2024-03-01 10:20:30")
	require.NoError(t, err)
	assert.True(t, want.Truncate(time.Second).Equal(legacy))

	_, err = parseTime("yesterday")
	assert.Error(t, err)
}
