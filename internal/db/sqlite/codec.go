package sqlite

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
	"unicode"
)

// timeLayout matches strftime('%Y-%m-%dT%H:%M:%fZ') so rows written by SQLite
// defaults and by the Store sort the same way as text.
const timeLayout = "2006-01-02T15:04:05.000Z"

// legacyTimeLayouts are accepted when reading rows written by other tools.
var legacyTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	if t, err := time.Parse(timeLayout, s); err == nil {
		return t, nil
	}
	for _, layout := range legacyTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("parse timestamp %q", s)
}

// SnakeToCamel converts a storage column name such as "lucidity_level" to
// its application field name "lucidityLevel". Only an underscore followed by
// a lowercase letter is folded, matching the column naming of the schema.
func SnakeToCamel(s string) string {
	if !strings.Contains(s, "_") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == '_' && i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
			b.WriteRune(unicode.ToUpper(runes[i+1]))
			i++
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// CamelToSnake converts an application field name to its column name.
func CamelToSnake(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	for _, r := range s {
		if unicode.IsUpper(r) {
			b.WriteByte('_')
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// CoerceBool reports whether v is the stored truthy form: integer 1 or a
// native true. Everything else, nil included, is false.
func CoerceBool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case int64:
		return b == 1
	case int:
		return b == 1
	case int32:
		return b == 1
	case int16:
		return b == 1
	case int8:
		return b == 1
	case uint64:
		return b == 1
	case uint32:
		return b == 1
	case uint:
		return b == 1
	default:
		return false
	}
}

// BoolToInt encodes b the way boolean columns are stored.
func BoolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

// DecodeRow maps a generic row keyed by column name to one keyed by
// application field name. Values pass through untouched except for the
// named boolean columns, which are coerced with CoerceBool. It never fails
// and does not check for missing fields.
func DecodeRow(row map[string]any, boolColumns ...string) map[string]any {
	out := make(map[string]any, len(row))
	for key, value := range row {
		out[SnakeToCamel(key)] = value
	}
	for _, col := range boolColumns {
		key := SnakeToCamel(col)
		if _, ok := out[key]; ok {
			out[key] = CoerceBool(out[key])
		}
	}
	return out
}

// ptrOf converts a scanned nullable column into a pointer, nil for NULL.
func ptrOf[V any](n sql.Null[V]) *V {
	if !n.Valid {
		return nil
	}
	v := n.V
	return &v
}

// nullable converts an optional input into a driver argument, nil for NULL.
func nullable[V any](p *V) any {
	if p == nil {
		return nil
	}
	return *p
}
