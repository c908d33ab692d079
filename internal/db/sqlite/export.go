package sqlite

import (
	"context"
	"fmt"
	"slices"
)

// TableInfo describes a table for generic row access.
type TableInfo struct {
	Name        string
	BoolColumns []string
}

// Tables lists every table the schema creates.
var Tables = []TableInfo{
	{Name: "user_profile"},
	{Name: "dreams"},
	{Name: "dream_symbols"},
	{Name: "synchronicities"},
	{Name: "alarms", BoolColumns: []string{"enabled"}},
	{Name: "horoscopes"},
}

// LookupTable returns the table named name. The application spelling
// ("dreamSymbols") resolves like the column spelling ("dream_symbols").
func LookupTable(name string) (TableInfo, bool) {
	name = CamelToSnake(name)
	i := slices.IndexFunc(Tables, func(t TableInfo) bool { return t.Name == name })
	if i < 0 {
		return TableInfo{}, false
	}
	return Tables[i], true
}

// ExportTable returns every row of a table, ordered by id, with fields named
// the application way (camelCase) and boolean columns decoded.
func (r *Registry) ExportTable(ctx context.Context, name string) ([]map[string]any, error) {
	if !r.Ready() {
		return nil, ErrNotReady
	}
	info, ok := LookupTable(name)
	if !ok {
		return nil, fmt.Errorf("export: unknown table %q", name)
	}

	rows, err := r.store.QueryContext(ctx, "SELECT * FROM "+info.Name+" ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("export %s: %w", info.Name, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("export %s: columns: %w", info.Name, err)
	}

	result := make([]map[string]any, 0)
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("export %s: scan: %w", info.Name, err)
		}

		row := make(map[string]any, len(columns))
		for i, col := range columns {
			if b, ok := values[i].([]byte); ok {
				values[i] = string(b)
			}
			row[col] = values[i]
		}
		result = append(result, DecodeRow(row, info.BoolColumns...))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("export %s: %w", info.Name, err)
	}
	return result, nil
}

// Counts returns the number of rows in every table.
func (r *Registry) Counts(ctx context.Context) (map[string]int64, error) {
	if !r.Ready() {
		return nil, ErrNotReady
	}
	counts := make(map[string]int64, len(Tables))
	for _, info := range Tables {
		var n int64
		if err := r.store.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+info.Name).Scan(&n); err != nil {
			return nil, fmt.Errorf("count %s: %w", info.Name, err)
		}
		counts[info.Name] = n
	}
	return counts, nil
}
