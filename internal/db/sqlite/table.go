package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/thebtf/dreamlog/pkg/models"
)

// ErrNotReady is returned by repositories of a Registry whose migrations
// have not completed.
var ErrNotReady = errors.New("repositories not ready: schema migrations have not completed")

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// gate reports whether the schema behind a table may be used.
type gate interface {
	isReady() bool
}

// table is the CRUD skeleton shared by every repository. Entity specific
// behaviour stays in the repositories that wrap it.
type table[T any] struct {
	store *Store
	gate  gate
	scan  func(scanner) (*T, error)
	name  string
	// columns is the select list, in the order scan expects.
	columns string
	orderBy string
	// touch marks tables with an updated_at column.
	touch bool
}

// assignment is one "column = ?" pair of an UPDATE.
type assignment struct {
	value  any
	column string
}

// assign appends column when the field is present.
func assign[V any](sets []assignment, column string, f models.Field[V]) []assignment {
	if !f.Set {
		return sets
	}
	return append(sets, assignment{column: column, value: f.Value})
}

// assignNullable appends column when the field is present; a nil value writes NULL.
func assignNullable[V any](sets []assignment, column string, f models.Field[*V]) []assignment {
	if !f.Set {
		return sets
	}
	return append(sets, assignment{column: column, value: nullable(f.Value)})
}

func (t *table[T]) checkReady() error {
	if t.gate != nil && !t.gate.isReady() {
		return ErrNotReady
	}
	return nil
}

func (t *table[T]) selectQuery(where, orderBy string) string {
	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(t.columns)
	b.WriteString(" FROM ")
	b.WriteString(t.name)
	if where != "" {
		b.WriteString(" WHERE ")
		b.WriteString(where)
	}
	if orderBy != "" {
		b.WriteString(" ORDER BY ")
		b.WriteString(orderBy)
	}
	return b.String()
}

// list returns matching rows in the table's ordering. No match yields an
// empty, non-nil slice.
func (t *table[T]) list(ctx context.Context, where string, args ...any) ([]*T, error) {
	if err := t.checkReady(); err != nil {
		return nil, err
	}

	rows, err := t.store.QueryContext(ctx, t.selectQuery(where, t.orderBy), args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", t.name, err)
	}
	defer rows.Close()

	result := make([]*T, 0)
	for rows.Next() {
		item, err := t.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", t.name, err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", t.name, err)
	}
	return result, nil
}

// first returns the first row in orderBy order, or nil when none match.
func (t *table[T]) first(ctx context.Context, where, orderBy string, args ...any) (*T, error) {
	if err := t.checkReady(); err != nil {
		return nil, err
	}

	query := t.selectQuery(where, orderBy) + " LIMIT 1"
	item, err := t.scan(t.store.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", t.name, err)
	}
	return item, nil
}

func (t *table[T]) get(ctx context.Context, id int64) (*T, error) {
	return t.first(ctx, "id = ?", "", id)
}

// insert writes one row, stamping created_at (and updated_at), then reads it
// back by its assigned id.
func (t *table[T]) insert(ctx context.Context, columns []string, values []any) (*T, error) {
	if err := t.checkReady(); err != nil {
		return nil, err
	}

	stamp := t.store.timestamp()
	cols := append(append(make([]string, 0, len(columns)+2), columns...), "created_at")
	args := append(append(make([]any, 0, len(values)+2), values...), stamp)
	if t.touch {
		cols = append(cols, "updated_at")
		args = append(args, stamp)
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	query := "INSERT INTO " + t.name + " (" + strings.Join(cols, ", ") + ") VALUES (" + placeholders + ")"

	res, err := t.store.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("insert %s: %w", t.name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("insert %s: last insert id: %w", t.name, err)
	}

	item, err := t.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("insert %s: row %d missing after insert", t.name, id)
	}
	return item, nil
}

// update writes the present assignments in one statement. With no
// assignments it is a pure read that leaves updated_at alone. Returns nil
// when no row has the id.
func (t *table[T]) update(ctx context.Context, id int64, sets []assignment) (*T, error) {
	if len(sets) == 0 {
		return t.get(ctx, id)
	}
	if err := t.checkReady(); err != nil {
		return nil, err
	}

	clauses := make([]string, 0, len(sets)+1)
	args := make([]any, 0, len(sets)+2)
	for _, s := range sets {
		clauses = append(clauses, s.column+" = ?")
		args = append(args, s.value)
	}
	if t.touch {
		prev, found, err := t.updatedAt(ctx, id)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, nil
		}
		clauses = append(clauses, "updated_at = ?")
		args = append(args, t.store.timestampAfter(prev))
	}
	args = append(args, id)

	query := "UPDATE " + t.name + " SET " + strings.Join(clauses, ", ") + " WHERE id = ?"
	res, err := t.store.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("update %s %d: %w", t.name, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update %s %d: rows affected: %w", t.name, id, err)
	}
	if n == 0 {
		return nil, nil
	}
	return t.get(ctx, id)
}

// updatedAt reads the stored updated_at of row id.
func (t *table[T]) updatedAt(ctx context.Context, id int64) (time.Time, bool, error) {
	var raw string
	err := t.store.QueryRowContext(ctx, "SELECT updated_at FROM "+t.name+" WHERE id = ?", id).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("update %s %d: read updated_at: %w", t.name, id, err)
	}
	prev, err := parseTime(raw)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("update %s %d: %w", t.name, id, err)
	}
	return prev, true, nil
}

// remove hard-deletes matching rows and returns how many went.
func (t *table[T]) remove(ctx context.Context, where string, args ...any) (int64, error) {
	if err := t.checkReady(); err != nil {
		return 0, err
	}

	res, err := t.store.ExecContext(ctx, "DELETE FROM "+t.name+" WHERE "+where, args...)
	if err != nil {
		return 0, fmt.Errorf("delete %s: %w", t.name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete %s: rows affected: %w", t.name, err)
	}
	return n, nil
}

func (t *table[T]) delete(ctx context.Context, id int64) (bool, error) {
	n, err := t.remove(ctx, "id = ?", id)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
