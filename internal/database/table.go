package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Record is anything that can be stored in a Table.
type Record interface {
	GetID() string
	SetID(id string)
}

type recordPtr[T any] interface {
	*T
	Record
}

// Index is a secondary index column kept in sync with a record field.
type Index[T any] struct {
	Column string
	value  func(*T) any
}

// On declares an index column whose value is extracted from each record.
func On[T any](column string, value func(*T) any) Index[T] {
	return Index[T]{Column: column, value: value}
}

// Cond is an equality condition on an indexed column.
type Cond struct {
	Column string
	Value  any
}

// Eq builds an equality condition.
func Eq(column string, value any) Cond {
	return Cond{Column: column, Value: value}
}

// Table is a typed document table. Rows hold the JSON-encoded record plus
// one column per Index. All reads are ordered by insertion (rowid).
type Table[T any, P recordPtr[T]] struct {
	name    string
	indexes []Index[T]
	columns map[string]struct{}
}

// NewTable declares a table. The schema itself lives in schema.sql.
func NewTable[T any, P recordPtr[T]](name string, indexes ...Index[T]) *Table[T, P] {
	cols := map[string]struct{}{"id": {}}
	for _, idx := range indexes {
		cols[idx.Column] = struct{}{}
	}
	return &Table[T, P]{name: name, indexes: indexes, columns: cols}
}

// Name returns the SQL table name.
func (t *Table[T, P]) Name() string {
	return t.name
}

// Get loads one record by id. Returns ErrNotFound if it does not exist.
func (t *Table[T, P]) Get(ctx context.Context, tx *Tx, id string) (*T, error) {
	var doc string
	err := tx.tx.QueryRowContext(ctx, "SELECT doc FROM "+t.name+" WHERE id = ?", id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s %s: %w", t.name, id, ErrNotFound)
	}
	if err != nil {
		return nil, wrapErr("get", t.name, err)
	}
	return t.decode(doc)
}

// Find returns every record matching all conditions.
func (t *Table[T, P]) Find(ctx context.Context, tx *Tx, conds ...Cond) ([]T, error) {
	where, args, err := t.where(conds)
	if err != nil {
		return nil, err
	}
	return t.query(ctx, tx, "SELECT doc FROM "+t.name+where+" ORDER BY rowid", args...)
}

// First returns the earliest inserted record matching all conditions, or ErrNotFound.
func (t *Table[T, P]) First(ctx context.Context, tx *Tx, conds ...Cond) (*T, error) {
	where, args, err := t.where(conds)
	if err != nil {
		return nil, err
	}
	recs, err := t.query(ctx, tx, "SELECT doc FROM "+t.name+where+" ORDER BY rowid LIMIT 1", args...)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("%s: %w", t.name, ErrNotFound)
	}
	return &recs[0], nil
}

// Scan walks the whole table and keeps the records for which keep returns
// true. A nil keep returns everything.
func (t *Table[T, P]) Scan(ctx context.Context, tx *Tx, keep func(*T) bool) ([]T, error) {
	all, err := t.query(ctx, tx, "SELECT doc FROM "+t.name+" ORDER BY rowid")
	if err != nil || keep == nil {
		return all, err
	}
	out := all[:0]
	for i := range all {
		if keep(&all[i]) {
			out = append(out, all[i])
		}
	}
	return out, nil
}

// Count returns the number of rows matching all conditions.
func (t *Table[T, P]) Count(ctx context.Context, tx *Tx, conds ...Cond) (int, error) {
	where, args, err := t.where(conds)
	if err != nil {
		return 0, err
	}
	var n int
	if err := tx.tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+t.name+where, args...).Scan(&n); err != nil {
		return 0, wrapErr("count", t.name, err)
	}
	return n, nil
}

// Max returns the largest integer value of an index column, or 0 for an
// empty table.
func (t *Table[T, P]) Max(ctx context.Context, tx *Tx, column string) (int, error) {
	if _, ok := t.columns[column]; !ok || column == "id" {
		return 0, fmt.Errorf("%s has no index column %q", t.name, column)
	}
	var n int
	if err := tx.tx.QueryRowContext(ctx, "SELECT COALESCE(MAX("+column+"), 0) FROM "+t.name).Scan(&n); err != nil {
		return 0, wrapErr("max", t.name, err)
	}
	return n, nil
}

// Exists reports whether any row matches all conditions.
func (t *Table[T, P]) Exists(ctx context.Context, tx *Tx, conds ...Cond) (bool, error) {
	n, err := t.Count(ctx, tx, conds...)
	return n > 0, err
}

// Insert stores a new record. An empty id is replaced with a generated one.
// Interceptors run before the row is written.
func (t *Table[T, P]) Insert(ctx context.Context, tx *Tx, rec *T) error {
	if err := tx.requireWritable("insert", t.name); err != nil {
		return err
	}
	p := P(rec)
	if p.GetID() == "" {
		p.SetID(uuid.NewString())
	}
	tx.intercept(OpInsert, t.name, p)

	doc, err := json.Marshal(rec)
	if err != nil {
		return &StorageError{Op: "insert", Table: t.name, Kind: KindEncoding, Err: err}
	}

	cols := []string{"id", "doc"}
	args := []any{p.GetID(), string(doc)}
	for _, idx := range t.indexes {
		cols = append(cols, idx.Column)
		args = append(args, idx.value(rec))
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		t.name, strings.Join(cols, ", "), strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", "))

	if _, err := tx.tx.ExecContext(ctx, query, args...); err != nil {
		return wrapErr("insert", t.name, err)
	}
	return nil
}

// Update loads the record, applies patch and writes it back. The id cannot
// be changed by patch. Returns ErrNotFound if the record does not exist; if
// patch returns an error nothing is written.
func (t *Table[T, P]) Update(ctx context.Context, tx *Tx, id string, patch func(*T) error) (*T, error) {
	if err := tx.requireWritable("update", t.name); err != nil {
		return nil, err
	}
	rec, err := t.Get(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if err := patch(rec); err != nil {
		return nil, err
	}
	p := P(rec)
	p.SetID(id)
	tx.intercept(OpUpdate, t.name, p)

	doc, err := json.Marshal(rec)
	if err != nil {
		return nil, &StorageError{Op: "update", Table: t.name, Kind: KindEncoding, Err: err}
	}

	sets := []string{"doc = ?"}
	args := []any{string(doc)}
	for _, idx := range t.indexes {
		sets = append(sets, idx.Column+" = ?")
		args = append(args, idx.value(rec))
	}
	args = append(args, id)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = ?", t.name, strings.Join(sets, ", "))
	if _, err := tx.tx.ExecContext(ctx, query, args...); err != nil {
		return nil, wrapErr("update", t.name, err)
	}
	return rec, nil
}

// Delete removes one record by id. Returns ErrNotFound if nothing was deleted.
func (t *Table[T, P]) Delete(ctx context.Context, tx *Tx, id string) error {
	if err := tx.requireWritable("delete", t.name); err != nil {
		return err
	}
	res, err := tx.tx.ExecContext(ctx, "DELETE FROM "+t.name+" WHERE id = ?", id)
	if err != nil {
		return wrapErr("delete", t.name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return wrapErr("delete", t.name, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", t.name, id, ErrNotFound)
	}
	return nil
}

// DeleteWhere removes every row matching all conditions and returns how many
// were removed. At least one condition is required.
func (t *Table[T, P]) DeleteWhere(ctx context.Context, tx *Tx, conds ...Cond) (int64, error) {
	if err := tx.requireWritable("delete", t.name); err != nil {
		return 0, err
	}
	if len(conds) == 0 {
		return 0, fmt.Errorf("delete from %s: refusing to delete without conditions", t.name)
	}
	where, args, err := t.where(conds)
	if err != nil {
		return 0, err
	}
	res, err := tx.tx.ExecContext(ctx, "DELETE FROM "+t.name+where, args...)
	if err != nil {
		return 0, wrapErr("delete", t.name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, wrapErr("delete", t.name, err)
	}
	return n, nil
}

func (t *Table[T, P]) where(conds []Cond) (string, []any, error) {
	if len(conds) == 0 {
		return "", nil, nil
	}
	parts := make([]string, 0, len(conds))
	args := make([]any, 0, len(conds))
	for _, c := range conds {
		if _, ok := t.columns[c.Column]; !ok {
			return "", nil, fmt.Errorf("%s has no index column %q", t.name, c.Column)
		}
		parts = append(parts, c.Column+" = ?")
		args = append(args, c.Value)
	}
	return " WHERE " + strings.Join(parts, " AND "), args, nil
}

func (t *Table[T, P]) query(ctx context.Context, tx *Tx, query string, args ...any) ([]T, error) {
	rows, err := tx.tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapErr("query", t.name, err)
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, wrapErr("query", t.name, err)
		}
		rec, err := t.decode(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("query", t.name, err)
	}
	return out, nil
}

func (t *Table[T, P]) decode(doc string) (*T, error) {
	rec := new(T)
	if err := json.Unmarshal([]byte(doc), rec); err != nil {
		return nil, &StorageError{Op: "decode", Table: t.name, Kind: KindCorruption, Err: err}
	}
	return rec, nil
}
