// Package repository provides persistence over PostgreSQL: a generic
// record-access layer parameterized by entity shape, plus typed
// repositories for each entity.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/lib/pq"

	"github.com/istanbulcare/backend/internal/apperrors"
)

// ErrUnknownField is returned when a Fields map names a column the
// entity does not have. A typo is an error here, never a silent no-op.
var ErrUnknownField = errors.New("unknown field")

// Fields maps column names to values, used both for writes and as
// criteria (a conjunction of field = value pairs).
type Fields map[string]any

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// ScanFunc reads one full row (id first, then the entity's columns in
// their declared order) into an entity value.
type ScanFunc[T any] func(row rowScanner) (T, error)

// Repository is a generic persistence layer over a single table.
// Every mutating operation commits immediately; each touches exactly
// one record. Multi-step workflows such as check-then-create are not
// atomic across calls, which is why every unique field also carries a
// storage-level unique index (see internal/db).
type Repository[T any] struct {
	db       *sql.DB
	table    string
	resource string
	columns  []string
	allowed  map[string]struct{}
	scan     ScanFunc[T]
}

// New constructs a Repository over table. columns lists every column
// except id, in the order the ScanFunc expects them after id. resource
// is the human-readable entity name used in conflict messages.
func New[T any](db *sql.DB, table, resource string, columns []string, scan ScanFunc[T]) *Repository[T] {
	allowed := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		allowed[c] = struct{}{}
	}
	return &Repository[T]{
		db:       db,
		table:    table,
		resource: resource,
		columns:  columns,
		allowed:  allowed,
		scan:     scan,
	}
}

// DB exposes the underlying handle for entity-specific queries.
func (r *Repository[T]) DB() *sql.DB { return r.db }

// Table returns the table name for entity-specific queries.
func (r *Repository[T]) Table() string { return r.table }

// SelectList returns "id, col1, col2, ..." matching the ScanFunc order.
func (r *Repository[T]) SelectList() string {
	return "id, " + strings.Join(r.columns, ", ")
}

// Scan applies the repository's ScanFunc to a row.
func (r *Repository[T]) Scan(row interface{ Scan(dest ...any) error }) (T, error) {
	return r.scan(row)
}

// sortedKeys validates every key against the column whitelist and
// returns them in a deterministic order.
func (r *Repository[T]) sortedKeys(fields Fields) ([]string, error) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		if _, ok := r.allowed[k]; !ok {
			return nil, fmt.Errorf("%w: %q on table %s", ErrUnknownField, k, r.table)
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// conflictError maps a storage-level unique violation to the typed
// AlreadyExists failure, so a check-then-write race still surfaces as
// a duplicate instead of an internal fault.
func (r *Repository[T]) conflictError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return &apperrors.Error{
			Kind:    apperrors.KindAlreadyExists,
			Message: r.resource + " already exists",
			Err:     err,
		}
	}
	return nil
}

// Create inserts a new record and returns it with its server-assigned id.
func (r *Repository[T]) Create(ctx context.Context, fields Fields) (T, error) {
	var zero T
	keys, err := r.sortedKeys(fields)
	if err != nil {
		return zero, err
	}
	if len(keys) == 0 {
		return zero, fmt.Errorf("create on %s: no fields given", r.table)
	}

	placeholders := make([]string, len(keys))
	args := make([]any, len(keys))
	for i, k := range keys {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = fields[k]
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		r.table, strings.Join(keys, ", "), strings.Join(placeholders, ", "), r.SelectList(),
	)

	entity, err := r.scan(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if conflict := r.conflictError(err); conflict != nil {
			return zero, conflict
		}
		return zero, fmt.Errorf("insert into %s: %w", r.table, err)
	}
	return entity, nil
}

// GetByID fetches a record by id. The second return value reports
// whether the record exists.
func (r *Repository[T]) GetByID(ctx context.Context, id int64) (T, bool, error) {
	var zero T
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", r.SelectList(), r.table)

	entity, err := r.scan(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return zero, false, nil
	}
	if err != nil {
		return zero, false, fmt.Errorf("select from %s: %w", r.table, err)
	}
	return entity, true, nil
}

// GetByField fetches the first record whose column equals value,
// ordered by id so repeated calls see the same record.
func (r *Repository[T]) GetByField(ctx context.Context, name string, value any) (T, bool, error) {
	var zero T
	if _, ok := r.allowed[name]; !ok {
		return zero, false, fmt.Errorf("%w: %q on table %s", ErrUnknownField, name, r.table)
	}
	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s = $1 ORDER BY id LIMIT 1",
		r.SelectList(), r.table, name,
	)

	entity, err := r.scan(r.db.QueryRowContext(ctx, query, value))
	if errors.Is(err, sql.ErrNoRows) {
		return zero, false, nil
	}
	if err != nil {
		return zero, false, fmt.Errorf("select from %s: %w", r.table, err)
	}
	return entity, true, nil
}

// GetMany returns records ordered by id, skipping skip records and
// returning at most limit.
func (r *Repository[T]) GetMany(ctx context.Context, skip, limit int) ([]T, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM %s ORDER BY id OFFSET $1 LIMIT $2",
		r.SelectList(), r.table,
	)
	return r.queryMany(ctx, query, skip, limit)
}

// Update applies a partial update: only the supplied fields change.
// An absent id is reported through the bool, not as an error.
func (r *Repository[T]) Update(ctx context.Context, id int64, fields Fields) (T, bool, error) {
	var zero T
	if len(fields) == 0 {
		return r.GetByID(ctx, id)
	}
	keys, err := r.sortedKeys(fields)
	if err != nil {
		return zero, false, err
	}

	assignments := make([]string, len(keys))
	args := make([]any, 0, len(keys)+1)
	for i, k := range keys {
		assignments[i] = fmt.Sprintf("%s = $%d", k, i+1)
		args = append(args, fields[k])
	}
	args = append(args, id)

	query := fmt.Sprintf(
		"UPDATE %s SET %s WHERE id = $%d RETURNING %s",
		r.table, strings.Join(assignments, ", "), len(keys)+1, r.SelectList(),
	)

	entity, err := r.scan(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return zero, false, nil
	}
	if err != nil {
		if conflict := r.conflictError(err); conflict != nil {
			return zero, false, conflict
		}
		return zero, false, fmt.Errorf("update %s: %w", r.table, err)
	}
	return entity, true, nil
}

// Delete removes a record by id. It returns true if a record existed
// and was removed.
func (r *Repository[T]) Delete(ctx context.Context, id int64) (bool, error) {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1", r.table)
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("delete from %s: %w", r.table, err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete from %s: %w", r.table, err)
	}
	return rows > 0, nil
}

// whereClause builds "a = $1 AND b = $2" with deterministic column
// order. An empty criteria set yields an empty clause.
func (r *Repository[T]) whereClause(criteria Fields, argOffset int) (string, []any, error) {
	keys, err := r.sortedKeys(criteria)
	if err != nil {
		return "", nil, err
	}
	if len(keys) == 0 {
		return "", nil, nil
	}
	conditions := make([]string, len(keys))
	args := make([]any, len(keys))
	for i, k := range keys {
		conditions[i] = fmt.Sprintf("%s = $%d", k, argOffset+i+1)
		args[i] = criteria[k]
	}
	return strings.Join(conditions, " AND "), args, nil
}

// Exists reports whether any record matches all criteria.
func (r *Repository[T]) Exists(ctx context.Context, criteria Fields) (bool, error) {
	where, args, err := r.whereClause(criteria, 0)
	if err != nil {
		return false, err
	}
	query := fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s", r.table)
	if where != "" {
		query += " WHERE " + where
	}
	query += ")"

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists on %s: %w", r.table, err)
	}
	return exists, nil
}

// ExistsExcept is Exists with one record excluded by id, used by
// uniqueness checks on update so a record does not collide with itself.
func (r *Repository[T]) ExistsExcept(ctx context.Context, criteria Fields, excludeID int64) (bool, error) {
	where, args, err := r.whereClause(criteria, 0)
	if err != nil {
		return false, err
	}
	query := fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s WHERE ", r.table)
	if where != "" {
		query += where + " AND "
	}
	query += fmt.Sprintf("id <> $%d)", len(args)+1)
	args = append(args, excludeID)

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists on %s: %w", r.table, err)
	}
	return exists, nil
}

// Count returns the number of records matching all criteria.
func (r *Repository[T]) Count(ctx context.Context, criteria Fields) (int64, error) {
	where, args, err := r.whereClause(criteria, 0)
	if err != nil {
		return 0, err
	}
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", r.table)
	if where != "" {
		query += " WHERE " + where
	}

	var count int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count on %s: %w", r.table, err)
	}
	return count, nil
}

// FilterBy returns every record matching all criteria, ordered by id.
func (r *Repository[T]) FilterBy(ctx context.Context, criteria Fields) ([]T, error) {
	return r.FilterByOrdered(ctx, criteria, "id")
}

// FilterByOrdered is FilterBy with an explicit order column; id breaks
// ties. The order column must belong to the entity.
func (r *Repository[T]) FilterByOrdered(ctx context.Context, criteria Fields, orderColumn string) ([]T, error) {
	if orderColumn != "id" {
		if _, ok := r.allowed[orderColumn]; !ok {
			return nil, fmt.Errorf("%w: %q on table %s", ErrUnknownField, orderColumn, r.table)
		}
	}
	where, args, err := r.whereClause(criteria, 0)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf("SELECT %s FROM %s", r.SelectList(), r.table)
	if where != "" {
		query += " WHERE " + where
	}
	query += " ORDER BY " + orderColumn
	if orderColumn != "id" {
		query += ", id"
	}
	return r.queryMany(ctx, query, args...)
}

func (r *Repository[T]) queryMany(ctx context.Context, query string, args ...any) ([]T, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select from %s: %w", r.table, err)
	}
	defer rows.Close()

	var entities []T
	for rows.Next() {
		entity, err := r.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", r.table, err)
		}
		entities = append(entities, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", r.table, err)
	}
	return entities, nil
}
