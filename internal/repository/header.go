package repository

import (
	"context"
	"database/sql"

	"github.com/istanbulcare/backend/internal/models"
)

var headerColumnColumns = []string{
	"name_tr", "name_en", "slug", "is_active", "position", "type", "url",
}

func scanHeaderColumn(row rowScanner) (models.HeaderColumn, error) {
	var c models.HeaderColumn
	err := row.Scan(
		&c.ID, &c.NameTR, &c.NameEN, &c.Slug,
		&c.IsActive, &c.Position, &c.Type, &c.URL,
	)
	return c, err
}

// HeaderColumnRepository persists top-level navigation columns.
type HeaderColumnRepository struct {
	*Repository[models.HeaderColumn]
}

// NewHeaderColumnRepository creates a HeaderColumnRepository backed by db.
func NewHeaderColumnRepository(db *sql.DB) *HeaderColumnRepository {
	return &HeaderColumnRepository{
		Repository: New(db, "header_columns", "Header column", headerColumnColumns, scanHeaderColumn),
	}
}

// ListOrdered returns every column in display order.
func (r *HeaderColumnRepository) ListOrdered(ctx context.Context) ([]models.HeaderColumn, error) {
	return r.FilterByOrdered(ctx, nil, "position")
}

// ListActive returns active columns in display order.
func (r *HeaderColumnRepository) ListActive(ctx context.Context) ([]models.HeaderColumn, error) {
	return r.FilterByOrdered(ctx, Fields{"is_active": true}, "position")
}

var headerItemColumns = []string{
	"column_id", "name_tr", "name_en", "slug", "url", "is_active", "position",
}

func scanHeaderItem(row rowScanner) (models.HeaderItem, error) {
	var i models.HeaderItem
	err := row.Scan(
		&i.ID, &i.ColumnID, &i.NameTR, &i.NameEN,
		&i.Slug, &i.URL, &i.IsActive, &i.Position,
	)
	return i, err
}

// HeaderItemRepository persists navigation items owned by columns.
// Deleting a column cascades to its items at the storage layer.
type HeaderItemRepository struct {
	*Repository[models.HeaderItem]
}

// NewHeaderItemRepository creates a HeaderItemRepository backed by db.
func NewHeaderItemRepository(db *sql.DB) *HeaderItemRepository {
	return &HeaderItemRepository{
		Repository: New(db, "header_items", "Header item", headerItemColumns, scanHeaderItem),
	}
}

// ListByColumn returns the items of one column in display order.
func (r *HeaderItemRepository) ListByColumn(ctx context.Context, columnID int64) ([]models.HeaderItem, error) {
	return r.FilterByOrdered(ctx, Fields{"column_id": columnID}, "position")
}

// ListOrdered returns every item in display order.
func (r *HeaderItemRepository) ListOrdered(ctx context.Context) ([]models.HeaderItem, error) {
	return r.FilterByOrdered(ctx, nil, "position")
}
