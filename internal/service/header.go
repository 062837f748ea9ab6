package service

import (
	"context"
	"fmt"

	"github.com/istanbulcare/backend/internal/apperrors"
	"github.com/istanbulcare/backend/internal/models"
	"github.com/istanbulcare/backend/internal/repository"
)

// HeaderColumnStore defines the persistence operations required for
// navigation columns.
type HeaderColumnStore interface {
	Store[models.HeaderColumn]
	// ListOrdered returns every column in display order.
	ListOrdered(ctx context.Context) ([]models.HeaderColumn, error)
	// ListActive returns active columns in display order.
	ListActive(ctx context.Context) ([]models.HeaderColumn, error)
}

// HeaderItemStore defines the persistence operations required for
// navigation items.
type HeaderItemStore interface {
	Store[models.HeaderItem]
	// ListByColumn returns one column's items in display order.
	ListByColumn(ctx context.Context, columnID int64) ([]models.HeaderItem, error)
	// ListOrdered returns every item in display order.
	ListOrdered(ctx context.Context) ([]models.HeaderItem, error)
}

// HeaderService implements navigation business logic. Column slugs are
// globally unique; item slugs are unique only within their owning
// column. Deleting a column cascades to its items at the storage layer.
type HeaderService struct {
	columns *Base[models.HeaderColumn]
	items   *Base[models.HeaderItem]

	columnStore HeaderColumnStore
	itemStore   HeaderItemStore
}

// NewHeaderService constructs a HeaderService over both stores.
func NewHeaderService(columns HeaderColumnStore, items HeaderItemStore) *HeaderService {
	columnHooks := Hooks[models.HeaderColumn]{
		ValidateCreate: validateSlugField,
		ValidateUpdate: validateSlugField,
	}
	itemHooks := Hooks[models.HeaderItem]{
		ValidateCreate: validateSlugField,
		ValidateUpdate: validateSlugField,
	}
	return &HeaderService{
		columns: NewBase(columns, "Header column",
			&UniqueRule[models.HeaderColumn]{Field: "slug"}, columnHooks),
		items: NewBase(items, "Header item",
			&UniqueRule[models.HeaderItem]{
				Field:      "slug",
				ScopeField: "column_id",
				ScopeOf:    func(i models.HeaderItem) any { return i.ColumnID },
			}, itemHooks),
		columnStore: columns,
		itemStore:   items,
	}
}

// CreateColumn creates a navigation column with a globally unique slug.
func (s *HeaderService) CreateColumn(ctx context.Context, fields repository.Fields) (models.HeaderColumn, error) {
	return s.columns.Create(ctx, fields)
}

// GetColumn returns the column or a NotFound failure.
func (s *HeaderService) GetColumn(ctx context.Context, id int64) (models.HeaderColumn, error) {
	return s.columns.GetByID(ctx, id)
}

// ListColumns returns every column in display order.
func (s *HeaderService) ListColumns(ctx context.Context) ([]models.HeaderColumn, error) {
	return s.columnStore.ListOrdered(ctx)
}

// UpdateColumn applies a partial update to a column.
func (s *HeaderService) UpdateColumn(ctx context.Context, id int64, fields repository.Fields) (models.HeaderColumn, error) {
	return s.columns.Update(ctx, id, fields)
}

// DeleteColumn removes a column; its items go with it.
func (s *HeaderService) DeleteColumn(ctx context.Context, id int64) error {
	return s.columns.Delete(ctx, id)
}

// CreateItem creates a navigation item under an existing column. The
// item's slug must be unique within that column only.
func (s *HeaderService) CreateItem(ctx context.Context, fields repository.Fields) (models.HeaderItem, error) {
	columnID, ok := fields["column_id"]
	if !ok {
		return models.HeaderItem{}, apperrors.Validation("column_id is required")
	}
	id, ok := columnID.(int64)
	if !ok {
		return models.HeaderItem{}, apperrors.Validation("column_id must be an integer")
	}
	if _, err := s.columns.GetByID(ctx, id); err != nil {
		return models.HeaderItem{}, err
	}
	return s.items.Create(ctx, fields)
}

// GetItem returns the item or a NotFound failure.
func (s *HeaderService) GetItem(ctx context.Context, id int64) (models.HeaderItem, error) {
	return s.items.GetByID(ctx, id)
}

// ListItems returns items in display order, optionally restricted to
// one column (pass 0 for all).
func (s *HeaderService) ListItems(ctx context.Context, columnID int64) ([]models.HeaderItem, error) {
	if columnID == 0 {
		return s.itemStore.ListOrdered(ctx)
	}
	return s.itemStore.ListByColumn(ctx, columnID)
}

// UpdateItem applies a partial update to an item. A slug change is
// checked against the item's current column unless the update moves it.
func (s *HeaderService) UpdateItem(ctx context.Context, id int64, fields repository.Fields) (models.HeaderItem, error) {
	if columnID, ok := fields["column_id"]; ok {
		cid, ok := columnID.(int64)
		if !ok {
			return models.HeaderItem{}, apperrors.Validation("column_id must be an integer")
		}
		if _, err := s.columns.GetByID(ctx, cid); err != nil {
			return models.HeaderItem{}, err
		}
	}
	return s.items.Update(ctx, id, fields)
}

// DeleteItem removes a single item.
func (s *HeaderService) DeleteItem(ctx context.Context, id int64) error {
	return s.items.Delete(ctx, id)
}

// Navigation returns the public read model: active columns in display
// order, each carrying its active items.
func (s *HeaderService) Navigation(ctx context.Context) ([]models.HeaderColumn, error) {
	columns, err := s.columnStore.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	for i := range columns {
		items, err := s.itemStore.ListByColumn(ctx, columns[i].ID)
		if err != nil {
			return nil, fmt.Errorf("load items for column %d: %w", columns[i].ID, err)
		}
		active := items[:0]
		for _, item := range items {
			if item.IsActive {
				active = append(active, item)
			}
		}
		columns[i].Items = active
	}
	return columns, nil
}
