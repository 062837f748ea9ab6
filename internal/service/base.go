// Package service provides the business logic for each entity,
// composing the generic persistence layer with uniqueness rules and
// lifecycle hooks. Services return typed apperrors failures; they
// never format transport responses.
package service

import (
	"context"
	"fmt"

	"github.com/istanbulcare/backend/internal/apperrors"
	"github.com/istanbulcare/backend/internal/repository"
)

// Store defines the persistence operations required by the generic
// base service. *repository.Repository[T] satisfies it.
type Store[T any] interface {
	Create(ctx context.Context, fields repository.Fields) (T, error)
	GetByID(ctx context.Context, id int64) (T, bool, error)
	GetMany(ctx context.Context, skip, limit int) ([]T, error)
	Update(ctx context.Context, id int64, fields repository.Fields) (T, bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	Exists(ctx context.Context, criteria repository.Fields) (bool, error)
	ExistsExcept(ctx context.Context, criteria repository.Fields, excludeID int64) (bool, error)
	Count(ctx context.Context, criteria repository.Fields) (int64, error)
	FilterBy(ctx context.Context, criteria repository.Fields) ([]T, error)
}

// Hooks are optional callbacks an entity can attach to inject
// validation and side effects around create and update. Nil fields
// are identity transforms.
type Hooks[T any] struct {
	// ValidateCreate checks field-level rules before a create.
	ValidateCreate func(fields repository.Fields) error
	// ValidateUpdate checks field-level rules before an update.
	ValidateUpdate func(fields repository.Fields) error
	// BeforeCreate may rewrite the fields about to be persisted.
	BeforeCreate func(ctx context.Context, fields repository.Fields) (repository.Fields, error)
	// AfterCreate may transform the created entity.
	AfterCreate func(ctx context.Context, entity T) (T, error)
	// BeforeUpdate may rewrite the fields based on the current record.
	BeforeUpdate func(ctx context.Context, current T, fields repository.Fields) (repository.Fields, error)
	// AfterUpdate may transform the updated entity.
	AfterUpdate func(ctx context.Context, entity T) (T, error)
}

// UniqueRule designates the entity's unique field. With a ScopeField
// the rule is composite: the value collides only among records sharing
// the same scope (header item slugs within one column).
type UniqueRule[T any] struct {
	// Field is the uniquely constrained column.
	Field string
	// ScopeField, when set, narrows uniqueness to records with the
	// same scope value.
	ScopeField string
	// ScopeOf reads the scope value from an existing record, used on
	// updates that change Field without supplying ScopeField.
	ScopeOf func(entity T) any
}

// Base implements the shared create/read/update/delete flow: validate,
// pre-check uniqueness, apply hooks, persist. The pre-check and the
// write are separate statements, so the storage-level unique index
// remains the authoritative guard under concurrent writers.
type Base[T any] struct {
	store    Store[T]
	resource string
	unique   *UniqueRule[T]
	hooks    Hooks[T]
}

// NewBase constructs the shared service core for one entity. unique
// may be nil for entities without a uniqueness rule.
func NewBase[T any](store Store[T], resource string, unique *UniqueRule[T], hooks Hooks[T]) *Base[T] {
	return &Base[T]{store: store, resource: resource, unique: unique, hooks: hooks}
}

// Create validates fields, enforces the uniqueness rule, runs the
// lifecycle hooks, and persists a new record.
func (b *Base[T]) Create(ctx context.Context, fields repository.Fields) (T, error) {
	var zero T

	if b.hooks.ValidateCreate != nil {
		if err := b.hooks.ValidateCreate(fields); err != nil {
			return zero, err
		}
	}

	if err := b.checkUniqueOnCreate(ctx, fields); err != nil {
		return zero, err
	}

	if b.hooks.BeforeCreate != nil {
		var err error
		if fields, err = b.hooks.BeforeCreate(ctx, fields); err != nil {
			return zero, err
		}
	}

	entity, err := b.store.Create(ctx, fields)
	if err != nil {
		return zero, err
	}

	if b.hooks.AfterCreate != nil {
		return b.hooks.AfterCreate(ctx, entity)
	}
	return entity, nil
}

// GetByID returns the record or a NotFound failure.
func (b *Base[T]) GetByID(ctx context.Context, id int64) (T, error) {
	entity, found, err := b.store.GetByID(ctx, id)
	if err != nil {
		return entity, err
	}
	if !found {
		return entity, apperrors.NotFound(b.resource, fmt.Sprintf("id %d", id))
	}
	return entity, nil
}

// List returns records in storage order with pagination.
func (b *Base[T]) List(ctx context.Context, skip, limit int) ([]T, error) {
	return b.store.GetMany(ctx, skip, limit)
}

// Update validates fields, re-checks uniqueness excluding the record
// itself, runs the lifecycle hooks, and applies a partial update.
// An absent id is a NotFound failure.
func (b *Base[T]) Update(ctx context.Context, id int64, fields repository.Fields) (T, error) {
	var zero T

	current, found, err := b.store.GetByID(ctx, id)
	if err != nil {
		return zero, err
	}
	if !found {
		return zero, apperrors.NotFound(b.resource, fmt.Sprintf("id %d", id))
	}

	if b.hooks.ValidateUpdate != nil {
		if err := b.hooks.ValidateUpdate(fields); err != nil {
			return zero, err
		}
	}

	if err := b.checkUniqueOnUpdate(ctx, id, current, fields); err != nil {
		return zero, err
	}

	if b.hooks.BeforeUpdate != nil {
		if fields, err = b.hooks.BeforeUpdate(ctx, current, fields); err != nil {
			return zero, err
		}
	}

	entity, found, err := b.store.Update(ctx, id, fields)
	if err != nil {
		return zero, err
	}
	if !found {
		// Deleted between the read and the write.
		return zero, apperrors.NotFound(b.resource, fmt.Sprintf("id %d", id))
	}

	if b.hooks.AfterUpdate != nil {
		return b.hooks.AfterUpdate(ctx, entity)
	}
	return entity, nil
}

// Delete removes the record or reports NotFound.
func (b *Base[T]) Delete(ctx context.Context, id int64) error {
	deleted, err := b.store.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.NotFound(b.resource, fmt.Sprintf("id %d", id))
	}
	return nil
}

// Exists reports whether a record matches all criteria.
func (b *Base[T]) Exists(ctx context.Context, criteria repository.Fields) (bool, error) {
	return b.store.Exists(ctx, criteria)
}

// Count returns the number of records matching all criteria.
func (b *Base[T]) Count(ctx context.Context, criteria repository.Fields) (int64, error) {
	return b.store.Count(ctx, criteria)
}

func (b *Base[T]) checkUniqueOnCreate(ctx context.Context, fields repository.Fields) error {
	if b.unique == nil {
		return nil
	}
	value, present := fields[b.unique.Field]
	if !present {
		return nil
	}
	criteria := repository.Fields{b.unique.Field: value}
	if b.unique.ScopeField != "" {
		scope, ok := fields[b.unique.ScopeField]
		if !ok {
			return apperrors.Validation(fmt.Sprintf("%s is required", b.unique.ScopeField))
		}
		criteria[b.unique.ScopeField] = scope
	}
	exists, err := b.store.Exists(ctx, criteria)
	if err != nil {
		return err
	}
	if exists {
		return apperrors.AlreadyExists(b.resource, b.unique.Field, fmt.Sprint(value))
	}
	return nil
}

func (b *Base[T]) checkUniqueOnUpdate(ctx context.Context, id int64, current T, fields repository.Fields) error {
	if b.unique == nil {
		return nil
	}
	value, present := fields[b.unique.Field]
	if !present {
		return nil
	}
	criteria := repository.Fields{b.unique.Field: value}
	if b.unique.ScopeField != "" {
		if scope, ok := fields[b.unique.ScopeField]; ok {
			criteria[b.unique.ScopeField] = scope
		} else if b.unique.ScopeOf != nil {
			criteria[b.unique.ScopeField] = b.unique.ScopeOf(current)
		}
	}
	exists, err := b.store.ExistsExcept(ctx, criteria, id)
	if err != nil {
		return err
	}
	if exists {
		return apperrors.AlreadyExists(b.resource, b.unique.Field, fmt.Sprint(value))
	}
	return nil
}
