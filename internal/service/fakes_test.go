package service

import (
	"context"
	"sort"

	"github.com/istanbulcare/backend/internal/models"
	"github.com/istanbulcare/backend/internal/repository"
)

// fakeStore is an in-memory Store implementation driven by three
// entity-specific closures: materialize a new record, apply a partial
// update, and match a record against criteria.
type fakeStore[T any] struct {
	byID   map[int64]T
	nextID int64

	makeFn  func(id int64, fields repository.Fields) T
	applyFn func(current T, fields repository.Fields) T
	matchFn func(entity T, criteria repository.Fields) bool
}

func newFakeStore[T any](
	makeFn func(int64, repository.Fields) T,
	applyFn func(T, repository.Fields) T,
	matchFn func(T, repository.Fields) bool,
) *fakeStore[T] {
	return &fakeStore[T]{
		byID:    make(map[int64]T),
		makeFn:  makeFn,
		applyFn: applyFn,
		matchFn: matchFn,
	}
}

func (f *fakeStore[T]) ids() []int64 {
	ids := make([]int64, 0, len(f.byID))
	for id := range f.byID {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (f *fakeStore[T]) Create(_ context.Context, fields repository.Fields) (T, error) {
	f.nextID++
	entity := f.makeFn(f.nextID, fields)
	f.byID[f.nextID] = entity
	return entity, nil
}

func (f *fakeStore[T]) GetByID(_ context.Context, id int64) (T, bool, error) {
	entity, ok := f.byID[id]
	return entity, ok, nil
}

func (f *fakeStore[T]) GetMany(_ context.Context, skip, limit int) ([]T, error) {
	var out []T
	for i, id := range f.ids() {
		if i < skip {
			continue
		}
		if len(out) == limit {
			break
		}
		out = append(out, f.byID[id])
	}
	return out, nil
}

func (f *fakeStore[T]) Update(_ context.Context, id int64, fields repository.Fields) (T, bool, error) {
	current, ok := f.byID[id]
	if !ok {
		var zero T
		return zero, false, nil
	}
	updated := f.applyFn(current, fields)
	f.byID[id] = updated
	return updated, true, nil
}

func (f *fakeStore[T]) Delete(_ context.Context, id int64) (bool, error) {
	_, ok := f.byID[id]
	delete(f.byID, id)
	return ok, nil
}

func (f *fakeStore[T]) Exists(_ context.Context, criteria repository.Fields) (bool, error) {
	for _, entity := range f.byID {
		if f.matchFn(entity, criteria) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore[T]) ExistsExcept(_ context.Context, criteria repository.Fields, excludeID int64) (bool, error) {
	for id, entity := range f.byID {
		if id != excludeID && f.matchFn(entity, criteria) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore[T]) Count(_ context.Context, criteria repository.Fields) (int64, error) {
	var count int64
	for _, entity := range f.byID {
		if len(criteria) == 0 || f.matchFn(entity, criteria) {
			count++
		}
	}
	return count, nil
}

func (f *fakeStore[T]) FilterBy(_ context.Context, criteria repository.Fields) ([]T, error) {
	var out []T
	for _, id := range f.ids() {
		if f.matchFn(f.byID[id], criteria) {
			out = append(out, f.byID[id])
		}
	}
	return out, nil
}

// ---- users ----

type fakeUserStore struct {
	*fakeStore[models.User]
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{newFakeStore(
		func(id int64, f repository.Fields) models.User {
			u := models.User{ID: id}
			if v, ok := f["email"].(string); ok {
				u.Email = v
			}
			if v, ok := f["password_hash"].(string); ok {
				u.PasswordHash = v
			}
			if v, ok := f["is_admin"].(bool); ok {
				u.IsAdmin = v
			}
			return u
		},
		func(u models.User, f repository.Fields) models.User {
			if v, ok := f["email"].(string); ok {
				u.Email = v
			}
			if v, ok := f["password_hash"].(string); ok {
				u.PasswordHash = v
			}
			if v, ok := f["is_admin"].(bool); ok {
				u.IsAdmin = v
			}
			return u
		},
		func(u models.User, c repository.Fields) bool {
			if v, ok := c["email"].(string); ok && u.Email != v {
				return false
			}
			if v, ok := c["is_admin"].(bool); ok && u.IsAdmin != v {
				return false
			}
			return true
		},
	)}
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (models.User, bool, error) {
	for _, u := range f.byID {
		if u.Email == email {
			return u, true, nil
		}
	}
	return models.User{}, false, nil
}

// ---- blog posts ----

type fakeBlogStore struct {
	*fakeStore[models.BlogPost]
}

func newFakeBlogStore() *fakeBlogStore {
	return &fakeBlogStore{newFakeStore(
		func(id int64, f repository.Fields) models.BlogPost {
			p := models.BlogPost{ID: id}
			if v, ok := f["slug"].(string); ok {
				p.Slug = v
			}
			if v, ok := f["author_id"].(int64); ok {
				p.AuthorID = v
			}
			if v, ok := f["title_en"].(string); ok {
				p.TitleEN = v
			}
			return p
		},
		func(p models.BlogPost, f repository.Fields) models.BlogPost {
			if v, ok := f["slug"].(string); ok {
				p.Slug = v
			}
			if v, ok := f["title_en"].(string); ok {
				p.TitleEN = v
			}
			return p
		},
		func(p models.BlogPost, c repository.Fields) bool {
			if v, ok := c["slug"].(string); ok && p.Slug != v {
				return false
			}
			if v, ok := c["author_id"].(int64); ok && p.AuthorID != v {
				return false
			}
			return true
		},
	)}
}

func (f *fakeBlogStore) GetBySlug(_ context.Context, slug string) (models.BlogPost, bool, error) {
	for _, p := range f.byID {
		if p.Slug == slug {
			return p, true, nil
		}
	}
	return models.BlogPost{}, false, nil
}

func (f *fakeBlogStore) ListOrdered(ctx context.Context, skip, limit int) ([]models.BlogPost, error) {
	return f.GetMany(ctx, skip, limit)
}

func (f *fakeBlogStore) ListByAuthor(ctx context.Context, authorID int64) ([]models.BlogPost, error) {
	return f.FilterBy(ctx, repository.Fields{"author_id": authorID})
}

// ---- header columns and items ----

type fakeColumnStore struct {
	*fakeStore[models.HeaderColumn]
}

func newFakeColumnStore() *fakeColumnStore {
	return &fakeColumnStore{newFakeStore(
		func(id int64, f repository.Fields) models.HeaderColumn {
			c := models.HeaderColumn{ID: id, IsActive: true}
			if v, ok := f["slug"].(string); ok {
				c.Slug = v
			}
			if v, ok := f["name_en"].(string); ok {
				c.NameEN = v
			}
			if v, ok := f["is_active"].(bool); ok {
				c.IsActive = v
			}
			return c
		},
		func(c models.HeaderColumn, f repository.Fields) models.HeaderColumn {
			if v, ok := f["slug"].(string); ok {
				c.Slug = v
			}
			if v, ok := f["is_active"].(bool); ok {
				c.IsActive = v
			}
			return c
		},
		func(c models.HeaderColumn, crit repository.Fields) bool {
			if v, ok := crit["slug"].(string); ok && c.Slug != v {
				return false
			}
			if v, ok := crit["is_active"].(bool); ok && c.IsActive != v {
				return false
			}
			return true
		},
	)}
}

func (f *fakeColumnStore) ListOrdered(ctx context.Context) ([]models.HeaderColumn, error) {
	return f.FilterBy(ctx, repository.Fields{})
}

func (f *fakeColumnStore) ListActive(ctx context.Context) ([]models.HeaderColumn, error) {
	return f.FilterBy(ctx, repository.Fields{"is_active": true})
}

type fakeItemStore struct {
	*fakeStore[models.HeaderItem]
}

func newFakeItemStore() *fakeItemStore {
	return &fakeItemStore{newFakeStore(
		func(id int64, f repository.Fields) models.HeaderItem {
			i := models.HeaderItem{ID: id, IsActive: true}
			if v, ok := f["column_id"].(int64); ok {
				i.ColumnID = v
			}
			if v, ok := f["slug"].(string); ok {
				i.Slug = v
			}
			if v, ok := f["is_active"].(bool); ok {
				i.IsActive = v
			}
			return i
		},
		func(i models.HeaderItem, f repository.Fields) models.HeaderItem {
			if v, ok := f["column_id"].(int64); ok {
				i.ColumnID = v
			}
			if v, ok := f["slug"].(string); ok {
				i.Slug = v
			}
			if v, ok := f["is_active"].(bool); ok {
				i.IsActive = v
			}
			return i
		},
		func(i models.HeaderItem, c repository.Fields) bool {
			if v, ok := c["slug"].(string); ok && i.Slug != v {
				return false
			}
			if v, ok := c["column_id"].(int64); ok && i.ColumnID != v {
				return false
			}
			return true
		},
	)}
}

func (f *fakeItemStore) ListByColumn(ctx context.Context, columnID int64) ([]models.HeaderItem, error) {
	return f.FilterBy(ctx, repository.Fields{"column_id": columnID})
}

func (f *fakeItemStore) ListOrdered(ctx context.Context) ([]models.HeaderItem, error) {
	return f.FilterBy(ctx, repository.Fields{})
}

// ---- leads ----

type fakeLeadStore struct {
	*fakeStore[models.Lead]
}

func newFakeLeadStore() *fakeLeadStore {
	return &fakeLeadStore{newFakeStore(
		func(id int64, f repository.Fields) models.Lead {
			l := models.Lead{ID: id}
			if v, ok := f["full_name"].(string); ok {
				l.FullName = v
			}
			if v, ok := f["phone_number"].(string); ok {
				l.PhoneNumber = v
			}
			if v, ok := f["source_form"].(string); ok {
				l.SourceForm = v
			}
			return l
		},
		func(l models.Lead, _ repository.Fields) models.Lead { return l },
		func(models.Lead, repository.Fields) bool { return true },
	)}
}

func (f *fakeLeadStore) ListRecent(ctx context.Context, skip, limit int) ([]models.Lead, error) {
	return f.GetMany(ctx, skip, limit)
}
