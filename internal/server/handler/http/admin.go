package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/istanbulcare/backend/internal/apperrors"
	"github.com/istanbulcare/backend/internal/httputil"
	"github.com/istanbulcare/backend/internal/middleware"
	"github.com/istanbulcare/backend/internal/models"
	"github.com/istanbulcare/backend/internal/repository"
)

// CatalogAdmin defines the catalog operations behind the admin guard.
type CatalogAdmin interface {
	Create(ctx context.Context, fields repository.Fields) (models.Service, error)
	GetByID(ctx context.Context, id int64) (models.Service, error)
	List(ctx context.Context, skip, limit int) ([]models.Service, error)
	Update(ctx context.Context, id int64, fields repository.Fields) (models.Service, error)
	Delete(ctx context.Context, id int64) error
}

// BlogAdmin defines the blog operations behind the admin guard.
type BlogAdmin interface {
	Create(ctx context.Context, fields repository.Fields) (models.BlogPost, error)
	GetByID(ctx context.Context, id int64) (models.BlogPost, error)
	List(ctx context.Context, skip, limit int) ([]models.BlogPost, error)
	ListByAuthor(ctx context.Context, authorID int64) ([]models.BlogPost, error)
	Update(ctx context.Context, id int64, fields repository.Fields) (models.BlogPost, error)
	Delete(ctx context.Context, id int64) error
}

// HeaderAdmin defines the navigation operations behind the admin guard.
type HeaderAdmin interface {
	CreateColumn(ctx context.Context, fields repository.Fields) (models.HeaderColumn, error)
	GetColumn(ctx context.Context, id int64) (models.HeaderColumn, error)
	ListColumns(ctx context.Context) ([]models.HeaderColumn, error)
	UpdateColumn(ctx context.Context, id int64, fields repository.Fields) (models.HeaderColumn, error)
	DeleteColumn(ctx context.Context, id int64) error

	CreateItem(ctx context.Context, fields repository.Fields) (models.HeaderItem, error)
	GetItem(ctx context.Context, id int64) (models.HeaderItem, error)
	ListItems(ctx context.Context, columnID int64) ([]models.HeaderItem, error)
	UpdateItem(ctx context.Context, id int64, fields repository.Fields) (models.HeaderItem, error)
	DeleteItem(ctx context.Context, id int64) error
}

// LeadAdmin lists captured leads.
type LeadAdmin interface {
	ListRecent(ctx context.Context, skip, limit int) ([]models.Lead, error)
}

// UserAdmin defines the account operations behind the admin guard.
type UserAdmin interface {
	List(ctx context.Context, skip, limit int) ([]models.User, error)
	Update(ctx context.Context, id int64, fields repository.Fields) (models.User, error)
}

// AdminHandler serves the privileged management endpoints. Every route
// using it is mounted behind the admin guard.
type AdminHandler struct {
	Catalog CatalogAdmin
	Blog    BlogAdmin
	Header  HeaderAdmin
	Leads   LeadAdmin
	Users   UserAdmin
}

// decodeFields reads a free-form JSON object into persistence fields,
// coercing the values whose Go types the service layer is strict
// about: id references become int64 and gallery URL arrays become a
// StringList.
func decodeFields(r *http.Request) (repository.Fields, error) {
	var raw map[string]any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		return nil, apperrors.Validation("invalid request body")
	}

	fields := repository.Fields(raw)
	for _, key := range []string{"column_id", "author_id"} {
		if v, ok := fields[key].(float64); ok {
			fields[key] = int64(v)
		}
	}
	if v, ok := fields["gallery_urls"].([]any); ok {
		urls := make(models.StringList, 0, len(v))
		for _, u := range v {
			s, ok := u.(string)
			if !ok {
				return nil, apperrors.Validation("gallery_urls must be a list of strings")
			}
			urls = append(urls, s)
		}
		fields["gallery_urls"] = urls
	}
	return fields, nil
}

// urlID parses the {id} path parameter.
func urlID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, apperrors.Validation("id must be an integer")
	}
	return id, nil
}

// listParams reads skip/limit pagination with sane defaults.
func listParams(r *http.Request) (skip, limit int) {
	skip = queryInt(r, "skip", 0)
	if skip < 0 {
		skip = 0
	}
	limit = queryInt(r, "limit", maxPageSize)
	if limit < 1 || limit > maxPageSize {
		limit = maxPageSize
	}
	return skip, limit
}

// CreateService creates a catalog entry.
func (h *AdminHandler) CreateService(w http.ResponseWriter, r *http.Request) {
	fields, err := decodeFields(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	svc, err := h.Catalog.Create(r.Context(), fields)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, svc)
}

// ListServices returns every catalog entry, active or not.
func (h *AdminHandler) ListServices(w http.ResponseWriter, r *http.Request) {
	skip, limit := listParams(r)
	services, err := h.Catalog.List(r.Context(), skip, limit)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, services)
}

// GetService returns one catalog entry by id.
func (h *AdminHandler) GetService(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	svc, err := h.Catalog.GetByID(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, svc)
}

// UpdateService applies a partial update to a catalog entry.
func (h *AdminHandler) UpdateService(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	fields, err := decodeFields(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	svc, err := h.Catalog.Update(r.Context(), id, fields)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, svc)
}

// DeleteService removes a catalog entry.
func (h *AdminHandler) DeleteService(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := h.Catalog.Delete(r.Context(), id); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CreatePost creates a blog post. When the payload carries no
// author_id, the authenticated admin becomes the author.
func (h *AdminHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	fields, err := decodeFields(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if _, ok := fields["author_id"]; !ok {
		if user, ok := middleware.UserFromContext(r.Context()); ok {
			fields["author_id"] = user.ID
		}
	}
	post, err := h.Blog.Create(r.Context(), fields)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, post)
}

// ListPosts returns every post regardless of publication state. An
// author_id query parameter restricts the listing to one author.
func (h *AdminHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	var (
		posts []models.BlogPost
		err   error
	)
	if authorID := queryInt(r, "author_id", 0); authorID != 0 {
		posts, err = h.Blog.ListByAuthor(r.Context(), int64(authorID))
	} else {
		skip, limit := listParams(r)
		posts, err = h.Blog.List(r.Context(), skip, limit)
	}
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, posts)
}

// GetPost returns one post by id.
func (h *AdminHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	post, err := h.Blog.GetByID(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, post)
}

// UpdatePost applies a partial update to a post.
func (h *AdminHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	fields, err := decodeFields(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	post, err := h.Blog.Update(r.Context(), id, fields)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, post)
}

// DeletePost removes a post.
func (h *AdminHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := h.Blog.Delete(r.Context(), id); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CreateColumn creates a navigation column.
func (h *AdminHandler) CreateColumn(w http.ResponseWriter, r *http.Request) {
	fields, err := decodeFields(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	column, err := h.Header.CreateColumn(r.Context(), fields)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, column)
}

// ListColumns returns every column in display order.
func (h *AdminHandler) ListColumns(w http.ResponseWriter, r *http.Request) {
	columns, err := h.Header.ListColumns(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, columns)
}

// GetColumn returns one column by id.
func (h *AdminHandler) GetColumn(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	column, err := h.Header.GetColumn(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, column)
}

// UpdateColumn applies a partial update to a column.
func (h *AdminHandler) UpdateColumn(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	fields, err := decodeFields(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	column, err := h.Header.UpdateColumn(r.Context(), id, fields)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, column)
}

// DeleteColumn removes a column and, through the storage cascade, its
// items.
func (h *AdminHandler) DeleteColumn(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := h.Header.DeleteColumn(r.Context(), id); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CreateItem creates a navigation item under an existing column.
func (h *AdminHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	fields, err := decodeFields(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	item, err := h.Header.CreateItem(r.Context(), fields)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, item)
}

// ListItems returns items in display order. A column_id query
// parameter restricts the listing to one column.
func (h *AdminHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	columnID := int64(queryInt(r, "column_id", 0))
	items, err := h.Header.ListItems(r.Context(), columnID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, items)
}

// GetItem returns one item by id.
func (h *AdminHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	item, err := h.Header.GetItem(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, item)
}

// UpdateItem applies a partial update to an item.
func (h *AdminHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	fields, err := decodeFields(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	item, err := h.Header.UpdateItem(r.Context(), id, fields)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, item)
}

// DeleteItem removes a single item.
func (h *AdminHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := h.Header.DeleteItem(r.Context(), id); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListLeads returns captured leads, newest-first.
func (h *AdminHandler) ListLeads(w http.ResponseWriter, r *http.Request) {
	skip, limit := listParams(r)
	leads, err := h.Leads.ListRecent(r.Context(), skip, limit)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, leads)
}

// ListUsers returns registered accounts.
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	skip, limit := listParams(r)
	users, err := h.Users.List(r.Context(), skip, limit)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, users)
}

// UpdateUser applies a partial account update. This is the only way
// an account gains or loses the admin flag.
func (h *AdminHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	fields, err := decodeFields(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	user, err := h.Users.Update(r.Context(), id, fields)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, user)
}
