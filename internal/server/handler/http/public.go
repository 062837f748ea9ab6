package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/istanbulcare/backend/internal/httputil"
	"github.com/istanbulcare/backend/internal/models"
	"github.com/istanbulcare/backend/internal/repository"
)

// CatalogReader defines the catalog reads exposed to the public site.
type CatalogReader interface {
	// ListActive returns active services, newest first.
	ListActive(ctx context.Context) ([]models.Service, error)
	// GetActiveBySlug fetches an active service; inactive looks absent.
	GetActiveBySlug(ctx context.Context, slug string) (models.Service, error)
}

// BlogReader defines the blog reads exposed to the public site.
type BlogReader interface {
	// ListOrdered returns posts newest-first with the total count.
	ListOrdered(ctx context.Context, skip, limit int) ([]models.BlogPost, int64, error)
	// GetBySlug fetches a post by slug.
	GetBySlug(ctx context.Context, slug string) (models.BlogPost, error)
}

// NavigationReader builds the public header read model.
type NavigationReader interface {
	// Navigation returns active columns carrying their active items.
	Navigation(ctx context.Context) ([]models.HeaderColumn, error)
}

// LeadWriter captures contact leads.
type LeadWriter interface {
	Create(ctx context.Context, fields repository.Fields) (models.Lead, error)
}

// PublicHandler serves the unauthenticated site endpoints.
type PublicHandler struct {
	Catalog    CatalogReader
	Blog       BlogReader
	Navigation NavigationReader
	Leads      LeadWriter
}

// PostListResponse is the paginated blog listing payload.
type PostListResponse struct {
	Items []models.BlogPost `json:"items"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Size  int               `json:"size"`
}

// LeadRequest is the JSON payload for lead capture.
type LeadRequest struct {
	FullName    string `json:"full_name" validate:"required"`
	PhoneNumber string `json:"phone_number" validate:"required"`
	Email       string `json:"email" validate:"omitempty,email"`
	SourceForm  string `json:"source_form" validate:"required"`
}

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// ListServices returns the active services catalog.
func (h *PublicHandler) ListServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.Catalog.ListActive(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if services == nil {
		services = []models.Service{}
	}
	httputil.WriteJSON(w, http.StatusOK, services)
}

// GetService returns a single active service by slug. Inactive and
// unknown slugs are both a 404.
func (h *PublicHandler) GetService(w http.ResponseWriter, r *http.Request) {
	svc, err := h.Catalog.GetActiveBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, svc)
}

// ListPosts returns a page of blog posts, newest-first, with the total
// count. Page numbering starts at 1; the page size is capped.
func (h *PublicHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	if page < 1 {
		page = 1
	}
	size := queryInt(r, "size", defaultPageSize)
	if size < 1 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	posts, total, err := h.Blog.ListOrdered(r.Context(), (page-1)*size, size)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if posts == nil {
		posts = []models.BlogPost{}
	}

	httputil.WriteJSON(w, http.StatusOK, PostListResponse{
		Items: posts,
		Total: total,
		Page:  page,
		Size:  size,
	})
}

// GetPost returns a single post by slug.
func (h *PublicHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	post, err := h.Blog.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, post)
}

// GetHeader returns the navigation read model: active columns in
// display order, each with its active items.
func (h *PublicHandler) GetHeader(w http.ResponseWriter, r *http.Request) {
	columns, err := h.Navigation.Navigation(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if columns == nil {
		columns = []models.HeaderColumn{}
	}
	httputil.WriteJSON(w, http.StatusOK, columns)
}

// CreateLead captures a contact form submission.
func (h *PublicHandler) CreateLead(w http.ResponseWriter, r *http.Request) {
	var req LeadRequest
	if err := decodeValid(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	lead, err := h.Leads.Create(r.Context(), repository.Fields{
		"full_name":    req.FullName,
		"phone_number": req.PhoneNumber,
		"email":        req.Email,
		"source_form":  req.SourceForm,
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, lead)
}

// queryInt reads an integer query parameter, falling back to def on
// absence or garbage.
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return value
}
