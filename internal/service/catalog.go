package service

import (
	"context"

	"github.com/istanbulcare/backend/internal/apperrors"
	"github.com/istanbulcare/backend/internal/models"
)

// CatalogStore defines the persistence operations required by the
// catalog service.
type CatalogStore interface {
	Store[models.Service]
	// GetBySlug fetches a service by its globally unique slug.
	GetBySlug(ctx context.Context, slug string) (models.Service, bool, error)
	// ListActive returns active services, newest first.
	ListActive(ctx context.Context) ([]models.Service, error)
}

// CatalogService implements business logic for the services catalog.
type CatalogService struct {
	*Base[models.Service]
	store CatalogStore
}

// NewCatalogService constructs a CatalogService using the provided store.
func NewCatalogService(store CatalogStore) *CatalogService {
	hooks := Hooks[models.Service]{
		ValidateCreate: validateSlugField,
		ValidateUpdate: validateSlugField,
	}
	return &CatalogService{
		Base:  NewBase(store, "Service", &UniqueRule[models.Service]{Field: "slug"}, hooks),
		store: store,
	}
}

// GetBySlug returns the service or a NotFound failure.
func (s *CatalogService) GetBySlug(ctx context.Context, slug string) (models.Service, error) {
	svc, found, err := s.store.GetBySlug(ctx, slug)
	if err != nil {
		return models.Service{}, err
	}
	if !found {
		return models.Service{}, apperrors.NotFound("Service", "slug '"+slug+"'")
	}
	return svc, nil
}

// GetActiveBySlug is GetBySlug restricted to active services, used by
// the public surface where inactive entries must look absent.
func (s *CatalogService) GetActiveBySlug(ctx context.Context, slug string) (models.Service, error) {
	svc, err := s.GetBySlug(ctx, slug)
	if err != nil {
		return models.Service{}, err
	}
	if !svc.IsActive {
		return models.Service{}, apperrors.NotFound("Service", "slug '"+slug+"'")
	}
	return svc, nil
}

// ListActive returns active services, newest first.
func (s *CatalogService) ListActive(ctx context.Context) ([]models.Service, error) {
	return s.store.ListActive(ctx)
}
