package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/istanbulcare/backend/internal/models"
)

var serviceColumns = []string{
	"slug", "is_active",
	"title_tr", "title_en", "title_fr",
	"description_tr", "description_en", "description_fr",
	"content_tr", "content_en", "content_fr",
	"price", "duration",
	"featured_image_url", "gallery_urls",
}

func scanService(row rowScanner) (models.Service, error) {
	var (
		s     models.Service
		price sql.NullFloat64
	)
	err := row.Scan(
		&s.ID, &s.Slug, &s.IsActive,
		&s.TitleTR, &s.TitleEN, &s.TitleFR,
		&s.DescriptionTR, &s.DescriptionEN, &s.DescriptionFR,
		&s.ContentTR, &s.ContentEN, &s.ContentFR,
		&price, &s.Duration,
		&s.FeaturedImageURL, &s.GalleryURLs,
	)
	if err != nil {
		return s, err
	}
	if price.Valid {
		v := price.Float64
		s.Price = &v
	}
	return s, nil
}

// ServiceRepository persists catalog services.
type ServiceRepository struct {
	*Repository[models.Service]
}

// NewServiceRepository creates a ServiceRepository backed by db.
func NewServiceRepository(db *sql.DB) *ServiceRepository {
	return &ServiceRepository{
		Repository: New(db, "services", "Service", serviceColumns, scanService),
	}
}

// GetBySlug fetches a service by its globally unique slug.
func (r *ServiceRepository) GetBySlug(ctx context.Context, slug string) (models.Service, bool, error) {
	return r.GetByField(ctx, "slug", slug)
}

// ListActive returns active services, newest first.
func (r *ServiceRepository) ListActive(ctx context.Context) ([]models.Service, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE is_active = TRUE ORDER BY id DESC",
		r.SelectList(), r.Table(),
	)
	return r.queryMany(ctx, query)
}
