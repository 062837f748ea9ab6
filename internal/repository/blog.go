package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/istanbulcare/backend/internal/models"
)

var blogColumns = []string{
	"slug", "author_id", "published_date",
	"title_tr", "title_en", "title_fr",
	"description_tr", "description_en", "description_fr",
	"content_tr", "content_en", "content_fr",
	"featured_image_url", "gallery_urls",
}

func scanBlogPost(row rowScanner) (models.BlogPost, error) {
	var (
		p   models.BlogPost
		pub sql.NullTime
	)
	err := row.Scan(
		&p.ID, &p.Slug, &p.AuthorID, &pub,
		&p.TitleTR, &p.TitleEN, &p.TitleFR,
		&p.DescriptionTR, &p.DescriptionEN, &p.DescriptionFR,
		&p.ContentTR, &p.ContentEN, &p.ContentFR,
		&p.FeaturedImageURL, &p.GalleryURLs,
	)
	if err != nil {
		return p, err
	}
	if pub.Valid {
		t := pub.Time
		p.PublishedDate = &t
	}
	return p, nil
}

// BlogRepository persists blog posts.
type BlogRepository struct {
	*Repository[models.BlogPost]
}

// NewBlogRepository creates a BlogRepository backed by db.
func NewBlogRepository(db *sql.DB) *BlogRepository {
	return &BlogRepository{
		Repository: New(db, "blog_posts", "Blog post", blogColumns, scanBlogPost),
	}
}

// GetBySlug fetches a post by its globally unique slug.
func (r *BlogRepository) GetBySlug(ctx context.Context, slug string) (models.BlogPost, bool, error) {
	return r.GetByField(ctx, "slug", slug)
}

// ListOrdered returns posts newest-first by publish date, unpublished
// last, with id as the tiebreak.
func (r *BlogRepository) ListOrdered(ctx context.Context, skip, limit int) ([]models.BlogPost, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM %s ORDER BY published_date DESC NULLS LAST, id DESC OFFSET $1 LIMIT $2",
		r.SelectList(), r.Table(),
	)
	return r.queryMany(ctx, query, skip, limit)
}

// ListByAuthor returns every post written by the given author.
func (r *BlogRepository) ListByAuthor(ctx context.Context, authorID int64) ([]models.BlogPost, error) {
	return r.FilterBy(ctx, Fields{"author_id": authorID})
}
