package service

import (
	"context"

	"github.com/istanbulcare/backend/internal/apperrors"
	"github.com/istanbulcare/backend/internal/models"
	"github.com/istanbulcare/backend/internal/repository"
)

// BlogStore defines the persistence operations required by the blog
// service.
type BlogStore interface {
	Store[models.BlogPost]
	// GetBySlug fetches a post by its globally unique slug.
	GetBySlug(ctx context.Context, slug string) (models.BlogPost, bool, error)
	// ListOrdered returns posts newest-first by publish date.
	ListOrdered(ctx context.Context, skip, limit int) ([]models.BlogPost, error)
	// ListByAuthor returns posts written by one author.
	ListByAuthor(ctx context.Context, authorID int64) ([]models.BlogPost, error)
}

// BlogService implements blog post business logic: global slug
// uniqueness and field validation around the generic CRUD flow.
type BlogService struct {
	*Base[models.BlogPost]
	store BlogStore
}

// NewBlogService constructs a BlogService using the provided store.
func NewBlogService(store BlogStore) *BlogService {
	hooks := Hooks[models.BlogPost]{
		ValidateCreate: validateBlogFields,
		ValidateUpdate: validateBlogFields,
	}
	return &BlogService{
		Base:  NewBase(store, "Blog post", &UniqueRule[models.BlogPost]{Field: "slug"}, hooks),
		store: store,
	}
}

func validateBlogFields(fields repository.Fields) error {
	if err := validateSlugField(fields); err != nil {
		return err
	}
	return validateMinLength(fields, "title_en", 3)
}

// GetBySlug returns the post or a NotFound failure.
func (s *BlogService) GetBySlug(ctx context.Context, slug string) (models.BlogPost, error) {
	post, found, err := s.store.GetBySlug(ctx, slug)
	if err != nil {
		return models.BlogPost{}, err
	}
	if !found {
		return models.BlogPost{}, apperrors.NotFound("Blog post", "slug '"+slug+"'")
	}
	return post, nil
}

// ListOrdered returns posts newest-first with the total count, for
// paginated listings.
func (s *BlogService) ListOrdered(ctx context.Context, skip, limit int) ([]models.BlogPost, int64, error) {
	total, err := s.Count(ctx, nil)
	if err != nil {
		return nil, 0, err
	}
	posts, err := s.store.ListOrdered(ctx, skip, limit)
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// ListByAuthor returns every post written by the given author.
func (s *BlogService) ListByAuthor(ctx context.Context, authorID int64) ([]models.BlogPost, error) {
	return s.store.ListByAuthor(ctx, authorID)
}
