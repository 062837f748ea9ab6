package service

import (
	"context"

	"github.com/istanbulcare/backend/internal/apperrors"
	"github.com/istanbulcare/backend/internal/models"
	"github.com/istanbulcare/backend/internal/repository"
)

// LeadStore defines the persistence operations required by the lead
// service.
type LeadStore interface {
	Store[models.Lead]
	// ListRecent returns leads newest-first.
	ListRecent(ctx context.Context, skip, limit int) ([]models.Lead, error)
}

// LeadService captures contact leads. Leads are immutable once
// created; there are no update or delete operations.
type LeadService struct {
	*Base[models.Lead]
	store LeadStore
}

// NewLeadService constructs a LeadService using the provided store.
func NewLeadService(store LeadStore) *LeadService {
	hooks := Hooks[models.Lead]{
		ValidateCreate: validateLeadFields,
	}
	return &LeadService{
		Base:  NewBase(store, "Lead", nil, hooks),
		store: store,
	}
}

func validateLeadFields(fields repository.Fields) error {
	for _, required := range []string{"full_name", "phone_number", "source_form"} {
		value, present := fields[required]
		if !present {
			return apperrors.Validation(required + " is required")
		}
		if s, ok := value.(string); !ok || s == "" {
			return apperrors.Validation(required + " is required")
		}
	}
	return nil
}

// ListRecent returns leads newest-first.
func (s *LeadService) ListRecent(ctx context.Context, skip, limit int) ([]models.Lead, error) {
	return s.store.ListRecent(ctx, skip, limit)
}
