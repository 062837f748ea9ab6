package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/istanbulcare/backend/internal/models"
)

var leadColumns = []string{"full_name", "phone_number", "email", "source_form", "created_at"}

func scanLead(row rowScanner) (models.Lead, error) {
	var l models.Lead
	err := row.Scan(&l.ID, &l.FullName, &l.PhoneNumber, &l.Email, &l.SourceForm, &l.CreatedAt)
	return l, err
}

// LeadRepository persists captured leads. Leads are immutable once
// created; only Create and read operations are meaningful here.
type LeadRepository struct {
	*Repository[models.Lead]
}

// NewLeadRepository creates a LeadRepository backed by db.
func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{
		Repository: New(db, "leads", "Lead", leadColumns, scanLead),
	}
}

// ListRecent returns leads newest-first.
func (r *LeadRepository) ListRecent(ctx context.Context, skip, limit int) ([]models.Lead, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM %s ORDER BY created_at DESC, id DESC OFFSET $1 LIMIT $2",
		r.SelectList(), r.Table(),
	)
	return r.queryMany(ctx, query, skip, limit)
}
