package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/istanbulcare/backend/internal/apperrors"
	"github.com/istanbulcare/backend/internal/repository"
)

func TestLeadService_Create(t *testing.T) {
	svc := NewLeadService(newFakeLeadStore())

	lead, err := svc.Create(context.Background(), repository.Fields{
		"full_name":    "Jane Doe",
		"phone_number": "+90 555 000 00 00",
		"source_form":  "contact",
	})
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", lead.FullName)
}

func TestLeadService_Create_MissingRequired(t *testing.T) {
	svc := NewLeadService(newFakeLeadStore())

	tests := []struct {
		name   string
		fields repository.Fields
	}{
		{
			name:   "missing phone",
			fields: repository.Fields{"full_name": "Jane Doe", "source_form": "contact"},
		},
		{
			name:   "empty name",
			fields: repository.Fields{"full_name": "", "phone_number": "+90", "source_form": "contact"},
		},
		{
			name:   "missing source form",
			fields: repository.Fields{"full_name": "Jane Doe", "phone_number": "+90"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.fields)
			require.Error(t, err)
			assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
		})
	}
}
