package service

import (
	"fmt"
	"regexp"

	"github.com/istanbulcare/backend/internal/apperrors"
	"github.com/istanbulcare/backend/internal/repository"
)

// slugPattern accepts URL-safe identifiers: alphanumerics joined by
// hyphens or underscores.
var slugPattern = regexp.MustCompile(`^[a-zA-Z0-9]+(?:[-_][a-zA-Z0-9]+)*$`)

// validateSlugField checks the "slug" entry of fields, when present.
func validateSlugField(fields repository.Fields) error {
	value, present := fields["slug"]
	if !present {
		return nil
	}
	slug, ok := value.(string)
	if !ok || slug == "" {
		return apperrors.Validation("Slug must be a non-empty string")
	}
	if !slugPattern.MatchString(slug) {
		return apperrors.Validation("Slug must contain only alphanumeric characters, hyphens, and underscores")
	}
	return nil
}

// validateMinLength checks that a string field, when present, has at
// least min characters.
func validateMinLength(fields repository.Fields, name string, min int) error {
	value, present := fields[name]
	if !present {
		return nil
	}
	s, ok := value.(string)
	if !ok {
		return apperrors.Validation(fmt.Sprintf("%s must be a string", name))
	}
	if len(s) < min {
		return apperrors.Validation(fmt.Sprintf("%s must be at least %d characters long", name, min))
	}
	return nil
}
