package service

import (
	"context"

	"github.com/istanbulcare/backend/internal/apperrors"
	"github.com/istanbulcare/backend/internal/models"
	"github.com/istanbulcare/backend/internal/repository"
	"github.com/istanbulcare/backend/internal/security"
)

// UserStore defines the persistence operations required by the user
// service.
type UserStore interface {
	Store[models.User]
	// GetByEmail fetches a user by email.
	GetByEmail(ctx context.Context, email string) (models.User, bool, error)
}

// UserService implements account business logic: registration with
// email uniqueness and password hashing, credential authentication,
// and account updates.
type UserService struct {
	*Base[models.User]
	store UserStore
}

// NewUserService constructs a UserService using the provided store.
func NewUserService(store UserStore) *UserService {
	hooks := Hooks[models.User]{
		ValidateCreate: validateUserFields,
		ValidateUpdate: validateUserFields,
		BeforeCreate:   hashPasswordField,
		BeforeUpdate: func(ctx context.Context, _ models.User, fields repository.Fields) (repository.Fields, error) {
			return hashPasswordField(ctx, fields)
		},
	}
	return &UserService{
		Base:  NewBase(store, "User", &UniqueRule[models.User]{Field: "email"}, hooks),
		store: store,
	}
}

// validateUserFields rejects short passwords before they are hashed.
func validateUserFields(fields repository.Fields) error {
	return validateMinLength(fields, "password", 8)
}

// hashPasswordField replaces a plain "password" entry with its
// "password_hash" before the record reaches storage. The plain
// password never leaves this function.
func hashPasswordField(_ context.Context, fields repository.Fields) (repository.Fields, error) {
	password, present := fields["password"]
	if !present {
		return fields, nil
	}
	plain, ok := password.(string)
	if !ok {
		return nil, apperrors.Validation("password must be a string")
	}
	hash, err := security.HashPassword(plain)
	if err != nil {
		return nil, err
	}
	delete(fields, "password")
	fields["password_hash"] = hash
	return fields, nil
}

// Register creates a new non-admin account. A duplicate email fails
// with AlreadyExists.
func (s *UserService) Register(ctx context.Context, email, password string) (models.User, error) {
	return s.Create(ctx, repository.Fields{
		"email":    email,
		"password": password,
		"is_admin": false,
	})
}

// Authenticate verifies the credentials and returns the account. Any
// failure, unknown email included, is the same Unauthenticated outcome
// so callers cannot probe for registered addresses.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (models.User, error) {
	user, found, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		return models.User{}, err
	}
	if !found || !security.VerifyPassword(password, user.PasswordHash) {
		return models.User{}, apperrors.Unauthenticated("Invalid email or password")
	}
	return user, nil
}

// GetByEmail returns the account or a NotFound failure.
func (s *UserService) GetByEmail(ctx context.Context, email string) (models.User, error) {
	user, found, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		return models.User{}, err
	}
	if !found {
		return models.User{}, apperrors.NotFound("User", "email '"+email+"'")
	}
	return user, nil
}
