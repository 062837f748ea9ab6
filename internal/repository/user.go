package repository

import (
	"context"
	"database/sql"

	"github.com/istanbulcare/backend/internal/models"
)

var userColumns = []string{"email", "password_hash", "is_admin"}

func scanUser(row rowScanner) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.IsAdmin)
	return u, err
}

// UserRepository persists application accounts.
type UserRepository struct {
	*Repository[models.User]
}

// NewUserRepository creates a UserRepository backed by db.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{
		Repository: New(db, "users", "User", userColumns, scanUser),
	}
}

// GetByEmail fetches a user by email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (models.User, bool, error) {
	return r.GetByField(ctx, "email", email)
}
