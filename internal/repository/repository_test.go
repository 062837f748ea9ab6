package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"

	"github.com/istanbulcare/backend/internal/apperrors"
)

func setupUserMock(t *testing.T) (*UserRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	repo := NewUserRepository(db)
	cleanup := func() { db.Close() }
	return repo, mock, cleanup
}

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "email", "password_hash", "is_admin"})
}

func TestCreate(t *testing.T) {
	repo, mock, cleanup := setupUserMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(
		`INSERT INTO users (email, is_admin, password_hash) VALUES ($1, $2, $3) RETURNING id, email, password_hash, is_admin`,
	)).
		WithArgs("a@x.com", false, "hash").
		WillReturnRows(userRows().AddRow(1, "a@x.com", "hash", false))

	user, err := repo.Create(context.Background(), Fields{
		"email":         "a@x.com",
		"password_hash": "hash",
		"is_admin":      false,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != 1 || user.Email != "a@x.com" {
		t.Errorf("unexpected entity: %+v", user)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestCreate_UniqueViolation(t *testing.T) {
	repo, mock, cleanup := setupUserMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(
		`INSERT INTO users (email, is_admin, password_hash) VALUES ($1, $2, $3) RETURNING id, email, password_hash, is_admin`,
	)).
		WithArgs("a@x.com", false, "hash").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})

	_, err := repo.Create(context.Background(), Fields{
		"email":         "a@x.com",
		"password_hash": "hash",
		"is_admin":      false,
	})
	if apperrors.KindOf(err) != apperrors.KindAlreadyExists {
		t.Errorf("expected AlreadyExists kind, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestCreate_UnknownField(t *testing.T) {
	repo, _, cleanup := setupUserMock(t)
	defer cleanup()

	_, err := repo.Create(context.Background(), Fields{"emial": "a@x.com"})
	if !errors.Is(err, ErrUnknownField) {
		t.Errorf("expected ErrUnknownField, got %v", err)
	}
}

func TestGetByID(t *testing.T) {
	repo, mock, cleanup := setupUserMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT id, email, password_hash, is_admin FROM users WHERE id = $1`,
	)).
		WithArgs(int64(7)).
		WillReturnRows(userRows().AddRow(7, "a@x.com", "hash", true))

	user, found, err := repo.GetByID(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found {
		t.Fatal("expected record to be found")
	}
	if !user.IsAdmin {
		t.Errorf("unexpected entity: %+v", user)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestGetByID_Absent(t *testing.T) {
	repo, mock, cleanup := setupUserMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT id, email, password_hash, is_admin FROM users WHERE id = $1`,
	)).
		WithArgs(int64(404)).
		WillReturnRows(userRows())

	_, found, err := repo.GetByID(context.Background(), 404)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Error("expected record to be absent")
	}
}

func TestGetByField(t *testing.T) {
	repo, mock, cleanup := setupUserMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT id, email, password_hash, is_admin FROM users WHERE email = $1 ORDER BY id LIMIT 1`,
	)).
		WithArgs("a@x.com").
		WillReturnRows(userRows().AddRow(1, "a@x.com", "hash", false))

	user, found, err := repo.GetByField(context.Background(), "email", "a@x.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found || user.Email != "a@x.com" {
		t.Errorf("unexpected result: found=%v user=%+v", found, user)
	}
}

func TestUpdate(t *testing.T) {
	repo, mock, cleanup := setupUserMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(
		`UPDATE users SET is_admin = $1 WHERE id = $2 RETURNING id, email, password_hash, is_admin`,
	)).
		WithArgs(true, int64(1)).
		WillReturnRows(userRows().AddRow(1, "a@x.com", "hash", true))

	user, found, err := repo.Update(context.Background(), 1, Fields{"is_admin": true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found || !user.IsAdmin {
		t.Errorf("unexpected result: found=%v user=%+v", found, user)
	}
}

func TestUpdate_Absent(t *testing.T) {
	repo, mock, cleanup := setupUserMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(
		`UPDATE users SET is_admin = $1 WHERE id = $2 RETURNING id, email, password_hash, is_admin`,
	)).
		WithArgs(true, int64(404)).
		WillReturnRows(userRows())

	_, found, err := repo.Update(context.Background(), 404, Fields{"is_admin": true})
	if err != nil {
		t.Fatalf("expected no error on absent id, got %v", err)
	}
	if found {
		t.Error("expected not-found outcome")
	}
}

func TestDelete(t *testing.T) {
	tests := []struct {
		name    string
		rows    int64
		deleted bool
	}{
		{name: "existing record", rows: 1, deleted: true},
		{name: "absent record", rows: 0, deleted: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupUserMock(t)
			defer cleanup()

			mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM users WHERE id = $1`)).
				WithArgs(int64(5)).
				WillReturnResult(sqlmock.NewResult(0, tt.rows))

			deleted, err := repo.Delete(context.Background(), 5)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if deleted != tt.deleted {
				t.Errorf("expected deleted=%v, got %v", tt.deleted, deleted)
			}
		})
	}
}

func TestExists_CriteriaOrder(t *testing.T) {
	repo, mock, cleanup := setupUserMock(t)
	defer cleanup()

	// Criteria columns appear in sorted order regardless of map iteration.
	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1 AND is_admin = $2)`,
	)).
		WithArgs("a@x.com", true).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.Exists(context.Background(), Fields{"is_admin": true, "email": "a@x.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !exists {
		t.Error("expected exists to be true")
	}
}

func TestExistsExcept(t *testing.T) {
	repo, mock, cleanup := setupUserMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1 AND id <> $2)`,
	)).
		WithArgs("a@x.com", int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	exists, err := repo.ExistsExcept(context.Background(), Fields{"email": "a@x.com"}, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exists {
		t.Error("expected exists to be false")
	}
}

func TestCount(t *testing.T) {
	repo, mock, cleanup := setupUserMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM users WHERE is_admin = $1`)).
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	count, err := repo.Count(context.Background(), Fields{"is_admin": true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 2 {
		t.Errorf("expected count 2, got %d", count)
	}
}

func TestGetMany(t *testing.T) {
	repo, mock, cleanup := setupUserMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT id, email, password_hash, is_admin FROM users ORDER BY id OFFSET $1 LIMIT $2`,
	)).
		WithArgs(0, 10).
		WillReturnRows(userRows().
			AddRow(1, "a@x.com", "hash", false).
			AddRow(2, "b@x.com", "hash", true))

	users, err := repo.GetMany(context.Background(), 0, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	if users[1].Email != "b@x.com" {
		t.Errorf("unexpected second user: %+v", users[1])
	}
}

func TestFilterBy_UnknownColumn(t *testing.T) {
	repo, _, cleanup := setupUserMock(t)
	defer cleanup()

	if _, err := repo.FilterBy(context.Background(), Fields{"nope": 1}); !errors.Is(err, ErrUnknownField) {
		t.Errorf("expected ErrUnknownField, got %v", err)
	}
	if _, err := repo.FilterByOrdered(context.Background(), nil, "nope"); !errors.Is(err, ErrUnknownField) {
		t.Errorf("expected ErrUnknownField for order column, got %v", err)
	}
}
