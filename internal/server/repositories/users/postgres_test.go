package users

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/dmitrijs2005/phonebook/internal/common"
	"github.com/dmitrijs2005/phonebook/internal/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+users\s*\(username,\s*email,\s*password_hash,\s*role,\s*is_active\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5\)\s*RETURNING\s+id,\s*created_at\s*$`

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(7), now)
	mock.ExpectQuery(q).
		WithArgs("alice", "alice@example.com", "hash", models.RoleEditor, true).
		WillReturnRows(rows)

	u := &User{Username: "alice", Email: "alice@example.com", PasswordHash: "hash", Role: models.RoleEditor, IsActive: true}
	got, err := repo.Create(context.Background(), u)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != 7 || !got.CreatedAt.Equal(now) {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT\s+INTO\s+users`).
		WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &User{Username: "alice"})
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestGetByUsername_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+id,\s*username,\s*email,\s*password_hash,\s*role,\s*is_active,\s*created_at\s+FROM\s+users\s+WHERE\s+username\s*=\s*\$1$`

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "role", "is_active", "created_at"}).
		AddRow(int64(1), "alice", "alice@example.com", "hash", "admin", true, now)
	mock.ExpectQuery(q).WithArgs("alice").WillReturnRows(rows)

	got, err := repo.GetByUsername(context.Background(), "alice")
	if err != nil {
		t.Fatalf("GetByUsername error: %v", err)
	}
	if got.ID != 1 || got.Role != models.RoleAdmin || got.PasswordHash != "hash" {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestGetByUsername_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+id,`).WithArgs("ghost").WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByUsername(context.Background(), "ghost")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected ErrorNotFound, got %v", err)
	}
}

func TestList_ScansAllRows(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "role", "is_active", "created_at"}).
		AddRow(int64(1), "alice", "a@example.com", "h1", "admin", true, now).
		AddRow(int64(2), "bob", "b@example.com", "h2", "user", false, now)
	mock.ExpectQuery(`SELECT\s+id,.*FROM\s+users`).WillReturnRows(rows)

	got, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 2 || got[1].Username != "bob" || got[1].IsActive {
		t.Fatalf("unexpected users: %+v", got)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE\s+users\s+SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &User{ID: 99, Username: "ghost"})
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected ErrorNotFound, got %v", err)
	}
}

func TestDelete_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE\s+FROM\s+users\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), 3); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
}

func TestCountAdmins(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"count"}).AddRow(2)
	mock.ExpectQuery(`SELECT\s+count\(\*\)\s+FROM\s+users\s+WHERE\s+role\s*=\s*\$1`).
		WithArgs(models.RoleAdmin).
		WillReturnRows(rows)

	count, err := repo.CountAdmins(context.Background())
	if err != nil {
		t.Fatalf("CountAdmins error: %v", err)
	}
	if count != 2 {
		t.Fatalf("unexpected count: %d", count)
	}
}
