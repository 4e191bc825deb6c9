package contacts

import (
	"context"
	"database/sql"
	"errors"
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

func contactColumns() []string {
	return []string{"id", "first_name", "last_name", "email", "phone", "mobile",
		"company_id", "notes", "created_at", "created_by", "name"}
}

func TestList_SearchAndPagination(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+count\(\*\)\s+FROM\s+contacts\s+c\s+WHERE\s+1=1\s+AND\s+\(c\.first_name\s+ILIKE\s+\$1`).
		WithArgs("%ann%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(11))

	now := time.Now()
	companyID := int64(2)
	rows := sqlmock.NewRows(contactColumns()).
		AddRow(int64(1), "Ann", "Lee", "ann@example.com", "111", "222", &companyID, "", now, int64(5), "Acme").
		AddRow(int64(2), "Annette", "Ng", "annette@example.com", "", "", nil, "", now, int64(5), nil)
	mock.ExpectQuery(`(?s)SELECT\s+c\.id,.*LEFT\s+JOIN\s+companies.*ILIKE.*ORDER\s+BY\s+c\.id\s+LIMIT\s+\$2\s+OFFSET\s+\$3`).
		WithArgs("%ann%", 10, 10).
		WillReturnRows(rows)

	got, total, err := repo.List(context.Background(), ListParams{Page: 2, PerPage: 10, Search: "ann"})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if total != 11 || len(got) != 2 {
		t.Fatalf("unexpected result: total=%d len=%d", total, len(got))
	}
	if got[0].Company == nil || got[0].Company.Name != "Acme" {
		t.Fatalf("expected joined company summary, got %+v", got[0].Company)
	}
	if got[1].Company != nil {
		t.Fatalf("contact without company must have nil summary")
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+c\.id,`).WithArgs(int64(99)).WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 99)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected ErrorNotFound, got %v", err)
	}
}

func TestCreate_ReturnsIDAndTimestamp(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`(?s)INSERT\s+INTO\s+contacts\s+\(first_name,.*RETURNING\s+id,\s*created_at`).
		WithArgs("Ann", "Lee", "ann@example.com", "111", "", nil, "", int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(3), now))

	c := &models.Contact{FirstName: "Ann", LastName: "Lee", Email: "ann@example.com", Phone: "111", CreatedBy: 5}
	got, err := repo.Create(context.Background(), c)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != 3 || !got.CreatedAt.Equal(now) {
		t.Fatalf("unexpected contact: %+v", got)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE\s+contacts\s+SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &models.Contact{ID: 99})
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected ErrorNotFound, got %v", err)
	}
}

func TestDelete_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE\s+FROM\s+contacts\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), 4); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
}
