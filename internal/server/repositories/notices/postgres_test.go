package notices

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

func noticeColumns() []string {
	return []string{"id", "title", "content", "priority", "is_active",
		"created_at", "updated_at", "uid", "username"}
}

func TestList_NewestFirstWithCreator(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows(noticeColumns()).
		AddRow(int64(2), "Later", "b", "high", true, now, now, int64(1), "alice").
		AddRow(int64(1), "Earlier", "a", "normal", false, now.Add(-time.Hour), now.Add(-time.Hour), nil, nil)
	mock.ExpectQuery(`(?s)SELECT\s+n\.id,.*LEFT\s+JOIN\s+users.*ORDER\s+BY\s+n\.created_at\s+DESC`).
		WillReturnRows(rows)

	got, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("unexpected length: %d", len(got))
	}
	if got[0].CreatedBy == nil || got[0].CreatedBy.Username != "alice" {
		t.Fatalf("expected creator summary, got %+v", got[0].CreatedBy)
	}
	if got[1].CreatedBy != nil {
		t.Fatalf("orphaned notice must have nil creator")
	}
	if got[0].Priority != models.PriorityHigh || got[1].IsActive {
		t.Fatalf("unexpected rows: %+v", got)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT\s+n\.id,`).WithArgs(int64(9)).WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 9)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected ErrorNotFound, got %v", err)
	}
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`(?s)INSERT\s+INTO\s+notices\s+\(title,.*RETURNING\s+id,\s*created_at,\s*updated_at`).
		WithArgs("Maintenance", "tonight", models.PriorityHigh, true, int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(5), now, now))

	n := &models.Notice{Title: "Maintenance", Content: "tonight", Priority: models.PriorityHigh,
		IsActive: true, CreatedBy: &models.UserRef{ID: 1, Username: "alice"}}
	got, err := repo.Create(context.Background(), n)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != 5 {
		t.Fatalf("unexpected notice: %+v", got)
	}
}

func TestUpdate_SetsUpdatedAt(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)UPDATE\s+notices\s+SET\s+title\s*=\s*\$1,.*updated_at\s*=\s*now\(\)`).
		WithArgs("T", "C", models.PriorityLow, false, int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	n := &models.Notice{ID: 5, Title: "T", Content: "C", Priority: models.PriorityLow, IsActive: false}
	if err := repo.Update(context.Background(), n); err != nil {
		t.Fatalf("Update error: %v", err)
	}
}

func TestDelete_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE\s+FROM\s+notices`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 99)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected ErrorNotFound, got %v", err)
	}
}
