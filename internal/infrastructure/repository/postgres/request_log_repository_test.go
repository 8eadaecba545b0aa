package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/kirillkom/outfit-assistant/internal/core/domain"
)

func newRequestLogRepoWithMock(t *testing.T) (*RequestLogRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	return &RequestLogRepository{db: db}, mock, func() { _ = db.Close() }
}

func TestAppendStoresSelectionAsJSON(t *testing.T) {
	repo, mock, done := newRequestLogRepoWithMock(t)
	defer done()

	now := time.Now().UTC()
	mock.ExpectExec("INSERT INTO user_requests").
		WithArgs("req-1", "dinner", "no heels", []byte(`["a","b"]`), true, now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Append(context.Background(), &domain.UserRequest{
		ID:          "req-1",
		Occasion:    "dinner",
		Preferences: "no heels",
		SelectedIDs: []string{"a", "b"},
		Succeeded:   true,
		CreatedAt:   now,
	})
	if err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestListRecentDefaultsLimit(t *testing.T) {
	repo, mock, done := newRequestLogRepoWithMock(t)
	defer done()

	now := time.Now().UTC()
	mock.ExpectQuery("SELECT id, occasion, preferences, selected_ids").
		WithArgs(50).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "occasion", "preferences", "selected_ids", "succeeded", "created_at",
		}).AddRow("req-1", "dinner", "", []byte(`["a"]`), true, now))

	records, err := repo.ListRecent(context.Background(), 0)
	if err != nil {
		t.Fatalf("ListRecent() error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if len(records[0].SelectedIDs) != 1 || records[0].SelectedIDs[0] != "a" {
		t.Fatalf("expected selection unmarshalled, got %+v", records[0].SelectedIDs)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
