package applications

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoCreateIgnoresDuplicates(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	app := Application{
		ID:          "job_001-abcd1234",
		SessionID:   "abcd1234-0000-0000-0000-000000000000",
		JobID:       "job_001",
		Fields:      map[string]string{"name": "Ada"},
		SubmittedAt: time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO submitted_applications").
		WithArgs(
			app.ID,
			app.SessionID,
			app.JobID,
			[]byte(`{"name":"Ada"}`),
			app.SubmittedAt,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Create(context.Background(), app); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Second insert conflicts on id and affects no rows; Create still succeeds.
	mock.ExpectExec("INSERT INTO submitted_applications").
		WithArgs(
			app.ID,
			app.SessionID,
			app.JobID,
			[]byte(`{"name":"Ada"}`),
			app.SubmittedAt,
		).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Create(context.Background(), app); err != nil {
		t.Fatalf("Create (duplicate): %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoListFiltersByJob(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	submittedAt := time.Now().UTC()

	rows := sqlmock.NewRows([]string{"id", "session_id", "job_id", "fields", "submitted_at"}).
		AddRow("job_001-abcd1234", "abcd1234", "job_001", []byte(`{"name":"Ada"}`), submittedAt).
		AddRow("job_001-efgh5678", "efgh5678", "job_001", nil, submittedAt)

	mock.ExpectQuery("SELECT id, session_id, job_id, fields, submitted_at").
		WithArgs("job_001", 20, 0).
		WillReturnRows(rows)

	apps, err := repo.List(context.Background(), "job_001", 20, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(apps) != 2 {
		t.Fatalf("expected 2 applications, got %d", len(apps))
	}
	if apps[0].Fields["name"] != "Ada" {
		t.Fatalf("expected fields to decode, got %v", apps[0].Fields)
	}
	if apps[1].Fields == nil {
		t.Fatalf("expected empty fields map for NULL fields column")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
