package postgres

import (
	"context"
	"errors"
	"testing"

	"jobrec/internal/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestJobPostgres_InsertJob(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewJobPostgres(db)
	ctx := context.Background()

	t.Run("full posting", func(t *testing.T) {
		job := model.JobPosting{
			Title:      model.NewNullString("Backend Engineer"),
			Company:    model.NewNullString("Acme"),
			Location:   model.NewNullString("Berlin"),
			Salary:     model.NewNullString("90k"),
			URL:        model.NewNullString("https://jobs.example/1"),
			Skills:     model.SkillList{"Go", "PostgreSQL"},
			Experience: model.NewNullString("3 years"),
		}

		mock.ExpectExec("INSERT INTO jobs").
			WithArgs("Backend Engineer", "Acme", "Berlin", "90k", "https://jobs.example/1", "Go,PostgreSQL", "3 years").
			WillReturnResult(sqlmock.NewResult(1, 1))

		assert.NoError(t, repo.InsertJob(ctx, job))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing salary and skills", func(t *testing.T) {
		job := model.JobPosting{Title: model.NewNullString("Backend Engineer")}

		mock.ExpectExec("INSERT INTO jobs").
			WithArgs("Backend Engineer", nil, nil, nil, nil, "", nil).
			WillReturnResult(sqlmock.NewResult(2, 1))

		assert.NoError(t, repo.InsertJob(ctx, job))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("db error", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO jobs").WillReturnError(errors.New("db down"))

		assert.EqualError(t, repo.InsertJob(ctx, model.JobPosting{}), "db down")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestJobPostgres_InsertJobBatch(t *testing.T) {
	ctx := context.Background()

	t.Run("commits all rows with defaults", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
		}
		defer db.Close()

		jobs := []model.JobPosting{
			{Title: model.NewNullString("SRE"), Company: model.NewNullString("Acme"), Location: model.NewNullString("Remote"), URL: model.NewNullString("https://a")},
			{Skills: model.SkillList{"Go"}},
		}

		mock.ExpectBegin()
		prep := mock.ExpectPrepare("INSERT INTO job_data")
		prep.ExpectExec().
			WithArgs("SRE", "Acme", "Remote", "https://a", nil, "", nil).
			WillReturnResult(sqlmock.NewResult(1, 1))
		prep.ExpectExec().
			WithArgs("N/A", "N/A", "N/A", "", nil, "Go", nil).
			WillReturnResult(sqlmock.NewResult(2, 1))
		mock.ExpectCommit()

		n, err := NewJobPostgres(db).InsertJobBatch(ctx, jobs)

		assert.NoError(t, err)
		assert.Equal(t, 2, n)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back on insert failure", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
		}
		defer db.Close()

		mock.ExpectBegin()
		prep := mock.ExpectPrepare("INSERT INTO job_data")
		prep.ExpectExec().WillReturnError(errors.New("constraint"))
		mock.ExpectRollback()

		n, err := NewJobPostgres(db).InsertJobBatch(ctx, []model.JobPosting{{}})

		assert.ErrorContains(t, err, "insert job 0: constraint")
		assert.Equal(t, 0, n)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("begin failure", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
		}
		defer db.Close()

		mock.ExpectBegin().WillReturnError(errors.New("pool exhausted"))

		_, err = NewJobPostgres(db).InsertJobBatch(ctx, []model.JobPosting{{}})

		assert.ErrorContains(t, err, "begin tx: pool exhausted")
	})
}
