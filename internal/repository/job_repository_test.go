package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/job-board/internal/domain"
)

var jobCols = []string{
	"id", "name", "skills", "company_id", "company_name", "location", "salary", "quantity", "level", "description",
	"start_date", "end_date", "is_active", "created_by", "updated_by", "deleted_by", "is_deleted", "deleted_at", "created_at", "updated_at",
}

func TestJobRepository_CreateEncodesSkills(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewJobRepository(db)
	now := time.Now()
	start := now.Add(24 * time.Hour)
	end := start.Add(30 * 24 * time.Hour)

	mock.ExpectQuery(`INSERT INTO jobs`).
		WithArgs("j1", "Backend dev", `["Go","SQL"]`, "c1", "Acme", "HCM", int64(2000), 3, "SENIOR", "", start, end, true, nil).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	job := &domain.Job{
		ID: "j1", Name: "Backend dev", Skills: []string{"Go", "SQL"},
		Company: domain.CompanyRef{ID: "c1", Name: "Acme"}, Location: "HCM", Salary: 2000, Quantity: 3,
		Level: "SENIOR", StartDate: start, EndDate: end, IsActive: true,
	}
	require.NoError(t, repo.Create(context.Background(), job))
}

func TestJobRepository_FindByIDDecodesSkills(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewJobRepository(db)
	now := time.Now()

	mock.ExpectQuery(`FROM jobs WHERE id=\$1 AND NOT is_deleted`).
		WithArgs("j1").
		WillReturnRows(sqlmock.NewRows(jobCols).AddRow(
			"j1", "Backend dev", []byte(`["Go","SQL"]`), "c1", "Acme", "HCM", 2000, 3, "SENIOR", "desc",
			now, now.Add(time.Hour), true, nil, nil, nil, false, nil, now, now,
		))

	job, err := repo.FindByID(context.Background(), "j1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "SQL"}, job.Skills)
	assert.Equal(t, "Acme", job.Company.Name)
	assert.Equal(t, int64(2000), job.Salary)
}

func TestJobRepository_SoftDeleteMissing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewJobRepository(db)

	mock.ExpectExec(`UPDATE jobs SET is_deleted=TRUE`).
		WithArgs(nil, "ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.SoftDelete(context.Background(), "ghost", nil), ErrNotFound)
}
