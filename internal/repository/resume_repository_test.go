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

var resumeCols = []string{
	"id", "email", "user_id", "url", "status", "company_id", "job_id", "history",
	"created_by", "updated_by", "deleted_by", "is_deleted", "deleted_at", "created_at", "updated_at",
}

func TestResumeRepository_CreateEncodesHistory(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewResumeRepository(db)
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	actor := "u1"

	mock.ExpectQuery(`INSERT INTO resumes`).
		WithArgs("r1", "cand@example.com", "u1", "cv.pdf", domain.ResumePending, "c1", "j1",
			`[{"status":"PENDING","updatedAt":"2026-03-01T09:00:00Z","updatedBy":{"_id":"u1","name":"Cand","email":"cand@example.com"}}]`,
			&actor).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	resume := &domain.Resume{
		ID: "r1", Email: "cand@example.com", UserID: "u1", URL: "cv.pdf", Status: domain.ResumePending,
		CompanyID: "c1", JobID: "j1",
		History: []domain.ResumeHistory{{
			Status:    domain.ResumePending,
			UpdatedAt: now,
			UpdatedBy: domain.Actor{ID: "u1", Name: "Cand", Email: "cand@example.com"},
		}},
	}
	resume.CreatedBy = &actor
	require.NoError(t, repo.Create(context.Background(), resume))
	assert.Equal(t, now, resume.CreatedAt)
}

func TestResumeRepository_UpdateStatusAppendsHistory(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewResumeRepository(db)
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	actor := "hr1"

	history := `[{"status":"PENDING","updatedAt":"2026-03-01T09:00:00Z","updatedBy":{"_id":"u1","name":"Cand","email":"cand@example.com"}},` +
		`{"status":"REVIEWING","updatedAt":"2026-03-02T09:00:00Z","updatedBy":{"_id":"hr1","name":"HR","email":"hr@example.com"}}]`

	mock.ExpectQuery(`UPDATE resumes\s+SET status=\$1, history = history \|\| \$2::jsonb`).
		WithArgs(domain.ResumeReviewing,
			`[{"status":"REVIEWING","updatedAt":"2026-03-02T09:00:00Z","updatedBy":{"_id":"hr1","name":"HR","email":"hr@example.com"}}]`,
			&actor, "r1").
		WillReturnRows(sqlmock.NewRows(resumeCols).AddRow(
			"r1", "cand@example.com", "u1", "cv.pdf", domain.ResumeReviewing, "c1", "j1", []byte(history),
			"u1", "hr1", nil, false, nil, now, now,
		))

	resume, err := repo.UpdateStatus(context.Background(), "r1", domain.ResumeHistory{
		Status:    domain.ResumeReviewing,
		UpdatedAt: now,
		UpdatedBy: domain.Actor{ID: "hr1", Name: "HR", Email: "hr@example.com"},
	}, &actor)
	require.NoError(t, err)
	assert.Equal(t, domain.ResumeReviewing, resume.Status)
	require.Len(t, resume.History, 2)
	assert.Equal(t, domain.ResumePending, resume.History[0].Status)
	assert.Equal(t, "HR", resume.History[1].UpdatedBy.Name)
}

func TestResumeRepository_UpdateStatusMissing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewResumeRepository(db)

	mock.ExpectQuery(`UPDATE resumes`).
		WillReturnRows(sqlmock.NewRows(resumeCols))

	_, err := repo.UpdateStatus(context.Background(), "ghost", domain.ResumeHistory{Status: domain.ResumeApproved}, nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResumeRepository_ListByUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewResumeRepository(db)
	now := time.Now()

	mock.ExpectQuery(`FROM resumes WHERE user_id=\$1 AND NOT is_deleted`).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows(resumeCols).
			AddRow("r2", "cand@example.com", "u1", "cv2.pdf", domain.ResumePending, "c1", "j2", []byte(`[]`), nil, nil, nil, false, nil, now, now).
			AddRow("r1", "cand@example.com", "u1", "cv1.pdf", domain.ResumeApproved, "c1", "j1", []byte(`[]`), nil, nil, nil, false, nil, now, now))

	resumes, err := repo.ListByUser(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, resumes, 2)
	assert.Equal(t, "r2", resumes[0].ID)
	assert.Empty(t, resumes[0].History)
}
