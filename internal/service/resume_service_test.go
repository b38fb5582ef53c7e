package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/job-board/internal/domain"
	"github.com/spec-kit/job-board/internal/repository/repotest"
)

var candidate = domain.Actor{ID: "u1", Name: "Cand", Email: "cand@example.com"}

func newResumeFixture(t *testing.T) *ResumeService {
	t.Helper()
	ctx := context.Background()
	companies := repotest.NewCompanies()
	require.NoError(t, companies.Create(ctx, &domain.Company{ID: "c1", Name: "Acme"}))
	require.NoError(t, companies.Create(ctx, &domain.Company{ID: "c2", Name: "Globex"}))
	jobs := repotest.NewJobs()
	require.NoError(t, jobs.Create(ctx, &domain.Job{ID: "j1", Name: "Backend", Company: domain.CompanyRef{ID: "c1", Name: "Acme"}}))

	svc := NewResumeService(repotest.NewResumes(), companies, jobs)
	clock := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	return svc
}

func TestResumeService_CreateStartsPending(t *testing.T) {
	svc := newResumeFixture(t)

	resume, err := svc.Create(context.Background(), candidate, ResumeInput{URL: " cv.pdf ", CompanyID: "c1", JobID: "j1"})
	require.NoError(t, err)
	assert.Equal(t, domain.ResumePending, resume.Status)
	assert.Equal(t, "cand@example.com", resume.Email)
	assert.Equal(t, "u1", resume.UserID)
	assert.Equal(t, "cv.pdf", resume.URL)
	require.Len(t, resume.History, 1)
	assert.Equal(t, domain.ResumePending, resume.History[0].Status)
	assert.Equal(t, candidate, resume.History[0].UpdatedBy)
	require.NotNil(t, resume.CreatedBy)
	assert.Equal(t, "u1", *resume.CreatedBy)
}

func TestResumeService_CreateRejectsUnknownReferences(t *testing.T) {
	svc := newResumeFixture(t)

	cases := []struct {
		name  string
		in    ResumeInput
		field string
	}{
		{"missing url", ResumeInput{CompanyID: "c1", JobID: "j1"}, "url"},
		{"unknown company", ResumeInput{URL: "cv.pdf", CompanyID: "nope", JobID: "j1"}, "company"},
		{"unknown job", ResumeInput{URL: "cv.pdf", CompanyID: "c1", JobID: "nope"}, "job"},
		{"job of another company", ResumeInput{URL: "cv.pdf", CompanyID: "c2", JobID: "j1"}, "job"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), candidate, tc.in)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestResumeService_UpdateStatusAppendsHistory(t *testing.T) {
	svc := newResumeFixture(t)
	ctx := context.Background()
	hr := domain.Actor{ID: "hr1", Name: "HR", Email: "hr@example.com"}

	resume, err := svc.Create(ctx, candidate, ResumeInput{URL: "cv.pdf", CompanyID: "c1", JobID: "j1"})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, hr, resume.ID, "reviewing")
	require.NoError(t, err)
	updated, err := svc.UpdateStatus(ctx, hr, resume.ID, domain.ResumeApproved)
	require.NoError(t, err)

	assert.Equal(t, domain.ResumeApproved, updated.Status)
	require.Len(t, updated.History, 3)
	assert.Equal(t, domain.ResumeReviewing, updated.History[1].Status)
	assert.Equal(t, hr, updated.History[2].UpdatedBy)
	assert.True(t, updated.History[2].UpdatedAt.After(updated.History[1].UpdatedAt))
	require.NotNil(t, updated.UpdatedBy)
	assert.Equal(t, "hr1", *updated.UpdatedBy)
}

func TestResumeService_UpdateStatusRejectsUnknownState(t *testing.T) {
	svc := newResumeFixture(t)
	ctx := context.Background()

	resume, err := svc.Create(ctx, candidate, ResumeInput{URL: "cv.pdf", CompanyID: "c1", JobID: "j1"})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, candidate, resume.ID, "HIRED")
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "status", verr.Field)

	got, err := svc.Get(ctx, resume.ID)
	require.NoError(t, err)
	assert.Len(t, got.History, 1)

	_, err = svc.UpdateStatus(ctx, candidate, "ghost", domain.ResumeRejected)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResumeService_ByUserAndDelete(t *testing.T) {
	svc := newResumeFixture(t)
	ctx := context.Background()
	other := domain.Actor{ID: "u2", Email: "other@example.com"}

	mine, err := svc.Create(ctx, candidate, ResumeInput{URL: "cv.pdf", CompanyID: "c1", JobID: "j1"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, other, ResumeInput{URL: "other.pdf", CompanyID: "c1", JobID: "j1"})
	require.NoError(t, err)

	list, err := svc.ByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, mine.ID, list[0].ID)

	require.NoError(t, svc.Delete(ctx, candidate, mine.ID))
	_, err = svc.Get(ctx, mine.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, candidate, mine.ID), ErrNotFound)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
