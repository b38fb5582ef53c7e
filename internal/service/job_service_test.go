package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/job-board/internal/domain"
	"github.com/spec-kit/job-board/internal/repository/repotest"
)

func validJobInput(companyID string) JobInput {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return JobInput{
		Name:      "Backend engineer",
		Skills:    []string{"Go", "PostgreSQL"},
		CompanyID: companyID,
		Location:  "HANOI",
		Salary:    2000,
		Quantity:  3,
		Level:     "SENIOR",
		StartDate: start,
		EndDate:   start.AddDate(0, 1, 0),
		IsActive:  true,
	}
}

func newJobFixture(t *testing.T) (*JobService, *repotest.Companies) {
	t.Helper()
	companies := repotest.NewCompanies()
	require.NoError(t, companies.Create(context.Background(), &domain.Company{ID: "c1", Name: "Acme"}))
	return NewJobService(repotest.NewJobs(), companies), companies
}

func TestJobService_CreateDenormalizesCompany(t *testing.T) {
	svc, _ := newJobFixture(t)

	job, err := svc.Create(context.Background(), domain.Actor{ID: "acc-1"}, validJobInput("c1"))
	require.NoError(t, err)
	assert.NotEmpty(t, job.ID)
	assert.Equal(t, domain.CompanyRef{ID: "c1", Name: "Acme"}, job.Company)
	require.NotNil(t, job.CreatedBy)
	assert.Equal(t, "acc-1", *job.CreatedBy)

	got, err := svc.Get(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, job.Skills, got.Skills)
}

func TestJobService_Validation(t *testing.T) {
	svc, _ := newJobFixture(t)

	cases := []struct {
		name  string
		field string
		edit  func(*JobInput)
	}{
		{"no skills", "skills", func(in *JobInput) { in.Skills = nil }},
		{"blank skills", "skills", func(in *JobInput) { in.Skills = []string{" "} }},
		{"end before start", "endDate", func(in *JobInput) { in.EndDate = in.StartDate.Add(-time.Hour) }},
		{"end equals start", "endDate", func(in *JobInput) { in.EndDate = in.StartDate }},
		{"negative salary", "salary", func(in *JobInput) { in.Salary = -1 }},
		{"unknown company", "company", func(in *JobInput) { in.CompanyID = "missing" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validJobInput("c1")
			tc.edit(&in)

			_, err := svc.Create(context.Background(), domain.Actor{}, in)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestJobService_UpdateAndDelete(t *testing.T) {
	svc, companies := newJobFixture(t)
	ctx := context.Background()
	require.NoError(t, companies.Create(ctx, &domain.Company{ID: "c2", Name: "Globex"}))

	job, err := svc.Create(ctx, domain.Actor{}, validJobInput("c1"))
	require.NoError(t, err)

	updated, err := svc.Update(ctx, domain.Actor{ID: "acc-2"}, job.ID, JobPatch{CompanyID: ptr("c2"), Quantity: ptr(1)})
	require.NoError(t, err)
	assert.Equal(t, "Globex", updated.Company.Name)
	assert.Equal(t, 1, updated.Quantity)
	assert.Equal(t, []string{"Go", "PostgreSQL"}, updated.Skills, "absent fields keep their value")
	assert.Equal(t, int64(2000), updated.Salary)
	assert.True(t, updated.IsActive)

	require.NoError(t, svc.Delete(ctx, domain.Actor{}, job.ID))
	_, err = svc.Get(ctx, job.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, domain.Actor{}, job.ID), ErrNotFound)
}

func TestJobService_UpdateValidatesMergedPosting(t *testing.T) {
	svc, _ := newJobFixture(t)
	ctx := context.Background()

	job, err := svc.Create(ctx, domain.Actor{}, validJobInput("c1"))
	require.NoError(t, err)

	var verr *ValidationError
	_, err = svc.Update(ctx, domain.Actor{}, job.ID, JobPatch{EndDate: ptr(job.StartDate.Add(-time.Hour))})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "endDate", verr.Field)

	_, err = svc.Update(ctx, domain.Actor{}, job.ID, JobPatch{Skills: &[]string{}})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "skills", verr.Field)

	_, err = svc.Update(ctx, domain.Actor{}, job.ID, JobPatch{CompanyID: ptr("missing")})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "company", verr.Field)

	_, err = svc.Update(ctx, domain.Actor{}, "ghost", JobPatch{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCompanyService_CRUD(t *testing.T) {
	svc := NewCompanyService(repotest.NewCompanies())
	ctx := context.Background()

	company, err := svc.Create(ctx, domain.Actor{ID: "acc-1"}, CompanyInput{Name: "Acme", Address: "Hanoi"})
	require.NoError(t, err)

	company, err = svc.Update(ctx, domain.Actor{}, company.ID, CompanyPatch{Description: ptr("Widgets")})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, domain.Actor{}, company.ID, CompanyPatch{Address: ptr("Saigon")})
	require.NoError(t, err)
	assert.Equal(t, "Acme", updated.Name)
	assert.Equal(t, "Saigon", updated.Address)
	assert.Equal(t, "Widgets", updated.Description, "absent description is kept")

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.Delete(ctx, domain.Actor{}, company.ID))
	_, err = svc.Update(ctx, domain.Actor{}, company.ID, CompanyPatch{})
	assert.ErrorIs(t, err, ErrNotFound)
}
