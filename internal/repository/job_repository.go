package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spec-kit/job-board/internal/domain"
)

// JobRepository defines persistence access for job postings.
type JobRepository interface {
	Create(ctx context.Context, job *domain.Job) error
	Update(ctx context.Context, job *domain.Job) error
	FindByID(ctx context.Context, id string) (*domain.Job, error)
	List(ctx context.Context) ([]domain.Job, error)
	SoftDelete(ctx context.Context, id string, actor *string) error
}

type jobRepository struct {
	db DBTX
}

// NewJobRepository returns a Postgres-backed implementation.
func NewJobRepository(db DBTX) JobRepository {
	return &jobRepository{db: db}
}

const jobColumns = `id, name, skills, company_id, company_name, location, salary, quantity, level, description, start_date, end_date, is_active, ` + auditColumns

func scanJob(row rowScanner) (*domain.Job, error) {
	var (
		j      domain.Job
		skills []byte
	)
	dest := append([]any{
		&j.ID, &j.Name, &skills, &j.Company.ID, &j.Company.Name, &j.Location, &j.Salary, &j.Quantity,
		&j.Level, &j.Description, &j.StartDate, &j.EndDate, &j.IsActive,
	}, auditDest(&j.Audit)...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	if len(skills) > 0 {
		if err := json.Unmarshal(skills, &j.Skills); err != nil {
			return nil, fmt.Errorf("decode skills: %w", err)
		}
	}
	return &j, nil
}

func encodeSkills(skills []string) (string, error) {
	if skills == nil {
		skills = []string{}
	}
	raw, err := json.Marshal(skills)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func (r *jobRepository) Create(ctx context.Context, job *domain.Job) error {
	const query = `
        INSERT INTO jobs (id, name, skills, company_id, company_name, location, salary, quantity, level,
                          description, start_date, end_date, is_active, created_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
        RETURNING created_at, updated_at`

	skills, err := encodeSkills(job.Skills)
	if err != nil {
		return err
	}
	err = r.db.QueryRowContext(ctx, query,
		job.ID,
		job.Name,
		skills,
		job.Company.ID,
		job.Company.Name,
		job.Location,
		job.Salary,
		job.Quantity,
		job.Level,
		job.Description,
		job.StartDate,
		job.EndDate,
		job.IsActive,
		job.CreatedBy,
	).Scan(&job.CreatedAt, &job.UpdatedAt)
	return mapError(err)
}

func (r *jobRepository) Update(ctx context.Context, job *domain.Job) error {
	const query = `
        UPDATE jobs
        SET name=$1, skills=$2, company_id=$3, company_name=$4, location=$5, salary=$6, quantity=$7, level=$8,
            description=$9, start_date=$10, end_date=$11, is_active=$12, updated_by=$13, updated_at=NOW()
        WHERE id=$14 AND NOT is_deleted`

	skills, err := encodeSkills(job.Skills)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, query,
		job.Name,
		skills,
		job.Company.ID,
		job.Company.Name,
		job.Location,
		job.Salary,
		job.Quantity,
		job.Level,
		job.Description,
		job.StartDate,
		job.EndDate,
		job.IsActive,
		job.UpdatedBy,
		job.ID,
	)
	if err != nil {
		return mapError(err)
	}
	return expectAffected(res)
}

func (r *jobRepository) FindByID(ctx context.Context, id string) (*domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id=$1 AND NOT is_deleted`

	job, err := scanJob(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapError(err)
	}
	return job, nil
}

func (r *jobRepository) List(ctx context.Context) ([]domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE NOT is_deleted ORDER BY created_at DESC, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var jobs []domain.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, mapError(err)
		}
		jobs = append(jobs, *job)
	}
	return jobs, mapError(rows.Err())
}

func (r *jobRepository) SoftDelete(ctx context.Context, id string, actor *string) error {
	const query = `
        UPDATE jobs SET is_deleted=TRUE, deleted_at=NOW(), deleted_by=$1
        WHERE id=$2 AND NOT is_deleted`

	res, err := r.db.ExecContext(ctx, query, actor, id)
	if err != nil {
		return mapError(err)
	}
	return expectAffected(res)
}
