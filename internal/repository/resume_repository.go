package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spec-kit/job-board/internal/domain"
)

// ResumeRepository defines persistence access for resumes.
// Status history is append-only: UpdateStatus adds one entry in the same statement that changes the status.
type ResumeRepository interface {
	Create(ctx context.Context, resume *domain.Resume) error
	FindByID(ctx context.Context, id string) (*domain.Resume, error)
	List(ctx context.Context) ([]domain.Resume, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Resume, error)
	UpdateStatus(ctx context.Context, id string, entry domain.ResumeHistory, actor *string) (*domain.Resume, error)
	SoftDelete(ctx context.Context, id string, actor *string) error
}

type resumeRepository struct {
	db DBTX
}

// NewResumeRepository returns a Postgres-backed implementation.
func NewResumeRepository(db DBTX) ResumeRepository {
	return &resumeRepository{db: db}
}

const resumeColumns = `id, email, user_id, url, status, company_id, job_id, history, ` + auditColumns

type historyActor struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type historyRecord struct {
	Status    string       `json:"status"`
	UpdatedAt time.Time    `json:"updatedAt"`
	UpdatedBy historyActor `json:"updatedBy"`
}

func encodeHistory(entries []domain.ResumeHistory) (string, error) {
	records := make([]historyRecord, 0, len(entries))
	for _, e := range entries {
		records = append(records, historyRecord{
			Status:    e.Status,
			UpdatedAt: e.UpdatedAt,
			UpdatedBy: historyActor{ID: e.UpdatedBy.ID, Name: e.UpdatedBy.Name, Email: e.UpdatedBy.Email},
		})
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func decodeHistory(raw []byte) ([]domain.ResumeHistory, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var records []historyRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("decode history: %w", err)
	}
	out := make([]domain.ResumeHistory, 0, len(records))
	for _, r := range records {
		out = append(out, domain.ResumeHistory{
			Status:    r.Status,
			UpdatedAt: r.UpdatedAt,
			UpdatedBy: domain.Actor{ID: r.UpdatedBy.ID, Name: r.UpdatedBy.Name, Email: r.UpdatedBy.Email},
		})
	}
	return out, nil
}

func scanResume(row rowScanner) (*domain.Resume, error) {
	var (
		r       domain.Resume
		history []byte
	)
	dest := append([]any{
		&r.ID, &r.Email, &r.UserID, &r.URL, &r.Status, &r.CompanyID, &r.JobID, &history,
	}, auditDest(&r.Audit)...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	entries, err := decodeHistory(history)
	if err != nil {
		return nil, err
	}
	r.History = entries
	return &r, nil
}

func (r *resumeRepository) Create(ctx context.Context, resume *domain.Resume) error {
	const query = `
        INSERT INTO resumes (id, email, user_id, url, status, company_id, job_id, history, created_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING created_at, updated_at`

	history, err := encodeHistory(resume.History)
	if err != nil {
		return err
	}
	err = r.db.QueryRowContext(ctx, query,
		resume.ID,
		resume.Email,
		resume.UserID,
		resume.URL,
		resume.Status,
		resume.CompanyID,
		resume.JobID,
		history,
		resume.CreatedBy,
	).Scan(&resume.CreatedAt, &resume.UpdatedAt)
	return mapError(err)
}

func (r *resumeRepository) FindByID(ctx context.Context, id string) (*domain.Resume, error) {
	query := `SELECT ` + resumeColumns + ` FROM resumes WHERE id=$1 AND NOT is_deleted`

	resume, err := scanResume(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapError(err)
	}
	return resume, nil
}

func (r *resumeRepository) List(ctx context.Context) ([]domain.Resume, error) {
	query := `SELECT ` + resumeColumns + ` FROM resumes WHERE NOT is_deleted ORDER BY created_at DESC, id`
	return r.list(ctx, query)
}

func (r *resumeRepository) ListByUser(ctx context.Context, userID string) ([]domain.Resume, error) {
	query := `SELECT ` + resumeColumns + ` FROM resumes WHERE user_id=$1 AND NOT is_deleted ORDER BY created_at DESC, id`
	return r.list(ctx, query, userID)
}

func (r *resumeRepository) list(ctx context.Context, query string, args ...any) ([]domain.Resume, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var resumes []domain.Resume
	for rows.Next() {
		resume, err := scanResume(rows)
		if err != nil {
			return nil, mapError(err)
		}
		resumes = append(resumes, *resume)
	}
	return resumes, mapError(rows.Err())
}

func (r *resumeRepository) UpdateStatus(ctx context.Context, id string, entry domain.ResumeHistory, actor *string) (*domain.Resume, error) {
	query := `
        UPDATE resumes
        SET status=$1, history = history || $2::jsonb, updated_by=$3, updated_at=NOW()
        WHERE id=$4 AND NOT is_deleted
        RETURNING ` + resumeColumns

	appended, err := encodeHistory([]domain.ResumeHistory{entry})
	if err != nil {
		return nil, err
	}
	resume, err := scanResume(r.db.QueryRowContext(ctx, query, entry.Status, appended, actor, id))
	if err != nil {
		return nil, mapError(err)
	}
	return resume, nil
}

func (r *resumeRepository) SoftDelete(ctx context.Context, id string, actor *string) error {
	const query = `
        UPDATE resumes SET is_deleted=TRUE, deleted_at=NOW(), deleted_by=$1
        WHERE id=$2 AND NOT is_deleted`

	res, err := r.db.ExecContext(ctx, query, actor, id)
	if err != nil {
		return mapError(err)
	}
	return expectAffected(res)
}
