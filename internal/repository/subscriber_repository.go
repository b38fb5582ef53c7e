package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spec-kit/job-board/internal/domain"
)

// SubscriberRepository defines persistence access for job-alert subscribers.
type SubscriberRepository interface {
	Create(ctx context.Context, sub *domain.Subscriber) error
	Update(ctx context.Context, sub *domain.Subscriber) error
	FindByID(ctx context.Context, id string) (*domain.Subscriber, error)
	FindByEmail(ctx context.Context, email string) (*domain.Subscriber, error)
	List(ctx context.Context) ([]domain.Subscriber, error)
	SoftDelete(ctx context.Context, id string, actor *string) error
}

type subscriberRepository struct {
	db DBTX
}

// NewSubscriberRepository returns a Postgres-backed implementation.
func NewSubscriberRepository(db DBTX) SubscriberRepository {
	return &subscriberRepository{db: db}
}

const subscriberColumns = `id, email, name, skills, ` + auditColumns

func scanSubscriber(row rowScanner) (*domain.Subscriber, error) {
	var (
		s      domain.Subscriber
		skills []byte
	)
	dest := append([]any{&s.ID, &s.Email, &s.Name, &skills}, auditDest(&s.Audit)...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	if len(skills) > 0 {
		if err := json.Unmarshal(skills, &s.Skills); err != nil {
			return nil, fmt.Errorf("decode skills: %w", err)
		}
	}
	return &s, nil
}

func (r *subscriberRepository) Create(ctx context.Context, sub *domain.Subscriber) error {
	const query = `
        INSERT INTO subscribers (id, email, name, skills, created_by)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING created_at, updated_at`

	skills, err := encodeSkills(sub.Skills)
	if err != nil {
		return err
	}
	err = r.db.QueryRowContext(ctx, query, sub.ID, sub.Email, sub.Name, skills, sub.CreatedBy).
		Scan(&sub.CreatedAt, &sub.UpdatedAt)
	return mapError(err)
}

func (r *subscriberRepository) Update(ctx context.Context, sub *domain.Subscriber) error {
	const query = `
        UPDATE subscribers
        SET email=$1, name=$2, skills=$3, updated_by=$4, updated_at=NOW()
        WHERE id=$5 AND NOT is_deleted`

	skills, err := encodeSkills(sub.Skills)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, query, sub.Email, sub.Name, skills, sub.UpdatedBy, sub.ID)
	if err != nil {
		return mapError(err)
	}
	return expectAffected(res)
}

func (r *subscriberRepository) FindByID(ctx context.Context, id string) (*domain.Subscriber, error) {
	query := `SELECT ` + subscriberColumns + ` FROM subscribers WHERE id=$1 AND NOT is_deleted`

	sub, err := scanSubscriber(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapError(err)
	}
	return sub, nil
}

func (r *subscriberRepository) FindByEmail(ctx context.Context, email string) (*domain.Subscriber, error) {
	query := `SELECT ` + subscriberColumns + ` FROM subscribers WHERE email=$1 AND NOT is_deleted`

	sub, err := scanSubscriber(r.db.QueryRowContext(ctx, query, email))
	if err != nil {
		return nil, mapError(err)
	}
	return sub, nil
}

func (r *subscriberRepository) List(ctx context.Context) ([]domain.Subscriber, error) {
	query := `SELECT ` + subscriberColumns + ` FROM subscribers WHERE NOT is_deleted ORDER BY created_at DESC, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var subs []domain.Subscriber
	for rows.Next() {
		sub, err := scanSubscriber(rows)
		if err != nil {
			return nil, mapError(err)
		}
		subs = append(subs, *sub)
	}
	return subs, mapError(rows.Err())
}

func (r *subscriberRepository) SoftDelete(ctx context.Context, id string, actor *string) error {
	const query = `
        UPDATE subscribers SET is_deleted=TRUE, deleted_at=NOW(), deleted_by=$1
        WHERE id=$2 AND NOT is_deleted`

	res, err := r.db.ExecContext(ctx, query, actor, id)
	if err != nil {
		return mapError(err)
	}
	return expectAffected(res)
}
