package service

import (
	"context"
	"errors"
	"strings"

	"github.com/spec-kit/job-board/internal/auth"
	"github.com/spec-kit/job-board/internal/domain"
	"github.com/spec-kit/job-board/internal/ids"
	"github.com/spec-kit/job-board/internal/repository"
)

// SubscriberInput carries the writable subscriber fields.
type SubscriberInput struct {
	Email  string
	Name   string
	Skills []string
}

// SubscriberPatch carries the subscriber fields a partial update may change; nil keeps the stored value.
type SubscriberPatch struct {
	Email  *string
	Name   *string
	Skills *[]string
}

// SubscriberService manages job-alert subscriptions.
type SubscriberService struct {
	subscribers repository.SubscriberRepository
}

// NewSubscriberService builds the service.
func NewSubscriberService(subscribers repository.SubscriberRepository) *SubscriberService {
	return &SubscriberService{subscribers: subscribers}
}

// Create adds a subscription. The email must be free among live subscribers.
func (s *SubscriberService) Create(ctx context.Context, actor domain.Actor, in SubscriberInput) (*domain.Subscriber, error) {
	sub := &domain.Subscriber{
		ID:     ids.New(),
		Email:  auth.NormalizeEmail(in.Email),
		Name:   strings.TrimSpace(in.Name),
		Skills: in.Skills,
	}
	if err := validateSubscriber(sub); err != nil {
		return nil, err
	}
	if err := s.emailFree(ctx, sub.Email, ""); err != nil {
		return nil, err
	}
	sub.CreatedBy = actor.ActorID()
	if err := s.subscribers.Create(ctx, sub); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return sub, nil
}

func (s *SubscriberService) Get(ctx context.Context, id string) (*domain.Subscriber, error) {
	sub, err := s.subscribers.FindByID(ctx, id)
	return sub, notFound(err)
}

func (s *SubscriberService) List(ctx context.Context) ([]domain.Subscriber, error) {
	return s.subscribers.List(ctx)
}

// Update applies the fields present in the patch.
func (s *SubscriberService) Update(ctx context.Context, actor domain.Actor, id string, in SubscriberPatch) (*domain.Subscriber, error) {
	sub, err := s.subscribers.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	if in.Email != nil {
		email := auth.NormalizeEmail(*in.Email)
		if email != sub.Email {
			if err := s.emailFree(ctx, email, sub.ID); err != nil {
				return nil, err
			}
		}
		sub.Email = email
	}
	if in.Name != nil {
		sub.Name = strings.TrimSpace(*in.Name)
	}
	if in.Skills != nil {
		sub.Skills = *in.Skills
	}
	if err := validateSubscriber(sub); err != nil {
		return nil, err
	}
	sub.UpdatedBy = actor.ActorID()

	if err := s.subscribers.Update(ctx, sub); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, notFound(err)
	}
	return sub, nil
}

func (s *SubscriberService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	return notFound(s.subscribers.SoftDelete(ctx, id, actor.ActorID()))
}

func (s *SubscriberService) emailFree(ctx context.Context, email, selfID string) error {
	existing, err := s.subscribers.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID != selfID:
		return ErrEmailTaken
	}
	return nil
}

func validateSubscriber(sub *domain.Subscriber) error {
	if sub.Email == "" {
		return invalid("email", "is required")
	}
	if sub.Name == "" {
		return invalid("name", "is required")
	}
	for _, skill := range sub.Skills {
		if strings.TrimSpace(skill) != "" {
			return nil
		}
	}
	return invalid("skills", "at least one skill is required")
}
