package service

import (
	"context"
	"errors"

	"github.com/spec-kit/job-board/internal/auth"
	"github.com/spec-kit/job-board/internal/domain"
	"github.com/spec-kit/job-board/internal/ids"
	"github.com/spec-kit/job-board/internal/repository"
)

// UserInput carries the writable account fields for admin management.
// Password is only read on create.
type UserInput struct {
	Name     string
	Email    string
	Password string
	Age      int
	Gender   string
	Address  string
	RoleID   string
	Company  *domain.CompanyRef
}

// UserPatch carries the account fields a partial update may change; nil keeps the stored value.
type UserPatch struct {
	Name    *string
	Email   *string
	Age     *int
	Gender  *string
	Address *string
	RoleID  *string
	Company *domain.CompanyRef
}

// UserService manages accounts on behalf of administrators.
type UserService struct {
	accounts   repository.AccountRepository
	roles      repository.RoleRepository
	bcryptCost int
}

// NewUserService builds the service.
func NewUserService(accounts repository.AccountRepository, roles repository.RoleRepository, bcryptCost int) *UserService {
	return &UserService{accounts: accounts, roles: roles, bcryptCost: bcryptCost}
}

// Create adds an account with an explicit role.
func (s *UserService) Create(ctx context.Context, actor domain.Actor, in UserInput) (*domain.Account, error) {
	email := auth.NormalizeEmail(in.Email)
	if _, err := s.accounts.FindActiveByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	roleID, err := s.checkRole(ctx, in.RoleID)
	if err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}
	account := &domain.Account{
		ID:           ids.New(),
		Email:        email,
		PasswordHash: hash,
		Name:         in.Name,
		Age:          in.Age,
		Gender:       in.Gender,
		Address:      in.Address,
		RoleID:       roleID,
		Company:      in.Company,
	}
	account.CreatedBy = actor.ActorID()
	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return account, nil
}

// Get returns one account.
func (s *UserService) Get(ctx context.Context, id string) (*domain.Account, error) {
	account, err := s.accounts.FindByID(ctx, id)
	return account, notFound(err)
}

// List returns every non-deleted account.
func (s *UserService) List(ctx context.Context) ([]domain.Account, error) {
	return s.accounts.List(ctx)
}

// Update applies the fields present in the patch. Email changes must stay unique.
func (s *UserService) Update(ctx context.Context, actor domain.Actor, id string, in UserPatch) (*domain.Account, error) {
	account, err := s.accounts.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}

	if in.Email != nil {
		email := auth.NormalizeEmail(*in.Email)
		if email == "" {
			return nil, invalid("email", "must not be empty")
		}
		if email != account.Email {
			if _, err := s.accounts.FindActiveByEmail(ctx, email); err == nil {
				return nil, ErrEmailTaken
			} else if !errors.Is(err, repository.ErrNotFound) {
				return nil, err
			}
			account.Email = email
		}
	}
	if in.RoleID != nil {
		roleID, err := s.checkRole(ctx, *in.RoleID)
		if err != nil {
			return nil, err
		}
		account.RoleID = roleID
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, invalid("name", "must not be empty")
		}
		account.Name = *in.Name
	}
	if in.Age != nil {
		account.Age = *in.Age
	}
	if in.Gender != nil {
		account.Gender = *in.Gender
	}
	if in.Address != nil {
		account.Address = *in.Address
	}
	if in.Company != nil {
		account.Company = in.Company
	}
	account.UpdatedBy = actor.ActorID()

	if err := s.accounts.Update(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, notFound(err)
	}
	return account, nil
}

// Delete soft-deletes an account. The seeded administrator is kept.
func (s *UserService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	account, err := s.accounts.FindByID(ctx, id)
	if err != nil {
		return notFound(err)
	}
	if account.Email == SeedAdminEmail {
		return ErrSeedAccountProtected
	}
	return notFound(s.accounts.SoftDelete(ctx, id, actor.ActorID()))
}

func (s *UserService) checkRole(ctx context.Context, roleID string) (*string, error) {
	if roleID == "" {
		return nil, invalid("role", "is required")
	}
	role, err := s.roles.FindByID(ctx, roleID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, invalid("role", "does not exist")
		}
		return nil, err
	}
	return &role.ID, nil
}

func notFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
