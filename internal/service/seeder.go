package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/job-board/internal/auth"
	"github.com/spec-kit/job-board/internal/domain"
	"github.com/spec-kit/job-board/internal/ids"
	"github.com/spec-kit/job-board/internal/repository"
)

// Seeded account emails.
const (
	SeedAdminEmail = "admin@gmail.com"
	SeedUserEmail  = "user@gmail.com"
)

// Seeder fills an empty database with the permission table, the ADMIN and USER roles and two accounts.
type Seeder struct {
	accounts     repository.AccountRepository
	roles        repository.RoleRepository
	permissions  repository.PermissionRepository
	initPassword string
	bcryptCost   int
	logger       *zap.Logger
}

// NewSeeder builds a seeder.
func NewSeeder(accounts repository.AccountRepository, roles repository.RoleRepository, permissions repository.PermissionRepository, initPassword string, bcryptCost int, logger *zap.Logger) *Seeder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Seeder{
		accounts:     accounts,
		roles:        roles,
		permissions:  permissions,
		initPassword: initPassword,
		bcryptCost:   bcryptCost,
		logger:       logger,
	}
}

// Seed populates each empty table. Tables that already hold rows are left alone.
func (s *Seeder) Seed(ctx context.Context, routes []auth.RouteSpec) error {
	accountCount, err := s.accounts.Count(ctx)
	if err != nil {
		return err
	}
	roleCount, err := s.roles.Count(ctx)
	if err != nil {
		return err
	}
	permissionCount, err := s.permissions.Count(ctx)
	if err != nil {
		return err
	}

	if accountCount > 0 && roleCount > 0 && permissionCount > 0 {
		s.logger.Info("seed data already present; skipping")
		return nil
	}

	if permissionCount == 0 {
		if err := s.seedPermissions(ctx, routes); err != nil {
			return fmt.Errorf("seed permissions: %w", err)
		}
	}
	if roleCount == 0 {
		if err := s.seedRoles(ctx); err != nil {
			return fmt.Errorf("seed roles: %w", err)
		}
	}
	if accountCount == 0 {
		if err := s.seedAccounts(ctx); err != nil {
			return fmt.Errorf("seed accounts: %w", err)
		}
	}
	return nil
}

func (s *Seeder) seedPermissions(ctx context.Context, routes []auth.RouteSpec) error {
	created := 0
	for _, route := range routes {
		if !route.NeedsPermission() {
			continue
		}
		perm := &domain.Permission{
			ID:      ids.New(),
			Name:    route.Method + " " + route.Path,
			APIPath: route.Path,
			Method:  route.Method,
			Module:  route.Module,
		}
		if err := s.permissions.Create(ctx, perm); err != nil {
			return err
		}
		created++
	}
	s.logger.Info("seeded permissions", zap.Int("count", created))
	return nil
}

func (s *Seeder) seedRoles(ctx context.Context) error {
	perms, err := s.permissions.List(ctx)
	if err != nil {
		return err
	}
	permIDs := make([]string, 0, len(perms))
	for _, p := range perms {
		permIDs = append(permIDs, p.ID)
	}

	roles := []*domain.Role{
		{ID: ids.New(), Name: domain.RoleAdmin, Description: "Full access to every endpoint", IsActive: true, PermissionIDs: permIDs},
		{ID: ids.New(), Name: domain.RoleUser, Description: "Candidates using the job board", IsActive: true},
	}
	for _, role := range roles {
		if err := s.roles.Create(ctx, role); err != nil {
			return err
		}
	}
	s.logger.Info("seeded roles", zap.Int("admin_permissions", len(permIDs)))
	return nil
}

func (s *Seeder) seedAccounts(ctx context.Context) error {
	admin, err := s.roles.FindByName(ctx, domain.RoleAdmin)
	if err != nil {
		return err
	}
	user, err := s.roles.FindByName(ctx, domain.RoleUser)
	if err != nil {
		return err
	}
	hash, err := auth.HashPassword(s.initPassword, s.bcryptCost)
	if err != nil {
		return err
	}

	accounts := []*domain.Account{
		{ID: ids.New(), Email: SeedAdminEmail, Name: "I'm admin", Age: 100, Gender: "MALE", Address: "VietNam", PasswordHash: hash, RoleID: &admin.ID},
		{ID: ids.New(), Email: SeedUserEmail, Name: "I'm normal user", Age: 69, Gender: "MALE", Address: "VietNam", PasswordHash: hash, RoleID: &user.ID},
	}
	for _, account := range accounts {
		if err := s.accounts.Create(ctx, account); err != nil {
			return err
		}
	}
	s.logger.Info("seeded accounts", zap.Int("count", len(accounts)))
	return nil
}
