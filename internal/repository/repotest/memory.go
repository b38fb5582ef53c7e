// Package repotest provides in-memory repositories and a permission cache for tests.
package repotest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/spec-kit/job-board/internal/domain"
	"github.com/spec-kit/job-board/internal/repository"
)

var (
	_ repository.AccountRepository    = (*Accounts)(nil)
	_ repository.PermissionRepository = (*Permissions)(nil)
	_ repository.RoleRepository       = (*Roles)(nil)
	_ repository.CompanyRepository    = (*Companies)(nil)
	_ repository.JobRepository        = (*Jobs)(nil)
	_ repository.ResumeRepository     = (*Resumes)(nil)
	_ repository.SubscriberRepository = (*Subscribers)(nil)
	_ repository.PermissionCache      = (*Cache)(nil)
)

// Accounts is an in-memory AccountRepository. Set FailFind to make lookups fail.
type Accounts struct {
	mu           sync.Mutex
	byID         map[string]*domain.Account
	refreshCalls int
	FailFind     error
}

func NewAccounts() *Accounts {
	return &Accounts{byID: map[string]*domain.Account{}}
}

// Put stores a copy of a, bypassing uniqueness checks.
func (m *Accounts) Put(a domain.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[a.ID] = &a
}

// Snapshot returns the stored account, deleted or not.
func (m *Accounts) Snapshot(id string) domain.Account {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.byID[id]
}

// RefreshCalls counts SetRefreshToken invocations.
func (m *Accounts) RefreshCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.refreshCalls
}

func (m *Accounts) Create(_ context.Context, a *domain.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.byID {
		if !existing.IsDeleted && existing.Email == a.Email {
			return repository.ErrDuplicate
		}
	}
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	cp := *a
	m.byID[a.ID] = &cp
	return nil
}

func (m *Accounts) Update(_ context.Context, a *domain.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.byID[a.ID]
	if !ok || existing.IsDeleted {
		return repository.ErrNotFound
	}
	cp := *a
	cp.RefreshToken = existing.RefreshToken
	cp.PasswordHash = existing.PasswordHash
	m.byID[a.ID] = &cp
	return nil
}

func (m *Accounts) UpdatePassword(_ context.Context, id, hash string, actor *string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.byID[id]
	if !ok || existing.IsDeleted {
		return repository.ErrNotFound
	}
	existing.PasswordHash = hash
	existing.RefreshToken = ""
	existing.UpdatedBy = actor
	return nil
}

func (m *Accounts) SetRefreshToken(_ context.Context, id, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refreshCalls++
	existing, ok := m.byID[id]
	if !ok || existing.IsDeleted {
		return repository.ErrNotFound
	}
	existing.RefreshToken = token
	return nil
}

func (m *Accounts) FindByID(_ context.Context, id string) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailFind != nil {
		return nil, m.FailFind
	}
	existing, ok := m.byID[id]
	if !ok || existing.IsDeleted {
		return nil, repository.ErrNotFound
	}
	cp := *existing
	return &cp, nil
}

func (m *Accounts) FindActiveByEmail(_ context.Context, email string) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailFind != nil {
		return nil, m.FailFind
	}
	for _, existing := range m.byID {
		if !existing.IsDeleted && existing.Email == email {
			cp := *existing
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *Accounts) List(context.Context) ([]domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Account
	for _, a := range m.byID {
		if !a.IsDeleted {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Accounts) SoftDelete(_ context.Context, id string, actor *string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.byID[id]
	if !ok || existing.IsDeleted {
		return repository.ErrNotFound
	}
	existing.IsDeleted = true
	existing.DeletedBy = actor
	existing.RefreshToken = ""
	return nil
}

func (m *Accounts) Count(ctx context.Context) (int, error) {
	list, _ := m.List(ctx)
	return len(list), nil
}

// Permissions is an in-memory PermissionRepository listing in insertion order.
type Permissions struct {
	mu   sync.Mutex
	byID map[string]*domain.Permission
	seq  []string
}

func NewPermissions() *Permissions {
	return &Permissions{byID: map[string]*domain.Permission{}}
}

func (m *Permissions) Create(_ context.Context, p *domain.Permission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.byID {
		if !existing.IsDeleted && existing.APIPath == p.APIPath && existing.Method == p.Method {
			return repository.ErrDuplicate
		}
	}
	cp := *p
	m.byID[p.ID] = &cp
	m.seq = append(m.seq, p.ID)
	return nil
}

func (m *Permissions) Update(_ context.Context, p *domain.Permission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.byID[p.ID]; !ok || existing.IsDeleted {
		return repository.ErrNotFound
	}
	cp := *p
	m.byID[p.ID] = &cp
	return nil
}

func (m *Permissions) FindByID(_ context.Context, id string) (*domain.Permission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.byID[id]
	if !ok || existing.IsDeleted {
		return nil, repository.ErrNotFound
	}
	cp := *existing
	return &cp, nil
}

func (m *Permissions) FindByRoute(_ context.Context, apiPath, method string) (*domain.Permission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.byID {
		if !existing.IsDeleted && existing.APIPath == apiPath && existing.Method == method {
			cp := *existing
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *Permissions) List(context.Context) ([]domain.Permission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Permission
	for _, id := range m.seq {
		if p := m.byID[id]; !p.IsDeleted {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *Permissions) SoftDelete(_ context.Context, id string, actor *string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.byID[id]
	if !ok || existing.IsDeleted {
		return repository.ErrNotFound
	}
	existing.IsDeleted = true
	existing.DeletedBy = actor
	return nil
}

func (m *Permissions) Count(ctx context.Context) (int, error) {
	list, _ := m.List(ctx)
	return len(list), nil
}

// Roles is an in-memory RoleRepository that hydrates permissions from a Permissions store.
type Roles struct {
	mu    sync.Mutex
	byID  map[string]*domain.Role
	perms *Permissions
	finds int
}

// Finds counts FindByID calls.
func (m *Roles) Finds() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.finds
}

func NewRoles(perms *Permissions) *Roles {
	return &Roles{byID: map[string]*domain.Role{}, perms: perms}
}

func (m *Roles) Create(_ context.Context, r *domain.Role) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.byID {
		if !existing.IsDeleted && existing.Name == r.Name {
			return repository.ErrDuplicate
		}
	}
	cp := *r
	cp.PermissionIDs = append([]string(nil), r.PermissionIDs...)
	m.byID[r.ID] = &cp
	return nil
}

func (m *Roles) Update(_ context.Context, r *domain.Role) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.byID[r.ID]; !ok || existing.IsDeleted {
		return repository.ErrNotFound
	}
	cp := *r
	cp.PermissionIDs = append([]string(nil), r.PermissionIDs...)
	m.byID[r.ID] = &cp
	return nil
}

func (m *Roles) hydrate(r *domain.Role) *domain.Role {
	cp := *r
	cp.Permissions = nil
	ids := cp.PermissionIDs
	cp.PermissionIDs = nil
	for _, id := range ids {
		if p, err := m.perms.FindByID(context.Background(), id); err == nil {
			cp.Permissions = append(cp.Permissions, *p)
			cp.PermissionIDs = append(cp.PermissionIDs, id)
		}
	}
	return &cp
}

func (m *Roles) FindByID(_ context.Context, id string) (*domain.Role, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.finds++
	existing, ok := m.byID[id]
	if !ok || existing.IsDeleted {
		return nil, repository.ErrNotFound
	}
	return m.hydrate(existing), nil
}

func (m *Roles) FindByName(_ context.Context, name string) (*domain.Role, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.byID {
		if !existing.IsDeleted && existing.Name == name {
			return m.hydrate(existing), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *Roles) List(context.Context) ([]domain.Role, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Role
	for _, r := range m.byID {
		if !r.IsDeleted {
			out = append(out, *m.hydrate(r))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Roles) SoftDelete(_ context.Context, id string, actor *string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.byID[id]
	if !ok || existing.IsDeleted {
		return repository.ErrNotFound
	}
	existing.IsDeleted = true
	existing.DeletedBy = actor
	return nil
}

func (m *Roles) Count(ctx context.Context) (int, error) {
	list, _ := m.List(ctx)
	return len(list), nil
}

type Companies struct {
	mu   sync.Mutex
	byID map[string]*domain.Company
}

func NewCompanies() *Companies {
	return &Companies{byID: map[string]*domain.Company{}}
}

func (m *Companies) Create(_ context.Context, c *domain.Company) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *c
	m.byID[c.ID] = &cp
	return nil
}

func (m *Companies) Update(_ context.Context, c *domain.Company) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.byID[c.ID]; !ok || existing.IsDeleted {
		return repository.ErrNotFound
	}
	cp := *c
	m.byID[c.ID] = &cp
	return nil
}

func (m *Companies) FindByID(_ context.Context, id string) (*domain.Company, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.byID[id]
	if !ok || existing.IsDeleted {
		return nil, repository.ErrNotFound
	}
	cp := *existing
	return &cp, nil
}

func (m *Companies) List(context.Context) ([]domain.Company, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Company
	for _, c := range m.byID {
		if !c.IsDeleted {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *Companies) SoftDelete(_ context.Context, id string, actor *string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.byID[id]
	if !ok || existing.IsDeleted {
		return repository.ErrNotFound
	}
	existing.IsDeleted = true
	existing.DeletedBy = actor
	return nil
}

type Jobs struct {
	mu   sync.Mutex
	byID map[string]*domain.Job
}

func NewJobs() *Jobs {
	return &Jobs{byID: map[string]*domain.Job{}}
}

func (m *Jobs) Create(_ context.Context, j *domain.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *j
	m.byID[j.ID] = &cp
	return nil
}

func (m *Jobs) Update(_ context.Context, j *domain.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.byID[j.ID]; !ok || existing.IsDeleted {
		return repository.ErrNotFound
	}
	cp := *j
	m.byID[j.ID] = &cp
	return nil
}

func (m *Jobs) FindByID(_ context.Context, id string) (*domain.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.byID[id]
	if !ok || existing.IsDeleted {
		return nil, repository.ErrNotFound
	}
	cp := *existing
	return &cp, nil
}

func (m *Jobs) List(context.Context) ([]domain.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Job
	for _, j := range m.byID {
		if !j.IsDeleted {
			out = append(out, *j)
		}
	}
	return out, nil
}

func (m *Jobs) SoftDelete(_ context.Context, id string, actor *string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.byID[id]
	if !ok || existing.IsDeleted {
		return repository.ErrNotFound
	}
	existing.IsDeleted = true
	existing.DeletedBy = actor
	return nil
}

// Resumes is an in-memory ResumeRepository.
type Resumes struct {
	mu   sync.Mutex
	byID map[string]*domain.Resume
}

func NewResumes() *Resumes {
	return &Resumes{byID: map[string]*domain.Resume{}}
}

func copyResume(r *domain.Resume) domain.Resume {
	cp := *r
	cp.History = append([]domain.ResumeHistory(nil), r.History...)
	return cp
}

func (m *Resumes) Create(_ context.Context, r *domain.Resume) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r.CreatedAt = time.Now()
	r.UpdatedAt = r.CreatedAt
	cp := copyResume(r)
	m.byID[r.ID] = &cp
	return nil
}

func (m *Resumes) FindByID(_ context.Context, id string) (*domain.Resume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.byID[id]
	if !ok || existing.IsDeleted {
		return nil, repository.ErrNotFound
	}
	cp := copyResume(existing)
	return &cp, nil
}

func (m *Resumes) List(context.Context) ([]domain.Resume, error) {
	return m.filter(func(*domain.Resume) bool { return true }), nil
}

func (m *Resumes) ListByUser(_ context.Context, userID string) ([]domain.Resume, error) {
	return m.filter(func(r *domain.Resume) bool { return r.UserID == userID }), nil
}

func (m *Resumes) filter(keep func(*domain.Resume) bool) []domain.Resume {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Resume
	for _, r := range m.byID {
		if !r.IsDeleted && keep(r) {
			out = append(out, copyResume(r))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *Resumes) UpdateStatus(_ context.Context, id string, entry domain.ResumeHistory, actor *string) (*domain.Resume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.byID[id]
	if !ok || existing.IsDeleted {
		return nil, repository.ErrNotFound
	}
	existing.Status = entry.Status
	existing.History = append(existing.History, entry)
	existing.UpdatedBy = actor
	existing.UpdatedAt = time.Now()
	cp := copyResume(existing)
	return &cp, nil
}

func (m *Resumes) SoftDelete(_ context.Context, id string, actor *string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.byID[id]
	if !ok || existing.IsDeleted {
		return repository.ErrNotFound
	}
	existing.IsDeleted = true
	existing.DeletedBy = actor
	return nil
}

// Subscribers is an in-memory SubscriberRepository enforcing unique emails among live rows.
type Subscribers struct {
	mu   sync.Mutex
	byID map[string]*domain.Subscriber
}

func NewSubscribers() *Subscribers {
	return &Subscribers{byID: map[string]*domain.Subscriber{}}
}

func (m *Subscribers) emailTaken(email, exceptID string) bool {
	for _, existing := range m.byID {
		if !existing.IsDeleted && existing.ID != exceptID && existing.Email == email {
			return true
		}
	}
	return false
}

func (m *Subscribers) Create(_ context.Context, sub *domain.Subscriber) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.emailTaken(sub.Email, "") {
		return repository.ErrDuplicate
	}
	sub.CreatedAt = time.Now()
	sub.UpdatedAt = sub.CreatedAt
	cp := *sub
	m.byID[sub.ID] = &cp
	return nil
}

func (m *Subscribers) Update(_ context.Context, sub *domain.Subscriber) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.byID[sub.ID]; !ok || existing.IsDeleted {
		return repository.ErrNotFound
	}
	if m.emailTaken(sub.Email, sub.ID) {
		return repository.ErrDuplicate
	}
	cp := *sub
	m.byID[sub.ID] = &cp
	return nil
}

func (m *Subscribers) FindByID(_ context.Context, id string) (*domain.Subscriber, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.byID[id]
	if !ok || existing.IsDeleted {
		return nil, repository.ErrNotFound
	}
	cp := *existing
	return &cp, nil
}

func (m *Subscribers) FindByEmail(_ context.Context, email string) (*domain.Subscriber, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.byID {
		if !existing.IsDeleted && existing.Email == email {
			cp := *existing
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *Subscribers) List(context.Context) ([]domain.Subscriber, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Subscriber
	for _, s := range m.byID {
		if !s.IsDeleted {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

func (m *Subscribers) SoftDelete(_ context.Context, id string, actor *string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.byID[id]
	if !ok || existing.IsDeleted {
		return repository.ErrNotFound
	}
	existing.IsDeleted = true
	existing.DeletedBy = actor
	return nil
}

// Cache is an in-memory PermissionCache that records invalidations.
type Cache struct {
	mu          sync.Mutex
	entries     map[string]cacheValue
	invalidated []string
	flushed     int
}

// Invalidated lists role ids passed to Invalidate.
func (c *Cache) Invalidated() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.invalidated...)
}

// Flushed counts InvalidateAll calls.
func (c *Cache) Flushed() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.flushed
}

type cacheValue struct {
	role   domain.RoleRef
	grants []domain.Grant
}

func NewCache() *Cache {
	return &Cache{entries: map[string]cacheValue{}}
}

func (c *Cache) Get(_ context.Context, roleID string) (domain.RoleRef, []domain.Grant, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[roleID]
	return v.role, v.grants, ok, nil
}

func (c *Cache) Set(_ context.Context, role domain.RoleRef, grants []domain.Grant) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[role.ID] = cacheValue{role: role, grants: grants}
	return nil
}

func (c *Cache) Invalidate(_ context.Context, roleIDs ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, id := range roleIDs {
		delete(c.entries, id)
		c.invalidated = append(c.invalidated, id)
	}
	return nil
}

func (c *Cache) InvalidateAll(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = map[string]cacheValue{}
	c.flushed++
	return nil
}

