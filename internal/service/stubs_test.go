package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/job-board/internal/domain"
	"github.com/spec-kit/job-board/internal/repository"
)

// In-memory repository stubs backing the service tests.

type stubPrincipalRepo struct {
	mu     sync.Mutex
	byRole map[domain.Role]map[string]*domain.Principal
}

func newStubPrincipalRepo() *stubPrincipalRepo {
	byRole := make(map[domain.Role]map[string]*domain.Principal)
	for _, role := range domain.Roles {
		byRole[role] = make(map[string]*domain.Principal)
	}
	return &stubPrincipalRepo{byRole: byRole}
}

func (r *stubPrincipalRepo) Create(_ context.Context, principal *domain.Principal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	principal.ID = uuid.NewString()
	principal.CreatedAt = time.Now()
	principal.UpdatedAt = principal.CreatedAt
	copied := *principal
	r.byRole[principal.Role][principal.ID] = &copied
	return nil
}

func (r *stubPrincipalRepo) GetByID(_ context.Context, role domain.Role, id string) (*domain.Principal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if principal, ok := r.byRole[role][id]; ok {
		copied := *principal
		return &copied, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *stubPrincipalRepo) GetByEmail(_ context.Context, role domain.Role, email string) (*domain.Principal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, principal := range r.byRole[role] {
		if principal.Email == email {
			copied := *principal
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *stubPrincipalRepo) FindByEmail(ctx context.Context, email string) (*domain.Principal, error) {
	for _, role := range domain.Roles {
		principal, err := r.GetByEmail(ctx, role, email)
		if err == nil {
			return principal, nil
		}
		if err != pgx.ErrNoRows {
			return nil, err
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *stubPrincipalRepo) EmailExists(_ context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, principals := range r.byRole {
		for _, principal := range principals {
			if principal.Email == email {
				return true, nil
			}
		}
	}
	return false, nil
}

func (r *stubPrincipalRepo) ListByRole(_ context.Context, role domain.Role) ([]domain.Principal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]domain.Principal, 0, len(r.byRole[role]))
	for _, principal := range r.byRole[role] {
		result = append(result, *principal)
	}
	return result, nil
}

type stubTokenRepo struct {
	mu       sync.Mutex
	byDigest map[string]*domain.Token
}

func newStubTokenRepo() *stubTokenRepo {
	return &stubTokenRepo{byDigest: make(map[string]*domain.Token)}
}

func (r *stubTokenRepo) Create(_ context.Context, token *domain.Token) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	token.ID = uuid.NewString()
	token.IssuedAt = time.Now()
	copied := *token
	r.byDigest[token.Digest] = &copied
	return nil
}

func (r *stubTokenRepo) GetByDigest(_ context.Context, digest string) (*domain.Token, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if token, ok := r.byDigest[digest]; ok {
		copied := *token
		return &copied, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *stubTokenRepo) DeleteByOwner(_ context.Context, role domain.Role, ownerID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var deleted int64
	for digest, token := range r.byDigest {
		if token.OwnerRole == role && token.OwnerID == ownerID {
			delete(r.byDigest, digest)
			deleted++
		}
	}
	return deleted, nil
}

// setIssuedAt backdates a stored token for expiry tests.
func (r *stubTokenRepo) setIssuedAt(digest string, issuedAt time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if token, ok := r.byDigest[digest]; ok {
		token.IssuedAt = issuedAt
	}
}

func (r *stubTokenRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byDigest)
}

type stubTokenCache struct {
	mu      sync.Mutex
	entries map[string]*domain.Token
	purges  int
}

func newStubTokenCache() *stubTokenCache {
	return &stubTokenCache{entries: make(map[string]*domain.Token)}
}

func (c *stubTokenCache) Get(_ context.Context, digest string) (*domain.Token, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	token, ok := c.entries[digest]
	if !ok {
		return nil, false
	}
	copied := *token
	return &copied, true
}

func (c *stubTokenCache) Put(_ context.Context, token *domain.Token) {
	c.mu.Lock()
	defer c.mu.Unlock()
	copied := *token
	c.entries[token.Digest] = &copied
}

func (c *stubTokenCache) PurgeOwner(_ context.Context, role domain.Role, ownerID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.purges++
	for digest, token := range c.entries {
		if token.OwnerRole == role && token.OwnerID == ownerID {
			delete(c.entries, digest)
		}
	}
}

type stubJobRepo struct {
	mu   sync.Mutex
	byID map[string]*domain.JobListing
}

func newStubJobRepo() *stubJobRepo {
	return &stubJobRepo{byID: make(map[string]*domain.JobListing)}
}

func (r *stubJobRepo) Create(_ context.Context, listing *domain.JobListing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	listing.ID = uuid.NewString()
	listing.CreatedAt = time.Now()
	listing.UpdatedAt = listing.CreatedAt
	copied := *listing
	r.byID[listing.ID] = &copied
	return nil
}

func (r *stubJobRepo) Update(_ context.Context, listing *domain.JobListing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[listing.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *listing
	r.byID[listing.ID] = &copied
	return nil
}

func (r *stubJobRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.byID, id)
	return nil
}

func (r *stubJobRepo) GetByID(_ context.Context, id string) (*domain.JobListing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if listing, ok := r.byID[id]; ok {
		copied := *listing
		return &copied, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *stubJobRepo) List(_ context.Context, filter repository.JobFilter) ([]domain.JobListing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.JobListing
	for _, listing := range r.byID {
		if filter.EmployerID != nil && listing.EmployerID != *filter.EmployerID {
			continue
		}
		if filter.Contract != nil && listing.Contract != *filter.Contract {
			continue
		}
		result = append(result, *listing)
	}
	return result, nil
}

type stubApplicationRepo struct {
	mu   sync.Mutex
	byID map[string]*domain.JobApplication
	jobs *stubJobRepo
}

func newStubApplicationRepo(jobs *stubJobRepo) *stubApplicationRepo {
	return &stubApplicationRepo{byID: make(map[string]*domain.JobApplication), jobs: jobs}
}

func (r *stubApplicationRepo) Create(_ context.Context, application *domain.JobApplication) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	application.ID = uuid.NewString()
	application.CreatedAt = time.Now()
	application.UpdatedAt = application.CreatedAt
	copied := *application
	r.byID[application.ID] = &copied
	return nil
}

func (r *stubApplicationRepo) Update(_ context.Context, application *domain.JobApplication) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[application.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *application
	r.byID[application.ID] = &copied
	return nil
}

func (r *stubApplicationRepo) UpdateStatus(_ context.Context, id string, status domain.ApplicationStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	application, ok := r.byID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	application.Status = status
	return nil
}

func (r *stubApplicationRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.byID, id)
	return nil
}

func (r *stubApplicationRepo) GetByID(_ context.Context, id string) (*domain.JobApplication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if application, ok := r.byID[id]; ok {
		copied := *application
		return &copied, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *stubApplicationRepo) List(_ context.Context) ([]domain.JobApplication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]domain.JobApplication, 0, len(r.byID))
	for _, application := range r.byID {
		result = append(result, *application)
	}
	return result, nil
}

func (r *stubApplicationRepo) ListByEmployer(ctx context.Context, employerID string) ([]domain.JobApplication, error) {
	r.mu.Lock()
	applications := make([]domain.JobApplication, 0, len(r.byID))
	for _, application := range r.byID {
		applications = append(applications, *application)
	}
	r.mu.Unlock()

	var result []domain.JobApplication
	for _, application := range applications {
		listing, err := r.jobs.GetByID(ctx, application.JobListingID)
		if err != nil {
			continue
		}
		if listing.EmployerID == employerID {
			result = append(result, application)
		}
	}
	return result, nil
}

type stubFileRemover struct {
	mu      sync.Mutex
	deleted []string
}

func (f *stubFileRemover) Delete(relPath string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, relPath)
	return nil
}

func (f *stubFileRemover) deletedPaths() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string{}, f.deleted...)
}
