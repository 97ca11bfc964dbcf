package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/job-board/internal/auth"
	"github.com/spec-kit/job-board/internal/config"
	"github.com/spec-kit/job-board/internal/domain"
	"github.com/spec-kit/job-board/internal/events"
	"github.com/spec-kit/job-board/internal/repository"
	apperrors "github.com/spec-kit/job-board/pkg/util"
)

// Uniform failures. Login returns the same error whether the email is unknown
// or the password is wrong, so callers cannot probe which part failed.
var (
	ErrInvalidCredentials = apperrors.NewUnauthorized("the provided credentials are incorrect")
	ErrUnauthenticated    = apperrors.NewUnauthorized("unauthenticated")
)

// TokenCache is the optional read-through cache in front of the token table.
type TokenCache interface {
	Get(ctx context.Context, digest string) (*domain.Token, bool)
	Put(ctx context.Context, token *domain.Token)
	PurgeOwner(ctx context.Context, role domain.Role, ownerID string)
}

// AuthService coordinates registration, login, and the token lifecycle.
type AuthService struct {
	principals repository.PrincipalRepository
	tokens     repository.TokenRepository
	cache      TokenCache
	dispatcher events.Dispatcher
	bcryptCost int
	tokenTTL   time.Duration
}

// AuthDependencies encapsulates collaborator requirements for the service.
type AuthDependencies struct {
	PrincipalRepo repository.PrincipalRepository
	TokenRepo     repository.TokenRepository
	Cache         TokenCache
	Dispatcher    events.Dispatcher
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		principals: deps.PrincipalRepo,
		tokens:     deps.TokenRepo,
		cache:      deps.Cache,
		dispatcher: deps.Dispatcher,
		bcryptCost: cfg.Auth.BcryptCost,
		tokenTTL:   cfg.Auth.TokenTTL(),
	}
}

// RegisterInput carries the already format-validated registration payload.
type RegisterInput struct {
	Role        domain.Role
	Name        string
	Email       string
	Password    string
	PhoneNumber string
	Age         int
	Sex         domain.Sex
	Status      domain.MaritalStatus
	Address     string
	City        string
	State       string
	Country     string
}

// Register creates a principal in the collection selected by its role. The
// email must be absent from all three collections, not just the target one.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.Principal, error) {
	if !input.Role.Valid() {
		return nil, apperrors.NewValidationError(map[string][]string{
			"role": {"The selected role is invalid."},
		})
	}

	exists, err := s.principals.EmailExists(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.NewDuplicateEmail()
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	principal := &domain.Principal{
		Role:         input.Role,
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		PhoneNumber:  input.PhoneNumber,
		Age:          input.Age,
		Sex:          input.Sex,
		Status:       input.Status,
		Address:      input.Address,
		City:         input.City,
		State:        input.State,
		Country:      input.Country,
	}
	if err := s.principals.Create(ctx, principal); err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventPrincipalRegistered,
		SubjectID: principal.ID,
		Actor:     events.Actor{Role: principal.Role, ID: principal.ID},
		Timestamp: time.Now(),
		Payload:   events.PrincipalRegisteredPayload{Role: principal.Role, Email: principal.Email},
	})
	return principal, nil
}

// Login verifies credentials and issues a fresh token. Existing tokens stay
// valid; each login is an independent session.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Principal, string, error) {
	principal, err := s.principals.FindByEmail(ctx, email)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if !auth.VerifyPassword(principal.PasswordHash, password) {
		return nil, "", ErrInvalidCredentials
	}

	plaintext, err := s.IssueToken(ctx, principal)
	if err != nil {
		return nil, "", err
	}
	return principal, plaintext, nil
}

// IssueToken mints an opaque bearer token for the principal and persists its
// digest. The returned plaintext is never recoverable afterwards.
func (s *AuthService) IssueToken(ctx context.Context, principal *domain.Principal) (string, error) {
	plaintext, err := auth.GenerateToken()
	if err != nil {
		return "", err
	}

	token := &domain.Token{
		Name:      "Default Token",
		Digest:    auth.DigestToken(plaintext),
		Abilities: []string{"*"},
		OwnerRole: principal.Role,
		OwnerID:   principal.ID,
	}
	if err := s.tokens.Create(ctx, token); err != nil {
		return "", err
	}
	return plaintext, nil
}

// ValidateToken resolves a plaintext bearer token to its owning principal.
// Unknown, revoked, and expired tokens all fail the same way.
func (s *AuthService) ValidateToken(ctx context.Context, plaintext string) (*domain.Principal, error) {
	digest := auth.DigestToken(plaintext)

	token, cached := s.cacheGet(ctx, digest)
	if !cached {
		var err error
		token, err = s.tokens.GetByDigest(ctx, digest)
		if err != nil {
			if err == pgx.ErrNoRows {
				return nil, ErrUnauthenticated
			}
			return nil, err
		}
	}

	if s.tokenTTL > 0 && time.Since(token.IssuedAt) > s.tokenTTL {
		return nil, ErrUnauthenticated
	}
	if !cached {
		s.cachePut(ctx, token)
	}

	principal, err := s.principals.GetByID(ctx, token.OwnerRole, token.OwnerID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}
	return principal, nil
}

// Revoke deletes every token the principal holds: a logout ends all sessions
// at once. The database delete is a single statement; the cache purge follows
// so revoked tokens cannot keep validating from cache.
func (s *AuthService) Revoke(ctx context.Context, principal *domain.Principal) error {
	if _, err := s.tokens.DeleteByOwner(ctx, principal.Role, principal.ID); err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.PurgeOwner(ctx, principal.Role, principal.ID)
	}
	return nil
}

// ListByRole returns every principal of one role, newest first.
func (s *AuthService) ListByRole(ctx context.Context, role domain.Role) ([]domain.Principal, error) {
	if !role.Valid() {
		return nil, apperrors.NewValidationError(map[string][]string{
			"role": {"The selected role is invalid."},
		})
	}
	return s.principals.ListByRole(ctx, role)
}

func (s *AuthService) cacheGet(ctx context.Context, digest string) (*domain.Token, bool) {
	if s.cache == nil {
		return nil, false
	}
	return s.cache.Get(ctx, digest)
}

func (s *AuthService) cachePut(ctx context.Context, token *domain.Token) {
	if s.cache != nil {
		s.cache.Put(ctx, token)
	}
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, event)
	}
}
