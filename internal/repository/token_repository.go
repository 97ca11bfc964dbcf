package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/job-board/internal/domain"
)

// TokenRepository manages bearer token persistence. Revocation removes a
// principal's entire token set in one statement so a logout can never leave a
// mix of deleted and surviving sessions.
type TokenRepository interface {
	Create(ctx context.Context, token *domain.Token) error
	GetByDigest(ctx context.Context, digest string) (*domain.Token, error)
	DeleteByOwner(ctx context.Context, role domain.Role, ownerID string) (int64, error)
}

type tokenRepository struct {
	pool *pgxpool.Pool
}

// NewTokenRepository constructs the repository.
func NewTokenRepository(pool *pgxpool.Pool) TokenRepository {
	return &tokenRepository{pool: pool}
}

func (r *tokenRepository) Create(ctx context.Context, token *domain.Token) error {
	const query = `
        INSERT INTO tokens (name, token_digest, abilities, owner_role, owner_id)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, issued_at`
	return r.pool.QueryRow(ctx, query,
		token.Name,
		token.Digest,
		token.Abilities,
		token.OwnerRole,
		token.OwnerID,
	).Scan(&token.ID, &token.IssuedAt)
}

func (r *tokenRepository) GetByDigest(ctx context.Context, digest string) (*domain.Token, error) {
	const query = `
        SELECT id, name, token_digest, abilities, owner_role, owner_id, issued_at
        FROM tokens WHERE token_digest=$1`
	var token domain.Token
	if err := r.pool.QueryRow(ctx, query, digest).Scan(
		&token.ID,
		&token.Name,
		&token.Digest,
		&token.Abilities,
		&token.OwnerRole,
		&token.OwnerID,
		&token.IssuedAt,
	); err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *tokenRepository) DeleteByOwner(ctx context.Context, role domain.Role, ownerID string) (int64, error) {
	const query = `DELETE FROM tokens WHERE owner_role=$1 AND owner_id=$2`
	cmd, err := r.pool.Exec(ctx, query, role, ownerID)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}
