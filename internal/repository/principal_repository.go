package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/job-board/internal/domain"
)

// PrincipalRepository defines persistence access for the three role-partitioned
// principal collections. Every method dispatches on the role tag to pick the
// backing table; there is no shared users table.
type PrincipalRepository interface {
	Create(ctx context.Context, principal *domain.Principal) error
	GetByID(ctx context.Context, role domain.Role, id string) (*domain.Principal, error)
	GetByEmail(ctx context.Context, role domain.Role, email string) (*domain.Principal, error)
	// FindByEmail probes admins, then employers, then job seekers and returns
	// the first match. Registration keeps emails unique across all three, so
	// the order only matters as a tie-break against corrupted data.
	FindByEmail(ctx context.Context, email string) (*domain.Principal, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	ListByRole(ctx context.Context, role domain.Role) ([]domain.Principal, error)
}

type principalRepository struct {
	pool *pgxpool.Pool
}

// NewPrincipalRepository returns a Postgres-backed implementation.
func NewPrincipalRepository(pool *pgxpool.Pool) PrincipalRepository {
	return &principalRepository{pool: pool}
}

// tableFor maps a role tag to its backing table. Roles are validated before
// they reach the repository, so an unknown role is a programming error.
func tableFor(role domain.Role) (string, error) {
	switch role {
	case domain.RoleAdmin:
		return "admins", nil
	case domain.RoleEmployer:
		return "employers", nil
	case domain.RoleJobSeeker:
		return "job_seekers", nil
	}
	return "", fmt.Errorf("unknown role %q", role)
}

const principalColumns = "id, name, email, password_hash, phone_number, age, sex, marital_status, address, city, state, country, created_at, updated_at"

func scanPrincipal(row pgx.Row, role domain.Role) (*domain.Principal, error) {
	p := domain.Principal{Role: role}
	if err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Email,
		&p.PasswordHash,
		&p.PhoneNumber,
		&p.Age,
		&p.Sex,
		&p.Status,
		&p.Address,
		&p.City,
		&p.State,
		&p.Country,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *principalRepository) Create(ctx context.Context, principal *domain.Principal) error {
	table, err := tableFor(principal.Role)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`
        INSERT INTO %s (name, email, password_hash, phone_number, age, sex, marital_status, address, city, state, country)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
        RETURNING id, created_at, updated_at`, table)

	return r.pool.QueryRow(ctx, query,
		principal.Name,
		principal.Email,
		principal.PasswordHash,
		principal.PhoneNumber,
		principal.Age,
		principal.Sex,
		principal.Status,
		principal.Address,
		principal.City,
		principal.State,
		principal.Country,
	).Scan(&principal.ID, &principal.CreatedAt, &principal.UpdatedAt)
}

func (r *principalRepository) GetByID(ctx context.Context, role domain.Role, id string) (*domain.Principal, error) {
	table, err := tableFor(role)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id=$1`, principalColumns, table)
	return scanPrincipal(r.pool.QueryRow(ctx, query, id), role)
}

func (r *principalRepository) GetByEmail(ctx context.Context, role domain.Role, email string) (*domain.Principal, error) {
	table, err := tableFor(role)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE email=$1`, principalColumns, table)
	return scanPrincipal(r.pool.QueryRow(ctx, query, email), role)
}

func (r *principalRepository) FindByEmail(ctx context.Context, email string) (*domain.Principal, error) {
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

func (r *principalRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	const query = `
        SELECT EXISTS(SELECT 1 FROM admins WHERE email=$1)
            OR EXISTS(SELECT 1 FROM employers WHERE email=$1)
            OR EXISTS(SELECT 1 FROM job_seekers WHERE email=$1)`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *principalRepository) ListByRole(ctx context.Context, role domain.Role) ([]domain.Principal, error) {
	table, err := tableFor(role)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY created_at DESC`, principalColumns, table)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Principal
	for rows.Next() {
		principal, err := scanPrincipal(rows, role)
		if err != nil {
			return nil, err
		}
		result = append(result, *principal)
	}
	return result, rows.Err()
}
