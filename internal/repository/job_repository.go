package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/job-board/internal/domain"
)

// JobFilter narrows listing searches. Term matches across the text columns;
// the rest are per-field filters.
type JobFilter struct {
	Term        *string
	CompanyName *string
	Post        *string
	Location    *string
	Contract    *domain.ContractType
	EmployerID  *string
}

// JobRepository handles persistence for job listings.
type JobRepository interface {
	Create(ctx context.Context, listing *domain.JobListing) error
	Update(ctx context.Context, listing *domain.JobListing) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.JobListing, error)
	List(ctx context.Context, filter JobFilter) ([]domain.JobListing, error)
}

type jobRepository struct {
	pool *pgxpool.Pool
}

// NewJobRepository instantiates the repository.
func NewJobRepository(pool *pgxpool.Pool) JobRepository {
	return &jobRepository{pool: pool}
}

const jobColumns = "id, employer_id, company_name, company_logo, contract, post, salary, description, location, responsibility, created_at, updated_at"

func scanJob(row pgx.Row) (*domain.JobListing, error) {
	var listing domain.JobListing
	if err := row.Scan(
		&listing.ID,
		&listing.EmployerID,
		&listing.CompanyName,
		&listing.CompanyLogo,
		&listing.Contract,
		&listing.Post,
		&listing.Salary,
		&listing.Description,
		&listing.Location,
		&listing.Responsibility,
		&listing.CreatedAt,
		&listing.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &listing, nil
}

func (r *jobRepository) Create(ctx context.Context, listing *domain.JobListing) error {
	const query = `
        INSERT INTO job_listings (employer_id, company_name, company_logo, contract, post, salary, description, location, responsibility)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		listing.EmployerID,
		listing.CompanyName,
		listing.CompanyLogo,
		listing.Contract,
		listing.Post,
		listing.Salary,
		listing.Description,
		listing.Location,
		listing.Responsibility,
	).Scan(&listing.ID, &listing.CreatedAt, &listing.UpdatedAt)
}

func (r *jobRepository) Update(ctx context.Context, listing *domain.JobListing) error {
	const query = `
        UPDATE job_listings
        SET company_name=$1, company_logo=$2, contract=$3, post=$4, salary=$5, description=$6, location=$7, responsibility=$8, updated_at=NOW()
        WHERE id=$9`
	cmd, err := r.pool.Exec(ctx, query,
		listing.CompanyName,
		listing.CompanyLogo,
		listing.Contract,
		listing.Post,
		listing.Salary,
		listing.Description,
		listing.Location,
		listing.Responsibility,
		listing.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *jobRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM job_listings WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *jobRepository) GetByID(ctx context.Context, id string) (*domain.JobListing, error) {
	query := fmt.Sprintf(`SELECT %s FROM job_listings WHERE id=$1`, jobColumns)
	return scanJob(r.pool.QueryRow(ctx, query, id))
}

func (r *jobRepository) List(ctx context.Context, filter JobFilter) ([]domain.JobListing, error) {
	query := fmt.Sprintf(`SELECT %s FROM job_listings`, jobColumns)
	args := []any{}
	clauses := []string{}

	if filter.Term != nil {
		args = append(args, "%"+*filter.Term+"%")
		idx := len(args)
		clauses = append(clauses, fmt.Sprintf(
			"(company_name ILIKE $%d OR post ILIKE $%d OR location ILIKE $%d OR salary ILIKE $%d OR description ILIKE $%d)",
			idx, idx, idx, idx, idx))
	}
	if filter.CompanyName != nil {
		args = append(args, "%"+*filter.CompanyName+"%")
		clauses = append(clauses, fmt.Sprintf("company_name ILIKE $%d", len(args)))
	}
	if filter.Post != nil {
		args = append(args, "%"+*filter.Post+"%")
		clauses = append(clauses, fmt.Sprintf("post ILIKE $%d", len(args)))
	}
	if filter.Location != nil {
		args = append(args, "%"+*filter.Location+"%")
		clauses = append(clauses, fmt.Sprintf("location ILIKE $%d", len(args)))
	}
	if filter.Contract != nil {
		args = append(args, *filter.Contract)
		clauses = append(clauses, fmt.Sprintf("contract=$%d", len(args)))
	}
	if filter.EmployerID != nil {
		args = append(args, *filter.EmployerID)
		clauses = append(clauses, fmt.Sprintf("employer_id=$%d", len(args)))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.JobListing
	for rows.Next() {
		listing, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *listing)
	}
	return result, rows.Err()
}
