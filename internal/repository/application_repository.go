package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/job-board/internal/domain"
)

// ApplicationRepository handles persistence for job applications. Employer
// scoping goes through a single join on the listing's employer_id foreign
// key; there are no name-based fallbacks.
type ApplicationRepository interface {
	Create(ctx context.Context, application *domain.JobApplication) error
	Update(ctx context.Context, application *domain.JobApplication) error
	UpdateStatus(ctx context.Context, id string, status domain.ApplicationStatus) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.JobApplication, error)
	List(ctx context.Context) ([]domain.JobApplication, error)
	ListByEmployer(ctx context.Context, employerID string) ([]domain.JobApplication, error)
}

type applicationRepository struct {
	pool *pgxpool.Pool
}

// NewApplicationRepository instantiates the repository.
func NewApplicationRepository(pool *pgxpool.Pool) ApplicationRepository {
	return &applicationRepository{pool: pool}
}

const applicationColumns = "id, job_listing_id, job_seeker_id, cover_letter, resume_path, job_title, status, created_at, updated_at"

func scanApplication(row pgx.Row) (*domain.JobApplication, error) {
	var app domain.JobApplication
	if err := row.Scan(
		&app.ID,
		&app.JobListingID,
		&app.JobSeekerID,
		&app.CoverLetter,
		&app.ResumePath,
		&app.JobTitle,
		&app.Status,
		&app.CreatedAt,
		&app.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepository) Create(ctx context.Context, application *domain.JobApplication) error {
	const query = `
        INSERT INTO job_applications (job_listing_id, job_seeker_id, cover_letter, resume_path, job_title, status)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		application.JobListingID,
		application.JobSeekerID,
		application.CoverLetter,
		application.ResumePath,
		application.JobTitle,
		application.Status,
	).Scan(&application.ID, &application.CreatedAt, &application.UpdatedAt)
}

func (r *applicationRepository) Update(ctx context.Context, application *domain.JobApplication) error {
	const query = `
        UPDATE job_applications
        SET job_listing_id=$1, cover_letter=$2, resume_path=$3, job_title=$4, status=$5, updated_at=NOW()
        WHERE id=$6`
	cmd, err := r.pool.Exec(ctx, query,
		application.JobListingID,
		application.CoverLetter,
		application.ResumePath,
		application.JobTitle,
		application.Status,
		application.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *applicationRepository) UpdateStatus(ctx context.Context, id string, status domain.ApplicationStatus) error {
	const query = `UPDATE job_applications SET status=$1, updated_at=NOW() WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *applicationRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM job_applications WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *applicationRepository) GetByID(ctx context.Context, id string) (*domain.JobApplication, error) {
	query := fmt.Sprintf(`SELECT %s FROM job_applications WHERE id=$1`, applicationColumns)
	return scanApplication(r.pool.QueryRow(ctx, query, id))
}

func (r *applicationRepository) List(ctx context.Context) ([]domain.JobApplication, error) {
	query := fmt.Sprintf(`SELECT %s FROM job_applications ORDER BY created_at DESC`, applicationColumns)
	return r.queryApplications(ctx, query)
}

func (r *applicationRepository) ListByEmployer(ctx context.Context, employerID string) ([]domain.JobApplication, error) {
	const query = `
        SELECT a.id, a.job_listing_id, a.job_seeker_id, a.cover_letter, a.resume_path, a.job_title, a.status, a.created_at, a.updated_at
        FROM job_applications a
        JOIN job_listings l ON l.id = a.job_listing_id
        WHERE l.employer_id = $1
        ORDER BY a.created_at DESC`
	return r.queryApplications(ctx, query, employerID)
}

func (r *applicationRepository) queryApplications(ctx context.Context, query string, args ...any) ([]domain.JobApplication, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.JobApplication
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *app)
	}
	return result, rows.Err()
}
