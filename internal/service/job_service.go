package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/job-board/internal/domain"
	"github.com/spec-kit/job-board/internal/events"
	"github.com/spec-kit/job-board/internal/repository"
	apperrors "github.com/spec-kit/job-board/pkg/util"
)

// FileRemover deletes stored upload files when their owning record is
// replaced or removed.
type FileRemover interface {
	Delete(relPath string) error
}

// JobService coordinates job listing workflows.
type JobService struct {
	jobs       repository.JobRepository
	files      FileRemover
	dispatcher events.Dispatcher
}

// JobDependencies bundles collaborators for the job service.
type JobDependencies struct {
	JobRepo    repository.JobRepository
	Files      FileRemover
	Dispatcher events.Dispatcher
}

// NewJobService constructs the service.
func NewJobService(deps JobDependencies) *JobService {
	return &JobService{jobs: deps.JobRepo, files: deps.Files, dispatcher: deps.Dispatcher}
}

// JobInput describes listing create/update payloads. CompanyLogo is the
// stored path of an already-saved upload, nil when the logo is unchanged.
type JobInput struct {
	CompanyName    string
	Contract       domain.ContractType
	Post           string
	Salary         string
	Description    string
	Location       string
	Responsibility string
	CompanyLogo    *string
}

// CreateListing creates a listing owned by the calling employer. The owner
// foreign key is fixed here from the authenticated principal and never taken
// from the request.
func (s *JobService) CreateListing(ctx context.Context, employer *domain.Principal, input JobInput) (*domain.JobListing, error) {
	listing := &domain.JobListing{
		EmployerID:     employer.ID,
		CompanyName:    input.CompanyName,
		CompanyLogo:    input.CompanyLogo,
		Contract:       input.Contract,
		Post:           input.Post,
		Salary:         input.Salary,
		Description:    input.Description,
		Location:       input.Location,
		Responsibility: input.Responsibility,
	}
	if err := s.jobs.Create(ctx, listing); err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventJobPosted,
		SubjectID: listing.ID,
		Actor:     events.Actor{Role: employer.Role, ID: employer.ID},
		Timestamp: time.Now(),
		Payload: events.JobPostedPayload{
			EmployerID:  listing.EmployerID,
			CompanyName: listing.CompanyName,
			Post:        listing.Post,
			Contract:    listing.Contract,
		},
	})
	return listing, nil
}

// UpdateListing applies changes after an ownership check. A replaced logo
// deletes the previous stored file.
func (s *JobService) UpdateListing(ctx context.Context, actor *domain.Principal, id string, input JobInput) (*domain.JobListing, error) {
	listing, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeOwner(actor, listing); err != nil {
		return nil, err
	}

	oldLogo := listing.CompanyLogo
	listing.CompanyName = input.CompanyName
	listing.Contract = input.Contract
	listing.Post = input.Post
	listing.Salary = input.Salary
	listing.Description = input.Description
	listing.Location = input.Location
	listing.Responsibility = input.Responsibility
	if input.CompanyLogo != nil {
		listing.CompanyLogo = input.CompanyLogo
	}

	if err := s.jobs.Update(ctx, listing); err != nil {
		return nil, err
	}
	if input.CompanyLogo != nil && oldLogo != nil {
		_ = s.files.Delete(*oldLogo)
	}
	return listing, nil
}

// DeleteListing removes a listing and its stored logo after an ownership check.
func (s *JobService) DeleteListing(ctx context.Context, actor *domain.Principal, id string) error {
	listing, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorizeOwner(actor, listing); err != nil {
		return err
	}
	if err := s.jobs.Delete(ctx, listing.ID); err != nil {
		return err
	}
	if listing.CompanyLogo != nil {
		_ = s.files.Delete(*listing.CompanyLogo)
	}
	return nil
}

// GetListing fetches one listing.
func (s *JobService) GetListing(ctx context.Context, id string) (*domain.JobListing, error) {
	return s.jobs.GetByID(ctx, id)
}

// SearchListings returns listings matching the filter, newest first.
func (s *JobService) SearchListings(ctx context.Context, filter repository.JobFilter) ([]domain.JobListing, error) {
	return s.jobs.List(ctx, filter)
}

// authorizeOwner admits admins and the owning employer; everyone else is
// forbidden, not hidden behind a 404.
func (s *JobService) authorizeOwner(actor *domain.Principal, listing *domain.JobListing) error {
	if actor.Role == domain.RoleAdmin {
		return nil
	}
	if actor.Role == domain.RoleEmployer && listing.EmployerID == actor.ID {
		return nil
	}
	return apperrors.NewForbidden("you do not own this job listing")
}

func (s *JobService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, event)
	}
}
