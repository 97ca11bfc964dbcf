package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/job-board/internal/domain"
	"github.com/spec-kit/job-board/internal/events"
	"github.com/spec-kit/job-board/internal/repository"
	apperrors "github.com/spec-kit/job-board/pkg/util"
)

// ApplicationService coordinates job application workflows.
type ApplicationService struct {
	applications repository.ApplicationRepository
	jobs         repository.JobRepository
	principals   repository.PrincipalRepository
	files        FileRemover
	dispatcher   events.Dispatcher
}

// ApplicationDependencies bundles collaborators for the application service.
type ApplicationDependencies struct {
	ApplicationRepo repository.ApplicationRepository
	JobRepo         repository.JobRepository
	PrincipalRepo   repository.PrincipalRepository
	Files           FileRemover
	Dispatcher      events.Dispatcher
}

// NewApplicationService constructs the service.
func NewApplicationService(deps ApplicationDependencies) *ApplicationService {
	return &ApplicationService{
		applications: deps.ApplicationRepo,
		jobs:         deps.JobRepo,
		principals:   deps.PrincipalRepo,
		files:        deps.Files,
		dispatcher:   deps.Dispatcher,
	}
}

// ApplicationInput describes submission payloads. ResumePath is the stored
// path of an already-saved upload.
type ApplicationInput struct {
	JobListingID string
	CoverLetter  string
	ResumePath   string
}

// Submit creates an application for the calling job seeker. The seeker
// foreign key comes from the authenticated principal, and the listing's post
// title is copied onto the application at this moment.
func (s *ApplicationService) Submit(ctx context.Context, seeker *domain.Principal, input ApplicationInput) (*domain.JobApplication, error) {
	listing, err := s.jobs.GetByID(ctx, input.JobListingID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("job listing")
		}
		return nil, err
	}

	application := &domain.JobApplication{
		JobListingID: listing.ID,
		JobSeekerID:  seeker.ID,
		CoverLetter:  input.CoverLetter,
		ResumePath:   input.ResumePath,
		JobTitle:     listing.Post,
		Status:       domain.ApplicationPending,
	}
	if err := s.applications.Create(ctx, application); err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventApplicationSubmitted,
		SubjectID: application.ID,
		Actor:     events.Actor{Role: seeker.Role, ID: seeker.ID},
		Timestamp: time.Now(),
		Payload: events.ApplicationSubmittedPayload{
			JobListingID: application.JobListingID,
			JobSeekerID:  application.JobSeekerID,
			JobTitle:     application.JobTitle,
		},
	})
	return application, nil
}

// ApplicationUpdate describes changes to an existing application. Nil fields
// stay untouched.
type ApplicationUpdate struct {
	JobListingID *string
	CoverLetter  *string
	ResumePath   *string
}

// Update lets the owning seeker amend an application. Retargeting to another
// listing refreshes the stored job title; a replaced resume deletes the
// previous file.
func (s *ApplicationService) Update(ctx context.Context, actor *domain.Principal, id string, update ApplicationUpdate) (*domain.JobApplication, error) {
	application, err := s.applications.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("job application")
		}
		return nil, err
	}
	if actor.Role != domain.RoleJobSeeker || application.JobSeekerID != actor.ID {
		return nil, apperrors.NewForbidden("you do not own this application")
	}

	if update.JobListingID != nil && *update.JobListingID != application.JobListingID {
		listing, err := s.jobs.GetByID(ctx, *update.JobListingID)
		if err != nil {
			if err == pgx.ErrNoRows {
				return nil, apperrors.NewNotFound("job listing")
			}
			return nil, err
		}
		application.JobListingID = listing.ID
		application.JobTitle = listing.Post
	}
	if update.CoverLetter != nil {
		application.CoverLetter = *update.CoverLetter
	}

	oldResume := application.ResumePath
	if update.ResumePath != nil {
		application.ResumePath = *update.ResumePath
	}

	if err := s.applications.Update(ctx, application); err != nil {
		return nil, err
	}
	if update.ResumePath != nil && oldResume != "" {
		_ = s.files.Delete(oldResume)
	}
	return application, nil
}

// UpdateStatus moves an application through review. Only the employer owning
// the applied-to listing (or an admin) may change it.
func (s *ApplicationService) UpdateStatus(ctx context.Context, actor *domain.Principal, id string, status domain.ApplicationStatus) (*domain.JobApplication, error) {
	application, err := s.applications.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("job application")
		}
		return nil, err
	}

	listing, err := s.jobs.GetByID(ctx, application.JobListingID)
	if err != nil {
		return nil, err
	}
	if actor.Role != domain.RoleAdmin &&
		(actor.Role != domain.RoleEmployer || listing.EmployerID != actor.ID) {
		return nil, apperrors.NewForbidden("only the employer owning this listing may update the application")
	}

	oldStatus := application.Status
	if err := s.applications.UpdateStatus(ctx, application.ID, status); err != nil {
		return nil, err
	}
	application.Status = status

	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventApplicationStatusChanged,
		SubjectID: application.ID,
		Actor:     events.Actor{Role: actor.Role, ID: actor.ID},
		Timestamp: time.Now(),
		Payload: events.ApplicationStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: status,
		},
	})
	return application, nil
}

// Delete removes an application and its stored resume. Allowed for the
// owning seeker and admins.
func (s *ApplicationService) Delete(ctx context.Context, actor *domain.Principal, id string) error {
	application, err := s.applications.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("job application")
		}
		return err
	}
	if actor.Role != domain.RoleAdmin &&
		(actor.Role != domain.RoleJobSeeker || application.JobSeekerID != actor.ID) {
		return apperrors.NewForbidden("you do not own this application")
	}
	if err := s.applications.Delete(ctx, application.ID); err != nil {
		return err
	}
	if application.ResumePath != "" {
		_ = s.files.Delete(application.ResumePath)
	}
	return nil
}

// Get returns one application with its listing and seeker summaries. Visible
// to admins, the owning seeker, and the employer owning the listing.
func (s *ApplicationService) Get(ctx context.Context, actor *domain.Principal, id string) (*domain.ApplicationDetail, error) {
	application, err := s.applications.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("job application")
		}
		return nil, err
	}

	listing, err := s.jobs.GetByID(ctx, application.JobListingID)
	if err != nil && err != pgx.ErrNoRows {
		return nil, err
	}

	allowed := actor.Role == domain.RoleAdmin ||
		(actor.Role == domain.RoleJobSeeker && application.JobSeekerID == actor.ID) ||
		(actor.Role == domain.RoleEmployer && listing != nil && listing.EmployerID == actor.ID)
	if !allowed {
		return nil, apperrors.NewForbidden("you may not view this application")
	}

	seeker, err := s.principals.GetByID(ctx, domain.RoleJobSeeker, application.JobSeekerID)
	if err != nil && err != pgx.ErrNoRows {
		return nil, err
	}

	return &domain.ApplicationDetail{Application: *application, Listing: listing, Seeker: seeker}, nil
}

// List returns every application with summaries, newest first. Admin-facing.
func (s *ApplicationService) List(ctx context.Context) ([]domain.ApplicationDetail, error) {
	applications, err := s.applications.List(ctx)
	if err != nil {
		return nil, err
	}
	details := make([]domain.ApplicationDetail, 0, len(applications))
	for i := range applications {
		detail := domain.ApplicationDetail{Application: applications[i]}
		listing, err := s.jobs.GetByID(ctx, applications[i].JobListingID)
		if err != nil && err != pgx.ErrNoRows {
			return nil, err
		}
		detail.Listing = listing
		seeker, err := s.principals.GetByID(ctx, domain.RoleJobSeeker, applications[i].JobSeekerID)
		if err != nil && err != pgx.ErrNoRows {
			return nil, err
		}
		detail.Seeker = seeker
		details = append(details, detail)
	}
	return details, nil
}

// EmployerApplication is the employer-facing view of one application.
type EmployerApplication struct {
	ID         string
	JobID      string
	JobTitle   string
	Company    string
	Status     domain.ApplicationStatus
	ReceivedAt time.Time
}

// ListByEmployer returns the applications received against the employer's
// listings, resolved through the listing's employer_id foreign key alone.
// Employers may only query themselves; admins may query anyone.
func (s *ApplicationService) ListByEmployer(ctx context.Context, actor *domain.Principal, employerID string) ([]EmployerApplication, error) {
	if actor.Role != domain.RoleAdmin &&
		(actor.Role != domain.RoleEmployer || actor.ID != employerID) {
		return nil, apperrors.NewForbidden("you may only view your own applications")
	}

	if _, err := s.principals.GetByID(ctx, domain.RoleEmployer, employerID); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("employer")
		}
		return nil, err
	}

	applications, err := s.applications.ListByEmployer(ctx, employerID)
	if err != nil {
		return nil, err
	}

	result := make([]EmployerApplication, 0, len(applications))
	for i := range applications {
		app := applications[i]
		view := EmployerApplication{
			ID:         app.ID,
			JobID:      app.JobListingID,
			JobTitle:   app.JobTitle,
			Status:     app.Status,
			ReceivedAt: app.CreatedAt,
		}
		listing, err := s.jobs.GetByID(ctx, app.JobListingID)
		if err != nil && err != pgx.ErrNoRows {
			return nil, err
		}
		if listing != nil {
			view.Company = listing.CompanyName
			if view.JobTitle == "" {
				view.JobTitle = listing.Post
			}
		}
		result = append(result, view)
	}
	return result, nil
}

func (s *ApplicationService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, event)
	}
}
