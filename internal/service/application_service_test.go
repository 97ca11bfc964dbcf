package service

import (
	"context"
	"errors"
	"testing"

	"github.com/spec-kit/job-board/internal/domain"
	apperrors "github.com/spec-kit/job-board/pkg/util"
)

type applicationFixture struct {
	svc          *ApplicationService
	jobSvc       *JobService
	applications *stubApplicationRepo
	jobs         *stubJobRepo
	principals   *stubPrincipalRepo
	files        *stubFileRemover
}

func newApplicationFixture() applicationFixture {
	jobs := newStubJobRepo()
	applications := newStubApplicationRepo(jobs)
	principals := newStubPrincipalRepo()
	files := &stubFileRemover{}
	svc := NewApplicationService(ApplicationDependencies{
		ApplicationRepo: applications,
		JobRepo:         jobs,
		PrincipalRepo:   principals,
		Files:           files,
	})
	jobSvc := NewJobService(JobDependencies{JobRepo: jobs, Files: files})
	return applicationFixture{
		svc:          svc,
		jobSvc:       jobSvc,
		applications: applications,
		jobs:         jobs,
		principals:   principals,
		files:        files,
	}
}

func (fx applicationFixture) addPrincipal(t *testing.T, role domain.Role, email string) *domain.Principal {
	t.Helper()
	principal := &domain.Principal{Role: role, Name: "Person", Email: email}
	if err := fx.principals.Create(context.Background(), principal); err != nil {
		t.Fatalf("create principal failed: %v", err)
	}
	return principal
}

func (fx applicationFixture) addListing(t *testing.T, employer *domain.Principal, post string) *domain.JobListing {
	t.Helper()
	input := sampleJobInput()
	input.Post = post
	listing, err := fx.jobSvc.CreateListing(context.Background(), employer, input)
	if err != nil {
		t.Fatalf("create listing failed: %v", err)
	}
	return listing
}

func seekerPrincipal(fx applicationFixture, t *testing.T) *domain.Principal {
	return fx.addPrincipal(t, domain.RoleJobSeeker, "seeker@example.com")
}

func TestSubmitCopiesJobTitleAndStartsPending(t *testing.T) {
	fx := newApplicationFixture()
	employer := fx.addPrincipal(t, domain.RoleEmployer, "employer@example.com")
	seeker := seekerPrincipal(fx, t)
	listing := fx.addListing(t, employer, "Platform Engineer")

	application, err := fx.svc.Submit(context.Background(), seeker, ApplicationInput{
		JobListingID: listing.ID,
		CoverLetter:  "I would like to apply.",
		ResumePath:   "resumes/cv.pdf",
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if application.JobTitle != "Platform Engineer" {
		t.Fatalf("expected copied title, got %q", application.JobTitle)
	}
	if application.Status != domain.ApplicationPending {
		t.Fatalf("expected pending status, got %q", application.Status)
	}
	if application.JobSeekerID != seeker.ID {
		t.Fatalf("expected applicant %s, got %s", seeker.ID, application.JobSeekerID)
	}
}

func TestSubmitUnknownListingNotFound(t *testing.T) {
	fx := newApplicationFixture()
	seeker := seekerPrincipal(fx, t)

	_, err := fx.svc.Submit(context.Background(), seeker, ApplicationInput{
		JobListingID: "missing",
		CoverLetter:  "Hello.",
		ResumePath:   "resumes/cv.pdf",
	})
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) || domainErr.HTTPStatus != 404 {
		t.Fatalf("expected 404, got %v", err)
	}
}

func TestUpdateByOtherSeekerForbidden(t *testing.T) {
	fx := newApplicationFixture()
	employer := fx.addPrincipal(t, domain.RoleEmployer, "employer@example.com")
	owner := fx.addPrincipal(t, domain.RoleJobSeeker, "owner@example.com")
	other := fx.addPrincipal(t, domain.RoleJobSeeker, "other@example.com")
	listing := fx.addListing(t, employer, "Engineer")

	application, err := fx.svc.Submit(context.Background(), owner, ApplicationInput{
		JobListingID: listing.ID,
		CoverLetter:  "Hello.",
		ResumePath:   "resumes/cv.pdf",
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	letter := "Updated letter."
	_, err = fx.svc.Update(context.Background(), other, application.ID, ApplicationUpdate{CoverLetter: &letter})
	assertForbidden(t, err)
}

func TestUpdateRetargetRefreshesJobTitle(t *testing.T) {
	fx := newApplicationFixture()
	employer := fx.addPrincipal(t, domain.RoleEmployer, "employer@example.com")
	seeker := seekerPrincipal(fx, t)
	first := fx.addListing(t, employer, "First Role")
	second := fx.addListing(t, employer, "Second Role")

	application, err := fx.svc.Submit(context.Background(), seeker, ApplicationInput{
		JobListingID: first.ID,
		CoverLetter:  "Hello.",
		ResumePath:   "resumes/cv.pdf",
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	updated, err := fx.svc.Update(context.Background(), seeker, application.ID, ApplicationUpdate{
		JobListingID: &second.ID,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.JobListingID != second.ID {
		t.Fatalf("expected retarget to %s, got %s", second.ID, updated.JobListingID)
	}
	if updated.JobTitle != "Second Role" {
		t.Fatalf("expected refreshed title, got %q", updated.JobTitle)
	}
}

func TestUpdateReplacingResumeDeletesOldFile(t *testing.T) {
	fx := newApplicationFixture()
	employer := fx.addPrincipal(t, domain.RoleEmployer, "employer@example.com")
	seeker := seekerPrincipal(fx, t)
	listing := fx.addListing(t, employer, "Engineer")

	application, err := fx.svc.Submit(context.Background(), seeker, ApplicationInput{
		JobListingID: listing.ID,
		CoverLetter:  "Hello.",
		ResumePath:   "resumes/old.pdf",
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	newResume := "resumes/new.pdf"
	updated, err := fx.svc.Update(context.Background(), seeker, application.ID, ApplicationUpdate{
		ResumePath: &newResume,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.ResumePath != newResume {
		t.Fatalf("expected resume %q, got %q", newResume, updated.ResumePath)
	}
	deleted := fx.files.deletedPaths()
	if len(deleted) != 1 || deleted[0] != "resumes/old.pdf" {
		t.Fatalf("expected old resume deletion, got %v", deleted)
	}
}

func TestUpdateStatusByNonOwningEmployerForbidden(t *testing.T) {
	fx := newApplicationFixture()
	owner := fx.addPrincipal(t, domain.RoleEmployer, "owner@example.com")
	other := fx.addPrincipal(t, domain.RoleEmployer, "other@example.com")
	seeker := seekerPrincipal(fx, t)
	listing := fx.addListing(t, owner, "Engineer")

	application, err := fx.svc.Submit(context.Background(), seeker, ApplicationInput{
		JobListingID: listing.ID,
		CoverLetter:  "Hello.",
		ResumePath:   "resumes/cv.pdf",
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	_, err = fx.svc.UpdateStatus(context.Background(), other, application.ID, domain.ApplicationAccepted)
	assertForbidden(t, err)
}

func TestUpdateStatusByOwningEmployer(t *testing.T) {
	fx := newApplicationFixture()
	owner := fx.addPrincipal(t, domain.RoleEmployer, "owner@example.com")
	seeker := seekerPrincipal(fx, t)
	listing := fx.addListing(t, owner, "Engineer")

	application, err := fx.svc.Submit(context.Background(), seeker, ApplicationInput{
		JobListingID: listing.ID,
		CoverLetter:  "Hello.",
		ResumePath:   "resumes/cv.pdf",
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	updated, err := fx.svc.UpdateStatus(context.Background(), owner, application.ID, domain.ApplicationAccepted)
	if err != nil {
		t.Fatalf("status update failed: %v", err)
	}
	if updated.Status != domain.ApplicationAccepted {
		t.Fatalf("expected accepted, got %q", updated.Status)
	}
}

func TestDeleteByOwnerRemovesResume(t *testing.T) {
	fx := newApplicationFixture()
	employer := fx.addPrincipal(t, domain.RoleEmployer, "employer@example.com")
	seeker := seekerPrincipal(fx, t)
	listing := fx.addListing(t, employer, "Engineer")

	application, err := fx.svc.Submit(context.Background(), seeker, ApplicationInput{
		JobListingID: listing.ID,
		CoverLetter:  "Hello.",
		ResumePath:   "resumes/cv.pdf",
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	if err := fx.svc.Delete(context.Background(), seeker, application.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	deleted := fx.files.deletedPaths()
	if len(deleted) != 1 || deleted[0] != "resumes/cv.pdf" {
		t.Fatalf("expected resume deletion, got %v", deleted)
	}
}

func TestGetVisibleToInvolvedPartiesOnly(t *testing.T) {
	fx := newApplicationFixture()
	employer := fx.addPrincipal(t, domain.RoleEmployer, "employer@example.com")
	outsider := fx.addPrincipal(t, domain.RoleEmployer, "outsider@example.com")
	seeker := seekerPrincipal(fx, t)
	listing := fx.addListing(t, employer, "Engineer")

	application, err := fx.svc.Submit(context.Background(), seeker, ApplicationInput{
		JobListingID: listing.ID,
		CoverLetter:  "Hello.",
		ResumePath:   "resumes/cv.pdf",
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	for _, actor := range []*domain.Principal{seeker, employer, adminPrincipal()} {
		detail, err := fx.svc.Get(context.Background(), actor, application.ID)
		if err != nil {
			t.Fatalf("%s should see the application: %v", actor.Role, err)
		}
		if detail.Application.ID != application.ID {
			t.Fatalf("wrong application returned for %s", actor.Role)
		}
	}

	_, err = fx.svc.Get(context.Background(), outsider, application.ID)
	assertForbidden(t, err)
}

func TestListByEmployerScopesToListingOwnership(t *testing.T) {
	fx := newApplicationFixture()
	first := fx.addPrincipal(t, domain.RoleEmployer, "first@example.com")
	second := fx.addPrincipal(t, domain.RoleEmployer, "second@example.com")
	seeker := seekerPrincipal(fx, t)
	firstListing := fx.addListing(t, first, "First Role")
	secondListing := fx.addListing(t, second, "Second Role")

	for _, listingID := range []string{firstListing.ID, secondListing.ID} {
		if _, err := fx.svc.Submit(context.Background(), seeker, ApplicationInput{
			JobListingID: listingID,
			CoverLetter:  "Hello.",
			ResumePath:   "resumes/cv.pdf",
		}); err != nil {
			t.Fatalf("submit failed: %v", err)
		}
	}

	views, err := fx.svc.ListByEmployer(context.Background(), first, first.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("expected exactly one application, got %d", len(views))
	}
	if views[0].JobID != firstListing.ID {
		t.Fatalf("expected application against %s, got %s", firstListing.ID, views[0].JobID)
	}
	if views[0].Company != "Acme Corp" {
		t.Fatalf("expected company from the listing, got %q", views[0].Company)
	}
}

func TestListByEmployerSelfOnly(t *testing.T) {
	fx := newApplicationFixture()
	first := fx.addPrincipal(t, domain.RoleEmployer, "first@example.com")
	second := fx.addPrincipal(t, domain.RoleEmployer, "second@example.com")

	_, err := fx.svc.ListByEmployer(context.Background(), first, second.ID)
	assertForbidden(t, err)

	if _, err := fx.svc.ListByEmployer(context.Background(), adminPrincipal(), second.ID); err != nil {
		t.Fatalf("admin should query any employer: %v", err)
	}
}

type failingJobRepo struct {
	*stubJobRepo
}

func (r *failingJobRepo) GetByID(context.Context, string) (*domain.JobListing, error) {
	return nil, errors.New("connection reset")
}

func TestListPropagatesListingLookupFailures(t *testing.T) {
	fx := newApplicationFixture()
	employer := fx.addPrincipal(t, domain.RoleEmployer, "employer@example.com")
	seeker := seekerPrincipal(fx, t)
	listing := fx.addListing(t, employer, "Engineer")

	if _, err := fx.svc.Submit(context.Background(), seeker, ApplicationInput{
		JobListingID: listing.ID,
		CoverLetter:  "Hello.",
		ResumePath:   "resumes/cv.pdf",
	}); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	// A broken listing lookup must fail the call, not silently drop summaries.
	broken := NewApplicationService(ApplicationDependencies{
		ApplicationRepo: fx.applications,
		JobRepo:         &failingJobRepo{stubJobRepo: fx.jobs},
		PrincipalRepo:   fx.principals,
		Files:           fx.files,
	})
	if _, err := broken.List(context.Background()); err == nil {
		t.Fatal("expected the lookup failure to propagate")
	}
	if _, err := broken.ListByEmployer(context.Background(), adminPrincipal(), employer.ID); err == nil {
		t.Fatal("expected the lookup failure to propagate")
	}
}

func TestListReturnsSummariesForEachApplication(t *testing.T) {
	fx := newApplicationFixture()
	employer := fx.addPrincipal(t, domain.RoleEmployer, "employer@example.com")
	seeker := seekerPrincipal(fx, t)
	listing := fx.addListing(t, employer, "Engineer")

	if _, err := fx.svc.Submit(context.Background(), seeker, ApplicationInput{
		JobListingID: listing.ID,
		CoverLetter:  "Hello.",
		ResumePath:   "resumes/cv.pdf",
	}); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	details, err := fx.svc.List(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(details) != 1 {
		t.Fatalf("expected one application, got %d", len(details))
	}
	if details[0].Listing == nil || details[0].Listing.ID != listing.ID {
		t.Fatalf("expected the listing summary, got %v", details[0].Listing)
	}
	if details[0].Seeker == nil || details[0].Seeker.ID != seeker.ID {
		t.Fatalf("expected the seeker summary, got %v", details[0].Seeker)
	}
}

func TestListByEmployerUnknownEmployerNotFound(t *testing.T) {
	fx := newApplicationFixture()

	_, err := fx.svc.ListByEmployer(context.Background(), adminPrincipal(), "missing")
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) || domainErr.HTTPStatus != 404 {
		t.Fatalf("expected 404, got %v", err)
	}
}
