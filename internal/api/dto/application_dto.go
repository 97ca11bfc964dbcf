package dto

import (
	"time"

	"github.com/spec-kit/job-board/internal/domain"
	"github.com/spec-kit/job-board/internal/service"
)

// ApplicationRequest is the multipart payload for submitting an application.
// The resume file part is handled separately by the handler; the applicant is
// always the authenticated job seeker.
type ApplicationRequest struct {
	CoverLetter  string `json:"coverLetter" form:"coverLetter" validate:"required"`
	JobListingID string `json:"job_portals_id" form:"job_portals_id" validate:"required"`
}

// ApplicationUpdateRequest amends an existing application; the resume part is
// optional on update.
type ApplicationUpdateRequest struct {
	CoverLetter  string `json:"coverLetter" form:"coverLetter" validate:"required"`
	JobListingID string `json:"job_portals_id" form:"job_portals_id" validate:"required"`
}

// ApplicationStatusRequest moves an application through review.
type ApplicationStatusRequest struct {
	Status string `json:"status" form:"status" validate:"required,oneof=pending accepted rejected"`
}

// ApplicationResponse is the client-facing application shape.
type ApplicationResponse struct {
	ID           string             `json:"id"`
	JobListingID string             `json:"job_portals_id"`
	JobSeekerID  string             `json:"job_seekers_id"`
	CoverLetter  string             `json:"coverLetter"`
	Resume       string             `json:"resume"`
	JobTitle     string             `json:"job_title"`
	Status       string             `json:"status"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
	Listing      *JobResponse       `json:"jobPortal,omitempty"`
	Seeker       *PrincipalResponse `json:"jobSeeker,omitempty"`
}

// NewApplicationResponse maps a domain application to its response shape.
func NewApplicationResponse(app *domain.JobApplication) ApplicationResponse {
	return ApplicationResponse{
		ID:           app.ID,
		JobListingID: app.JobListingID,
		JobSeekerID:  app.JobSeekerID,
		CoverLetter:  app.CoverLetter,
		Resume:       app.ResumePath,
		JobTitle:     app.JobTitle,
		Status:       string(app.Status),
		CreatedAt:    app.CreatedAt,
		UpdatedAt:    app.UpdatedAt,
	}
}

// NewApplicationDetailResponse maps an application with its summaries.
func NewApplicationDetailResponse(detail *domain.ApplicationDetail) ApplicationResponse {
	resp := NewApplicationResponse(&detail.Application)
	if detail.Listing != nil {
		listing := NewJobResponse(detail.Listing)
		resp.Listing = &listing
	}
	if detail.Seeker != nil {
		seeker := NewPrincipalResponse(detail.Seeker)
		resp.Seeker = &seeker
	}
	return resp
}

// EmployerApplicationResponse is the employer-facing view of one received
// application.
type EmployerApplicationResponse struct {
	ID        string     `json:"id"`
	Job       JobSummary `json:"job"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
}

// JobSummary is the compact listing reference inside employer views.
type JobSummary struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Company string `json:"company"`
}

// NewEmployerApplicationResponse maps the service view to its response shape.
func NewEmployerApplicationResponse(view service.EmployerApplication) EmployerApplicationResponse {
	return EmployerApplicationResponse{
		ID: view.ID,
		Job: JobSummary{
			ID:      view.JobID,
			Title:   view.JobTitle,
			Company: view.Company,
		},
		Status:    string(view.Status),
		CreatedAt: view.ReceivedAt,
	}
}
