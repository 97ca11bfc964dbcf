package events

import (
	"time"

	"github.com/spec-kit/job-board/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventPrincipalRegistered      EventType = "principal_registered"
	EventJobPosted                EventType = "job_posted"
	EventApplicationSubmitted     EventType = "application_submitted"
	EventApplicationStatusChanged EventType = "application_status_changed"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	Role domain.Role `json:"role"`
	ID   string      `json:"id"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SubjectID string      `json:"subject_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// PrincipalRegisteredPayload payload.
type PrincipalRegisteredPayload struct {
	Role  domain.Role `json:"role"`
	Email string      `json:"email"`
}

// JobPostedPayload payload.
type JobPostedPayload struct {
	EmployerID  string              `json:"employer_id"`
	CompanyName string              `json:"company_name"`
	Post        string              `json:"post"`
	Contract    domain.ContractType `json:"contract"`
}

// ApplicationSubmittedPayload payload.
type ApplicationSubmittedPayload struct {
	JobListingID string `json:"job_listing_id"`
	JobSeekerID  string `json:"job_seeker_id"`
	JobTitle     string `json:"job_title"`
}

// ApplicationStatusChangedPayload payload.
type ApplicationStatusChangedPayload struct {
	OldStatus domain.ApplicationStatus `json:"old_status"`
	NewStatus domain.ApplicationStatus `json:"new_status"`
}
