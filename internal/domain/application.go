package domain

import "time"

// ApplicationStatus tracks an application's review state.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationAccepted ApplicationStatus = "accepted"
	ApplicationRejected ApplicationStatus = "rejected"
)

// JobApplication is one seeker's submission against a listing. JobTitle is a
// denormalized copy of the listing's post at submission time so employers keep
// the title the candidate applied for even after the listing changes.
type JobApplication struct {
	ID           string
	JobListingID string
	JobSeekerID  string
	CoverLetter  string
	ResumePath   string
	JobTitle     string
	Status       ApplicationStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ApplicationDetail bundles an application with the summaries callers render
// beside it.
type ApplicationDetail struct {
	Application JobApplication
	Listing     *JobListing
	Seeker      *Principal
}
