package dto

import (
	"time"

	"github.com/spec-kit/job-board/internal/domain"
)

// JobRequest is the multipart payload for creating or updating a listing.
// The companyLogo file part is handled separately by the handler.
type JobRequest struct {
	CompanyName    string `json:"companyName" form:"companyName" validate:"required,max=255"`
	Contract       string `json:"contract" form:"contract" validate:"required,oneof=fulltime parttime remote"`
	Post           string `json:"post" form:"post" validate:"required,max=100"`
	Salary         string `json:"salary" form:"salary" validate:"required,salary"`
	Description    string `json:"description" form:"description" validate:"required,min=10,max=1000"`
	Location       string `json:"location" form:"location" validate:"required,max=255"`
	Responsibility string `json:"responsibility" form:"responsibility" validate:"required,min=10,max=1000"`
}

// JobSearchRequest narrows listing searches; every filter is optional.
type JobSearchRequest struct {
	Query       string `json:"query" form:"query" query:"query" validate:"omitempty,max=255"`
	CompanyName string `json:"companyName" form:"companyName" query:"companyName" validate:"omitempty,max=255"`
	Post        string `json:"post" form:"post" query:"post" validate:"omitempty,max=100"`
	Location    string `json:"location" form:"location" query:"location" validate:"omitempty,max=255"`
	Contract    string `json:"contract" form:"contract" query:"contract" validate:"omitempty,oneof=fulltime parttime remote"`
}

// JobResponse is the client-facing listing shape.
type JobResponse struct {
	ID             string    `json:"id"`
	EmployerID     string    `json:"employer_id"`
	CompanyName    string    `json:"companyName"`
	CompanyLogo    *string   `json:"companyLogo"`
	Contract       string    `json:"contract"`
	Post           string    `json:"post"`
	Salary         string    `json:"salary"`
	Description    string    `json:"description"`
	Location       string    `json:"location"`
	Responsibility string    `json:"responsibility"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewJobResponse maps a domain listing to its response shape.
func NewJobResponse(listing *domain.JobListing) JobResponse {
	return JobResponse{
		ID:             listing.ID,
		EmployerID:     listing.EmployerID,
		CompanyName:    listing.CompanyName,
		CompanyLogo:    listing.CompanyLogo,
		Contract:       string(listing.Contract),
		Post:           listing.Post,
		Salary:         listing.Salary,
		Description:    listing.Description,
		Location:       listing.Location,
		Responsibility: listing.Responsibility,
		CreatedAt:      listing.CreatedAt,
		UpdatedAt:      listing.UpdatedAt,
	}
}
