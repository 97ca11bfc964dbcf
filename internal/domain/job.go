package domain

import "time"

// ContractType enumerates the offered engagement kinds.
type ContractType string

const (
	ContractFullTime ContractType = "fulltime"
	ContractPartTime ContractType = "parttime"
	ContractRemote   ContractType = "remote"
)

// JobListing is a job posting owned by exactly one employer. EmployerID is a
// strict foreign key fixed at creation time from the authenticated caller.
type JobListing struct {
	ID             string
	EmployerID     string
	CompanyName    string
	CompanyLogo    *string
	Contract       ContractType
	Post           string
	Salary         string
	Description    string
	Location       string
	Responsibility string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
