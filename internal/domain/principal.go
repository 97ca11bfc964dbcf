package domain

import "time"

// Role partitions principals into their three account kinds. Each role is
// backed by its own table; the role tag is what selects the table.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleEmployer  Role = "employer"
	RoleJobSeeker Role = "job_seeker"
)

// Roles lists all roles in the fixed lookup order used when resolving an
// email without a role hint.
var Roles = []Role{RoleAdmin, RoleEmployer, RoleJobSeeker}

// Valid reports whether the role names a known account kind.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEmployer, RoleJobSeeker:
		return true
	}
	return false
}

// Sex enumerates accepted values for the sex profile field.
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// MaritalStatus enumerates accepted values for the status profile field.
type MaritalStatus string

const (
	MaritalSingle  MaritalStatus = "single"
	MaritalMarried MaritalStatus = "married"
)

// Principal is an account in one of the three role collections. The Role tag
// identifies which table the record lives in; all three share this shape.
type Principal struct {
	ID           string
	Role         Role
	Name         string
	Email        string
	PasswordHash string
	PhoneNumber  string
	Age          int
	Sex          Sex
	Status       MaritalStatus
	Address      string
	City         string
	State        string
	Country      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
