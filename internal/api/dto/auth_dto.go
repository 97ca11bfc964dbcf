package dto

import (
	"time"

	"github.com/spec-kit/job-board/internal/domain"
)

// RegisterRequest is the payload for new principals of any role.
type RegisterRequest struct {
	Role                 string `json:"role" form:"role" validate:"required,oneof=admin employer job_seeker"`
	Name                 string `json:"name" form:"name" validate:"required,max=255"`
	Email                string `json:"email" form:"email" validate:"required,email"`
	Password             string `json:"password" form:"password" validate:"required,min=8"`
	PasswordConfirmation string `json:"password_confirmation" form:"password_confirmation" validate:"required,min=8,eqfield=Password"`
	PhoneNumber          string `json:"phoneNumber" form:"phoneNumber" validate:"required,max=15"`
	Age                  int    `json:"age" form:"age" validate:"required,min=18,max=100"`
	Sex                  string `json:"sex" form:"sex" validate:"required,oneof=male female"`
	Status               string `json:"status" form:"status" validate:"required,oneof=single married"`
	Address              string `json:"address" form:"address" validate:"required,max=255"`
	City                 string `json:"city" form:"city" validate:"required,max=255"`
	State                string `json:"state" form:"state" validate:"required,max=255"`
	Country              string `json:"country" form:"country" validate:"required,max=255"`
}

// LoginRequest is the credential payload.
type LoginRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

// PrincipalResponse is the client-facing principal shape. The password hash
// never leaves the service.
type PrincipalResponse struct {
	ID          string    `json:"id"`
	Role        string    `json:"role"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phoneNumber"`
	Age         int       `json:"age"`
	Sex         string    `json:"sex"`
	Status      string    `json:"status"`
	Address     string    `json:"address"`
	City        string    `json:"city"`
	State       string    `json:"state"`
	Country     string    `json:"country"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewPrincipalResponse maps a domain principal to its response shape.
func NewPrincipalResponse(p *domain.Principal) PrincipalResponse {
	return PrincipalResponse{
		ID:          p.ID,
		Role:        string(p.Role),
		Name:        p.Name,
		Email:       p.Email,
		PhoneNumber: p.PhoneNumber,
		Age:         p.Age,
		Sex:         string(p.Sex),
		Status:      string(p.Status),
		Address:     p.Address,
		City:        p.City,
		State:       p.State,
		Country:     p.Country,
		CreatedAt:   p.CreatedAt,
	}
}
