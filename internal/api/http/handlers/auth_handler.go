package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/job-board/internal/api/dto"
	"github.com/spec-kit/job-board/internal/api/validate"
	"github.com/spec-kit/job-board/internal/auth"
	"github.com/spec-kit/job-board/internal/domain"
	"github.com/spec-kit/job-board/internal/service"
	apperrors "github.com/spec-kit/job-board/pkg/util"
)

// AuthHandler exposes registration, login, logout, and user listing.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Register handles POST /api/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewMalformedBody()
	}
	if fieldErrors := validate.Struct(req); fieldErrors != nil {
		return apperrors.NewValidationError(fieldErrors)
	}

	principal, err := h.auth.Register(c.UserContext(), service.RegisterInput{
		Role:        domain.Role(req.Role),
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		PhoneNumber: req.PhoneNumber,
		Age:         req.Age,
		Sex:         domain.Sex(req.Sex),
		Status:      domain.MaritalStatus(req.Status),
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		Country:     req.Country,
	})
	if err != nil {
		return err
	}

	return respond(c, http.StatusCreated, roleLabel(req.Role)+" registered successfully.", dto.NewPrincipalResponse(principal))
}

// Login handles POST /api/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewMalformedBody()
	}
	if fieldErrors := validate.Struct(req); fieldErrors != nil {
		return apperrors.NewValidationError(fieldErrors)
	}

	principal, token, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Login successful.",
		"data":    dto.NewPrincipalResponse(principal),
		"token":   token,
	})
}

// Logout handles POST /api/logout. Every token of the caller is revoked, not
// just the one presented.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.auth.Revoke(c.UserContext(), principal); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Successfully logged out.", nil)
}

// ListUsers handles GET /api/users?role=. Admin only.
func (h *AuthHandler) ListUsers(c *fiber.Ctx) error {
	role := domain.Role(c.Query("role"))
	if !role.Valid() {
		return apperrors.NewValidationError(map[string][]string{
			"role": {"The selected role is invalid."},
		})
	}

	principals, err := h.auth.ListByRole(c.UserContext(), role)
	if err != nil {
		return err
	}

	resp := make([]dto.PrincipalResponse, 0, len(principals))
	for i := range principals {
		resp = append(resp, dto.NewPrincipalResponse(&principals[i]))
	}
	message := roleLabel(string(role)) + " list retrieved successfully."
	if len(resp) == 0 {
		message = "No " + string(role) + "s found"
	}
	return respond(c, http.StatusOK, message, resp)
}

// roleLabel turns a role tag into its display form, e.g. "job_seeker" into
// "Job seeker".
func roleLabel(role string) string {
	label := strings.ReplaceAll(role, "_", " ")
	if label == "" {
		return label
	}
	return strings.ToUpper(label[:1]) + label[1:]
}
