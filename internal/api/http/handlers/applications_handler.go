package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/job-board/internal/api/dto"
	"github.com/spec-kit/job-board/internal/api/validate"
	"github.com/spec-kit/job-board/internal/auth"
	"github.com/spec-kit/job-board/internal/domain"
	"github.com/spec-kit/job-board/internal/service"
	"github.com/spec-kit/job-board/internal/storage"
	apperrors "github.com/spec-kit/job-board/pkg/util"
)

// ApplicationsHandler exposes job application endpoints.
type ApplicationsHandler struct {
	applications *service.ApplicationService
	store        *storage.Store
}

// NewApplicationsHandler constructs handler.
func NewApplicationsHandler(applicationService *service.ApplicationService, store *storage.Store) *ApplicationsHandler {
	return &ApplicationsHandler{applications: applicationService, store: store}
}

// List handles GET /api/job_applies. Admin only.
func (h *ApplicationsHandler) List(c *fiber.Ctx) error {
	details, err := h.applications.List(c.UserContext())
	if err != nil {
		return err
	}
	resp := make([]dto.ApplicationResponse, 0, len(details))
	for i := range details {
		resp = append(resp, dto.NewApplicationDetailResponse(&details[i]))
	}
	return respond(c, http.StatusOK, "", resp)
}

// Get handles GET /api/job_applies/:id.
func (h *ApplicationsHandler) Get(c *fiber.Ctx) error {
	actor, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	detail, err := h.applications.Get(c.UserContext(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", dto.NewApplicationDetailResponse(detail))
}

// Create handles POST /api/job_applies. Job seeker only; the caller becomes
// the applicant and the resume part is required.
func (h *ApplicationsHandler) Create(c *fiber.Ctx) error {
	seeker, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.ApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewMalformedBody()
	}
	if fieldErrors := validate.Struct(req); fieldErrors != nil {
		return apperrors.NewValidationError(fieldErrors)
	}

	file, err := c.FormFile("resume")
	if err != nil || file == nil {
		return apperrors.NewValidationError(map[string][]string{
			"resume": {"The resume field is required."},
		})
	}
	resumePath, err := h.saveResume(file)
	if err != nil {
		return err
	}

	application, err := h.applications.Submit(c.UserContext(), seeker, service.ApplicationInput{
		JobListingID: req.JobListingID,
		CoverLetter:  req.CoverLetter,
		ResumePath:   resumePath,
	})
	if err != nil {
		_ = h.store.Delete(resumePath)
		return err
	}
	return respond(c, http.StatusCreated, "Application submitted successfully", dto.NewApplicationResponse(application))
}

// Update handles PUT /api/job_applies/:id. Owning seeker only; the resume
// part is optional and replaces the stored file when present.
func (h *ApplicationsHandler) Update(c *fiber.Ctx) error {
	actor, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.ApplicationUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewMalformedBody()
	}
	if fieldErrors := validate.Struct(req); fieldErrors != nil {
		return apperrors.NewValidationError(fieldErrors)
	}

	update := service.ApplicationUpdate{
		JobListingID: &req.JobListingID,
		CoverLetter:  &req.CoverLetter,
	}
	if file, err := c.FormFile("resume"); err == nil && file != nil {
		resumePath, err := h.saveResume(file)
		if err != nil {
			return err
		}
		update.ResumePath = &resumePath
	}

	application, err := h.applications.Update(c.UserContext(), actor, c.Params("id"), update)
	if err != nil {
		if update.ResumePath != nil {
			_ = h.store.Delete(*update.ResumePath)
		}
		return err
	}
	return respond(c, http.StatusOK, "", dto.NewApplicationResponse(application))
}

// UpdateStatus handles PUT /api/job_applies/:id/status.
func (h *ApplicationsHandler) UpdateStatus(c *fiber.Ctx) error {
	actor, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.ApplicationStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewMalformedBody()
	}
	if fieldErrors := validate.Struct(req); fieldErrors != nil {
		return apperrors.NewValidationError(fieldErrors)
	}

	application, err := h.applications.UpdateStatus(c.UserContext(), actor, c.Params("id"), domain.ApplicationStatus(req.Status))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Application status updated successfully", dto.NewApplicationResponse(application))
}

// Delete handles DELETE /api/job_applies/:id.
func (h *ApplicationsHandler) Delete(c *fiber.Ctx) error {
	actor, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.applications.Delete(c.UserContext(), actor, c.Params("id")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Application deleted successfully.", nil)
}

// ListByEmployer handles GET /api/job_applies/employer/:employerId.
func (h *ApplicationsHandler) ListByEmployer(c *fiber.Ctx) error {
	actor, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	views, err := h.applications.ListByEmployer(c.UserContext(), actor, c.Params("employerId"))
	if err != nil {
		return err
	}
	resp := make([]dto.EmployerApplicationResponse, 0, len(views))
	for _, view := range views {
		resp = append(resp, dto.NewEmployerApplicationResponse(view))
	}
	message := ""
	if len(resp) == 0 {
		message = "No job portals found for this employer"
	}
	return respond(c, http.StatusOK, message, resp)
}

func (h *ApplicationsHandler) saveResume(file *multipart.FileHeader) (string, error) {
	path, err := h.store.SaveResume(file)
	if err != nil {
		var unsupported *storage.ErrUnsupportedFile
		if errors.As(err, &unsupported) {
			return "", apperrors.NewValidationError(map[string][]string{
				"resume": {unsupported.Reason},
			})
		}
		return "", err
	}
	return path, nil
}
