package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/job-board/internal/api/dto"
	"github.com/spec-kit/job-board/internal/api/validate"
	"github.com/spec-kit/job-board/internal/auth"
	"github.com/spec-kit/job-board/internal/domain"
	"github.com/spec-kit/job-board/internal/repository"
	"github.com/spec-kit/job-board/internal/service"
	"github.com/spec-kit/job-board/internal/storage"
	apperrors "github.com/spec-kit/job-board/pkg/util"
)

// JobsHandler exposes job listing endpoints.
type JobsHandler struct {
	jobs  *service.JobService
	store *storage.Store
}

// NewJobsHandler constructs handler.
func NewJobsHandler(jobService *service.JobService, store *storage.Store) *JobsHandler {
	return &JobsHandler{jobs: jobService, store: store}
}

// List handles GET /api/job_portals.
func (h *JobsHandler) List(c *fiber.Ctx) error {
	listings, err := h.jobs.SearchListings(c.UserContext(), repository.JobFilter{})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", jobResponses(listings))
}

// Search handles GET /api/job_portals/search.
func (h *JobsHandler) Search(c *fiber.Ctx) error {
	var req dto.JobSearchRequest
	if err := c.QueryParser(&req); err != nil {
		return apperrors.NewMalformedBody()
	}
	if fieldErrors := validate.Struct(req); fieldErrors != nil {
		return apperrors.NewValidationError(fieldErrors)
	}

	filter := repository.JobFilter{}
	if req.Query != "" {
		filter.Term = &req.Query
	}
	if req.CompanyName != "" {
		filter.CompanyName = &req.CompanyName
	}
	if req.Post != "" {
		filter.Post = &req.Post
	}
	if req.Location != "" {
		filter.Location = &req.Location
	}
	if req.Contract != "" {
		contract := domain.ContractType(req.Contract)
		filter.Contract = &contract
	}

	listings, err := h.jobs.SearchListings(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", jobResponses(listings))
}

// Get handles GET /api/job_portals/:id.
func (h *JobsHandler) Get(c *fiber.Ctx) error {
	listing, err := h.jobs.GetListing(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", dto.NewJobResponse(listing))
}

// Create handles POST /api/job_portals. Employer only; the caller becomes
// the listing's owner.
func (h *JobsHandler) Create(c *fiber.Ctx) error {
	employer, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	input, err := h.parseJobInput(c)
	if err != nil {
		return err
	}

	listing, err := h.jobs.CreateListing(c.UserContext(), employer, *input)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "Job portal created successfully", dto.NewJobResponse(listing))
}

// Update handles PUT /api/job_portals/:id.
func (h *JobsHandler) Update(c *fiber.Ctx) error {
	actor, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	input, err := h.parseJobInput(c)
	if err != nil {
		return err
	}

	listing, err := h.jobs.UpdateListing(c.UserContext(), actor, c.Params("id"), *input)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Job portal updated successfully.", dto.NewJobResponse(listing))
}

// Delete handles DELETE /api/job_portals/:id.
func (h *JobsHandler) Delete(c *fiber.Ctx) error {
	actor, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.jobs.DeleteListing(c.UserContext(), actor, c.Params("id")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Job portal deleted successfully.", nil)
}

// parseJobInput validates the multipart payload and stores an attached logo.
func (h *JobsHandler) parseJobInput(c *fiber.Ctx) (*service.JobInput, error) {
	var req dto.JobRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, apperrors.NewMalformedBody()
	}
	if fieldErrors := validate.Struct(req); fieldErrors != nil {
		return nil, apperrors.NewValidationError(fieldErrors)
	}

	input := &service.JobInput{
		CompanyName:    req.CompanyName,
		Contract:       domain.ContractType(req.Contract),
		Post:           req.Post,
		Salary:         req.Salary,
		Description:    req.Description,
		Location:       req.Location,
		Responsibility: req.Responsibility,
	}

	if file, err := c.FormFile("companyLogo"); err == nil && file != nil {
		path, err := h.store.SaveLogo(file)
		if err != nil {
			var unsupported *storage.ErrUnsupportedFile
			if errors.As(err, &unsupported) {
				return nil, apperrors.NewValidationError(map[string][]string{
					"companyLogo": {unsupported.Reason},
				})
			}
			return nil, err
		}
		input.CompanyLogo = &path
	}
	return input, nil
}

func jobResponses(listings []domain.JobListing) []dto.JobResponse {
	resp := make([]dto.JobResponse, 0, len(listings))
	for i := range listings {
		resp = append(resp, dto.NewJobResponse(&listings[i]))
	}
	return resp
}
