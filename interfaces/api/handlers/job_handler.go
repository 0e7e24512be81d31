package handlers

import (
	"github.com/gofiber/fiber/v2"

	"buildboard/domain/dto"
	"buildboard/domain/services"
	"buildboard/pkg/logger"
	"buildboard/pkg/utils"
)

type JobHandler struct {
	jobService         services.JobService
	applicationService services.ApplicationService
}

func NewJobHandler(jobService services.JobService, applicationService services.ApplicationService) *JobHandler {
	return &JobHandler{
		jobService:         jobService,
		applicationService: applicationService,
	}
}

func (h *JobHandler) CreateJob(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, ok := currentUser(c)
	if !ok {
		return nil
	}

	var req dto.CreateJobRequest
	if !parseBody(c, &req) {
		return nil
	}

	job, err := h.jobService.CreateJob(ctx, user.ID, &req)
	if err != nil {
		logger.WarnContext(ctx, "Job creation failed", "user_id", user.ID, "error", err)
		return utils.ServiceErrorResponse(c, err)
	}

	logger.InfoContext(ctx, "Job created", "job_id", job.ID, "user_id", user.ID)
	return utils.CreatedResponse(c, dto.JobToJobResponse(job))
}

func (h *JobHandler) ListJobs(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var filter dto.JobFilterRequest
	if err := c.QueryParser(&filter); err != nil {
		logger.WarnContext(ctx, "Invalid query parameters", "error", err)
		return utils.BadRequestResponse(c, "Invalid query parameters")
	}
	if err := utils.ValidateStruct(&filter); err != nil {
		return utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
	}

	jobs, total, err := h.jobService.ListJobs(ctx, &filter, viewerID(c))
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	return utils.PaginatedSuccessResponse(c, dto.JobsToJobResponses(jobs), total, filter.Page, filter.Limit)
}

func (h *JobHandler) GetJob(c *fiber.Ctx) error {
	ctx := c.UserContext()

	jobID, ok := parseIDParam(c, "id", "job ID")
	if !ok {
		return nil
	}

	job, err := h.jobService.GetJob(ctx, jobID, viewerID(c))
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, dto.JobToJobResponse(job))
}

func (h *JobHandler) UpdateJob(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, ok := currentUser(c)
	if !ok {
		return nil
	}
	jobID, ok := parseIDParam(c, "id", "job ID")
	if !ok {
		return nil
	}

	var req dto.UpdateJobRequest
	if !parseBody(c, &req) {
		return nil
	}

	job, err := h.jobService.UpdateJob(ctx, jobID, user.ID, &req)
	if err != nil {
		logger.WarnContext(ctx, "Job update failed", "job_id", jobID, "error", err)
		return utils.ServiceErrorResponse(c, err)
	}

	logger.InfoContext(ctx, "Job updated", "job_id", jobID)
	return utils.SuccessResponse(c, dto.JobToJobResponse(job))
}

func (h *JobHandler) DeleteJob(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, ok := currentUser(c)
	if !ok {
		return nil
	}
	jobID, ok := parseIDParam(c, "id", "job ID")
	if !ok {
		return nil
	}

	if err := h.jobService.DeleteJob(ctx, jobID, user.ID); err != nil {
		logger.WarnContext(ctx, "Job deletion failed", "job_id", jobID, "error", err)
		return utils.ServiceErrorResponse(c, err)
	}

	logger.InfoContext(ctx, "Job deleted", "job_id", jobID)
	return utils.NoContentResponse(c)
}

// UploadImage multipart field "file"
func (h *JobHandler) UploadImage(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, ok := currentUser(c)
	if !ok {
		return nil
	}
	jobID, ok := parseIDParam(c, "id", "job ID")
	if !ok {
		return nil
	}

	upload, ok := openUpload(c)
	if !ok {
		return nil
	}
	defer upload.Close()

	job, err := h.jobService.SetJobImage(ctx, jobID, user.ID, upload.file, upload.filename, upload.contentType)
	if err != nil {
		logger.WarnContext(ctx, "Job image upload failed", "job_id", jobID, "error", err)
		return utils.ServiceErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, dto.JobToJobResponse(job))
}

func (h *JobHandler) ListWorkers(c *fiber.Ctx) error {
	ctx := c.UserContext()

	jobID, ok := parseIDParam(c, "id", "job ID")
	if !ok {
		return nil
	}

	workers, err := h.jobService.ListWorkers(ctx, jobID, viewerID(c))
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	out := make([]*dto.JobWorkerResponse, 0, len(workers))
	for _, w := range workers {
		out = append(out, dto.UserToJobWorkerResponse(w))
	}
	return utils.SuccessResponse(c, out)
}

func (h *JobHandler) ListApplications(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, ok := currentUser(c)
	if !ok {
		return nil
	}
	jobID, ok := parseIDParam(c, "id", "job ID")
	if !ok {
		return nil
	}

	apps, err := h.applicationService.ListForJob(ctx, jobID, user.ID)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, dto.ApplicationsToResponses(apps))
}
