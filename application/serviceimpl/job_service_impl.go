package serviceimpl

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"buildboard/domain/dto"
	"buildboard/domain/models"
	"buildboard/domain/ports"
	"buildboard/domain/repositories"
	"buildboard/domain/services"
	"buildboard/pkg/logger"
	"buildboard/pkg/utils"
)

type JobServiceImpl struct {
	store   repositories.Store
	storage ports.StoragePort
	now     func() time.Time
}

func NewJobService(store repositories.Store, storage ports.StoragePort) services.JobService {
	return &JobServiceImpl{
		store:   store,
		storage: storage,
		now:     time.Now,
	}
}

func (s *JobServiceImpl) CreateJob(ctx context.Context, ownerID uuid.UUID, req *dto.CreateJobRequest) (*models.Job, error) {
	owner, err := s.store.Users().GetByID(ctx, ownerID)
	if err != nil {
		return nil, notFound(err, "user not found")
	}
	if !owner.CanPostJobs() {
		return nil, fmt.Errorf("%w: only managers can post jobs", services.ErrForbidden)
	}

	title := strings.TrimSpace(req.Title)
	site := strings.TrimSpace(req.Site)
	if title == "" || site == "" {
		return nil, fmt.Errorf("%w: title and site are required", services.ErrValidation)
	}
	if err := checkDateRange(req.StartDate, req.EndDate); err != nil {
		return nil, err
	}

	job := &models.Job{
		ID:          uuid.New(),
		Title:       title,
		Site:        site,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Schedule:    models.FormatSchedule(req.StartDate, req.EndDate),
		Status:      models.JobStatusOpen,
		Location:    req.Location,
		PayRate:     req.PayRate,
		Description: req.Description,
		Skills:      normalizeSkills(req.Skills),
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		OwnerID:     ownerID,
		IsPrivate:   req.IsPrivate,
	}

	if err := s.store.Jobs().Create(ctx, job); err != nil {
		logger.ErrorContext(ctx, "Failed to create job", "owner_id", ownerID, "error", err)
		return nil, err
	}

	logger.InfoContext(ctx, "Job created", "job_id", job.ID, "owner_id", ownerID)
	return job, nil
}

func (s *JobServiceImpl) GetJob(ctx context.Context, id, viewerID uuid.UUID) (*models.Job, error) {
	job, err := s.store.Jobs().GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "job not found")
	}
	if !job.VisibleTo(viewerID) {
		return nil, fmt.Errorf("%w: job not found", services.ErrNotFound)
	}
	return job, nil
}

func (s *JobServiceImpl) ListJobs(ctx context.Context, req *dto.JobFilterRequest, viewerID uuid.UUID) ([]*models.Job, int64, error) {
	offset := req.PaginationQuery.Normalize()

	filter := repositories.JobFilter{
		Status:   req.Status,
		Skill:    strings.TrimSpace(req.Skill),
		Query:    strings.TrimSpace(req.Q),
		ViewerID: viewerID,
	}
	if req.OwnerID != "" {
		ownerID, err := uuid.Parse(req.OwnerID)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: invalid ownerId", services.ErrValidation)
		}
		filter.OwnerID = &ownerID
	}

	jobs, total, err := s.store.Jobs().List(ctx, filter, offset, req.Limit)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to list jobs", "error", err)
		return nil, 0, err
	}
	return jobs, total, nil
}

// UpdateJob เขียนเฉพาะ field ที่ส่งมา; schedule คำนวณใหม่เมื่อวันที่เปลี่ยน
func (s *JobServiceImpl) UpdateJob(ctx context.Context, id, actorID uuid.UUID, req *dto.UpdateJobRequest) (*models.Job, error) {
	job, err := s.ownedJob(ctx, id, actorID)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title cannot be blank", services.ErrValidation)
		}
		fields["title"] = title
	}
	if req.Site != nil {
		site := strings.TrimSpace(*req.Site)
		if site == "" {
			return nil, fmt.Errorf("%w: site cannot be blank", services.ErrValidation)
		}
		fields["site"] = site
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if req.Location != nil {
		fields["location"] = *req.Location
	}
	if req.PayRate != nil {
		fields["pay_rate"] = *req.PayRate
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Skills != nil {
		fields["skills"] = normalizeSkills(*req.Skills)
	}
	if req.Latitude != nil {
		fields["latitude"] = *req.Latitude
	}
	if req.Longitude != nil {
		fields["longitude"] = *req.Longitude
	}
	if req.IsPrivate != nil {
		fields["is_private"] = *req.IsPrivate
	}

	if req.StartDate != nil || req.EndDate != nil {
		start, end := job.StartDate, job.EndDate
		if req.StartDate != nil {
			start = req.StartDate
			fields["start_date"] = *req.StartDate
		}
		if req.EndDate != nil {
			end = req.EndDate
			fields["end_date"] = *req.EndDate
		}
		if err := checkDateRange(start, end); err != nil {
			return nil, err
		}
		fields["schedule"] = models.FormatSchedule(start, end)
	}

	if len(fields) == 0 {
		return job, nil
	}

	if err := s.store.Jobs().UpdateFields(ctx, id, fields); err != nil {
		logger.ErrorContext(ctx, "Failed to update job", "job_id", id, "error", err)
		return nil, notFound(err, "job not found")
	}

	logger.InfoContext(ctx, "Job updated", "job_id", id, "fields", len(fields))
	return s.store.Jobs().GetByID(ctx, id)
}

// DeleteJob ลบ row ก่อนแล้วค่อยลบรูปใน storage
func (s *JobServiceImpl) DeleteJob(ctx context.Context, id, actorID uuid.UUID) error {
	job, err := s.ownedJob(ctx, id, actorID)
	if err != nil {
		return err
	}

	if err := s.store.Jobs().Delete(ctx, id); err != nil {
		logger.ErrorContext(ctx, "Failed to delete job", "job_id", id, "error", err)
		return notFound(err, "job not found")
	}

	// ลบทั้ง folder รวมรูปเก่าที่ SetJobImage ลบไม่สำเร็จ
	folder := jobImageFolder(job.ID)
	if err := s.storage.DeleteFolder(folder); err != nil {
		logger.ErrorContext(ctx, "Failed to delete job images", "job_id", id, "prefix", folder, "error", err)
		return fmt.Errorf("job deleted but image cleanup failed: %w", err)
	}

	logger.InfoContext(ctx, "Job deleted", "job_id", id)
	return nil
}

func (s *JobServiceImpl) SetJobImage(ctx context.Context, id, actorID uuid.UUID, file io.Reader, filename, contentType string) (*models.Job, error) {
	if err := checkImageContentType(contentType); err != nil {
		return nil, err
	}
	job, err := s.ownedJob(ctx, id, actorID)
	if err != nil {
		return nil, err
	}

	key := utils.BuildObjectKey(jobImagesRoot, job.ID.String(), filename)
	url, err := s.storage.UploadFile(file, key, contentType)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to upload job image", "job_id", id, "error", err)
		return nil, err
	}

	if err := s.store.Jobs().UpdateFields(ctx, id, map[string]any{"image_url": url, "image_key": key}); err != nil {
		logger.ErrorContext(ctx, "Failed to save job image", "job_id", id, "error", err)
		if delErr := s.storage.DeleteFile(key); delErr != nil {
			logger.WarnContext(ctx, "Failed to remove unreferenced upload", "key", key, "error", delErr)
		}
		return nil, notFound(err, "job not found")
	}

	if job.ImageKey != "" && job.ImageKey != key {
		if err := s.storage.DeleteFile(job.ImageKey); err != nil {
			logger.WarnContext(ctx, "Failed to delete previous job image", "key", job.ImageKey, "error", err)
		}
	}

	logger.InfoContext(ctx, "Job image replaced", "job_id", id, "key", key)
	return s.store.Jobs().GetByID(ctx, id)
}

func (s *JobServiceImpl) ListWorkers(ctx context.Context, jobID, viewerID uuid.UUID) ([]*models.User, error) {
	if _, err := s.GetJob(ctx, jobID, viewerID); err != nil {
		return nil, err
	}

	ids, err := s.store.Jobs().ListWorkerIDs(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*models.User{}, nil
	}
	return s.store.Users().ListByIDs(ctx, ids)
}

func (s *JobServiceImpl) AdvanceLifecycle(ctx context.Context) error {
	now := s.now()

	started, err := s.store.Jobs().MarkStarted(ctx, now)
	if err != nil {
		return fmt.Errorf("mark started: %w", err)
	}
	completed, err := s.store.Jobs().MarkCompleted(ctx, now)
	if err != nil {
		return fmt.Errorf("mark completed: %w", err)
	}

	if started > 0 || completed > 0 {
		logger.InfoContext(ctx, "Job lifecycle advanced", "started", started, "completed", completed)
	}
	return nil
}

func (s *JobServiceImpl) ownedJob(ctx context.Context, id, actorID uuid.UUID) (*models.Job, error) {
	job, err := s.store.Jobs().GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "job not found")
	}
	if !job.IsOwnedBy(actorID) {
		if !job.VisibleTo(actorID) {
			return nil, fmt.Errorf("%w: job not found", services.ErrNotFound)
		}
		return nil, fmt.Errorf("%w: only the job owner can modify this job", services.ErrForbidden)
	}
	return job, nil
}

const jobImagesRoot = "jobs"

func jobImageFolder(id uuid.UUID) string {
	return jobImagesRoot + "/" + id.String() + "/"
}

func checkDateRange(start, end *time.Time) error {
	if start != nil && end != nil && end.Before(*start) {
		return fmt.Errorf("%w: endDate must not be before startDate", services.ErrValidation)
	}
	return nil
}

func normalizeSkills(in []string) pq.StringArray {
	out := make(pq.StringArray, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, skill := range in {
		skill = strings.TrimSpace(skill)
		key := strings.ToLower(skill)
		if skill == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, skill)
	}
	return out
}
