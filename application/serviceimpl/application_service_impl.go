package serviceimpl

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"buildboard/domain/models"
	"buildboard/domain/ports"
	"buildboard/domain/repositories"
	"buildboard/domain/services"
	"buildboard/pkg/logger"
)

const (
	applyMaxAttempts = 3

	acceptedMessage = "Manager accepted the application"
	declinedMessage = "Manager declined the application"
)

var errLostApplyRace = errors.New("application created concurrently")

type ApplicationServiceImpl struct {
	store         repositories.Store
	events        chatEvents
	allowRedecide bool
}

func NewApplicationService(store repositories.Store, publisher ports.ChatEventPublisherPort, allowRedecide bool) services.ApplicationService {
	return &ApplicationServiceImpl{
		store:         store,
		events:        chatEvents{publisher: publisher},
		allowRedecide: allowRedecide,
	}
}

// ApplyToJob หา/สร้าง chat ระหว่าง worker กับเจ้าของ job, สร้าง application ถ้ายังไม่มี,
// แล้วประกาศใน chat. ทั้งหมดอยู่ใน transaction เดียว
func (s *ApplicationServiceImpl) ApplyToJob(ctx context.Context, jobID, workerID uuid.UUID) (*models.Application, error) {
	job, err := s.store.Jobs().GetByID(ctx, jobID)
	if err != nil {
		return nil, notFound(err, "job not found")
	}
	if !job.VisibleTo(workerID) {
		return nil, fmt.Errorf("%w: job not found", services.ErrNotFound)
	}
	if job.IsOwnedBy(workerID) {
		return nil, fmt.Errorf("%w: cannot apply to your own job", services.ErrValidation)
	}

	worker, err := s.store.Users().GetByID(ctx, workerID)
	if err != nil {
		return nil, notFound(err, "user not found")
	}

	var (
		app *models.Application
		msg *models.Message
	)
	for attempt := 1; attempt <= applyMaxAttempts; attempt++ {
		app, msg, err = s.applyOnce(ctx, job, worker)
		if !errors.Is(err, errLostApplyRace) {
			break
		}
		logger.WarnContext(ctx, "Apply raced with a concurrent request, retrying", "job_id", jobID, "worker_id", workerID, "attempt", attempt)
	}
	if err != nil {
		logger.ErrorContext(ctx, "Failed to apply to job", "job_id", jobID, "worker_id", workerID, "error", err)
		return nil, err
	}

	s.events.messageCreated(ctx, msg)

	logger.InfoContext(ctx, "Worker applied to job", "job_id", jobID, "worker_id", workerID, "chat_id", app.ChatID)
	return app, nil
}

func (s *ApplicationServiceImpl) applyOnce(ctx context.Context, job *models.Job, worker *models.User) (*models.Application, *models.Message, error) {
	var (
		app *models.Application
		msg *models.Message
	)

	err := s.store.WithTx(ctx, func(tx repositories.Store) error {
		// มี application อยู่แล้ว ใช้ chat เดิมเสมอ แม้สมาชิกใน chat จะเปลี่ยนไป
		existing, err := tx.Applications().GetByJobAndWorker(ctx, job.ID, worker.ID)
		switch {
		case err == nil:
			app = existing
			msg = appliedMessage(app.ChatID, worker)
			return s.postSystemMessage(ctx, tx, msg)
		case !errors.Is(err, repositories.ErrRecordNotFound):
			return fmt.Errorf("load application: %w", err)
		}

		chatCreated := false
		chat, err := tx.Chats().FindDirectForJob(ctx, job.ID, worker.ID, job.OwnerID)
		if errors.Is(err, repositories.ErrRecordNotFound) {
			jobID := job.ID
			chat = &models.Chat{
				ID:        uuid.New(),
				Title:     job.Title,
				JobID:     &jobID,
				CreatedBy: worker.ID,
				Members: []models.ChatMember{
					{UserID: worker.ID},
					{UserID: job.OwnerID},
				},
			}
			if err := tx.Chats().Create(ctx, chat); err != nil {
				return fmt.Errorf("create chat: %w", err)
			}
			chatCreated = true
		} else if err != nil {
			return fmt.Errorf("find chat: %w", err)
		}

		if _, err := tx.Applications().CreateIfAbsent(ctx, &models.Application{
			ID:        uuid.New(),
			JobID:     job.ID,
			WorkerID:  worker.ID,
			ChatID:    chat.ID,
			ManagerID: job.OwnerID,
			Status:    models.ApplicationPending,
		}); err != nil {
			return fmt.Errorf("create application: %w", err)
		}

		app, err = tx.Applications().GetByJobAndWorker(ctx, job.ID, worker.ID)
		if err != nil {
			return fmt.Errorf("load application: %w", err)
		}
		if app.ChatID != chat.ID && chatCreated {
			return errLostApplyRace
		}

		msg = appliedMessage(app.ChatID, worker)
		return s.postSystemMessage(ctx, tx, msg)
	})
	if err != nil {
		return nil, nil, err
	}
	return app, msg, nil
}

func appliedMessage(chatID uuid.UUID, worker *models.User) *models.Message {
	return &models.Message{
		ID:     uuid.New(),
		ChatID: chatID,
		Body:   worker.DisplayName() + " applied to this job",
	}
}

func (s *ApplicationServiceImpl) SetApplicationStatus(ctx context.Context, chatID uuid.UUID, status string, actorID uuid.UUID) (*models.Application, error) {
	if !models.IsApplicationDecision(status) {
		return nil, fmt.Errorf("%w: status must be accepted or declined", services.ErrValidation)
	}

	var (
		app *models.Application
		msg *models.Message
	)

	err := s.store.WithTx(ctx, func(tx repositories.Store) error {
		current, err := tx.Applications().GetByChatID(ctx, chatID)
		if err != nil {
			return notFound(err, "application not found")
		}
		if current.ManagerID != actorID {
			return fmt.Errorf("%w: only the job's manager can decide this application", services.ErrForbidden)
		}

		if current.Status == status {
			app = current
			return nil
		}
		if current.IsDecided() && !s.allowRedecide {
			return fmt.Errorf("%w: application already %s", services.ErrConflict, current.Status)
		}

		if err := tx.Applications().UpdateStatus(ctx, current.ID, status); err != nil {
			return fmt.Errorf("update status: %w", err)
		}
		if status == models.ApplicationAccepted {
			if err := tx.Jobs().AddWorker(ctx, current.JobID, current.WorkerID); err != nil {
				return fmt.Errorf("add worker: %w", err)
			}
		}

		body := declinedMessage
		if status == models.ApplicationAccepted {
			body = acceptedMessage
		}
		msg = &models.Message{ID: uuid.New(), ChatID: current.ChatID, Body: body}
		if err := s.postSystemMessage(ctx, tx, msg); err != nil {
			return err
		}

		app, err = tx.Applications().GetByID(ctx, current.ID)
		return err
	})
	if err != nil {
		if !errors.Is(err, services.ErrForbidden) && !errors.Is(err, services.ErrNotFound) && !errors.Is(err, services.ErrConflict) {
			logger.ErrorContext(ctx, "Failed to set application status", "chat_id", chatID, "error", err)
		}
		return nil, err
	}

	if msg == nil {
		logger.DebugContext(ctx, "Application status unchanged", "application_id", app.ID, "status", status)
		return app, nil
	}

	s.events.messageCreated(ctx, msg)
	s.events.applicationUpdated(ctx, app)

	logger.InfoContext(ctx, "Application decided", "application_id", app.ID, "status", status, "manager_id", actorID)
	return app, nil
}

func (s *ApplicationServiceImpl) postSystemMessage(ctx context.Context, tx repositories.Store, msg *models.Message) error {
	if err := tx.Messages().Create(ctx, msg); err != nil {
		return fmt.Errorf("create system message: %w", err)
	}
	if err := tx.Chats().Touch(ctx, msg.ChatID, msg.CreatedAt); err != nil {
		return fmt.Errorf("touch chat: %w", err)
	}
	return nil
}

func (s *ApplicationServiceImpl) GetByChat(ctx context.Context, chatID, viewerID uuid.UUID) (*models.Application, error) {
	app, err := s.store.Applications().GetByChatID(ctx, chatID)
	if err != nil {
		return nil, notFound(err, "application not found")
	}
	if app.WorkerID != viewerID && app.ManagerID != viewerID {
		return nil, fmt.Errorf("%w: not a participant of this application", services.ErrForbidden)
	}
	return app, nil
}

func (s *ApplicationServiceImpl) ListMine(ctx context.Context, userID uuid.UUID) ([]*models.Application, error) {
	return s.store.Applications().ListByUser(ctx, userID)
}

func (s *ApplicationServiceImpl) ListForJob(ctx context.Context, jobID, ownerID uuid.UUID) ([]*models.Application, error) {
	job, err := s.store.Jobs().GetByID(ctx, jobID)
	if err != nil {
		return nil, notFound(err, "job not found")
	}
	if !job.IsOwnedBy(ownerID) {
		return nil, fmt.Errorf("%w: only the job owner can list applications", services.ErrForbidden)
	}
	return s.store.Applications().ListByJob(ctx, jobID)
}
