package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"buildboard/domain/models"
	"buildboard/domain/repositories"
)

func TestWithTxRollsBackOnError(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	boom := errors.New("boom")

	owner := &models.User{Email: "m@example.com", Username: "m", Role: models.RoleManager}
	if err := store.Users().Create(ctx, owner); err != nil {
		t.Fatalf("create user: %v", err)
	}

	chatID := uuid.New()
	err := store.WithTx(ctx, func(tx repositories.Store) error {
		if err := tx.Chats().Create(ctx, &models.Chat{ID: chatID, Title: "t", Members: []models.ChatMember{{UserID: owner.ID}}}); err != nil {
			return err
		}
		if err := tx.Messages().Create(ctx, &models.Message{ChatID: chatID, Body: "hello"}); err != nil {
			return err
		}
		// nested WithTx เข้าร่วม transaction เดิม
		return tx.WithTx(ctx, func(inner repositories.Store) error {
			if err := inner.Users().UpdateFields(ctx, owner.ID, map[string]any{"first_name": "Changed"}); err != nil {
				return err
			}
			return boom
		})
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}

	if _, err := store.Chats().GetByID(ctx, chatID); !errors.Is(err, repositories.ErrRecordNotFound) {
		t.Errorf("chat survived rollback: %v", err)
	}
	msgs, _ := store.Messages().ListByChat(ctx, chatID)
	if len(msgs) != 0 {
		t.Errorf("messages survived rollback: %d", len(msgs))
	}
	u, _ := store.Users().GetByID(ctx, owner.ID)
	if u.FirstName != "" {
		t.Errorf("user update survived rollback: %q", u.FirstName)
	}
}

func TestWithTxCommits(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	jobID := uuid.New()
	err := store.WithTx(ctx, func(tx repositories.Store) error {
		if err := tx.Jobs().Create(ctx, &models.Job{ID: jobID, Title: "Job", Site: "S", OwnerID: uuid.New()}); err != nil {
			return err
		}
		workerID := uuid.New()
		if err := tx.Jobs().AddWorker(ctx, jobID, workerID); err != nil {
			return err
		}
		return tx.Jobs().AddWorker(ctx, jobID, workerID)
	})
	if err != nil {
		t.Fatalf("WithTx: %v", err)
	}

	ids, _ := store.Jobs().ListWorkerIDs(ctx, jobID)
	if len(ids) != 1 {
		t.Errorf("roster = %d, want 1 (AddWorker is idempotent)", len(ids))
	}
}

func TestCreateIfAbsentAndDirectChatLookup(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	jobID, worker, manager := uuid.New(), uuid.New(), uuid.New()

	chat := &models.Chat{Title: "c", JobID: &jobID, Members: []models.ChatMember{{UserID: worker}, {UserID: manager}}}
	if err := store.Chats().Create(ctx, chat); err != nil {
		t.Fatalf("create chat: %v", err)
	}
	found, err := store.Chats().FindDirectForJob(ctx, jobID, manager, worker)
	if err != nil || found.ID != chat.ID {
		t.Fatalf("FindDirectForJob = %v, %v", found, err)
	}

	// สมาชิกคนที่สามทำให้ไม่ใช่ direct chat
	if err := store.Chats().AddMember(ctx, chat.ID, uuid.New()); err != nil {
		t.Fatalf("AddMember: %v", err)
	}
	if _, err := store.Chats().FindDirectForJob(ctx, jobID, manager, worker); !errors.Is(err, repositories.ErrRecordNotFound) {
		t.Errorf("three-member chat matched: %v", err)
	}

	app := &models.Application{JobID: jobID, WorkerID: worker, ChatID: chat.ID, ManagerID: manager}
	created, err := store.Applications().CreateIfAbsent(ctx, app)
	if err != nil || !created {
		t.Fatalf("first CreateIfAbsent = %v, %v", created, err)
	}
	created, err = store.Applications().CreateIfAbsent(ctx, &models.Application{JobID: jobID, WorkerID: worker, ChatID: uuid.New(), ManagerID: manager})
	if err != nil || created {
		t.Fatalf("second CreateIfAbsent = %v, %v", created, err)
	}
	got, _ := store.Applications().GetByJobAndWorker(ctx, jobID, worker)
	if got.ChatID != chat.ID || got.Status != models.ApplicationPending {
		t.Errorf("application = %+v", got)
	}
}
