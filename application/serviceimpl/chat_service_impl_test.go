package serviceimpl

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"buildboard/domain/models"
	"buildboard/domain/services"
	"buildboard/infrastructure/memory"
	"buildboard/infrastructure/ratelimit"
)

func TestSendMessageRejectsBlankBody(t *testing.T) {
	store := memory.NewStore()
	pub := &recordingPublisher{}
	svc := NewChatService(store, pub, nil)
	alice := seedUser(t, store, "alice", models.RoleWorker)
	ctx := context.Background()

	chat, err := svc.CreateChat(ctx, alice.ID, "Site chat", nil)
	if err != nil {
		t.Fatalf("CreateChat: %v", err)
	}

	for _, body := range []string{"", "   ", "\n\t"} {
		if _, err := svc.SendMessage(ctx, chat.ID, body, alice.ID); !errors.Is(err, services.ErrValidation) {
			t.Errorf("body %q: err = %v, want ErrValidation", body, err)
		}
	}

	msgs, _ := store.Messages().ListByChat(ctx, chat.ID)
	if len(msgs) != 0 {
		t.Errorf("persisted %d messages, want 0", len(msgs))
	}
	if len(pub.types()) != 0 {
		t.Errorf("published %v", pub.types())
	}
}

func TestSendMessageKeepsBodyVerbatim(t *testing.T) {
	store := memory.NewStore()
	svc := NewChatService(store, nil, nil)
	alice := seedUser(t, store, "alice", models.RoleWorker)
	ctx := context.Background()

	chat, err := svc.CreateChat(ctx, alice.ID, "Site chat", nil)
	if err != nil {
		t.Fatalf("CreateChat: %v", err)
	}

	body := "  - bring ladders\n  - bring tarps\n"
	msg, err := svc.SendMessage(ctx, chat.ID, body, alice.ID)
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if msg.Body != body {
		t.Errorf("returned body = %q, want %q", msg.Body, body)
	}
	msgs, _ := store.Messages().ListByChat(ctx, chat.ID)
	if len(msgs) != 1 || msgs[0].Body != body {
		t.Errorf("stored messages = %+v", msgs)
	}
}

func TestSendMessageOrderingAndAutoJoin(t *testing.T) {
	store := memory.NewStore()
	pub := &recordingPublisher{}
	svc := NewChatService(store, pub, nil)
	alice := seedUser(t, store, "alice", models.RoleWorker)
	bob := seedUser(t, store, "bob", models.RoleManager)
	ctx := context.Background()

	chat, err := svc.CreateChat(ctx, alice.ID, "Site chat", []uuid.UUID{alice.ID})
	if err != nil {
		t.Fatalf("CreateChat: %v", err)
	}
	if len(chat.Members) != 1 {
		t.Fatalf("members = %v", chat.MemberIDs())
	}

	bodies := []string{"one", "two", "three", "four"}
	for i, body := range bodies {
		author := alice.ID
		if i%2 == 1 {
			author = bob.ID
		}
		if _, err := svc.SendMessage(ctx, chat.ID, body, author); err != nil {
			t.Fatalf("SendMessage %q: %v", body, err)
		}
	}

	msgs, err := svc.ListMessages(ctx, chat.ID, bob.ID)
	if err != nil {
		t.Fatalf("ListMessages: %v", err)
	}
	if len(msgs) != len(bodies) {
		t.Fatalf("messages = %d", len(msgs))
	}
	for i := range msgs {
		if msgs[i].Body != bodies[i] {
			t.Errorf("message %d = %q, want %q", i, msgs[i].Body, bodies[i])
		}
		if i > 0 && msgs[i].CreatedAt.Before(msgs[i-1].CreatedAt) {
			t.Errorf("message %d created before message %d", i, i-1)
		}
	}

	updated, _ := svc.GetChat(ctx, chat.ID, bob.ID)
	if !updated.HasMember(bob.ID) {
		t.Error("sender should be auto-joined")
	}
	if !updated.UpdatedAt.After(chat.UpdatedAt) {
		t.Error("chat updated_at should advance on new messages")
	}
	if got := len(pub.types()); got != len(bodies) {
		t.Errorf("published %d events, want %d", got, len(bodies))
	}
}

func TestChatAccessAndValidation(t *testing.T) {
	store := memory.NewStore()
	svc := NewChatService(store, nil, nil)
	alice := seedUser(t, store, "alice", models.RoleWorker)
	mallory := seedUser(t, store, "mallory", models.RoleWorker)
	ctx := context.Background()

	if _, err := svc.CreateChat(ctx, alice.ID, "  ", nil); !errors.Is(err, services.ErrValidation) {
		t.Errorf("blank title: err = %v", err)
	}
	if _, err := svc.CreateChat(ctx, alice.ID, "x", []uuid.UUID{uuid.New()}); !errors.Is(err, services.ErrValidation) {
		t.Errorf("unknown member: err = %v", err)
	}

	chat, _ := svc.CreateChat(ctx, alice.ID, "Private", nil)
	if _, err := svc.GetChat(ctx, chat.ID, mallory.ID); !errors.Is(err, services.ErrForbidden) {
		t.Errorf("outsider get: err = %v, want ErrForbidden", err)
	}
	if _, err := svc.SendMessage(ctx, uuid.New(), "hi", alice.ID); !errors.Is(err, services.ErrNotFound) {
		t.Errorf("unknown chat: err = %v, want ErrNotFound", err)
	}
}

func TestSendMessageRateLimited(t *testing.T) {
	store := memory.NewStore()
	svc := NewChatService(store, nil, ratelimit.NewMemoryLimiter(2, time.Minute))
	alice := seedUser(t, store, "alice", models.RoleWorker)
	ctx := context.Background()

	chat, _ := svc.CreateChat(ctx, alice.ID, "Busy", nil)
	for i := 0; i < 2; i++ {
		if _, err := svc.SendMessage(ctx, chat.ID, "hello", alice.ID); err != nil {
			t.Fatalf("message %d: %v", i, err)
		}
	}
	if _, err := svc.SendMessage(ctx, chat.ID, "hello", alice.ID); !errors.Is(err, services.ErrRateLimited) {
		t.Errorf("err = %v, want ErrRateLimited", err)
	}
}
