package serviceimpl

import (
	"context"
	"errors"
	"sync"
	"testing"

	"buildboard/domain/models"
	"buildboard/domain/services"
	"buildboard/infrastructure/memory"
)

type applyFixture struct {
	store   *memory.Store
	pub     *recordingPublisher
	svc     services.ApplicationService
	manager *models.User
	worker  *models.User
	job     *models.Job
}

func newApplyFixture(t *testing.T, allowRedecide bool) *applyFixture {
	t.Helper()
	store := memory.NewStore()
	pub := &recordingPublisher{}
	manager := seedUser(t, store, "maria", models.RoleManager)
	worker := seedUser(t, store, "wes", models.RoleWorker)
	return &applyFixture{
		store:   store,
		pub:     pub,
		svc:     NewApplicationService(store, pub, allowRedecide),
		manager: manager,
		worker:  worker,
		job:     seedJob(t, store, manager, "Drywall crew"),
	}
}

func TestApplyToJobScenario(t *testing.T) {
	f := newApplyFixture(t, false)
	ctx := context.Background()

	app, err := f.svc.ApplyToJob(ctx, f.job.ID, f.worker.ID)
	if err != nil {
		t.Fatalf("ApplyToJob: %v", err)
	}
	if app.Status != models.ApplicationPending || app.ManagerID != f.manager.ID || app.WorkerID != f.worker.ID || app.JobID != f.job.ID {
		t.Fatalf("unexpected application: %+v", app)
	}

	chat, err := f.store.Chats().GetByID(ctx, app.ChatID)
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if len(chat.Members) != 2 || !chat.HasMember(f.worker.ID) || !chat.HasMember(f.manager.ID) {
		t.Errorf("chat members = %v", chat.MemberIDs())
	}
	if chat.Title != f.job.Title {
		t.Errorf("chat title = %q", chat.Title)
	}

	msgs, _ := f.store.Messages().ListByChat(ctx, app.ChatID)
	if len(msgs) != 1 || msgs[0].Body != "Wes applied to this job" || !msgs[0].IsSystem() {
		t.Fatalf("apply messages = %+v", msgs)
	}

	decided, err := f.svc.SetApplicationStatus(ctx, app.ChatID, models.ApplicationAccepted, f.manager.ID)
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	if decided.Status != models.ApplicationAccepted {
		t.Errorf("status = %s", decided.Status)
	}

	roster, _ := f.store.Jobs().ListWorkerIDs(ctx, f.job.ID)
	if len(roster) != 1 || roster[0] != f.worker.ID {
		t.Errorf("roster = %v", roster)
	}

	msgs, _ = f.store.Messages().ListByChat(ctx, app.ChatID)
	if len(msgs) != 2 || msgs[1].Body != "Manager accepted the application" {
		t.Fatalf("messages after accept = %+v", msgs)
	}

	want := []string{"message:new", "message:new", "application:updated"}
	got := f.pub.types()
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestApplyToJobIsIdempotent(t *testing.T) {
	f := newApplyFixture(t, false)
	ctx := context.Background()

	first, err := f.svc.ApplyToJob(ctx, f.job.ID, f.worker.ID)
	if err != nil {
		t.Fatalf("first apply: %v", err)
	}
	second, err := f.svc.ApplyToJob(ctx, f.job.ID, f.worker.ID)
	if err != nil {
		t.Fatalf("second apply: %v", err)
	}

	if first.ChatID != second.ChatID || first.ID != second.ID {
		t.Errorf("re-apply returned chat %s / app %s, want %s / %s", second.ChatID, second.ID, first.ChatID, first.ID)
	}
	apps, _ := f.store.Applications().ListByJob(ctx, f.job.ID)
	if len(apps) != 1 {
		t.Errorf("applications = %d, want 1", len(apps))
	}
	chats, _ := f.store.Chats().ListByMember(ctx, f.worker.ID)
	if len(chats) != 1 {
		t.Errorf("chats = %d, want 1", len(chats))
	}
}

func TestReapplyAfterThirdUserPostsKeepsChat(t *testing.T) {
	f := newApplyFixture(t, false)
	ctx := context.Background()

	first, err := f.svc.ApplyToJob(ctx, f.job.ID, f.worker.ID)
	if err != nil {
		t.Fatalf("first apply: %v", err)
	}

	foreman := seedUser(t, f.store, "frank", models.RoleWorker)
	chats := NewChatService(f.store, nil, nil)
	if _, err := chats.SendMessage(ctx, first.ChatID, "hi", foreman.ID); err != nil {
		t.Fatalf("third user message: %v", err)
	}

	second, err := f.svc.ApplyToJob(ctx, f.job.ID, f.worker.ID)
	if err != nil {
		t.Fatalf("re-apply: %v", err)
	}
	if second.ChatID != first.ChatID || second.ID != first.ID {
		t.Errorf("re-apply returned chat %s / app %s, want %s / %s", second.ChatID, second.ID, first.ChatID, first.ID)
	}

	workerChats, _ := f.store.Chats().ListByMember(ctx, f.worker.ID)
	if len(workerChats) != 1 {
		t.Errorf("worker chats = %d, want 1", len(workerChats))
	}
	msgs, _ := f.store.Messages().ListByChat(ctx, first.ChatID)
	if last := msgs[len(msgs)-1]; last.Body != "Wes applied to this job" {
		t.Errorf("last message = %q", last.Body)
	}
}

func TestApplyToJobConcurrentCallsShareChat(t *testing.T) {
	f := newApplyFixture(t, false)
	ctx := context.Background()

	const callers = 8
	var wg sync.WaitGroup
	results := make([]*models.Application, callers)
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = f.svc.ApplyToJob(ctx, f.job.ID, f.worker.ID)
		}(i)
	}
	wg.Wait()

	for i := range results {
		if errs[i] != nil {
			t.Fatalf("caller %d: %v", i, errs[i])
		}
		if results[i].ChatID != results[0].ChatID {
			t.Errorf("caller %d got chat %s, want %s", i, results[i].ChatID, results[0].ChatID)
		}
	}
	apps, _ := f.store.Applications().ListByJob(ctx, f.job.ID)
	if len(apps) != 1 {
		t.Errorf("applications = %d, want 1", len(apps))
	}
}

func TestApplyToJobRejections(t *testing.T) {
	f := newApplyFixture(t, false)
	ctx := context.Background()

	if _, err := f.svc.ApplyToJob(ctx, f.job.ID, f.manager.ID); !errors.Is(err, services.ErrValidation) {
		t.Errorf("own job: err = %v, want ErrValidation", err)
	}

	missing := *f.job
	missing.ID[0] ^= 0xff
	if _, err := f.svc.ApplyToJob(ctx, missing.ID, f.worker.ID); !errors.Is(err, services.ErrNotFound) {
		t.Errorf("missing job: err = %v, want ErrNotFound", err)
	}
}

func TestDeclineDoesNotAddToRoster(t *testing.T) {
	f := newApplyFixture(t, false)
	ctx := context.Background()

	app, _ := f.svc.ApplyToJob(ctx, f.job.ID, f.worker.ID)
	if _, err := f.svc.SetApplicationStatus(ctx, app.ChatID, models.ApplicationDeclined, f.manager.ID); err != nil {
		t.Fatalf("decline: %v", err)
	}

	roster, _ := f.store.Jobs().ListWorkerIDs(ctx, f.job.ID)
	if len(roster) != 0 {
		t.Errorf("roster = %v, want empty", roster)
	}
	msgs, _ := f.store.Messages().ListByChat(ctx, app.ChatID)
	if last := msgs[len(msgs)-1]; last.Body != "Manager declined the application" {
		t.Errorf("last message = %q", last.Body)
	}
}

func TestSetApplicationStatusTransitions(t *testing.T) {
	tests := []struct {
		name          string
		allowRedecide bool
		actor         string
		first, second string
		wantErr       error
		wantStatus    string
		wantMessages  int
	}{
		{name: "non manager forbidden", actor: "worker", first: models.ApplicationAccepted, wantErr: services.ErrForbidden},
		{name: "invalid status", actor: "manager", first: "maybe", wantErr: services.ErrValidation},
		{name: "same decision is no-op", actor: "manager", first: models.ApplicationAccepted, second: models.ApplicationAccepted, wantStatus: models.ApplicationAccepted, wantMessages: 2},
		{name: "changed decision conflicts", actor: "manager", first: models.ApplicationAccepted, second: models.ApplicationDeclined, wantErr: services.ErrConflict},
		{name: "redecide allowed by flag", allowRedecide: true, actor: "manager", first: models.ApplicationAccepted, second: models.ApplicationDeclined, wantStatus: models.ApplicationDeclined, wantMessages: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newApplyFixture(t, tt.allowRedecide)
			ctx := context.Background()
			app, err := f.svc.ApplyToJob(ctx, f.job.ID, f.worker.ID)
			if err != nil {
				t.Fatalf("apply: %v", err)
			}

			actor := f.manager.ID
			if tt.actor == "worker" {
				actor = f.worker.ID
			}

			got, err := f.svc.SetApplicationStatus(ctx, app.ChatID, tt.first, actor)
			if tt.second != "" {
				if err != nil {
					t.Fatalf("first decision: %v", err)
				}
				got, err = f.svc.SetApplicationStatus(ctx, app.ChatID, tt.second, actor)
			}

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Status != tt.wantStatus {
				t.Errorf("status = %s, want %s", got.Status, tt.wantStatus)
			}
			msgs, _ := f.store.Messages().ListByChat(ctx, app.ChatID)
			if len(msgs) != tt.wantMessages {
				t.Errorf("messages = %d, want %d", len(msgs), tt.wantMessages)
			}
		})
	}
}

func TestSetApplicationStatusUnknownChat(t *testing.T) {
	f := newApplyFixture(t, false)
	if _, err := f.svc.SetApplicationStatus(context.Background(), f.job.ID, models.ApplicationAccepted, f.manager.ID); !errors.Is(err, services.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
