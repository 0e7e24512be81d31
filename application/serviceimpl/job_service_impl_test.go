package serviceimpl

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"buildboard/domain/dto"
	"buildboard/domain/models"
	"buildboard/domain/services"
	"buildboard/infrastructure/memory"
)

func TestCreateJobComputesSchedule(t *testing.T) {
	store := memory.NewStore()
	svc := NewJobService(store, newStubStorage())
	manager := seedUser(t, store, "maria", models.RoleManager)
	worker := seedUser(t, store, "wes", models.RoleWorker)
	ctx := context.Background()

	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC)
	job, err := svc.CreateJob(ctx, manager.ID, &dto.CreateJobRequest{
		Title:     "Framing",
		Site:      "Lot 7",
		StartDate: &start,
		EndDate:   &end,
		Skills:    []string{"framing", " Framing ", "", "roofing"},
	})
	if err != nil {
		t.Fatalf("CreateJob: %v", err)
	}
	if job.Schedule != "Mar 2, 2026 - Mar 6, 2026" {
		t.Errorf("schedule = %q", job.Schedule)
	}
	if job.Status != models.JobStatusOpen {
		t.Errorf("status = %q", job.Status)
	}
	if len(job.Skills) != 2 {
		t.Errorf("skills = %v", job.Skills)
	}

	if _, err := svc.CreateJob(ctx, worker.ID, &dto.CreateJobRequest{Title: "x", Site: "y"}); !errors.Is(err, services.ErrForbidden) {
		t.Errorf("worker create: err = %v, want ErrForbidden", err)
	}
	if _, err := svc.CreateJob(ctx, manager.ID, &dto.CreateJobRequest{Title: "x", Site: "y", StartDate: &end, EndDate: &start}); !errors.Is(err, services.ErrValidation) {
		t.Errorf("reversed dates: err = %v, want ErrValidation", err)
	}
}

func TestUpdateJobPatchesOnlyProvidedFields(t *testing.T) {
	store := memory.NewStore()
	svc := NewJobService(store, newStubStorage())
	manager := seedUser(t, store, "maria", models.RoleManager)
	other := seedUser(t, store, "otto", models.RoleManager)
	ctx := context.Background()

	job, err := svc.CreateJob(ctx, manager.ID, &dto.CreateJobRequest{
		Title:       "Concrete pour",
		Site:        "North lot",
		Location:    "Springfield",
		PayRate:     "$40/h",
		Description: "Bring boots",
		Skills:      []string{"concrete"},
	})
	if err != nil {
		t.Fatalf("CreateJob: %v", err)
	}

	updated, err := svc.UpdateJob(ctx, job.ID, manager.ID, &dto.UpdateJobRequest{PayRate: ptr("$45/h")})
	if err != nil {
		t.Fatalf("UpdateJob: %v", err)
	}
	if updated.PayRate != "$45/h" {
		t.Errorf("pay rate = %q", updated.PayRate)
	}
	if updated.Title != job.Title || updated.Site != job.Site || updated.Location != job.Location ||
		updated.Description != job.Description || len(updated.Skills) != 1 {
		t.Errorf("untouched fields changed: %+v", updated)
	}

	if _, err := svc.UpdateJob(ctx, job.ID, other.ID, &dto.UpdateJobRequest{Title: ptr("hijack")}); !errors.Is(err, services.ErrForbidden) {
		t.Errorf("non-owner update: err = %v, want ErrForbidden", err)
	}

	start := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	updated, err = svc.UpdateJob(ctx, job.ID, manager.ID, &dto.UpdateJobRequest{StartDate: &start})
	if err != nil {
		t.Fatalf("UpdateJob dates: %v", err)
	}
	if updated.Schedule != "From May 1, 2026" {
		t.Errorf("schedule = %q", updated.Schedule)
	}
}

func TestDeleteJobRemovesImage(t *testing.T) {
	store := memory.NewStore()
	storage := newStubStorage()
	svc := NewJobService(store, storage)
	manager := seedUser(t, store, "maria", models.RoleManager)
	ctx := context.Background()

	job := seedJob(t, store, manager, "Roofing")
	withImage, err := svc.SetJobImage(ctx, job.ID, manager.ID, strings.NewReader("png-bytes"), "Roof Photo.PNG", "image/png")
	if err != nil {
		t.Fatalf("SetJobImage: %v", err)
	}
	key := withImage.ImageKey
	if !storage.has(key) || !strings.HasPrefix(key, "jobs/"+job.ID.String()+"/roof-photo-") {
		t.Fatalf("image key %q not stored", key)
	}

	replaced, err := svc.SetJobImage(ctx, job.ID, manager.ID, strings.NewReader("jpg"), "second.jpg", "image/jpeg")
	if err != nil {
		t.Fatalf("replace image: %v", err)
	}
	if storage.has(key) {
		t.Error("previous image should be deleted after replacement")
	}

	// ลบรูปเก่าไม่สำเร็จ: ไฟล์ค้างอยู่ใน folder ของ job
	storage.failDelete = true
	latest, err := svc.SetJobImage(ctx, job.ID, manager.ID, strings.NewReader("webp"), "third.webp", "image/webp")
	if err != nil {
		t.Fatalf("replace image with failing delete: %v", err)
	}
	if !storage.has(replaced.ImageKey) {
		t.Fatal("expected the previous image to be left behind")
	}
	storage.failDelete = false

	other := seedJob(t, store, manager, "Framing")
	otherImage, err := svc.SetJobImage(ctx, other.ID, manager.ID, strings.NewReader("png"), "frame.png", "image/png")
	if err != nil {
		t.Fatalf("other job image: %v", err)
	}

	if err := svc.DeleteJob(ctx, job.ID, manager.ID); err != nil {
		t.Fatalf("DeleteJob: %v", err)
	}
	for _, k := range []string{replaced.ImageKey, latest.ImageKey} {
		if storage.has(k) {
			t.Errorf("blob %q should be deleted with the job", k)
		}
	}
	if !storage.has(otherImage.ImageKey) {
		t.Error("another job's image must survive")
	}
	if _, err := store.Jobs().GetByID(ctx, job.ID); err == nil {
		t.Error("job row still present")
	}
}

func TestSetJobImageRejectsNonImages(t *testing.T) {
	store := memory.NewStore()
	svc := NewJobService(store, newStubStorage())
	manager := seedUser(t, store, "maria", models.RoleManager)
	job := seedJob(t, store, manager, "Roofing")

	_, err := svc.SetJobImage(context.Background(), job.ID, manager.ID, strings.NewReader("x"), "notes.txt", "text/plain")
	if !errors.Is(err, services.ErrValidation) {
		t.Errorf("err = %v, want ErrValidation", err)
	}
}

func TestPrivateJobsHiddenFromOthers(t *testing.T) {
	store := memory.NewStore()
	svc := NewJobService(store, newStubStorage())
	manager := seedUser(t, store, "maria", models.RoleManager)
	worker := seedUser(t, store, "wes", models.RoleWorker)
	ctx := context.Background()

	private, err := svc.CreateJob(ctx, manager.ID, &dto.CreateJobRequest{Title: "Secret", Site: "HQ", IsPrivate: true})
	if err != nil {
		t.Fatalf("CreateJob: %v", err)
	}
	if _, err := svc.CreateJob(ctx, manager.ID, &dto.CreateJobRequest{Title: "Public", Site: "HQ"}); err != nil {
		t.Fatalf("CreateJob: %v", err)
	}

	if _, err := svc.GetJob(ctx, private.ID, worker.ID); !errors.Is(err, services.ErrNotFound) {
		t.Errorf("worker get private: err = %v, want ErrNotFound", err)
	}
	if _, err := svc.GetJob(ctx, private.ID, manager.ID); err != nil {
		t.Errorf("owner get private: %v", err)
	}

	jobs, total, err := svc.ListJobs(ctx, &dto.JobFilterRequest{}, worker.ID)
	if err != nil {
		t.Fatalf("ListJobs: %v", err)
	}
	if total != 1 || len(jobs) != 1 || jobs[0].Title != "Public" {
		t.Errorf("worker sees %d jobs (total %d)", len(jobs), total)
	}

	_, total, _ = svc.ListJobs(ctx, &dto.JobFilterRequest{}, manager.ID)
	if total != 2 {
		t.Errorf("owner total = %d, want 2", total)
	}
}

func TestAdvanceLifecycle(t *testing.T) {
	store := memory.NewStore()
	svc := NewJobService(store, newStubStorage()).(*JobServiceImpl)
	manager := seedUser(t, store, "maria", models.RoleManager)
	ctx := context.Background()

	now := time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	past := now.Add(-48 * time.Hour)
	future := now.Add(48 * time.Hour)
	running, _ := svc.CreateJob(ctx, manager.ID, &dto.CreateJobRequest{Title: "Running", Site: "A", StartDate: &past, EndDate: &future})
	done, _ := svc.CreateJob(ctx, manager.ID, &dto.CreateJobRequest{Title: "Done", Site: "B", EndDate: &past})
	pending, _ := svc.CreateJob(ctx, manager.ID, &dto.CreateJobRequest{Title: "Later", Site: "C", StartDate: &future})

	if err := svc.AdvanceLifecycle(ctx); err != nil {
		t.Fatalf("AdvanceLifecycle: %v", err)
	}

	for _, tc := range []struct {
		id   *models.Job
		want string
	}{
		{running, models.JobStatusInProgress},
		{done, models.JobStatusCompleted},
		{pending, models.JobStatusOpen},
	} {
		got, _ := store.Jobs().GetByID(ctx, tc.id.ID)
		if got.Status != tc.want {
			t.Errorf("%s status = %s, want %s", got.Title, got.Status, tc.want)
		}
	}
}

func TestListWorkersReturnsRoster(t *testing.T) {
	f := newApplyFixture(t, false)
	svc := NewJobService(f.store, newStubStorage())
	ctx := context.Background()

	app, _ := f.svc.ApplyToJob(ctx, f.job.ID, f.worker.ID)
	if _, err := f.svc.SetApplicationStatus(ctx, app.ChatID, models.ApplicationAccepted, f.manager.ID); err != nil {
		t.Fatalf("accept: %v", err)
	}

	workers, err := svc.ListWorkers(ctx, f.job.ID, f.manager.ID)
	if err != nil {
		t.Fatalf("ListWorkers: %v", err)
	}
	if len(workers) != 1 || workers[0].ID != f.worker.ID {
		t.Errorf("workers = %+v", workers)
	}
}
