package scheduler

import "testing"

func TestAddJobRejectsDuplicatesAndBadCron(t *testing.T) {
	s := NewEventScheduler()

	if err := s.AddJob("sweep", "*/15 * * * *", func() {}); err != nil {
		t.Fatalf("AddJob: %v", err)
	}
	if err := s.AddJob("sweep", "*/5 * * * *", func() {}); err == nil {
		t.Error("expected duplicate id to be rejected")
	}
	if err := s.AddJob("broken", "not a cron", func() {}); err == nil {
		t.Error("expected invalid cron to be rejected")
	}

	info, ok := s.GetJob("sweep")
	if !ok {
		t.Fatal("job not found")
	}
	if info.CronExpr != "*/15 * * * *" || info.NextRun == nil {
		t.Errorf("unexpected job info %+v", info)
	}

	if err := s.RemoveJob("sweep"); err != nil {
		t.Fatalf("RemoveJob: %v", err)
	}
	if _, ok := s.GetJob("sweep"); ok {
		t.Error("job still present after remove")
	}
}

func TestStartStop(t *testing.T) {
	s := NewEventScheduler()
	s.Start()
	if !s.IsRunning() {
		t.Fatal("expected running")
	}
	s.Stop()
	if s.IsRunning() {
		t.Fatal("expected stopped")
	}
}
