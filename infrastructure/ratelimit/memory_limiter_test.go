package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestMemoryLimiterWindow(t *testing.T) {
	l := NewMemoryLimiter(2, time.Second)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }
	ctx := context.Background()

	for i, want := range []bool{true, true, false} {
		got, _ := l.Allow(ctx, "u1")
		if got != want {
			t.Errorf("call %d: got %v, want %v", i, got, want)
		}
	}

	if ok, _ := l.Allow(ctx, "u2"); !ok {
		t.Error("other keys must have their own window")
	}

	now = now.Add(time.Second)
	if ok, _ := l.Allow(ctx, "u1"); !ok {
		t.Error("window should reset")
	}
}

func TestMemoryLimiterDisabled(t *testing.T) {
	l := NewMemoryLimiter(0, time.Second)
	for i := 0; i < 10; i++ {
		if ok, _ := l.Allow(context.Background(), "u"); !ok {
			t.Fatal("limit 0 should disable limiting")
		}
	}
}
