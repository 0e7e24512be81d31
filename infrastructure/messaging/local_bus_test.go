package messaging

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"go.uber.org/goleak"

	"buildboard/domain/ports"
)

func TestLocalChatBusDeliversInOrder(t *testing.T) {
	defer goleak.VerifyNone(t)

	bus := NewLocalChatBus(8)
	got := make(chan string, 4)
	if err := bus.Subscribe(context.Background(), func(e *ports.ChatEvent) {
		got <- string(e.Data)
	}); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	for _, body := range []string{`"a"`, `"b"`, `"c"`} {
		err := bus.PublishChatEvent(context.Background(), &ports.ChatEvent{
			Type:   ports.ChatEventMessageNew,
			ChatID: "chat-1",
			Data:   json.RawMessage(body),
		})
		if err != nil {
			t.Fatalf("publish: %v", err)
		}
	}

	for _, want := range []string{`"a"`, `"b"`, `"c"`} {
		select {
		case data := <-got:
			if data != want {
				t.Errorf("got %s, want %s", data, want)
			}
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for %s", want)
		}
	}

	bus.Close()
	bus.Wait()

	if err := bus.PublishChatEvent(context.Background(), &ports.ChatEvent{ChatID: "x"}); err != ErrBusClosed {
		t.Errorf("publish after close: err = %v", err)
	}
}

func TestLocalChatBusStopsWithContext(t *testing.T) {
	defer goleak.VerifyNone(t)

	bus := NewLocalChatBus(1)
	ctx, cancel := context.WithCancel(context.Background())
	if err := bus.Subscribe(ctx, func(*ports.ChatEvent) {}); err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	cancel()
	bus.Wait()
}

func TestLocalChatBusRecoversFromHandlerPanic(t *testing.T) {
	defer goleak.VerifyNone(t)

	bus := NewLocalChatBus(4)
	delivered := make(chan struct{}, 1)
	_ = bus.Subscribe(context.Background(), func(*ports.ChatEvent) { panic("boom") })
	_ = bus.Subscribe(context.Background(), func(*ports.ChatEvent) { delivered <- struct{}{} })

	_ = bus.PublishChatEvent(context.Background(), &ports.ChatEvent{ChatID: "c"})

	select {
	case <-delivered:
	case <-time.After(time.Second):
		t.Fatal("second handler not called after first panicked")
	}

	bus.Close()
	bus.Wait()
}
