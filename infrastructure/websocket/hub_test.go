package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/goleak"

	"buildboard/domain/ports"
	"buildboard/infrastructure/messaging"
)

type fakeConn struct {
	mu      sync.Mutex
	frames  []Message
	closed  bool
	failing bool
}

func (f *fakeConn) WriteJSON(v interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing || f.closed {
		return errors.New("broken pipe")
	}
	f.frames = append(f.frames, v.(Message))
	return nil
}

func (f *fakeConn) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeConn) types() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.frames))
	for _, m := range f.frames {
		out = append(out, m.Type)
	}
	return out
}

func (f *fakeConn) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestHubRoomBroadcastOnlyReachesRoom(t *testing.T) {
	defer goleak.VerifyNone(t)

	hub := NewHub(nil)
	hub.Start()
	defer hub.Stop()

	inRoom, otherRoom := &fakeConn{}, &fakeConn{}
	hub.Register(inRoom, uuid.New(), "chat-1")
	hub.Register(otherRoom, uuid.New(), "chat-2")
	waitFor(t, func() bool { return hub.TotalClients() == 2 })

	hub.BroadcastToRoom("chat-1", ports.ChatEventMessageNew, "hello")
	waitFor(t, func() bool { return len(inRoom.types()) == 1 })

	if got := otherRoom.types(); len(got) != 0 {
		t.Errorf("other room received %v", got)
	}
	if got := inRoom.types()[0]; got != ports.ChatEventMessageNew {
		t.Errorf("frame type = %q", got)
	}
}

func TestHubDropsDeadConnections(t *testing.T) {
	defer goleak.VerifyNone(t)

	hub := NewHub(nil)
	hub.Start()
	defer hub.Stop()

	dead := &fakeConn{failing: true}
	alive := &fakeConn{}
	hub.Register(dead, uuid.New(), "room")
	hub.Register(alive, uuid.New(), "room")
	waitFor(t, func() bool { return hub.RoomClients("room") == 2 })

	hub.BroadcastToRoom("room", "message:new", 1)
	waitFor(t, func() bool { return hub.RoomClients("room") == 1 })

	if !dead.isClosed() {
		t.Error("dead connection should be closed")
	}
	if len(alive.types()) != 1 {
		t.Errorf("alive frames = %v", alive.types())
	}
}

func TestHubClientFrames(t *testing.T) {
	defer goleak.VerifyNone(t)

	allowed := uuid.New()
	hub := NewHub(func(_ context.Context, userID uuid.UUID, roomID string) bool {
		return userID == allowed && roomID == "chat-ok"
	})
	hub.Start()
	defer hub.Stop()

	conn := &fakeConn{}
	hub.Register(conn, allowed, "")
	waitFor(t, func() bool { return hub.TotalClients() == 1 })
	ctx := context.Background()

	hub.HandleClientMessage(ctx, conn, []byte(`{"type":"ping"}`))
	hub.HandleClientMessage(ctx, conn, []byte(`{"type":"join_room","data":{"roomId":"chat-nope"}}`))
	hub.HandleClientMessage(ctx, conn, []byte(`{"type":"join_room","data":{"roomId":"chat-ok"}}`))
	if hub.RoomClients("chat-ok") != 1 || hub.RoomClients("chat-nope") != 0 {
		t.Fatalf("room membership wrong: ok=%d nope=%d", hub.RoomClients("chat-ok"), hub.RoomClients("chat-nope"))
	}
	hub.HandleClientMessage(ctx, conn, []byte(`{"type":"leave_room"}`))
	hub.HandleClientMessage(ctx, conn, []byte(`not json`))

	want := []string{"pong", "error", "room_joined", "room_left"}
	got := conn.types()
	if len(got) != len(want) {
		t.Fatalf("frames = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("frame %d = %q, want %q", i, got[i], want[i])
		}
	}
	if hub.RoomClients("chat-ok") != 0 {
		t.Error("client still in room after leave_room")
	}
}

func TestHubStopClosesClients(t *testing.T) {
	defer goleak.VerifyNone(t)

	hub := NewHub(nil)
	hub.Start()
	conn := &fakeConn{}
	hub.Register(conn, uuid.New(), "")
	hub.Stop()

	if !conn.isClosed() {
		t.Error("Stop should close connections")
	}
	// หลัง Stop ต้องไม่ block
	hub.BroadcastToAll("x", nil)
	hub.Unregister(conn)
}

func TestChatBroadcasterForwardsEvents(t *testing.T) {
	defer goleak.VerifyNone(t)

	hub := NewHub(nil)
	hub.Start()
	defer hub.Stop()

	bus := messaging.NewLocalChatBus(8)
	defer bus.Wait()
	defer bus.Close()

	broadcaster := NewChatBroadcaster(bus, hub)
	if err := broadcaster.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer broadcaster.Stop()

	conn := &fakeConn{}
	hub.Register(conn, uuid.New(), "chat-9")
	waitFor(t, func() bool { return hub.RoomClients("chat-9") == 1 })

	_ = bus.PublishChatEvent(context.Background(), &ports.ChatEvent{
		Type:   ports.ChatEventApplicationUpdated,
		ChatID: "chat-9",
		Data:   json.RawMessage(`{"status":"accepted"}`),
	})
	waitFor(t, func() bool { return len(conn.types()) == 1 })

	if got := conn.types()[0]; got != ports.ChatEventApplicationUpdated {
		t.Errorf("type = %q", got)
	}
}
