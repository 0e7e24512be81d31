package websocket

import (
	"context"
	"sync"

	"buildboard/domain/ports"
	"buildboard/pkg/logger"
)

// ChatBroadcaster รับ chat events จาก messaging แล้วส่งเข้าห้อง websocket ตาม chat id
type ChatBroadcaster struct {
	subscriber ports.ChatEventSubscriberPort
	hub        *Hub

	mu     sync.Mutex
	cancel context.CancelFunc
}

func NewChatBroadcaster(subscriber ports.ChatEventSubscriberPort, hub *Hub) *ChatBroadcaster {
	return &ChatBroadcaster{subscriber: subscriber, hub: hub}
}

func (b *ChatBroadcaster) Start() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.cancel != nil {
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	if err := b.subscriber.Subscribe(ctx, b.handleEvent); err != nil {
		cancel()
		return err
	}
	b.cancel = cancel

	logger.Info("Chat broadcaster started")
	return nil
}

func (b *ChatBroadcaster) handleEvent(event *ports.ChatEvent) {
	if event == nil || event.ChatID == "" {
		return
	}
	b.hub.BroadcastToRoom(event.ChatID, event.Type, event.Data)
}

func (b *ChatBroadcaster) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.cancel == nil {
		return
	}
	b.cancel()
	b.cancel = nil
	logger.Info("Chat broadcaster stopped")
}
