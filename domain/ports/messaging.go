package ports

import (
	"context"
	"encoding/json"
)

const (
	ChatEventMessageNew         = "message:new"
	ChatEventApplicationUpdated = "application:updated"
)

// ChatEvent event ที่ fan-out ไปยังทุก subscriber ของ chat
type ChatEvent struct {
	Type   string          `json:"type"`
	ChatID string          `json:"chatId"`
	Data   json.RawMessage `json:"data"`
}

// ChatEventPublisherPort ส่ง event แบบ fire-and-forget, ไม่มี replay
type ChatEventPublisherPort interface {
	PublishChatEvent(ctx context.Context, event *ChatEvent) error
}

type ChatEventHandler func(event *ChatEvent)

// ChatEventSubscriberPort รับ event ของทุก chat
type ChatEventSubscriberPort interface {
	// Subscribe เริ่ม listen จนกว่า ctx จะถูก cancel หรือ Close
	Subscribe(ctx context.Context, handler ChatEventHandler) error
	Close() error
}
