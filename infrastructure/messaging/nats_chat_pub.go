package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"

	"buildboard/domain/ports"
	natspkg "buildboard/infrastructure/nats"
)

// NATSChatPublisher ส่ง chat event ไปที่ subject chat.<chatId>
type NATSChatPublisher struct {
	conn *nats.Conn
}

func NewNATSChatPublisher(conn *nats.Conn) ports.ChatEventPublisherPort {
	return &NATSChatPublisher{conn: conn}
}

func (p *NATSChatPublisher) PublishChatEvent(ctx context.Context, event *ports.ChatEvent) error {
	if event == nil || event.ChatID == "" {
		return fmt.Errorf("chat event requires a chat id")
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal chat event: %w", err)
	}

	return p.conn.Publish(natspkg.ChatSubject(event.ChatID), data)
}
