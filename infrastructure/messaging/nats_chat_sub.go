package messaging

import (
	"context"
	"encoding/json"

	"github.com/nats-io/nats.go"

	"buildboard/domain/ports"
	natspkg "buildboard/infrastructure/nats"
	"buildboard/pkg/logger"
)

// NATSChatSubscriber รับ chat events ของทุก chat ผ่าน chat.>
type NATSChatSubscriber struct {
	subscriber *natspkg.Subscriber
}

func NewNATSChatSubscriber(conn *nats.Conn) ports.ChatEventSubscriberPort {
	return &NATSChatSubscriber{
		subscriber: natspkg.NewSubscriber(conn, natspkg.SubjectChatAll),
	}
}

func (s *NATSChatSubscriber) Subscribe(ctx context.Context, handler ports.ChatEventHandler) error {
	s.subscriber.OnMessage(func(subject string, data []byte) {
		var event ports.ChatEvent
		if err := json.Unmarshal(data, &event); err != nil {
			logger.Warn("Dropping malformed chat event", "subject", subject, "error", err)
			return
		}
		handler(&event)
	})

	if err := s.subscriber.Start(); err != nil {
		return err
	}

	go func() {
		<-ctx.Done()
		_ = s.subscriber.Stop()
	}()
	return nil
}

func (s *NATSChatSubscriber) Close() error {
	return s.subscriber.Stop()
}
