package nats

import (
	"sync"

	"github.com/nats-io/nats.go"

	"buildboard/pkg/logger"
)

type MessageHandler func(subject string, data []byte)

// Subscriber subscribe subject เดียว (รองรับ wildcard) แล้วส่งต่อให้ handlers ตามลำดับ
type Subscriber struct {
	conn    *nats.Conn
	subject string

	mu       sync.Mutex
	sub      *nats.Subscription
	handlers []MessageHandler
}

func NewSubscriber(conn *nats.Conn, subject string) *Subscriber {
	return &Subscriber{conn: conn, subject: subject}
}

func (s *Subscriber) OnMessage(handler MessageHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers = append(s.handlers, handler)
}

func (s *Subscriber) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sub != nil {
		return nil
	}

	sub, err := s.conn.Subscribe(s.subject, s.handleMessage)
	if err != nil {
		return err
	}
	s.sub = sub

	logger.Info("NATS subscriber started", "subject", s.subject)
	return nil
}

func (s *Subscriber) handleMessage(msg *nats.Msg) {
	s.mu.Lock()
	handlers := s.handlers
	s.mu.Unlock()

	for _, h := range handlers {
		func() {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("NATS handler panicked", "subject", msg.Subject, "error", r)
				}
			}()
			h(msg.Subject, msg.Data)
		}()
	}
}

func (s *Subscriber) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sub == nil {
		return nil
	}
	err := s.sub.Unsubscribe()
	s.sub = nil

	logger.Info("NATS subscriber stopped", "subject", s.subject)
	return err
}
