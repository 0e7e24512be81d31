package messaging

import (
	"context"
	"errors"
	"sync"

	"buildboard/domain/ports"
	"buildboard/pkg/logger"
)

var ErrBusClosed = errors.New("chat bus closed")

// LocalChatBus pub/sub ภายใน process ใช้เมื่อไม่มี NATS.
// Publish ไม่ block: ถ้า buffer เต็ม event จะถูกทิ้ง (fire-and-forget)
type LocalChatBus struct {
	events chan *ports.ChatEvent
	done   chan struct{}

	mu       sync.Mutex
	handlers []ports.ChatEventHandler
	started  bool
	closed   bool
	wg       sync.WaitGroup
}

func NewLocalChatBus(buffer int) *LocalChatBus {
	if buffer <= 0 {
		buffer = 256
	}
	return &LocalChatBus{
		events: make(chan *ports.ChatEvent, buffer),
		done:   make(chan struct{}),
	}
}

func (b *LocalChatBus) PublishChatEvent(ctx context.Context, event *ports.ChatEvent) error {
	b.mu.Lock()
	closed := b.closed
	b.mu.Unlock()
	if closed {
		return ErrBusClosed
	}

	select {
	case b.events <- event:
		return nil
	case <-b.done:
		return ErrBusClosed
	default:
		logger.WarnContext(ctx, "Chat bus full, dropping event", "chat_id", event.ChatID, "type", event.Type)
		return nil
	}
}

func (b *LocalChatBus) Subscribe(ctx context.Context, handler ports.ChatEventHandler) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrBusClosed
	}
	b.handlers = append(b.handlers, handler)

	if !b.started {
		b.started = true
		b.wg.Add(1)
		go b.run()
	}

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		select {
		case <-ctx.Done():
			b.Close()
		case <-b.done:
		}
	}()
	return nil
}

func (b *LocalChatBus) run() {
	defer b.wg.Done()
	for {
		select {
		case event := <-b.events:
			b.dispatch(event)
		case <-b.done:
			return
		}
	}
}

func (b *LocalChatBus) dispatch(event *ports.ChatEvent) {
	b.mu.Lock()
	handlers := b.handlers
	b.mu.Unlock()

	for _, h := range handlers {
		func() {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("Chat event handler panicked", "chat_id", event.ChatID, "error", r)
				}
			}()
			h(event)
		}()
	}
}

// Close หยุด dispatcher และรอ goroutine ทั้งหมดจบ
func (b *LocalChatBus) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	close(b.done)
	b.mu.Unlock()
	return nil
}

// Wait รอ goroutine ของ bus จบหลัง Close
func (b *LocalChatBus) Wait() {
	b.wg.Wait()
}
