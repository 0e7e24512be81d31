package serviceimpl

import (
	"context"
	"encoding/json"

	"buildboard/domain/dto"
	"buildboard/domain/models"
	"buildboard/domain/ports"
	"buildboard/pkg/logger"
)

// chatEvents publish หลัง commit เท่านั้น; publish ล้มเหลวแค่ log ไว้ (ไม่มี replay)
type chatEvents struct {
	publisher ports.ChatEventPublisherPort
}

func (e chatEvents) messageCreated(ctx context.Context, msg *models.Message) {
	e.publish(ctx, ports.ChatEventMessageNew, msg.ChatID.String(), dto.MessageToMessageResponse(msg))
}

func (e chatEvents) applicationUpdated(ctx context.Context, app *models.Application) {
	e.publish(ctx, ports.ChatEventApplicationUpdated, app.ChatID.String(), dto.ApplicationToResponse(app))
}

func (e chatEvents) publish(ctx context.Context, eventType, chatID string, payload any) {
	if e.publisher == nil {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to encode chat event", "type", eventType, "error", err)
		return
	}

	event := &ports.ChatEvent{Type: eventType, ChatID: chatID, Data: data}
	if err := e.publisher.PublishChatEvent(ctx, event); err != nil {
		logger.WarnContext(ctx, "Failed to publish chat event", "type", eventType, "chat_id", chatID, "error", err)
	}
}
