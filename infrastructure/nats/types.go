package nats

import "fmt"

const (
	// SubjectChat prefix ของ chat events: chat.<chatId>
	SubjectChat = "chat"
	// SubjectChatAll wildcard ที่ทุก API instance subscribe
	SubjectChatAll = SubjectChat + ".>"
)

func ChatSubject(chatID string) string {
	return fmt.Sprintf("%s.%s", SubjectChat, chatID)
}
