package repositories

import "context"

// Store รวม repository ทุกตัวไว้ด้วยกัน เพื่อให้ workflow หลายขั้นตอนทำใน transaction เดียวได้
type Store interface {
	Users() UserRepository
	Jobs() JobRepository
	Applications() ApplicationRepository
	Chats() ChatRepository
	Messages() MessageRepository
	Profiles() ProfileRepository
	Projects() ProjectRepository
	Tasks() TaskRepository

	// WithTx รัน fn แบบ all-or-nothing: fn คืน error = rollback ทั้งหมด
	WithTx(ctx context.Context, fn func(tx Store) error) error
}
