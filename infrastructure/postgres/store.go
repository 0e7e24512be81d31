package postgres

import (
	"context"

	"gorm.io/gorm"

	"buildboard/domain/repositories"
)

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) repositories.Store {
	return &Store{db: db}
}

func (s *Store) Users() repositories.UserRepository               { return NewUserRepository(s.db) }
func (s *Store) Jobs() repositories.JobRepository                 { return NewJobRepository(s.db) }
func (s *Store) Applications() repositories.ApplicationRepository { return NewApplicationRepository(s.db) }
func (s *Store) Chats() repositories.ChatRepository               { return NewChatRepository(s.db) }
func (s *Store) Messages() repositories.MessageRepository         { return NewMessageRepository(s.db) }
func (s *Store) Profiles() repositories.ProfileRepository         { return NewProfileRepository(s.db) }
func (s *Store) Projects() repositories.ProjectRepository         { return NewProjectRepository(s.db) }
func (s *Store) Tasks() repositories.TaskRepository               { return NewTaskRepository(s.db) }

// WithTx ใช้ gorm Transaction: fn คืน error = rollback
func (s *Store) WithTx(ctx context.Context, fn func(tx repositories.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}
