package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"buildboard/domain/models"
	"buildboard/domain/repositories"
)

type chatRepo struct{ s *Store }

func (r *chatRepo) Create(ctx context.Context, chat *models.Chat) error {
	return r.s.write(func(d *dataset) error {
		ensureID(&chat.ID)
		now := d.now()
		if chat.CreatedAt.IsZero() {
			chat.CreatedAt = now
		}
		chat.UpdatedAt = now

		row := *chat
		row.Members = nil
		d.chats[chat.ID] = row

		for i := range chat.Members {
			m := &chat.Members[i]
			m.ChatID = chat.ID
			if m.JoinedAt.IsZero() {
				m.JoinedAt = d.now()
			}
			key := pairKey{chat.ID, m.UserID}
			if _, exists := d.members[key]; !exists {
				d.members[key] = *m
			}
		}
		return nil
	})
}

// withMembers ต้องเรียกภายใต้ lock
func (d *dataset) withMembers(c models.Chat) *models.Chat {
	c.Members = nil
	for k, m := range d.members {
		if k.a == c.ID {
			c.Members = append(c.Members, m)
		}
	}
	sort.Slice(c.Members, func(i, k int) bool {
		return olderFirst(c.Members[i].JoinedAt, c.Members[k].JoinedAt, c.Members[i].UserID, c.Members[k].UserID)
	})
	return &c
}

func (d *dataset) isMember(chatID, userID uuid.UUID) bool {
	_, ok := d.members[pairKey{chatID, userID}]
	return ok
}

func (r *chatRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Chat, error) {
	var out *models.Chat
	err := r.s.read(func(d *dataset) error {
		c, ok := d.chats[id]
		if !ok {
			return repositories.ErrRecordNotFound
		}
		out = d.withMembers(c)
		return nil
	})
	return out, err
}

func (r *chatRepo) FindDirectForJob(ctx context.Context, jobID, a, b uuid.UUID) (*models.Chat, error) {
	var out *models.Chat
	err := r.s.read(func(d *dataset) error {
		for _, c := range d.chats {
			if c.JobID == nil || *c.JobID != jobID {
				continue
			}
			if !d.isMember(c.ID, a) || !d.isMember(c.ID, b) {
				continue
			}
			full := d.withMembers(c)
			if len(full.Members) != 2 {
				continue
			}
			if out == nil || olderFirst(full.CreatedAt, out.CreatedAt, full.ID, out.ID) {
				out = full
			}
		}
		if out == nil {
			return repositories.ErrRecordNotFound
		}
		return nil
	})
	return out, err
}

func (r *chatRepo) AddMember(ctx context.Context, chatID, userID uuid.UUID) error {
	return r.s.write(func(d *dataset) error {
		if _, ok := d.chats[chatID]; !ok {
			return repositories.ErrRecordNotFound
		}
		key := pairKey{chatID, userID}
		if _, exists := d.members[key]; exists {
			return nil
		}
		d.members[key] = models.ChatMember{ChatID: chatID, UserID: userID, JoinedAt: d.now()}
		return nil
	})
}

func (r *chatRepo) ListByMember(ctx context.Context, userID uuid.UUID) ([]*models.Chat, error) {
	var out []*models.Chat
	err := r.s.read(func(d *dataset) error {
		for _, c := range d.chats {
			if d.isMember(c.ID, userID) {
				out = append(out, d.withMembers(c))
			}
		}
		return nil
	})
	sort.Slice(out, func(i, k int) bool {
		if !out[i].UpdatedAt.Equal(out[k].UpdatedAt) {
			return out[i].UpdatedAt.After(out[k].UpdatedAt)
		}
		return lessUUID(out[i].ID, out[k].ID)
	})
	return out, err
}

func (r *chatRepo) Touch(ctx context.Context, chatID uuid.UUID, at time.Time) error {
	return r.s.write(func(d *dataset) error {
		c, ok := d.chats[chatID]
		if !ok {
			return repositories.ErrRecordNotFound
		}
		if at.After(c.UpdatedAt) {
			c.UpdatedAt = at
		}
		d.chats[chatID] = c
		return nil
	})
}

type messageRepo struct{ s *Store }

func (r *messageRepo) Create(ctx context.Context, msg *models.Message) error {
	return r.s.write(func(d *dataset) error {
		if _, ok := d.chats[msg.ChatID]; !ok {
			return repositories.ErrRecordNotFound
		}
		ensureID(&msg.ID)
		// created_at มาจาก dataset เสมอ เพื่อให้ลำดับการเขียนตรงกับลำดับเวลา
		msg.CreatedAt = d.now()
		d.messages[msg.ID] = *msg
		return nil
	})
}

func (r *messageRepo) ListByChat(ctx context.Context, chatID uuid.UUID) ([]*models.Message, error) {
	var out []*models.Message
	err := r.s.read(func(d *dataset) error {
		for _, m := range d.messages {
			if m.ChatID == chatID {
				m := m
				out = append(out, &m)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, k int) bool {
		return olderFirst(out[i].CreatedAt, out[k].CreatedAt, out[i].ID, out[k].ID)
	})
	return out, err
}
