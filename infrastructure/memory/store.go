// Package memory is a repositories.Store kept entirely in process memory.
// All state lives in one dataset guarded by one RWMutex; WithTx runs against a
// clone of the dataset and swaps it in only when the callback succeeds.
package memory

import (
	"bytes"
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"buildboard/domain/models"
	"buildboard/domain/repositories"
)

type pairKey struct {
	a uuid.UUID
	b uuid.UUID
}

type dataset struct {
	users        map[uuid.UUID]models.User
	jobs         map[uuid.UUID]models.Job
	jobWorkers   map[pairKey]models.JobWorker // (job, user)
	applications map[uuid.UUID]models.Application
	chats        map[uuid.UUID]models.Chat // Members ถูกเก็บแยกใน members
	members      map[pairKey]models.ChatMember // (chat, user)
	messages     map[uuid.UUID]models.Message
	profiles     map[uuid.UUID]models.Profile
	projects     map[uuid.UUID]models.Project
	tasks        map[uuid.UUID]models.Task

	lastStamp time.Time
}

func newDataset() *dataset {
	return &dataset{
		users:        make(map[uuid.UUID]models.User),
		jobs:         make(map[uuid.UUID]models.Job),
		jobWorkers:   make(map[pairKey]models.JobWorker),
		applications: make(map[uuid.UUID]models.Application),
		chats:        make(map[uuid.UUID]models.Chat),
		members:      make(map[pairKey]models.ChatMember),
		messages:     make(map[uuid.UUID]models.Message),
		profiles:     make(map[uuid.UUID]models.Profile),
		projects:     make(map[uuid.UUID]models.Project),
		tasks:        make(map[uuid.UUID]models.Task),
	}
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// clone values are replaced wholesale on write, never mutated through shared slices
func (d *dataset) clone() *dataset {
	return &dataset{
		users:        cloneMap(d.users),
		jobs:         cloneMap(d.jobs),
		jobWorkers:   cloneMap(d.jobWorkers),
		applications: cloneMap(d.applications),
		chats:        cloneMap(d.chats),
		members:      cloneMap(d.members),
		messages:     cloneMap(d.messages),
		profiles:     cloneMap(d.profiles),
		projects:     cloneMap(d.projects),
		tasks:        cloneMap(d.tasks),
		lastStamp:    d.lastStamp,
	}
}

// now strictly increasing ภายใน dataset เพื่อให้ลำดับ created_at ไม่ชนกัน
func (d *dataset) now() time.Time {
	t := time.Now().UTC()
	if !t.After(d.lastStamp) {
		t = d.lastStamp.Add(time.Microsecond)
	}
	d.lastStamp = t
	return t
}

type Store struct {
	mu   *sync.RWMutex
	data *dataset
	inTx bool
}

func NewStore() *Store {
	return &Store{
		mu:   &sync.RWMutex{},
		data: newDataset(),
	}
}

var _ repositories.Store = (*Store)(nil)

func (s *Store) Users() repositories.UserRepository               { return &userRepo{s} }
func (s *Store) Jobs() repositories.JobRepository                 { return &jobRepo{s} }
func (s *Store) Applications() repositories.ApplicationRepository { return &applicationRepo{s} }
func (s *Store) Chats() repositories.ChatRepository               { return &chatRepo{s} }
func (s *Store) Messages() repositories.MessageRepository         { return &messageRepo{s} }
func (s *Store) Profiles() repositories.ProfileRepository         { return &profileRepo{s} }
func (s *Store) Projects() repositories.ProjectRepository         { return &projectRepo{s} }
func (s *Store) Tasks() repositories.TaskRepository               { return &taskRepo{s} }

// WithTx ถือ write lock ตลอด fn; nested WithTx เข้าร่วม transaction เดิม
func (s *Store) WithTx(ctx context.Context, fn func(tx repositories.Store) error) error {
	if s.inTx {
		return fn(s)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &Store{mu: s.mu, data: s.data.clone(), inTx: true}
	if err := fn(tx); err != nil {
		return err
	}
	s.data = tx.data
	return nil
}

func (s *Store) read(fn func(d *dataset) error) error {
	if s.inTx {
		return fn(s.data)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.data)
}

func (s *Store) write(fn func(d *dataset) error) error {
	if s.inTx {
		return fn(s.data)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.data)
}

func lessUUID(a, b uuid.UUID) bool {
	return bytes.Compare(a[:], b[:]) < 0
}

// olderFirst เรียงตาม (created_at, id)
func olderFirst(at, bt time.Time, a, b uuid.UUID) bool {
	if !at.Equal(bt) {
		return at.Before(bt)
	}
	return lessUUID(a, b)
}

func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}
