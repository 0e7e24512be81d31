package serviceimpl

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"buildboard/domain/models"
	"buildboard/domain/ports"
	"buildboard/infrastructure/memory"
)

type stubStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	deleted []string
	failPut bool
	// failDelete ทำให้ DeleteFile ล้มเหลว (ไฟล์ยังอยู่)
	failDelete bool
}

func newStubStorage() *stubStorage {
	return &stubStorage{objects: map[string][]byte{}}
}

func (s *stubStorage) UploadFile(file io.Reader, path, contentType string) (string, error) {
	if s.failPut {
		return "", errors.New("storage unavailable")
	}
	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[path] = data
	return "https://cdn.test/" + path, nil
}

func (s *stubStorage) DeleteFile(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failDelete {
		return errors.New("storage unavailable")
	}
	delete(s.objects, path)
	s.deleted = append(s.deleted, path)
	return nil
}

func (s *stubStorage) DeleteFolder(prefix string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k := range s.objects {
		if strings.HasPrefix(k, prefix) {
			delete(s.objects, k)
		}
	}
	return nil
}

func (s *stubStorage) GetFileURL(path string) string { return "https://cdn.test/" + path }

func (s *stubStorage) GetFileContent(path string) (io.ReadCloser, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[path]
	if !ok {
		return nil, "", errors.New("not found")
	}
	return io.NopCloser(bytes.NewReader(data)), "application/octet-stream", nil
}

func (s *stubStorage) GetSignedURL(path string, ttl time.Duration) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.objects[path]; !ok {
		return "", errors.New("not found")
	}
	return "https://cdn.test/" + path + "?sig=1", nil
}

func (s *stubStorage) GetProviderName() string { return "stub" }

func (s *stubStorage) has(path string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[path]
	return ok
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []*ports.ChatEvent
}

func (p *recordingPublisher) PublishChatEvent(ctx context.Context, event *ports.ChatEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

func seedUser(t *testing.T, store *memory.Store, username, role string) *models.User {
	t.Helper()
	user := &models.User{
		ID:        uuid.New(),
		Email:     username + "@example.com",
		Username:  username,
		FirstName: strings.ToUpper(username[:1]) + username[1:],
		Role:      role,
		IsActive:  true,
	}
	if err := store.Users().Create(context.Background(), user); err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return user
}

func seedJob(t *testing.T, store *memory.Store, owner *models.User, title string) *models.Job {
	t.Helper()
	job := &models.Job{
		ID:      uuid.New(),
		Title:   title,
		Site:    "Riverside Tower",
		OwnerID: owner.ID,
	}
	if err := store.Jobs().Create(context.Background(), job); err != nil {
		t.Fatalf("seed job: %v", err)
	}
	return job
}

func ptr[T any](v T) *T { return &v }
