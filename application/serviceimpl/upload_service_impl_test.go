package serviceimpl

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"buildboard/domain/models"
	"buildboard/domain/services"
	"buildboard/infrastructure/memory"
)

func TestSetUserImageReplacesPrevious(t *testing.T) {
	store := memory.NewStore()
	storage := newStubStorage()
	svc := NewUploadService(store, storage, time.Minute)
	alice := seedUser(t, store, "alice", models.RoleWorker)
	ctx := context.Background()

	first, err := svc.SetUserImage(ctx, alice.ID, services.ImageKindAvatar, strings.NewReader("a"), "me.png", "image/png")
	if err != nil {
		t.Fatalf("first avatar: %v", err)
	}
	if !strings.HasPrefix(first.AvatarKey, "avatars/"+alice.ID.String()+"/me-") || first.AvatarURL == "" {
		t.Fatalf("avatar = %q %q", first.AvatarKey, first.AvatarURL)
	}

	second, err := svc.SetUserImage(ctx, alice.ID, services.ImageKindAvatar, strings.NewReader("b"), "me2.png", "image/png")
	if err != nil {
		t.Fatalf("second avatar: %v", err)
	}
	if storage.has(first.AvatarKey) || !storage.has(second.AvatarKey) {
		t.Error("old avatar should be deleted and new one kept")
	}

	banner, err := svc.SetUserImage(ctx, alice.ID, services.ImageKindBanner, strings.NewReader("c"), "wide.jpg", "image/jpeg")
	if err != nil {
		t.Fatalf("banner: %v", err)
	}
	if banner.AvatarKey != second.AvatarKey {
		t.Error("banner upload must not touch avatar")
	}

	url, expiresAt, err := svc.SignedURL(ctx, banner.BannerKey)
	if err != nil || url == "" || !expiresAt.After(time.Now()) {
		t.Errorf("SignedURL = %q %v %v", url, expiresAt, err)
	}
	if _, _, err := svc.SignedURL(ctx, "../etc/passwd"); !errors.Is(err, services.ErrValidation) {
		t.Errorf("traversal key: err = %v", err)
	}
}

func TestSetUserImageValidation(t *testing.T) {
	store := memory.NewStore()
	storage := newStubStorage()
	svc := NewUploadService(store, storage, time.Minute)
	alice := seedUser(t, store, "alice", models.RoleWorker)
	ctx := context.Background()

	if _, err := svc.SetUserImage(ctx, alice.ID, "cover", strings.NewReader("a"), "x.png", "image/png"); !errors.Is(err, services.ErrValidation) {
		t.Errorf("unknown kind: err = %v", err)
	}
	if _, err := svc.SetUserImage(ctx, alice.ID, services.ImageKindAvatar, strings.NewReader("a"), "x.pdf", "application/pdf"); !errors.Is(err, services.ErrValidation) {
		t.Errorf("non-image: err = %v", err)
	}

	storage.failPut = true
	if _, err := svc.SetUserImage(ctx, alice.ID, services.ImageKindAvatar, strings.NewReader("a"), "x.png", "image/png"); err == nil {
		t.Error("storage failure should surface")
	}
}

func TestOpenFileStreamsStoredBlob(t *testing.T) {
	store := memory.NewStore()
	storage := newStubStorage()
	svc := NewUploadService(store, storage, time.Minute)
	alice := seedUser(t, store, "alice", models.RoleWorker)
	ctx := context.Background()

	user, err := svc.SetUserImage(ctx, alice.ID, services.ImageKindAvatar, strings.NewReader("avatar-bytes"), "me.png", "image/png")
	if err != nil {
		t.Fatalf("SetUserImage: %v", err)
	}

	body, contentType, err := svc.OpenFile(ctx, user.AvatarKey)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	defer body.Close()
	data, _ := io.ReadAll(body)
	if string(data) != "avatar-bytes" || contentType == "" {
		t.Errorf("OpenFile = %q %q", data, contentType)
	}

	if _, _, err := svc.OpenFile(ctx, "avatars/nobody/missing.png"); !errors.Is(err, services.ErrNotFound) {
		t.Errorf("missing key: err = %v, want ErrNotFound", err)
	}
	if _, _, err := svc.OpenFile(ctx, "../secrets"); !errors.Is(err, services.ErrValidation) {
		t.Errorf("traversal key: err = %v, want ErrValidation", err)
	}
}
