package serviceimpl

import (
	"context"
	"errors"
	"testing"
	"time"

	"buildboard/domain/dto"
	"buildboard/domain/models"
	"buildboard/domain/services"
	"buildboard/infrastructure/memory"
	"buildboard/pkg/utils"
)

func TestRegisterAndLogin(t *testing.T) {
	store := memory.NewStore()
	svc := NewUserService(store.Users(), "secret", time.Hour)
	ctx := context.Background()

	user, err := svc.Register(ctx, &dto.RegisterRequest{
		Email:    " Dana@Example.com ",
		Username: "dana",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Email != "dana@example.com" || user.Role != models.RoleWorker {
		t.Errorf("registered user = %s/%s", user.Email, user.Role)
	}
	if user.Password == "correct-horse" {
		t.Error("password stored in clear text")
	}

	if _, err := svc.Register(ctx, &dto.RegisterRequest{Email: "dana@example.com", Username: "dana2", Password: "x"}); !errors.Is(err, services.ErrConflict) {
		t.Errorf("duplicate email: err = %v", err)
	}
	if _, err := svc.Register(ctx, &dto.RegisterRequest{Email: "other@example.com", Username: "dana", Password: "x"}); !errors.Is(err, services.ErrConflict) {
		t.Errorf("duplicate username: err = %v", err)
	}

	token, loggedIn, err := svc.Login(ctx, &dto.LoginRequest{Email: "DANA@example.com", Password: "correct-horse"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if loggedIn.ID != user.ID {
		t.Errorf("login user = %s, want %s", loggedIn.ID, user.ID)
	}
	claims, err := utils.ValidateTokenStringToUUID(token, "secret")
	if err != nil || claims.ID != user.ID || claims.Role != models.RoleWorker {
		t.Errorf("token claims = %+v (%v)", claims, err)
	}

	for _, req := range []*dto.LoginRequest{
		{Email: "dana@example.com", Password: "wrong"},
		{Email: "nobody@example.com", Password: "correct-horse"},
	} {
		if _, _, err := svc.Login(ctx, req); !errors.Is(err, services.ErrUnauthorized) {
			t.Errorf("login %s: err = %v, want ErrUnauthorized", req.Email, err)
		}
	}
}
