package service

import (
	"errors"
	"testing"

	"lms_backend/internal/config"
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"

	"gorm.io/gorm"
)

func newAuthService(t *testing.T, db *gorm.DB) *AuthService {
	t.Helper()
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-test-secret-test-secret"
	cfg.JWT.ExpireTime = 3600000000000
	return NewAuthService(repository.NewUserRepository(db), cfg)
}

func TestRegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(t, db)

	user, err := svc.Register(RegisterRequest{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "hunter22",
		Role:     "instructor",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Role != model.Instructor {
		t.Fatalf("expected instructor role, got %s", user.Role)
	}
	if user.Password == "hunter22" {
		t.Fatalf("password stored in plain text")
	}

	if _, err := svc.Register(RegisterRequest{
		Name:     "Ada again",
		Email:    "ada@example.com",
		Password: "hunter22",
	}); !errors.Is(err, util.ErrEmailRegistered) {
		t.Fatalf("duplicate email should be rejected, got %v", err)
	}

	resp, err := svc.Login(LoginRequest{Email: "ada@example.com", Password: "hunter22"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.Token == "" {
		t.Fatalf("expected a token")
	}

	claims, err := util.ParseJWT(resp.Token, "test-secret-test-secret-test-secret")
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != user.ID || claims.Role != model.Instructor {
		t.Fatalf("claims mismatch: %+v", claims)
	}

	if _, err := svc.Login(LoginRequest{Email: "ada@example.com", Password: "wrong"}); !errors.Is(err, util.ErrUnauthorized) {
		t.Fatalf("bad password should be unauthorized, got %v", err)
	}
}

func TestRegister_DefaultsToStudentAndBlocksAdmin(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(t, db)

	user, err := svc.Register(RegisterRequest{
		Name:     "Sam",
		Email:    "sam@example.com",
		Password: "password1",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Role != model.Student {
		t.Fatalf("expected student default, got %s", user.Role)
	}

	if _, err := svc.Register(RegisterRequest{
		Name:     "Eve",
		Email:    "eve@example.com",
		Password: "password1",
		Role:     "admin",
	}); err == nil {
		t.Fatalf("self-registering as admin must fail")
	}
}
