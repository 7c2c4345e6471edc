package user

import (
	"strings"
	"testing"
)

func TestRegisterHashesPasswordAndDefaultsRole(t *testing.T) {
	svc := NewService(NewInMemoryRepository(nil))

	created, err := svc.Register(User{Email: "j@example.com", Password: "secret123", Username: "jenny"})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected an assigned user id")
	}
	if created.Password == "secret123" || !strings.HasPrefix(created.Password, "$2") {
		t.Fatalf("password not hashed: %q", created.Password)
	}
	if created.Role != RoleUser {
		t.Fatalf("expected default role %q, got %q", RoleUser, created.Role)
	}

	if _, err := svc.Register(User{Email: "j@example.com", Password: "other"}); err != ErrEmailExists {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

func TestAuthenticate(t *testing.T) {
	svc := NewService(NewInMemoryRepository(nil))
	if _, err := svc.Register(User{Email: "j@example.com", Password: "secret123"}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	u, err := svc.Authenticate("j@example.com", "secret123")
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if u.Email != "j@example.com" {
		t.Fatalf("unexpected user: %+v", u)
	}

	if _, err := svc.Authenticate("j@example.com", "wrong"); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Authenticate("nobody@example.com", "secret123"); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestAuthenticateRejectsBannedUsers(t *testing.T) {
	svc := NewService(NewInMemoryRepository(nil))
	created, err := svc.Register(User{Email: "j@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if _, err := svc.SetBanned(created.ID, true); err != nil {
		t.Fatalf("SetBanned failed: %v", err)
	}
	if _, err := svc.Authenticate("j@example.com", "secret123"); err != ErrBanned {
		t.Fatalf("expected ErrBanned, got %v", err)
	}

	if _, err := svc.SetBanned(created.ID, false); err != nil {
		t.Fatalf("unban failed: %v", err)
	}
	if _, err := svc.Authenticate("j@example.com", "secret123"); err != nil {
		t.Fatalf("expected login to work after unban, got %v", err)
	}
}

func TestSetRole(t *testing.T) {
	svc := NewService(NewInMemoryRepository(nil))
	created, _ := svc.Register(User{Email: "j@example.com", Password: "secret123"})

	promoted, err := svc.SetRole(created.ID, RoleAdmin)
	if err != nil {
		t.Fatalf("SetRole failed: %v", err)
	}
	if promoted.Role != RoleAdmin || promoted.UpdatedAt == "" {
		t.Fatalf("unexpected user after promotion: %+v", promoted)
	}

	if _, err := svc.SetRole(999, RoleAdmin); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
