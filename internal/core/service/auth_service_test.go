package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/contactdesk/contactdesk/internal/core/domain"
)

func TestLogin(t *testing.T) {
	repo := newStubUserRepo()
	repo.seed("glhopper", "correct", domain.RoleSeniorDeveloper)
	svc := NewAuthService(repo, zerolog.Nop())
	ctx := context.Background()

	u, err := svc.Login(ctx, "glhopper", "correct")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if u.Username != "glhopper" {
		t.Errorf("username = %q", u.Username)
	}

	failures := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "glhopper", "wrong"},
		{"unknown user", "nobody", "correct"},
		{"empty username", "", "correct"},
		{"empty password", "glhopper", ""},
	}
	for _, tt := range failures {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Login(ctx, tt.username, tt.password); !errors.Is(err, domain.ErrInvalidCredentials) {
				t.Errorf("want ErrInvalidCredentials, got %v", err)
			}
		})
	}
}

func TestLoginRehashesLegacyPlaintextPassword(t *testing.T) {
	repo := newStubUserRepo()
	repo.users[1] = domain.Principal{
		ID:           1,
		Username:     "legacy",
		PasswordHash: "oldplain",
		Role:         domain.RoleTester,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
	repo.nextID = 2
	svc := NewAuthService(repo, zerolog.Nop())

	u, err := svc.Login(context.Background(), "legacy", "oldplain")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if u.PasswordHash == "oldplain" {
		t.Error("plaintext row should be rehashed on login")
	}
	if !strings.HasPrefix(repo.users[1].PasswordHash, "$2") {
		t.Errorf("stored hash %q is not bcrypt", repo.users[1].PasswordHash)
	}
	if bcrypt.CompareHashAndPassword([]byte(repo.users[1].PasswordHash), []byte("oldplain")) != nil {
		t.Error("rehashed credential no longer verifies")
	}
}

func TestChangePassword(t *testing.T) {
	repo := newStubUserRepo()
	seeded := repo.seed("glhopper", "old", domain.RoleTester)
	svc := NewAuthService(repo, zerolog.Nop())
	ctx := context.Background()

	if err := svc.ChangePassword(ctx, seeded, "old", "newsecret"); err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(seeded.PasswordHash), []byte("newsecret")) != nil {
		t.Error("in-memory hash should be refreshed on success")
	}

	// The new credential works for a fresh login.
	if _, err := svc.Login(ctx, "glhopper", "newsecret"); err != nil {
		t.Errorf("login with new password: %v", err)
	}
	if _, err := svc.Login(ctx, "glhopper", "old"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Error("old password should stop working")
	}
}

func TestChangePasswordRejectsWrongCurrent(t *testing.T) {
	repo := newStubUserRepo()
	seeded := repo.seed("glhopper", "old", domain.RoleTester)
	svc := NewAuthService(repo, zerolog.Nop())

	if err := svc.ChangePassword(context.Background(), seeded, "wrong", "newsecret"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("want ErrInvalidCredentials, got %v", err)
	}
}

func TestChangePasswordRejectsShortPassword(t *testing.T) {
	repo := newStubUserRepo()
	seeded := repo.seed("glhopper", "old", domain.RoleTester)
	svc := NewAuthService(repo, zerolog.Nop())

	if err := svc.ChangePassword(context.Background(), seeded, "old", "ab"); !errors.Is(err, domain.ErrPasswordTooShort) {
		t.Errorf("want ErrPasswordTooShort, got %v", err)
	}
}
