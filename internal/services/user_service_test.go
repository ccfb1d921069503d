package services

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/edu-core/school-service/internal/validator"
)

func newUserFixture(t *testing.T) (UserService, *MockRepository) {
	t.Helper()
	repo := NewMockRepository()
	service := NewUserService(repo, nil, testLogger(), validator.New())
	return service, repo
}

func TestUserCreateHashesPassword(t *testing.T) {
	service, _ := newUserFixture(t)

	user, err := service.Create(context.Background(), &UserCreateRequest{
		Username: "jsmith",
		Password: "Secret123",
		Role:     "Teacher",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if user.Password == "Secret123" {
		t.Fatalf("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("Secret123")); err != nil {
		t.Errorf("stored hash does not match password: %v", err)
	}
}

func TestUserCreateRejectsWeakPassword(t *testing.T) {
	service, _ := newUserFixture(t)

	cases := []struct {
		name     string
		password string
	}{
		{"too short", "Ab1"},
		{"no uppercase", "secret123"},
		{"no digit", "SecretPass"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.Create(context.Background(), &UserCreateRequest{
				Username: "jsmith",
				Password: tc.password,
				Role:     "Teacher",
			})
			if !errors.Is(err, ErrValidationFailed) {
				t.Errorf("expected validation failure, got %v", err)
			}
		})
	}
}

func TestUserCreateDuplicateUsername(t *testing.T) {
	service, _ := newUserFixture(t)

	req := &UserCreateRequest{Username: "jsmith", Password: "Secret123", Role: "Admin"}
	if _, err := service.Create(context.Background(), req); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	_, err := service.Create(context.Background(), req)
	if !errors.Is(err, ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestAuthenticate(t *testing.T) {
	service, _ := newUserFixture(t)

	created, err := service.Create(context.Background(), &UserCreateRequest{
		Username: "jsmith",
		Password: "Secret123",
		Role:     "Teacher",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	user, err := service.Authenticate(context.Background(), &LoginRequest{
		Username: "jsmith",
		Password: "Secret123",
	})
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if user.UserID != created.UserID {
		t.Errorf("expected user %d, got %d", created.UserID, user.UserID)
	}
}

// Wrong password and unknown username must fail identically so responses
// never reveal which credential was wrong.
func TestAuthenticateGenericFailure(t *testing.T) {
	service, _ := newUserFixture(t)

	if _, err := service.Create(context.Background(), &UserCreateRequest{
		Username: "jsmith",
		Password: "Secret123",
		Role:     "Teacher",
	}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	_, wrongPassword := service.Authenticate(context.Background(), &LoginRequest{
		Username: "jsmith",
		Password: "WrongPass1",
	})
	_, unknownUser := service.Authenticate(context.Background(), &LoginRequest{
		Username: "nobody",
		Password: "Secret123",
	})

	if !errors.Is(wrongPassword, ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized for wrong password, got %v", wrongPassword)
	}
	if !errors.Is(unknownUser, ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized for unknown user, got %v", unknownUser)
	}
	if wrongPassword.Error() != unknownUser.Error() {
		t.Errorf("failure messages differ: %q vs %q", wrongPassword, unknownUser)
	}
}

func TestChangePassword(t *testing.T) {
	service, _ := newUserFixture(t)

	created, err := service.Create(context.Background(), &UserCreateRequest{
		Username: "jsmith",
		Password: "Secret123",
		Role:     "Teacher",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	err = service.ChangePassword(context.Background(), created.UserID, &ChangePasswordRequest{
		CurrentPassword: "Secret123",
		NewPassword:     "Updated456",
	})
	if err != nil {
		t.Fatalf("ChangePassword failed: %v", err)
	}

	if _, err := service.Authenticate(context.Background(), &LoginRequest{
		Username: "jsmith",
		Password: "Updated456",
	}); err != nil {
		t.Errorf("new password rejected: %v", err)
	}
	if _, err := service.Authenticate(context.Background(), &LoginRequest{
		Username: "jsmith",
		Password: "Secret123",
	}); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("old password still accepted: %v", err)
	}
}

func TestChangePasswordRequiresCurrent(t *testing.T) {
	service, _ := newUserFixture(t)

	created, err := service.Create(context.Background(), &UserCreateRequest{
		Username: "jsmith",
		Password: "Secret123",
		Role:     "Teacher",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	err = service.ChangePassword(context.Background(), created.UserID, &ChangePasswordRequest{
		CurrentPassword: "WrongPass1",
		NewPassword:     "Updated456",
	})
	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized for wrong current password, got %v", err)
	}
}

func TestUserGetByRoleRejectsUnknownRole(t *testing.T) {
	service, _ := newUserFixture(t)

	_, err := service.GetByRole(context.Background(), "Superuser")
	if !errors.Is(err, ErrValidationFailed) {
		t.Errorf("expected validation failure, got %v", err)
	}
}

func TestUserDeleteNotFound(t *testing.T) {
	service, _ := newUserFixture(t)

	if err := service.Delete(context.Background(), 42); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
